// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platformcore/drive/drive"
	"github.com/platformcore/drive/state"
)

func TestReadContractFile(t *testing.T) {
	path := writeFile(t, "contract.yaml", `
owner: `+testOwner+`
name: notes
document_types:
  - name: note
    mutable: true
    deletable: true
  - name: record
tokens:
  - position: 0
  - position: 1
    max_supply: 1000
    mint_authority: `+testContract+`
    allow_transfer_to_frozen: true
`)
	c, err := readContractFile(path)
	require.NoError(t, err)

	ownerID := drive.MustParseIdentifier(testOwner)
	assert.Equal(t, drive.DeriveIdentifier(ownerID[:], []byte("notes")), c.ID)
	assert.Equal(t, ownerID, c.Owner)
	assert.Equal(t, uint32(1), c.Version)
	assert.Equal(t, []state.DocumentType{
		{Name: "note", Mutable: true, Deletable: true},
		{Name: "record"},
	}, c.DocumentTypes)

	require.Len(t, c.Tokens, 2)
	assert.True(t, c.Tokens[0].MintAuthority.IsZero())
	assert.Equal(t, drive.MustParseIdentifier(testContract), c.Tokens[1].MintAuthority)
	assert.Equal(t, uint64(1000), c.Tokens[1].MaxSupply)
	assert.True(t, c.Tokens[1].AllowTransferToFrozen)
}

func TestReadContractFile_Invalid(t *testing.T) {
	tests := map[string]string{
		"no owner":           "name: x\n",
		"no id nor name":     "owner: " + testOwner + "\n",
		"duplicate type":     "owner: " + testOwner + "\nname: x\ndocument_types:\n  - name: a\n  - name: a\n",
		"duplicate position": "owner: " + testOwner + "\nname: x\ntokens:\n  - position: 1\n  - position: 1\n",
		"bad authority":      "owner: " + testOwner + "\nname: x\ntokens:\n  - freeze_authority: 0x12\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := readContractFile(writeFile(t, "contract.yaml", content))
			assert.Error(t, err)
		})
	}
}
