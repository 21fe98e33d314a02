// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testcontract deploys data contracts and funds identities for tests.
package testcontract

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/platformcore/drive/drive"
	"github.com/platformcore/drive/grove"
	"github.com/platformcore/drive/state"
)

// Document type names of the fixture contract.
const (
	Note   = "note"   // every capability
	Record = "record" // no capability
)

// New returns a contract owned by owner with the Note and Record document
// types, an unlimited token at position 0 and a token capped at 1000 at position 1.
func New(owner drive.Identifier) *state.DataContract {
	return &state.DataContract{
		ID:      drive.DeriveIdentifier([]byte("contract"), owner[:]),
		Owner:   owner,
		Version: 1,
		DocumentTypes: []state.DocumentType{
			{Name: Note, Transferable: true, Tradeable: true, Mutable: true, Deletable: true},
			{Name: Record},
		},
		Tokens: []state.TokenConfig{
			{Position: 0},
			{Position: 1, MaxSupply: 1000},
		},
	}
}

// Deploy writes c to the store.
func Deploy(t testing.TB, st *state.State, c *state.DataContract) {
	b := grove.NewBatch()
	require.NoError(t, st.AddInsertContractOperations(b, c))
	require.NoError(t, st.Store().ApplyBatch(b, false, nil))
}

// Fund creates the identity id with balance credits.
func Fund(t testing.TB, st *state.State, id drive.Identifier, balance uint64) {
	b := grove.NewBatch()
	st.AddInsertIdentityOperations(b, id, balance)
	require.NoError(t, st.Store().ApplyBatch(b, false, nil))
}
