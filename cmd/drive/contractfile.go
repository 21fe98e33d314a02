// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/platformcore/drive/drive"
	"github.com/platformcore/drive/state"
)

type yamlDocumentType struct {
	Name         string `yaml:"name"`
	Transferable bool   `yaml:"transferable"`
	Tradeable    bool   `yaml:"tradeable"`
	Mutable      bool   `yaml:"mutable"`
	Deletable    bool   `yaml:"deletable"`
}

type yamlToken struct {
	Position              uint16 `yaml:"position"`
	MaxSupply             uint64 `yaml:"max_supply"`
	MintAuthority         string `yaml:"mint_authority"`
	FreezeAuthority       string `yaml:"freeze_authority"`
	EmergencyAuthority    string `yaml:"emergency_authority"`
	ConfigAuthority       string `yaml:"config_authority"`
	PriceAuthority        string `yaml:"price_authority"`
	AllowTransferToFrozen bool   `yaml:"allow_transfer_to_frozen"`
}

type yamlContract struct {
	ID            string             `yaml:"id"`
	Owner         string             `yaml:"owner"`
	Name          string             `yaml:"name"`
	DocumentTypes []yamlDocumentType `yaml:"document_types"`
	Tokens        []yamlToken        `yaml:"tokens"`
}

// parseOptionalIdentifier returns the zero identifier for an empty string.
func parseOptionalIdentifier(s string) (drive.Identifier, error) {
	if s == "" {
		return drive.Identifier{}, nil
	}
	return drive.ParseIdentifier(s)
}

// readContractFile decodes a yaml contract definition. Without an explicit
// id, the id is derived from the owner and the contract name.
func readContractFile(path string) (*state.DataContract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read contract file")
	}
	var yc yamlContract
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, errors.Wrapf(err, "decode contract file %s", path)
	}

	owner, err := drive.ParseIdentifier(yc.Owner)
	if err != nil {
		return nil, errors.WithMessage(err, "owner")
	}
	id, err := parseOptionalIdentifier(yc.ID)
	if err != nil {
		return nil, errors.WithMessage(err, "id")
	}
	if id.IsZero() {
		if yc.Name == "" {
			return nil, errors.New("contract needs an id or a name")
		}
		id = drive.DeriveIdentifier(owner[:], []byte(yc.Name))
	}

	c := &state.DataContract{ID: id, Owner: owner, Version: 1}
	seen := make(map[string]bool)
	for _, dt := range yc.DocumentTypes {
		if dt.Name == "" || seen[dt.Name] {
			return nil, errors.Errorf("invalid or duplicate document type %q", dt.Name)
		}
		seen[dt.Name] = true
		c.DocumentTypes = append(c.DocumentTypes, state.DocumentType(dt))
	}
	positions := make(map[uint16]bool)
	for _, yt := range yc.Tokens {
		if positions[yt.Position] {
			return nil, errors.Errorf("duplicate token position %d", yt.Position)
		}
		positions[yt.Position] = true
		tc := state.TokenConfig{
			Position:              yt.Position,
			MaxSupply:             yt.MaxSupply,
			AllowTransferToFrozen: yt.AllowTransferToFrozen,
		}
		for _, a := range []struct {
			s   string
			dst *drive.Identifier
		}{
			{yt.MintAuthority, &tc.MintAuthority},
			{yt.FreezeAuthority, &tc.FreezeAuthority},
			{yt.EmergencyAuthority, &tc.EmergencyAuthority},
			{yt.ConfigAuthority, &tc.ConfigAuthority},
			{yt.PriceAuthority, &tc.PriceAuthority},
		} {
			if *a.dst, err = parseOptionalIdentifier(a.s); err != nil {
				return nil, errors.WithMessagef(err, "token %d authority", yt.Position)
			}
		}
		c.Tokens = append(c.Tokens, tc)
	}
	return c, nil
}
