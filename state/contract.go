// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/pkg/errors"

	"github.com/platformcore/drive/drive"
	"github.com/platformcore/drive/grove"
)

// DocumentType declares the documents of a contract and what may happen to them.
type DocumentType struct {
	Name         string
	Transferable bool
	Tradeable    bool
	Mutable      bool
	Deletable    bool
}

// TokenConfig declares a token of a contract. A zero authority means the
// contract owner.
type TokenConfig struct {
	Position              uint16
	MaxSupply             uint64 // 0 for unlimited
	MintAuthority         drive.Identifier
	FreezeAuthority       drive.Identifier
	EmergencyAuthority    drive.Identifier
	ConfigAuthority       drive.Identifier
	PriceAuthority        drive.Identifier
	AllowTransferToFrozen bool
}

// DataContract is the rlp record of a data contract.
type DataContract struct {
	ID            drive.Identifier
	Owner         drive.Identifier
	Version       uint32
	DocumentTypes []DocumentType
	Tokens        []TokenConfig
}

// DocumentType returns the document type with the given name.
func (c *DataContract) DocumentType(name string) (*DocumentType, bool) {
	for i := range c.DocumentTypes {
		if c.DocumentTypes[i].Name == name {
			return &c.DocumentTypes[i], true
		}
	}
	return nil, false
}

// Token returns the token at position.
func (c *DataContract) Token(position uint16) (*TokenConfig, bool) {
	for i := range c.Tokens {
		if c.Tokens[i].Position == position {
			return &c.Tokens[i], true
		}
	}
	return nil, false
}

// IsAuthorized reports whether actor holds authority.
func (c *DataContract) IsAuthorized(actor, authority drive.Identifier) bool {
	if authority.IsZero() {
		return actor == c.Owner
	}
	return actor == authority
}

// Copy returns a deep copy of the contract.
func (c *DataContract) Copy() *DataContract {
	cpy := *c
	cpy.DocumentTypes = append([]DocumentType(nil), c.DocumentTypes...)
	cpy.Tokens = append([]TokenConfig(nil), c.Tokens...)
	return &cpy
}

func contractsPath() grove.Path {
	return grove.Path{drive.ContractsTreeKey}
}

// GetContract returns the contract with id, or ErrContractNotFound.
func (s *State) GetContract(id drive.Identifier, tx *grove.Transaction) (*DataContract, error) {
	var c DataContract
	found, err := s.getRecord(contractsPath(), id[:], &c, tx)
	if err != nil {
		return nil, errors.WithMessagef(err, "get contract %v", id)
	}
	if !found {
		return nil, errors.Wrapf(ErrContractNotFound, "%v", id)
	}
	return &c, nil
}

// AddInsertContractOperations queues the creation of a new contract with the
// trees of its document types and tokens.
func (s *State) AddInsertContractOperations(batch *grove.Batch, c *DataContract) error {
	if err := putRecord(batch, contractsPath(), c.ID[:], c); err != nil {
		return err
	}
	batch.InsertEmptyTree(grove.Path{drive.DocumentsTreeKey}, c.ID[:])
	for _, dt := range c.DocumentTypes {
		batch.InsertEmptyTree(grove.Path{drive.DocumentsTreeKey, c.ID[:]}, []byte(dt.Name))
	}
	for _, tc := range c.Tokens {
		addInitTokenOperations(batch, drive.TokenID(c.ID, tc.Position))
	}
	return nil
}

// AddUpdateContractOperations queues an overwrite of the contract record.
// Document types and tokens must not change.
func (s *State) AddUpdateContractOperations(batch *grove.Batch, c *DataContract) error {
	return putRecord(batch, contractsPath(), c.ID[:], c)
}
