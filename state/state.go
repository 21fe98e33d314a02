// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state reads and writes the drive records: data contracts,
// documents, tokens and identities.
package state

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/platformcore/drive/drive"
	"github.com/platformcore/drive/grove"
)

var (
	// ErrContractNotFound is returned when a referenced data contract does not exist.
	ErrContractNotFound = errors.New("data contract not found")
	// ErrNonceNotAdvanced is returned when a nonce write would not move the stored nonce forward.
	ErrNonceNotAdvanced = errors.New("identity contract nonce not advanced")
)

// IsContractNotFound reports whether err is caused by a missing contract.
func IsContractNotFound(err error) bool {
	return errors.Is(err, ErrContractNotFound)
}

// ContractFetcher loads data contracts.
type ContractFetcher interface {
	GetContract(id drive.Identifier, tx *grove.Transaction) (*DataContract, error)
}

// State is the access layer of drive records over a grove store.
// Writes are only queued into batches.
type State struct {
	store *grove.Store
}

// New creates the state over store.
func New(store *grove.Store) *State {
	return &State{store: store}
}

// Store returns the underlying store.
func (s *State) Store() *grove.Store {
	return s.store
}

// getRecord decodes the rlp item at path/key into out.
// It returns false if the key does not exist.
func (s *State) getRecord(path grove.Path, key []byte, out any, tx *grove.Transaction) (bool, error) {
	elem, err := s.store.Get(path, key, tx)
	if err != nil {
		if grove.IsKeyNotFound(err) {
			return false, nil
		}
		return false, err
	}
	if !elem.IsItem() {
		return false, errors.Wrapf(drive.ErrCorruptedNotItem, "%v/%x", path, key)
	}
	if err := rlp.DecodeBytes(elem.Value, out); err != nil {
		return false, errors.Wrapf(err, "decode %v/%x", path, key)
	}
	return true, nil
}

func putRecord(batch *grove.Batch, path grove.Path, key []byte, val any) error {
	data, err := rlp.EncodeToBytes(val)
	if err != nil {
		return errors.Wrapf(err, "encode %v/%x", path, key)
	}
	batch.InsertItem(path, key, data)
	return nil
}
