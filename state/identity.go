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

var (
	keyIdentityBalance = []byte("balance")
	keyIdentityNonces  = []byte("n")
)

// IdentityPath returns the tree of an identity.
func IdentityPath(id drive.Identifier) grove.Path {
	return grove.Path{drive.IdentitiesTreeKey, id[:]}
}

// HasIdentity returns whether the identity tree exists.
func (s *State) HasIdentity(id drive.Identifier, tx *grove.Transaction) (bool, error) {
	ok, err := s.store.Has(grove.Path{drive.IdentitiesTreeKey}, id[:], tx)
	return ok, errors.WithMessagef(err, "identity %v", id)
}

// AddInsertIdentityOperations queues the creation of an identity with balance credits.
func (s *State) AddInsertIdentityOperations(batch *grove.Batch, id drive.Identifier, balance uint64) {
	batch.InsertEmptyTree(grove.Path{drive.IdentitiesTreeKey}, id[:])
	batch.InsertEmptyTree(IdentityPath(id), keyIdentityNonces)
	s.AddSetBalanceOperations(batch, id, balance)
}

// GetBalance returns the credit balance of an identity, zero if it does not exist.
func (s *State) GetBalance(id drive.Identifier, tx *grove.Transaction) (uint64, error) {
	v, err := drive.GetUint64OrZero(s.store, IdentityPath(id), keyIdentityBalance, tx)
	return v, errors.WithMessagef(err, "identity %v balance", id)
}

// AddSetBalanceOperations queues an overwrite of the credit balance.
func (s *State) AddSetBalanceOperations(batch *grove.Batch, id drive.Identifier, balance uint64) {
	batch.InsertItem(IdentityPath(id), keyIdentityBalance, drive.EncodeUint64(balance))
}

// GetNonce returns the identity-contract nonce, zero if never set.
func (s *State) GetNonce(id, contractID drive.Identifier, tx *grove.Transaction) (uint64, error) {
	v, err := drive.GetUint64OrZero(s.store, IdentityPath(id).Child(keyIdentityNonces), contractID[:], tx)
	return v, errors.WithMessagef(err, "identity %v nonce for %v", id, contractID)
}

// AddSetNonceOperations queues nonce as the identity-contract nonce read through tx.
// Nonces only move forward: ErrNonceNotAdvanced is returned if nonce is not
// above the stored one.
func (s *State) AddSetNonceOperations(batch *grove.Batch, id, contractID drive.Identifier, nonce uint64, tx *grove.Transaction) error {
	stored, err := s.GetNonce(id, contractID, tx)
	if err != nil {
		return err
	}
	if nonce <= stored {
		return errors.Wrapf(ErrNonceNotAdvanced, "identity %v contract %v: stored %d, got %d", id, contractID, stored, nonce)
	}
	batch.InsertItem(IdentityPath(id).Child(keyIdentityNonces), contractID[:], drive.EncodeUint64(nonce))
	return nil
}
