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

// Keys of a token tree.
var (
	keyTokenBalances  = []byte("b")
	keyTokenFrozen    = []byte("f")
	keyTokenClaimable = []byte("c")
	keyTokenSupply    = []byte("supply")
	keyTokenPaused    = []byte("paused")
	keyTokenPrice     = []byte("price")
)

var (
	itemFalse = []byte{0}
	itemTrue  = []byte{1}
)

// TokenPath returns the tree of a token.
func TokenPath(tokenID drive.Identifier) grove.Path {
	return grove.Path{drive.TokensTreeKey, tokenID[:]}
}

func addInitTokenOperations(batch *grove.Batch, tokenID drive.Identifier) {
	path := TokenPath(tokenID)
	batch.InsertEmptyTree(grove.Path{drive.TokensTreeKey}, tokenID[:])
	batch.InsertEmptyTree(path, keyTokenBalances)
	batch.InsertEmptyTree(path, keyTokenFrozen)
	batch.InsertEmptyTree(path, keyTokenClaimable)
	batch.InsertItem(path, keyTokenSupply, drive.EncodeUint64(0))
	batch.InsertItem(path, keyTokenPaused, itemFalse)
}

// GetTokenBalance returns the balance of identity, zero if it never held the token.
func (s *State) GetTokenBalance(tokenID, identity drive.Identifier, tx *grove.Transaction) (uint64, error) {
	v, err := drive.GetUint64OrZero(s.store, TokenPath(tokenID).Child(keyTokenBalances), identity[:], tx)
	return v, errors.WithMessagef(err, "token %v balance of %v", tokenID, identity)
}

// AddSetTokenBalanceOperations queues an overwrite of the balance of identity.
func (s *State) AddSetTokenBalanceOperations(batch *grove.Batch, tokenID, identity drive.Identifier, amount uint64) {
	path := TokenPath(tokenID).Child(keyTokenBalances)
	if amount == 0 {
		batch.DeleteIfExists(path, identity[:])
		return
	}
	batch.InsertItem(path, identity[:], drive.EncodeUint64(amount))
}

// GetTotalSupply returns the tokens in circulation.
func (s *State) GetTotalSupply(tokenID drive.Identifier, tx *grove.Transaction) (uint64, error) {
	v, err := drive.GetUint64(s.store, TokenPath(tokenID), keyTokenSupply, tx)
	return v, errors.WithMessagef(err, "token %v supply", tokenID)
}

// AddSetTotalSupplyOperations queues an overwrite of the total supply.
func (s *State) AddSetTotalSupplyOperations(batch *grove.Batch, tokenID drive.Identifier, supply uint64) {
	batch.InsertItem(TokenPath(tokenID), keyTokenSupply, drive.EncodeUint64(supply))
}

// IsTokenAccountFrozen returns whether identity is frozen for the token.
func (s *State) IsTokenAccountFrozen(tokenID, identity drive.Identifier, tx *grove.Transaction) (bool, error) {
	ok, err := s.store.Has(TokenPath(tokenID).Child(keyTokenFrozen), identity[:], tx)
	return ok, errors.WithMessagef(err, "token %v frozen %v", tokenID, identity)
}

// AddFreezeOperations queues the freeze of identity.
func (s *State) AddFreezeOperations(batch *grove.Batch, tokenID, identity drive.Identifier) {
	batch.InsertItem(TokenPath(tokenID).Child(keyTokenFrozen), identity[:], itemTrue)
}

// AddUnfreezeOperations queues the unfreeze of identity.
func (s *State) AddUnfreezeOperations(batch *grove.Batch, tokenID, identity drive.Identifier) {
	batch.DeleteIfExists(TokenPath(tokenID).Child(keyTokenFrozen), identity[:])
}

// IsTokenPaused returns whether the token is paused by an emergency action.
func (s *State) IsTokenPaused(tokenID drive.Identifier, tx *grove.Transaction) (bool, error) {
	elem, err := s.store.Get(TokenPath(tokenID), keyTokenPaused, tx)
	if err != nil {
		return false, errors.WithMessagef(err, "token %v paused", tokenID)
	}
	if !elem.IsItem() {
		return false, errors.Wrapf(drive.ErrCorruptedNotItem, "token %v paused", tokenID)
	}
	if len(elem.Value) != 1 {
		return false, errors.Wrapf(drive.ErrCorruptedLength, "token %v paused", tokenID)
	}
	return elem.Value[0] != 0, nil
}

// AddSetPausedOperations queues the pause state of the token.
func (s *State) AddSetPausedOperations(batch *grove.Batch, tokenID drive.Identifier, paused bool) {
	v := itemFalse
	if paused {
		v = itemTrue
	}
	batch.InsertItem(TokenPath(tokenID), keyTokenPaused, v)
}

// GetDirectPurchasePrice returns the unit price of the token, zero if not for sale.
func (s *State) GetDirectPurchasePrice(tokenID drive.Identifier, tx *grove.Transaction) (uint64, error) {
	v, err := drive.GetUint64OrZero(s.store, TokenPath(tokenID), keyTokenPrice, tx)
	return v, errors.WithMessagef(err, "token %v price", tokenID)
}

// AddSetDirectPurchasePriceOperations queues the unit price; zero removes it.
func (s *State) AddSetDirectPurchasePriceOperations(batch *grove.Batch, tokenID drive.Identifier, price uint64) {
	if price == 0 {
		batch.DeleteIfExists(TokenPath(tokenID), keyTokenPrice)
		return
	}
	batch.InsertItem(TokenPath(tokenID), keyTokenPrice, drive.EncodeUint64(price))
}

// GetClaimable returns the tokens identity may claim.
func (s *State) GetClaimable(tokenID, identity drive.Identifier, tx *grove.Transaction) (uint64, error) {
	v, err := drive.GetUint64OrZero(s.store, TokenPath(tokenID).Child(keyTokenClaimable), identity[:], tx)
	return v, errors.WithMessagef(err, "token %v claimable of %v", tokenID, identity)
}

// AddSetClaimableOperations queues the claimable amount of identity; zero removes it.
func (s *State) AddSetClaimableOperations(batch *grove.Batch, tokenID, identity drive.Identifier, amount uint64) {
	path := TokenPath(tokenID).Child(keyTokenClaimable)
	if amount == 0 {
		batch.DeleteIfExists(path, identity[:])
		return
	}
	batch.InsertItem(path, identity[:], drive.EncodeUint64(amount))
}
