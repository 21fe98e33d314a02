// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platformcore/drive/drive"
	"github.com/platformcore/drive/grove"
	"github.com/platformcore/drive/test/datagen"
	"github.com/platformcore/drive/test/testdrive"
)

func newContract() *DataContract {
	return &DataContract{
		ID:      datagen.RandomIdentifier(),
		Owner:   datagen.RandomIdentifier(),
		Version: 1,
		DocumentTypes: []DocumentType{
			{Name: "note", Mutable: true, Deletable: true},
			{Name: "card", Transferable: true, Tradeable: true},
		},
		Tokens: []TokenConfig{
			{Position: 0, MaxSupply: 1000},
		},
	}
}

func newState(t *testing.T) *State {
	return New(testdrive.NewStore(t))
}

func apply(t *testing.T, s *State, fn func(batch *grove.Batch)) {
	batch := grove.NewBatch()
	fn(batch)
	testdrive.Apply(t, s.Store(), batch, nil)
}

func TestContract(t *testing.T) {
	s := newState(t)
	c := newContract()

	_, err := s.GetContract(c.ID, nil)
	assert.True(t, IsContractNotFound(err))

	apply(t, s, func(batch *grove.Batch) {
		require.NoError(t, s.AddInsertContractOperations(batch, c))
	})

	got, err := s.GetContract(c.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, c, got)

	dt, ok := got.DocumentType("card")
	require.True(t, ok)
	assert.True(t, dt.Tradeable)
	_, ok = got.DocumentType("missing")
	assert.False(t, ok)

	tc, ok := got.Token(0)
	require.True(t, ok)
	assert.Equal(t, uint64(1000), tc.MaxSupply)
	_, ok = got.Token(1)
	assert.False(t, ok)

	updated := got.Copy()
	updated.Version = 2
	updated.Tokens[0].MaxSupply = 5
	apply(t, s, func(batch *grove.Batch) {
		require.NoError(t, s.AddUpdateContractOperations(batch, updated))
	})
	assert.Equal(t, uint64(1000), got.Tokens[0].MaxSupply, "copy is deep")

	got, err = s.GetContract(c.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), got.Version)
	assert.Equal(t, uint64(5), got.Tokens[0].MaxSupply)
}

func TestContract_IsAuthorized(t *testing.T) {
	c := newContract()
	other := datagen.RandomIdentifier()

	assert.True(t, c.IsAuthorized(c.Owner, drive.Identifier{}))
	assert.False(t, c.IsAuthorized(other, drive.Identifier{}))
	assert.True(t, c.IsAuthorized(other, other))
	assert.False(t, c.IsAuthorized(c.Owner, other))
}

func TestDocument(t *testing.T) {
	s := newState(t)
	c := newContract()
	apply(t, s, func(batch *grove.Batch) {
		require.NoError(t, s.AddInsertContractOperations(batch, c))
	})

	doc := &Document{
		ID:        datagen.RandomIdentifier(),
		Owner:     datagen.RandomIdentifier(),
		Revision:  1,
		CreatedAt: 1000,
		UpdatedAt: 1000,
		Data:      []byte("hello"),
	}

	got, err := s.GetDocument(c.ID, "note", doc.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	apply(t, s, func(batch *grove.Batch) {
		require.NoError(t, s.AddPutDocumentOperations(batch, c.ID, "note", doc))
	})
	got, err = s.GetDocument(c.ID, "note", doc.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	apply(t, s, func(batch *grove.Batch) {
		s.AddDeleteDocumentOperations(batch, c.ID, "note", doc.ID)
	})
	got, err = s.GetDocument(c.ID, "note", doc.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = s.GetDocument(c.ID, "missing", doc.ID, nil)
	assert.True(t, grove.IsPathNotFound(err))
}

func TestToken(t *testing.T) {
	s := newState(t)
	c := newContract()
	apply(t, s, func(batch *grove.Batch) {
		require.NoError(t, s.AddInsertContractOperations(batch, c))
	})
	token := drive.TokenID(c.ID, 0)
	holder := datagen.RandomIdentifier()

	supply, err := s.GetTotalSupply(token, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), supply)

	balance, err := s.GetTokenBalance(token, holder, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)

	paused, err := s.IsTokenPaused(token, nil)
	require.NoError(t, err)
	assert.False(t, paused)

	apply(t, s, func(batch *grove.Batch) {
		s.AddSetTokenBalanceOperations(batch, token, holder, 40)
		s.AddSetTotalSupplyOperations(batch, token, 40)
		s.AddFreezeOperations(batch, token, holder)
		s.AddSetPausedOperations(batch, token, true)
		s.AddSetDirectPurchasePriceOperations(batch, token, 3)
		s.AddSetClaimableOperations(batch, token, holder, 7)
	})

	balance, err = s.GetTokenBalance(token, holder, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(40), balance)

	supply, err = s.GetTotalSupply(token, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(40), supply)

	frozen, err := s.IsTokenAccountFrozen(token, holder, nil)
	require.NoError(t, err)
	assert.True(t, frozen)

	paused, err = s.IsTokenPaused(token, nil)
	require.NoError(t, err)
	assert.True(t, paused)

	price, err := s.GetDirectPurchasePrice(token, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), price)

	claimable, err := s.GetClaimable(token, holder, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claimable)

	apply(t, s, func(batch *grove.Batch) {
		s.AddSetTokenBalanceOperations(batch, token, holder, 0)
		s.AddUnfreezeOperations(batch, token, holder)
		s.AddSetDirectPurchasePriceOperations(batch, token, 0)
		s.AddSetClaimableOperations(batch, token, holder, 0)
	})

	balance, err = s.GetTokenBalance(token, holder, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)

	frozen, err = s.IsTokenAccountFrozen(token, holder, nil)
	require.NoError(t, err)
	assert.False(t, frozen)

	price, err = s.GetDirectPurchasePrice(token, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), price)
}

func TestIdentity(t *testing.T) {
	s := newState(t)
	id := datagen.RandomIdentifier()
	contract := datagen.RandomIdentifier()

	ok, err := s.HasIdentity(id, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	balance, err := s.GetBalance(id, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)

	apply(t, s, func(batch *grove.Batch) {
		s.AddInsertIdentityOperations(batch, id, 100)
		require.NoError(t, s.AddSetNonceOperations(batch, id, contract, 3, nil))
	})

	ok, err = s.HasIdentity(id, nil)
	require.NoError(t, err)
	assert.True(t, ok)

	balance, err = s.GetBalance(id, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), balance)

	nonce, err := s.GetNonce(id, contract, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), nonce)

	nonce, err = s.GetNonce(id, datagen.RandomIdentifier(), nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), nonce)
}

func TestIdentity_NonceOnlyAdvances(t *testing.T) {
	s := newState(t)
	id := datagen.RandomIdentifier()
	contract := datagen.RandomIdentifier()

	apply(t, s, func(batch *grove.Batch) {
		s.AddInsertIdentityOperations(batch, id, 0)
		require.NoError(t, s.AddSetNonceOperations(batch, id, contract, 5, nil))
	})

	for _, nonce := range []uint64{5, 1, 0} {
		batch := grove.NewBatch()
		err := s.AddSetNonceOperations(batch, id, contract, nonce, nil)
		assert.True(t, errors.Is(err, ErrNonceNotAdvanced), "nonce %d", nonce)
		assert.True(t, batch.IsEmpty())
	}

	apply(t, s, func(batch *grove.Batch) {
		require.NoError(t, s.AddSetNonceOperations(batch, id, contract, 6, nil))
	})
	nonce, err := s.GetNonce(id, contract, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(6), nonce)
}
