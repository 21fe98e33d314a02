// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package epoch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platformcore/drive/drive"
	"github.com/platformcore/drive/grove"
	"github.com/platformcore/drive/test/testdrive"
)

func initEmpty(t *testing.T, store *grove.Store, index uint16, tx *grove.Transaction) *Pool {
	pool := New(store, index)
	batch := grove.NewBatch()
	pool.AddInitEmptyOperations(batch)
	testdrive.Apply(t, store, batch, tx)
	return pool
}

func initCurrent(t *testing.T, store *grove.Store, index uint16, tx *grove.Transaction) *Pool {
	pool := initEmpty(t, store, index, tx)
	batch := grove.NewBatch()
	pool.AddInitCurrentOperations(batch, 1, 1, 1)
	testdrive.Apply(t, store, batch, tx)
	return pool
}

func TestPool_Key(t *testing.T) {
	pool := New(nil, 1042)
	assert.Equal(t, []byte{0x12, 0x04}, pool.Key())
	assert.Equal(t, grove.Path{drive.FeePoolsTreeKey, {0x12, 0x04}}, pool.Path())
	assert.Equal(t, uint16(1042), pool.Index())
}

func TestPool_InitEmpty(t *testing.T) {
	t.Run("storage fee is zero", func(t *testing.T) {
		store := testdrive.NewStore(t)
		tx := store.StartTransaction()
		defer tx.Rollback()

		for _, index := range []uint16{0, 1, 1042, 65535} {
			pool := initEmpty(t, store, index, tx)

			fee, err := pool.GetStorageFee(tx)
			require.NoError(t, err)
			assert.Equal(t, uint64(0), fee)

			ok, err := pool.IsInitialized(tx)
			require.NoError(t, err)
			assert.True(t, ok)
		}
	})

	t.Run("fails without fee pools tree", func(t *testing.T) {
		store := testdrive.NewEmptyStore(t)

		batch := grove.NewBatch()
		New(store, 1042).AddInitEmptyOperations(batch)
		err := store.ApplyBatch(batch, false, nil)
		assert.True(t, grove.IsPathNotFound(err))
	})
}

func TestPool_InitCurrent(t *testing.T) {
	store := testdrive.NewStore(t)
	tx := store.StartTransaction()
	defer tx.Rollback()

	pool := initEmpty(t, store, 1042, tx)

	batch := grove.NewBatch()
	pool.AddInitCurrentOperations(batch, 42, 2, 1)
	testdrive.Apply(t, store, batch, tx)

	multiplier, err := pool.GetFeeMultiplier(tx)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), multiplier)

	startTime, err := pool.GetStartTime(tx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), startTime)

	startHeight, err := pool.GetStartBlockHeight(tx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), startHeight)

	processingFee, err := pool.GetProcessingFee(tx)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), processingFee)

	proposers, err := pool.GetProposers(1, tx)
	require.NoError(t, err)
	assert.Empty(t, proposers)
}

func TestPool_MarkAsPaid(t *testing.T) {
	store := testdrive.NewStore(t)
	tx := store.StartTransaction()
	defer tx.Rollback()

	pool := initCurrent(t, store, 7, tx)

	for range 2 {
		// the second run proves the deletes are idempotent
		batch := grove.NewBatch()
		pool.AddMarkAsPaidOperations(batch)
		testdrive.Apply(t, store, batch, tx)
	}

	_, err := pool.GetProposers(10, tx)
	assert.True(t, grove.IsPathNotFound(err))

	_, err = pool.GetStorageFee(tx)
	assert.True(t, grove.IsKeyNotFound(err))

	_, err = pool.GetProcessingFee(tx)
	assert.True(t, grove.IsKeyNotFound(err))

	// paid and uninitialized epochs fail differently
	_, err = New(store, 8).GetStorageFee(tx)
	assert.True(t, grove.IsPathNotFound(err))
}

func TestPool_GetterErrors(t *testing.T) {
	store := testdrive.NewStore(t)
	tx := store.StartTransaction()
	defer tx.Rollback()

	t.Run("uninitialized", func(t *testing.T) {
		_, err := New(store, 3).GetStartTime(tx)
		assert.True(t, grove.IsPathNotFound(err))
	})

	pool := initEmpty(t, store, 4, tx)

	t.Run("tree instead of item", func(t *testing.T) {
		batch := grove.NewBatch()
		batch.InsertEmptyTree(pool.Path(), KeyStartTime)
		testdrive.Apply(t, store, batch, tx)

		_, err := pool.GetStartTime(tx)
		assert.ErrorIs(t, err, drive.ErrCorruptedNotItem)
	})

	t.Run("wrong length", func(t *testing.T) {
		batch := grove.NewBatch()
		batch.InsertItem(pool.Path(), KeyFeeMultiplier, []byte{1, 2, 3})
		batch.InsertItem(pool.Path(), KeyStartBlockHeight, make([]byte, 9))
		testdrive.Apply(t, store, batch, tx)

		_, err := pool.GetFeeMultiplier(tx)
		assert.ErrorIs(t, err, drive.ErrCorruptedLength)

		_, err = pool.GetStartBlockHeight(tx)
		assert.ErrorIs(t, err, drive.ErrCorruptedLength)
		assert.True(t, drive.IsCorrupted(err))
	})
}

func TestPool_Fees(t *testing.T) {
	store := testdrive.NewStore(t)
	tx := store.StartTransaction()
	defer tx.Rollback()

	pool := initCurrent(t, store, 9, tx)

	batch := grove.NewBatch()
	pool.AddUpdateStorageFeeOperations(batch, 300)
	testdrive.Apply(t, store, batch, tx)

	for _, amount := range []uint64{10, 20, 30} {
		batch := grove.NewBatch()
		require.NoError(t, pool.AddIncreaseProcessingFeeOperations(batch, amount, tx))
		testdrive.Apply(t, store, batch, tx)
	}

	total, err := pool.GetTotalFees(tx)
	require.NoError(t, err)
	assert.Equal(t, uint64(360), total)

	overflow := grove.NewBatch()
	pool.AddUpdateProcessingFeeOperations(overflow, ^uint64(0))
	testdrive.Apply(t, store, overflow, tx)

	err = pool.AddIncreaseProcessingFeeOperations(grove.NewBatch(), 1, tx)
	assert.True(t, drive.IsArithmeticOverflow(err))
}
