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
	"github.com/platformcore/drive/fee/epoch"
	"github.com/platformcore/drive/fee/pools"
	"github.com/platformcore/drive/grove"
	"github.com/platformcore/drive/test/testdrive"
)

func setStorageFeePool(t *testing.T, store *grove.Store, amount uint64) {
	batch := grove.NewBatch()
	pools.AddUpdateStorageFeePoolOperations(batch, amount)
	testdrive.Apply(t, store, batch, nil)
}

func storageFeePool(t *testing.T, store *grove.Store) uint64 {
	pool, err := pools.GetStorageFeePool(store, nil)
	require.NoError(t, err)
	return pool
}

func TestDistributeStorageFees(t *testing.T) {
	store := testdrive.NewStore(t)
	setStorageFeePool(t, store, 1_000_000)

	res, err := distributeStorageFees(store, 42, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), res.Pool)
	assert.Equal(t, uint64(180), res.Leftover)

	assert.Equal(t, res.Leftover, storageFeePool(t, store))

	var distributed uint64
	for i := range drive.PerpetualStorageEpochs {
		fee, err := epoch.New(store, 42+i).GetStorageFee(nil)
		require.NoError(t, err)
		distributed += fee
	}
	assert.Equal(t, uint64(1_000_000), distributed+storageFeePool(t, store))

	// the leftover is distributed by the next run
	res, err = distributeStorageFees(store, 43, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(180), res.Pool)
	assert.Equal(t, uint64(180), res.Leftover)
	assert.Equal(t, uint64(180), storageFeePool(t, store))
}

func TestDistributeStorageFees_DryRun(t *testing.T) {
	store := testdrive.NewStore(t)
	setStorageFeePool(t, store, 1_000_000)

	res, err := distributeStorageFees(store, 0, true)
	require.NoError(t, err)
	assert.Equal(t, uint64(180), res.Leftover)

	assert.Equal(t, uint64(1_000_000), storageFeePool(t, store))
	initialized, err := epoch.New(store, 0).IsInitialized(nil)
	require.NoError(t, err)
	assert.False(t, initialized)
}

func TestDistributeStorageFees_EmptyPool(t *testing.T) {
	store := testdrive.NewStore(t)

	res, err := distributeStorageFees(store, 0, false)
	require.NoError(t, err)
	assert.Zero(t, res.Pool)
	assert.Zero(t, storageFeePool(t, store))
}
