// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testdrive builds initialized in-memory stores for tests.
package testdrive

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/platformcore/drive/drive"
	"github.com/platformcore/drive/grove"
	"github.com/platformcore/drive/lvldb"
)

// NewEmptyStore returns a store without any tree.
func NewEmptyStore(t testing.TB) *grove.Store {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return grove.New(db)
}

// NewStore returns a store with all top level trees and empty fee pools.
func NewStore(t testing.TB) *grove.Store {
	store := NewEmptyStore(t)
	batch := grove.NewBatch()
	drive.InitOperations(batch, 0)
	require.NoError(t, store.ApplyBatch(batch, false, nil))
	return store
}

// Apply applies batch for real in tx, or directly when tx is nil.
func Apply(t testing.TB, store *grove.Store, batch *grove.Batch, tx *grove.Transaction) {
	require.NoError(t, store.ApplyBatch(batch, false, tx))
}
