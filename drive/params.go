// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package drive

import "github.com/platformcore/drive/grove"

// Constants of fee distribution.
const (
	// EpochsPerYear is the number of epochs storage fees are spread over per year.
	EpochsPerYear uint16 = 20
	// PerpetualStorageYears is how many years stored data is paid for in advance.
	PerpetualStorageYears uint16 = 50
	// PerpetualStorageEpochs is the total window storage fees are distributed over.
	PerpetualStorageEpochs = EpochsPerYear * PerpetualStorageYears

	// DefaultEpochDuration is the default epoch length in milliseconds (one year / EpochsPerYear).
	DefaultEpochDuration int64 = 1_576_800_000
	// DefaultFeeMultiplier is the default fee multiplier of a new epoch.
	DefaultFeeMultiplier uint64 = 1
)

// Top level tree keys of the drive store.
var (
	ContractsTreeKey  = []byte{0x01}
	DocumentsTreeKey  = []byte{0x02}
	TokensTreeKey     = []byte{0x03}
	IdentitiesTreeKey = []byte{0x04}
	FeePoolsTreeKey   = []byte{0x05}
)

// Keys of items stored directly under the fee pools tree.
var (
	KeyStorageFeePool = []byte("s")
	KeyGenesisTime    = []byte("g")
	KeyUnpaidEpoch    = []byte("u")
)

// TopLevelTrees lists every tree created when the store is initialized.
func TopLevelTrees() [][]byte {
	return [][]byte{
		ContractsTreeKey,
		DocumentsTreeKey,
		TokensTreeKey,
		IdentitiesTreeKey,
		FeePoolsTreeKey,
	}
}

// FeePoolsPath returns the path of the fee pools tree.
func FeePoolsPath() grove.Path {
	return grove.Path{FeePoolsTreeKey}
}

// InitOperations adds the creation of every top level tree and the empty
// fee pools to batch.
func InitOperations(batch *grove.Batch, genesisTime int64) {
	for _, key := range TopLevelTrees() {
		batch.InsertEmptyTree(nil, key)
	}
	batch.InsertItem(FeePoolsPath(), KeyStorageFeePool, EncodeUint64(0))
	batch.InsertItem(FeePoolsPath(), KeyGenesisTime, EncodeInt64(genesisTime))
}
