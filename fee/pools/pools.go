// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package pools keeps the aggregate values stored directly under the fee pools tree.
package pools

import (
	"math"

	"github.com/pkg/errors"

	"github.com/platformcore/drive/drive"
	"github.com/platformcore/drive/grove"
)

// GetStorageFeePool returns the undistributed storage credits.
func GetStorageFeePool(store *grove.Store, tx *grove.Transaction) (uint64, error) {
	v, err := drive.GetUint64(store, drive.FeePoolsPath(), drive.KeyStorageFeePool, tx)
	if err != nil {
		return 0, errors.Wrap(err, "get storage fee pool")
	}
	return v, nil
}

// AddUpdateStorageFeePoolOperations queues an overwrite of the storage fee pool.
func AddUpdateStorageFeePoolOperations(batch *grove.Batch, amount uint64) {
	batch.InsertItem(drive.FeePoolsPath(), drive.KeyStorageFeePool, drive.EncodeUint64(amount))
}

// AddIncreaseStorageFeePoolOperations queues pool += amount.
func AddIncreaseStorageFeePoolOperations(store *grove.Store, batch *grove.Batch, amount uint64, tx *grove.Transaction) error {
	current, err := GetStorageFeePool(store, tx)
	if err != nil {
		return err
	}
	updated, err := drive.CheckedAdd(current, amount, "storage fee pool")
	if err != nil {
		return err
	}
	AddUpdateStorageFeePoolOperations(batch, updated)
	return nil
}

// GetGenesisTime returns the time in milliseconds epoch 0 started at.
func GetGenesisTime(store *grove.Store, tx *grove.Transaction) (int64, error) {
	elem, err := store.Get(drive.FeePoolsPath(), drive.KeyGenesisTime, tx)
	if err != nil {
		return 0, errors.Wrap(err, "get genesis time")
	}
	v, err := drive.DecodeInt64Item(elem)
	if err != nil {
		return 0, errors.Wrap(err, "genesis time")
	}
	return v, nil
}

// AddUpdateGenesisTimeOperations queues an overwrite of the genesis time.
func AddUpdateGenesisTimeOperations(batch *grove.Batch, genesisTime int64) {
	batch.InsertItem(drive.FeePoolsPath(), drive.KeyGenesisTime, drive.EncodeInt64(genesisTime))
}

// GetNextUnpaidEpoch returns the index of the oldest epoch not paid yet.
// It is zero until an epoch is paid and math.MaxUint16+1 once every epoch is.
func GetNextUnpaidEpoch(store *grove.Store, tx *grove.Transaction) (uint32, error) {
	v, err := drive.GetUint64OrZero(store, drive.FeePoolsPath(), drive.KeyUnpaidEpoch, tx)
	if err != nil {
		return 0, errors.Wrap(err, "get next unpaid epoch")
	}
	if v > math.MaxUint16+1 {
		return 0, errors.Wrapf(grove.ErrCorruptedElement, "next unpaid epoch %d", v)
	}
	return uint32(v), nil
}

// AddUpdateNextUnpaidEpochOperations queues an overwrite of the next unpaid epoch index.
func AddUpdateNextUnpaidEpochOperations(batch *grove.Batch, next uint32) {
	batch.InsertItem(drive.FeePoolsPath(), drive.KeyUnpaidEpoch, drive.EncodeUint64(uint64(next)))
}

// ProcessingFee returns base*multiplier raised by userFeeIncrease percent.
func ProcessingFee(base, multiplier uint64, userFeeIncrease uint16) (uint64, error) {
	fee, err := drive.CheckedMul(base, multiplier, "processing fee")
	if err != nil {
		return 0, err
	}
	fee, err = drive.CheckedMul(fee, 100+uint64(userFeeIncrease), "processing fee")
	if err != nil {
		return 0, err
	}
	return fee / 100, nil
}

// StorageFee returns the credits charged for storing size bytes.
func StorageFee(size int, perByte uint64) (uint64, error) {
	return drive.CheckedMul(uint64(size), perByte, "storage fee")
}
