// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package epoch

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/platformcore/drive/drive"
	"github.com/platformcore/drive/grove"
)

// Pool owns the subtree of one epoch under the fee pools tree.
// All Add*Operations methods only queue operations into a batch;
// nothing is visible until the batch is applied.
type Pool struct {
	store *grove.Store
	index uint16
	key   []byte
}

// New creates the pool of the epoch with the given index.
func New(store *grove.Store, index uint16) *Pool {
	return &Pool{
		store: store,
		index: index,
		key:   drive.EncodeUint16(index),
	}
}

// Index returns the epoch index.
func (p *Pool) Index() uint16 {
	return p.index
}

// Key returns the 2-byte little-endian key of the epoch tree.
func (p *Pool) Key() []byte {
	return p.key
}

// Path returns the path of the epoch tree.
func (p *Pool) Path() grove.Path {
	return drive.FeePoolsPath().Child(p.key)
}

func (p *Pool) proposersPath() grove.Path {
	return p.Path().Child(KeyProposers)
}

func (p *Pool) String() string {
	return fmt.Sprintf("epoch(%d)", p.index)
}

// AddInitEmptyOperations queues the creation of the epoch tree with a zero storage fee.
// Applying fails with a path not found error if the fee pools tree does not exist.
func (p *Pool) AddInitEmptyOperations(batch *grove.Batch) {
	batch.InsertEmptyTree(drive.FeePoolsPath(), p.key)
	p.AddUpdateStorageFeeOperations(batch, 0)
}

// AddInitCurrentOperations queues the operations that make an empty epoch the current one.
func (p *Pool) AddInitCurrentOperations(batch *grove.Batch, multiplier uint64, startBlockHeight uint64, startTime int64) {
	path := p.Path()
	batch.InsertItem(path, KeyStartBlockHeight, drive.EncodeUint64(startBlockHeight))
	p.AddUpdateProcessingFeeOperations(batch, 0)
	batch.InsertEmptyTree(path, KeyProposers)
	batch.InsertItem(path, KeyFeeMultiplier, drive.EncodeUint64(multiplier))
	batch.InsertItem(path, KeyStartTime, drive.EncodeInt64(startTime))
}

// AddMarkAsPaidOperations queues the removal of everything paid out of the epoch.
// The deletes tolerate prior absence.
func (p *Pool) AddMarkAsPaidOperations(batch *grove.Batch) {
	path := p.Path()
	batch.DeleteIfExists(path, KeyProposers)
	batch.DeleteIfExists(path, KeyStorageFee)
	batch.DeleteIfExists(path, KeyProcessingFee)
}

// AddUpdateStorageFeeOperations queues an overwrite of the storage fee.
func (p *Pool) AddUpdateStorageFeeOperations(batch *grove.Batch, fee uint64) {
	batch.InsertItem(p.Path(), KeyStorageFee, drive.EncodeUint64(fee))
}

// AddUpdateProcessingFeeOperations queues an overwrite of the processing fee.
func (p *Pool) AddUpdateProcessingFeeOperations(batch *grove.Batch, fee uint64) {
	batch.InsertItem(p.Path(), KeyProcessingFee, drive.EncodeUint64(fee))
}

// IsInitialized returns whether the epoch tree exists.
func (p *Pool) IsInitialized(tx *grove.Transaction) (bool, error) {
	return p.store.Has(drive.FeePoolsPath(), p.key, tx)
}

func (p *Pool) getUint64(key []byte, what string, tx *grove.Transaction) (uint64, error) {
	v, err := drive.GetUint64(p.store, p.Path(), key, tx)
	if err != nil {
		return 0, errors.Wrapf(err, "%v: get %s", p, what)
	}
	return v, nil
}

// GetStartTime returns the start time of the epoch in milliseconds.
func (p *Pool) GetStartTime(tx *grove.Transaction) (int64, error) {
	v, err := p.getUint64(KeyStartTime, "start time", tx)
	return int64(v), err
}

// GetStartBlockHeight returns the height of the first block of the epoch.
func (p *Pool) GetStartBlockHeight(tx *grove.Transaction) (uint64, error) {
	return p.getUint64(KeyStartBlockHeight, "start block height", tx)
}

// GetFeeMultiplier returns the fee multiplier of the epoch.
func (p *Pool) GetFeeMultiplier(tx *grove.Transaction) (uint64, error) {
	return p.getUint64(KeyFeeMultiplier, "fee multiplier", tx)
}

// GetStorageFee returns the storage credits distributed to the epoch.
func (p *Pool) GetStorageFee(tx *grove.Transaction) (uint64, error) {
	return p.getUint64(KeyStorageFee, "storage fee", tx)
}

// GetProcessingFee returns the processing fees collected during the epoch.
func (p *Pool) GetProcessingFee(tx *grove.Transaction) (uint64, error) {
	return p.getUint64(KeyProcessingFee, "processing fee", tx)
}

// GetTotalFees returns processing plus storage fees of the epoch.
func (p *Pool) GetTotalFees(tx *grove.Transaction) (uint64, error) {
	processing, err := p.GetProcessingFee(tx)
	if err != nil {
		return 0, err
	}
	storage, err := p.GetStorageFee(tx)
	if err != nil {
		return 0, err
	}
	return drive.CheckedAdd(processing, storage, "epoch total fees")
}

// AddIncreaseProcessingFeeOperations queues processing fee += amount.
func (p *Pool) AddIncreaseProcessingFeeOperations(batch *grove.Batch, amount uint64, tx *grove.Transaction) error {
	current, err := p.GetProcessingFee(tx)
	if err != nil {
		return err
	}
	updated, err := drive.CheckedAdd(current, amount, "epoch processing fee")
	if err != nil {
		return err
	}
	p.AddUpdateProcessingFeeOperations(batch, updated)
	return nil
}
