// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package distribution spreads the storage fee pool over the epochs of the
// perpetual storage window.
package distribution

import (
	"math"

	"github.com/pkg/errors"

	"github.com/platformcore/drive/drive"
	"github.com/platformcore/drive/fee/epoch"
	"github.com/platformcore/drive/fee/pools"
	"github.com/platformcore/drive/grove"
	"github.com/platformcore/drive/log"
)

var logger = log.WithContext("pkg", "distribution")

// Result describes one distribution run.
type Result struct {
	Pool          uint64 // pool value distributed
	Leftover      uint64 // truncation remainder, not credited to any epoch
	EpochsUpdated int
}

// Distributor credits epochs with their share of the storage fee pool.
type Distributor struct {
	store *grove.Store
}

// New creates a distributor over store.
func New(store *grove.Store) *Distributor {
	return &Distributor{store: store}
}

// AddDistributeStorageFeeToEpochsOperations queues the credit of every epoch
// in [currentEpoch, currentEpoch+PerpetualStorageEpochs) with its share of the
// storage fee pool, and returns what was left undistributed.
// An empty pool queues nothing. The pool itself is left untouched.
func (d *Distributor) AddDistributeStorageFeeToEpochsOperations(currentEpoch uint16, tx *grove.Transaction, batch *grove.Batch) (uint64, error) {
	res, err := d.distribute(currentEpoch, tx, batch)
	if err != nil {
		return 0, err
	}
	return res.Leftover, nil
}

// AddDistributeAndResetOperations distributes the pool like
// AddDistributeStorageFeeToEpochsOperations, then queues the pool reset to zero.
// The leftover is dropped from the pool; callers decide where it goes.
func (d *Distributor) AddDistributeAndResetOperations(currentEpoch uint16, tx *grove.Transaction, batch *grove.Batch) (*Result, error) {
	res, err := d.distribute(currentEpoch, tx, batch)
	if err != nil {
		return nil, err
	}
	if res.Pool > 0 {
		pools.AddUpdateStorageFeePoolOperations(batch, 0)
	}
	return res, nil
}

func (d *Distributor) distribute(currentEpoch uint16, tx *grove.Transaction, batch *grove.Batch) (*Result, error) {
	pool, err := pools.GetStorageFeePool(d.store, tx)
	if err != nil {
		return nil, err
	}
	if pool == 0 {
		return &Result{}, nil
	}
	if uint32(currentEpoch)+uint32(drive.PerpetualStorageEpochs)-1 > math.MaxUint16 {
		return nil, errors.Wrapf(drive.ErrArithmeticOverflow, "epoch %d: distribution window past last epoch", currentEpoch)
	}

	res := &Result{Pool: pool}
	leftover := pool
	for year, ratio := range Table {
		share, err := ratio.MulDivFloor(pool, uint64(drive.EpochsPerYear))
		if err != nil {
			return nil, err
		}
		first := currentEpoch + uint16(year)*drive.EpochsPerYear
		for i := range drive.EpochsPerYear {
			if err := d.credit(epoch.New(d.store, first+i), share, tx, batch); err != nil {
				return nil, err
			}
			if leftover, err = drive.CheckedSub(leftover, share, "storage fee leftover"); err != nil {
				return nil, err
			}
			res.EpochsUpdated++
		}
	}
	res.Leftover = leftover

	logger.Debug("distributed storage fees", "epoch", currentEpoch, "pool", pool, "leftover", leftover)
	return res, nil
}

func (d *Distributor) credit(pool *epoch.Pool, share uint64, tx *grove.Transaction, batch *grove.Batch) error {
	current, err := pool.GetStorageFee(tx)
	switch {
	case err == nil:
	case grove.IsPathNotFound(err):
		// future epoch, created on the fly
		pool.AddInitEmptyOperations(batch)
		current = 0
	case grove.IsKeyNotFound(err):
		current = 0
	default:
		return err
	}
	updated, err := drive.CheckedAdd(current, share, "epoch storage fee")
	if err != nil {
		return errors.WithMessagef(err, "%v", pool)
	}
	pool.AddUpdateStorageFeeOperations(batch, updated)
	return nil
}
