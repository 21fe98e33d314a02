// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package executor executes blocks of batch transitions against the drive store
// and keeps the fee pools up to date.
package executor

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/platformcore/drive/action"
	"github.com/platformcore/drive/batch"
	"github.com/platformcore/drive/cache"
	"github.com/platformcore/drive/drive"
	"github.com/platformcore/drive/fee/distribution"
	"github.com/platformcore/drive/fee/epoch"
	"github.com/platformcore/drive/fee/pools"
	"github.com/platformcore/drive/grove"
	"github.com/platformcore/drive/log"
	"github.com/platformcore/drive/metrics"
	"github.com/platformcore/drive/state"
	"github.com/platformcore/drive/trigger"
)

var (
	logger = log.WithContext("pkg", "executor")

	metricBlockExecution       = metrics.LazyLoadHistogram("block_execution_duration_ms", metrics.BucketExecution)
	metricDistributionLeftover = metrics.LazyLoadCounter("fee_distribution_leftover")
	metricEpochsPaid           = metrics.LazyLoadCounter("epochs_paid_count")
	metricStorageFeePool       = metrics.LazyLoadGauge("storage_fee_pool")
)

// ErrBlockBeforeGenesis is returned for blocks timed before the genesis time.
var ErrBlockBeforeGenesis = errors.New("block time before genesis")

// BlockResult summarizes the execution of one block.
type BlockResult struct {
	Epoch         uint16
	EpochChanged  bool
	Results       []*batch.Result
	Applied       int // actions written, bumps included
	ProcessingFee uint64
	StorageFee    uint64
	Distribution  *distribution.Result // nil unless the epoch changed
}

// Executor executes blocks. It is not safe for concurrent use.
type Executor struct {
	store       *grove.Store
	state       *state.State
	cfg         Config
	contracts   *cache.Contracts
	validator   *batch.Validator
	distributor *distribution.Distributor
}

// New creates an executor over store. registry may be nil.
func New(store *grove.Store, cfg Config, registry *trigger.Registry) (*Executor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	st := state.New(store)
	contracts, err := cache.NewContracts(st, cfg.ContractCacheSize)
	if err != nil {
		return nil, err
	}
	return &Executor{
		store:       store,
		state:       st,
		cfg:         cfg,
		contracts:   contracts,
		validator:   batch.NewValidator(registry, cfg.TriggersEnabled),
		distributor: distribution.New(store),
	}, nil
}

// State returns the state view of the executor.
func (e *Executor) State() *state.State {
	return e.state
}

// Contracts returns the contract cache of the executor.
func (e *Executor) Contracts() *cache.Contracts {
	return e.contracts
}

// InitChain creates the top level trees and records the genesis time.
func InitChain(store *grove.Store, genesisTimeMs int64) error {
	b := grove.NewBatch()
	drive.InitOperations(b, genesisTimeMs)
	return errors.WithMessage(store.ApplyBatch(b, false, nil), "init chain")
}

// EpochIndex returns the index of the epoch containing timeMs.
func EpochIndex(genesisTimeMs, timeMs, durationMs int64) (uint16, error) {
	if timeMs < genesisTimeMs {
		return 0, errors.Wrapf(ErrBlockBeforeGenesis, "%d < %d", timeMs, genesisTimeMs)
	}
	idx := (timeMs - genesisTimeMs) / durationMs
	if idx > math.MaxUint16 {
		return 0, errors.Wrapf(drive.ErrArithmeticOverflow, "epoch index %d", idx)
	}
	return uint16(idx), nil
}

// ExecuteBlock validates and applies every batch of a block in one transaction.
// With dryRun set nothing is persisted. An error leaves the store unchanged.
func (e *Executor) ExecuteBlock(ctx context.Context, block drive.BlockInfo, batches []*action.BatchTransitionAction, dryRun bool) (result *BlockResult, err error) {
	startTime := time.Now()
	tx := e.store.StartTransaction()
	var poolSize uint64
	defer func() {
		if err != nil || dryRun {
			tx.Rollback()
			e.contracts.Discard()
			return
		}
		if err = tx.Commit(); err != nil {
			e.contracts.Discard()
			return
		}
		e.contracts.Commit()
		metricBlockExecution().Observe(time.Since(startTime).Milliseconds())
		metricStorageFeePool().Set(int64(min(poolSize, math.MaxInt64)))
	}()

	genesis, err := pools.GetGenesisTime(e.store, tx)
	if err != nil {
		return nil, errors.WithMessage(err, "genesis time")
	}
	idx, err := EpochIndex(genesis, block.TimeMs, e.cfg.EpochDurationMs)
	if err != nil {
		return nil, err
	}
	current := epoch.New(e.store, idx)
	result = &BlockResult{Epoch: idx}

	if result.EpochChanged, err = e.isNewEpoch(current, tx); err != nil {
		return nil, err
	}
	if result.EpochChanged {
		if result.Distribution, err = e.startEpoch(current, block, tx); err != nil {
			return nil, err
		}
	}

	b := grove.NewBatch()
	if err := current.AddIncrementProposerBlockCountOperations(b, block.Proposer, tx); err != nil {
		return nil, err
	}
	if err := e.store.ApplyBatch(b, false, tx); err != nil {
		return nil, err
	}

	multiplier, err := current.GetFeeMultiplier(tx)
	if err != nil {
		return nil, err
	}
	app := &applier{
		state:             e.state,
		contracts:         e.contracts,
		tx:                tx,
		baseProcessingFee: e.cfg.BaseProcessingFee,
		storageFeePerByte: e.cfg.StorageFeePerByte,
		multiplier:        multiplier,
	}

	platform := &batch.PlatformRef{
		State:     e.state,
		Contracts: e.contracts,
		Block:     block,
		DryRun:    dryRun,
	}
	for i, act := range batches {
		res, err := e.validator.ValidateState(ctx, act, platform, tx, app)
		if err != nil {
			return nil, errors.WithMessagef(err, "batch #%d", i)
		}
		result.Results = append(result.Results, res)
	}
	result.Applied = app.applied
	result.ProcessingFee = app.processingFee
	result.StorageFee = app.storageFee

	if err := e.addFees(current, app.processingFee, app.storageFee, tx); err != nil {
		return nil, err
	}
	if poolSize, err = pools.GetStorageFeePool(e.store, tx); err != nil {
		return nil, err
	}

	logger.Debug("block executed",
		"block", block,
		"epoch", idx,
		"batches", len(batches),
		"applied", result.Applied,
		"processingFee", result.ProcessingFee,
		"storageFee", result.StorageFee,
		"dryRun", dryRun,
	)
	return result, nil
}

// isNewEpoch returns whether no block of the epoch was executed yet.
func (e *Executor) isNewEpoch(current *epoch.Pool, tx *grove.Transaction) (bool, error) {
	_, err := current.GetStartTime(tx)
	if err == nil {
		return false, nil
	}
	if grove.IsPathNotFound(err) || grove.IsKeyNotFound(err) {
		return true, nil
	}
	return false, err
}

// startEpoch makes current the running epoch, spreads the storage fee pool
// over the epochs ahead and pays the epochs PaidEpochLag behind.
func (e *Executor) startEpoch(current *epoch.Pool, block drive.BlockInfo, tx *grove.Transaction) (*distribution.Result, error) {
	initialized, err := current.IsInitialized(tx)
	if err != nil {
		return nil, err
	}
	b := grove.NewBatch()
	if !initialized {
		current.AddInitEmptyOperations(b)
	}
	current.AddInitCurrentOperations(b, e.cfg.FeeMultiplier, block.Height, block.TimeMs)
	if err := e.store.ApplyBatch(b, false, tx); err != nil {
		return nil, errors.WithMessagef(err, "init %v", current)
	}

	b = grove.NewBatch()
	dist, err := e.distributor.AddDistributeAndResetOperations(current.Index(), tx, b)
	if err != nil {
		return nil, err
	}
	if !b.IsEmpty() {
		if err := e.store.ApplyBatch(b, false, tx); err != nil {
			return nil, errors.WithMessage(err, "distribute storage fee pool")
		}
	}
	if dist.Leftover > 0 {
		b = grove.NewBatch()
		if err := current.AddIncreaseProcessingFeeOperations(b, dist.Leftover, tx); err != nil {
			return nil, err
		}
		if err := e.store.ApplyBatch(b, false, tx); err != nil {
			return nil, err
		}
		metricDistributionLeftover().Add(int64(dist.Leftover))
	}

	logger.Info("epoch started",
		"epoch", current.Index(),
		"height", block.Height,
		"pool", dist.Pool,
		"leftover", dist.Leftover,
	)

	return dist, e.payEpochs(current, tx)
}

// payEpochs pays, oldest first, every epoch at least PaidEpochLag behind
// current that is not paid yet.
func (e *Executor) payEpochs(current *epoch.Pool, tx *grove.Transaction) error {
	if current.Index() < e.cfg.PaidEpochLag {
		return nil
	}
	last := uint32(current.Index() - e.cfg.PaidEpochLag)
	next, err := pools.GetNextUnpaidEpoch(e.store, tx)
	if err != nil {
		return err
	}
	if next > last {
		return nil
	}
	for i := next; i <= last; i++ {
		if err := e.payEpoch(epoch.New(e.store, uint16(i)), current, tx); err != nil {
			return err
		}
	}
	b := grove.NewBatch()
	pools.AddUpdateNextUnpaidEpochOperations(b, last+1)
	return e.store.ApplyBatch(b, false, tx)
}

// payEpoch reports the proposers and fees of a finished epoch and clears them.
// Fees of an epoch without proposers roll over to the processing fee of current.
func (e *Executor) payEpoch(paid, current *epoch.Pool, tx *grove.Transaction) error {
	initialized, err := paid.IsInitialized(tx)
	if err != nil || !initialized {
		return err
	}
	proposers, err := paid.GetProposers(0, tx)
	if err != nil && !grove.IsNotFound(err) {
		return err
	}
	processing, err := paid.GetProcessingFee(tx)
	if err != nil && !grove.IsKeyNotFound(err) {
		return err
	}
	storage, err := paid.GetStorageFee(tx)
	if err != nil && !grove.IsKeyNotFound(err) {
		return err
	}
	fees, err := drive.CheckedAdd(processing, storage, "epoch total fees")
	if err != nil {
		return err
	}

	b := grove.NewBatch()
	paid.AddMarkAsPaidOperations(b)
	if err := e.store.ApplyBatch(b, false, tx); err != nil {
		return errors.WithMessagef(err, "mark %v as paid", paid)
	}
	if len(proposers) == 0 && fees > 0 {
		b = grove.NewBatch()
		if err := current.AddIncreaseProcessingFeeOperations(b, fees, tx); err != nil {
			return err
		}
		if err := e.store.ApplyBatch(b, false, tx); err != nil {
			return err
		}
		logger.Info("epoch fees rolled over", "epoch", paid.Index(), "to", current.Index(), "fees", fees)
	}
	metricEpochsPaid().Add(1)
	logger.Info("epoch paid", "epoch", paid.Index(), "proposers", len(proposers), "fees", fees)
	return nil
}

func (e *Executor) addFees(current *epoch.Pool, processingFee, storageFee uint64, tx *grove.Transaction) error {
	if processingFee > 0 {
		b := grove.NewBatch()
		if err := current.AddIncreaseProcessingFeeOperations(b, processingFee, tx); err != nil {
			return err
		}
		if err := e.store.ApplyBatch(b, false, tx); err != nil {
			return err
		}
	}
	if storageFee > 0 {
		b := grove.NewBatch()
		if err := pools.AddIncreaseStorageFeePoolOperations(e.store, b, storageFee, tx); err != nil {
			return err
		}
		if err := e.store.ApplyBatch(b, false, tx); err != nil {
			return err
		}
	}
	return nil
}
