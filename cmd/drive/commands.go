// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/cheggaaa/pb.v1"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/platformcore/drive/cmd/drive/httpserver"
	"github.com/platformcore/drive/drive"
	"github.com/platformcore/drive/executor"
	"github.com/platformcore/drive/fee/distribution"
	"github.com/platformcore/drive/fee/epoch"
	"github.com/platformcore/drive/fee/pools"
	"github.com/platformcore/drive/grove"
	"github.com/platformcore/drive/metrics"
	"github.com/platformcore/drive/state"
)

func isInitialized(store *grove.Store) (bool, error) {
	_, err := pools.GetGenesisTime(store, nil)
	if err == nil {
		return true, nil
	}
	if grove.IsNotFound(err) {
		return false, nil
	}
	return false, err
}

func openInitializedStore(ctx *cli.Context) (*grove.Store, func(), error) {
	store, closeStore, err := openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	ok, err := isInitialized(store)
	if err == nil && !ok {
		err = errors.New("drive database not initialized, run init first")
	}
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	return store, closeStore, nil
}

func initAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	ok, err := isInitialized(store)
	if err != nil {
		return err
	}
	if ok {
		return errors.New("drive database already initialized")
	}

	genesis := cfg.GenesisTimeMs
	if ctx.IsSet(genesisTimeFlag.Name) {
		genesis = ctx.Int64(genesisTimeFlag.Name)
	} else if genesis == 0 {
		genesis = time.Now().UnixMilli()
	}
	if err := executor.InitChain(store, genesis); err != nil {
		return err
	}
	logger.Info("drive initialized", "genesis", genesis)
	return nil
}

func deployAction(ctx *cli.Context) error {
	path := ctx.String(contractFlag.Name)
	if path == "" {
		return errors.Errorf("missing -%s", contractFlag.Name)
	}
	contract, err := readContractFile(path)
	if err != nil {
		return err
	}
	store, closeStore, err := openInitializedStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	st := state.New(store)
	if _, err := st.GetContract(contract.ID, nil); err == nil {
		return errors.Errorf("contract %v already deployed", contract.ID)
	} else if !state.IsContractNotFound(err) {
		return err
	}

	batch := grove.NewBatch()
	if err := st.AddInsertContractOperations(batch, contract); err != nil {
		return err
	}
	if err := store.ApplyBatch(batch, false, nil); err != nil {
		return err
	}
	logger.Info("contract deployed",
		"id", contract.ID,
		"owner", contract.Owner,
		"documentTypes", len(contract.DocumentTypes),
		"tokens", len(contract.Tokens),
	)
	return nil
}

func fundAction(ctx *cli.Context) error {
	id, err := parseIdentifierFlag(ctx, identityFlag)
	if err != nil {
		return err
	}
	amount := ctx.Uint64(amountFlag.Name)

	store, closeStore, err := openInitializedStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	st := state.New(store)
	exists, err := st.HasIdentity(id, nil)
	if err != nil {
		return err
	}
	batch := grove.NewBatch()
	balance := amount
	if exists {
		current, err := st.GetBalance(id, nil)
		if err != nil {
			return err
		}
		if balance, err = drive.CheckedAdd(current, amount, "identity balance"); err != nil {
			return err
		}
		st.AddSetBalanceOperations(batch, id, balance)
	} else {
		st.AddInsertIdentityOperations(batch, id, balance)
	}
	if err := store.ApplyBatch(batch, false, nil); err != nil {
		return err
	}
	logger.Info("identity funded", "id", id, "balance", balance, "created", !exists)
	return nil
}

type executeSummary struct {
	Height        uint64 `json:"height"`
	Epoch         uint16 `json:"epoch"`
	Executed      int    `json:"executed"`
	Rejected      int    `json:"rejected"`
	ProcessingFee uint64 `json:"processingFee"`
	StorageFee    uint64 `json:"storageFee"`
}

// executeStatus is the progress of the execute command, served on /status.
type executeStatus struct {
	mu      sync.Mutex
	summary executeSummary
}

func (s *executeStatus) update(height uint64, res *executor.BlockResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary.Height = height
	s.summary.Epoch = res.Epoch
	s.summary.Executed++
	for _, r := range res.Results {
		s.summary.Rejected += len(r.Errors)
	}
	s.summary.ProcessingFee += res.ProcessingFee
	s.summary.StorageFee += res.StorageFee
}

func (s *executeStatus) snapshot() executeSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

func executeAction(ctx *cli.Context) error {
	path := ctx.String(blocksFlag.Name)
	if path == "" {
		return errors.Errorf("missing -%s", blocksFlag.Name)
	}
	blocks, err := readBlockFile(path)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	store, closeStore, err := openInitializedStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	status := &executeStatus{}
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		url, closeServer, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name), func() any {
			return status.snapshot()
		})
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping metrics server..."); closeServer() }()
		logger.Info("metrics server started", "url", url)
	}

	exec, err := executor.New(store, cfg, nil)
	if err != nil {
		return err
	}
	dryRun := ctx.Bool(dryRunFlag.Name)
	exitCtx := handleExitSignal()

	bar := pb.New(len(blocks)).SetMaxWidth(90).Start()
	defer func() { bar.NotPrint = true }()

	for _, b := range blocks {
		batches, err := b.batches()
		if err != nil {
			return err
		}
		res, err := exec.ExecuteBlock(exitCtx, b.info(), batches, dryRun)
		if err != nil {
			return errors.WithMessagef(err, "block %d", b.Height)
		}
		for i, r := range res.Results {
			for _, e := range r.Errors {
				logger.Debug("transition rejected", "height", b.Height, "batch", i, "err", e)
			}
		}
		status.update(b.Height, res)
		bar.Increment()
	}
	bar.Finish()

	summary := status.snapshot()
	hit, miss := exec.Contracts().Stats()
	logger.Info("blocks executed",
		"count", summary.Executed,
		"rejected", summary.Rejected,
		"processingFee", summary.ProcessingFee,
		"storageFee", summary.StorageFee,
		"contractCacheHit", hit,
		"contractCacheMiss", miss,
		"dryRun", dryRun,
	)
	return nil
}

func epochIndexFlag(ctx *cli.Context) (uint16, error) {
	idx := ctx.Int(epochFlag.Name)
	if idx < 0 || idx > math.MaxUint16 {
		return 0, errors.Errorf("-%s out of range: %d", epochFlag.Name, idx)
	}
	return uint16(idx), nil
}

func epochAction(ctx *cli.Context) error {
	idx, err := epochIndexFlag(ctx)
	if err != nil {
		return err
	}
	store, closeStore, err := openInitializedStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	pool := epoch.New(store, idx)
	initialized, err := pool.IsInitialized(nil)
	if err != nil {
		return err
	}
	if !initialized {
		fmt.Printf("epoch %d: not initialized\n", idx)
		return nil
	}

	fmt.Printf("epoch %d\n", idx)
	printField := func(name string, get func(*grove.Transaction) (uint64, error)) error {
		v, err := get(nil)
		switch {
		case err == nil:
			fmt.Printf("  %-18s %d\n", name, v)
		case grove.IsKeyNotFound(err):
			fmt.Printf("  %-18s -\n", name)
		default:
			return err
		}
		return nil
	}
	for _, f := range []struct {
		name string
		get  func(*grove.Transaction) (uint64, error)
	}{
		{"start height", pool.GetStartBlockHeight},
		{"start time", func(tx *grove.Transaction) (uint64, error) {
			v, err := pool.GetStartTime(tx)
			return uint64(v), err
		}},
		{"fee multiplier", pool.GetFeeMultiplier},
		{"storage fee", pool.GetStorageFee},
		{"processing fee", pool.GetProcessingFee},
	} {
		if err := printField(f.name, f.get); err != nil {
			return err
		}
	}

	proposers, err := pool.GetProposers(0, nil)
	if err != nil {
		if grove.IsPathNotFound(err) {
			fmt.Println("  proposers          -")
			return nil
		}
		return err
	}
	fmt.Printf("  proposers          %d\n", len(proposers))
	for _, p := range proposers {
		fmt.Printf("    %v %d\n", p.ID, p.BlockCount)
	}
	return nil
}

func distributeAction(ctx *cli.Context) error {
	idx, err := epochIndexFlag(ctx)
	if err != nil {
		return err
	}
	dryRun := ctx.Bool(dryRunFlag.Name)

	store, closeStore, err := openInitializedStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	res, err := distributeStorageFees(store, idx, dryRun)
	if err != nil {
		return err
	}
	logger.Info("storage fee pool distributed",
		"epoch", idx,
		"pool", res.Pool,
		"epochs", res.EpochsUpdated,
		"leftover", res.Leftover,
		"dryRun", dryRun,
	)
	return nil
}

// distributeStorageFees spreads the storage fee pool over the epochs from idx
// on. The leftover stays in the pool for the next distribution.
func distributeStorageFees(store *grove.Store, idx uint16, dryRun bool) (*distribution.Result, error) {
	tx := store.StartTransaction()
	defer tx.Rollback()

	batch := grove.NewBatch()
	res, err := distribution.New(store).AddDistributeAndResetOperations(idx, tx, batch)
	if err != nil {
		return nil, err
	}
	if res.Leftover > 0 {
		pools.AddUpdateStorageFeePoolOperations(batch, res.Leftover)
	}
	if batch.IsEmpty() {
		return res, nil
	}
	if err := store.ApplyBatch(batch, dryRun, tx); err != nil {
		return nil, err
	}
	if dryRun {
		return res, nil
	}
	return res, tx.Commit()
}
