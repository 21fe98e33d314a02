// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"syscall"

	"github.com/elastic/gosigar"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/platformcore/drive/drive"
	"github.com/platformcore/drive/executor"
	"github.com/platformcore/drive/grove"
	"github.com/platformcore/drive/log"
	"github.com/platformcore/drive/lvldb"
)

var logger = log.WithContext("pkg", "drive")

func initLogger(ctx *cli.Context) {
	level := new(slog.LevelVar)
	level.Set(log.FromLegacyLevel(ctx.GlobalInt(verbosityFlag.Name)))

	var handler slog.Handler
	if ctx.GlobalBool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(os.Stderr, level)
	} else {
		useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandlerWithLevel(os.Stderr, level, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		return filepath.Join(home, ".drive")
	}
	return ""
}

// normalizeCacheSize clamps the cache to [64MB, half of the physical memory].
func normalizeCacheSize(sizeMB int) int {
	if sizeMB < 64 {
		sizeMB = 64
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		logger.Warn("failed to get total mem", "err", err)
	} else {
		limitMB := int(mem.Total / 1024 / 1024 / 2)
		if sizeMB > limitMB {
			sizeMB = limitMB
			logger.Warn("cache size(MB) limited", "limit", limitMB)
		}
	}
	return sizeMB
}

// openStore opens the drive database under the data dir. The returned
// function closes it.
func openStore(ctx *cli.Context) (*grove.Store, func(), error) {
	dataDir := ctx.GlobalString(dataDirFlag.Name)
	if dataDir == "" {
		return nil, nil, errors.Errorf("unable to infer default data dir, use -%s to specify one", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, nil, errors.Wrapf(err, "create data dir [%v]", dataDir)
	}

	cacheMB := normalizeCacheSize(ctx.GlobalInt(cacheFlag.Name))
	logger.Debug("cache size(MB)", "size", cacheMB)

	dir := filepath.Join(dataDir, "drive.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              cacheMB,
		OpenFilesCacheCapacity: 500,
	})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open drive database [%v]", dir)
	}
	return grove.New(db), func() {
		logger.Info("closing drive database...")
		if err := db.Close(); err != nil {
			logger.Warn("failed to close drive database", "err", err)
		}
	}, nil
}

func loadConfig(ctx *cli.Context) (executor.Config, error) {
	path := ctx.GlobalString(configFlag.Name)
	if path == "" {
		return executor.DefaultConfig(), nil
	}
	return executor.LoadConfig(path)
}

func parseIdentifierFlag(ctx *cli.Context, flag cli.StringFlag) (drive.Identifier, error) {
	s := ctx.String(flag.Name)
	if s == "" {
		return drive.Identifier{}, errors.Errorf("missing -%s", flag.Name)
	}
	id, err := drive.ParseIdentifier(s)
	return id, errors.WithMessagef(err, "-%s", flag.Name)
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}
