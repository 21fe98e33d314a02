// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/platformcore/drive/log"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the drive database",
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path of the yaml execution config (defaults apply if omitted)",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Usage: "megabytes of ram allocated to the database cache",
		Value: 512,
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: log.LegacyLevelInfo,
		Usage: "log verbosity (0-9)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
	dryRunFlag = cli.BoolFlag{
		Name:  "dry-run",
		Usage: "validate and report without persisting anything",
	}
	genesisTimeFlag = cli.Int64Flag{
		Name:  "genesis-time",
		Usage: "genesis time in unix milliseconds (overrides the config, defaults to now)",
	}
	blocksFlag = cli.StringFlag{
		Name:  "blocks",
		Usage: "path of the JSON block file to execute",
	}
	contractFlag = cli.StringFlag{
		Name:  "contract",
		Usage: "path of the yaml contract definition",
	}
	epochFlag = cli.IntFlag{
		Name:  "epoch",
		Usage: "epoch index",
	}
	identityFlag = cli.StringFlag{
		Name:  "identity",
		Usage: "identity id as 0x-prefixed hex",
	}
	amountFlag = cli.Uint64Flag{
		Name:  "amount",
		Usage: "credits to add",
	}
)
