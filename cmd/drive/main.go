// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "Drive"
	app.Usage = "Document and token state machine with epoch fee pools"
	app.Flags = []cli.Flag{
		dataDirFlag,
		configFlag,
		cacheFlag,
		verbosityFlag,
		jsonLogsFlag,
	}
	app.Before = func(ctx *cli.Context) error {
		initLogger(ctx)
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:   "init",
			Usage:  "create the drive trees and record the genesis time",
			Flags:  []cli.Flag{genesisTimeFlag},
			Action: initAction,
		},
		{
			Name:   "deploy",
			Usage:  "deploy a data contract from a yaml definition",
			Flags:  []cli.Flag{contractFlag},
			Action: deployAction,
		},
		{
			Name:   "fund",
			Usage:  "add credits to an identity, creating it if needed",
			Flags:  []cli.Flag{identityFlag, amountFlag},
			Action: fundAction,
		},
		{
			Name:   "execute",
			Usage:  "execute the blocks of a JSON block file",
			Flags:  []cli.Flag{blocksFlag, dryRunFlag, enableMetricsFlag, metricsAddrFlag},
			Action: executeAction,
		},
		{
			Name:   "epoch",
			Usage:  "print the fee pool of an epoch",
			Flags:  []cli.Flag{epochFlag},
			Action: epochAction,
		},
		{
			Name:   "distribute",
			Usage:  "distribute the storage fee pool from an epoch on",
			Flags:  []cli.Flag{epochFlag, dryRunFlag},
			Action: distributeAction,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
