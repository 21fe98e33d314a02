// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/platformcore/drive/batch"
	"github.com/platformcore/drive/consensus"
	"github.com/platformcore/drive/executor"
)

func TestNormalizeCacheSize(t *testing.T) {
	assert.Equal(t, 64, normalizeCacheSize(1))
	assert.LessOrEqual(t, normalizeCacheSize(1<<30), 1<<30)
}

func TestExecuteStatus(t *testing.T) {
	var status executeStatus
	status.update(3, &executor.BlockResult{
		Epoch: 1,
		Results: []*batch.Result{
			{Errors: []*consensus.Error{consensus.NewError(consensus.DocumentNotFound, "a"), consensus.NewError(consensus.TokenIsPaused, "b")}},
			{},
		},
		ProcessingFee: 10,
		StorageFee:    20,
	})
	status.update(4, &executor.BlockResult{Epoch: 1, ProcessingFee: 5})

	assert.Equal(t, executeSummary{
		Height:        4,
		Epoch:         1,
		Executed:      2,
		Rejected:      2,
		ProcessingFee: 15,
		StorageFee:    20,
	}, status.snapshot())
}
