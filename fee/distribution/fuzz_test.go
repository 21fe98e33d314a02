// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package distribution

import (
	"math"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platformcore/drive/drive"
	"github.com/platformcore/drive/test/testdrive"
)

func TestDistributor_ConservationFuzzed(t *testing.T) {
	f := fuzz.New().NilChance(0)
	store := testdrive.NewStore(t)

	for range 16 {
		var (
			pool    uint64
			current uint16
		)
		f.Fuzz(&pool)
		f.Fuzz(&current)
		if pool == 0 {
			pool = 1
		}
		current %= math.MaxUint16 - drive.PerpetualStorageEpochs + 2

		tx := store.StartTransaction()
		setPool(t, store, pool, tx)
		leftover := distribute(t, store, current, tx)
		fees := epochFees(t, store, current, tx)
		tx.Rollback()

		var total uint64
		for i, fee := range fees {
			var overflow bool
			total, overflow = addOverflows(total, fee)
			require.False(t, overflow)
			if i > 0 && i%int(drive.EpochsPerYear) == 0 {
				assert.LessOrEqual(t, fee, fees[i-1], "pool %d epoch offset %d", pool, i)
			}
		}
		assert.Equal(t, pool, total+leftover, "pool %d from epoch %d", pool, current)
		assert.Less(t, leftover, uint64(drive.PerpetualStorageEpochs), "pool %d", pool)
	}
}

func addOverflows(x, y uint64) (uint64, bool) {
	sum := x + y
	return sum, sum < x
}
