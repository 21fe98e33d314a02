// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package distribution

import "github.com/platformcore/drive/drive"

// Table is the share of a storage fee paid out in each year of the perpetual
// storage window. It is strictly decreasing and sums to exactly 1.
var Table = [drive.PerpetualStorageYears]Ratio{
	MustParseRatio("0.05000"), MustParseRatio("0.04800"), MustParseRatio("0.04600"), MustParseRatio("0.04400"), MustParseRatio("0.04200"),
	MustParseRatio("0.04000"), MustParseRatio("0.03850"), MustParseRatio("0.03700"), MustParseRatio("0.03550"), MustParseRatio("0.03400"),
	MustParseRatio("0.03250"), MustParseRatio("0.03100"), MustParseRatio("0.02950"), MustParseRatio("0.02850"), MustParseRatio("0.02750"),
	MustParseRatio("0.02650"), MustParseRatio("0.02550"), MustParseRatio("0.02450"), MustParseRatio("0.02350"), MustParseRatio("0.02250"),
	MustParseRatio("0.02150"), MustParseRatio("0.02050"), MustParseRatio("0.01950"), MustParseRatio("0.01875"), MustParseRatio("0.01800"),
	MustParseRatio("0.01725"), MustParseRatio("0.01650"), MustParseRatio("0.01575"), MustParseRatio("0.01500"), MustParseRatio("0.01425"),
	MustParseRatio("0.01350"), MustParseRatio("0.01275"), MustParseRatio("0.01200"), MustParseRatio("0.01125"), MustParseRatio("0.01050"),
	MustParseRatio("0.00975"), MustParseRatio("0.00900"), MustParseRatio("0.00825"), MustParseRatio("0.00750"), MustParseRatio("0.00675"),
	MustParseRatio("0.00600"), MustParseRatio("0.00525"), MustParseRatio("0.00475"), MustParseRatio("0.00425"), MustParseRatio("0.00375"),
	MustParseRatio("0.00325"), MustParseRatio("0.00275"), MustParseRatio("0.00225"), MustParseRatio("0.00175"), MustParseRatio("0.00125"),
}
