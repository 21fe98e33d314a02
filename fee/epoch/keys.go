// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package epoch

// Reserved keys inside an epoch tree.
var (
	KeyProposers        = []byte("c")
	KeyStartTime        = []byte("t")
	KeyStartBlockHeight = []byte("h")
	KeyFeeMultiplier    = []byte("x")
	KeyProcessingFee    = []byte("p")
	KeyStorageFee       = []byte("s")
)
