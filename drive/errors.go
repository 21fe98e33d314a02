// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package drive

import (
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
)

// ErrArithmeticOverflow indicates fee or balance math left the u64 domain.
// It always points at a logic defect and aborts block processing.
var ErrArithmeticOverflow = errors.New("arithmetic overflow")

// IsArithmeticOverflow reports whether err is caused by ErrArithmeticOverflow.
func IsArithmeticOverflow(err error) bool {
	return errors.Is(err, ErrArithmeticOverflow)
}

// CheckedAdd returns x+y or an overflow error naming what was computed.
func CheckedAdd(x, y uint64, what string) (uint64, error) {
	sum, overflow := math.SafeAdd(x, y)
	if overflow {
		return 0, errors.Wrapf(ErrArithmeticOverflow, "%s: %d + %d", what, x, y)
	}
	return sum, nil
}

// CheckedSub returns x-y or an overflow error naming what was computed.
func CheckedSub(x, y uint64, what string) (uint64, error) {
	diff, underflow := math.SafeSub(x, y)
	if underflow {
		return 0, errors.Wrapf(ErrArithmeticOverflow, "%s: %d - %d", what, x, y)
	}
	return diff, nil
}

// CheckedMul returns x*y or an overflow error naming what was computed.
func CheckedMul(x, y uint64, what string) (uint64, error) {
	prod, overflow := math.SafeMul(x, y)
	if overflow {
		return 0, errors.Wrapf(ErrArithmeticOverflow, "%s: %d * %d", what, x, y)
	}
	return prod, nil
}
