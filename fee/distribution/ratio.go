// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package distribution

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/platformcore/drive/drive"
)

// RatioDecimals is the number of decimal places a Ratio keeps.
const RatioDecimals = 5

const ratioScale = 100_000

// Ratio is an exact non-negative decimal with RatioDecimals places.
type Ratio struct {
	num uint64 // value * 10^RatioDecimals
}

// ParseRatio parses a decimal such as "0.05000". More than RatioDecimals
// fractional digits is an error rather than a rounding.
func ParseRatio(s string) (Ratio, error) {
	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" || len(fracPart) > RatioDecimals {
		return Ratio{}, errors.Errorf("invalid ratio %q", s)
	}
	fracPart += strings.Repeat("0", RatioDecimals-len(fracPart))

	i, err := strconv.ParseUint(intPart, 10, 64)
	if err != nil {
		return Ratio{}, errors.Wrapf(err, "invalid ratio %q", s)
	}
	f, err := strconv.ParseUint(fracPart, 10, 64)
	if err != nil {
		return Ratio{}, errors.Wrapf(err, "invalid ratio %q", s)
	}
	num, err := drive.CheckedMul(i, ratioScale, "ratio")
	if err != nil {
		return Ratio{}, err
	}
	num, err = drive.CheckedAdd(num, f, "ratio")
	if err != nil {
		return Ratio{}, err
	}
	return Ratio{num}, nil
}

// MustParseRatio is ParseRatio that panics on error.
func MustParseRatio(s string) Ratio {
	r, err := ParseRatio(s)
	if err != nil {
		panic(err)
	}
	return r
}

// MulFloor returns floor(v * r).
func (r Ratio) MulFloor(v uint64) (uint64, error) {
	return r.MulDivFloor(v, 1)
}

// MulDivFloor returns floor(v * r / d), computed without intermediate rounding.
func (r Ratio) MulDivFloor(v uint64, d uint64) (uint64, error) {
	if d == 0 {
		return 0, errors.New("ratio: division by zero")
	}
	x := new(uint256.Int).Mul(uint256.NewInt(v), uint256.NewInt(r.num))
	x.Div(x, new(uint256.Int).Mul(uint256.NewInt(ratioScale), uint256.NewInt(d)))
	if !x.IsUint64() {
		return 0, errors.Wrapf(drive.ErrArithmeticOverflow, "%d * %v / %d", v, r, d)
	}
	return x.Uint64(), nil
}

// Add returns r + o.
func (r Ratio) Add(o Ratio) Ratio {
	return Ratio{r.num + o.num}
}

// Cmp compares r and o.
func (r Ratio) Cmp(o Ratio) int {
	switch {
	case r.num < o.num:
		return -1
	case r.num > o.num:
		return 1
	}
	return 0
}

// IsOne returns whether r equals 1 exactly.
func (r Ratio) IsOne() bool {
	return r.num == ratioScale
}

func (r Ratio) String() string {
	return fmt.Sprintf("%d.%05d", r.num/ratioScale, r.num%ratioScale)
}
