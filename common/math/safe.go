// Copyright © 2019 Annchain Authors <EMAIL ADDRESS>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package math

import (
	"math/bits"
)

// MaxDecimals is the largest exponent for which 10^decimals fits in a uint64.
const MaxDecimals = 19

// SafeAdd returns x+y and whether overflow occurred.
func SafeAdd(x, y uint64) (uint64, bool) {
	sum, carry := bits.Add64(x, y, 0)
	return sum, carry != 0
}

// SafeSub returns x-y and whether underflow occurred.
func SafeSub(x, y uint64) (uint64, bool) {
	diff, borrow := bits.Sub64(x, y, 0)
	return diff, borrow != 0
}

// SafeMul returns x*y and whether overflow occurred.
func SafeMul(x, y uint64) (uint64, bool) {
	hi, lo := bits.Mul64(x, y)
	return lo, hi != 0
}

// Pow10 returns 10^exp and whether it overflowed uint64.
func Pow10(exp uint8) (uint64, bool) {
	if exp > MaxDecimals {
		return 0, true
	}
	result := uint64(1)
	for i := uint8(0); i < exp; i++ {
		result *= 10
	}
	return result, false
}

// ScaleUp converts an amount in whole units into base units given the number
// of decimals. The second return value reports overflow.
func ScaleUp(amount uint64, decimals uint8) (uint64, bool) {
	factor, overflow := Pow10(decimals)
	if overflow {
		// zero stays representable whatever the exponent
		return 0, amount != 0
	}
	return SafeMul(amount, factor)
}
