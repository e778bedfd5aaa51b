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
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeArithmetic(t *testing.T) {
	_, overflow := SafeAdd(stdmath.MaxUint64, 1)
	assert.True(t, overflow)
	v, overflow := SafeAdd(1000, 500)
	assert.False(t, overflow)
	assert.Equal(t, uint64(1500), v)

	_, overflow = SafeSub(1, 2)
	assert.True(t, overflow)
	v, overflow = SafeSub(1500, 500)
	assert.False(t, overflow)
	assert.Equal(t, uint64(1000), v)

	_, overflow = SafeMul(stdmath.MaxUint64, 2)
	assert.True(t, overflow)
}

func TestScaleUp(t *testing.T) {
	v, overflow := ScaleUp(1000, 6)
	assert.False(t, overflow)
	assert.Equal(t, uint64(1000000000), v)

	v, overflow = ScaleUp(7, 0)
	assert.False(t, overflow)
	assert.Equal(t, uint64(7), v)

	_, overflow = ScaleUp(stdmath.MaxUint64/10+1, 1)
	assert.True(t, overflow)

	// 10^20 does not fit in 64 bits
	_, overflow = ScaleUp(1, 20)
	assert.True(t, overflow)
	v, overflow = ScaleUp(0, 255)
	assert.False(t, overflow)
	assert.Equal(t, uint64(0), v)

	v, overflow = ScaleUp(1, MaxDecimals)
	assert.False(t, overflow)
	assert.Equal(t, uint64(10000000000000000000), v)
}
