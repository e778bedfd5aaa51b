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

package hexutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHex(t *testing.T) {
	b, err := FromHex("0x0102ff")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 0xff}, b)

	b, err = FromHex("abc")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a, 0xbc}, b)

	_, err = FromHex("0xzz")
	assert.Error(t, err)
}

func TestToHex(t *testing.T) {
	assert.Equal(t, "0", ToHex(nil))
	assert.Equal(t, "0x0a0b", ToFormalHex([]byte{0x0a, 0x0b}))
	assert.Equal(t, "000a", ToHexWithPad([]byte{0x0a}, 4))
	assert.Equal(t, "0102...0506", ToBriefHex([]byte{1, 2, 3, 4, 5, 6}, 4))
}
