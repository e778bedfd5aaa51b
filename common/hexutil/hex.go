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
	"encoding/hex"
	"fmt"
)

// FromHex returns the bytes represented by the hexadecimal string s.
// s may be prefixed with "0x".
func FromHex(s string) ([]byte, error) {
	if HasHexPrefix(s) {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	return hex.DecodeString(s)
}

// MustFromHex is FromHex for constants. It panics on malformed input.
func MustFromHex(s string) []byte {
	b, err := FromHex(s)
	if err != nil {
		panic(fmt.Sprintf("bad hex %q: %v", s, err))
	}
	return b
}

func HasHexPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

func ToHex(b []byte) string {
	return ToHexWithPad(b, 0)
}

func ToHexWithPad(b []byte, padLength int) string {
	hexstr := hex.EncodeToString(b)
	if len(hexstr) == 0 {
		hexstr = "0"
	}
	for len(hexstr) < padLength {
		hexstr = "0" + hexstr
	}
	return hexstr
}

func ToFormalHex(b []byte) string {
	return "0x" + ToHex(b)
}

func ToBriefHex(bytes []byte, maxLen int) string {
	if maxLen >= len(bytes) {
		return hex.EncodeToString(bytes)
	}
	return hex.EncodeToString(bytes[0:maxLen/2]) + "..." + hex.EncodeToString(bytes[len(bytes)-maxLen/2:])
}
