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

package crypto

import (
	"encoding/binary"

	"github.com/annchain/tokengate/common"
)

// DerivedAddressMarker closes every derivation preimage so that a derived
// address can never collide with a hash of user supplied bytes alone.
const DerivedAddressMarker = "ProgramDerivedAddress"

// DeriveAddress computes an identity from a program id and an ordered list of
// seeds. Every seed is length prefixed, so ("ab","c") and ("a","bc") never
// collide. The result is a pure function of its inputs.
func DeriveAddress(programID common.Address, seeds ...[]byte) common.Address {
	parts := make([][]byte, 0, 2*len(seeds)+2)
	var lenBuf [4]byte
	for _, seed := range seeds {
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(seed)))
		parts = append(parts, append([]byte{}, lenBuf[:]...), seed)
	}
	parts = append(parts, programID.ToBytes(), []byte(DerivedAddressMarker))
	return common.BytesToAddress(Keccak256(parts...))
}

// SequenceSeed is the little endian encoding of a factory sequence number,
// the same layout the factory index counter uses on the wire.
func SequenceSeed(seq uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, seq)
	return b
}
