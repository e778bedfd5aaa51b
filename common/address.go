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

package common

import (
	"bytes"
	"fmt"

	"github.com/annchain/tokengate/common/hexutil"
)

// AddressLength is the byte length of every identity in the system: holders,
// authorities, mints and the derived state records.
const AddressLength = 32

// Address is a 32-byte identity.
type Address struct {
	Bytes [AddressLength]byte
}

// BytesToAddress sets b to address.
// If b is larger than AddressLength, it panics. It usually indicates a logic error.
func BytesToAddress(b []byte) Address {
	var a Address
	a.MustSetBytes(b)
	return a
}

// HexToAddress parses a hex string into an Address, panicking on bad input.
// Use StringToAddress for untrusted input.
func HexToAddress(s string) Address {
	return BytesToAddress(hexutil.MustFromHex(s))
}

// StringToAddress parses a hex address. The 0x prefix is optional but the
// length must be exact.
func StringToAddress(s string) (a Address, err error) {
	b, err := hexutil.FromHex(s)
	if err != nil {
		return a, fmt.Errorf("address format error: %v", err)
	}
	if len(b) != AddressLength {
		return a, fmt.Errorf("address length mismatch: %d != %d", len(b), AddressLength)
	}
	copy(a.Bytes[:], b)
	return a, nil
}

// ToBytes convers Address to []byte.
func (a Address) ToBytes() []byte { return a.Bytes[:] }

// Hex converts an Address to a 0x-prefixed hex string.
func (a Address) Hex() string { return hexutil.ToFormalHex(a.Bytes[:]) }

func (a Address) String() string {
	return a.Hex()
}

// TerminalString is the short form used in log fields.
func (a Address) TerminalString() string {
	return fmt.Sprintf("%x…%x", a.Bytes[:3], a.Bytes[len(a.Bytes)-3:])
}

func (a Address) ShortString() string {
	return hexutil.ToFormalHex(a.Bytes[:8])
}

func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) Cmp(b Address) int {
	return bytes.Compare(a.Bytes[:], b.Bytes[:])
}

// MarshalText returns the hex representation of a.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

// UnmarshalText parses an Address in hex syntax. It also backs JSON decoding.
func (a *Address) UnmarshalText(input []byte) error {
	parsed, err := StringToAddress(string(input))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MustSetBytes sets the Address to the value of b, left aligned.
func (a *Address) MustSetBytes(b []byte) {
	if err := a.SetBytes(b); err != nil {
		panic(err.Error())
	}
}

func (a *Address) SetBytes(b []byte) error {
	if len(b) > AddressLength {
		return fmt.Errorf("byte to set is longer than expected length: %d > %d", len(b), AddressLength)
	}
	a.Bytes = [AddressLength]byte{}
	copy(a.Bytes[:], b)
	return nil
}

// Addresses is an ordered list of identities.
type Addresses []Address

// Index returns the position of a in the list or -1.
func (as Addresses) Index(a Address) int {
	for i, v := range as {
		if v == a {
			return i
		}
	}
	return -1
}

func (as Addresses) Contains(a Address) bool {
	return as.Index(a) >= 0
}

func (as Addresses) Strings() []string {
	s := make([]string, len(as))
	for i, a := range as {
		s[i] = a.Hex()
	}
	return s
}
