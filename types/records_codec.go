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

package types

// msgp tuple codecs for the state records. Every struct is encoded as a
// fixed-length msgpack array in field order.

import (
	"github.com/annchain/tokengate/common"
	"github.com/tinylib/msgp/msgp"
)

const addressSize = msgp.BytesPrefixSize + common.AddressLength

func appendAddress(o []byte, a common.Address) []byte {
	return msgp.AppendBytes(o, a.Bytes[:])
}

func readAddress(bts []byte, a *common.Address) ([]byte, error) {
	return msgp.ReadExactBytes(bts, a.Bytes[:])
}

func readTupleHeader(bts []byte, want uint32) ([]byte, error) {
	sz, bts, err := msgp.ReadArrayHeaderBytes(bts)
	if err != nil {
		return bts, err
	}
	if sz != want {
		return bts, msgp.ArrayError{Wanted: want, Got: sz}
	}
	return bts, nil
}

// MarshalMsg implements msgp.Marshaler
func (f *FactoryIndex) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, f.Msgsize())
	o = msgp.AppendArrayHeader(o, 2)
	o = appendAddress(o, f.Authority)
	o = msgp.AppendUint64(o, f.NextSequence)
	return
}

// UnmarshalMsg implements msgp.Unmarshaler
func (f *FactoryIndex) UnmarshalMsg(bts []byte) (o []byte, err error) {
	if bts, err = readTupleHeader(bts, 2); err != nil {
		return
	}
	if bts, err = readAddress(bts, &f.Authority); err != nil {
		return
	}
	if f.NextSequence, bts, err = msgp.ReadUint64Bytes(bts); err != nil {
		return
	}
	o = bts
	return
}

// Msgsize returns an upper bound estimate of the number of bytes occupied by the serialized message
func (f *FactoryIndex) Msgsize() int {
	return msgp.ArrayHeaderSize + addressSize + msgp.Uint64Size
}

// MarshalMsg implements msgp.Marshaler
func (a *AssetRegistry) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, a.Msgsize())
	o = msgp.AppendArrayHeader(o, 13)
	o = appendAddress(o, a.Mint)
	o = appendAddress(o, a.Creator)
	o = msgp.AppendUint64(o, a.Sequence)
	o = appendAddress(o, a.Authority)
	o = appendAddress(o, a.MintingDelegate)
	o = msgp.AppendUint64(o, a.TotalSupply)
	o = msgp.AppendUint8(o, a.Decimals)
	o = msgp.AppendBool(o, a.TransfersPaused)
	o = msgp.AppendBool(o, a.MintingPaused)
	o = msgp.AppendString(o, a.Name)
	o = msgp.AppendString(o, a.Symbol)
	o = msgp.AppendString(o, a.URI)
	o = appendAddress(o, a.Whitelist)
	return
}

// UnmarshalMsg implements msgp.Unmarshaler
func (a *AssetRegistry) UnmarshalMsg(bts []byte) (o []byte, err error) {
	if bts, err = readTupleHeader(bts, 13); err != nil {
		return
	}
	if bts, err = readAddress(bts, &a.Mint); err != nil {
		return
	}
	if bts, err = readAddress(bts, &a.Creator); err != nil {
		return
	}
	if a.Sequence, bts, err = msgp.ReadUint64Bytes(bts); err != nil {
		return
	}
	if bts, err = readAddress(bts, &a.Authority); err != nil {
		return
	}
	if bts, err = readAddress(bts, &a.MintingDelegate); err != nil {
		return
	}
	if a.TotalSupply, bts, err = msgp.ReadUint64Bytes(bts); err != nil {
		return
	}
	if a.Decimals, bts, err = msgp.ReadUint8Bytes(bts); err != nil {
		return
	}
	if a.TransfersPaused, bts, err = msgp.ReadBoolBytes(bts); err != nil {
		return
	}
	if a.MintingPaused, bts, err = msgp.ReadBoolBytes(bts); err != nil {
		return
	}
	if a.Name, bts, err = msgp.ReadStringBytes(bts); err != nil {
		return
	}
	if a.Symbol, bts, err = msgp.ReadStringBytes(bts); err != nil {
		return
	}
	if a.URI, bts, err = msgp.ReadStringBytes(bts); err != nil {
		return
	}
	if bts, err = readAddress(bts, &a.Whitelist); err != nil {
		return
	}
	o = bts
	return
}

// Msgsize returns an upper bound estimate of the number of bytes occupied by the serialized message
func (a *AssetRegistry) Msgsize() int {
	return msgp.ArrayHeaderSize + 5*addressSize + 2*msgp.Uint64Size + msgp.Uint8Size + 2*msgp.BoolSize +
		msgp.StringPrefixSize + len(a.Name) + msgp.StringPrefixSize + len(a.Symbol) +
		msgp.StringPrefixSize + len(a.URI) + addressSize
}

// MarshalMsg implements msgp.Marshaler
func (a *AssetIndex) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, a.Msgsize())
	o = msgp.AppendArrayHeader(o, 1)
	o = appendAddress(o, a.Registry)
	return
}

// UnmarshalMsg implements msgp.Unmarshaler
func (a *AssetIndex) UnmarshalMsg(bts []byte) (o []byte, err error) {
	if bts, err = readTupleHeader(bts, 1); err != nil {
		return
	}
	if bts, err = readAddress(bts, &a.Registry); err != nil {
		return
	}
	o = bts
	return
}

// Msgsize returns an upper bound estimate of the number of bytes occupied by the serialized message
func (a *AssetIndex) Msgsize() int {
	return msgp.ArrayHeaderSize + addressSize
}

// MarshalMsg implements msgp.Marshaler
func (w *WhitelistStore) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, w.Msgsize())
	o = msgp.AppendArrayHeader(o, 3)
	o = appendAddress(o, w.Mint)
	o = msgp.AppendArrayHeader(o, uint32(len(w.Addresses)))
	for _, addr := range w.Addresses {
		o = appendAddress(o, addr)
	}
	o = msgp.AppendUint32(o, w.Capacity)
	return
}

// UnmarshalMsg implements msgp.Unmarshaler
func (w *WhitelistStore) UnmarshalMsg(bts []byte) (o []byte, err error) {
	if bts, err = readTupleHeader(bts, 3); err != nil {
		return
	}
	if bts, err = readAddress(bts, &w.Mint); err != nil {
		return
	}
	var n uint32
	if n, bts, err = msgp.ReadArrayHeaderBytes(bts); err != nil {
		return
	}
	if cap(w.Addresses) >= int(n) {
		w.Addresses = w.Addresses[:n]
	} else {
		w.Addresses = make([]common.Address, n)
	}
	for i := range w.Addresses {
		if bts, err = readAddress(bts, &w.Addresses[i]); err != nil {
			return
		}
	}
	if w.Capacity, bts, err = msgp.ReadUint32Bytes(bts); err != nil {
		return
	}
	o = bts
	return
}

// Msgsize returns an upper bound estimate of the number of bytes occupied by the serialized message
func (w *WhitelistStore) Msgsize() int {
	return msgp.ArrayHeaderSize + addressSize + msgp.ArrayHeaderSize + len(w.Addresses)*addressSize + msgp.Uint32Size
}

// MarshalMsg implements msgp.Marshaler
func (s *Seed) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, s.Msgsize())
	o = msgp.AppendArrayHeader(o, 3)
	o = msgp.AppendUint8(o, uint8(s.Kind))
	o = msgp.AppendBytes(o, s.Data)
	o = msgp.AppendUint8(o, s.Index)
	return
}

// UnmarshalMsg implements msgp.Unmarshaler
func (s *Seed) UnmarshalMsg(bts []byte) (o []byte, err error) {
	if bts, err = readTupleHeader(bts, 3); err != nil {
		return
	}
	var kind uint8
	if kind, bts, err = msgp.ReadUint8Bytes(bts); err != nil {
		return
	}
	s.Kind = SeedKind(kind)
	if s.Data, bts, err = msgp.ReadBytesBytes(bts, s.Data); err != nil {
		return
	}
	if s.Index, bts, err = msgp.ReadUint8Bytes(bts); err != nil {
		return
	}
	o = bts
	return
}

// Msgsize returns an upper bound estimate of the number of bytes occupied by the serialized message
func (s *Seed) Msgsize() int {
	return msgp.ArrayHeaderSize + msgp.Uint8Size + msgp.BytesPrefixSize + len(s.Data) + msgp.Uint8Size
}

// MarshalMsg implements msgp.Marshaler
func (m *ExtraAccountMeta) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, m.Msgsize())
	o = msgp.AppendArrayHeader(o, 3)
	o = msgp.AppendArrayHeader(o, uint32(len(m.Seeds)))
	for i := range m.Seeds {
		if o, err = m.Seeds[i].MarshalMsg(o); err != nil {
			return
		}
	}
	o = msgp.AppendBool(o, m.IsSigner)
	o = msgp.AppendBool(o, m.IsWritable)
	return
}

// UnmarshalMsg implements msgp.Unmarshaler
func (m *ExtraAccountMeta) UnmarshalMsg(bts []byte) (o []byte, err error) {
	if bts, err = readTupleHeader(bts, 3); err != nil {
		return
	}
	var n uint32
	if n, bts, err = msgp.ReadArrayHeaderBytes(bts); err != nil {
		return
	}
	m.Seeds = make([]Seed, n)
	for i := range m.Seeds {
		if bts, err = m.Seeds[i].UnmarshalMsg(bts); err != nil {
			return
		}
	}
	if m.IsSigner, bts, err = msgp.ReadBoolBytes(bts); err != nil {
		return
	}
	if m.IsWritable, bts, err = msgp.ReadBoolBytes(bts); err != nil {
		return
	}
	o = bts
	return
}

// Msgsize returns an upper bound estimate of the number of bytes occupied by the serialized message
func (m *ExtraAccountMeta) Msgsize() int {
	s := msgp.ArrayHeaderSize + msgp.ArrayHeaderSize
	for i := range m.Seeds {
		s += m.Seeds[i].Msgsize()
	}
	return s + 2*msgp.BoolSize
}

// MarshalMsg implements msgp.Marshaler
func (e *ExtraAccountMetaList) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, e.Msgsize())
	o = msgp.AppendArrayHeader(o, 2)
	o = appendAddress(o, e.Mint)
	o = msgp.AppendArrayHeader(o, uint32(len(e.Metas)))
	for i := range e.Metas {
		if o, err = e.Metas[i].MarshalMsg(o); err != nil {
			return
		}
	}
	return
}

// UnmarshalMsg implements msgp.Unmarshaler
func (e *ExtraAccountMetaList) UnmarshalMsg(bts []byte) (o []byte, err error) {
	if bts, err = readTupleHeader(bts, 2); err != nil {
		return
	}
	if bts, err = readAddress(bts, &e.Mint); err != nil {
		return
	}
	var n uint32
	if n, bts, err = msgp.ReadArrayHeaderBytes(bts); err != nil {
		return
	}
	e.Metas = make([]ExtraAccountMeta, n)
	for i := range e.Metas {
		if bts, err = e.Metas[i].UnmarshalMsg(bts); err != nil {
			return
		}
	}
	o = bts
	return
}

// Msgsize returns an upper bound estimate of the number of bytes occupied by the serialized message
func (e *ExtraAccountMetaList) Msgsize() int {
	s := msgp.ArrayHeaderSize + addressSize + msgp.ArrayHeaderSize
	for i := range e.Metas {
		s += e.Metas[i].Msgsize()
	}
	return s
}
