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

import (
	"fmt"

	"github.com/annchain/tokengate/common"
	mapset "github.com/deckarep/golang-set"
	"github.com/tinylib/msgp/msgp"
)

// RecordKind tags every persisted record so the state layer can decode a raw
// value without knowing in advance what lives at an address.
type RecordKind uint8

const (
	RecordKindFactoryIndex RecordKind = iota + 1
	RecordKindAssetRegistry
	RecordKindAssetIndex
	RecordKindWhitelistStore
	RecordKindExtraAccountMetaList
)

func (k RecordKind) String() string {
	switch k {
	case RecordKindFactoryIndex:
		return "FactoryIndex"
	case RecordKindAssetRegistry:
		return "AssetRegistry"
	case RecordKindAssetIndex:
		return "AssetIndex"
	case RecordKindWhitelistStore:
		return "WhitelistStore"
	case RecordKindExtraAccountMetaList:
		return "ExtraAccountMetaList"
	default:
		return fmt.Sprintf("RecordKind(%d)", uint8(k))
	}
}

// Record is a state entry stored at a derived address.
type Record interface {
	msgp.Marshaler
	msgp.Unmarshaler
	msgp.Sizer
	Kind() RecordKind
	// Copy returns a deep copy so the journal can keep the previous value.
	Copy() Record
}

// NewRecord returns an empty record of the given kind, ready to be decoded into.
func NewRecord(kind RecordKind) (Record, error) {
	switch kind {
	case RecordKindFactoryIndex:
		return &FactoryIndex{}, nil
	case RecordKindAssetRegistry:
		return &AssetRegistry{}, nil
	case RecordKindAssetIndex:
		return &AssetIndex{}, nil
	case RecordKindWhitelistStore:
		return &WhitelistStore{}, nil
	case RecordKindExtraAccountMetaList:
		return &ExtraAccountMetaList{}, nil
	}
	return nil, fmt.Errorf("unknown record kind %d", kind)
}

// FactoryIndex hands out sequence numbers to one authority.
type FactoryIndex struct {
	Authority    common.Address
	NextSequence uint64
}

func (f *FactoryIndex) Kind() RecordKind { return RecordKindFactoryIndex }

func (f *FactoryIndex) Copy() Record {
	c := *f
	return &c
}

// AssetRegistry is the per-asset configuration. Creator and Sequence pin the
// derived addresses; Authority may change afterwards.
type AssetRegistry struct {
	Mint            common.Address
	Creator         common.Address
	Sequence        uint64
	Authority       common.Address
	MintingDelegate common.Address
	TotalSupply     uint64
	Decimals        uint8
	TransfersPaused bool
	MintingPaused   bool
	Name            string
	Symbol          string
	URI             string
	Whitelist       common.Address
}

func (a *AssetRegistry) Kind() RecordKind { return RecordKindAssetRegistry }

func (a *AssetRegistry) Copy() Record {
	c := *a
	return &c
}

// AssetIndex points from a mint to its registry.
type AssetIndex struct {
	Registry common.Address
}

func (a *AssetIndex) Kind() RecordKind { return RecordKindAssetIndex }

func (a *AssetIndex) Copy() Record {
	c := *a
	return &c
}

// WhitelistGrowthChunk is the number of slots added each time the whitelist
// runs out of room.
const WhitelistGrowthChunk = 10

// WhitelistStore holds the allowed destination owners of one asset in
// insertion order. Capacity only ever grows.
type WhitelistStore struct {
	Mint      common.Address
	Addresses []common.Address
	Capacity  uint32
}

func NewWhitelistStore(mint common.Address, seed common.Address) *WhitelistStore {
	return &WhitelistStore{
		Mint:      mint,
		Addresses: []common.Address{seed},
		Capacity:  WhitelistGrowthChunk,
	}
}

func (w *WhitelistStore) Kind() RecordKind { return RecordKindWhitelistStore }

func (w *WhitelistStore) Copy() Record {
	c := *w
	c.Addresses = append([]common.Address(nil), w.Addresses...)
	return &c
}

func (w *WhitelistStore) Contains(addr common.Address) bool {
	return common.Addresses(w.Addresses).Contains(addr)
}

// Add appends the addresses that are not yet present and reports how many
// were added. Capacity grows by whole chunks.
func (w *WhitelistStore) Add(addrs ...common.Address) int {
	present := mapset.NewThreadUnsafeSet()
	for _, addr := range w.Addresses {
		present.Add(addr)
	}
	added := 0
	for _, addr := range addrs {
		if !present.Add(addr) {
			continue
		}
		w.Addresses = append(w.Addresses, addr)
		added++
	}
	for uint32(len(w.Addresses)) > w.Capacity {
		w.Capacity += WhitelistGrowthChunk
	}
	return added
}

// Remove drops every matching entry and reports how many were removed.
func (w *WhitelistStore) Remove(addrs ...common.Address) int {
	drop := mapset.NewThreadUnsafeSet()
	for _, addr := range addrs {
		drop.Add(addr)
	}
	kept := w.Addresses[:0]
	for _, addr := range w.Addresses {
		if drop.Contains(addr) {
			continue
		}
		kept = append(kept, addr)
	}
	removed := len(w.Addresses) - len(kept)
	w.Addresses = kept
	return removed
}

// SeedKind selects how a seed of an extra account recipe is produced.
type SeedKind uint8

const (
	// SeedLiteral is a fixed byte string baked into the recipe.
	SeedLiteral SeedKind = iota
	// SeedAccountKey is the key of one of the transfer's basic accounts.
	SeedAccountKey
)

// Indexes of the basic accounts a transfer carries, in the order the ledger
// engine hands them over.
const (
	AccountIndexSource uint8 = iota
	AccountIndexMint
	AccountIndexDestination
	AccountIndexOwner

	BasicAccountCount = 4
)

type Seed struct {
	Kind  SeedKind
	Data  []byte
	Index uint8
}

func LiteralSeed(b []byte) Seed {
	return Seed{Kind: SeedLiteral, Data: append([]byte(nil), b...)}
}

func AccountKeySeed(index uint8) Seed {
	return Seed{Kind: SeedAccountKey, Index: index}
}

// ExtraAccountMeta describes one account the interceptor needs in addition to
// the basic transfer accounts.
type ExtraAccountMeta struct {
	Seeds      []Seed
	IsSigner   bool
	IsWritable bool
}

// ExtraAccountMetaList is the recipe the ledger engine replays on every
// transfer of Mint.
type ExtraAccountMetaList struct {
	Mint  common.Address
	Metas []ExtraAccountMeta
}

func (e *ExtraAccountMetaList) Kind() RecordKind { return RecordKindExtraAccountMetaList }

func (e *ExtraAccountMetaList) Copy() Record {
	c := ExtraAccountMetaList{Mint: e.Mint, Metas: make([]ExtraAccountMeta, len(e.Metas))}
	for i, m := range e.Metas {
		cm := m
		cm.Seeds = make([]Seed, len(m.Seeds))
		for j, s := range m.Seeds {
			cm.Seeds[j] = Seed{Kind: s.Kind, Data: append([]byte(nil), s.Data...), Index: s.Index}
		}
		c.Metas[i] = cm
	}
	return &c
}
