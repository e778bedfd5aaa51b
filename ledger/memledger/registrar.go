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
package memledger

import (
	"fmt"
	"sync"

	"github.com/annchain/tokengate/common"
	"github.com/annchain/tokengate/common/crypto"
	"github.com/annchain/tokengate/ledger"
)

// DefaultRegistrarProgramID identifies the reference registrar in derived
// metadata addresses.
var DefaultRegistrarProgramID = crypto.DeriveAddress(common.Address{}, []byte("memledger-metadata"))

type registrarShot struct {
	id      int
	entries map[common.Address]ledger.Metadata
}

// Registrar keeps asset metadata at derive("metadata", registrar, mint).
type Registrar struct {
	programID common.Address
	entries   map[common.Address]ledger.Metadata

	snapshots  []registrarShot
	snapshotID int

	mu sync.RWMutex
}

func NewRegistrar(programID common.Address) *Registrar {
	return &Registrar{
		programID: programID,
		entries:   make(map[common.Address]ledger.Metadata),
	}
}

func (r *Registrar) ProgramID() common.Address {
	return r.programID
}

func (r *Registrar) MetadataAddress(mint common.Address) common.Address {
	return crypto.DeriveAddress(r.programID, []byte("metadata"), r.programID.ToBytes(), mint.ToBytes())
}

func (r *Registrar) Register(mint common.Address, name string, symbol string, uri string, mutable bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	addr := r.MetadataAddress(mint)
	if _, ok := r.entries[addr]; ok {
		return ledger.ErrMetadataExists
	}
	r.entries[addr] = ledger.Metadata{
		Mint:    mint,
		Name:    name,
		Symbol:  symbol,
		URI:     uri,
		Mutable: mutable,
	}
	return nil
}

func (r *Registrar) Lookup(mint common.Address) (ledger.Metadata, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	md, ok := r.entries[r.MetadataAddress(mint)]
	if !ok {
		return ledger.Metadata{}, ledger.ErrMetadataNotFound
	}
	return md, nil
}

func (r *Registrar) Snapshot() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := registrarShot{id: r.snapshotID, entries: make(map[common.Address]ledger.Metadata, len(r.entries))}
	for k, v := range r.entries {
		s.entries[k] = v
	}
	r.snapshotID++
	r.snapshots = append(r.snapshots, s)
	return s.id
}

func (r *Registrar) RevertToSnapshot(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.snapshots {
		if s.id == id {
			r.entries = s.entries
			r.snapshots = r.snapshots[:i]
			return
		}
	}
	panic(fmt.Sprintf("can't find valid snapshot, id: %d", id))
}

func (r *Registrar) DiscardSnapshot(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.snapshots {
		if s.id == id {
			r.snapshots = r.snapshots[:i]
			return
		}
	}
}
