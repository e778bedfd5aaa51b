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
package state

import (
	"errors"
	"fmt"
	"sync"

	"github.com/annchain/tokengate/common"
	"github.com/annchain/tokengate/ogdb"
	"github.com/annchain/tokengate/types"
	log "github.com/sirupsen/logrus"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrRecordExists   = errors.New("record already exists")
	ErrKindMismatch   = errors.New("record kind mismatch")
)

// StateDB stores every record the factory owns. Records are loaded lazily
// from the underlying Database and kept in memory until Commit. Every change
// goes through the journal so that a failed operation can be rolled back with
// RevertToSnapshot.
type StateDB struct {
	db Database

	// journal records every action which will change statedb's data.
	journal     *journal
	snapshotSet []shot
	snapshotID  int

	// records holds every loaded or modified record.
	records map[common.Address]types.Record

	mu sync.RWMutex
}

func NewStateDB(db Database) *StateDB {
	return &StateDB{
		db:      db,
		journal: newJournal(),
		records: make(map[common.Address]types.Record),
	}
}

func (sd *StateDB) Database() Database {
	return sd.db
}

// Exist reports whether a record lives at addr.
func (sd *StateDB) Exist(addr common.Address) (bool, error) {
	sd.mu.Lock()
	defer sd.mu.Unlock()

	rec, err := sd.getRecord(addr)
	if err != nil {
		return false, err
	}
	return rec != nil, nil
}

// GetRecord returns a copy of the record at addr. Changes to the copy are only
// visible after SetRecord.
func (sd *StateDB) GetRecord(addr common.Address) (types.Record, error) {
	sd.mu.Lock()
	defer sd.mu.Unlock()

	rec, err := sd.getRecord(addr)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrRecordNotFound
	}
	return rec.Copy(), nil
}

// GetRecordOfKind is GetRecord plus a kind check.
func (sd *StateDB) GetRecordOfKind(addr common.Address, kind types.RecordKind) (types.Record, error) {
	rec, err := sd.GetRecord(addr)
	if err != nil {
		return nil, err
	}
	if rec.Kind() != kind {
		return nil, fmt.Errorf("%w: want %s, have %s at %s", ErrKindMismatch, kind, rec.Kind(), addr.TerminalString())
	}
	return rec, nil
}

// CreateRecord stores a new record at addr. It fails with ErrRecordExists if
// the address is already occupied.
func (sd *StateDB) CreateRecord(addr common.Address, rec types.Record) error {
	sd.mu.Lock()
	defer sd.mu.Unlock()

	old, err := sd.getRecord(addr)
	if err != nil {
		return err
	}
	if old != nil {
		return ErrRecordExists
	}
	sd.journal.append(createRecordChange{addr: &addr})
	sd.records[addr] = rec.Copy()
	return nil
}

// SetRecord replaces the record at addr. The previous value is journalled.
func (sd *StateDB) SetRecord(addr common.Address, rec types.Record) error {
	sd.mu.Lock()
	defer sd.mu.Unlock()

	old, err := sd.getRecord(addr)
	if err != nil {
		return err
	}
	if old == nil {
		return ErrRecordNotFound
	}
	if old.Kind() != rec.Kind() {
		return fmt.Errorf("%w: cannot overwrite %s with %s", ErrKindMismatch, old.Kind(), rec.Kind())
	}
	sd.journal.append(updateRecordChange{addr: &addr, prev: old})
	sd.records[addr] = rec.Copy()
	return nil
}

func (sd *StateDB) getRecord(addr common.Address) (types.Record, error) {
	if rec, ok := sd.records[addr]; ok {
		return rec, nil
	}
	rec, err := sd.db.LoadRecord(addr)
	if err == ogdb.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load record err: %v", err)
	}
	sd.records[addr] = rec
	return rec, nil
}

// Dirty returns the number of records changed since the last commit.
func (sd *StateDB) Dirty() int {
	sd.mu.RLock()
	defer sd.mu.RUnlock()

	return len(sd.journal.dirties)
}

// Commit flushes every dirty record to the database and clears the journal.
// Snapshots taken before Commit are no longer valid.
func (sd *StateDB) Commit() error {
	sd.mu.Lock()
	defer sd.mu.Unlock()

	return sd.commit()
}

func (sd *StateDB) commit() error {
	if len(sd.journal.dirties) == 0 {
		sd.clearJournal()
		return nil
	}
	dirty := make(map[common.Address]types.Record, len(sd.journal.dirties))
	for addr := range sd.journal.dirties {
		rec, ok := sd.records[addr]
		if !ok {
			continue
		}
		dirty[addr] = rec
	}
	if err := sd.db.WriteRecords(dirty); err != nil {
		log.WithError(err).Error("commit statedb error")
		return err
	}
	log.WithField("records", len(dirty)).Trace("statedb committed")
	sd.clearJournal()
	return nil
}

func (sd *StateDB) Snapshot() int {
	sd.mu.Lock()
	defer sd.mu.Unlock()

	id := sd.snapshotID
	sd.snapshotID++
	sd.snapshotSet = append(sd.snapshotSet, shot{shotid: id, journalIndex: sd.journal.length()})
	return id
}

func (sd *StateDB) RevertToSnapshot(snapshotid int) {
	sd.mu.Lock()
	defer sd.mu.Unlock()

	index := 0
	s := shot{shotid: -1}
	for i, shotInMem := range sd.snapshotSet {
		if shotInMem.shotid == snapshotid {
			index = i
			s = shotInMem
			break
		}
	}
	if s.shotid == -1 {
		panic(fmt.Sprintf("can't find valid snapshot, id: %d", snapshotid))
	}
	sd.journal.revert(sd, s.journalIndex)
	sd.snapshotSet = sd.snapshotSet[:index]
}

// DiscardSnapshot forgets snapshotid and every later snapshot while keeping
// their changes.
func (sd *StateDB) DiscardSnapshot(snapshotid int) {
	sd.mu.Lock()
	defer sd.mu.Unlock()

	for i, shotInMem := range sd.snapshotSet {
		if shotInMem.shotid == snapshotid {
			sd.snapshotSet = sd.snapshotSet[:i]
			return
		}
	}
}

func (sd *StateDB) clearJournal() {
	sd.journal = newJournal()
	sd.snapshotID = 0
	sd.snapshotSet = sd.snapshotSet[:0]
}

type shot struct {
	shotid       int
	journalIndex int
}
