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
	"fmt"

	"github.com/annchain/tokengate/common"
	"github.com/annchain/tokengate/ogdb"
	"github.com/annchain/tokengate/types"
	"github.com/golang/snappy"
	lru "github.com/hashicorp/golang-lru"
)

// Number of decoded records kept in memory between commits.
const defaultRecordCacheSize = 4096

var recordPrefix = []byte("rec")

// Database persists records keyed by address. Values are stored as a kind
// byte followed by the snappy compressed msgp encoding of the record.
type Database interface {
	LoadRecord(addr common.Address) (types.Record, error)
	WriteRecords(records map[common.Address]types.Record) error
	Raw() ogdb.Database
}

func NewDatabase(db ogdb.Database) Database {
	return NewDatabaseWithCache(db, defaultRecordCacheSize)
}

func NewDatabaseWithCache(db ogdb.Database, cacheSize int) Database {
	if cacheSize <= 0 {
		cacheSize = defaultRecordCacheSize
	}
	rc, _ := lru.New(cacheSize)
	return &cachingDB{
		db:          db,
		recordCache: rc,
	}
}

type cachingDB struct {
	db          ogdb.Database
	recordCache *lru.Cache
}

func recordKey(addr common.Address) []byte {
	return append(append([]byte{}, recordPrefix...), addr.ToBytes()...)
}

// LoadRecord returns a private copy of the record stored at addr, or
// ogdb.ErrNotFound when nothing is stored there.
func (db *cachingDB) LoadRecord(addr common.Address) (types.Record, error) {
	if cached, ok := db.recordCache.Get(addr); ok {
		return cached.(types.Record).Copy(), nil
	}
	data, err := db.db.Get(recordKey(addr))
	if err != nil {
		return nil, err
	}
	rec, err := decodeRecord(data)
	if err != nil {
		return nil, fmt.Errorf("decode record %s err: %v", addr.TerminalString(), err)
	}
	db.recordCache.Add(addr, rec)
	return rec.Copy(), nil
}

func (db *cachingDB) WriteRecords(records map[common.Address]types.Record) error {
	batch := db.db.NewBatch()
	for addr, rec := range records {
		data, err := encodeRecord(rec)
		if err != nil {
			return fmt.Errorf("encode record %s err: %v", addr.TerminalString(), err)
		}
		if err := batch.Put(recordKey(addr), data); err != nil {
			return err
		}
	}
	if err := batch.Write(); err != nil {
		return err
	}
	for addr, rec := range records {
		db.recordCache.Add(addr, rec.Copy())
	}
	return nil
}

func (db *cachingDB) Raw() ogdb.Database {
	return db.db
}

func encodeRecord(rec types.Record) ([]byte, error) {
	payload, err := rec.MarshalMsg(nil)
	if err != nil {
		return nil, err
	}
	return append([]byte{byte(rec.Kind())}, snappy.Encode(nil, payload)...), nil
}

func decodeRecord(data []byte) (types.Record, error) {
	if len(data) < 1 {
		return nil, fmt.Errorf("empty record")
	}
	rec, err := types.NewRecord(types.RecordKind(data[0]))
	if err != nil {
		return nil, err
	}
	payload, err := snappy.Decode(nil, data[1:])
	if err != nil {
		return nil, err
	}
	if _, err := rec.UnmarshalMsg(payload); err != nil {
		return nil, err
	}
	return rec, nil
}
