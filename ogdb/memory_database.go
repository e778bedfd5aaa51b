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

package ogdb

import (
	"github.com/syndtr/goleveldb/leveldb/comparer"
	"github.com/syndtr/goleveldb/leveldb/memdb"
)

const memDatabaseCapacity = 1024 * 1024

// MemDatabase keeps everything in a goleveldb skiplist. It is used by tests
// and by nodes running with db.type=memory.
type MemDatabase struct {
	db *memdb.DB
}

func NewMemDatabase() *MemDatabase {
	return &MemDatabase{
		db: memdb.New(comparer.DefaultComparer, memDatabaseCapacity),
	}
}

func (db *MemDatabase) Put(key []byte, value []byte) error {
	return db.db.Put(key, value)
}

func (db *MemDatabase) Has(key []byte) (bool, error) {
	return db.db.Contains(key), nil
}

func (db *MemDatabase) Get(key []byte) ([]byte, error) {
	v, err := db.db.Get(key)
	if err == memdb.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	// memdb hands out views into its arena
	return append([]byte{}, v...), nil
}

func (db *MemDatabase) Delete(key []byte) error {
	err := db.db.Delete(key)
	if err == memdb.ErrNotFound {
		return nil
	}
	return err
}

func (db *MemDatabase) Close() {}

func (db *MemDatabase) Len() int { return db.db.Len() }

func (db *MemDatabase) NewBatch() Batch {
	return &memBatch{db: db}
}

type kv struct {
	k, v []byte
	del  bool
}

type memBatch struct {
	db     *MemDatabase
	writes []kv
	size   int
}

func (b *memBatch) Put(key, value []byte) error {
	b.writes = append(b.writes, kv{append([]byte{}, key...), append([]byte{}, value...), false})
	b.size += len(value)
	return nil
}

func (b *memBatch) Delete(key []byte) error {
	b.writes = append(b.writes, kv{append([]byte{}, key...), nil, true})
	b.size++
	return nil
}

func (b *memBatch) Write() error {
	for _, kv := range b.writes {
		if kv.del {
			if err := b.db.Delete(kv.k); err != nil {
				return err
			}
			continue
		}
		if err := b.db.Put(kv.k, kv.v); err != nil {
			return err
		}
	}
	return nil
}

func (b *memBatch) ValueSize() int {
	return b.size
}

func (b *memBatch) Reset() {
	b.writes = b.writes[:0]
	b.size = 0
}
