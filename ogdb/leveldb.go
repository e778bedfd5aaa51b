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
	"github.com/sirupsen/logrus"
	"github.com/syndtr/goleveldb/leveldb"
	leveldberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

const (
	minCache   = 16
	minHandles = 16
)

type LevelDBConfig struct {
	Path    string
	Cache   int // MB
	Handles int
}

// LevelDB is the on-disk store.
type LevelDB struct {
	path string
	db   *leveldb.DB
}

// NewLevelDB returns a LevelDB wrapped object.
func NewLevelDB(config LevelDBConfig) (*LevelDB, error) {
	cache := config.Cache
	handles := config.Handles
	if cache < minCache {
		cache = minCache
	}
	if handles < minHandles {
		handles = minHandles
	}
	logrus.WithFields(logrus.Fields{
		"path":    config.Path,
		"cache":   cache,
		"handles": handles,
	}).Info("allocated cache and file handles")

	db, err := leveldb.OpenFile(config.Path, &opt.Options{
		OpenFilesCacheCapacity: handles,
		BlockCacheCapacity:     cache / 2 * opt.MiB,
		WriteBuffer:            cache / 4 * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
	})
	if _, corrupted := err.(*leveldberrors.ErrCorrupted); corrupted {
		db, err = leveldb.RecoverFile(config.Path, nil)
	}
	if err != nil {
		return nil, err
	}
	return &LevelDB{
		path: config.Path,
		db:   db,
	}, nil
}

// Path returns the path to the database directory.
func (db *LevelDB) Path() string {
	return db.path
}

func (db *LevelDB) Put(key []byte, value []byte) error {
	return db.db.Put(key, value, nil)
}

func (db *LevelDB) Has(key []byte) (bool, error) {
	return db.db.Has(key, nil)
}

func (db *LevelDB) Get(key []byte) ([]byte, error) {
	dat, err := db.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return dat, nil
}

func (db *LevelDB) Delete(key []byte) error {
	return db.db.Delete(key, nil)
}

func (db *LevelDB) Close() {
	if err := db.db.Close(); err != nil {
		logrus.WithError(err).Error("failed to close database")
		return
	}
	logrus.WithField("path", db.path).Info("database closed")
}

func (db *LevelDB) NewBatch() Batch {
	return &ldbBatch{db: db.db, b: new(leveldb.Batch)}
}

type ldbBatch struct {
	db   *leveldb.DB
	b    *leveldb.Batch
	size int
}

func (b *ldbBatch) Put(key, value []byte) error {
	b.b.Put(key, value)
	b.size += len(value)
	return nil
}

func (b *ldbBatch) Delete(key []byte) error {
	b.b.Delete(key)
	b.size++
	return nil
}

func (b *ldbBatch) Write() error {
	return b.db.Write(b.b, nil)
}

func (b *ldbBatch) ValueSize() int {
	return b.size
}

func (b *ldbBatch) Reset() {
	b.b.Reset()
	b.size = 0
}
