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
package state_test

import (
	"errors"
	"testing"

	"github.com/annchain/tokengate/common"
	"github.com/annchain/tokengate/core/state"
	"github.com/annchain/tokengate/ogdb"
	"github.com/annchain/tokengate/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddr(b byte) common.Address {
	var a common.Address
	a.Bytes[0] = b
	return a
}

func newTestStateDB(t *testing.T) (*state.StateDB, *ogdb.MemDatabase) {
	db := ogdb.NewMemDatabase()
	return state.NewStateDB(state.NewDatabase(db)), db
}

func TestCreateAndGet(t *testing.T) {
	sd, _ := newTestStateDB(t)
	addr := testAddr(1)

	_, err := sd.GetRecord(addr)
	assert.Equal(t, state.ErrRecordNotFound, err)

	require.NoError(t, sd.CreateRecord(addr, &types.FactoryIndex{Authority: testAddr(2)}))
	assert.Equal(t, state.ErrRecordExists, sd.CreateRecord(addr, &types.FactoryIndex{}))

	rec, err := sd.GetRecordOfKind(addr, types.RecordKindFactoryIndex)
	require.NoError(t, err)
	assert.Equal(t, testAddr(2), rec.(*types.FactoryIndex).Authority)

	_, err = sd.GetRecordOfKind(addr, types.RecordKindAssetIndex)
	assert.True(t, errors.Is(err, state.ErrKindMismatch))
}

func TestGetReturnsCopy(t *testing.T) {
	sd, _ := newTestStateDB(t)
	addr := testAddr(1)
	require.NoError(t, sd.CreateRecord(addr, &types.FactoryIndex{NextSequence: 1}))

	rec, err := sd.GetRecord(addr)
	require.NoError(t, err)
	rec.(*types.FactoryIndex).NextSequence = 9

	again, err := sd.GetRecord(addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), again.(*types.FactoryIndex).NextSequence)
}

func TestRevertToSnapshot(t *testing.T) {
	sd, _ := newTestStateDB(t)
	a, b := testAddr(1), testAddr(2)
	require.NoError(t, sd.CreateRecord(a, &types.FactoryIndex{NextSequence: 1}))

	id := sd.Snapshot()
	require.NoError(t, sd.SetRecord(a, &types.FactoryIndex{NextSequence: 2}))
	require.NoError(t, sd.CreateRecord(b, &types.AssetIndex{Registry: a}))

	sd.RevertToSnapshot(id)

	rec, err := sd.GetRecord(a)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), rec.(*types.FactoryIndex).NextSequence)
	exist, err := sd.Exist(b)
	require.NoError(t, err)
	assert.False(t, exist)
	assert.Equal(t, 1, sd.Dirty())
}

func TestNestedSnapshots(t *testing.T) {
	sd, _ := newTestStateDB(t)
	a := testAddr(1)
	require.NoError(t, sd.CreateRecord(a, &types.FactoryIndex{NextSequence: 0}))

	outer := sd.Snapshot()
	require.NoError(t, sd.SetRecord(a, &types.FactoryIndex{NextSequence: 1}))
	inner := sd.Snapshot()
	require.NoError(t, sd.SetRecord(a, &types.FactoryIndex{NextSequence: 2}))

	sd.RevertToSnapshot(inner)
	rec, _ := sd.GetRecord(a)
	assert.Equal(t, uint64(1), rec.(*types.FactoryIndex).NextSequence)

	sd.RevertToSnapshot(outer)
	rec, _ = sd.GetRecord(a)
	assert.Equal(t, uint64(0), rec.(*types.FactoryIndex).NextSequence)

	assert.Panics(t, func() { sd.RevertToSnapshot(inner) })
}

func TestSetRecordRules(t *testing.T) {
	sd, _ := newTestStateDB(t)
	a := testAddr(1)
	assert.Equal(t, state.ErrRecordNotFound, sd.SetRecord(a, &types.FactoryIndex{}))

	require.NoError(t, sd.CreateRecord(a, &types.FactoryIndex{}))
	err := sd.SetRecord(a, &types.AssetIndex{})
	assert.True(t, errors.Is(err, state.ErrKindMismatch))
}

func TestCommitPersists(t *testing.T) {
	sd, mem := newTestStateDB(t)
	a := testAddr(1)
	wl := types.NewWhitelistStore(testAddr(7), testAddr(8))
	require.NoError(t, sd.CreateRecord(a, wl))
	assert.Equal(t, 0, mem.Len())

	require.NoError(t, sd.Commit())
	assert.Equal(t, 1, mem.Len())
	assert.Equal(t, 0, sd.Dirty())

	// a fresh StateDB over the same storage sees the committed record
	fresh := state.NewStateDB(state.NewDatabase(mem))
	rec, err := fresh.GetRecordOfKind(a, types.RecordKindWhitelistStore)
	require.NoError(t, err)
	loaded := rec.(*types.WhitelistStore)
	assert.Equal(t, testAddr(7), loaded.Mint)
	assert.True(t, loaded.Contains(testAddr(8)))
}

func TestRevertAfterReloadKeepsCommitted(t *testing.T) {
	sd, mem := newTestStateDB(t)
	a := testAddr(1)
	require.NoError(t, sd.CreateRecord(a, &types.FactoryIndex{NextSequence: 3}))
	require.NoError(t, sd.Commit())

	fresh := state.NewStateDB(state.NewDatabase(mem))
	id := fresh.Snapshot()
	require.NoError(t, fresh.SetRecord(a, &types.FactoryIndex{NextSequence: 4}))
	fresh.RevertToSnapshot(id)
	require.NoError(t, fresh.Commit())

	rec, err := state.NewStateDB(state.NewDatabase(mem)).GetRecord(a)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), rec.(*types.FactoryIndex).NextSequence)
}
