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
package core

import (
	"errors"
	"testing"

	"github.com/annchain/tokengate/common"
	"github.com/annchain/tokengate/common/crypto"
	"github.com/annchain/tokengate/core/events"
	"github.com/annchain/tokengate/core/state"
	"github.com/annchain/tokengate/eventbus"
	"github.com/annchain/tokengate/ledger"
	"github.com/annchain/tokengate/ledger/memledger"
	"github.com/annchain/tokengate/ogdb"
	"github.com/annchain/tokengate/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRouter struct {
	events []eventbus.Event
}

func (r *recordingRouter) Route(ev eventbus.Event) {
	r.events = append(r.events, ev)
}

func (r *recordingRouter) ofType(t eventbus.EventType) []eventbus.Event {
	var out []eventbus.Event
	for _, ev := range r.events {
		if ev.GetEventType() == t {
			out = append(out, ev)
		}
	}
	return out
}

type testEnv struct {
	p         *Processor
	engine    *memledger.Engine
	registrar *memledger.Registrar
	db        *ogdb.MemDatabase
	bus       *recordingRouter
}

func newTestEnv(t *testing.T, opts ...func(*Config)) *testEnv {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	env := &testEnv{
		engine:    memledger.NewEngine(memledger.DefaultEngineConfig()),
		registrar: memledger.NewRegistrar(memledger.DefaultRegistrarProgramID),
		db:        ogdb.NewMemDatabase(),
		bus:       &recordingRouter{},
	}
	env.p = NewProcessor(config, state.NewStateDB(state.NewDatabase(env.db)), env.engine, env.registrar)
	env.p.EventBus = env.bus
	return env
}

func identity(b byte) common.Address {
	var a common.Address
	a.Bytes[31] = b
	return a
}

var (
	alice = identity(0xA)
	bob   = identity(0xB)
	carol = identity(0xC)
	dave  = identity(0xD)
)

func goldParams(seed common.Address) TokenParams {
	return TokenParams{
		Supply:   1000,
		Decimals: 6,
		Name:     "Gold",
		Symbol:   "GLD",
		URI:      "https://x",
		Seed:     seed,
	}
}

// createGold opens a factory for authority and creates the Gold asset.
func (env *testEnv) createGold(t *testing.T, authority common.Address, seed common.Address) *types.AssetRegistry {
	_, err := env.p.CreateFactory(authority)
	require.NoError(t, err)
	reg, err := env.p.CreateToken(authority, goldParams(seed))
	require.NoError(t, err)
	return reg
}

func (env *testEnv) balance(t *testing.T, mint common.Address, owner common.Address) uint64 {
	bal, err := env.p.Balance(mint, owner)
	require.NoError(t, err)
	return bal
}

func (env *testEnv) supply(t *testing.T, mint common.Address) uint64 {
	reg, err := env.p.GetAsset(mint)
	require.NoError(t, err)
	return reg.TotalSupply
}

func TestGoldScenario(t *testing.T) {
	env := newTestEnv(t)
	reg := env.createGold(t, alice, bob)
	mint := reg.Mint

	assert.Equal(t, uint64(1000), reg.TotalSupply)
	wl, err := env.p.ListWhitelist(mint)
	require.NoError(t, err)
	assert.Equal(t, []common.Address{bob}, wl)

	supply, err := env.p.Mint(alice, mint, 500)
	require.NoError(t, err)
	assert.Equal(t, uint64(1500), supply)
	assert.Equal(t, uint64(1500000000), env.balance(t, mint, alice))

	err = env.p.Transfer(alice, mint, carol, 100)
	assert.Equal(t, ErrAddressNotWhitelisted, err)
	assert.Equal(t, uint64(1500), env.supply(t, mint))
	assert.Equal(t, uint64(1500000000), env.balance(t, mint, alice))
	assert.Equal(t, uint64(0), env.balance(t, mint, carol))
	_, ok := env.engine.HoldingAccount(mint, carol)
	assert.False(t, ok, "rejected transfer must not leave a holding account behind")

	_, err = env.p.AddToWhitelist(alice, mint, []common.Address{carol})
	require.NoError(t, err)
	require.NoError(t, env.p.Transfer(alice, mint, carol, 100))

	assert.Equal(t, uint64(100000000), env.balance(t, mint, carol))
	assert.Equal(t, uint64(1400000000), env.balance(t, mint, alice))
	assert.Equal(t, uint64(1500), env.supply(t, mint))

	require.Len(t, env.bus.ofType(events.TransferRejectedEventType), 1)
	rejected := env.bus.ofType(events.TransferRejectedEventType)[0].(*events.TransferRejectedEvent)
	assert.Equal(t, ErrAddressNotWhitelisted.Code, rejected.Reason)
	require.Len(t, env.bus.ofType(events.TransferApprovedEventType), 1)
	assert.Equal(t, memledger.TransferStats{Attempted: 2, Approved: 1, Rejected: 1}, env.engine.Stats())
}

func TestFailedOperationLeavesNoTrace(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.p.CreateFactory(alice)
	require.NoError(t, err)
	stored := env.db.Len()

	// occupy the metadata slot of the next mint so that registration fails
	next := DeriveAssetAddresses(env.p.ProgramID(), alice, 0)
	require.NoError(t, env.registrar.Register(next.Mint, "squat", "SQ", "", true))

	_, err = env.p.CreateToken(alice, goldParams(bob))
	assert.True(t, errors.Is(err, ledger.ErrMetadataExists))

	factory, err := env.p.GetFactory(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), factory.NextSequence)
	_, err = env.p.GetAsset(next.Mint)
	assert.Equal(t, ErrAssetNotFound, err)
	_, err = env.engine.Supply(next.Mint)
	assert.Equal(t, ledger.ErrMintNotFound, err)
	assert.Equal(t, stored, env.db.Len())
	assert.Empty(t, env.bus.ofType(events.TokenCreatedEventType))
}

func TestCommitDeferred(t *testing.T) {
	env := newTestEnv(t, func(c *Config) { c.CommitEveryOperation = false })
	reg := env.createGold(t, alice, bob)
	assert.Equal(t, 0, env.db.Len())

	require.NoError(t, env.p.Commit())
	fresh := state.NewStateDB(state.NewDatabase(env.db))
	rec, err := fresh.GetRecordOfKind(AssetIndexAddress(env.p.ProgramID(), reg.Mint), types.RecordKindAssetIndex)
	require.NoError(t, err)
	assert.Equal(t, DeriveAssetAddresses(env.p.ProgramID(), alice, 0).Registry, rec.(*types.AssetIndex).Registry)
}

func TestStatePersistsAcrossProcessors(t *testing.T) {
	env := newTestEnv(t)
	reg := env.createGold(t, alice, bob)
	_, err := env.p.AddToWhitelist(alice, reg.Mint, []common.Address{carol})
	require.NoError(t, err)

	reopened := NewProcessor(env.p.Config(), state.NewStateDB(state.NewDatabase(env.db)), env.engine, env.registrar)
	wl, err := reopened.ListWhitelist(reg.Mint)
	require.NoError(t, err)
	assert.Equal(t, []common.Address{bob, carol}, wl)
}

func TestDerivedAddressesAreDistinct(t *testing.T) {
	program := DefaultProgramID
	a := DeriveAssetAddresses(program, alice, 0)
	b := DeriveAssetAddresses(program, alice, 1)
	c := DeriveAssetAddresses(program, bob, 0)

	assert.NotEqual(t, a.Mint, b.Mint)
	assert.NotEqual(t, a.Mint, c.Mint)
	assert.NotEqual(t, a.Registry, a.Whitelist)
	assert.Equal(t, a, DeriveAssetAddresses(program, alice, 0))
	assert.Equal(t, crypto.DeriveAddress(program, []byte("whitelist"), alice.ToBytes(), crypto.SequenceSeed(0)), a.Whitelist)
	assert.NotEqual(t, FactoryAddress(program, alice), FactoryAddress(program, bob))
}
