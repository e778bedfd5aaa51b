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
	"math"
	"strings"
	"testing"

	"github.com/annchain/tokengate/core/events"
	"github.com/annchain/tokengate/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFactory(t *testing.T) {
	env := newTestEnv(t)

	addr, err := env.p.CreateFactory(alice)
	require.NoError(t, err)
	assert.Equal(t, FactoryAddress(env.p.ProgramID(), alice), addr)

	_, err = env.p.CreateFactory(alice)
	assert.Equal(t, ErrAlreadyExists, err)

	factory, err := env.p.GetFactory(alice)
	require.NoError(t, err)
	assert.Equal(t, alice, factory.Authority)
	assert.Equal(t, uint64(0), factory.NextSequence)
	assert.Len(t, env.bus.ofType(events.FactoryCreatedEventType), 1)

	_, err = env.p.GetFactory(bob)
	assert.Equal(t, ErrFactoryNotFound, err)
}

func TestCreateTokenRequiresFactory(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.p.CreateToken(alice, goldParams(bob))
	assert.Equal(t, ErrFactoryNotFound, err)
}

func TestCreateTokenAdvancesSequence(t *testing.T) {
	env := newTestEnv(t)
	first := env.createGold(t, alice, bob)

	params := goldParams(bob)
	params.Symbol = "GLD2"
	second, err := env.p.CreateToken(alice, params)
	require.NoError(t, err)

	assert.Equal(t, alice, first.Authority)
	assert.Equal(t, alice, second.Authority)
	assert.Equal(t, uint64(0), first.Sequence)
	assert.Equal(t, uint64(1), second.Sequence)
	assert.NotEqual(t, first.Mint, second.Mint)

	factory, err := env.p.GetFactory(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), factory.NextSequence)

	addrs := DeriveAssetAddresses(env.p.ProgramID(), alice, 1)
	assert.Equal(t, addrs.Mint, second.Mint)
	assert.Equal(t, addrs.Whitelist, second.Whitelist)
	assert.Equal(t, addrs.MintingDelegate, second.MintingDelegate)
}

func TestCreateTokenSideEffects(t *testing.T) {
	env := newTestEnv(t)
	reg := env.createGold(t, alice, bob)

	assert.Equal(t, uint64(1000), reg.TotalSupply)
	assert.Equal(t, uint8(6), reg.Decimals)
	assert.False(t, reg.MintingPaused)
	assert.False(t, reg.TransfersPaused)

	// the ledger receives raw units
	assert.Equal(t, uint64(1000000000), env.balance(t, reg.Mint, alice))
	raw, err := env.engine.Supply(reg.Mint)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000000000), raw)

	md, err := env.p.Metadata(reg.Mint)
	require.NoError(t, err)
	assert.Equal(t, ledger.Metadata{Mint: reg.Mint, Name: "Gold", Symbol: "GLD", URI: "https://x", Mutable: false}, md)

	// only the delegate may mint on the ledger
	acc, ok := env.engine.HoldingAccount(reg.Mint, alice)
	require.True(t, ok)
	assert.Equal(t, ledger.ErrMintAuthorityMismatch, env.engine.MintTo(alice, reg.Mint, acc, 1))

	list, err := env.p.GetExtraAccountMetas(reg.Mint)
	require.NoError(t, err)
	assert.Equal(t, BuildExtraAccountMetas(reg.Mint, alice, 0), list)

	created := env.bus.ofType(events.TokenCreatedEventType)
	require.Len(t, created, 1)
	assert.Equal(t, "GLD", created[0].(*events.TokenCreatedEvent).Symbol)
}

func TestCreateTokenValidation(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.p.CreateFactory(alice)
	require.NoError(t, err)

	cases := []struct {
		name   string
		mutate func(*TokenParams)
		err    error
	}{
		{"name", func(p *TokenParams) { p.Name = strings.Repeat("n", MaxNameLength+1) }, ErrNameTooLong},
		{"symbol", func(p *TokenParams) { p.Symbol = strings.Repeat("s", MaxSymbolLength+1) }, ErrSymbolTooLong},
		{"uri", func(p *TokenParams) { p.URI = strings.Repeat("u", MaxUriLength+1) }, ErrUriTooLong},
		{"name before symbol", func(p *TokenParams) {
			p.Name = strings.Repeat("n", MaxNameLength+1)
			p.Symbol = strings.Repeat("s", MaxSymbolLength+1)
		}, ErrNameTooLong},
		{"scaled supply overflow", func(p *TokenParams) { p.Supply = math.MaxUint64 / 10; p.Decimals = 2 }, ErrInvalidAmount},
		{"decimals overflow", func(p *TokenParams) { p.Supply = 1; p.Decimals = 20 }, ErrInvalidAmount},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			params := goldParams(bob)
			c.mutate(&params)
			_, err := env.p.CreateToken(alice, params)
			assert.Equal(t, c.err, err)
		})
	}

	factory, err := env.p.GetFactory(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), factory.NextSequence)

	// limits are inclusive
	params := goldParams(bob)
	params.Name = strings.Repeat("n", MaxNameLength)
	params.Symbol = strings.Repeat("s", MaxSymbolLength)
	params.URI = strings.Repeat("u", MaxUriLength)
	_, err = env.p.CreateToken(alice, params)
	assert.NoError(t, err)
}

func TestCreateTokenZeroSupply(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.p.CreateFactory(alice)
	require.NoError(t, err)

	params := goldParams(bob)
	params.Supply = 0
	reg, err := env.p.CreateToken(alice, params)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), reg.TotalSupply)
	assert.Equal(t, uint64(0), env.balance(t, reg.Mint, alice))
	_, ok := env.engine.HoldingAccount(reg.Mint, alice)
	assert.True(t, ok)

	// any decimals are fine without an initial supply; minting then fails to scale
	params.Decimals = 25
	wide, err := env.p.CreateToken(alice, params)
	require.NoError(t, err)
	assert.Equal(t, uint8(25), wide.Decimals)
	_, err = env.p.Mint(alice, wide.Mint, 1)
	assert.Equal(t, ErrInvalidAmount, err)
	assert.Equal(t, uint64(0), env.supply(t, wide.Mint))

	params.Decimals = goldParams(bob).Decimals
	strict := newTestEnv(t, func(c *Config) { c.AllowZeroInitialSupply = false })
	_, err = strict.p.CreateFactory(alice)
	require.NoError(t, err)
	_, err = strict.p.CreateToken(alice, params)
	assert.Equal(t, ErrInvalidAmount, err)
}
