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
	"math"
	"testing"

	"github.com/annchain/tokengate/core/events"
	"github.com/annchain/tokengate/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupplyTracksMintsAndBurns(t *testing.T) {
	env := newTestEnv(t)
	mint := env.createGold(t, alice, bob).Mint

	_, err := env.p.Mint(alice, mint, 300)
	require.NoError(t, err)
	_, err = env.p.Burn(alice, mint, 200)
	require.NoError(t, err)
	_, err = env.p.Mint(alice, mint, 50)
	require.NoError(t, err)
	supply, err := env.p.Burn(alice, mint, 1150)
	require.NoError(t, err)

	assert.Equal(t, uint64(0), supply)
	assert.Equal(t, uint64(0), env.balance(t, mint, alice))

	// driving the supply below zero fails instead of wrapping
	_, err = env.p.Burn(alice, mint, 1)
	assert.Equal(t, ErrInvalidAmount, err)
	assert.Equal(t, uint64(0), env.supply(t, mint))

	changes := env.bus.ofType(events.SupplyChangedEventType)
	require.Len(t, changes, 4)
	assert.True(t, changes[3].(*events.SupplyChangedEvent).Burn)
}

func TestMintRules(t *testing.T) {
	env := newTestEnv(t)
	mint := env.createGold(t, alice, bob).Mint

	_, err := env.p.Mint(bob, mint, 1)
	assert.Equal(t, ErrUnauthorized, err)
	_, err = env.p.Mint(alice, mint, 0)
	assert.Equal(t, ErrInvalidAmount, err)
	_, err = env.p.Mint(alice, mint, math.MaxUint64/1000)
	assert.Equal(t, ErrInvalidAmount, err)

	_, err = env.p.ToggleMintingPause(alice, mint)
	require.NoError(t, err)
	_, err = env.p.Mint(alice, mint, 1)
	assert.Equal(t, ErrMintingPaused, err)
	// the authority check comes first
	_, err = env.p.Mint(bob, mint, 1)
	assert.Equal(t, ErrUnauthorized, err)

	assert.Equal(t, uint64(1000), env.supply(t, mint))
}

func TestMintSupplyOverflow(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.p.CreateFactory(alice)
	require.NoError(t, err)
	params := goldParams(bob)
	params.Supply = math.MaxUint64
	params.Decimals = 0
	reg, err := env.p.CreateToken(alice, params)
	require.NoError(t, err)

	_, err = env.p.Mint(alice, reg.Mint, 1)
	assert.Equal(t, ErrInvalidAmount, err)
	assert.Equal(t, uint64(math.MaxUint64), env.supply(t, reg.Mint))
}

func TestMintTo(t *testing.T) {
	env := newTestEnv(t)
	mint := env.createGold(t, alice, bob).Mint

	_, err := env.p.MintTo(alice, mint, carol, 5)
	assert.Equal(t, ErrAddressNotWhitelisted, err)
	_, ok := env.engine.HoldingAccount(mint, carol)
	assert.False(t, ok)

	supply, err := env.p.MintTo(alice, mint, bob, 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(1005), supply)
	assert.Equal(t, uint64(5000000), env.balance(t, mint, bob))

	// the authority never needs to be whitelisted
	_, err = env.p.MintTo(alice, mint, alice, 5)
	assert.NoError(t, err)
}

func TestBurnRules(t *testing.T) {
	env := newTestEnv(t)
	mint := env.createGold(t, alice, bob).Mint
	_, err := env.p.MintTo(alice, mint, bob, 10)
	require.NoError(t, err)

	// only the controlling authority burns, even from a funded account
	_, err = env.p.Burn(bob, mint, 4)
	assert.Equal(t, ErrUnauthorized, err)
	assert.Equal(t, uint64(1010), env.supply(t, mint))
	assert.Equal(t, uint64(10000000), env.balance(t, mint, bob))

	supply, err := env.p.Burn(alice, mint, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(1006), supply)
	assert.Equal(t, uint64(996000000), env.balance(t, mint, alice))

	_, err = env.p.Burn(alice, mint, 997)
	assert.True(t, errors.Is(err, ledger.ErrInsufficientFunds))
	_, err = env.p.Burn(alice, mint, 0)
	assert.Equal(t, ErrInvalidAmount, err)

	// a new authority without a holding account has nothing to burn
	require.NoError(t, env.p.TransferAuthority(alice, mint, carol))
	_, err = env.p.Burn(alice, mint, 1)
	assert.Equal(t, ErrUnauthorized, err)
	_, err = env.p.Burn(carol, mint, 1)
	assert.True(t, errors.Is(err, ledger.ErrInsufficientFunds))

	assert.Equal(t, uint64(1006), env.supply(t, mint))
	assert.Equal(t, uint64(996000000), env.balance(t, mint, alice))
	assert.Equal(t, uint64(10000000), env.balance(t, mint, bob))
}
