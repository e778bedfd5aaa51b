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
	"testing"

	"github.com/annchain/tokengate/common"
	"github.com/annchain/tokengate/core/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleTransferPauseTwice(t *testing.T) {
	env := newTestEnv(t)
	mint := env.createGold(t, alice, bob).Mint

	paused, err := env.p.ToggleTransferPause(alice, mint)
	require.NoError(t, err)
	assert.True(t, paused)
	paused, err = env.p.ToggleTransferPause(alice, mint)
	require.NoError(t, err)
	assert.False(t, paused)

	reg, err := env.p.GetAsset(mint)
	require.NoError(t, err)
	assert.False(t, reg.TransfersPaused)
	assert.Len(t, env.bus.ofType(events.PauseToggledEventType), 2)

	_, err = env.p.ToggleTransferPause(bob, mint)
	assert.Equal(t, ErrUnauthorized, err)
	_, err = env.p.ToggleMintingPause(bob, mint)
	assert.Equal(t, ErrUnauthorized, err)
}

func TestPausedTransfersAreRejected(t *testing.T) {
	env := newTestEnv(t)
	mint := env.createGold(t, alice, bob).Mint

	_, err := env.p.ToggleTransferPause(alice, mint)
	require.NoError(t, err)
	assert.Equal(t, ErrTransfersPaused, env.p.Transfer(alice, mint, bob, 1))
	assert.Equal(t, uint64(0), env.balance(t, mint, bob))

	// minting is an independent control
	_, err = env.p.Mint(alice, mint, 1)
	assert.NoError(t, err)
}

func TestMintingPauseDoesNotBlockTransfers(t *testing.T) {
	env := newTestEnv(t)
	mint := env.createGold(t, alice, bob).Mint

	paused, err := env.p.ToggleMintingPause(alice, mint)
	require.NoError(t, err)
	assert.True(t, paused)

	require.NoError(t, env.p.Transfer(alice, mint, bob, 10))
	assert.Equal(t, uint64(10000000), env.balance(t, mint, bob))
}

func TestTransferRejectsBadAmounts(t *testing.T) {
	env := newTestEnv(t)
	mint := env.createGold(t, alice, bob).Mint

	assert.Equal(t, ErrInvalidAmount, env.p.Transfer(alice, mint, bob, 0))
	assert.Equal(t, ErrAssetNotFound, env.p.Transfer(alice, identity(0x99), bob, 1))
	err := env.p.Transfer(carol, mint, bob, 1)
	assert.Error(t, err)
	_, ok := env.engine.HoldingAccount(mint, bob)
	assert.False(t, ok)
}

func TestTransferAuthority(t *testing.T) {
	env := newTestEnv(t)
	reg := env.createGold(t, alice, bob)
	mint := reg.Mint

	assert.Equal(t, ErrUnauthorized, env.p.TransferAuthority(bob, mint, bob))
	require.NoError(t, env.p.TransferAuthority(alice, mint, dave))

	_, err := env.p.Mint(alice, mint, 1)
	assert.Equal(t, ErrUnauthorized, err)
	_, err = env.p.AddToWhitelist(alice, mint, []common.Address{carol})
	assert.Equal(t, ErrUnauthorized, err)

	supply, err := env.p.Mint(dave, mint, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1001), supply)
	assert.Equal(t, uint64(1000000), env.balance(t, mint, dave))

	after, err := env.p.GetAsset(mint)
	require.NoError(t, err)
	assert.Equal(t, dave, after.Authority)
	assert.Equal(t, alice, after.Creator)
	assert.Equal(t, reg.Whitelist, after.Whitelist)

	moved := env.bus.ofType(events.AuthorityTransferredEventType)
	require.Len(t, moved, 1)
	assert.Equal(t, &events.AuthorityTransferredEvent{Mint: mint, Previous: alice, Current: dave}, moved[0])
}
