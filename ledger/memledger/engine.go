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
// Package memledger is an in-memory fungible asset ledger and metadata
// registrar. It honours the ledger contracts closely enough to host the
// token factory in a node or a test, but keeps nothing on disk.
package memledger

import (
	"fmt"
	"sync"

	"github.com/annchain/gcache"
	"github.com/annchain/tokengate/common"
	"github.com/annchain/tokengate/common/crypto"
	"github.com/annchain/tokengate/common/math"
	"github.com/annchain/tokengate/ledger"
	"github.com/annchain/tokengate/types"
	log "github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// DefaultEngineProgramID identifies the reference engine in derived holding
// account addresses.
var DefaultEngineProgramID = crypto.DeriveAddress(common.Address{}, []byte("memledger"))

type EngineConfig struct {
	ProgramID common.Address
	// RecipeCacheSize bounds the number of extra account recipes kept.
	RecipeCacheSize int
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		ProgramID:       DefaultEngineProgramID,
		RecipeCacheSize: 1024,
	}
}

type mintState struct {
	Decimals      uint8
	MintAuthority common.Address
	Supply        uint64
	Hook          ledger.TransferHook
}

type holding struct {
	Mint         common.Address
	Owner        common.Address
	Amount       uint64
	Transferring bool
}

type ownerKey struct {
	mint  common.Address
	owner common.Address
}

type engineShot struct {
	id           int
	journalIndex int
}

// TransferStats counts hooked transfers since the engine was created.
type TransferStats struct {
	Attempted uint64
	Approved  uint64
	Rejected  uint64
}

type Engine struct {
	config EngineConfig

	mints    map[common.Address]*mintState
	accounts map[common.Address]*holding
	owners   map[ownerKey]common.Address

	journal    []journalEntry
	snapshots  []engineShot
	snapshotID int

	recipes gcache.Cache

	attempted *atomic.Uint64
	approved  *atomic.Uint64
	rejected  *atomic.Uint64

	mu sync.Mutex
}

func NewEngine(config EngineConfig) *Engine {
	if config.RecipeCacheSize <= 0 {
		config.RecipeCacheSize = DefaultEngineConfig().RecipeCacheSize
	}
	e := &Engine{
		config:    config,
		mints:     make(map[common.Address]*mintState),
		accounts:  make(map[common.Address]*holding),
		owners:    make(map[ownerKey]common.Address),
		attempted: atomic.NewUint64(0),
		approved:  atomic.NewUint64(0),
		rejected:  atomic.NewUint64(0),
	}
	e.recipes = gcache.New(config.RecipeCacheSize).LRU().LoaderFunc(e.loadRecipe).Build()
	return e
}

// HoldingAddress is the derived address of owner's holding account for mint.
func (e *Engine) HoldingAddress(mint common.Address, owner common.Address) common.Address {
	return crypto.DeriveAddress(e.config.ProgramID, owner.ToBytes(), mint.ToBytes())
}

func (e *Engine) CreateMint(mint common.Address, decimals uint8, mintAuthority common.Address, hook ledger.TransferHook) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.mints[mint]; ok {
		return ledger.ErrMintExists
	}
	e.mints[mint] = &mintState{
		Decimals:      decimals,
		MintAuthority: mintAuthority,
		Hook:          hook,
	}
	e.record(mintCreated{mint: mint})
	log.WithFields(log.Fields{
		"mint":     mint.TerminalString(),
		"decimals": decimals,
		"hooked":   hook != nil,
	}).Debug("mint created")
	return nil
}

func (e *Engine) CreateHoldingAccount(mint common.Address, owner common.Address) (common.Address, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.mints[mint]; !ok {
		return common.Address{}, ledger.ErrMintNotFound
	}
	key := ownerKey{mint: mint, owner: owner}
	if _, ok := e.owners[key]; ok {
		return common.Address{}, ledger.ErrAccountExists
	}
	addr := e.HoldingAddress(mint, owner)
	e.accounts[addr] = &holding{Mint: mint, Owner: owner}
	e.owners[key] = addr
	e.record(accountCreated{account: addr, key: key})
	return addr, nil
}

func (e *Engine) HoldingAccount(mint common.Address, owner common.Address) (common.Address, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	addr, ok := e.owners[ownerKey{mint: mint, owner: owner}]
	return addr, ok
}

func (e *Engine) MintTo(signer common.Address, mint common.Address, dest common.Address, raw uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, ok := e.mints[mint]
	if !ok {
		return ledger.ErrMintNotFound
	}
	if m.MintAuthority != signer {
		return ledger.ErrMintAuthorityMismatch
	}
	to, ok := e.accounts[dest]
	if !ok {
		return ledger.ErrAccountNotFound
	}
	if to.Mint != mint {
		return ledger.ErrMintMismatch
	}
	supply, overflow := math.SafeAdd(m.Supply, raw)
	if overflow {
		return ledger.ErrOverflow
	}
	e.setSupply(mint, m, supply)
	e.setBalance(dest, to, to.Amount+raw)
	return nil
}

func (e *Engine) Burn(signer common.Address, mint common.Address, src common.Address, raw uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, ok := e.mints[mint]
	if !ok {
		return ledger.ErrMintNotFound
	}
	from, ok := e.accounts[src]
	if !ok {
		return ledger.ErrAccountNotFound
	}
	if from.Mint != mint {
		return ledger.ErrMintMismatch
	}
	if from.Owner != signer {
		return ledger.ErrOwnerMismatch
	}
	if from.Amount < raw {
		return ledger.ErrInsufficientFunds
	}
	e.setBalance(src, from, from.Amount-raw)
	e.setSupply(mint, m, m.Supply-raw)
	return nil
}

// Transfer moves raw units between two holding accounts of the same mint.
// For a hooked mint the hook runs after the balances moved, with the source
// marked as transferring; any hook error restores both balances.
// The hook must not call back into the engine.
func (e *Engine) Transfer(signer common.Address, src common.Address, dest common.Address, raw uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	from, ok := e.accounts[src]
	if !ok {
		return fmt.Errorf("source: %w", ledger.ErrAccountNotFound)
	}
	to, ok := e.accounts[dest]
	if !ok {
		return fmt.Errorf("destination: %w", ledger.ErrAccountNotFound)
	}
	if from.Owner != signer {
		return ledger.ErrOwnerMismatch
	}
	if from.Mint != to.Mint {
		return ledger.ErrMintMismatch
	}
	if from.Amount < raw {
		return ledger.ErrInsufficientFunds
	}
	fromBefore, toBefore := from.Amount, to.Amount
	e.setBalance(src, from, from.Amount-raw)
	received, overflow := math.SafeAdd(to.Amount, raw)
	if overflow {
		e.setBalance(src, from, fromBefore)
		return ledger.ErrOverflow
	}
	e.setBalance(dest, to, received)

	m := e.mints[from.Mint]
	if m.Hook == nil {
		return nil
	}
	e.attempted.Inc()

	from.Transferring = true
	defer func() { from.Transferring = false }()

	ctx := ledger.TransferContext{
		Source:           src,
		Mint:             from.Mint,
		Destination:      dest,
		Owner:            signer,
		DestinationOwner: to.Owner,
		Amount:           raw,
		Transferring:     from.Transferring,
	}
	err := e.executeHook(m.Hook, ctx)
	if err != nil {
		e.setBalance(src, from, fromBefore)
		e.setBalance(dest, to, toBefore)
		e.rejected.Inc()
		log.WithError(err).WithFields(log.Fields{
			"mint":        ctx.Mint.TerminalString(),
			"destination": dest.TerminalString(),
		}).Debug("transfer rejected by hook")
		return fmt.Errorf("transfer hook: %w", err)
	}
	e.approved.Inc()
	return nil
}

func (e *Engine) executeHook(hook ledger.TransferHook, ctx ledger.TransferContext) error {
	v, err := e.recipes.Get(ctx.Mint)
	if err != nil {
		return fmt.Errorf("load extra account metas: %w", err)
	}
	extras, err := ledger.ResolveExtraAccounts(hook.ProgramID(), v.(*types.ExtraAccountMetaList), ctx.BasicAccounts())
	if err != nil {
		return err
	}
	return hook.Execute(ctx, extras)
}

// loadRecipe runs with e.mu held.
func (e *Engine) loadRecipe(key interface{}) (interface{}, error) {
	mint := key.(common.Address)
	m, ok := e.mints[mint]
	if !ok || m.Hook == nil {
		return nil, gcache.KeyNotFoundError
	}
	list, err := m.Hook.ExtraAccountMetas(mint)
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (e *Engine) Balance(account common.Address) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	h, ok := e.accounts[account]
	if !ok {
		return 0, ledger.ErrAccountNotFound
	}
	return h.Amount, nil
}

// Supply returns the raw supply the engine tracks for mint.
func (e *Engine) Supply(mint common.Address) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, ok := e.mints[mint]
	if !ok {
		return 0, ledger.ErrMintNotFound
	}
	return m.Supply, nil
}

func (e *Engine) Stats() TransferStats {
	return TransferStats{
		Attempted: e.attempted.Load(),
		Approved:  e.approved.Load(),
		Rejected:  e.rejected.Load(),
	}
}

// Snapshot marks the current journal position. Changes are journalled only
// while at least one snapshot is open.
func (e *Engine) Snapshot() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := engineShot{id: e.snapshotID, journalIndex: len(e.journal)}
	e.snapshotID++
	e.snapshots = append(e.snapshots, s)
	return s.id
}

func (e *Engine) RevertToSnapshot(id int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	index := e.snapshotIndex(id)
	if index == -1 {
		panic(fmt.Sprintf("can't find valid snapshot, id: %d", id))
	}
	e.revertJournal(e.snapshots[index].journalIndex)
	e.snapshots = e.snapshots[:index]
	e.recipes.Purge()
}

// DiscardSnapshot drops id and every later snapshot, keeping their changes.
func (e *Engine) DiscardSnapshot(id int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	index := e.snapshotIndex(id)
	if index == -1 {
		return
	}
	e.snapshots = e.snapshots[:index]
	if len(e.snapshots) == 0 {
		e.journal = nil
	}
}

func (e *Engine) snapshotIndex(id int) int {
	for i, s := range e.snapshots {
		if s.id == id {
			return i
		}
	}
	return -1
}
