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
	"fmt"
	"sync"

	"github.com/annchain/tokengate/common"
	"github.com/annchain/tokengate/core/state"
	"github.com/annchain/tokengate/eventbus"
	"github.com/annchain/tokengate/ledger"
	"github.com/annchain/tokengate/types"
	log "github.com/sirupsen/logrus"
)

// Processor executes factory operations. Operations are serialized and each
// one either applies completely, including the changes it asked the ledger
// engine and registrar to make, or leaves no trace.
type Processor struct {
	config Config

	state     *state.StateDB
	engine    ledger.Engine
	registrar ledger.MetadataRegistrar
	hook      *Hook

	EventBus eventbus.EventRouter

	mu sync.Mutex
}

func NewProcessor(config Config, sdb *state.StateDB, engine ledger.Engine, registrar ledger.MetadataRegistrar) *Processor {
	p := &Processor{
		config:    config,
		state:     sdb,
		engine:    engine,
		registrar: registrar,
	}
	p.hook = &Hook{p: p}
	return p
}

func (p *Processor) Config() Config {
	return p.config
}

func (p *Processor) ProgramID() common.Address {
	return p.config.ProgramID
}

// Hook is the transfer interceptor the ledger engine calls for every asset
// created by this processor.
func (p *Processor) Hook() *Hook {
	return p.hook
}

// Commit flushes pending state changes to the database.
func (p *Processor) Commit() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state.Commit()
}

// batch collects what an operation wants to announce once it is done.
type batch struct {
	events    []eventbus.Event
	onFailure []eventbus.Event
}

func (b *batch) emit(ev eventbus.Event) {
	b.events = append(b.events, ev)
}

func (b *batch) emitOnFailure(ev eventbus.Event) {
	b.onFailure = append(b.onFailure, ev)
}

type collaboratorShot struct {
	s  ledger.Snapshotter
	id int
}

// atomically runs body as one all-or-nothing operation. Events are routed
// after the processor lock is released.
func (p *Processor) atomically(op string, body func(b *batch) error) error {
	b := &batch{}
	err := p.runLocked(op, b, body)
	if err != nil {
		p.fire(b.onFailure)
		return err
	}
	p.fire(b.events)
	return nil
}

func (p *Processor) runLocked(op string, b *batch, body func(b *batch) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	stateShot := p.state.Snapshot()
	var shots []collaboratorShot
	for _, c := range p.collaborators() {
		shots = append(shots, collaboratorShot{s: c, id: c.Snapshot()})
	}
	revert := func() {
		for i := len(shots) - 1; i >= 0; i-- {
			shots[i].s.RevertToSnapshot(shots[i].id)
		}
		p.state.RevertToSnapshot(stateShot)
	}

	if err := body(b); err != nil {
		revert()
		log.WithError(err).WithField("op", op).Debug("operation reverted")
		return err
	}
	if p.config.CommitEveryOperation {
		if err := p.state.Commit(); err != nil {
			revert()
			log.WithError(err).WithField("op", op).Error("commit failed, operation reverted")
			return fmt.Errorf("commit: %w", err)
		}
	} else {
		p.state.DiscardSnapshot(stateShot)
	}
	for _, shot := range shots {
		shot.s.DiscardSnapshot(shot.id)
	}
	log.WithField("op", op).Trace("operation applied")
	return nil
}

func (p *Processor) collaborators() []ledger.Snapshotter {
	var cs []ledger.Snapshotter
	if s, ok := p.engine.(ledger.Snapshotter); ok {
		cs = append(cs, s)
	}
	if s, ok := p.registrar.(ledger.Snapshotter); ok {
		cs = append(cs, s)
	}
	return cs
}

func (p *Processor) fire(evs []eventbus.Event) {
	if p.EventBus == nil {
		return
	}
	for _, ev := range evs {
		p.EventBus.Route(ev)
	}
}

func (p *Processor) loadFactory(authority common.Address) (common.Address, *types.FactoryIndex, error) {
	addr := FactoryAddress(p.config.ProgramID, authority)
	rec, err := p.state.GetRecordOfKind(addr, types.RecordKindFactoryIndex)
	if errors.Is(err, state.ErrRecordNotFound) {
		return addr, nil, ErrFactoryNotFound
	}
	if err != nil {
		return addr, nil, err
	}
	return addr, rec.(*types.FactoryIndex), nil
}

// loadAsset resolves a mint to its registry through the asset index.
func (p *Processor) loadAsset(mint common.Address) (common.Address, *types.AssetRegistry, error) {
	rec, err := p.state.GetRecordOfKind(AssetIndexAddress(p.config.ProgramID, mint), types.RecordKindAssetIndex)
	if errors.Is(err, state.ErrRecordNotFound) {
		return common.Address{}, nil, ErrAssetNotFound
	}
	if err != nil {
		return common.Address{}, nil, err
	}
	regAddr := rec.(*types.AssetIndex).Registry
	rec, err = p.state.GetRecordOfKind(regAddr, types.RecordKindAssetRegistry)
	if errors.Is(err, state.ErrRecordNotFound) {
		return regAddr, nil, ErrAssetNotFound
	}
	if err != nil {
		return regAddr, nil, err
	}
	return regAddr, rec.(*types.AssetRegistry), nil
}

// loadAuthorizedAsset is loadAsset plus the controlling authority check.
func (p *Processor) loadAuthorizedAsset(caller common.Address, mint common.Address) (common.Address, *types.AssetRegistry, error) {
	addr, reg, err := p.loadAsset(mint)
	if err != nil {
		return addr, nil, err
	}
	if reg.Authority != caller {
		return addr, nil, ErrUnauthorized
	}
	return addr, reg, nil
}

func (p *Processor) loadWhitelist(addr common.Address) (*types.WhitelistStore, error) {
	rec, err := p.state.GetRecordOfKind(addr, types.RecordKindWhitelistStore)
	if errors.Is(err, state.ErrRecordNotFound) {
		return nil, ErrAssetNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec.(*types.WhitelistStore), nil
}

// holdingAccount returns owner's holding account for mint, creating it when
// it does not exist yet.
func (p *Processor) holdingAccount(mint common.Address, owner common.Address) (common.Address, error) {
	if acc, ok := p.engine.HoldingAccount(mint, owner); ok {
		return acc, nil
	}
	acc, err := p.engine.CreateHoldingAccount(mint, owner)
	if err != nil {
		return common.Address{}, fmt.Errorf("create holding account: %w", err)
	}
	return acc, nil
}
