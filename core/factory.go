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

	"github.com/annchain/tokengate/common"
	"github.com/annchain/tokengate/common/math"
	"github.com/annchain/tokengate/core/events"
	"github.com/annchain/tokengate/core/state"
	"github.com/annchain/tokengate/types"
	log "github.com/sirupsen/logrus"
)

// TokenParams describes an asset to create. Supply is in whole units.
type TokenParams struct {
	Supply   uint64
	Decimals uint8
	Name     string
	Symbol   string
	URI      string
	// Seed is the first whitelisted identity.
	Seed common.Address
}

func (t TokenParams) validate(allowZero bool) error {
	if len(t.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if len(t.Symbol) > MaxSymbolLength {
		return ErrSymbolTooLong
	}
	if len(t.URI) > MaxUriLength {
		return ErrUriTooLong
	}
	// a zero supply scales under any decimals
	if _, overflow := math.ScaleUp(t.Supply, t.Decimals); overflow {
		return ErrInvalidAmount
	}
	if t.Supply == 0 && !allowZero {
		return ErrInvalidAmount
	}
	return nil
}

// CreateFactory opens a factory for authority. A second call for the same
// authority fails with ErrAlreadyExists.
func (p *Processor) CreateFactory(authority common.Address) (common.Address, error) {
	addr := FactoryAddress(p.config.ProgramID, authority)
	err := p.atomically("create_factory", func(b *batch) error {
		if err := p.createRecord(addr, &types.FactoryIndex{Authority: authority}); err != nil {
			return err
		}
		b.emit(&events.FactoryCreatedEvent{Factory: addr, Authority: authority})
		return nil
	})
	if err != nil {
		return common.Address{}, err
	}
	log.WithField("authority", authority.TerminalString()).Info("factory created")
	return addr, nil
}

// CreateToken consumes the next sequence of authority's factory and creates
// the asset registry, its whitelist, the extra account recipe, the mint and
// the metadata in one step. A non zero supply is minted to the authority.
func (p *Processor) CreateToken(authority common.Address, params TokenParams) (*types.AssetRegistry, error) {
	if err := params.validate(p.config.AllowZeroInitialSupply); err != nil {
		return nil, err
	}
	raw, _ := math.ScaleUp(params.Supply, params.Decimals)

	var registry *types.AssetRegistry
	err := p.atomically("create_token", func(b *batch) error {
		factoryAddr, factory, err := p.loadFactory(authority)
		if err != nil {
			return err
		}
		seq := factory.NextSequence
		next, overflow := math.SafeAdd(seq, 1)
		if overflow {
			return ErrInvalidAmount
		}
		factory.NextSequence = next
		if err := p.state.SetRecord(factoryAddr, factory); err != nil {
			return err
		}

		addrs := DeriveAssetAddresses(p.config.ProgramID, authority, seq)
		registry = &types.AssetRegistry{
			Mint:            addrs.Mint,
			Creator:         authority,
			Sequence:        seq,
			Authority:       authority,
			MintingDelegate: addrs.MintingDelegate,
			TotalSupply:     params.Supply,
			Decimals:        params.Decimals,
			Name:            params.Name,
			Symbol:          params.Symbol,
			URI:             params.URI,
			Whitelist:       addrs.Whitelist,
		}
		if err := p.createRecord(addrs.Registry, registry); err != nil {
			return err
		}
		if err := p.createRecord(addrs.Index, &types.AssetIndex{Registry: addrs.Registry}); err != nil {
			return err
		}
		if err := p.createRecord(addrs.Whitelist, types.NewWhitelistStore(addrs.Mint, params.Seed)); err != nil {
			return err
		}
		if err := p.createRecord(addrs.ExtraAccountMetas, BuildExtraAccountMetas(addrs.Mint, authority, seq)); err != nil {
			return err
		}

		if err := p.engine.CreateMint(addrs.Mint, params.Decimals, addrs.MintingDelegate, p.hook); err != nil {
			return fmt.Errorf("create mint: %w", err)
		}
		acc, err := p.engine.CreateHoldingAccount(addrs.Mint, authority)
		if err != nil {
			return fmt.Errorf("create holding account: %w", err)
		}
		if err := p.registrar.Register(addrs.Mint, params.Name, params.Symbol, params.URI, false); err != nil {
			return fmt.Errorf("register metadata: %w", err)
		}
		if raw > 0 {
			if err := p.engine.MintTo(addrs.MintingDelegate, addrs.Mint, acc, raw); err != nil {
				return fmt.Errorf("initial mint: %w", err)
			}
		}

		b.emit(&events.TokenCreatedEvent{
			Mint:        addrs.Mint,
			Registry:    addrs.Registry,
			Whitelist:   addrs.Whitelist,
			Creator:     authority,
			Sequence:    seq,
			TotalSupply: params.Supply,
			Decimals:    params.Decimals,
			Symbol:      params.Symbol,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"mint":     registry.Mint.TerminalString(),
		"symbol":   registry.Symbol,
		"sequence": registry.Sequence,
		"supply":   registry.TotalSupply,
	}).Info("token created")
	return registry, nil
}

// createRecord stores a fresh record, reporting an occupied address as
// ErrAlreadyExists.
func (p *Processor) createRecord(addr common.Address, rec types.Record) error {
	err := p.state.CreateRecord(addr, rec)
	if errors.Is(err, state.ErrRecordExists) {
		return ErrAlreadyExists
	}
	return err
}

// GetFactory returns the factory index of authority.
func (p *Processor) GetFactory(authority common.Address) (*types.FactoryIndex, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, factory, err := p.loadFactory(authority)
	return factory, err
}

// GetAsset returns the registry of mint.
func (p *Processor) GetAsset(mint common.Address) (*types.AssetRegistry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, reg, err := p.loadAsset(mint)
	return reg, err
}
