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
	"fmt"

	"github.com/annchain/tokengate/common"
	"github.com/annchain/tokengate/common/math"
	"github.com/annchain/tokengate/core/events"
	"github.com/annchain/tokengate/ledger"
	"github.com/annchain/tokengate/types"
	log "github.com/sirupsen/logrus"
)

// scale converts a whole unit amount of reg into raw units. Zero and
// overflow are both ErrInvalidAmount.
func scale(reg *types.AssetRegistry, amount uint64) (uint64, error) {
	if amount == 0 {
		return 0, ErrInvalidAmount
	}
	raw, overflow := math.ScaleUp(amount, reg.Decimals)
	if overflow {
		return 0, ErrInvalidAmount
	}
	return raw, nil
}

// Mint adds amount whole units to the supply of mint and credits them to the
// controlling authority.
func (p *Processor) Mint(caller common.Address, mint common.Address, amount uint64) (uint64, error) {
	return p.mint(caller, mint, caller, amount)
}

// MintTo is Mint with a chosen recipient. The recipient must be whitelisted
// unless it is the controlling authority itself.
func (p *Processor) MintTo(caller common.Address, mint common.Address, recipient common.Address, amount uint64) (uint64, error) {
	return p.mint(caller, mint, recipient, amount)
}

func (p *Processor) mint(caller common.Address, mint common.Address, recipient common.Address, amount uint64) (uint64, error) {
	var supply uint64
	err := p.atomically("mint", func(b *batch) error {
		regAddr, reg, err := p.loadAuthorizedAsset(caller, mint)
		if err != nil {
			return err
		}
		if reg.MintingPaused {
			return ErrMintingPaused
		}
		raw, err := scale(reg, amount)
		if err != nil {
			return err
		}
		if recipient != reg.Authority {
			wl, err := p.loadWhitelist(reg.Whitelist)
			if err != nil {
				return err
			}
			if !wl.Contains(recipient) {
				return ErrAddressNotWhitelisted
			}
		}
		next, overflow := math.SafeAdd(reg.TotalSupply, amount)
		if overflow {
			return ErrInvalidAmount
		}
		acc, err := p.holdingAccount(mint, recipient)
		if err != nil {
			return err
		}
		if err := p.engine.MintTo(reg.MintingDelegate, mint, acc, raw); err != nil {
			return fmt.Errorf("mint: %w", err)
		}
		reg.TotalSupply = next
		if err := p.state.SetRecord(regAddr, reg); err != nil {
			return err
		}
		supply = next
		b.emit(&events.SupplyChangedEvent{Mint: mint, Account: acc, Delta: amount, TotalSupply: next})
		return nil
	})
	if err != nil {
		return 0, err
	}
	log.WithFields(log.Fields{
		"mint":   mint.TerminalString(),
		"to":     recipient.TerminalString(),
		"amount": amount,
		"supply": supply,
	}).Debug("minted")
	return supply, nil
}

// Burn destroys amount whole units from the controlling authority's holding
// account. The ledger engine enforces the balance.
func (p *Processor) Burn(caller common.Address, mint common.Address, amount uint64) (uint64, error) {
	var supply uint64
	err := p.atomically("burn", func(b *batch) error {
		regAddr, reg, err := p.loadAuthorizedAsset(caller, mint)
		if err != nil {
			return err
		}
		raw, err := scale(reg, amount)
		if err != nil {
			return err
		}
		next, underflow := math.SafeSub(reg.TotalSupply, amount)
		if underflow {
			return ErrInvalidAmount
		}
		acc, ok := p.engine.HoldingAccount(mint, caller)
		if !ok {
			// no holding account means a zero balance
			return fmt.Errorf("burn: %w", ledger.ErrInsufficientFunds)
		}
		if err := p.engine.Burn(caller, mint, acc, raw); err != nil {
			return fmt.Errorf("burn: %w", err)
		}
		reg.TotalSupply = next
		if err := p.state.SetRecord(regAddr, reg); err != nil {
			return err
		}
		supply = next
		b.emit(&events.SupplyChangedEvent{Mint: mint, Account: acc, Delta: amount, Burn: true, TotalSupply: next})
		return nil
	})
	if err != nil {
		return 0, err
	}
	log.WithFields(log.Fields{
		"mint":   mint.TerminalString(),
		"from":   caller.TerminalString(),
		"amount": amount,
		"supply": supply,
	}).Debug("burned")
	return supply, nil
}
