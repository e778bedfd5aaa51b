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
	"github.com/annchain/tokengate/common"
	"github.com/annchain/tokengate/core/events"
	log "github.com/sirupsen/logrus"
)

// ToggleMintingPause flips the minting flag of mint and returns the new value.
func (p *Processor) ToggleMintingPause(caller common.Address, mint common.Address) (bool, error) {
	return p.togglePause(caller, mint, false)
}

// ToggleTransferPause flips the transfer flag of mint and returns the new value.
func (p *Processor) ToggleTransferPause(caller common.Address, mint common.Address) (bool, error) {
	return p.togglePause(caller, mint, true)
}

func (p *Processor) togglePause(caller common.Address, mint common.Address, transfers bool) (bool, error) {
	var paused bool
	op := "toggle_minting_pause"
	if transfers {
		op = "toggle_transfer_pause"
	}
	err := p.atomically(op, func(b *batch) error {
		regAddr, reg, err := p.loadAuthorizedAsset(caller, mint)
		if err != nil {
			return err
		}
		if transfers {
			reg.TransfersPaused = !reg.TransfersPaused
			paused = reg.TransfersPaused
		} else {
			reg.MintingPaused = !reg.MintingPaused
			paused = reg.MintingPaused
		}
		if err := p.state.SetRecord(regAddr, reg); err != nil {
			return err
		}
		b.emit(&events.PauseToggledEvent{Mint: mint, Transfers: transfers, Paused: paused})
		return nil
	})
	if err != nil {
		return false, err
	}
	log.WithFields(log.Fields{
		"mint":   mint.TerminalString(),
		"op":     op,
		"paused": paused,
	}).Info("pause toggled")
	return paused, nil
}

// TransferAuthority hands control of mint to newAuthority. Derived addresses
// stay bound to the creator.
func (p *Processor) TransferAuthority(caller common.Address, mint common.Address, newAuthority common.Address) error {
	err := p.atomically("transfer_authority", func(b *batch) error {
		regAddr, reg, err := p.loadAuthorizedAsset(caller, mint)
		if err != nil {
			return err
		}
		reg.Authority = newAuthority
		if err := p.state.SetRecord(regAddr, reg); err != nil {
			return err
		}
		b.emit(&events.AuthorityTransferredEvent{Mint: mint, Previous: caller, Current: newAuthority})
		return nil
	})
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"mint": mint.TerminalString(),
		"from": caller.TerminalString(),
		"to":   newAuthority.TerminalString(),
	}).Info("authority transferred")
	return nil
}
