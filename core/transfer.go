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
	"github.com/annchain/tokengate/core/events"
	"github.com/annchain/tokengate/ledger"
	log "github.com/sirupsen/logrus"
)

// Transfer moves amount whole units of mint from the caller's holding account
// to the recipient's, creating the latter if needed. The ledger engine runs
// the hook before finalizing, so a recipient outside the whitelist is
// rejected with ErrAddressNotWhitelisted.
func (p *Processor) Transfer(caller common.Address, mint common.Address, recipient common.Address, amount uint64) error {
	var raw uint64
	err := p.atomically("transfer", func(b *batch) error {
		_, reg, err := p.loadAsset(mint)
		if err != nil {
			return err
		}
		if reg.TransfersPaused {
			b.emitOnFailure(&events.TransferRejectedEvent{Mint: mint, From: caller, To: recipient, Reason: ErrTransfersPaused.Code})
			return ErrTransfersPaused
		}
		raw, err = scale(reg, amount)
		if err != nil {
			return err
		}
		src, ok := p.engine.HoldingAccount(mint, caller)
		if !ok {
			return fmt.Errorf("transfer: %w", ledger.ErrInsufficientFunds)
		}
		dest, err := p.holdingAccount(mint, recipient)
		if err != nil {
			return err
		}
		if err := p.engine.Transfer(caller, src, dest, raw); err != nil {
			var kind *Error
			if errors.As(err, &kind) {
				b.emitOnFailure(&events.TransferRejectedEvent{Mint: mint, From: caller, To: recipient, Reason: kind.Code})
				return kind
			}
			return fmt.Errorf("transfer: %w", err)
		}
		b.emit(&events.TransferApprovedEvent{Mint: mint, From: caller, To: recipient, RawAmount: raw})
		return nil
	})
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"mint": mint.TerminalString(),
		"from": caller.TerminalString(),
		"to":   recipient.TerminalString(),
		"raw":  raw,
	}).Debug("transfer approved")
	return nil
}

// Balance returns owner's raw balance of mint. An owner without a holding
// account has a zero balance.
func (p *Processor) Balance(mint common.Address, owner common.Address) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, _, err := p.loadAsset(mint); err != nil {
		return 0, err
	}
	acc, ok := p.engine.HoldingAccount(mint, owner)
	if !ok {
		return 0, nil
	}
	return p.engine.Balance(acc)
}

// Metadata returns the metadata registered for mint.
func (p *Processor) Metadata(mint common.Address) (ledger.Metadata, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, _, err := p.loadAsset(mint); err != nil {
		return ledger.Metadata{}, err
	}
	return p.registrar.Lookup(mint)
}
