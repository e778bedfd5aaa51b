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

// AddToWhitelist appends every id not yet present, in order, and reports how
// many were added. Duplicates are ignored.
func (p *Processor) AddToWhitelist(caller common.Address, mint common.Address, ids []common.Address) (int, error) {
	var added int
	err := p.atomically("add_to_whitelist", func(b *batch) error {
		_, reg, err := p.loadAuthorizedAsset(caller, mint)
		if err != nil {
			return err
		}
		wl, err := p.loadWhitelist(reg.Whitelist)
		if err != nil {
			return err
		}
		before := len(wl.Addresses)
		added = wl.Add(ids...)
		if added == 0 {
			return nil
		}
		if err := p.state.SetRecord(reg.Whitelist, wl); err != nil {
			return err
		}
		b.emit(&events.WhitelistUpdatedEvent{
			Mint:  mint,
			Added: append([]common.Address(nil), wl.Addresses[before:]...),
			Size:  len(wl.Addresses),
		})
		return nil
	})
	if err != nil {
		return 0, err
	}
	log.WithField("mint", mint.TerminalString()).WithField("added", added).Debug("whitelist extended")
	return added, nil
}

// RemoveFromWhitelist drops every matching entry and reports how many were
// removed. Absent ids are ignored.
func (p *Processor) RemoveFromWhitelist(caller common.Address, mint common.Address, ids []common.Address) (int, error) {
	var removed int
	err := p.atomically("remove_from_whitelist", func(b *batch) error {
		_, reg, err := p.loadAuthorizedAsset(caller, mint)
		if err != nil {
			return err
		}
		wl, err := p.loadWhitelist(reg.Whitelist)
		if err != nil {
			return err
		}
		var dropped []common.Address
		for _, id := range ids {
			if wl.Contains(id) && !common.Addresses(dropped).Contains(id) {
				dropped = append(dropped, id)
			}
		}
		removed = wl.Remove(ids...)
		if removed == 0 {
			return nil
		}
		if err := p.state.SetRecord(reg.Whitelist, wl); err != nil {
			return err
		}
		b.emit(&events.WhitelistUpdatedEvent{
			Mint:    mint,
			Removed: dropped,
			Size:    len(wl.Addresses),
		})
		return nil
	})
	if err != nil {
		return 0, err
	}
	log.WithField("mint", mint.TerminalString()).WithField("removed", removed).Debug("whitelist reduced")
	return removed, nil
}

// ListWhitelist returns the whitelisted identities of mint in insertion order.
func (p *Processor) ListWhitelist(mint common.Address) ([]common.Address, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, reg, err := p.loadAsset(mint)
	if err != nil {
		return nil, err
	}
	wl, err := p.loadWhitelist(reg.Whitelist)
	if err != nil {
		return nil, err
	}
	return wl.Addresses, nil
}

// WhitelistCapacity returns the number of slots allocated for mint's whitelist.
func (p *Processor) WhitelistCapacity(mint common.Address) (uint32, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, reg, err := p.loadAsset(mint)
	if err != nil {
		return 0, err
	}
	wl, err := p.loadWhitelist(reg.Whitelist)
	if err != nil {
		return 0, err
	}
	return wl.Capacity, nil
}
