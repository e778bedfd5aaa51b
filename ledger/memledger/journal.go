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
package memledger

import "github.com/annchain/tokengate/common"

// journalEntry undoes one engine mutation.
type journalEntry interface {
	revert(e *Engine)
}

type (
	mintCreated struct {
		mint common.Address
	}
	accountCreated struct {
		account common.Address
		key     ownerKey
	}
	supplyChange struct {
		mint common.Address
		prev uint64
	}
	balanceChange struct {
		account common.Address
		prev    uint64
	}
)

func (c mintCreated) revert(e *Engine) {
	delete(e.mints, c.mint)
}

func (c accountCreated) revert(e *Engine) {
	delete(e.accounts, c.account)
	delete(e.owners, c.key)
}

func (c supplyChange) revert(e *Engine) {
	e.mints[c.mint].Supply = c.prev
}

func (c balanceChange) revert(e *Engine) {
	e.accounts[c.account].Amount = c.prev
}

// record appends entry while a snapshot is open. Outside any snapshot
// nothing can be reverted, so nothing is kept.
func (e *Engine) record(entry journalEntry) {
	if len(e.snapshots) == 0 {
		return
	}
	e.journal = append(e.journal, entry)
}

func (e *Engine) setSupply(mint common.Address, m *mintState, supply uint64) {
	e.record(supplyChange{mint: mint, prev: m.Supply})
	m.Supply = supply
}

func (e *Engine) setBalance(account common.Address, h *holding, amount uint64) {
	e.record(balanceChange{account: account, prev: h.Amount})
	h.Amount = amount
}

// revertJournal undoes entries from the newest down to index.
func (e *Engine) revertJournal(index int) {
	for i := len(e.journal) - 1; i >= index; i-- {
		e.journal[i].revert(e)
		e.journal[i] = nil
	}
	e.journal = e.journal[:index]
}
