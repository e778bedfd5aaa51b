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
	"github.com/annchain/tokengate/core/state"
	"github.com/annchain/tokengate/ledger"
	"github.com/annchain/tokengate/types"
	log "github.com/sirupsen/logrus"
)

// Hook is the transfer interceptor. The ledger engine calls Execute with the
// transfer being finalized and the extra accounts it resolved from the
// published recipe. Execute only reads state, and it never takes the
// processor lock because the engine calls it from inside Transfer.
type Hook struct {
	p *Processor
}

func (h *Hook) ProgramID() common.Address {
	return h.p.config.ProgramID
}

// ExtraAccountMetas returns the recipe published for mint.
func (h *Hook) ExtraAccountMetas(mint common.Address) (*types.ExtraAccountMetaList, error) {
	rec, err := h.p.state.GetRecordOfKind(ExtraAccountMetasAddress(h.p.config.ProgramID, mint), types.RecordKindExtraAccountMetaList)
	if errors.Is(err, state.ErrRecordNotFound) {
		return nil, ErrAssetNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec.(*types.ExtraAccountMetaList), nil
}

// Execute approves the transfer by returning nil.
func (h *Hook) Execute(ctx ledger.TransferContext, extras []ledger.AccountInfo) error {
	if !ctx.Transferring {
		return ErrIsNotCurrentlyTransferring
	}
	list, err := h.ExtraAccountMetas(ctx.Mint)
	if err != nil {
		return err
	}
	expected, err := ledger.ResolveExtraAccounts(h.ProgramID(), list, ctx.BasicAccounts())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExtraAccountMismatch, err)
	}
	if len(expected) == 0 || len(extras) != len(expected) {
		return ErrExtraAccountMismatch
	}
	for i := range expected {
		if extras[i] != expected[i] {
			return ErrExtraAccountMismatch
		}
	}

	// the first extra account is the whitelist store of the mint
	wl, err := h.p.loadWhitelist(extras[0].Key)
	if err != nil {
		return err
	}
	if wl.Mint != ctx.Mint {
		return ErrExtraAccountMismatch
	}
	if !wl.Contains(ctx.DestinationOwner) {
		log.WithFields(log.Fields{
			"mint":  ctx.Mint.TerminalString(),
			"owner": ctx.DestinationOwner.TerminalString(),
		}).Debug("destination owner not whitelisted")
		return ErrAddressNotWhitelisted
	}

	if h.p.config.HookEnforcesTransferPause {
		_, reg, err := h.p.loadAsset(ctx.Mint)
		if err != nil {
			return err
		}
		if reg.TransfersPaused {
			return ErrTransfersPaused
		}
	}
	return nil
}
