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
	"github.com/annchain/tokengate/common/crypto"
	"github.com/annchain/tokengate/ledger"
	"github.com/annchain/tokengate/types"
	log "github.com/sirupsen/logrus"
)

// BuildExtraAccountMetas returns the recipe the ledger engine replays on every
// transfer of mint: one read only account, the whitelist store pinned by
// (creator, seq).
func BuildExtraAccountMetas(mint common.Address, creator common.Address, seq uint64) *types.ExtraAccountMetaList {
	return &types.ExtraAccountMetaList{
		Mint: mint,
		Metas: []types.ExtraAccountMeta{
			{
				Seeds: []types.Seed{
					types.LiteralSeed([]byte(TagWhitelist)),
					types.LiteralSeed(creator.ToBytes()),
					types.LiteralSeed(crypto.SequenceSeed(seq)),
				},
				IsSigner:   false,
				IsWritable: false,
			},
		},
	}
}

// ResolveExtraAccounts derives the extra accounts of list for a transfer with
// the given basic accounts under this processor's program id.
func (p *Processor) ResolveExtraAccounts(list *types.ExtraAccountMetaList, basic [types.BasicAccountCount]common.Address) ([]ledger.AccountInfo, error) {
	return ledger.ResolveExtraAccounts(p.config.ProgramID, list, basic)
}

// GetExtraAccountMetas returns the recipe published for mint.
func (p *Processor) GetExtraAccountMetas(mint common.Address) (*types.ExtraAccountMetaList, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.hook.ExtraAccountMetas(mint)
}

// InitializeExtraAccountMetaList publishes the recipe of an existing asset.
// It fails with ErrAlreadyExists when a recipe is already present, which is
// always the case for assets created by CreateToken.
func (p *Processor) InitializeExtraAccountMetaList(caller common.Address, mint common.Address) error {
	return p.atomically("initialize_extra_account_meta_list", func(b *batch) error {
		_, reg, err := p.loadAuthorizedAsset(caller, mint)
		if err != nil {
			return err
		}
		addr := ExtraAccountMetasAddress(p.config.ProgramID, mint)
		if err := p.createRecord(addr, BuildExtraAccountMetas(mint, reg.Creator, reg.Sequence)); err != nil {
			return err
		}
		log.WithField("mint", mint.TerminalString()).Info("extra account metas published")
		return nil
	})
}
