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
package ledger

import (
	"errors"
	"testing"

	"github.com/annchain/tokengate/common"
	"github.com/annchain/tokengate/common/crypto"
	"github.com/annchain/tokengate/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveExtraAccounts(t *testing.T) {
	program := common.HexToAddress("0x01")
	creator := common.HexToAddress("0x02")
	ctx := TransferContext{
		Source:      common.HexToAddress("0x10"),
		Mint:        common.HexToAddress("0x11"),
		Destination: common.HexToAddress("0x12"),
		Owner:       common.HexToAddress("0x13"),
	}
	list := &types.ExtraAccountMetaList{
		Mint: ctx.Mint,
		Metas: []types.ExtraAccountMeta{
			{Seeds: []types.Seed{
				types.LiteralSeed([]byte("whitelist")),
				types.LiteralSeed(creator.ToBytes()),
				types.LiteralSeed(crypto.SequenceSeed(0)),
			}},
			{Seeds: []types.Seed{
				types.LiteralSeed([]byte("owner")),
				types.AccountKeySeed(types.AccountIndexOwner),
			}, IsWritable: true},
		},
	}

	infos, err := ResolveExtraAccounts(program, list, ctx.BasicAccounts())
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, crypto.DeriveAddress(program, []byte("whitelist"), creator.ToBytes(), crypto.SequenceSeed(0)), infos[0].Key)
	assert.False(t, infos[0].IsWritable)
	assert.Equal(t, crypto.DeriveAddress(program, []byte("owner"), ctx.Owner.ToBytes()), infos[1].Key)
	assert.True(t, infos[1].IsWritable)

	again, err := ResolveExtraAccounts(program, list, ctx.BasicAccounts())
	require.NoError(t, err)
	assert.Equal(t, infos, again)
}

func TestResolveExtraAccountsBadIndex(t *testing.T) {
	list := &types.ExtraAccountMetaList{
		Metas: []types.ExtraAccountMeta{{Seeds: []types.Seed{types.AccountKeySeed(7)}}},
	}
	_, err := ResolveExtraAccounts(common.Address{}, list, [types.BasicAccountCount]common.Address{})
	assert.True(t, errors.Is(err, ErrSeedIndexOutOfRange))
}
