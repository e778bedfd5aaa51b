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
package rpc

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/annchain/tokengate/common/hexutil"
	"github.com/annchain/tokengate/core"
	"github.com/annchain/tokengate/types"
	"github.com/gin-gonic/gin"
)

type AssetMsg struct {
	Mint            string `json:"mint"`
	Creator         string `json:"creator"`
	Sequence        uint64 `json:"sequence"`
	Authority       string `json:"authority"`
	MintingDelegate string `json:"minting_delegate"`
	TotalSupply     uint64 `json:"total_supply"`
	Decimals        uint8  `json:"decimals"`
	TransfersPaused bool   `json:"transfers_paused"`
	MintingPaused   bool   `json:"minting_paused"`
	Name            string `json:"name"`
	Symbol          string `json:"symbol"`
	Uri             string `json:"uri"`
	Whitelist       string `json:"whitelist"`
}

func newAssetMsg(reg *types.AssetRegistry) AssetMsg {
	return AssetMsg{
		Mint:            reg.Mint.Hex(),
		Creator:         reg.Creator.Hex(),
		Sequence:        reg.Sequence,
		Authority:       reg.Authority.Hex(),
		MintingDelegate: reg.MintingDelegate.Hex(),
		TotalSupply:     reg.TotalSupply,
		Decimals:        reg.Decimals,
		TransfersPaused: reg.TransfersPaused,
		MintingPaused:   reg.MintingPaused,
		Name:            reg.Name,
		Symbol:          reg.Symbol,
		Uri:             reg.URI,
		Whitelist:       reg.Whitelist.Hex(),
	}
}

type SeedMsg struct {
	Literal      string `json:"literal,omitempty"`
	AccountIndex *uint8 `json:"account_index,omitempty"`
}

type ExtraAccountMetaMsg struct {
	Seeds      []SeedMsg `json:"seeds"`
	IsSigner   bool      `json:"is_signer"`
	IsWritable bool      `json:"is_writable"`
}

func newExtraAccountMetaMsgs(list *types.ExtraAccountMetaList) []ExtraAccountMetaMsg {
	msgs := make([]ExtraAccountMetaMsg, 0, len(list.Metas))
	for _, meta := range list.Metas {
		msg := ExtraAccountMetaMsg{IsSigner: meta.IsSigner, IsWritable: meta.IsWritable}
		for _, seed := range meta.Seeds {
			if seed.Kind == types.SeedAccountKey {
				index := seed.Index
				msg.Seeds = append(msg.Seeds, SeedMsg{AccountIndex: &index})
				continue
			}
			msg.Seeds = append(msg.Seeds, SeedMsg{Literal: hexutil.ToFormalHex(seed.Data)})
		}
		msgs = append(msgs, msg)
	}
	return msgs
}

func (r *RpcController) GetFactory(c *gin.Context) {
	cors(c)
	authority, ok := queryAddress(c, "authority")
	if !ok {
		return
	}
	factory, err := r.Processor.GetFactory(authority)
	if err != nil {
		ResponseError(c, err)
		return
	}
	Response(c, http.StatusOK, nil, gin.H{
		"address":       core.FactoryAddress(r.Processor.ProgramID(), authority).Hex(),
		"authority":     factory.Authority.Hex(),
		"next_sequence": factory.NextSequence,
	})
}

func (r *RpcController) GetAsset(c *gin.Context) {
	cors(c)
	mint, ok := queryAddress(c, "mint")
	if !ok {
		return
	}
	reg, err := r.Processor.GetAsset(mint)
	if err != nil {
		ResponseError(c, err)
		return
	}
	Response(c, http.StatusOK, nil, newAssetMsg(reg))
}

func (r *RpcController) Balance(c *gin.Context) {
	cors(c)
	mint, ok := queryAddress(c, "mint")
	if !ok {
		return
	}
	owner, ok := queryAddress(c, "owner")
	if !ok {
		return
	}
	balance, err := r.Processor.Balance(mint, owner)
	if err != nil {
		ResponseError(c, err)
		return
	}
	Response(c, http.StatusOK, nil, gin.H{"raw": balance})
}

func (r *RpcController) Metadata(c *gin.Context) {
	cors(c)
	mint, ok := queryAddress(c, "mint")
	if !ok {
		return
	}
	md, err := r.Processor.Metadata(mint)
	if err != nil {
		ResponseError(c, err)
		return
	}
	Response(c, http.StatusOK, nil, gin.H{
		"name":    md.Name,
		"symbol":  md.Symbol,
		"uri":     md.URI,
		"mutable": md.Mutable,
	})
}

func (r *RpcController) ExtraAccountMetas(c *gin.Context) {
	cors(c)
	mint, ok := queryAddress(c, "mint")
	if !ok {
		return
	}
	list, err := r.Processor.GetExtraAccountMetas(mint)
	if err != nil {
		ResponseError(c, err)
		return
	}
	Response(c, http.StatusOK, nil, newExtraAccountMetaMsgs(list))
}

// Derive reports the addresses pinned by (authority, sequence). It reads no
// state, so it also works for assets that do not exist yet.
func (r *RpcController) Derive(c *gin.Context) {
	cors(c)
	authority, ok := queryAddress(c, "authority")
	if !ok {
		return
	}
	seq, err := strconv.ParseUint(c.Query("sequence"), 10, 64)
	if err != nil {
		Response(c, http.StatusBadRequest, fmt.Errorf("sequence format error: %v", err), nil)
		return
	}
	addrs := core.DeriveAssetAddresses(r.Processor.ProgramID(), authority, seq)
	Response(c, http.StatusOK, nil, gin.H{
		"factory":             core.FactoryAddress(r.Processor.ProgramID(), authority).Hex(),
		"mint":                addrs.Mint.Hex(),
		"registry":            addrs.Registry.Hex(),
		"whitelist":           addrs.Whitelist.Hex(),
		"asset_index":         addrs.Index.Hex(),
		"minting_delegate":    addrs.MintingDelegate.Hex(),
		"extra_account_metas": addrs.ExtraAccountMetas.Hex(),
	})
}
