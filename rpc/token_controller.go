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

	"github.com/annchain/tokengate/common"
	"github.com/annchain/tokengate/core"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type CallerRequest struct {
	Caller string `json:"caller"`
}

type NewTokenRequest struct {
	Caller   string `json:"caller"`
	Supply   uint64 `json:"supply"`
	Decimals uint8  `json:"decimals"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Uri      string `json:"uri"`
	Seed     string `json:"seed"`
}

type AssetRequest struct {
	Caller string `json:"caller"`
	Mint   string `json:"mint"`
}

type AmountRequest struct {
	Caller    string `json:"caller"`
	Mint      string `json:"mint"`
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
}

type AuthorityRequest struct {
	Caller       string `json:"caller"`
	Mint         string `json:"mint"`
	NewAuthority string `json:"new_authority"`
}

// bindAsset parses the caller and mint of an asset scoped request.
func bindAsset(c *gin.Context, req interface{}, caller, mint *string) (common.Address, common.Address, bool) {
	if err := c.ShouldBindJSON(req); err != nil {
		Response(c, http.StatusBadRequest, fmt.Errorf("request format error: %v", err), nil)
		return common.Address{}, common.Address{}, false
	}
	from, err := parseAddress("caller", *caller)
	if err != nil {
		Response(c, http.StatusBadRequest, err, nil)
		return common.Address{}, common.Address{}, false
	}
	asset, err := parseAddress("mint", *mint)
	if err != nil {
		Response(c, http.StatusBadRequest, err, nil)
		return common.Address{}, common.Address{}, false
	}
	return from, asset, true
}

func (r *RpcController) CreateFactory(c *gin.Context) {
	var req CallerRequest
	cors(c)
	if err := c.ShouldBindJSON(&req); err != nil {
		Response(c, http.StatusBadRequest, fmt.Errorf("request format error: %v", err), nil)
		return
	}
	caller, err := parseAddress("caller", req.Caller)
	if err != nil {
		Response(c, http.StatusBadRequest, err, nil)
		return
	}
	addr, err := r.Processor.CreateFactory(caller)
	if err != nil {
		ResponseError(c, err)
		return
	}
	Response(c, http.StatusOK, nil, addr.Hex())
}

func (r *RpcController) CreateToken(c *gin.Context) {
	var req NewTokenRequest
	cors(c)
	if err := c.ShouldBindJSON(&req); err != nil {
		Response(c, http.StatusBadRequest, fmt.Errorf("request format error: %v", err), nil)
		return
	}
	caller, err := parseAddress("caller", req.Caller)
	if err != nil {
		Response(c, http.StatusBadRequest, err, nil)
		return
	}
	seed, err := parseAddress("seed", req.Seed)
	if err != nil {
		Response(c, http.StatusBadRequest, err, nil)
		return
	}
	reg, err := r.Processor.CreateToken(caller, core.TokenParams{
		Supply:   req.Supply,
		Decimals: req.Decimals,
		Name:     req.Name,
		Symbol:   req.Symbol,
		URI:      req.Uri,
		Seed:     seed,
	})
	if err != nil {
		ResponseError(c, err)
		return
	}
	log.WithField("mint", reg.Mint.Hex()).Debug("token created over rpc")
	Response(c, http.StatusOK, nil, newAssetMsg(reg))
}

func (r *RpcController) Mint(c *gin.Context) {
	var req AmountRequest
	cors(c)
	caller, mint, ok := bindAsset(c, &req, &req.Caller, &req.Mint)
	if !ok {
		return
	}
	var (
		supply uint64
		err    error
	)
	if req.Recipient == "" {
		supply, err = r.Processor.Mint(caller, mint, req.Amount)
	} else {
		recipient, perr := parseAddress("recipient", req.Recipient)
		if perr != nil {
			Response(c, http.StatusBadRequest, perr, nil)
			return
		}
		supply, err = r.Processor.MintTo(caller, mint, recipient, req.Amount)
	}
	if err != nil {
		ResponseError(c, err)
		return
	}
	Response(c, http.StatusOK, nil, gin.H{"total_supply": supply})
}

func (r *RpcController) Burn(c *gin.Context) {
	var req AmountRequest
	cors(c)
	caller, mint, ok := bindAsset(c, &req, &req.Caller, &req.Mint)
	if !ok {
		return
	}
	supply, err := r.Processor.Burn(caller, mint, req.Amount)
	if err != nil {
		ResponseError(c, err)
		return
	}
	Response(c, http.StatusOK, nil, gin.H{"total_supply": supply})
}

func (r *RpcController) ToggleMintingPause(c *gin.Context) {
	r.togglePause(c, false)
}

func (r *RpcController) ToggleTransferPause(c *gin.Context) {
	r.togglePause(c, true)
}

func (r *RpcController) togglePause(c *gin.Context, transfers bool) {
	var req AssetRequest
	cors(c)
	caller, mint, ok := bindAsset(c, &req, &req.Caller, &req.Mint)
	if !ok {
		return
	}
	var (
		paused bool
		err    error
	)
	if transfers {
		paused, err = r.Processor.ToggleTransferPause(caller, mint)
	} else {
		paused, err = r.Processor.ToggleMintingPause(caller, mint)
	}
	if err != nil {
		ResponseError(c, err)
		return
	}
	Response(c, http.StatusOK, nil, gin.H{"paused": paused})
}

func (r *RpcController) TransferAuthority(c *gin.Context) {
	var req AuthorityRequest
	cors(c)
	caller, mint, ok := bindAsset(c, &req, &req.Caller, &req.Mint)
	if !ok {
		return
	}
	next, err := parseAddress("new_authority", req.NewAuthority)
	if err != nil {
		Response(c, http.StatusBadRequest, err, nil)
		return
	}
	if err := r.Processor.TransferAuthority(caller, mint, next); err != nil {
		ResponseError(c, err)
		return
	}
	Response(c, http.StatusOK, nil, next.Hex())
}

func (r *RpcController) Transfer(c *gin.Context) {
	var req AmountRequest
	cors(c)
	caller, mint, ok := bindAsset(c, &req, &req.Caller, &req.Mint)
	if !ok {
		return
	}
	recipient, err := parseAddress("recipient", req.Recipient)
	if err != nil {
		Response(c, http.StatusBadRequest, err, nil)
		return
	}
	if err := r.Processor.Transfer(caller, mint, recipient, req.Amount); err != nil {
		ResponseError(c, err)
		return
	}
	Response(c, http.StatusOK, nil, "ok")
}
