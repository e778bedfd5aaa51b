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
	"net/http"

	"github.com/gin-gonic/gin"
)

type WhitelistRequest struct {
	Caller    string   `json:"caller"`
	Mint      string   `json:"mint"`
	Addresses []string `json:"addresses"`
}

func (r *RpcController) AddToWhitelist(c *gin.Context) {
	r.updateWhitelist(c, true)
}

func (r *RpcController) RemoveFromWhitelist(c *gin.Context) {
	r.updateWhitelist(c, false)
}

func (r *RpcController) updateWhitelist(c *gin.Context, add bool) {
	var req WhitelistRequest
	cors(c)
	caller, mint, ok := bindAsset(c, &req, &req.Caller, &req.Mint)
	if !ok {
		return
	}
	ids, err := parseAddresses("addresses", req.Addresses)
	if err != nil {
		Response(c, http.StatusBadRequest, err, nil)
		return
	}
	var changed int
	if add {
		changed, err = r.Processor.AddToWhitelist(caller, mint, ids)
	} else {
		changed, err = r.Processor.RemoveFromWhitelist(caller, mint, ids)
	}
	if err != nil {
		ResponseError(c, err)
		return
	}
	Response(c, http.StatusOK, nil, gin.H{"changed": changed})
}

func (r *RpcController) ListWhitelist(c *gin.Context) {
	cors(c)
	mint, ok := queryAddress(c, "mint")
	if !ok {
		return
	}
	ids, err := r.Processor.ListWhitelist(mint)
	if err != nil {
		ResponseError(c, err)
		return
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	Response(c, http.StatusOK, nil, out)
}
