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
	"errors"
	"fmt"
	"net/http"

	"github.com/annchain/tokengate/common"
	"github.com/annchain/tokengate/core"
	"github.com/annchain/tokengate/ledger"
	"github.com/gin-gonic/gin"
)

type RpcController struct {
	Processor *core.Processor
}

func cors(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
}

func Response(c *gin.Context, status int, err error, data interface{}) {
	var msg string
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, gin.H{
		"err":  msg,
		"data": data,
	})
}

// ResponseError reports a failed operation. Factory error kinds carry their
// code in the data field.
func ResponseError(c *gin.Context, err error) {
	var kind *core.Error
	if errors.As(err, &kind) {
		Response(c, statusOf(kind), err, gin.H{"code": kind.Code})
		return
	}
	status := http.StatusBadRequest
	if errors.Is(err, ledger.ErrMintNotFound) || errors.Is(err, ledger.ErrMetadataNotFound) {
		status = http.StatusNotFound
	}
	Response(c, status, err, nil)
}

func statusOf(kind *core.Error) int {
	switch kind {
	case core.ErrUnauthorized:
		return http.StatusUnauthorized
	case core.ErrAlreadyExists:
		return http.StatusConflict
	case core.ErrFactoryNotFound, core.ErrAssetNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func parseAddress(field string, s string) (common.Address, error) {
	addr, err := common.StringToAddress(s)
	if err != nil {
		return addr, fmt.Errorf("%s format error: %v", field, err)
	}
	return addr, nil
}

func parseAddresses(field string, ss []string) ([]common.Address, error) {
	addrs := make([]common.Address, 0, len(ss))
	for _, s := range ss {
		addr, err := parseAddress(field, s)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

// queryAddress reads a required address from the query string and writes the
// error response itself when it is missing or malformed.
func queryAddress(c *gin.Context, name string) (common.Address, bool) {
	addr, err := parseAddress(name, c.Query(name))
	if err != nil {
		Response(c, http.StatusBadRequest, err, nil)
		return addr, false
	}
	return addr, true
}
