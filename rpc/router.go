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
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

type route struct {
	method  string
	path    string
	args    string
	handler gin.HandlerFunc
}

func (r *RpcController) routes() []route {
	return []route{
		// operation API
		{http.MethodPost, "factory", "caller", r.CreateFactory},
		{http.MethodPost, "token", "caller, supply, decimals, name, symbol, uri, seed", r.CreateToken},
		{http.MethodPost, "whitelist/add", "caller, mint, addresses", r.AddToWhitelist},
		{http.MethodPost, "whitelist/remove", "caller, mint, addresses", r.RemoveFromWhitelist},
		{http.MethodPost, "mint", "caller, mint, amount, recipient", r.Mint},
		{http.MethodPost, "burn", "caller, mint, amount", r.Burn},
		{http.MethodPost, "pause/minting", "caller, mint", r.ToggleMintingPause},
		{http.MethodPost, "pause/transfers", "caller, mint", r.ToggleTransferPause},
		{http.MethodPost, "authority", "caller, mint, new_authority", r.TransferAuthority},
		{http.MethodPost, "transfer", "caller, mint, recipient, amount", r.Transfer},

		// query API
		{http.MethodGet, "whitelist", "mint", r.ListWhitelist},
		{http.MethodGet, "factory", "authority", r.GetFactory},
		{http.MethodGet, "asset", "mint", r.GetAsset},
		{http.MethodGet, "balance", "mint, owner", r.Balance},
		{http.MethodGet, "metadata", "mint", r.Metadata},
		{http.MethodGet, "extra_account_metas", "mint", r.ExtraAccountMetas},
		{http.MethodGet, "derive", "authority, sequence", r.Derive},
	}
}

func (r *RpcController) NewRouter() *gin.Engine {
	router := gin.New()
	if gin.Mode() == gin.DebugMode {
		router.Use(gin.LoggerWithFormatter(ginLogFormatter))
	}
	router.Use(gin.Recovery())

	router.GET("/", r.writeListOfEndpoints)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	for _, rt := range r.routes() {
		router.Handle(rt.method, "/"+rt.path, rt.handler)
	}
	return router
}

// writes a list of available rpc endpoints as an html page
func (r *RpcController) writeListOfEndpoints(c *gin.Context) {
	var gets, posts []route
	for _, rt := range r.routes() {
		if rt.method == http.MethodGet {
			gets = append(gets, rt)
		} else {
			posts = append(posts, rt)
		}
	}
	sort.Slice(gets, func(i, j int) bool { return gets[i].path < gets[j].path })
	sort.Slice(posts, func(i, j int) bool { return posts[i].path < posts[j].path })

	buf := new(bytes.Buffer)
	buf.WriteString("<html><body>")
	buf.WriteString("<br>Query endpoints:<br>")
	for _, rt := range gets {
		link := fmt.Sprintf("http://%s/%s?", c.Request.Host, rt.path)
		argNames := strings.Split(rt.args, ",")
		for i, argName := range argNames {
			link += strings.TrimSpace(argName) + "=_"
			if i < len(argNames)-1 {
				link += "&"
			}
		}
		buf.WriteString(fmt.Sprintf("<a href=\"%s\">%s</a></br>", link, link))
	}
	buf.WriteString("<br>Operation endpoints (POST, JSON body):<br>")
	for _, rt := range posts {
		buf.WriteString(fmt.Sprintf("http://%s/%s {%s}</br>", c.Request.Host, rt.path, rt.args))
	}
	buf.WriteString("</body></html>")
	c.Data(http.StatusOK, "text/html", buf.Bytes())
}
