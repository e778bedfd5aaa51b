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
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const ShutdownTimeoutSeconds = 5

type RpcServer struct {
	router *gin.Engine
	server *http.Server
	port   string
	C      *RpcController
}

func NewRpcServer(port string, controller *RpcController) *RpcServer {
	router := controller.NewRouter()
	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	return &RpcServer{
		port:   port,
		router: router,
		server: server,
		C:      controller,
	}
}

func (srv *RpcServer) Start() {
	log.Infof("Listening Http on %s", srv.port)
	go func() {
		// service connections
		if err := srv.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatalf("Error in Http server")
		}
	}()
}

func (srv *RpcServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeoutSeconds*time.Second)
	defer cancel()
	if err := srv.server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Error while shutting down the Http server")
	}
	log.Infof("Http server Stopped")
}

func (srv *RpcServer) Name() string {
	return fmt.Sprintf("RpcServer at port %s", srv.port)
}
