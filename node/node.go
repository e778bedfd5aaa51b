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
package node

import (
	"fmt"

	"github.com/annchain/tokengate/core"
	"github.com/annchain/tokengate/core/events"
	"github.com/annchain/tokengate/core/state"
	"github.com/annchain/tokengate/eventbus"
	"github.com/annchain/tokengate/ledger/memledger"
	"github.com/annchain/tokengate/mylog"
	"github.com/annchain/tokengate/ogdb"
	"github.com/annchain/tokengate/rpc"
	"github.com/annchain/tokengate/wserver"
	"github.com/sirupsen/logrus"
)

type Component interface {
	Start()
	Stop()
	Name() string
}

type Node struct {
	Components []Component
	Processor  *core.Processor
	Engine     *memledger.Engine
	EventBus   *eventbus.DefaultEventBus

	db ogdb.Database
}

func openDatabase(config Config) (ogdb.Database, error) {
	switch config.DBType {
	case DBTypeMemory, "":
		return ogdb.NewMemDatabase(), nil
	case DBTypeLevelDB:
		return ogdb.NewLevelDB(ogdb.LevelDBConfig{
			Path:    config.DBPath,
			Cache:   config.DBCache,
			Handles: config.DBHandles,
		})
	default:
		return nil, fmt.Errorf("unknown db type: %s", config.DBType)
	}
}

func NewNode(config Config) (*Node, error) {
	db, err := openDatabase(config)
	if err != nil {
		return nil, err
	}
	n := &Node{db: db}

	sdb := state.NewStateDB(state.NewDatabaseWithCache(db, config.RecordCacheSize))
	n.Engine = memledger.NewEngine(config.Engine)
	registrar := memledger.NewRegistrar(memledger.DefaultRegistrarProgramID)
	n.Processor = core.NewProcessor(config.Processor, sdb, n.Engine, registrar)

	eventLogger := events.EventLogger{}
	if config.EventLogDir != "" {
		eventLogger.Logger = mylog.InitLogger(logrus.StandardLogger(), config.EventLogDir, "events")
	}
	handlers := []eventbus.EventHandler{eventLogger}

	// Order matters.
	// Provide services only after the processor is ready.
	if config.RpcEnabled {
		n.Components = append(n.Components, rpc.NewRpcServer(config.RpcPort, &rpc.RpcController{Processor: n.Processor}))
	}

	bus := &eventbus.DefaultEventBus{}
	bus.InitDefault()
	if config.WebsocketEnabled {
		ws := wserver.NewServer(":"+config.WebsocketPort, bus.NameOf)
		handlers = append(handlers, ws)
		n.Components = append(n.Components, ws)
	}
	events.Register(bus, handlers...)
	bus.Build()
	n.EventBus = bus
	n.Processor.EventBus = bus

	logrus.WithFields(logrus.Fields{
		"db":         config.DBType,
		"program":    n.Processor.ProgramID().Hex(),
		"components": len(n.Components),
	}).Info("node assembled")
	return n, nil
}

func (n *Node) Start() {
	for _, component := range n.Components {
		logrus.Infof("Starting %s", component.Name())
		component.Start()
		logrus.Infof("Started: %s", component.Name())
	}
	logrus.Info("Node Started")
}

func (n *Node) Stop() {
	for i := len(n.Components) - 1; i >= 0; i-- {
		comp := n.Components[i]
		logrus.Infof("Stopping %s", comp.Name())
		comp.Stop()
		logrus.Infof("Stopped: %s", comp.Name())
	}
	if err := n.Processor.Commit(); err != nil {
		logrus.WithError(err).Error("failed to commit pending state")
	}
	stats := n.Engine.Stats()
	logrus.WithFields(logrus.Fields{
		"attempted": stats.Attempted,
		"approved":  stats.Approved,
		"rejected":  stats.Rejected,
	}).Info("transfer stats")
	n.db.Close()
	logrus.Info("Node Stopped")
}
