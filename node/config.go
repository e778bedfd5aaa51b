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
	"github.com/annchain/tokengate/core"
	"github.com/annchain/tokengate/ledger/memledger"
	"github.com/spf13/viper"
)

const (
	DBTypeMemory  = "memory"
	DBTypeLevelDB = "leveldb"
)

type Config struct {
	DBType          string
	DBPath          string
	DBCache         int // MB
	DBHandles       int
	RecordCacheSize int

	RpcEnabled       bool
	RpcPort          string
	WebsocketEnabled bool
	WebsocketPort    string

	// EventLogDir receives a rotated events log when set.
	EventLogDir string

	Processor core.Config
	Engine    memledger.EngineConfig
}

func DefaultConfig() Config {
	return Config{
		DBType:          DBTypeMemory,
		DBCache:         16,
		DBHandles:       16,
		RecordCacheSize: 4096,
		RpcPort:         "8000",
		WebsocketPort:   "8002",
		Processor:       core.DefaultConfig(),
		Engine:          memledger.DefaultEngineConfig(),
	}
}

func init() {
	d := DefaultConfig()
	viper.SetDefault("db.type", d.DBType)
	viper.SetDefault("db.cache", d.DBCache)
	viper.SetDefault("db.handles", d.DBHandles)
	viper.SetDefault("db.record_cache_size", d.RecordCacheSize)
	viper.SetDefault("rpc.enabled", true)
	viper.SetDefault("rpc.port", d.RpcPort)
	viper.SetDefault("websocket.enabled", false)
	viper.SetDefault("websocket.port", d.WebsocketPort)
	viper.SetDefault("policy.allow_zero_supply", d.Processor.AllowZeroInitialSupply)
	viper.SetDefault("policy.hook_enforces_pause", d.Processor.HookEnforcesTransferPause)
	viper.SetDefault("policy.commit_every_operation", d.Processor.CommitEveryOperation)
	viper.SetDefault("ledger.resolve_cache_size", d.Engine.RecipeCacheSize)
}

// LoadConfig reads the node config from viper. dataDir and logDir are the
// resolved folders under dir.root.
func LoadConfig(dataDir string, logDir string) Config {
	c := DefaultConfig()
	c.DBType = viper.GetString("db.type")
	c.DBPath = dataDir
	c.DBCache = viper.GetInt("db.cache")
	c.DBHandles = viper.GetInt("db.handles")
	c.RecordCacheSize = viper.GetInt("db.record_cache_size")

	c.RpcEnabled = viper.GetBool("rpc.enabled")
	c.RpcPort = viper.GetString("rpc.port")
	c.WebsocketEnabled = viper.GetBool("websocket.enabled")
	c.WebsocketPort = viper.GetString("websocket.port")
	c.EventLogDir = logDir

	c.Processor.AllowZeroInitialSupply = viper.GetBool("policy.allow_zero_supply")
	c.Processor.HookEnforcesTransferPause = viper.GetBool("policy.hook_enforces_pause")
	c.Processor.CommitEveryOperation = viper.GetBool("policy.commit_every_operation")
	c.Engine.RecipeCacheSize = viper.GetInt("ledger.resolve_cache_size")
	return c
}
