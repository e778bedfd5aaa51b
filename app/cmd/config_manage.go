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
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/annchain/tokengate/common/files"
	"github.com/annchain/tokengate/common/utilfuncs"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const envPrefix = "tokengate"

// TOKENGATE_RPC_PORT overrides rpc.port.
var envKeyReplacer = strings.NewReplacer(".", "_")

// readConfig merges {dir.root}/config/config.toml and injected.toml when
// present, then lets TOKENGATE_* env variables override.
func readConfig() {
	configPath := rootPath(path.Join(ConfigDir, "config.toml"))
	if files.FileExists(configPath) {
		mergeLocalConfig(configPath)
	} else {
		log.WithField("path", configPath).Info("no config file, running on defaults")
	}

	injectedPath := rootPath(path.Join(ConfigDir, "injected.toml"))
	if files.FileExists(injectedPath) {
		log.Info("merging injected config file")
		mergeLocalConfig(injectedPath)
	}

	mergeEnvConfig()
	// print running config in console.
	b, err := json.MarshalIndent(viper.AllSettings(), "", "    ")
	utilfuncs.PanicIfError(err, "dump json")
	log.Debug(string(b))
}

func mergeEnvConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()
}

func writeConfig() {
	configPath := rootPath(path.Join(ConfigDir, "config_dump.toml"))
	err := viper.WriteConfigAs(configPath)
	utilfuncs.PanicIfError(err, "dump config")
}

func mergeLocalConfig(configPath string) {
	absPath, err := filepath.Abs(configPath)
	utilfuncs.PanicIfError(err, fmt.Sprintf("Error on parsing config file path: %s", absPath))

	file, err := os.Open(absPath)
	utilfuncs.PanicIfError(err, fmt.Sprintf("Error on opening config file: %s", absPath))
	defer file.Close()

	viper.SetConfigType("toml")
	err = viper.MergeConfig(file)
	utilfuncs.PanicIfError(err, fmt.Sprintf("Error on reading config file: %s", absPath))
}
