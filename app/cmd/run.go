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
	"os"
	"os/signal"
	"syscall"

	"github.com/annchain/tokengate/common/utilfuncs"
	"github.com/annchain/tokengate/node"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start a node",
	Long:  `Start a node serving the token factory over http and websocket`,
	Run: func(cmd *cobra.Command, args []string) {
		ensureFolder()
		// init logs and other facilities before the node starts
		readConfig()
		initLogger()
		writeConfig()

		log.WithField("with id ", os.Getpid()).Info("Node Starting")
		config := node.LoadConfig(rootPath(DataDir), eventLogDir())
		n, err := node.NewNode(config)
		utilfuncs.PanicIfError(err, "init node")
		n.Start()

		// prevent sudden stop. Do your clean up here
		var gracefulStop = make(chan os.Signal, 1)
		signal.Notify(gracefulStop, syscall.SIGTERM, syscall.SIGINT)

		sig := <-gracefulStop
		log.Warnf("caught sig: %+v", sig)
		log.Warn("Exiting... Please do no kill me")
		n.Stop()
		os.Exit(0)
	},
}

func eventLogDir() string {
	if !viper.GetBool("log.file") {
		return ""
	}
	return rootPath(LogDir)
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("db-type", "memory", "Record store, possible values:[memory, leveldb]")
	runCmd.Flags().Bool("rpc-enabled", true, "Serve the http api")
	runCmd.Flags().String("rpc-port", "8000", "Http api port")
	runCmd.Flags().Bool("websocket-enabled", false, "Push events over websocket")
	runCmd.Flags().String("websocket-port", "8002", "Websocket port")

	_ = viper.BindPFlag("db.type", runCmd.Flags().Lookup("db-type"))
	_ = viper.BindPFlag("rpc.enabled", runCmd.Flags().Lookup("rpc-enabled"))
	_ = viper.BindPFlag("rpc.port", runCmd.Flags().Lookup("rpc-port"))
	_ = viper.BindPFlag("websocket.enabled", runCmd.Flags().Lookup("websocket-enabled"))
	_ = viper.BindPFlag("websocket.port", runCmd.Flags().Lookup("websocket-port"))
}
