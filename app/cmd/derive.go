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
	"fmt"
	"strconv"

	"github.com/annchain/tokengate/common"
	"github.com/annchain/tokengate/core"
	"github.com/spf13/cobra"
)

var deriveCmd = &cobra.Command{
	Use:   "derive <authority> <sequence>",
	Short: "Print the addresses of the asset an authority creates at a sequence",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		authority, err := common.StringToAddress(args[0])
		if err != nil {
			return err
		}
		seq, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("sequence format error: %v", err)
		}
		programID := core.DefaultProgramID
		if s, _ := cmd.Flags().GetString("program"); s != "" {
			if programID, err = common.StringToAddress(s); err != nil {
				return err
			}
		}
		addrs := core.DeriveAssetAddresses(programID, authority, seq)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "factory:             %s\n", core.FactoryAddress(programID, authority).Hex())
		fmt.Fprintf(out, "mint:                %s\n", addrs.Mint.Hex())
		fmt.Fprintf(out, "registry:            %s\n", addrs.Registry.Hex())
		fmt.Fprintf(out, "whitelist:           %s\n", addrs.Whitelist.Hex())
		fmt.Fprintf(out, "asset index:         %s\n", addrs.Index.Hex())
		fmt.Fprintf(out, "minting delegate:    %s\n", addrs.MintingDelegate.Hex())
		fmt.Fprintf(out, "extra account metas: %s\n", addrs.ExtraAccountMetas.Hex())
		return nil
	},
}

func init() {
	deriveCmd.Flags().String("program", "", "Program id, defaults to the built in one")
	rootCmd.AddCommand(deriveCmd)
}
