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

	"github.com/annchain/tokengate/account"
	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Account operations",
}

var accountGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate an ed25519 identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		acc, err := account.RandomAccount()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "address: %s\n", acc.Address.Hex())
		fmt.Fprintf(out, "pubkey:  %s\n", acc.PublicKeyHex())
		fmt.Fprintf(out, "privkey: %s\n", acc.PrivateKeyHex())
		return nil
	},
}

var accountShowCmd = &cobra.Command{
	Use:   "show <privkey>",
	Short: "Print the address of a hex private key or seed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		acc, err := account.NewAccount(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "address: %s\n", acc.Address.Hex())
		return nil
	},
}

func init() {
	accountCmd.AddCommand(accountGenCmd, accountShowCmd)
	rootCmd.AddCommand(accountCmd)
}
