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
	"bytes"
	"strings"
	"testing"

	"github.com/annchain/tokengate/common"
	"github.com/annchain/tokengate/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOutput(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestDeriveCommand(t *testing.T) {
	var authority common.Address
	authority.Bytes[31] = 1
	out, err := execute("derive", authority.Hex(), "3")
	require.NoError(t, err)

	addrs := core.DeriveAssetAddresses(core.DefaultProgramID, authority, 3)
	assert.Contains(t, out, "mint:                "+addrs.Mint.Hex())
	assert.Contains(t, out, addrs.Whitelist.Hex())
	assert.Contains(t, out, core.FactoryAddress(core.DefaultProgramID, authority).Hex())
}

func TestDeriveRejectsBadSequence(t *testing.T) {
	var authority common.Address
	_, err := execute("derive", authority.Hex(), "-1")
	assert.Error(t, err)
}

func TestAccountGenAndShow(t *testing.T) {
	out, err := execute("account", "gen")
	require.NoError(t, err)
	var address, priv string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		switch fields[0] {
		case "address:":
			address = fields[1]
		case "privkey:":
			priv = fields[1]
		}
	}
	require.NotEmpty(t, address)
	require.NotEmpty(t, priv)

	out, err = execute("account", "show", priv)
	require.NoError(t, err)
	assert.Contains(t, out, address)
}
