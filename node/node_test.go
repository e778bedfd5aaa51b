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
	"io/ioutil"
	"os"
	"testing"

	"github.com/annchain/tokengate/common"
	"github.com/annchain/tokengate/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity(b byte) common.Address {
	var a common.Address
	a.Bytes[31] = b
	return a
}

func TestMemoryNode(t *testing.T) {
	n, err := NewNode(DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, n.Components)
	n.Start()
	defer n.Stop()

	authority := identity(1)
	_, err = n.Processor.CreateFactory(authority)
	require.NoError(t, err)
	reg, err := n.Processor.CreateToken(authority, core.TokenParams{
		Supply: 10, Decimals: 2, Name: "Gold", Symbol: "GLD", URI: "https://x", Seed: identity(2),
	})
	require.NoError(t, err)
	balance, err := n.Processor.Balance(reg.Mint, authority)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), balance)
}

func TestComponentsFollowConfig(t *testing.T) {
	config := DefaultConfig()
	config.RpcEnabled = true
	config.WebsocketEnabled = true
	n, err := NewNode(config)
	require.NoError(t, err)
	require.Len(t, n.Components, 2)
	assert.Contains(t, n.Components[0].Name(), "RpcServer")
	assert.Contains(t, n.Components[1].Name(), "websocket")
}

func TestUnknownDatabase(t *testing.T) {
	config := DefaultConfig()
	config.DBType = "mongo"
	_, err := NewNode(config)
	assert.Error(t, err)
}

func TestLevelDBKeepsRecordsAcrossRestart(t *testing.T) {
	dir, err := ioutil.TempDir("", "tokengate")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	config := DefaultConfig()
	config.DBType = DBTypeLevelDB
	config.DBPath = dir
	config.Processor.CommitEveryOperation = false

	n, err := NewNode(config)
	require.NoError(t, err)
	n.Start()
	authority := identity(1)
	_, err = n.Processor.CreateFactory(authority)
	require.NoError(t, err)
	n.Stop()

	n, err = NewNode(config)
	require.NoError(t, err)
	defer n.Stop()
	factory, err := n.Processor.GetFactory(authority)
	require.NoError(t, err)
	assert.Equal(t, authority, factory.Authority)
	assert.Equal(t, uint64(0), factory.NextSequence)
}
