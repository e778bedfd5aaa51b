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
package files

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixPrefixPath(t *testing.T) {
	assert.Equal(t, "root/config", FixPrefixPath("root", "config"))
	assert.Equal(t, "/abs/config", FixPrefixPath("root", "/abs/config"))
	assert.Equal(t, "config", FixPrefixPath("", "config"))
}

func TestMkDirAndExists(t *testing.T) {
	dir, err := ioutil.TempDir("", "files")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, MkDirIfNotExists(sub))
	require.NoError(t, MkDirIfNotExists(sub))
	assert.False(t, FileExists(sub))

	f := filepath.Join(sub, "x.toml")
	require.NoError(t, ioutil.WriteFile(f, []byte("a=1"), 0644))
	assert.True(t, FileExists(f))
}
