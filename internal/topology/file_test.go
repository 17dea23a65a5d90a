// File: internal/topology/file_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package topology

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-shepherd/api"
)

const twoSocket = `
root:
  id: 0
  children:
    - id: 1
      cpus: [0, 1, 2, 3]
    - id: 2
      cpus: [4, 5, 6, 7]
default_latency: {local: 10, remote: 32}
latency:
  - {from: 1, to: 2, value: 21}
`

func TestParseYAML(t *testing.T) {
	p, err := ParseYAML([]byte(twoSocket))
	require.NoError(t, err)

	groups := Walk(p, 0)
	require.Len(t, groups, 2)
	assert.Equal(t, []int{4, 5, 6, 7}, groups[1].CPUs)

	d, err := p.Latency(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 21, d)

	// overrides are directed
	d, err = p.Latency(2, 1)
	require.NoError(t, err)
	assert.Equal(t, 32, d)

	d, err = p.Latency(2, 2)
	require.NoError(t, err)
	assert.Equal(t, 10, d)
}

func TestParseYAML_Rejects(t *testing.T) {
	_, err := ParseYAML([]byte("root: ["))
	assert.Error(t, err)

	_, err = ParseYAML([]byte("root: {id: 0, children: [{id: 1, cpus: [0]}, {id: 2, cpus: [0]}]}"))
	assert.ErrorIs(t, err, api.ErrInvalidArgument)

	_, err = ParseYAML([]byte("root: {id: 0, children: [{id: 0}]}"))
	assert.ErrorIs(t, err, api.ErrInvalidArgument)

	_, err = ParseYAML([]byte("root: {id: 0}\nlatency: [{from: 0, to: 0, value: -1}]"))
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(twoSocket), 0o644))

	p, err := LoadFile(path)
	require.NoError(t, err)
	n, err := p.GroupCount()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, api.IsEnvironment(err))
}
