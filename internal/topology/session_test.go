// File: internal/topology/session_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/momentics/hioload-shepherd/api"
)

func TestOpen_EnvironmentErrors(t *testing.T) {
	_, err := Open(nil)
	require.Error(t, err)
	assert.True(t, api.IsEnvironment(err))

	_, err = Open(failingProvider{})
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrTopology)
	assert.ErrorIs(t, err, errBroken)

	_, err = Open(failingProvider{groups: -1})
	require.Error(t, err)
	assert.True(t, api.IsEnvironment(err))
}

func TestSession_Groups(t *testing.T) {
	p, err := NewStatic(Flat(4, 2, 2))
	require.NoError(t, err)
	s, err := Open(p, WithLogger(zap.NewNop()))
	require.NoError(t, err)

	groups, err := s.Groups()
	require.NoError(t, err)
	assert.Len(t, groups, 3)

	require.NoError(t, s.Close())
	_, err = s.Groups()
	assert.True(t, api.IsEnvironment(err))
}

func TestSession_GroupsWithoutCPUs(t *testing.T) {
	p, err := NewStatic(Node{ID: 7})
	require.NoError(t, err)
	s, err := Open(p)
	require.NoError(t, err)

	_, err = s.Groups()
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrTopology)
}
