// File: internal/placement/place_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-shepherd/api"
	"github.com/momentics/hioload-shepherd/internal/topology"
)

func flatGroups(t *testing.T, counts ...int) []topology.CPUGroup {
	t.Helper()
	p, err := topology.NewStatic(topology.Flat(counts...))
	require.NoError(t, err)
	return topology.Walk(p, 0)
}

func TestAssign_RoundRobinBeforePacking(t *testing.T) {
	homes := Assign(flatGroups(t, 4, 2, 2), 6)

	perGroup := map[api.LocalityID]int{}
	for _, h := range homes {
		loc, ok := h.Locality()
		require.True(t, ok)
		perGroup[loc]++
	}
	assert.Equal(t, map[api.LocalityID]int{1: 2, 2: 2, 3: 2}, perGroup)

	first := map[api.LocalityID]bool{}
	for _, h := range homes[:3] {
		loc, _ := h.Locality()
		first[loc] = true
	}
	assert.Len(t, first, 3, "first three shepherds must land in distinct groups")

	// CPUs are taken from the tail of each group
	cpu, _ := homes[0].CPU()
	assert.Equal(t, 3, cpu)
	cpu, _ = homes[3].CPU()
	assert.Equal(t, 2, cpu)
}

func TestAssign_ExhaustionLeavesUnplaced(t *testing.T) {
	homes := Assign(flatGroups(t, 4, 2, 2), 9)

	seen := map[int]bool{}
	unplaced := 0
	for _, h := range homes {
		cpu, ok := h.CPU()
		if !ok {
			unplaced++
			continue
		}
		assert.False(t, seen[cpu], "cpu %d assigned twice", cpu)
		seen[cpu] = true
	}
	assert.Len(t, seen, 8)
	assert.Equal(t, 1, unplaced)
	assert.False(t, homes[8].IsPlaced())
	assert.Equal(t, "unplaced", homes[8].String())
}

func TestAssign_NoGroups(t *testing.T) {
	homes := Assign(nil, 3)
	require.Len(t, homes, 3)
	for _, h := range homes {
		assert.False(t, h.IsPlaced())
	}
}

func TestAssign_ConsumesInPlace(t *testing.T) {
	groups := flatGroups(t, 2)
	Assign(groups, 1)
	assert.Equal(t, []int{0}, groups[0].CPUs)
}
