// File: internal/placement/distance.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package placement

import (
	"fmt"

	"github.com/momentics/hioload-shepherd/api"
)

// Distances used when either shepherd of a pair is unplaced. Self must stay
// below cross so a shepherd always ranks itself nearest.
const (
	FallbackSelfDistance  = 12
	FallbackCrossDistance = 18
)

// LatencyFunc reports the locality-to-locality access cost.
type LatencyFunc func(from, to api.LocalityID) (int, error)

// Distances builds the full n×n matrix for homes. Placed pairs take the
// provider latency verbatim, which may be asymmetric. Any latency error, or a
// negative latency, fails the whole matrix.
func Distances(homes []Home, latency LatencyFunc) ([][]int, error) {
	n := len(homes)
	m := make([][]int, n)
	for i := range homes {
		row := make([]int, n)
		li, iok := homes[i].Locality()
		for j := range homes {
			lj, jok := homes[j].Locality()
			if !iok || !jok {
				row[j] = fallbackDistance(i, j)
				continue
			}
			d, err := latency(li, lj)
			if err != nil {
				return nil, api.EnvironmentError("placement: latency query", err).
					WithContext("from", int(li)).
					WithContext("to", int(lj))
			}
			if d < 0 {
				return nil, api.EnvironmentError(
					fmt.Sprintf("placement: negative latency %d from %d to %d", d, li, lj), nil)
			}
			row[j] = d
		}
		m[i] = row
	}
	return m, nil
}

// UniformDistances returns the matrix used when nothing is placed.
func UniformDistances(n int) [][]int {
	m := make([][]int, n)
	for i := range m {
		m[i] = make([]int, n)
		for j := range m[i] {
			m[i][j] = fallbackDistance(i, j)
		}
	}
	return m
}

func fallbackDistance(i, j int) int {
	if i == j {
		return FallbackSelfDistance
	}
	return FallbackCrossDistance
}
