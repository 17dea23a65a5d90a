// File: internal/placement/rank.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package placement

import (
	"cmp"
	"slices"
)

// RankNeighbors returns every shepherd id except self, ordered by ascending
// dists[id]. dists is self's row of the distance matrix. The sort is stable
// over ascending ids, so equal distances keep ascending id order.
func RankNeighbors(self int, dists []int) []int {
	out := make([]int, 0, max(len(dists)-1, 0))
	for j := range dists {
		if j != self {
			out = append(out, j)
		}
	}
	slices.SortStableFunc(out, func(a, b int) int {
		return cmp.Compare(dists[a], dists[b])
	})
	return out
}
