// File: internal/placement/place.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package placement

import "github.com/momentics/hioload-shepherd/internal/topology"

// Assign places n shepherds onto groups. Shepherd i starts at group i mod G
// and scans forward circularly for a group with CPUs left, taking the last
// one. Shepherds thus spread across groups before any group receives a
// second one. When every group is drained the shepherd stays unplaced.
//
// Assign consumes CPUs from groups in place.
func Assign(groups []topology.CPUGroup, n int) []Home {
	homes := make([]Home, n)
	if len(groups) == 0 {
		return homes
	}
	for i := range homes {
		first := i % len(groups)
		g := first
		for {
			grp := &groups[g]
			if k := len(grp.CPUs); k > 0 {
				homes[i] = PlacedAt(grp.CPUs[k-1], grp.Locality)
				grp.CPUs = grp.CPUs[:k-1]
				break
			}
			g = (g + 1) % len(groups)
			if g == first {
				break
			}
		}
	}
	return homes
}
