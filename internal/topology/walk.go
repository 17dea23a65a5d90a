// File: internal/topology/walk.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package topology

import "github.com/momentics/hioload-shepherd/api"

// CPUGroup is one locality group that has CPUs attached directly to it.
// Placement consumes CPUs from the tail of the list.
type CPUGroup struct {
	Locality api.LocalityID
	CPUs     []int
}

// Walk flattens the subtree rooted at g into CPU groups in pre-order: a
// group's own CPUs precede those of its descendants. A group whose CPU query
// fails contributes nothing and is not descended into. A group whose child
// query fails keeps its own entry but its children are skipped.
func Walk(p api.TopologyProvider, g api.LocalityID) []CPUGroup {
	return walk(p, g, nil)
}

func walk(p api.TopologyProvider, g api.LocalityID, out []CPUGroup) []CPUGroup {
	cpus, err := p.DirectCPUs(g)
	if err != nil {
		return out
	}
	if len(cpus) > 0 {
		own := make([]int, len(cpus))
		copy(own, cpus)
		out = append(out, CPUGroup{Locality: g, CPUs: own})
	}
	children, err := p.Children(g)
	if err != nil {
		return out
	}
	for _, c := range children {
		out = walk(p, c, out)
	}
	return out
}

// MaxDirectCPUs returns the largest number of CPUs attached directly to any
// single group at or below g. Failing groups are treated as in Walk.
func MaxDirectCPUs(p api.TopologyProvider, g api.LocalityID) int {
	return maxDirect(p, g, 0)
}

func maxDirect(p api.TopologyProvider, g api.LocalityID, best int) int {
	cpus, err := p.DirectCPUs(g)
	if err != nil {
		return best
	}
	best = max(best, len(cpus))
	children, err := p.Children(g)
	if err != nil {
		return best
	}
	for _, c := range children {
		best = maxDirect(p, c, best)
	}
	return best
}

// TotalCPUs returns the number of CPUs across all groups.
func TotalCPUs(groups []CPUGroup) int {
	n := 0
	for _, g := range groups {
		n += len(g.CPUs)
	}
	return n
}

// CloneGroups returns a deep copy of groups so that placement can consume
// CPUs without disturbing the caller's list.
func CloneGroups(groups []CPUGroup) []CPUGroup {
	out := make([]CPUGroup, len(groups))
	for i, g := range groups {
		out[i] = CPUGroup{Locality: g.Locality, CPUs: append([]int(nil), g.CPUs...)}
	}
	return out
}
