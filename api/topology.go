// Package api
// Author: momentics <momentics@gmail.com>
//
// Locality topology definitions consumed by shepherd placement.

package api

// LocalityID identifies a locality group (for example a NUMA node) inside a
// TopologyProvider.
type LocalityID int

// TopologyProvider exposes a host's hierarchical locality tree.
//
// Groups form a tree rooted at Root. Each group has zero or more directly
// attached CPUs and zero or more child groups. Implementations need not be
// safe for concurrent use; placement queries them from a single goroutine.
type TopologyProvider interface {
	// Root returns the top of the locality tree.
	Root() (LocalityID, error)
	// DirectCPUs returns the CPUs attached directly to g, excluding those of
	// its descendants.
	DirectCPUs(g LocalityID) ([]int, error)
	// Children returns the direct child groups of g.
	Children(g LocalityID) ([]LocalityID, error)
	// Latency returns the relative memory access cost from CPUs in `from`
	// to memory in `to`. It need not be symmetric.
	Latency(from, to LocalityID) (int, error)
	// GroupCount returns the total number of groups in the tree.
	GroupCount() (int, error)
	// Close releases the provider session.
	Close() error
}
