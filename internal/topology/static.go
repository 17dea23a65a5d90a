// File: internal/topology/static.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// In-memory locality tree with optional fault injection.

package topology

import (
	"fmt"
	"sync"

	"github.com/momentics/hioload-shepherd/api"
)

// Default latencies follow the ACPI SLIT convention.
const (
	DefaultLocalLatency  = 10
	DefaultRemoteLatency = 20
)

// Node describes one group of a static tree.
type Node struct {
	ID       api.LocalityID `yaml:"id"`
	CPUs     []int          `yaml:"cpus,omitempty"`
	Children []Node         `yaml:"children,omitempty"`
}

type latencyKey struct{ from, to api.LocalityID }

type staticGroup struct {
	cpus     []int
	children []api.LocalityID
}

// Static is a TopologyProvider over a fixed tree.
type Static struct {
	mu     sync.Mutex
	root   api.LocalityID
	groups map[api.LocalityID]*staticGroup
	closed bool

	latency       map[latencyKey]int
	localLatency  int
	remoteLatency int

	cpuErr     map[api.LocalityID]error
	childErr   map[api.LocalityID]error
	latencyErr map[latencyKey]error
}

var _ api.TopologyProvider = (*Static)(nil)

// StaticOption configures a Static provider.
type StaticOption func(*Static)

// WithLatency sets the latency from one group to another. It is not mirrored.
func WithLatency(from, to api.LocalityID, v int) StaticOption {
	return func(s *Static) { s.latency[latencyKey{from, to}] = v }
}

// WithDefaultLatency sets latencies used for pairs without an explicit value.
func WithDefaultLatency(local, remote int) StaticOption {
	return func(s *Static) {
		s.localLatency = local
		s.remoteLatency = remote
	}
}

// FailDirectCPUs makes DirectCPUs(g) return err.
func FailDirectCPUs(g api.LocalityID, err error) StaticOption {
	return func(s *Static) { s.cpuErr[g] = err }
}

// FailChildren makes Children(g) return err.
func FailChildren(g api.LocalityID, err error) StaticOption {
	return func(s *Static) { s.childErr[g] = err }
}

// FailLatency makes Latency(from, to) return err.
func FailLatency(from, to api.LocalityID, err error) StaticOption {
	return func(s *Static) { s.latencyErr[latencyKey{from, to}] = err }
}

// NewStatic builds a provider for the tree rooted at root. Group ids must be
// unique and CPUs may appear in only one group.
func NewStatic(root Node, opts ...StaticOption) (*Static, error) {
	s := &Static{
		root:          root.ID,
		groups:        make(map[api.LocalityID]*staticGroup),
		latency:       make(map[latencyKey]int),
		localLatency:  DefaultLocalLatency,
		remoteLatency: DefaultRemoteLatency,
		cpuErr:        make(map[api.LocalityID]error),
		childErr:      make(map[api.LocalityID]error),
		latencyErr:    make(map[latencyKey]error),
	}
	seen := make(map[int]api.LocalityID)
	if err := s.add(root, seen); err != nil {
		return nil, err
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

func (s *Static) add(n Node, seen map[int]api.LocalityID) error {
	if _, dup := s.groups[n.ID]; dup {
		return fmt.Errorf("topology: duplicate group id %d: %w", n.ID, api.ErrInvalidArgument)
	}
	g := &staticGroup{cpus: append([]int(nil), n.CPUs...)}
	for _, c := range n.CPUs {
		if c < 0 {
			return fmt.Errorf("topology: group %d: negative cpu %d: %w", n.ID, c, api.ErrInvalidArgument)
		}
		if owner, dup := seen[c]; dup {
			return fmt.Errorf("topology: cpu %d in groups %d and %d: %w", c, owner, n.ID, api.ErrInvalidArgument)
		}
		seen[c] = n.ID
	}
	s.groups[n.ID] = g
	for _, child := range n.Children {
		g.children = append(g.children, child.ID)
		if err := s.add(child, seen); err != nil {
			return err
		}
	}
	return nil
}

func (s *Static) lookup(g api.LocalityID) (*staticGroup, error) {
	if s.closed {
		return nil, fmt.Errorf("topology: session closed: %w", api.ErrTopology)
	}
	grp, ok := s.groups[g]
	if !ok {
		return nil, fmt.Errorf("topology: group %d: %w", g, api.ErrNotFound)
	}
	return grp, nil
}

func (s *Static) Root() (api.LocalityID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, fmt.Errorf("topology: session closed: %w", api.ErrTopology)
	}
	return s.root, nil
}

func (s *Static) DirectCPUs(g api.LocalityID) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cpuErr[g]; err != nil {
		return nil, err
	}
	grp, err := s.lookup(g)
	if err != nil {
		return nil, err
	}
	return append([]int(nil), grp.cpus...), nil
}

func (s *Static) Children(g api.LocalityID) ([]api.LocalityID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.childErr[g]; err != nil {
		return nil, err
	}
	grp, err := s.lookup(g)
	if err != nil {
		return nil, err
	}
	return append([]api.LocalityID(nil), grp.children...), nil
}

func (s *Static) Latency(from, to api.LocalityID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := latencyKey{from, to}
	if err := s.latencyErr[k]; err != nil {
		return 0, err
	}
	if _, err := s.lookup(from); err != nil {
		return 0, err
	}
	if _, err := s.lookup(to); err != nil {
		return 0, err
	}
	if v, ok := s.latency[k]; ok {
		return v, nil
	}
	if from == to {
		return s.localLatency, nil
	}
	return s.remoteLatency, nil
}

func (s *Static) GroupCount() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, fmt.Errorf("topology: session closed: %w", api.ErrTopology)
	}
	return len(s.groups), nil
}

// Close marks the provider closed; later queries fail.
func (s *Static) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// Flat returns a root group with one child per entry of cpuCounts. Child i
// has locality id i+1 and CPUs numbered consecutively from 0.
func Flat(cpuCounts ...int) Node {
	root := Node{ID: 0}
	next := 0
	for i, n := range cpuCounts {
		child := Node{ID: api.LocalityID(i + 1)}
		for j := 0; j < n; j++ {
			child.CPUs = append(child.CPUs, next)
			next++
		}
		root.Children = append(root.Children, child)
	}
	return root
}
