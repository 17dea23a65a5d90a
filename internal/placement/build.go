// File: internal/placement/build.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package placement

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/momentics/hioload-shepherd/api"
	"github.com/momentics/hioload-shepherd/internal/topology"
)

// Placement is the immutable scheduling metadata of every shepherd.
type Placement struct {
	shepherds []*Shepherd
	uniform   bool
}

// Build places n shepherds using s, then fills each shepherd's distance
// vector and neighbor ranking. Topology failures return an environment error
// and no partial placement.
func Build(s *topology.Session, n int) (*Placement, error) {
	if n <= 0 {
		return nil, fmt.Errorf("placement: %d shepherds: %w", n, api.ErrInvalidArgument)
	}
	groups, err := s.Groups()
	if err != nil {
		return nil, err
	}
	homes := Assign(topology.CloneGroups(groups), n)
	dists, err := Distances(homes, s.Latency)
	if err != nil {
		return nil, err
	}
	p := assemble(homes, dists)

	log := s.Logger()
	if unplaced := n - p.Placed(); unplaced > 0 {
		log.Info("more shepherds than CPUs, leaving some unplaced",
			zap.Int("shepherds", n),
			zap.Int("cpus", topology.TotalCPUs(groups)),
			zap.Int("unplaced", unplaced))
	}
	for _, sh := range p.shepherds {
		log.Debug("placed shepherd", zap.Int("shepherd", sh.id), zap.Stringer("home", sh.home))
	}
	return p, nil
}

// Uniform returns the fallback placement: every shepherd unplaced with
// fallback distances.
func Uniform(n int) *Placement {
	if n < 1 {
		n = 1
	}
	p := assemble(make([]Home, n), UniformDistances(n))
	p.uniform = true
	return p
}

func assemble(homes []Home, dists [][]int) *Placement {
	p := &Placement{shepherds: make([]*Shepherd, len(homes))}
	for i := range homes {
		p.shepherds[i] = &Shepherd{
			id:        i,
			home:      homes[i],
			dists:     dists[i],
			neighbors: RankNeighbors(i, dists[i]),
		}
	}
	return p
}

// Len returns the number of shepherds.
func (p *Placement) Len() int { return len(p.shepherds) }

// Shepherd returns shepherd i.
func (p *Placement) Shepherd(i int) *Shepherd { return p.shepherds[i] }

// Shepherds returns all shepherds in id order. The slice is a copy; the
// shepherds themselves are shared and read-only.
func (p *Placement) Shepherds() []*Shepherd {
	return append([]*Shepherd(nil), p.shepherds...)
}

// Placed returns how many shepherds received a CPU.
func (p *Placement) Placed() int {
	n := 0
	for _, s := range p.shepherds {
		if s.home.IsPlaced() {
			n++
		}
	}
	return n
}

// IsUniform reports whether this is the topology-less fallback.
func (p *Placement) IsUniform() bool { return p.uniform }

// Matrix returns a copy of the distance matrix.
func (p *Placement) Matrix() [][]int {
	m := make([][]int, len(p.shepherds))
	for i, s := range p.shepherds {
		m[i] = s.Distances()
	}
	return m
}
