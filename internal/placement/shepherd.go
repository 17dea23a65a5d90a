// File: internal/placement/shepherd.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package placement

import (
	"fmt"

	"github.com/momentics/hioload-shepherd/api"
)

// Home is a shepherd's assigned CPU and locality. The zero value is
// unplaced.
type Home struct {
	cpu      int
	locality api.LocalityID
	placed   bool
}

// PlacedAt returns a Home on cpu within locality.
func PlacedAt(cpu int, locality api.LocalityID) Home {
	return Home{cpu: cpu, locality: locality, placed: true}
}

// IsPlaced reports whether the shepherd received a CPU.
func (h Home) IsPlaced() bool { return h.placed }

// CPU returns the home CPU, if any.
func (h Home) CPU() (int, bool) { return h.cpu, h.placed }

// Locality returns the home locality, if any.
func (h Home) Locality() (api.LocalityID, bool) { return h.locality, h.placed }

func (h Home) String() string {
	if !h.placed {
		return "unplaced"
	}
	return fmt.Sprintf("cpu %d/locality %d", h.cpu, h.locality)
}

// Shepherd holds the scheduling metadata of one runtime worker.
type Shepherd struct {
	id        int
	home      Home
	dists     []int
	neighbors []int
}

// ID returns the shepherd id, its index in the placement.
func (s *Shepherd) ID() int { return s.id }

// Home returns the assigned CPU and locality.
func (s *Shepherd) Home() Home { return s.home }

// Distance returns the distance from this shepherd to shepherd j.
func (s *Shepherd) Distance(j int) int { return s.dists[j] }

// Distances returns a copy of the distance vector, indexed by shepherd id.
func (s *Shepherd) Distances() []int {
	return append([]int(nil), s.dists...)
}

// Neighbors returns a copy of the other shepherd ids, nearest first.
func (s *Shepherd) Neighbors() []int {
	return append([]int(nil), s.neighbors...)
}

// Nearest returns the k-th nearest other shepherd. ok is false when k is
// out of range, including for a single-shepherd runtime.
func (s *Shepherd) Nearest(k int) (id int, ok bool) {
	if k < 0 || k >= len(s.neighbors) {
		return 0, false
	}
	return s.neighbors[k], true
}
