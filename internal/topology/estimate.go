// File: internal/topology/estimate.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package topology

import (
	"go.uber.org/zap"

	"github.com/momentics/hioload-shepherd/api"
	"github.com/momentics/hioload-shepherd/internal/logging"
)

// Counts carries the shepherd and worker counts requested by the runtime.
// Zero fields are filled in by Init.
type Counts struct {
	Shepherds          int
	WorkersPerShepherd int
	// Multithreaded groups several workers under each shepherd. It selects
	// one shepherd per CPU group instead of one per CPU.
	Multithreaded bool
}

// GuessShepherds returns a default shepherd count: one per CPU group when
// workers are grouped under shepherds, otherwise one per CPU. It never
// returns less than 1, including when every provider query fails.
func GuessShepherds(p api.TopologyProvider, grouped bool) int {
	guess := 0
	if p != nil {
		if root, err := p.Root(); err == nil {
			groups := Walk(p, root)
			if grouped {
				guess = len(groups)
			} else {
				guess = TotalCPUs(groups)
			}
		}
	}
	if guess <= 0 {
		guess = 1
	}
	return guess
}

// GuessWorkersPerShepherd returns a default worker count per shepherd: the
// largest directly-attached CPU count of any group, divided by the factor by
// which shepherds oversubscribe groups. It never returns less than 1.
func GuessWorkersPerShepherd(p api.TopologyProvider, shepherds int) int {
	if p == nil {
		return 1
	}
	root, err := p.Root()
	if err != nil {
		return 1
	}
	nodes := len(Walk(p, root))
	guess := MaxDirectCPUs(p, root)
	if nodes > 0 && shepherds > nodes {
		guess /= shepherds / nodes
	}
	if guess <= 0 {
		guess = 1
	}
	return guess
}

// Init fills zero-valued counts with guesses derived from p.
func Init(p api.TopologyProvider, c Counts, log *zap.Logger) Counts {
	log = logging.OrNop(log)
	if c.Shepherds <= 0 {
		c.Shepherds = GuessShepherds(p, c.Multithreaded)
		log.Debug("guessing shepherds", zap.Int("shepherds", c.Shepherds))
	}
	if c.WorkersPerShepherd <= 0 {
		if c.Multithreaded {
			c.WorkersPerShepherd = GuessWorkersPerShepherd(p, c.Shepherds)
		} else {
			c.WorkersPerShepherd = 1
		}
		log.Debug("guessing workers per shepherd",
			zap.Int("shepherds", c.Shepherds),
			zap.Int("workers", c.WorkersPerShepherd))
	}
	return c
}
