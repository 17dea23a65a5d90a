// File: shepherd/provider.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package shepherd

import (
	"github.com/momentics/hioload-shepherd/api"
	"github.com/momentics/hioload-shepherd/control"
	"github.com/momentics/hioload-shepherd/internal/topology"
)

// OpenProvider opens the topology source named by cfg. The uniform source
// has no provider and returns nil, nil.
func OpenProvider(cfg control.TopologyConfig) (api.TopologyProvider, error) {
	switch cfg.Source {
	case control.SourceUniform:
		return nil, nil
	case control.SourceFile:
		p, err := topology.LoadFile(cfg.Path)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		p, err := topology.OpenSysfs(cfg.SysfsRoot)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}
