// File: internal/topology/sysfs.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux NUMA topology read from sysfs. The tree is a machine root with no
// CPUs of its own and one child per online NUMA node; the node distance
// table provides latencies.

package topology

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"k8s.io/utils/cpuset"

	"github.com/momentics/hioload-shepherd/api"
)

// DefaultSysfsRoot is where the kernel exposes NUMA nodes.
const DefaultSysfsRoot = "/sys/devices/system/node"

// MachineLocality is the id of the synthetic machine root group.
const MachineLocality api.LocalityID = 1 << 20

// Sysfs is a TopologyProvider backed by a snapshot of the sysfs node tree.
type Sysfs struct {
	nodes []api.LocalityID
	cpus  map[api.LocalityID][]int
	dist  map[api.LocalityID][]int
	index map[api.LocalityID]int
}

var _ api.TopologyProvider = (*Sysfs)(nil)

// OpenSysfs snapshots the node tree under dir. An empty dir selects
// DefaultSysfsRoot. A missing or empty tree is an environment error.
func OpenSysfs(dir string) (*Sysfs, error) {
	if dir == "" {
		dir = DefaultSysfsRoot
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, api.EnvironmentError("topology: read "+dir, err)
	}
	s := &Sysfs{
		cpus:  make(map[api.LocalityID][]int),
		dist:  make(map[api.LocalityID][]int),
		index: make(map[api.LocalityID]int),
	}
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "node") {
			continue
		}
		id, err := strconv.Atoi(strings.TrimPrefix(name, "node"))
		if err != nil {
			continue
		}
		s.nodes = append(s.nodes, api.LocalityID(id))
	}
	if len(s.nodes) == 0 {
		return nil, api.EnvironmentError("topology: no NUMA nodes under "+dir, nil)
	}
	sort.Slice(s.nodes, func(i, j int) bool { return s.nodes[i] < s.nodes[j] })

	for i, n := range s.nodes {
		s.index[n] = i
		nodeDir := filepath.Join(dir, fmt.Sprintf("node%d", n))
		raw, err := os.ReadFile(filepath.Join(nodeDir, "cpulist"))
		if err != nil {
			return nil, api.EnvironmentError("topology: read cpulist", err).WithContext("node", int(n))
		}
		cpus, err := ParseCPUList(string(raw))
		if err != nil {
			return nil, api.EnvironmentError("topology: parse cpulist", err).WithContext("node", int(n))
		}
		s.cpus[n] = cpus
		// Older kernels and some containers omit the distance table; latency
		// then falls back to the SLIT defaults.
		if raw, err := os.ReadFile(filepath.Join(nodeDir, "distance")); err == nil {
			d, err := parseDistances(string(raw))
			if err != nil {
				return nil, api.EnvironmentError("topology: parse distance", err).WithContext("node", int(n))
			}
			s.dist[n] = d
		}
	}
	return s, nil
}

func (s *Sysfs) Root() (api.LocalityID, error) {
	return MachineLocality, nil
}

func (s *Sysfs) DirectCPUs(g api.LocalityID) ([]int, error) {
	if g == MachineLocality {
		return nil, nil
	}
	cpus, ok := s.cpus[g]
	if !ok {
		return nil, fmt.Errorf("topology: node %d: %w", g, api.ErrNotFound)
	}
	return append([]int(nil), cpus...), nil
}

func (s *Sysfs) Children(g api.LocalityID) ([]api.LocalityID, error) {
	if g == MachineLocality {
		return append([]api.LocalityID(nil), s.nodes...), nil
	}
	if _, ok := s.cpus[g]; !ok {
		return nil, fmt.Errorf("topology: node %d: %w", g, api.ErrNotFound)
	}
	return nil, nil
}

func (s *Sysfs) Latency(from, to api.LocalityID) (int, error) {
	if _, ok := s.cpus[from]; !ok {
		return 0, fmt.Errorf("topology: latency from %d: %w", from, api.ErrNotFound)
	}
	j, ok := s.index[to]
	if !ok {
		return 0, fmt.Errorf("topology: latency to %d: %w", to, api.ErrNotFound)
	}
	row := s.dist[from]
	if row == nil {
		if from == to {
			return DefaultLocalLatency, nil
		}
		return DefaultRemoteLatency, nil
	}
	if j >= len(row) {
		return 0, fmt.Errorf("topology: node %d distance table has %d entries, need %d: %w",
			from, len(row), j+1, api.ErrTopology)
	}
	return row[j], nil
}

func (s *Sysfs) GroupCount() (int, error) {
	return len(s.nodes) + 1, nil
}

func (s *Sysfs) Close() error { return nil }

// MaxCPUs bounds the CPU ids accepted from a cpulist. It is the largest
// CONFIG_NR_CPUS the kernel supports.
const MaxCPUs = 8192

// ParseCPUList parses the kernel cpulist format, e.g. "0-3,8,10-11", into
// ascending CPU ids. Ids at or above MaxCPUs are rejected before any range is
// expanded.
func ParseCPUList(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if err := checkCPUBounds(s); err != nil {
		return nil, err
	}
	set, err := cpuset.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("cpulist %q: %w: %w", s, api.ErrInvalidArgument, err)
	}
	if set.IsEmpty() {
		return nil, nil
	}
	return set.List(), nil
}

// checkCPUBounds rejects range endpoints outside [0, MaxCPUs). Malformed
// tokens are left for cpuset.Parse to report.
func checkCPUBounds(s string) error {
	for _, part := range strings.Split(s, ",") {
		for _, bound := range strings.SplitN(part, "-", 2) {
			v, err := strconv.Atoi(bound)
			if err != nil {
				continue
			}
			if v < 0 || v >= MaxCPUs {
				return fmt.Errorf("cpulist %q: cpu %d outside [0,%d): %w", s, v, MaxCPUs, api.ErrInvalidArgument)
			}
		}
	}
	return nil
}

func parseDistances(s string) ([]int, error) {
	fields := strings.Fields(s)
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("distance %q: %w", s, err)
		}
		out = append(out, v)
	}
	return out, nil
}
