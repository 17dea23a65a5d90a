// File: internal/topology/file.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// YAML-described locality trees, for hosts without a usable topology source
// and for reproducing a production layout on a laptop.

package topology

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/momentics/hioload-shepherd/api"
)

// FileSpec is the on-disk form of a static tree.
//
//	root:
//	  id: 0
//	  children:
//	    - id: 1
//	      cpus: [0, 1, 2, 3]
//	    - id: 2
//	      cpus: [4, 5, 6, 7]
//	default_latency: {local: 10, remote: 20}
//	latency:
//	  - {from: 1, to: 2, value: 21}
type FileSpec struct {
	Root           Node           `yaml:"root"`
	DefaultLatency *LatencyPair   `yaml:"default_latency,omitempty"`
	Latency        []LatencyEntry `yaml:"latency,omitempty"`
}

// LatencyPair holds default local and remote latencies.
type LatencyPair struct {
	Local  int `yaml:"local"`
	Remote int `yaml:"remote"`
}

// LatencyEntry is one directed latency override.
type LatencyEntry struct {
	From  api.LocalityID `yaml:"from"`
	To    api.LocalityID `yaml:"to"`
	Value int            `yaml:"value"`
}

// ParseYAML builds a Static provider from a YAML document.
func ParseYAML(data []byte) (*Static, error) {
	var spec FileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("topology: parse yaml: %w", err)
	}
	var opts []StaticOption
	if spec.DefaultLatency != nil {
		opts = append(opts, WithDefaultLatency(spec.DefaultLatency.Local, spec.DefaultLatency.Remote))
	}
	for _, e := range spec.Latency {
		if e.Value < 0 {
			return nil, fmt.Errorf("topology: latency %d->%d is negative: %w", e.From, e.To, api.ErrInvalidArgument)
		}
		opts = append(opts, WithLatency(e.From, e.To, e.Value))
	}
	return NewStatic(spec.Root, opts...)
}

// LoadFile reads a YAML tree from path.
func LoadFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, api.EnvironmentError("topology: read "+path, err)
	}
	return ParseYAML(data)
}
