// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Runtime configuration: shepherd counts, topology source, pinning and
// logging, loaded from YAML.

package control

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/momentics/hioload-shepherd/api"
)

// Topology sources.
const (
	SourceSysfs   = "sysfs"
	SourceFile    = "file"
	SourceUniform = "uniform"
)

// Config holds all runtime configuration. Zero counts are estimated from the
// topology at startup.
type Config struct {
	Shepherds              int  `yaml:"shepherds"`
	WorkersPerShepherd     int  `yaml:"workers_per_shepherd"`
	MultithreadedShepherds bool `yaml:"multithreaded_shepherds"`
	// Pin binds every shepherd thread to its home CPU. Failures are logged.
	Pin bool `yaml:"pin"`

	Topology TopologyConfig `yaml:"topology"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// TopologyConfig selects where locality information comes from.
type TopologyConfig struct {
	Source    string `yaml:"source"`     // sysfs, file, uniform
	Path      string `yaml:"path"`       // YAML tree for the file source
	SysfsRoot string `yaml:"sysfs_root"` // overrides /sys/devices/system/node
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		MultithreadedShepherds: true,
		Pin:                    true,
		Topology:               TopologyConfig{Source: SourceSysfs},
		Logging:                LoggingConfig{Level: "info"},
	}
}

// LoadConfig reads path over the defaults and validates the result.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges and source-specific requirements.
func (c *Config) Validate() error {
	if c.Shepherds < 0 {
		return fmt.Errorf("config: shepherds %d: %w", c.Shepherds, api.ErrInvalidArgument)
	}
	if c.WorkersPerShepherd < 0 {
		return fmt.Errorf("config: workers_per_shepherd %d: %w", c.WorkersPerShepherd, api.ErrInvalidArgument)
	}
	switch c.Topology.Source {
	case "", SourceSysfs, SourceUniform:
	case SourceFile:
		if c.Topology.Path == "" {
			return fmt.Errorf("config: topology.path required for file source: %w", api.ErrInvalidArgument)
		}
	default:
		return fmt.Errorf("config: unknown topology source %q: %w", c.Topology.Source, api.ErrInvalidArgument)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q: %w", c.Logging.Level, api.ErrInvalidArgument)
	}
	return nil
}
