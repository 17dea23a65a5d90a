// File: cmd/shepctl/main.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// shepctl inspects shepherd placement on the current host and exercises the
// runtime-wide barrier.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/momentics/hioload-shepherd/control"
	"github.com/momentics/hioload-shepherd/internal/logging"
	"github.com/momentics/hioload-shepherd/shepherd"
)

var (
	logger     *zap.Logger
	configPath string
	verbose    bool
	overrides  control.Config
)

var rootCmd = &cobra.Command{
	Use:   "shepctl",
	Short: "Inspect shepherd placement and barriers",
	Long: `shepctl discovers the locality topology of this host, places shepherds on
CPUs the way the runtime does at startup, and prints the result.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "warn"
		if verbose {
			level = "debug"
		}
		var err error
		logger, err = logging.New(level, true)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "YAML runtime config")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.IntVar(&overrides.Shepherds, "shepherds", 0, "shepherd count (0 = estimate)")
	pf.IntVar(&overrides.WorkersPerShepherd, "workers", 0, "workers per shepherd (0 = estimate)")
	pf.StringVar(&overrides.Topology.Source, "source", "", "topology source: sysfs, file, uniform")
	pf.StringVar(&overrides.Topology.Path, "topology", "", "YAML topology file for the file source")
	pf.StringVar(&overrides.Topology.SysfsRoot, "sysfs-root", "", "sysfs NUMA node directory")

	rootCmd.AddCommand(guessCmd, placeCmd, barrierCmd)
}

// loadConfig merges flag overrides over the config file or defaults.
func loadConfig() (*control.Config, error) {
	cfg := control.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = control.LoadConfig(configPath); err != nil {
			return nil, err
		}
	}
	if overrides.Shepherds != 0 {
		cfg.Shepherds = overrides.Shepherds
	}
	if overrides.WorkersPerShepherd != 0 {
		cfg.WorkersPerShepherd = overrides.WorkersPerShepherd
	}
	if overrides.Topology.Source != "" {
		cfg.Topology.Source = overrides.Topology.Source
	}
	if overrides.Topology.Path != "" {
		cfg.Topology.Path = overrides.Topology.Path
		if overrides.Topology.Source == "" {
			cfg.Topology.Source = control.SourceFile
		}
	}
	if overrides.Topology.SysfsRoot != "" {
		cfg.Topology.SysfsRoot = overrides.Topology.SysfsRoot
	}
	return cfg, cfg.Validate()
}

func newRuntime() (*shepherd.Runtime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if configPath != "" && !verbose {
		if logger, err = logging.New(cfg.Logging.Level, cfg.Logging.Development); err != nil {
			return nil, err
		}
	}
	return shepherd.New(cfg, shepherd.WithLogger(logger))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
