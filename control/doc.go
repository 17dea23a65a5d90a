// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration and runtime metrics layer of hioload-shepherd.
//
// Provides:
//   - YAML configuration with defaults and validation
//   - A concurrent-safe metrics registry for placement and barrier telemetry
package control
