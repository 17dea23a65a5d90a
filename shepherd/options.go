// File: shepherd/options.go
// Package shepherd defines functional options for the Runtime.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package shepherd

import (
	"go.uber.org/zap"

	"github.com/momentics/hioload-shepherd/api"
	"github.com/momentics/hioload-shepherd/control"
)

// Option customizes runtime initialization.
type Option func(*Runtime)

// WithLogger sets the runtime logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runtime) {
		if l != nil {
			r.log = l
		}
	}
}

// WithProvider supplies the topology provider directly, bypassing the
// configured source. The runtime takes ownership and closes it.
func WithProvider(p api.TopologyProvider) Option {
	return func(r *Runtime) {
		r.provider = p
		r.providerSet = true
	}
}

// WithPinner replaces the platform CPU pinner.
func WithPinner(p api.Pinner) Option {
	return func(r *Runtime) {
		if p != nil {
			r.pinner = p
		}
	}
}

// WithMetrics records runtime metrics into mr.
func WithMetrics(mr *control.MetricsRegistry) Option {
	return func(r *Runtime) {
		if mr != nil {
			r.metrics = mr
		}
	}
}
