// File: shepherd/runtime.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package shepherd

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/momentics/hioload-shepherd/affinity"
	"github.com/momentics/hioload-shepherd/api"
	"github.com/momentics/hioload-shepherd/control"
	"github.com/momentics/hioload-shepherd/internal/concurrency"
	"github.com/momentics/hioload-shepherd/internal/placement"
	"github.com/momentics/hioload-shepherd/internal/topology"
)

// Task is the body run on every shepherd by Run.
type Task func(ctx context.Context, sh *placement.Shepherd) error

// Runtime owns the topology session, the immutable placement and the
// runtime-wide barrier.
type Runtime struct {
	cfg *control.Config
	log *zap.Logger

	provider    api.TopologyProvider
	providerSet bool
	pinner      api.Pinner
	metrics     *control.MetricsRegistry

	counts    topology.Counts
	placement *placement.Placement
	barriers  *concurrency.BarrierPool
	global    *concurrency.GlobalBarrier

	closeOnce sync.Once
	closeErr  error
}

// New assembles a runtime from cfg. Topology problems never fail New: they
// are logged and the runtime continues with a uniform placement. Only an
// invalid configuration returns an error.
func New(cfg *control.Config, opts ...Option) (*Runtime, error) {
	if cfg == nil {
		cfg = control.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Runtime{
		cfg:     cfg,
		log:     zap.NewNop(),
		pinner:  affinity.Pinner,
		metrics: control.NewMetricsRegistry(),
	}
	for _, o := range opts {
		o(r)
	}

	if !r.providerSet {
		p, err := OpenProvider(cfg.Topology)
		if err != nil {
			r.log.Warn("topology source unavailable, using uniform placement",
				zap.String("source", cfg.Topology.Source), zap.Error(err))
		}
		r.provider = p
	}

	var session *topology.Session
	if r.provider != nil {
		s, err := topology.Open(r.provider, topology.WithLogger(r.log))
		if err != nil {
			r.log.Warn("topology session invalid, using uniform placement", zap.Error(err))
		} else {
			session = s
		}
	}

	r.counts = topology.Init(r.provider, topology.Counts{
		Shepherds:          cfg.Shepherds,
		WorkersPerShepherd: cfg.WorkersPerShepherd,
		Multithreaded:      cfg.MultithreadedShepherds,
	}, r.log)

	if session != nil {
		p, err := placement.Build(session, r.counts.Shepherds)
		if err != nil {
			r.log.Warn("placement failed, using uniform placement", zap.Error(err))
		} else {
			r.placement = p
		}
	}
	if r.placement == nil {
		r.placement = placement.Uniform(r.counts.Shepherds)
	}

	r.barriers = concurrency.NewBarrierPool()
	r.global = concurrency.NewGlobalBarrier(r.barriers)
	r.global.Init(r.placement.Len())

	r.metrics.Set(control.MetricShepherds, r.placement.Len())
	r.metrics.Set(control.MetricPlaced, r.placement.Placed())
	r.metrics.Set(control.MetricUnplaced, r.placement.Len()-r.placement.Placed())
	r.metrics.Set(control.MetricUniform, r.placement.IsUniform())
	r.metrics.Set(control.MetricWorkers, r.counts.WorkersPerShepherd)

	r.log.Info("shepherd runtime initialized",
		zap.Int("shepherds", r.placement.Len()),
		zap.Int("placed", r.placement.Placed()),
		zap.Int("workers_per_shepherd", r.counts.WorkersPerShepherd),
		zap.Bool("uniform", r.placement.IsUniform()))
	return r, nil
}

// Run starts one goroutine per shepherd, each locked to its own OS thread
// and, when pinning is enabled, bound to the shepherd's home CPU. It returns
// the first task error after all tasks have returned; the context passed to
// tasks is cancelled on the first error.
//
// Tasks that rendezvous on GlobalBarrier must all reach it: a task that
// returns early leaves the others blocked.
func (r *Runtime) Run(ctx context.Context, fn Task) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, sh := range r.placement.Shepherds() {
		sh := sh
		g.Go(func() error {
			runtime.LockOSThread()
			if !r.pin(sh) {
				// A pinned thread is retired with the goroutine instead of
				// returning to the scheduler with a narrowed mask.
				defer runtime.UnlockOSThread()
			}
			return fn(ctx, sh)
		})
	}
	err := g.Wait()
	r.metrics.Set(control.MetricBarrierCycles, r.global.Cycles())
	r.metrics.Set(control.MetricBarriersInFlight, r.barriers.Outstanding())
	return err
}

// pin binds the calling thread to sh's home CPU. It reports whether the
// thread's affinity changed.
func (r *Runtime) pin(sh *placement.Shepherd) bool {
	if !r.cfg.Pin {
		return false
	}
	cpu, ok := sh.Home().CPU()
	if !ok {
		return false
	}
	if err := r.pinner.Pin(cpu); err != nil {
		r.metrics.Add(control.MetricPinFailures, 1)
		r.log.Warn("failed to pin shepherd",
			zap.Int("shepherd", sh.ID()), zap.Int("cpu", cpu), zap.Error(err))
		return false
	}
	r.log.Debug("pinned shepherd", zap.Int("shepherd", sh.ID()), zap.Int("cpu", cpu))
	return true
}

// Close destroys the global barrier and closes the topology provider. It
// panics if shepherds are still inside the global barrier.
func (r *Runtime) Close() error {
	r.closeOnce.Do(func() {
		r.global.Destroy()
		if r.provider != nil {
			r.closeErr = r.provider.Close()
		}
	})
	return r.closeErr
}

// Placement returns the immutable shepherd placement.
func (r *Runtime) Placement() *placement.Placement { return r.placement }

// Counts returns the resolved shepherd and worker counts.
func (r *Runtime) Counts() topology.Counts { return r.counts }

// GlobalBarrier returns the barrier sized to every shepherd.
func (r *Runtime) GlobalBarrier() *concurrency.GlobalBarrier { return r.global }

// Barriers returns the pool for additional fixed-population barriers.
func (r *Runtime) Barriers() *concurrency.BarrierPool { return r.barriers }

// Metrics returns the runtime metrics registry.
func (r *Runtime) Metrics() *control.MetricsRegistry { return r.metrics }
