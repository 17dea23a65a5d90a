// File: internal/concurrency/global_barrier.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-shepherd/api"
)

// GlobalBarrier is a runtime-wide rendezvous of fixed size. It is owned by
// whoever constructs it, normally the shepherd runtime.
type GlobalBarrier struct {
	mu   sync.Mutex
	pool *BarrierPool
	b    atomic.Pointer[FebBarrier]
}

// NewGlobalBarrier returns an uninitialized global barrier drawing storage
// from p. A nil p allocates unpooled.
func NewGlobalBarrier(p *BarrierPool) *GlobalBarrier {
	return &GlobalBarrier{pool: p}
}

// Init creates the barrier for size participants. Later calls are no-ops
// until Destroy.
func (g *GlobalBarrier) Init(size int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.b.Load() != nil {
		return
	}
	if g.pool != nil {
		g.b.Store(g.pool.Create(size))
	} else {
		g.b.Store(NewFebBarrier(size))
	}
}

func (g *GlobalBarrier) barrier() *FebBarrier {
	b := g.b.Load()
	if b == nil {
		panic(api.NewError(api.ErrCodeInternal, "global barrier: used before Init"))
	}
	return b
}

// Wait is one rendezvous of every participant.
func (g *GlobalBarrier) Wait() {
	g.barrier().Enter()
}

// WaitWithEpilogue rendezvous twice, running reset in every participant
// between the two. When the second rendezvous completes, every
// participant's reset has returned.
func (g *GlobalBarrier) WaitWithEpilogue(reset func()) {
	b := g.barrier()
	b.Enter()
	if reset != nil {
		reset()
	}
	b.Enter()
}

// Size returns the participant count, or 0 before Init.
func (g *GlobalBarrier) Size() int {
	if b := g.b.Load(); b != nil {
		return b.Capacity()
	}
	return 0
}

// Cycles returns the completed rendezvous count, or 0 before Init.
func (g *GlobalBarrier) Cycles() uint64 {
	if b := g.b.Load(); b != nil {
		return b.Cycles()
	}
	return 0
}

// Destroy retires the barrier. It panics if participants are inside and is
// a no-op when uninitialized.
func (g *GlobalBarrier) Destroy() {
	g.mu.Lock()
	defer g.mu.Unlock()
	b := g.b.Load()
	if b == nil {
		return
	}
	b.Destroy()
	g.b.Store(nil)
}
