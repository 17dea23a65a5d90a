// File: internal/concurrency/feb_barrier.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Reusable rendezvous for a fixed population, built from two full/empty
// cells and an atomic counter.

package concurrency

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/momentics/hioload-shepherd/api"
	"github.com/momentics/hioload-shepherd/pool"
)

// FebBarrier is a double-gate barrier for exactly Capacity participants.
//
// A cycle has two phases. While filling, the in gate is full and the out
// gate empty; arrivals pass the in gate and park on the out gate. The last
// arrival closes the in gate and opens the out gate. While draining, each
// departure decrements the count and the last one closes the out gate and
// reopens the in gate, which returns the barrier to rest. Participants that
// re-enter early park on the closed in gate until the drain completes.
//
// Each cycle needs exactly Capacity calls to Enter and no participant may
// enter twice in one cycle; otherwise the barrier deadlocks with no
// detection.
type FebBarrier struct {
	inGate  SyncVar
	outGate SyncVar

	_        cpu.CacheLinePad
	blockers atomic.Int64
	_        cpu.CacheLinePad

	capacity int64
	cycles   atomic.Uint64
	// live is set by init and cleared by the first Destroy.
	live  atomic.Bool
	owner *BarrierPool
}

// NewFebBarrier returns an unpooled barrier for capacity participants.
// capacity below 1 panics.
func NewFebBarrier(capacity int) *FebBarrier {
	b := &FebBarrier{}
	b.init(capacity)
	return b
}

func checkCapacity(capacity int) {
	if capacity < 1 {
		panic(api.NewError(api.ErrCodeInvalidArgument, "feb barrier: capacity must be at least 1").
			WithContext("capacity", capacity))
	}
}

func (b *FebBarrier) init(capacity int) {
	checkCapacity(capacity)
	b.capacity = int64(capacity)
	b.blockers.Store(0)
	b.cycles.Store(0)
	b.inGate.reset(Full, 0)
	b.outGate.reset(Empty, 0)
	b.live.Store(true)
}

// Enter blocks until all Capacity participants of the current cycle have
// entered.
func (b *FebBarrier) Enter() {
	b.inGate.ReadFF()
	if b.blockers.Add(1) == b.capacity {
		b.inGate.Empty()
		b.outGate.Fill(0)
	} else {
		b.outGate.ReadFF()
	}
	if b.blockers.Add(-1) == 0 {
		b.cycles.Add(1)
		b.outGate.Empty()
		b.inGate.Fill(0)
	}
}

// Destroy retires the barrier. It panics if any participant is inside or
// if the barrier was already destroyed. Both gates are opened so that no
// straggler stays parked, then the barrier returns to its pool, if it came
// from one.
func (b *FebBarrier) Destroy() {
	if n := b.blockers.Load(); n != 0 {
		panic(api.NewError(api.ErrCodeInternal, "feb barrier: destroy with participants inside").
			WithContext("blockers", n))
	}
	if !b.live.CompareAndSwap(true, false) {
		panic(api.NewError(api.ErrCodeInternal, "feb barrier: destroyed twice"))
	}
	b.outGate.Fill(0)
	b.inGate.Fill(0)
	if b.owner != nil {
		b.owner.pool.Put(b)
	}
}

// Capacity returns the participant count per cycle.
func (b *FebBarrier) Capacity() int { return int(b.capacity) }

// Blockers returns the number of participants currently inside.
func (b *FebBarrier) Blockers() int64 { return b.blockers.Load() }

// Gates returns the in and out gate states.
func (b *FebBarrier) Gates() (in, out State) {
	return b.inGate.State(), b.outGate.State()
}

// Cycles returns the number of completed cycles.
func (b *FebBarrier) Cycles() uint64 { return b.cycles.Load() }

// AtRest reports whether nobody is inside and both gates have their idle
// polarity.
func (b *FebBarrier) AtRest() bool {
	in, out := b.Gates()
	return b.Blockers() == 0 && in == Full && out == Empty
}

// BarrierPool recycles barrier storage across create/destroy cycles. It is
// safe for concurrent use by many shepherds.
type BarrierPool struct {
	pool *pool.SyncPool[*FebBarrier]
}

// NewBarrierPool returns an empty pool.
func NewBarrierPool() *BarrierPool {
	bp := &BarrierPool{}
	bp.pool = pool.NewSyncPool(func() *FebBarrier { return &FebBarrier{owner: bp} })
	return bp
}

// Create returns a barrier at rest for capacity participants.
func (bp *BarrierPool) Create(capacity int) *FebBarrier {
	checkCapacity(capacity)
	b := bp.pool.Get()
	b.init(capacity)
	return b
}

// Outstanding returns the number of created, not yet destroyed barriers.
func (bp *BarrierPool) Outstanding() int64 {
	return bp.pool.Outstanding()
}
