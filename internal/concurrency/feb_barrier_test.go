// File: internal/concurrency/feb_barrier_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertRest(t *testing.T, b *FebBarrier) {
	t.Helper()
	in, out := b.Gates()
	assert.Zero(t, b.Blockers(), "blockers")
	assert.Equal(t, Full, in, "in gate")
	assert.Equal(t, Empty, out, "out gate")
	assert.True(t, b.AtRest())
}

// runCycles drives n participants through k cycles and checks that no
// participant leaves cycle c before all n have arrived in it, and that
// nobody gets two cycles ahead.
func runCycles(t *testing.T, b *FebBarrier, n, k int) {
	t.Helper()
	var arrived atomic.Int64
	var wg sync.WaitGroup
	done := make(chan struct{})
	for p := 0; p < n; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := 0; c < k; c++ {
				arrived.Add(1)
				b.Enter()
				got := arrived.Load()
				lo := int64(n * (c + 1))
				hi := lo + int64(n-1)
				if got < lo || got > hi {
					t.Errorf("cycle %d: %d arrivals seen on exit, want [%d,%d]", c, got, lo, hi)
					return
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Timeout: barrier deadlocked")
	}
}

func TestFebBarrier_NewIsAtRest(t *testing.T) {
	b := NewFebBarrier(3)
	assertRest(t, b)
	assert.Equal(t, 3, b.Capacity())
	assert.Zero(t, b.Cycles())
}

func TestFebBarrier_SingleParticipant(t *testing.T) {
	b := NewFebBarrier(1)
	for i := 0; i < 5; i++ {
		b.Enter()
		assertRest(t, b)
	}
	assert.EqualValues(t, 5, b.Cycles())
}

func TestFebBarrier_ManyCycles(t *testing.T) {
	for _, n := range []int{1, 2, 3, 8, 32} {
		b := NewFebBarrier(n)
		const k = 200
		runCycles(t, b, n, k)
		assertRest(t, b)
		assert.EqualValues(t, k, b.Cycles(), "n=%d", n)
	}
}

func TestFebBarrier_AtRestBetweenJoinedRounds(t *testing.T) {
	for _, n := range []int{2, 3, 8} {
		b := NewFebBarrier(n)
		for round := 0; round < 50; round++ {
			assertRest(t, b)
			var wg sync.WaitGroup
			for p := 0; p < n; p++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					b.Enter()
				}()
			}
			wg.Wait()
			assertRest(t, b)
			require.EqualValues(t, round+1, b.Cycles(), "n=%d", n)
		}
		b.Destroy()
	}
}

func TestFebBarrier_HoldsUntilLastArrival(t *testing.T) {
	b := NewFebBarrier(3)
	var passed atomic.Int32
	for i := 0; i < 2; i++ {
		go func() {
			b.Enter()
			passed.Add(1)
		}()
	}
	waitFor(t, func() bool { return b.Blockers() == 2 })
	time.Sleep(10 * time.Millisecond)
	assert.Zero(t, passed.Load())

	b.Enter()
	waitFor(t, func() bool { return passed.Load() == 2 })
	waitFor(t, b.AtRest)
}

func TestFebBarrier_EarlyReentryWaitsForDrain(t *testing.T) {
	b := NewFebBarrier(2)
	// Hold one participant between the gates by racing a second cycle
	// against the drain of the first; both must still complete.
	var wg sync.WaitGroup
	for p := 0; p < 2; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Enter()
			b.Enter()
		}()
	}
	wg.Wait()
	assertRest(t, b)
	assert.EqualValues(t, 2, b.Cycles())
}

func TestFebBarrier_InvalidCapacityPanics(t *testing.T) {
	assert.Panics(t, func() { NewFebBarrier(0) })
	assert.Panics(t, func() { NewFebBarrier(-4) })
	assert.Panics(t, func() { NewBarrierPool().Create(0) })
}

func TestFebBarrier_DestroyWithParticipantsPanics(t *testing.T) {
	b := NewFebBarrier(2)
	done := make(chan struct{})
	go func() {
		b.Enter()
		close(done)
	}()
	waitFor(t, func() bool { return b.Blockers() == 1 })
	assert.Panics(t, b.Destroy)

	b.Enter()
	<-done
	waitFor(t, b.AtRest)
	assert.NotPanics(t, b.Destroy)
}

func TestBarrierPool_RecreateIsAtRest(t *testing.T) {
	bp := NewBarrierPool()
	b := bp.Create(4)
	assert.EqualValues(t, 1, bp.Outstanding())
	runCycles(t, b, 4, 10)
	b.Destroy()
	assert.Zero(t, bp.Outstanding())

	again := bp.Create(4)
	assertRest(t, again)
	assert.Equal(t, 4, again.Capacity())
	assert.Zero(t, again.Cycles())
	runCycles(t, again, 4, 3)
	again.Destroy()
}

func TestBarrierPool_DoubleDestroyPanics(t *testing.T) {
	bp := NewBarrierPool()
	b := bp.Create(2)
	b.Destroy()
	assert.Panics(t, b.Destroy)
	assert.Zero(t, bp.Outstanding())

	x, y := bp.Create(1), bp.Create(1)
	assert.NotSame(t, x, y)
	assert.EqualValues(t, 2, bp.Outstanding())
	x.Destroy()
	y.Destroy()

	u := NewFebBarrier(1)
	u.Destroy()
	assert.Panics(t, u.Destroy)
}

func TestBarrierPool_ConcurrentCreateDestroy(t *testing.T) {
	bp := NewBarrierPool()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				b := bp.Create(1)
				b.Enter()
				b.Destroy()
			}
		}()
	}
	wg.Wait()
	require.Zero(t, bp.Outstanding())
}
