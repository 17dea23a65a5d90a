// File: internal/concurrency/syncvar.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Full/empty-bit synchronization cell.

package concurrency

import (
	"sync"

	"github.com/eapache/queue"
)

// State is the full/empty bit of a SyncVar.
type State uint8

const (
	Empty State = iota
	Full
)

func (s State) String() string {
	if s == Full {
		return "full"
	}
	return "empty"
}

// SyncVar is a one-bit synchronization cell carrying a word of payload.
//
// ReadFF parks the calling goroutine while the cell is empty. Parking yields
// to the Go scheduler, so the OS thread underneath stays available for other
// goroutines. A Fill releases every parked reader exactly once and
// happens-before each of them returns.
//
// The zero value is an empty cell holding 0. A SyncVar must not be copied
// after first use.
type SyncVar struct {
	mu    sync.Mutex
	state State
	value uint64
	// waiters holds one buffered chan uint64 per parked reader, oldest first.
	waiters *queue.Queue
}

// NewSyncVar returns a cell in the given state holding value.
func NewSyncVar(state State, value uint64) *SyncVar {
	v := &SyncVar{}
	v.reset(state, value)
	return v
}

func (v *SyncVar) reset(state State, value uint64) {
	v.mu.Lock()
	v.state = state
	v.value = value
	v.mu.Unlock()
}

// Fill marks the cell full, stores value and releases every parked reader.
// Filling a full cell overwrites the payload; nothing is queued.
func (v *SyncVar) Fill(value uint64) {
	v.mu.Lock()
	v.state = Full
	v.value = value
	if v.waiters != nil {
		for v.waiters.Length() > 0 {
			v.waiters.Remove().(chan uint64) <- value
		}
	}
	v.mu.Unlock()
}

// Empty marks the cell empty. It releases nobody.
func (v *SyncVar) Empty() {
	v.mu.Lock()
	v.state = Empty
	v.mu.Unlock()
}

// ReadFF returns the payload once the cell is full, leaving it full. It
// blocks indefinitely; there is no timeout or cancellation.
func (v *SyncVar) ReadFF() uint64 {
	v.mu.Lock()
	if v.state == Full {
		val := v.value
		v.mu.Unlock()
		return val
	}
	if v.waiters == nil {
		v.waiters = queue.New()
	}
	ch := make(chan uint64, 1)
	v.waiters.Add(ch)
	v.mu.Unlock()
	return <-ch
}

// State returns the current full/empty bit.
func (v *SyncVar) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Waiters returns the number of parked readers.
func (v *SyncVar) Waiters() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.waiters == nil {
		return 0
	}
	return v.waiters.Length()
}
