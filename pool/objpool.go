// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package pool

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-shepherd/api"
)

var _ api.ObjectPool[*struct{}] = (*SyncPool[*struct{}])(nil)

// SyncPool wraps sync.Pool for fixed-size control objects shared by all
// shepherds. Get never fails; the Go allocator aborts the process when memory
// is exhausted.
type SyncPool[T any] struct {
	pool *sync.Pool
	// outstanding counts objects handed out and not yet returned.
	outstanding atomic.Int64
}

// NewSyncPool creates a new SyncPool with a creator function.
func NewSyncPool[T any](creator func() T) *SyncPool[T] {
	return &SyncPool[T]{
		pool: &sync.Pool{New: func() any { return creator() }},
	}
}

func (sp *SyncPool[T]) Get() T {
	sp.outstanding.Add(1)
	return sp.pool.Get().(T)
}

func (sp *SyncPool[T]) Put(obj T) {
	sp.outstanding.Add(-1)
	sp.pool.Put(obj)
}

// Outstanding returns the number of objects currently checked out.
func (sp *SyncPool[T]) Outstanding() int64 {
	return sp.outstanding.Load()
}
