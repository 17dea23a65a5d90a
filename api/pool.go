// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Defines abstract pooling APIs for control-structure reuse.

package api

// ObjectPool provides generic pooling of fixed-size control objects.
// Implementations must support concurrent Get/Put from many shepherds.
type ObjectPool[T any] interface {
	// Get returns an available instance from pool
	Get() T

	// Put returns an instance for reuse
	Put(obj T)
}
