// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Blocking rendezvous primitives for shepherds: the full/empty-bit SyncVar
// and the double-gate FebBarrier composed from two of them, plus an owned
// runtime-wide GlobalBarrier. Barrier storage is recycled through a
// concurrent object pool.
//
// Waiting always parks the goroutine rather than the OS thread, so a
// shepherd thread stays free to run other goroutines while one task waits.
package concurrency
