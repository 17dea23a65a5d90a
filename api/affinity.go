// Package api
// Author: momentics@gmail.com
//
// CPU affinity contract used when starting shepherd threads.

package api

// Pinner binds the calling OS thread to a CPU. Callers hold
// runtime.LockOSThread for the lifetime of the binding.
type Pinner interface {
	Pin(cpuID int) error
}

// PinnerFunc adapts a function to Pinner.
type PinnerFunc func(cpuID int) error

// Pin calls f(cpuID).
func (f PinnerFunc) Pin(cpuID int) error {
	return f(cpuID)
}
