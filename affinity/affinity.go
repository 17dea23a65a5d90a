// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU affinity. Platform-specific implementations are located
// in separate files (affinity_linux.go, affinity_windows.go, etc.) guarded by build tags.

package affinity

import (
	"fmt"

	"github.com/momentics/hioload-shepherd/api"
)

// SetAffinity pins the current OS thread to a given logical CPU on supported
// platforms. The caller must hold runtime.LockOSThread, otherwise the Go
// scheduler may move the goroutine off the pinned thread.
// On unsupported platforms returns an error wrapping api.ErrNotSupported.
func SetAffinity(cpuID int) error {
	if cpuID < 0 {
		return fmt.Errorf("affinity: cpu %d: %w", cpuID, api.ErrInvalidArgument)
	}
	return setAffinityPlatform(cpuID)
}

// Pinner is the platform pinner as an api.Pinner.
var Pinner api.Pinner = api.PinnerFunc(SetAffinity)
