// Package shepherd
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Runtime assembly for shepherds: opens the configured topology source,
// estimates shepherd and worker counts, places shepherds on CPUs (falling
// back to a uniform placement when the topology is unusable), and runs one
// OS-thread-locked goroutine per shepherd with best-effort CPU pinning.
package shepherd
