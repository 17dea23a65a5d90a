// Package pool
// Author: momentics <momentics@gmail.com>
//
// Concurrent object pooling for runtime control structures such as
// full/empty-bit barriers. Pools are safe for concurrent Get/Put from any
// number of shepherds.
package pool
