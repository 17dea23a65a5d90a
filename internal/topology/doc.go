// File: internal/topology/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Locality topology discovery for shepherd placement. Providers expose a
// hierarchical tree of locality groups (static in-memory trees, YAML files,
// or Linux sysfs NUMA nodes). The walker flattens the tree into an ordered
// list of CPU groups and the estimator derives default shepherd and worker
// counts from it.
//
// All operations here run once during runtime startup from a single
// goroutine; results are plain values, safe to share read-only afterward.
package topology
