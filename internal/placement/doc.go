// File: internal/placement/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Shepherd placement: assigns each shepherd a home CPU and locality from the
// walked topology, builds the inter-shepherd distance matrix and ranks each
// shepherd's peers nearest first for locality-aware work distribution.
//
// A Placement is built once at startup and is immutable afterward; it may be
// read concurrently by every shepherd without locking.
package placement
