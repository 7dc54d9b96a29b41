// Package buffer provides reusable sample buffers and a pool for the
// per-line transforms applied across radar cubes. Transform workers gather
// one axis line into a pooled buffer, operate on it, and scatter the result
// back, so steady-state processing of a session allocates only its outputs.
package buffer
