// Package resource bounds the memory held by value regions.
//
// The bridge allocates engine-visible results from chunked regions whose
// sizes are derived from untrusted inputs (catalog parameter counts,
// foreign array extents). The controller gives those allocations a hard
// budget and a growth rate, turning a runaway declaration into an error
// instead of unbounded allocation.
package resource
