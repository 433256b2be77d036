// Package pools provides object pooling for reducing GC pressure.
//
// Kernels allocate group-local scratch memory once per thread group per
// dispatch. Benchmarks run the same batch many times, so the scratch slices
// are pooled by size class:
//
//   - Words: uint64 slices backing frontier bitmasks
//   - Nodes: int32 slices backing frontier queues
package pools
