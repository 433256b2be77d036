package bfs

import (
	"sync/atomic"

	"github.com/dd0wney/cluso-bfs/pkg/batch"
	"github.com/dd0wney/cluso-bfs/pkg/csr"
	"github.com/dd0wney/cluso-bfs/pkg/device"
	"github.com/dd0wney/cluso-bfs/pkg/pools"
)

const wordBits = 64

// maskLocal is the group-local state of the mask kernel.
type maskLocal struct {
	frontier []uint64
	next     []uint64
	running  atomic.Uint32
}

func maskWords(n int) int {
	return (n + wordBits - 1) / wordBits
}

func maskLocalBytes(n int) int {
	return 2*maskWords(n)*8 + 4
}

func hasBit(words []uint64, u csr.NodeID) bool {
	return words[u/wordBits]&(1<<(uint(u)%wordBits)) != 0
}

// maskKernel runs the bottom-up traversal. in holds the incoming adjacency
// of every graph; result slots are addressed through the same batch layout
// as the outgoing graphs.
func maskKernel(in *batch.Batch, bufs *Buffers, sources []csr.NodeID, l *Launch) device.Kernel[maskLocal] {
	return device.Kernel[maskLocal]{
		Name:       "bfs_mask",
		LocalBytes: func(g int) int { return maskLocalBytes(in.NodesCount(g)) },
		Local: func(g int) *maskLocal {
			words := maskWords(in.NodesCount(g))
			return &maskLocal{
				frontier: pools.GetWords(words),
				next:     pools.GetWords(words),
			}
		},
		Release: func(_ int, local *maskLocal) {
			pools.PutWords(local.frontier)
			pools.PutWords(local.next)
		},
		Run: func(it *device.Item, local *maskLocal) {
			g := it.GroupID()
			v := viewOf(in, bufs, g)
			n := v.seg.NodeCount
			if n == 0 {
				return
			}
			loc := it.LocalID()
			width := it.GroupWidth()
			words := len(local.next)

			if loc == 0 {
				src := sources[g]
				local.next[src/wordBits] |= 1 << (uint(src) % wordBits)
				local.running.Store(1)
			}
			it.Barrier()

			level := int32(0)
			for local.running.Load() != 0 {
				for w := loc; w < words; w += width {
					local.frontier[w] = local.next[w]
					local.next[w] = 0
				}
				it.Barrier()

				// Only the owner of u writes u's slots.
				for u := loc; u < n; u += width {
					node := csr.NodeID(u)
					i := v.slot(node)
					if v.parents[i] != csr.InvalidNode {
						continue
					}
					for _, nbr := range v.seg.Neighbors(node) {
						if !hasBit(local.frontier, nbr) {
							continue
						}
						v.parents[i] = nbr
						v.distances[i] = level + 1
						atomic.OrUint64(&local.next[u/wordBits], 1<<(uint(u)%wordBits))
						break
					}
				}
				if loc == 0 {
					local.running.Store(0)
				}
				it.Barrier()

				for w := loc; w < words; w += width {
					if atomic.LoadUint64(&local.next[w]) != 0 {
						local.running.Store(1)
						break
					}
				}
				it.Barrier()
				level++
			}

			// The last level scanned discovered nothing.
			if loc == 0 {
				l.Rounds[g] = int(level) - 1
			}
		},
	}
}
