package bfs

import (
	"sync/atomic"

	"github.com/dd0wney/cluso-bfs/pkg/batch"
	"github.com/dd0wney/cluso-bfs/pkg/csr"
	"github.com/dd0wney/cluso-bfs/pkg/device"
)

// naiveKernel scans the whole graph every level. Work-items stride over the
// nodes; a node on the current level relaxes its unvisited neighbors. The
// group stops once no work-item discovered anything.
func naiveKernel(b *batch.Batch, bufs *Buffers, l *Launch) device.Kernel[struct{}] {
	return device.Kernel[struct{}]{
		Name: "bfs_naive",
		Run: func(it *device.Item, _ *struct{}) {
			g := it.GroupID()
			v := viewOf(b, bufs, g)
			n := v.seg.NodeCount
			width := it.GroupWidth()

			level := int32(0)
			for {
				changed := false
				for u := it.LocalID(); u < n; u += width {
					node := csr.NodeID(u)
					if atomic.LoadInt32(&v.distances[v.slot(node)]) != level {
						continue
					}
					for _, nbr := range v.seg.Neighbors(node) {
						if v.discover(node, nbr, level+1) {
							changed = true
						}
					}
				}
				if !it.AnyOf(changed) {
					break
				}
				level++
			}

			if it.LocalID() == 0 {
				l.Rounds[g] = int(level)
			}
		},
	}
}
