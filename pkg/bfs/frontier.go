package bfs

import (
	"fmt"
	"sync/atomic"

	"github.com/dd0wney/cluso-bfs/pkg/batch"
	"github.com/dd0wney/cluso-bfs/pkg/csr"
	"github.com/dd0wney/cluso-bfs/pkg/device"
	"github.com/dd0wney/cluso-bfs/pkg/pools"
)

// frontierQueue is one level of the frontier: capacity slots in local
// memory followed by an optional spill region in device memory.
type frontierQueue struct {
	local []int32
	spill []int32
}

func (q *frontierQueue) at(i int32) csr.NodeID {
	if int(i) < len(q.local) {
		return q.local[i]
	}
	return q.spill[int(i)-len(q.local)]
}

// put stores u at slot i. It reports false if the slot does not exist.
func (q *frontierQueue) put(i int32, u csr.NodeID) bool {
	if int(i) < len(q.local) {
		q.local[i] = u
		return true
	}
	j := int(i) - len(q.local)
	if j >= len(q.spill) {
		return false
	}
	q.spill[j] = u
	return true
}

// frontierLocal is the group-local state of the frontier kernel.
type frontierLocal struct {
	queues    [2]frontierQueue
	sizePrev  atomic.Int32
	sizeCurr  atomic.Int32
	spilled   atomic.Int32
	overflows bool
}

func frontierLocalBytes(capacity int) int {
	return 2*capacity*4 + 3*4
}

// frontierKernel expands an explicit frontier top-down. Each level the
// work-items stride over the previous frontier, claim unvisited neighbors
// and append them to the next frontier through an atomic slot counter.
func frontierKernel(b *batch.Batch, bufs *Buffers, sources []csr.NodeID, capacity int,
	policy OverflowPolicy, l *Launch) device.Kernel[frontierLocal] {
	return device.Kernel[frontierLocal]{
		Name:       "bfs_frontier",
		LocalBytes: func(int) int { return frontierLocalBytes(capacity) },
		Local: func(g int) *frontierLocal {
			local := &frontierLocal{overflows: policy == Fail}
			n := b.NodesCount(g)
			for i := range local.queues {
				local.queues[i].local = pools.GetNodes(capacity)
				// A level never holds more than n nodes.
				if policy == Spill && n > capacity {
					local.queues[i].spill = pools.GetNodes(n - capacity)
				}
			}
			return local
		},
		Release: func(g int, local *frontierLocal) {
			for i := range local.queues {
				pools.PutNodes(local.queues[i].local)
				pools.PutNodes(local.queues[i].spill)
			}
			l.Spills[g] = int(local.spilled.Load())
		},
		Run: func(it *device.Item, local *frontierLocal) {
			g := it.GroupID()
			v := viewOf(b, bufs, g)
			if v.seg.NodeCount == 0 {
				return
			}
			loc := int32(it.LocalID())
			width := int32(it.GroupWidth())

			if loc == 0 {
				local.queues[0].put(0, sources[g])
				local.sizePrev.Store(1)
				local.sizeCurr.Store(0)
			}
			it.Barrier()

			cur, next := &local.queues[0], &local.queues[1]
			level := int32(0)
			for {
				size := local.sizePrev.Load()
				if size == 0 {
					break
				}

				for i := loc; i < size; i += width {
					u := cur.at(i)
					for _, nbr := range v.seg.Neighbors(u) {
						if !v.discover(u, nbr, level+1) {
							continue
						}
						slot := local.sizeCurr.Add(1) - 1
						if int(slot) >= capacity {
							if local.overflows {
								it.Fail(fmt.Errorf("%w: graph %d level %d needs more than %d slots",
									ErrFrontierOverflow, g, level+1, capacity))
							}
							local.spilled.Add(1)
						}
						next.put(slot, nbr)
					}
				}

				it.Barrier()
				if loc == 0 {
					local.sizePrev.Store(local.sizeCurr.Load())
					local.sizeCurr.Store(0)
				}
				it.Barrier()

				cur, next = next, cur
				level++
			}

			// The last level expanded discovered nothing.
			if loc == 0 {
				l.Rounds[g] = int(level) - 1
			}
		},
	}
}
