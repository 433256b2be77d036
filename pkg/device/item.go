package device

import "sync/atomic"

// group is the shared execution state of one thread group.
type group struct {
	id    int
	width int
	bar   *barrier
	votes [2]atomic.Int32
}

func newGroup(id, width int) *group {
	return &group{id: id, width: width, bar: newBarrier(width)}
}

// Item is one work-item. An Item must only be used by the goroutine it was
// handed to.
type Item struct {
	grp        *group
	local      int
	reductions int
}

// LocalID returns the index of the work-item within its group.
func (it *Item) LocalID() int { return it.local }

// GroupID returns the index of the group within the nd-range.
func (it *Item) GroupID() int { return it.grp.id }

// GroupWidth returns the number of work-items in the group.
func (it *Item) GroupWidth() int { return it.grp.width }

// Barrier blocks until every work-item of the group reached it. All memory
// writes made before the barrier are visible to every work-item after it.
func (it *Item) Barrier() {
	if !it.grp.bar.wait() {
		panic(errBarrierBroken)
	}
}

// AnyOf reports whether pred is true for at least one work-item of the
// group. Every work-item must call it; it implies a barrier.
func (it *Item) AnyOf(pred bool) bool {
	slot := &it.grp.votes[it.reductions&1]
	it.reductions++

	if pred {
		slot.Add(1)
	}
	it.Barrier()
	result := slot.Load() > 0
	it.Barrier()
	// Alternating slots keep this reset ahead of the next use of the slot.
	if it.local == 0 {
		slot.Store(0)
	}
	return result
}

// Fail aborts the group with err. It does not return.
func (it *Item) Fail(err error) {
	panic(abort{err: err})
}
