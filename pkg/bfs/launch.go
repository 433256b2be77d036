package bfs

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/dd0wney/cluso-bfs/pkg/batch"
	"github.com/dd0wney/cluso-bfs/pkg/csr"
	"github.com/dd0wney/cluso-bfs/pkg/device"
)

// Launch is one kernel dispatch in flight.
type Launch struct {
	Variant Variant
	Event   *device.Event

	// Rounds and Spills hold one entry per graph. They are valid once Wait
	// returned.
	Rounds []int
	Spills []int
}

// Wait blocks until the kernel completed.
func (l *Launch) Wait() error {
	return l.Event.Wait()
}

// Start prepares b for variant v and dispatches it. See Prepare and
// Prepared.Start.
func Start(ctx context.Context, q *device.Queue, v Variant, b *batch.Batch, bufs *Buffers,
	sources []csr.NodeID, groupWidth int, opts Options) (*Launch, error) {
	p, err := Prepare(v, b, opts)
	if err != nil {
		return nil, err
	}
	return p.Start(ctx, q, bufs, sources, groupWidth)
}

// Prepared is a batch bound to a variant with its host-side inputs built.
type Prepared struct {
	Variant Variant
	Batch   *batch.Batch

	opts Options
	// in is what the kernel traverses. For Mask on a directed batch it
	// holds the incoming edges.
	in *batch.Batch
}

// Prepare does the host work variant v needs before dispatch. For Mask
// without opts.Symmetric it transposes every graph.
func Prepare(v Variant, b *batch.Batch, opts Options) (*Prepared, error) {
	p := &Prepared{Variant: v, Batch: b, opts: opts, in: b}
	switch v {
	case Naive, Frontier:
	case Mask:
		if !opts.Symmetric {
			in, err := incoming(b)
			if err != nil {
				return nil, err
			}
			p.in = in
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownVariant, v)
	}
	return p, nil
}

// Start dispatches the prepared variant over every graph, one thread group
// of groupWidth work-items per graph. bufs must have been Reset with the
// same sources.
func (p *Prepared) Start(ctx context.Context, q *device.Queue, bufs *Buffers,
	sources []csr.NodeID, groupWidth int) (*Launch, error) {
	b := p.Batch
	if len(sources) != b.NumGraphs() {
		return nil, fmt.Errorf("bfs: %d sources for %d graphs", len(sources), b.NumGraphs())
	}

	l := &Launch{
		Variant: p.Variant,
		Rounds:  make([]int, b.NumGraphs()),
		Spills:  make([]int, b.NumGraphs()),
	}
	r := device.NDRange{Groups: b.NumGraphs(), GroupWidth: groupWidth}

	var err error
	switch p.Variant {
	case Naive:
		l.Event, err = device.Submit(ctx, q, r, naiveKernel(b, bufs, l))
	case Frontier:
		capacity := p.opts.FrontierCapacity
		if capacity <= 0 {
			capacity = groupWidth
		}
		l.Event, err = device.Submit(ctx, q, r, frontierKernel(b, bufs, sources, capacity, p.opts.Overflow, l))
	case Mask:
		l.Event, err = device.Submit(ctx, q, r, maskKernel(p.in, bufs, sources, l))
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// incoming returns b with every graph transposed, keeping the layout and
// node numbering.
func incoming(b *batch.Batch) (*batch.Batch, error) {
	graphs := make([]*csr.Graph, b.NumGraphs())
	for g := range graphs {
		graphs[g] = b.Graph(g).Transpose()
	}
	return batch.New(b.Layout(), graphs)
}

// view binds graph g's segment to its result slots.
type view struct {
	seg       batch.Segment
	parents   []int32
	distances []int32
}

func viewOf(b *batch.Batch, bufs *Buffers, g int) view {
	seg := b.Segment(g)
	return view{
		seg:       seg,
		parents:   bufs.Parents[seg.Buffer],
		distances: bufs.Distances[seg.Buffer],
	}
}

// slot returns the result index of local node u.
func (v view) slot(u csr.NodeID) int {
	return v.seg.NodeBase + int(u)
}

// discover claims neighbor n for level next on behalf of u. It reports
// whether this call was the one that moved n off the sentinel. Among all
// same-level predecessors the smallest id ends up as parent.
func (v view) discover(u, n csr.NodeID, next int32) bool {
	i := v.slot(n)
	claimed := false
	d := atomic.LoadInt32(&v.distances[i])
	if d == csr.Unreached {
		claimed = atomic.CompareAndSwapInt32(&v.distances[i], csr.Unreached, next)
		d = next
	}
	if d == next {
		setParentMin(&v.parents[i], u)
	}
	return claimed
}

// setParentMin lowers *p to u, treating the sentinel as empty.
func setParentMin(p *int32, u csr.NodeID) {
	for {
		cur := atomic.LoadInt32(p)
		if cur != csr.InvalidNode && cur <= u {
			return
		}
		if atomic.CompareAndSwapInt32(p, cur, u) {
			return
		}
	}
}
