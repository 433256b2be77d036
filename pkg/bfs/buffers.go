package bfs

import (
	"fmt"

	"github.com/dd0wney/cluso-bfs/pkg/batch"
	"github.com/dd0wney/cluso-bfs/pkg/csr"
)

// Buffers hold the device-side traversal state of one run: a parent and a
// distance slot for every node of the batch, in as many buffers as the
// batch layout binds.
type Buffers struct {
	Parents   [][]int32
	Distances [][]int32
}

// NewBuffers allocates buffers shaped for b. Call Reset before a launch.
func NewBuffers(b *batch.Batch) *Buffers {
	sizes := b.BufferSizes()
	bufs := &Buffers{
		Parents:   make([][]int32, len(sizes)),
		Distances: make([][]int32, len(sizes)),
	}
	for i, n := range sizes {
		bufs.Parents[i] = make([]int32, n)
		bufs.Distances[i] = make([]int32, n)
	}
	return bufs
}

// Reset sets every slot to the sentinel and seeds each graph's source as
// self-parented at distance zero. sources holds one local node id per graph;
// graphs without nodes ignore theirs.
func (bufs *Buffers) Reset(b *batch.Batch, sources []csr.NodeID) error {
	if len(sources) != b.NumGraphs() {
		return fmt.Errorf("bfs: %d sources for %d graphs", len(sources), b.NumGraphs())
	}
	for i := range bufs.Parents {
		fill(bufs.Parents[i], csr.InvalidNode)
		fill(bufs.Distances[i], csr.Unreached)
	}

	for g, src := range sources {
		n := b.NodesCount(g)
		if n == 0 {
			continue
		}
		if src < 0 || int(src) >= n {
			return fmt.Errorf("bfs: source %d out of range for graph %d with %d nodes", src, g, n)
		}
		buf, base := b.SlotBase(g)
		bufs.Parents[buf][base+int(src)] = src
		bufs.Distances[buf][base+int(src)] = 0
	}
	return nil
}

func fill(s []int32, v int32) {
	for i := range s {
		s[i] = v
	}
}
