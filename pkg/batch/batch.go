// Package batch packs many CSR graphs into the buffer layouts a single kernel
// dispatch consumes.
//
// Two layouts are supported. The compressed layout concatenates every graph
// into one shared row-offset array, one shared column array and one result
// buffer addressed through nodes_offset. Row offsets are rebased into the
// shared edge array while column indices stay local to their own graph, so a
// kernel working on graph g reads a neighbor id v and touches result slot
// nodes_offset[g]+v. The vectorized layout keeps every graph in its own
// buffers and is bounded by MaxParallelGraphs per dispatch.
//
// Building a batch never mutates the input graphs.
package batch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dd0wney/cluso-bfs/pkg/csr"
)

// MaxParallelGraphs bounds how many graphs one vectorized dispatch can bind.
const MaxParallelGraphs = 8

var (
	// ErrEmptyBatch is returned when a batch is built from no graphs or
	// from a nil graph.
	ErrEmptyBatch = errors.New("batch: no graphs")

	// ErrTooManyGraphs is returned when a vectorized batch exceeds
	// MaxParallelGraphs.
	ErrTooManyGraphs = errors.New("batch: too many graphs for one dispatch")

	// ErrResultSize is returned when result buffers do not match the batch
	// geometry.
	ErrResultSize = errors.New("batch: result buffer size mismatch")
)

// Layout selects how graphs are laid out for a dispatch.
type Layout int

const (
	// Compressed packs all graphs into one set of shared buffers.
	Compressed Layout = iota
	// Vectorized binds one set of buffers per graph.
	Vectorized
)

// String returns the layout name used in configuration files and flags.
func (l Layout) String() string {
	switch l {
	case Compressed:
		return "compressed"
	case Vectorized:
		return "vectorized"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// ParseLayout parses a layout name.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "compressed", "":
		return Compressed, nil
	case "vectorized":
		return Vectorized, nil
	default:
		return Compressed, fmt.Errorf("batch: unknown layout %q", s)
	}
}

// Segment is the view a thread group gets of its graph. Neighbors of local
// node u are ColIndices[RowOffsets[u]:RowOffsets[u+1]], and the result slot
// of local node u is NodeBase+u in result buffer Buffer.
type Segment struct {
	RowOffsets []int64
	ColIndices []csr.NodeID
	NodeBase   int
	NodeCount  int
	Buffer     int
}

// Neighbors returns the graph-local neighbor ids of local node u.
func (s Segment) Neighbors(u csr.NodeID) []csr.NodeID {
	return s.ColIndices[s.RowOffsets[u]:s.RowOffsets[u+1]]
}

// Batch is an immutable packed set of graphs.
type Batch struct {
	layout      Layout
	graphs      []*csr.Graph
	nodesOffset []int64
	edgesOffset []int64

	// Compressed layout only.
	rowOffsets []int64
	colIndices []csr.NodeID
}

// New builds a batch in the requested layout.
func New(layout Layout, graphs []*csr.Graph) (*Batch, error) {
	switch layout {
	case Compressed:
		return Compress(graphs)
	case Vectorized:
		return Vectorize(graphs)
	default:
		return nil, fmt.Errorf("batch: unknown layout %v", layout)
	}
}

// Compress packs graphs into the compressed layout in O(sum E).
func Compress(graphs []*csr.Graph) (*Batch, error) {
	b, err := newIndex(Compressed, graphs)
	if err != nil {
		return nil, err
	}

	n := len(graphs)
	b.rowOffsets = make([]int64, 0, b.nodesOffset[n]+1)
	b.colIndices = make([]csr.NodeID, 0, b.edgesOffset[n])
	b.rowOffsets = append(b.rowOffsets, 0)
	for g, graph := range graphs {
		base := b.edgesOffset[g]
		// Drop each graph's leading zero; the previous graph's last offset
		// already stands in for it.
		for _, off := range graph.RowOffsets()[1:] {
			b.rowOffsets = append(b.rowOffsets, base+off)
		}
		b.colIndices = append(b.colIndices, graph.ColIndices()...)
	}
	return b, nil
}

// Vectorize binds up to MaxParallelGraphs graphs in their own buffers.
func Vectorize(graphs []*csr.Graph) (*Batch, error) {
	if len(graphs) > MaxParallelGraphs {
		return nil, fmt.Errorf("%w: %d graphs, limit %d", ErrTooManyGraphs, len(graphs), MaxParallelGraphs)
	}
	return newIndex(Vectorized, graphs)
}

func newIndex(layout Layout, graphs []*csr.Graph) (*Batch, error) {
	if len(graphs) == 0 {
		return nil, ErrEmptyBatch
	}

	b := &Batch{
		layout:      layout,
		graphs:      append([]*csr.Graph(nil), graphs...),
		nodesOffset: make([]int64, len(graphs)+1),
		edgesOffset: make([]int64, len(graphs)+1),
	}
	for g, graph := range graphs {
		if graph == nil {
			return nil, fmt.Errorf("%w: graph %d is nil", ErrEmptyBatch, g)
		}
		b.nodesOffset[g+1] = b.nodesOffset[g] + int64(graph.NumNodes())
		b.edgesOffset[g+1] = b.edgesOffset[g] + int64(graph.NumEdges())
	}
	return b, nil
}

// Layout returns the batch layout.
func (b *Batch) Layout() Layout { return b.layout }

// NumGraphs returns the number of graphs in the batch.
func (b *Batch) NumGraphs() int { return len(b.graphs) }

// Graph returns graph g.
func (b *Batch) Graph(g int) *csr.Graph { return b.graphs[g] }

// TotalNodes returns the node count summed over all graphs.
func (b *Batch) TotalNodes() int { return int(b.nodesOffset[len(b.graphs)]) }

// TotalEdges returns the edge count summed over all graphs.
func (b *Batch) TotalEdges() int { return int(b.edgesOffset[len(b.graphs)]) }

// NodesCount returns the node count of graph g.
func (b *Batch) NodesCount(g int) int { return b.graphs[g].NumNodes() }

// NodesOffset returns the node prefix sums (length NumGraphs+1).
func (b *Batch) NodesOffset() []int64 { return b.nodesOffset }

// EdgesOffset returns the edge prefix sums (length NumGraphs+1).
func (b *Batch) EdgesOffset() []int64 { return b.edgesOffset }

// RowOffsets returns the compressed row offsets, or nil for a vectorized
// batch.
func (b *Batch) RowOffsets() []int64 { return b.rowOffsets }

// ColIndices returns the compressed column indices, or nil for a vectorized
// batch.
func (b *Batch) ColIndices() []csr.NodeID { return b.colIndices }

// NumBuffers returns how many result buffers a dispatch binds.
func (b *Batch) NumBuffers() int {
	if b.layout == Compressed {
		return 1
	}
	return len(b.graphs)
}

// BufferSizes returns the slot count of every result buffer.
func (b *Batch) BufferSizes() []int {
	if b.layout == Compressed {
		return []int{b.TotalNodes()}
	}
	sizes := make([]int, len(b.graphs))
	for g, graph := range b.graphs {
		sizes[g] = graph.NumNodes()
	}
	return sizes
}

// Segment returns the view of graph g.
func (b *Batch) Segment(g int) Segment {
	count := b.graphs[g].NumNodes()
	if b.layout == Vectorized {
		return Segment{
			RowOffsets: b.graphs[g].RowOffsets(),
			ColIndices: b.graphs[g].ColIndices(),
			NodeCount:  count,
			Buffer:     g,
		}
	}
	base := b.nodesOffset[g]
	return Segment{
		RowOffsets: b.rowOffsets[base : base+int64(count)+1],
		ColIndices: b.colIndices,
		NodeBase:   int(base),
		NodeCount:  count,
	}
}

// SlotBase returns the buffer index and first slot of graph g.
func (b *Batch) SlotBase(g int) (buffer, base int) {
	if b.layout == Vectorized {
		return g, 0
	}
	return 0, int(b.nodesOffset[g])
}
