// Package csr provides the compressed-sparse-row graph representation
// consumed by the BFS kernels.
//
// A Graph stores, for n nodes, n+1 monotonically non-decreasing row offsets
// starting at zero and a flat column array; the neighbors of node i are
// ColIndices[RowOffsets[i]:RowOffsets[i+1]]. Graphs are immutable once built.
package csr

import (
	"errors"
	"fmt"
)

// NodeID identifies a node within one graph, in [0, NumNodes).
type NodeID = int32

// InvalidNode marks a parent slot that has not been assigned yet.
const InvalidNode NodeID = -1

// Unreached marks a distance slot of a node not reached from the source.
const Unreached int32 = -1

var (
	// ErrInvalidOffsets is returned when row offsets are empty, do not start
	// at zero, or decrease.
	ErrInvalidOffsets = errors.New("csr: invalid row offsets")

	// ErrEdgeOutOfRange is returned when a column index is not a valid node.
	ErrEdgeOutOfRange = errors.New("csr: column index out of range")

	// ErrNodeOutOfRange is returned when an edge endpoint is not a valid node.
	ErrNodeOutOfRange = errors.New("csr: node out of range")

	// ErrEdgeCountMismatch is returned when the last row offset does not
	// match the number of column indices.
	ErrEdgeCountMismatch = errors.New("csr: edge count mismatch")
)

// Graph is a directed graph in CSR form.
type Graph struct {
	rowOffsets []int64
	colIndices []NodeID
}

// Edge is a directed (src, dst) pair used by FromEdges.
type Edge struct {
	Src NodeID
	Dst NodeID
}

// New validates and wraps the given arrays. The slices are copied so later
// changes by the caller cannot alter the graph.
func New(rowOffsets []int64, colIndices []NodeID) (*Graph, error) {
	g := &Graph{
		rowOffsets: append([]int64(nil), rowOffsets...),
		colIndices: append([]NodeID(nil), colIndices...),
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Empty returns a graph with zero nodes. Its offsets degenerate to [0].
func Empty() *Graph {
	return &Graph{rowOffsets: []int64{0}}
}

// Build creates a graph from an adjacency list in O(V+E), computing the row
// offsets with a prefix sum. Neighbor order is preserved.
func Build(adjacency [][]NodeID) (*Graph, error) {
	n := len(adjacency)
	offsets := make([]int64, n+1)
	for i, nbrs := range adjacency {
		offsets[i+1] = offsets[i] + int64(len(nbrs))
	}

	cols := make([]NodeID, offsets[n])
	for i, nbrs := range adjacency {
		copy(cols[offsets[i]:offsets[i+1]], nbrs)
	}

	g := &Graph{rowOffsets: offsets, colIndices: cols}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// FromEdges builds a graph with numNodes nodes from an edge list. Edges keep
// their input order within each source row.
func FromEdges(numNodes int, edges []Edge) (*Graph, error) {
	if numNodes < 0 {
		return nil, fmt.Errorf("%w: negative node count %d", ErrNodeOutOfRange, numNodes)
	}

	// Counting pass, then prefix sum.
	offsets := make([]int64, numNodes+1)
	for _, e := range edges {
		if e.Src < 0 || int(e.Src) >= numNodes || e.Dst < 0 || int(e.Dst) >= numNodes {
			return nil, fmt.Errorf("%w: edge (%d,%d) with %d nodes", ErrNodeOutOfRange, e.Src, e.Dst, numNodes)
		}
		offsets[e.Src+1]++
	}
	for i := 1; i <= numNodes; i++ {
		offsets[i] += offsets[i-1]
	}

	cols := make([]NodeID, len(edges))
	next := make([]int64, numNodes)
	copy(next, offsets[:numNodes])
	for _, e := range edges {
		cols[next[e.Src]] = e.Dst
		next[e.Src]++
	}

	return &Graph{rowOffsets: offsets, colIndices: cols}, nil
}

// Validate checks the CSR invariants.
func (g *Graph) Validate() error {
	if len(g.rowOffsets) == 0 {
		return fmt.Errorf("%w: no offsets", ErrInvalidOffsets)
	}
	if g.rowOffsets[0] != 0 {
		return fmt.Errorf("%w: first offset is %d", ErrInvalidOffsets, g.rowOffsets[0])
	}
	for i := 1; i < len(g.rowOffsets); i++ {
		if g.rowOffsets[i] < g.rowOffsets[i-1] {
			return fmt.Errorf("%w: offset %d decreases (%d < %d)", ErrInvalidOffsets, i, g.rowOffsets[i], g.rowOffsets[i-1])
		}
	}
	if last := g.rowOffsets[len(g.rowOffsets)-1]; last != int64(len(g.colIndices)) {
		return fmt.Errorf("%w: last offset %d, %d column indices", ErrEdgeCountMismatch, last, len(g.colIndices))
	}

	n := g.NumNodes()
	for i, c := range g.colIndices {
		if c < 0 || int(c) >= n {
			return fmt.Errorf("%w: col_indices[%d] = %d with %d nodes", ErrEdgeOutOfRange, i, c, n)
		}
	}
	return nil
}

// NumNodes returns the number of nodes.
func (g *Graph) NumNodes() int {
	return len(g.rowOffsets) - 1
}

// NumEdges returns the number of directed edges.
func (g *Graph) NumEdges() int {
	return len(g.colIndices)
}

// RowOffsets returns the row offsets. The slice must not be modified.
func (g *Graph) RowOffsets() []int64 {
	return g.rowOffsets
}

// ColIndices returns the column indices. The slice must not be modified.
func (g *Graph) ColIndices() []NodeID {
	return g.colIndices
}

// Neighbors returns the out-neighbors of node u in CSR order.
func (g *Graph) Neighbors(u NodeID) []NodeID {
	return g.colIndices[g.rowOffsets[u]:g.rowOffsets[u+1]]
}

// Degree returns the out-degree of node u.
func (g *Graph) Degree(u NodeID) int {
	return int(g.rowOffsets[u+1] - g.rowOffsets[u])
}

// HasEdge reports whether the edge src->dst exists.
func (g *Graph) HasEdge(src, dst NodeID) bool {
	for _, v := range g.Neighbors(src) {
		if v == dst {
			return true
		}
	}
	return false
}

// Adjacency expands the graph back into an adjacency list.
func (g *Graph) Adjacency() [][]NodeID {
	adj := make([][]NodeID, g.NumNodes())
	for u := range adj {
		nbrs := g.Neighbors(NodeID(u))
		adj[u] = make([]NodeID, len(nbrs))
		copy(adj[u], nbrs)
	}
	return adj
}
