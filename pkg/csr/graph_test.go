package csr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidGraph(t *testing.T) {
	g, err := New([]int64{0, 2, 3, 4, 5, 5}, []NodeID{1, 2, 3, 3, 4})
	require.NoError(t, err)

	assert.Equal(t, 5, g.NumNodes())
	assert.Equal(t, 5, g.NumEdges())
	assert.Equal(t, []NodeID{1, 2}, g.Neighbors(0))
	assert.Equal(t, 0, g.Degree(4))
	assert.True(t, g.HasEdge(2, 3))
	assert.False(t, g.HasEdge(3, 2))
}

func TestNewCopiesInput(t *testing.T) {
	offsets := []int64{0, 1, 1}
	cols := []NodeID{1}
	g, err := New(offsets, cols)
	require.NoError(t, err)

	cols[0] = 0
	offsets[1] = 0
	assert.Equal(t, []NodeID{1}, g.ColIndices())
	assert.Equal(t, []int64{0, 1, 1}, g.RowOffsets())
}

func TestNewRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		offsets []int64
		cols    []NodeID
		wantErr error
	}{
		{"no offsets", nil, nil, ErrInvalidOffsets},
		{"nonzero start", []int64{1, 1}, nil, ErrInvalidOffsets},
		{"decreasing", []int64{0, 2, 1}, []NodeID{0}, ErrInvalidOffsets},
		{"count mismatch", []int64{0, 1, 2}, []NodeID{1}, ErrEdgeCountMismatch},
		{"column too large", []int64{0, 1, 1}, []NodeID{2}, ErrEdgeOutOfRange},
		{"negative column", []int64{0, 1, 1}, []NodeID{-1}, ErrEdgeOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.offsets, tt.cols)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEmptyGraph(t *testing.T) {
	g := Empty()
	require.NoError(t, g.Validate())
	assert.Equal(t, 0, g.NumNodes())
	assert.Equal(t, []int64{0}, g.RowOffsets())
}

func TestBuildFromAdjacency(t *testing.T) {
	g, err := Build([][]NodeID{{1, 2}, {0}, {}})
	require.NoError(t, err)

	assert.Equal(t, []int64{0, 2, 3, 3}, g.RowOffsets())
	assert.Equal(t, []NodeID{1, 2, 0}, g.ColIndices())
	assert.Equal(t, [][]NodeID{{1, 2}, {0}, {}}, g.Adjacency())
}

func TestBuildRejectsOutOfRangeNeighbor(t *testing.T) {
	_, err := Build([][]NodeID{{5}})
	assert.ErrorIs(t, err, ErrEdgeOutOfRange)
}

func TestFromEdgesKeepsRowOrder(t *testing.T) {
	g, err := FromEdges(3, []Edge{{0, 2}, {1, 0}, {0, 1}})
	require.NoError(t, err)

	assert.Equal(t, []int64{0, 2, 3, 3}, g.RowOffsets())
	assert.Equal(t, []NodeID{2, 1, 0}, g.ColIndices())
}

func TestFromEdgesRejectsBadEndpoint(t *testing.T) {
	_, err := FromEdges(2, []Edge{{0, 2}})
	assert.ErrorIs(t, err, ErrNodeOutOfRange)

	_, err = FromEdges(-1, nil)
	assert.ErrorIs(t, err, ErrNodeOutOfRange)
}

func TestSymmetrize(t *testing.T) {
	g, err := Build([][]NodeID{{1}, {2}, {}})
	require.NoError(t, err)

	s := g.Symmetrize()
	require.NoError(t, s.Validate())
	assert.Equal(t, [][]NodeID{{1}, {2, 0}, {1}}, s.Adjacency())

	for u := 0; u < s.NumNodes(); u++ {
		for _, v := range s.Neighbors(NodeID(u)) {
			assert.True(t, s.HasEdge(v, NodeID(u)), "missing reverse of %d->%d", u, v)
		}
	}
}

func TestSymmetrizeKeepsSymmetricGraph(t *testing.T) {
	g, err := Build([][]NodeID{{1, 2}, {0, 2}, {0, 1}})
	require.NoError(t, err)

	s := g.Symmetrize()
	assert.Equal(t, g.RowOffsets(), s.RowOffsets())
	assert.Equal(t, g.ColIndices(), s.ColIndices())
}

func TestUndirectedFromEdges(t *testing.T) {
	edges := []Edge{{0, 1}, {2, 1}, {1, 0}, {2, 2}, {0, 1}}

	g, err := UndirectedFromEdges(3, edges)
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	// Reverse edges follow their forward edge in read order; repeats collapse.
	assert.Equal(t, [][]NodeID{{1}, {0, 2}, {1, 2}}, g.Adjacency())

	_, err = UndirectedFromEdges(2, []Edge{{0, 3}})
	assert.ErrorIs(t, err, ErrNodeOutOfRange)
}

func TestTranspose(t *testing.T) {
	g, err := Build([][]NodeID{{1, 2}, {2}, {}})
	require.NoError(t, err)

	tr := g.Transpose()
	require.NoError(t, tr.Validate())
	assert.Equal(t, [][]NodeID{{}, {0}, {0, 1}}, tr.Adjacency())
}
