package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-bfs/pkg/csr"
	"github.com/dd0wney/cluso-bfs/pkg/graphgen"
)

// Diamond: 0->1, 0->2, 1->3, 2->3, 3->4.
var (
	diamondParents   = []int32{0, 0, 0, 1, 3}
	diamondDistances = []int32{0, 1, 1, 2, 3}
)

func TestTreeValid(t *testing.T) {
	g := graphgen.Diamond()

	r, err := Tree(g, 0, diamondParents, diamondDistances)
	require.NoError(t, err)
	assert.Equal(t, 5, r.Reached)
	assert.Equal(t, 3, r.Depth)
	assert.Empty(t, r.Unreached)

	// The other predecessor of node 3 is just as valid.
	r, err = Tree(g, 0, []int32{0, 0, 0, 2, 3}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Depth)
}

func TestTreeUnreached(t *testing.T) {
	g := graphgen.Diamond()

	r, err := Tree(g, 3, []int32{-1, -1, -1, 3, 3}, []int32{-1, -1, -1, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Reached)
	assert.Equal(t, []csr.NodeID{0, 1, 2}, r.Unreached)
}

func TestTreeErrors(t *testing.T) {
	g := graphgen.Diamond()

	tests := []struct {
		name      string
		parents   []int32
		distances []int32
		want      error
	}{
		{"short parents", []int32{0, 0}, nil, ErrLength},
		{"short distances", diamondParents, []int32{0}, ErrLength},
		{"root not self-parented", []int32{1, 0, 0, 1, 3}, nil, ErrRoot},
		{"missing parent edge", []int32{0, 0, 0, 0, 3}, nil, ErrParentEdge},
		{"parent out of range", []int32{0, 0, 0, 9, 3}, nil, csr.ErrNodeOutOfRange},
		{"wrong distance", diamondParents, []int32{0, 1, 1, 3, 4}, ErrDistance},
		{"sentinel disagreement", diamondParents, []int32{0, 1, 1, 2, -1}, ErrSentinel},
		{"unvisited reachable node", []int32{0, 0, 0, 1, -1}, nil, ErrDistance},
		{"chain into unreached node", []int32{0, -1, 0, 1, 3}, nil, ErrLoop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tree(g, 0, tt.parents, tt.distances)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTreeLoop(t *testing.T) {
	g := graphgen.Triangle()

	// 1 and 2 point at each other and never reach the root.
	_, err := Tree(g, 0, []int32{0, 2, 1}, nil)
	assert.ErrorIs(t, err, ErrLoop)
}

func TestTreeNotShortest(t *testing.T) {
	// 0->1->2 plus the shortcut 0->2.
	g, err := csr.Build([][]csr.NodeID{{1, 2}, {2}, {}})
	require.NoError(t, err)

	_, err = Tree(g, 0, []int32{0, 0, 1}, []int32{0, 1, 2})
	assert.ErrorIs(t, err, ErrDistance)
}

func TestTreeEmptyGraph(t *testing.T) {
	r, err := Tree(csr.Empty(), 0, []int32{}, nil)
	require.NoError(t, err)
	assert.Zero(t, r.Reached)
}

func TestCompare(t *testing.T) {
	assert.NoError(t, Compare(diamondParents, diamondDistances, []int32{0, 0, 0, 2, 3}, diamondDistances))
	assert.NoError(t, Compare(diamondParents, nil, diamondParents, diamondDistances))

	assert.ErrorIs(t, Compare(diamondParents, nil, diamondParents[:3], nil), ErrLength)
	assert.ErrorIs(t, Compare(diamondParents, nil, []int32{0, 0, 0, 1, -1}, nil), ErrMismatch)
	assert.ErrorIs(t, Compare(diamondParents, diamondDistances, diamondParents, []int32{0, 1, 1, 2, 4}), ErrMismatch)
}
