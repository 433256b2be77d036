// Package verify checks BFS results.
//
// Tree validates a parent array (and optionally a distance array) against
// the graph it was computed on. Compare checks that two results describe
// the same BFS layering, which is what every kernel must agree on; parents
// may legitimately differ between kernels that pick different predecessors.
package verify

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-bfs/pkg/csr"
)

var (
	// ErrLength is returned when a result array does not cover every node.
	ErrLength = errors.New("verify: result length mismatch")

	// ErrRoot is returned when the source is not its own parent or does not
	// sit at distance 0.
	ErrRoot = errors.New("verify: source is not the root")

	// ErrParentEdge is returned when a node's parent has no edge to it.
	ErrParentEdge = errors.New("verify: parent edge missing")

	// ErrDistance is returned when a distance is not its parent's plus one,
	// or a reached node has an edge that would give a shorter path.
	ErrDistance = errors.New("verify: inconsistent distance")

	// ErrLoop is returned when following parents never reaches the source.
	ErrLoop = errors.New("verify: parent loop")

	// ErrSentinel is returned when a node is reached in one array and
	// unreached in the other.
	ErrSentinel = errors.New("verify: inconsistent sentinel")

	// ErrMismatch is returned by Compare for differing layerings.
	ErrMismatch = errors.New("verify: results differ")
)

// Report summarizes a checked tree.
type Report struct {
	Reached   int
	Depth     int
	Unreached []csr.NodeID
}

// Tree checks that parents describes a BFS tree of g rooted at source.
// distances may be nil, in which case depths are derived from the parent
// chains and only tree structure is checked.
func Tree(g *csr.Graph, source csr.NodeID, parents, distances []int32) (Report, error) {
	n := g.NumNodes()
	if len(parents) != n {
		return Report{}, fmt.Errorf("%w: %d parents for %d nodes", ErrLength, len(parents), n)
	}
	if distances != nil && len(distances) != n {
		return Report{}, fmt.Errorf("%w: %d distances for %d nodes", ErrLength, len(distances), n)
	}
	if n == 0 {
		return Report{}, nil
	}
	if source < 0 || int(source) >= n {
		return Report{}, fmt.Errorf("%w: source %d with %d nodes", csr.ErrNodeOutOfRange, source, n)
	}
	if parents[source] != source {
		return Report{}, fmt.Errorf("%w: parent[%d] = %d", ErrRoot, source, parents[source])
	}

	var r Report
	for v := 0; v < n; v++ {
		p := parents[v]
		reached := p != csr.InvalidNode
		if distances != nil && reached != (distances[v] != csr.Unreached) {
			return r, fmt.Errorf("%w: node %d has parent %d and distance %d", ErrSentinel, v, p, distances[v])
		}
		if !reached {
			r.Unreached = append(r.Unreached, csr.NodeID(v))
			continue
		}
		r.Reached++
		if csr.NodeID(v) == source {
			continue
		}
		if p < 0 || int(p) >= n {
			return r, fmt.Errorf("%w: parent[%d] = %d", csr.ErrNodeOutOfRange, v, p)
		}
		if !g.HasEdge(p, csr.NodeID(v)) {
			return r, fmt.Errorf("%w: %d -> %d", ErrParentEdge, p, v)
		}
	}

	depth, err := depths(parents, source)
	if err != nil {
		return r, err
	}
	for v, d := range depth {
		r.Depth = max(r.Depth, int(d))
		if distances != nil && d != csr.Unreached && distances[v] != d {
			return r, fmt.Errorf("%w: node %d at distance %d, parent chain length %d", ErrDistance, v, distances[v], d)
		}
	}

	// A BFS tree is also shortest: no edge may skip a level.
	for u := 0; u < n; u++ {
		if depth[u] == csr.Unreached {
			continue
		}
		for _, v := range g.Neighbors(csr.NodeID(u)) {
			if depth[v] == csr.Unreached || depth[v] > depth[u]+1 {
				return r, fmt.Errorf("%w: edge %d -> %d leaves node %d at %d, reachable at %d",
					ErrDistance, u, v, v, depth[v], depth[u]+1)
			}
		}
	}
	return r, nil
}

// depths returns the parent-chain length of every reached node, failing on
// chains that never reach the root.
func depths(parents []int32, source csr.NodeID) ([]int32, error) {
	const (
		unseen = iota
		onPath
		done
	)
	n := len(parents)
	state := make([]uint8, n)
	depth := make([]int32, n)
	for i := range depth {
		depth[i] = csr.Unreached
	}
	state[source] = done
	depth[source] = 0

	var path []int32
	for v := 0; v < n; v++ {
		if parents[v] == csr.InvalidNode || state[v] == done {
			continue
		}
		path = path[:0]
		u := int32(v)
		for state[u] == unseen {
			if parents[u] == csr.InvalidNode {
				return nil, fmt.Errorf("%w: chain from %d reaches unreached node %d", ErrLoop, v, u)
			}
			state[u] = onPath
			path = append(path, u)
			u = parents[u]
		}
		if state[u] == onPath {
			return nil, fmt.Errorf("%w: node %d is its own ancestor", ErrLoop, u)
		}
		d := depth[u]
		for i := len(path) - 1; i >= 0; i-- {
			d++
			depth[path[i]] = d
			state[path[i]] = done
		}
	}
	return depth, nil
}

// Compare checks that two results reach the same nodes at the same
// distances. Either distances slice may be nil; reachability is then taken
// from the parents alone.
func Compare(wantParents, wantDistances, gotParents, gotDistances []int32) error {
	if len(wantParents) != len(gotParents) {
		return fmt.Errorf("%w: %d vs %d nodes", ErrLength, len(wantParents), len(gotParents))
	}
	for v := range wantParents {
		wr := wantParents[v] != csr.InvalidNode
		gr := gotParents[v] != csr.InvalidNode
		if wr != gr {
			return fmt.Errorf("%w: node %d reached=%t, want %t", ErrMismatch, v, gr, wr)
		}
		if wantDistances != nil && gotDistances != nil && wantDistances[v] != gotDistances[v] {
			return fmt.Errorf("%w: node %d at distance %d, want %d", ErrMismatch, v, gotDistances[v], wantDistances[v])
		}
	}
	return nil
}
