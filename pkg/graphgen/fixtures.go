package graphgen

import "github.com/dd0wney/cluso-bfs/pkg/csr"

func mustBuild(adj [][]csr.NodeID) *csr.Graph {
	g, err := csr.Build(adj)
	if err != nil {
		panic(err)
	}
	return g
}

// Diamond is the five node graph 0->{1,2}, 1->3, 2->3, 3->4.
func Diamond() *csr.Graph {
	return mustBuild([][]csr.NodeID{{1, 2}, {3}, {3}, {4}, {}})
}

// Triangle is the directed cycle 0->1->2->0 with the reverse edges added.
func Triangle() *csr.Graph {
	return mustBuild([][]csr.NodeID{{1, 2}, {2, 0}, {0, 1}})
}

// Path returns the directed path 0->1->...->n-1.
func Path(n int) *csr.Graph {
	adj := make([][]csr.NodeID, n)
	for i := range adj {
		adj[i] = []csr.NodeID{}
		if i+1 < n {
			adj[i] = append(adj[i], csr.NodeID(i+1))
		}
	}
	return mustBuild(adj)
}

// Star returns a graph where node 0 points to every other node.
func Star(n int) *csr.Graph {
	adj := make([][]csr.NodeID, n)
	for i := range adj {
		adj[i] = []csr.NodeID{}
	}
	for i := 1; i < n; i++ {
		adj[0] = append(adj[0], csr.NodeID(i))
	}
	return mustBuild(adj)
}

// Single returns a one-node graph with no edges.
func Single() *csr.Graph {
	return mustBuild([][]csr.NodeID{{}})
}
