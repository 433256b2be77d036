// Package graphgen generates random and fixed graphs for tests, benchmarks
// and the gen command.
package graphgen

import (
	"fmt"
	"math/rand/v2"

	"github.com/dd0wney/cluso-bfs/pkg/csr"
)

// GNP returns an undirected Erdős–Rényi G(n, p) graph. Every unordered pair
// {i, j}, i != j, is connected with probability p and stored in both
// directions. Nodes left without edges are dropped and the remaining ids are
// compacted, so the result may have fewer than n nodes.
func GNP(n int, p float64, seed uint64) (*csr.Graph, error) {
	if n < 0 {
		return nil, fmt.Errorf("graphgen: negative node count %d", n)
	}
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("graphgen: probability %v outside [0,1]", p)
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	adj := make([][]csr.NodeID, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < p {
				adj[i] = append(adj[i], csr.NodeID(j))
				adj[j] = append(adj[j], csr.NodeID(i))
			}
		}
	}

	remap := make([]csr.NodeID, n)
	kept := 0
	for i := range adj {
		if len(adj[i]) == 0 {
			remap[i] = csr.InvalidNode
			continue
		}
		remap[i] = csr.NodeID(kept)
		kept++
	}

	compact := make([][]csr.NodeID, 0, kept)
	for i := range adj {
		if remap[i] == csr.InvalidNode {
			continue
		}
		row := make([]csr.NodeID, len(adj[i]))
		for k, v := range adj[i] {
			row[k] = remap[v]
		}
		compact = append(compact, row)
	}
	return csr.Build(compact)
}

// Directed returns a random directed graph with n nodes where each ordered
// pair (i, j), i != j, is an edge with probability p. Isolated nodes are
// kept, which makes it suitable for exercising unreachable nodes.
func Directed(n int, p float64, seed uint64) *csr.Graph {
	rng := rand.New(rand.NewPCG(seed, ^seed))
	adj := make([][]csr.NodeID, n)
	for i := 0; i < n; i++ {
		adj[i] = []csr.NodeID{}
		for j := 0; j < n; j++ {
			if i != j && rng.Float64() < p {
				adj[i] = append(adj[i], csr.NodeID(j))
			}
		}
	}
	g, _ := csr.Build(adj)
	return g
}
