package csr

// Symmetrize returns the undirected closure of g: for every edge u->v the
// edge v->u is present as well. Existing edges are kept in their original
// order and missing reverse edges are appended to each row, so a graph that
// is already symmetric comes back unchanged.
func (g *Graph) Symmetrize() *Graph {
	n := g.NumNodes()
	adj := g.Adjacency()

	present := make([]map[NodeID]struct{}, n)
	for u := range adj {
		present[u] = make(map[NodeID]struct{}, len(adj[u]))
		for _, v := range adj[u] {
			present[u][v] = struct{}{}
		}
	}

	for u := 0; u < n; u++ {
		for _, v := range g.Neighbors(NodeID(u)) {
			if _, ok := present[v][NodeID(u)]; !ok {
				adj[v] = append(adj[v], NodeID(u))
				present[v][NodeID(u)] = struct{}{}
			}
		}
	}

	// Build cannot fail: every id came from a valid graph.
	out, _ := Build(adj)
	return out
}

// Transpose returns the graph with every edge reversed.
func (g *Graph) Transpose() *Graph {
	n := g.NumNodes()
	offsets := make([]int64, n+1)
	for _, v := range g.colIndices {
		offsets[v+1]++
	}
	for i := 1; i <= n; i++ {
		offsets[i] += offsets[i-1]
	}

	cols := make([]NodeID, len(g.colIndices))
	next := make([]int64, n)
	copy(next, offsets[:n])
	for u := 0; u < n; u++ {
		for _, v := range g.Neighbors(NodeID(u)) {
			cols[next[v]] = NodeID(u)
			next[v]++
		}
	}
	return &Graph{rowOffsets: offsets, colIndices: cols}
}

// UndirectedFromEdges builds the undirected graph of an edge list. Each input
// edge u->v contributes v to u's row and then u to v's row, in input order,
// so rows interleave forward and reverse edges the way they were read.
// Repeated edges are kept once.
func UndirectedFromEdges(numNodes int, edges []Edge) (*Graph, error) {
	seen := make(map[Edge]struct{}, 2*len(edges))
	both := make([]Edge, 0, 2*len(edges))
	add := func(e Edge) {
		if _, ok := seen[e]; ok {
			return
		}
		seen[e] = struct{}{}
		both = append(both, e)
	}
	for _, e := range edges {
		add(e)
		add(Edge{Src: e.Dst, Dst: e.Src})
	}
	return FromEdges(numNodes, both)
}
