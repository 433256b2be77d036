package graphio

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"

	"github.com/dd0wney/cluso-bfs/pkg/csr"
)

// OSM file extensions.
const (
	OSMXMLExt = ".osm"
	OSMPBFExt = ".osm.pbf"
)

// osmScanner is the common surface of the osmxml and osmpbf scanners.
type osmScanner interface {
	Scan() bool
	Object() osm.Object
	Err() error
	Close() error
}

// isOSM reports whether path names an OSM extract.
func isOSM(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, OSMPBFExt) || strings.HasSuffix(lower, OSMXMLExt)
}

// ReadOSMFile builds a road graph from an OSM extract (.osm or .osm.pbf).
func ReadOSMFile(ctx context.Context, path string, undirected bool) (*csr.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var scanner osmScanner
	if strings.HasSuffix(strings.ToLower(path), OSMPBFExt) {
		pbf := osmpbf.New(ctx, f, 1)
		pbf.SkipNodes = true
		pbf.SkipRelations = true
		scanner = pbf
	} else {
		scanner = osmxml.New(ctx, f)
	}

	g, err := readOSM(scanner, undirected)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// ReadOSM builds a road graph from OSM XML. Nodes are the OSM nodes
// referenced by highway ways, numbered in order of first reference; each way
// contributes an edge between consecutive nodes in its travel directions.
func ReadOSM(ctx context.Context, r io.Reader, undirected bool) (*csr.Graph, error) {
	return readOSM(osmxml.New(ctx, r), undirected)
}

func readOSM(scanner osmScanner, undirected bool) (*csr.Graph, error) {
	defer scanner.Close()

	ids := make(map[osm.NodeID]csr.NodeID)
	local := func(id osm.NodeID) csr.NodeID {
		if n, ok := ids[id]; ok {
			return n
		}
		n := csr.NodeID(len(ids))
		ids[id] = n
		return n
	}

	var edges []csr.Edge
	for scanner.Scan() {
		w, ok := scanner.Object().(*osm.Way)
		if !ok || !isRoad(w.Tags) || len(w.Nodes) < 2 {
			continue
		}
		fwd, bwd := directions(w.Tags)
		for i := 0; i+1 < len(w.Nodes); i++ {
			from, to := local(w.Nodes[i].ID), local(w.Nodes[i+1].ID)
			if from == to {
				continue
			}
			if fwd {
				edges = append(edges, csr.Edge{Src: from, Dst: to})
			}
			if bwd {
				edges = append(edges, csr.Edge{Src: to, Dst: from})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	g, err := csr.FromEdges(len(ids), edges)
	if err != nil {
		return nil, err
	}
	if undirected {
		g = g.Symmetrize()
	}
	return g, nil
}

// isRoad reports whether a way is part of the road network.
func isRoad(tags osm.Tags) bool {
	if tags.Find("highway") == "" {
		return false
	}
	// Area highways are plazas, not links.
	return tags.Find("area") != "yes"
}

// directions returns the travel directions of a way relative to its node
// order.
func directions(tags osm.Tags) (forward, backward bool) {
	forward, backward = true, true

	hw := tags.Find("highway")
	if hw == "motorway" || hw == "motorway_link" || tags.Find("junction") == "roundabout" {
		backward = false
	}

	switch tags.Find("oneway") {
	case "yes", "true", "1":
		forward, backward = true, false
	case "-1", "reverse":
		forward, backward = false, true
	case "no":
		forward, backward = true, true
	case "reversible":
		forward, backward = false, false
	}
	return forward, backward
}
