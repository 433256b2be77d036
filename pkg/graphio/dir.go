package graphio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dd0wney/cluso-bfs/pkg/csr"
)

// BinaryExt is the file extension of the binary format.
const BinaryExt = ".csrz"

// NamedGraph is a graph loaded from a file.
type NamedGraph struct {
	Path  string
	Graph *csr.Graph
}

// ReadFile loads path, choosing the format by extension: .csrz is binary,
// .osm and .osm.pbf are OSM extracts, anything else is text. With undirected
// set the result is symmetric whatever the format.
func ReadFile(path string, undirected bool) (*csr.Graph, error) {
	return readFile(context.Background(), path, undirected)
}

func readFile(ctx context.Context, path string, undirected bool) (*csr.Graph, error) {
	switch {
	case strings.EqualFold(filepath.Ext(path), BinaryExt):
		g, err := ReadBinary(path)
		if err != nil || !undirected {
			return g, err
		}
		return g.Symmetrize(), nil
	case isOSM(path):
		return ReadOSMFile(ctx, path, undirected)
	default:
		return ReadTextFile(path, undirected)
	}
}

// ReadDir loads every regular file of dir concurrently, at most limit at a
// time (limit <= 0 means no limit). Graphs are returned sorted by file name.
func ReadDir(ctx context.Context, dir string, undirected bool, limit int) ([]NamedGraph, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.Type().IsRegular() && !strings.HasPrefix(e.Name(), ".") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, fmt.Errorf("%s: no graph files", dir)
	}

	graphs := make([]NamedGraph, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			graph, err := readFile(ctx, path, undirected)
			if err != nil {
				return err
			}
			graphs[i] = NamedGraph{Path: path, Graph: graph}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return graphs, nil
}
