// Package graphio loads graphs from disk and writes them back.
//
// The text format is a node count followed by whitespace-separated
// "src dst" pairs, one directed edge per pair:
//
//	5
//	0 1
//	0 2
//	1 3
//
// The binary format (.csrz) stores the CSR arrays directly, snappy
// compressed behind a fixed header with a CRC32 checksum, and is read
// through a memory map. OpenStreetMap extracts load as road graphs.
package graphio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dd0wney/cluso-bfs/pkg/csr"
)

var (
	// ErrBadHeader is returned when a binary file has the wrong magic,
	// version or geometry.
	ErrBadHeader = errors.New("graphio: bad header")

	// ErrChecksum is returned when a binary payload does not match its
	// checksum.
	ErrChecksum = errors.New("graphio: checksum mismatch")

	// ErrFormat is returned for malformed text input.
	ErrFormat = errors.New("graphio: malformed input")
)

// ReadText parses the text format. With undirected set every edge is also
// added in reverse, right after the edge itself in its target's row.
func ReadText(r io.Reader, undirected bool) (*csr.Graph, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	next := func() (int64, bool, error) {
		if !sc.Scan() {
			return 0, false, sc.Err()
		}
		v, err := strconv.ParseInt(sc.Text(), 10, 32)
		if err != nil {
			return 0, false, fmt.Errorf("%w: %q is not a node id", ErrFormat, sc.Text())
		}
		return v, true, nil
	}

	n, ok, err := next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: missing node count", ErrFormat)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative node count %d", ErrFormat, n)
	}

	var edges []csr.Edge
	for {
		src, ok, err := next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		dst, ok, err := next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: edge %d has no destination", ErrFormat, len(edges))
		}
		edges = append(edges, csr.Edge{Src: csr.NodeID(src), Dst: csr.NodeID(dst)})
	}

	if undirected {
		return csr.UndirectedFromEdges(int(n), edges)
	}
	return csr.FromEdges(int(n), edges)
}

// WriteText writes g in the text format.
func WriteText(w io.Writer, g *csr.Graph) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, g.NumNodes())
	for u := 0; u < g.NumNodes(); u++ {
		for _, v := range g.Neighbors(csr.NodeID(u)) {
			fmt.Fprintln(bw, u, v)
		}
	}
	return bw.Flush()
}

// ReadTextFile opens path and parses it with ReadText.
func ReadTextFile(path string, undirected bool) (*csr.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := ReadText(f, undirected)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
