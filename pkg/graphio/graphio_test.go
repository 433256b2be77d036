package graphio

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-bfs/pkg/csr"
	"github.com/dd0wney/cluso-bfs/pkg/graphgen"
)

func TestReadTextDirected(t *testing.T) {
	g, err := ReadText(strings.NewReader("5\n0 1\n0 2\n1 3\n2 3\n3 4\n"), false)
	require.NoError(t, err)

	assert.Equal(t, graphgen.Diamond().Adjacency(), g.Adjacency())
}

func TestReadTextUndirected(t *testing.T) {
	g, err := ReadText(strings.NewReader("3 0 1 1 2"), true)
	require.NoError(t, err)

	assert.Equal(t, [][]csr.NodeID{{1}, {0, 2}, {1}}, g.Adjacency())
}

func TestReadTextErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrFormat},
		{"not a number", "3\n0 x\n", ErrFormat},
		{"dangling source", "3\n0 1\n2\n", ErrFormat},
		{"negative count", "-1\n", ErrFormat},
		{"out of range", "2\n0 5\n", csr.ErrNodeOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadText(strings.NewReader(tt.input), false)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestTextRoundTrip(t *testing.T) {
	g := graphgen.Directed(40, 0.1, 3)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, g))

	back, err := ReadText(&buf, false)
	require.NoError(t, err)
	assert.Equal(t, g.Adjacency(), back.Adjacency())
}

func TestBinaryRoundTrip(t *testing.T) {
	g := graphgen.Directed(100, 0.05, 11)
	path := filepath.Join(t.TempDir(), "g"+BinaryExt)

	require.NoError(t, WriteBinary(path, g))
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file left behind")

	back, err := ReadBinary(path)
	require.NoError(t, err)
	assert.Equal(t, g.RowOffsets(), back.RowOffsets())
	assert.Equal(t, g.ColIndices(), back.ColIndices())
}

func TestBinaryEmptyGraph(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty"+BinaryExt)
	require.NoError(t, WriteBinary(path, csr.Empty()))

	back, err := ReadBinary(path)
	require.NoError(t, err)
	assert.Equal(t, 0, back.NumNodes())
}

func TestBinaryCorruption(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "g"+BinaryExt)
	require.NoError(t, WriteBinary(path, graphgen.Diamond()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	t.Run("payload", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[len(bad)-1] ^= 0xff
		p := filepath.Join(dir, "payload"+BinaryExt)
		require.NoError(t, os.WriteFile(p, bad, 0o644))

		_, err := ReadBinary(p)
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("magic", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[0] = 'X'
		p := filepath.Join(dir, "magic"+BinaryExt)
		require.NoError(t, os.WriteFile(p, bad, 0o644))

		_, err := ReadBinary(p)
		assert.ErrorIs(t, err, ErrBadHeader)
	})

	t.Run("truncated", func(t *testing.T) {
		p := filepath.Join(dir, "short"+BinaryExt)
		require.NoError(t, os.WriteFile(p, data[:10], 0o644))

		_, err := ReadBinary(p)
		assert.ErrorIs(t, err, ErrBadHeader)
	})
}

func TestReadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("3\n0 1\n1 2\n"), 0o644))
	require.NoError(t, WriteBinary(filepath.Join(dir, "a"+BinaryExt), graphgen.Diamond()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("junk"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	graphs, err := ReadDir(context.Background(), dir, true, 2)
	require.NoError(t, err)
	require.Len(t, graphs, 2)

	assert.Equal(t, "a"+BinaryExt, filepath.Base(graphs[0].Path))
	assert.Equal(t, 5, graphs[0].Graph.NumNodes())
	assert.Equal(t, "b.txt", filepath.Base(graphs[1].Path))
	assert.Equal(t, [][]csr.NodeID{{1}, {0, 2}, {1}}, graphs[1].Graph.Adjacency())
	assertSymmetric(t, graphs[0].Graph)
}

func TestReadFileUndirectedBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diamond"+BinaryExt)
	require.NoError(t, WriteBinary(path, graphgen.Diamond()))

	directed, err := ReadFile(path, false)
	require.NoError(t, err)
	assert.Equal(t, graphgen.Diamond().Adjacency(), directed.Adjacency())

	undirected, err := ReadFile(path, true)
	require.NoError(t, err)
	assert.Equal(t, [][]csr.NodeID{{1, 2}, {3, 0}, {3, 0}, {4, 1, 2}, {3}}, undirected.Adjacency())
	assertSymmetric(t, undirected)
}

func TestReadTextUndirectedInterleavesInReadOrder(t *testing.T) {
	g, err := ReadText(strings.NewReader("4\n2 0\n0 1\n1 0\n3 0\n"), true)
	require.NoError(t, err)

	assert.Equal(t, [][]csr.NodeID{{2, 1, 3}, {0}, {0}, {0}}, g.Adjacency())
	assertSymmetric(t, g)
}

func assertSymmetric(t *testing.T, g *csr.Graph) {
	t.Helper()
	for u := 0; u < g.NumNodes(); u++ {
		for _, v := range g.Neighbors(csr.NodeID(u)) {
			assert.True(t, g.HasEdge(v, csr.NodeID(u)), "missing reverse of %d->%d", u, v)
		}
	}
}

func TestReadDirPropagatesErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ok.txt"), []byte("1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.txt"), []byte("2\n0 9\n"), 0o644))

	_, err := ReadDir(context.Background(), dir, false, 0)
	assert.ErrorIs(t, err, csr.ErrNodeOutOfRange)
}

func TestReadDirEmpty(t *testing.T) {
	_, err := ReadDir(context.Background(), t.TempDir(), false, 0)
	assert.Error(t, err)
}
