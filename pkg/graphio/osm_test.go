package graphio

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-bfs/pkg/csr"
)

const roadsXML = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
  <node id="100" lat="1.0" lon="1.0"/>
  <node id="101" lat="1.0" lon="1.1"/>
  <node id="102" lat="1.0" lon="1.2"/>
  <node id="103" lat="1.1" lon="1.2"/>
  <way id="1">
    <nd ref="100"/>
    <nd ref="101"/>
    <nd ref="102"/>
    <tag k="highway" v="residential"/>
  </way>
  <way id="2">
    <nd ref="102"/>
    <nd ref="103"/>
    <tag k="highway" v="primary"/>
    <tag k="oneway" v="yes"/>
  </way>
  <way id="3">
    <nd ref="103"/>
    <nd ref="100"/>
    <tag k="building" v="yes"/>
  </way>
  <way id="4">
    <nd ref="101"/>
    <nd ref="103"/>
    <tag k="highway" v="pedestrian"/>
    <tag k="area" v="yes"/>
  </way>
</osm>`

func TestReadOSM(t *testing.T) {
	g, err := ReadOSM(context.Background(), strings.NewReader(roadsXML), false)
	require.NoError(t, err)

	// 100->0, 101->1, 102->2, 103->3 in order of first reference.
	assert.Equal(t, 4, g.NumNodes())
	assert.Equal(t, [][]csr.NodeID{{1}, {0, 2}, {1, 3}, {}}, g.Adjacency())
}

func TestReadOSMUndirected(t *testing.T) {
	g, err := ReadOSM(context.Background(), strings.NewReader(roadsXML), true)
	require.NoError(t, err)
	assert.True(t, g.HasEdge(3, 2))
}

func TestReadOSMFileByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roads"+OSMXMLExt)
	require.NoError(t, os.WriteFile(path, []byte(roadsXML), 0o644))

	g, err := ReadFile(path, false)
	require.NoError(t, err)
	assert.Equal(t, 5, g.NumEdges())
}

func TestReadOSMMalformed(t *testing.T) {
	_, err := ReadOSM(context.Background(), strings.NewReader("<osm><way id=\"1\"><nd ref="), false)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestDirections(t *testing.T) {
	tests := []struct {
		name     string
		tags     osm.Tags
		fwd, bwd bool
	}{
		{"two-way street", osm.Tags{{Key: "highway", Value: "residential"}}, true, true},
		{"motorway is implied oneway", osm.Tags{{Key: "highway", Value: "motorway"}}, true, false},
		{"roundabout", osm.Tags{{Key: "highway", Value: "primary"}, {Key: "junction", Value: "roundabout"}}, true, false},
		{"oneway yes", osm.Tags{{Key: "highway", Value: "primary"}, {Key: "oneway", Value: "yes"}}, true, false},
		{"oneway reverse", osm.Tags{{Key: "highway", Value: "primary"}, {Key: "oneway", Value: "-1"}}, false, true},
		{"motorway explicitly two-way", osm.Tags{{Key: "highway", Value: "motorway"}, {Key: "oneway", Value: "no"}}, true, true},
		{"reversible", osm.Tags{{Key: "highway", Value: "primary"}, {Key: "oneway", Value: "reversible"}}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fwd, bwd := directions(tt.tags)
			assert.Equal(t, tt.fwd, fwd)
			assert.Equal(t, tt.bwd, bwd)
		})
	}
}
