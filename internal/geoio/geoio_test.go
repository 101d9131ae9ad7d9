package geoio_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/octilinear/schematize/internal/geoio"
	"github.com/octilinear/schematize/internal/lgraph"
	"github.com/octilinear/schematize/internal/octigrid"
)

const sampleGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type":"Feature","properties":{"id":"A","station_id":"stA"},"geometry":{"type":"Point","coordinates":[0,0]}},
    {"type":"Feature","properties":{"id":"B","station_id":"stB"},"geometry":{"type":"Point","coordinates":[10,0]}},
    {"type":"Feature","properties":{"from":"A","to":"B","lines":[{"id":"M1","color":"red"}]},"geometry":{"type":"LineString","coordinates":[[0,0],[10,0]]}}
  ]
}`

func TestReadGeoJSON_BuildsExpectedGraph(t *testing.T) {
	g, err := geoio.ReadGeoJSON([]byte(sampleGeoJSON))
	require.NoError(t, err)
	require.Equal(t, 2, g.NodeCount())
	require.Equal(t, 1, g.EdgeCount())

	a, ok := g.NodeByID("A")
	require.True(t, ok)
	an, err := g.Node(a)
	require.NoError(t, err)
	require.Equal(t, "stA", an.Stops[0].ID)
}

func TestReadGeoJSON_UnknownNodeRef(t *testing.T) {
	bad := `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"from":"X","to":"Y","lines":[{"id":"M1"}]},"geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]}}
	]}`
	_, err := geoio.ReadGeoJSON([]byte(bad))
	require.Error(t, err)
}

const sampleDOT = `digraph G {
	A [pos="0,0", station_id="stA"];
	B [pos="10,0", station_id="stB"];
	A -> B [id="M1", color="red"];
}`

func TestReadDOT_BuildsExpectedGraph(t *testing.T) {
	g, err := geoio.ReadDOT([]byte(sampleDOT))
	require.NoError(t, err)
	require.Equal(t, 2, g.NodeCount())
	require.Equal(t, 1, g.EdgeCount())

	a, ok := g.NodeByID("A")
	require.True(t, ok)
	an, err := g.Node(a)
	require.NoError(t, err)
	require.Equal(t, lgraph.Point{X: 0, Y: 0}, an.Point)
}

func TestWriteGeoJSON_RoundTripsTopology(t *testing.T) {
	g, err := geoio.ReadGeoJSON([]byte(sampleGeoJSON))
	require.NoError(t, err)

	out, err := geoio.WriteGeoJSON(g)
	require.NoError(t, err)
	require.Contains(t, string(out), "\"id\":\"A\"")
	require.Contains(t, string(out), "M1")
}

const blockingObstacle = `{"type":"FeatureCollection","features":[
	{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[4,-4],[6,-4],[6,4],[4,4],[4,-4]]]}}
]}`

func TestReadObstacles_BlocksIntersectingEdge(t *testing.T) {
	grid, err := octigrid.New(3, 1, 5, lgraph.Point{}, octigrid.DefaultPenalties())
	require.NoError(t, err)

	require.NoError(t, geoio.ReadObstacles([]byte(blockingObstacle), grid))

	blocked := false
	for _, e := range grid.AllEdges() {
		if math.IsInf(e.Cost, 1) {
			blocked = true
		}
	}
	require.True(t, blocked, "expected at least one grid edge blocked by the obstacle polygon")
}
