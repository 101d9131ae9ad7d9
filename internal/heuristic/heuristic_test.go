package heuristic_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/octilinear/schematize/internal/combgraph"
	"github.com/octilinear/schematize/internal/heuristic"
	"github.com/octilinear/schematize/internal/lgraph"
	"github.com/octilinear/schematize/internal/octigrid"
)

func buildTriangle(t *testing.T) *combgraph.CombGraph {
	t.Helper()
	lg := lgraph.New()
	a, _ := lg.AddNode("A", lgraph.Point{X: 0, Y: 0})
	b, _ := lg.AddNode("B", lgraph.Point{X: 30, Y: 0})
	c, _ := lg.AddNode("C", lgraph.Point{X: 15, Y: 26})
	for _, idx := range []lgraph.NodeIndex{a, b, c} {
		n, _ := lg.Node(idx)
		n.Stops = append(n.Stops, lgraph.Stop{ID: n.ExternalID})
	}
	lines := []lgraph.LineOccurrence{{Line: "M1"}}
	_, err := lg.AddEdge(a, b, nil, lines)
	require.NoError(t, err)
	_, err = lg.AddEdge(b, c, nil, lines)
	require.NoError(t, err)
	_, err = lg.AddEdge(c, a, nil, lines)
	require.NoError(t, err)

	cg, err := combgraph.Build(lg)
	require.NoError(t, err)
	return cg
}

func TestEmbedder_RoutesTriangle(t *testing.T) {
	cg := buildTriangle(t)
	grid, err := octigrid.New(10, 10, 10, lgraph.Point{}, octigrid.DefaultPenalties())
	require.NoError(t, err)

	opts := heuristic.DefaultOptions(10, 42)
	emb := heuristic.New(cg, octigrid.DefaultPenalties(), opts)

	d, err := emb.Run(grid)
	require.NoError(t, err)

	for _, v := range cg.Nodes() {
		_, ok := d.GetGrNd(v)
		require.True(t, ok, "node %d should be settled", v)
	}
	for _, c := range cg.Edges() {
		require.True(t, d.HasEdge(c), "edge %d should be routed", c)
	}
	require.Greater(t, d.Score(), 0.0)
}
