package drawing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/octilinear/schematize/internal/combgraph"
	"github.com/octilinear/schematize/internal/drawing"
	"github.com/octilinear/schematize/internal/lgraph"
	"github.com/octilinear/schematize/internal/octigrid"
)

func buildLine(t *testing.T) *combgraph.CombGraph {
	t.Helper()
	lg := lgraph.New()
	a, _ := lg.AddNode("A", lgraph.Point{X: 0})
	b, _ := lg.AddNode("B", lgraph.Point{X: 1})
	an, _ := lg.Node(a)
	an.Stops = []lgraph.Stop{{ID: "A"}}
	bn, _ := lg.Node(b)
	bn.Stops = []lgraph.Stop{{ID: "B"}}
	_, err := lg.AddEdge(a, b, nil, []lgraph.LineOccurrence{{Line: "M1"}})
	require.NoError(t, err)

	cg, err := combgraph.Build(lg)
	require.NoError(t, err)
	return cg
}

func TestDrawing_SetAndClearTrackScore(t *testing.T) {
	cg := buildLine(t)
	d := drawing.New(cg)

	d.SetNode(0, 5, 2.5)
	require.Equal(t, 2.5, d.Score())
	sink, ok := d.GetGrNd(0)
	require.True(t, ok)
	require.Equal(t, 5, sink)

	d.SetEdge(0, octigrid.SearchResult{Target: 6, Cost: 10, Sinks: []int{5, 6}, Hops: []octigrid.GridHop{{From: 5, Dir: octigrid.DirE}}}, false)
	require.Equal(t, 12.5, d.Score())

	d.ClearEdge(0)
	require.Equal(t, 2.5, d.Score())
	d.ClearNode(0)
	require.Equal(t, 0.0, d.Score())
}

func TestDrawing_ApplyAndEraseFromGrid(t *testing.T) {
	cg := buildLine(t)
	d := drawing.New(cg)
	grid, err := octigrid.New(2, 1, 10, lgraph.Point{}, octigrid.DefaultPenalties())
	require.NoError(t, err)

	d.SetNode(0, 0, 0)
	d.SetNode(1, 1, 0)
	require.NoError(t, grid.OpenNodeSink(0, 0))
	require.NoError(t, grid.OpenNodeSink(1, 0))
	res, err := grid.Search([]int{0}, []int{1}, nil)
	require.NoError(t, err)
	d.SetEdge(0, res, false)

	require.NoError(t, d.ApplyToGrid(grid))
	_, ok := grid.SettledAt(0)
	require.True(t, ok)

	d.EraseFromGrid(grid)
	_, ok = grid.SettledAt(0)
	require.False(t, ok)
}
