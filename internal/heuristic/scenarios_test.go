package heuristic_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/octilinear/schematize/internal/combgraph"
	"github.com/octilinear/schematize/internal/fixtures"
	"github.com/octilinear/schematize/internal/heuristic"
	"github.com/octilinear/schematize/internal/lgraph"
	"github.com/octilinear/schematize/internal/octigrid"
)

// TestEmbedder_DegreeEightStar exercises the degree-8 port limit: a hub
// with exactly eight spokes must still find an embedding in which every
// spoke is routed.
func TestEmbedder_DegreeEightStar(t *testing.T) {
	lg, err := fixtures.DegreeEightStar()
	require.NoError(t, err)

	cg, err := combgraph.Build(lg)
	require.NoError(t, err)

	grid, err := octigrid.New(20, 20, 10, lgraph.Point{X: -100, Y: -100}, octigrid.DefaultPenalties())
	require.NoError(t, err)

	opts := heuristic.DefaultOptions(10, 7)
	emb := heuristic.New(cg, octigrid.DefaultPenalties(), opts)

	d, err := emb.Run(grid)
	require.NoError(t, err)

	for _, c := range cg.Edges() {
		require.True(t, d.HasEdge(c))
	}
}

// TestEmbedder_GridDetour forces a route around a blocked straight-line
// path: every horizontal grid edge on the middle row (y=10) is blocked, so
// the edges along that row must take the detour spec.md §8
// describes instead of failing outright.
func TestEmbedder_GridDetour(t *testing.T) {
	lg, err := fixtures.GridDetour(3, 3, 10)
	require.NoError(t, err)

	cg, err := combgraph.Build(lg)
	require.NoError(t, err)

	grid, err := octigrid.New(4, 4, 10, lgraph.Point{}, octigrid.DefaultPenalties())
	require.NoError(t, err)

	blocked := 0
	for _, e := range grid.AllEdges() {
		a, b := grid.SinkPos(e.ASink), grid.SinkPos(e.BSink)
		if a.Y == b.Y && a.Y == 10 { // block the middle row's horizontal corridor
			require.NoError(t, grid.BlockEdge(e.Idx))
			blocked++
		}
	}
	require.Greater(t, blocked, 0, "test setup should have blocked at least one edge")

	opts := heuristic.DefaultOptions(10, 3)
	emb := heuristic.New(cg, octigrid.DefaultPenalties(), opts)

	d, err := emb.Run(grid)
	require.NoError(t, err)
	for _, c := range cg.Edges() {
		require.True(t, d.HasEdge(c))
	}
}
