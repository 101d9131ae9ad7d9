package geodev_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/octilinear/schematize/internal/combgraph"
	"github.com/octilinear/schematize/internal/fixtures"
	"github.com/octilinear/schematize/internal/geodev"
	"github.com/octilinear/schematize/internal/heuristic"
	"github.com/octilinear/schematize/internal/lgraph"
	"github.com/octilinear/schematize/internal/octigrid"
)

// TestDeviation_NonNegativeForTriangleRoutes checks that every routed edge
// of the triangle fixture has a measurable, non-negative deviation.
func TestDeviation_NonNegativeForTriangleRoutes(t *testing.T) {
	lg, err := fixtures.Triangle()
	require.NoError(t, err)

	cg, err := combgraph.Build(lg)
	require.NoError(t, err)

	grid, err := octigrid.New(10, 10, 10, lgraph.Point{X: -50, Y: -50}, octigrid.DefaultPenalties())
	require.NoError(t, err)

	opts := heuristic.DefaultOptions(10, 3)
	emb := heuristic.New(cg, octigrid.DefaultPenalties(), opts)
	d, err := emb.Run(grid)
	require.NoError(t, err)

	for _, c := range cg.Edges() {
		dev, err := geodev.Deviation(lg, cg, grid, d, c)
		require.NoError(t, err)
		require.GreaterOrEqual(t, dev, 0.0)
	}
}

// TestDeviation_DetourIncreasesDeviation confirms that forcing a detour
// around a blocked corridor raises the normalized deviation relative to
// the unblocked route for the same edge.
func TestDeviation_DetourIncreasesDeviation(t *testing.T) {
	lg, err := fixtures.GridDetour(3, 3, 10)
	require.NoError(t, err)

	cg, err := combgraph.Build(lg)
	require.NoError(t, err)

	baseline, err := octigrid.New(4, 4, 10, lgraph.Point{}, octigrid.DefaultPenalties())
	require.NoError(t, err)
	opts := heuristic.DefaultOptions(10, 3)
	embBaseline := heuristic.New(cg, octigrid.DefaultPenalties(), opts)
	dBaseline, err := embBaseline.Run(baseline)
	require.NoError(t, err)

	detoured, err := octigrid.New(4, 4, 10, lgraph.Point{}, octigrid.DefaultPenalties())
	require.NoError(t, err)
	for _, e := range detoured.AllEdges() {
		a, b := detoured.SinkPos(e.ASink), detoured.SinkPos(e.BSink)
		if a.Y == b.Y && a.Y == 10 {
			require.NoError(t, detoured.BlockEdge(e.Idx))
		}
	}
	embDetoured := heuristic.New(cg, octigrid.DefaultPenalties(), opts)
	dDetoured, err := embDetoured.Run(detoured)
	require.NoError(t, err)

	var baseTotal, detourTotal float64
	for _, c := range cg.Edges() {
		bd, err := geodev.Deviation(lg, cg, baseline, dBaseline, c)
		require.NoError(t, err)
		baseTotal += bd

		dd, err := geodev.Deviation(lg, cg, detoured, dDetoured, c)
		require.NoError(t, err)
		detourTotal += dd
	}
	require.GreaterOrEqual(t, detourTotal, baseTotal)
}

// TestViolations_ThresholdDisablesCheck confirms a non-positive threshold
// short-circuits without touching the drawing.
func TestViolations_ThresholdDisablesCheck(t *testing.T) {
	lg, err := fixtures.Triangle()
	require.NoError(t, err)
	cg, err := combgraph.Build(lg)
	require.NoError(t, err)
	grid, err := octigrid.New(10, 10, 10, lgraph.Point{X: -50, Y: -50}, octigrid.DefaultPenalties())
	require.NoError(t, err)
	opts := heuristic.DefaultOptions(10, 3)
	emb := heuristic.New(cg, octigrid.DefaultPenalties(), opts)
	d, err := emb.Run(grid)
	require.NoError(t, err)

	bad, err := geodev.Violations(lg, cg, grid, d, 0)
	require.NoError(t, err)
	require.Nil(t, bad)
}
