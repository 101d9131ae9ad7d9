package octigrid_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/octilinear/schematize/internal/combgraph"
	"github.com/octilinear/schematize/internal/lgraph"
	"github.com/octilinear/schematize/internal/octigrid"
)

func newTestGrid(t *testing.T, w, h int) *octigrid.GridGraph {
	t.Helper()
	g, err := octigrid.New(w, h, 10, lgraph.Point{}, octigrid.DefaultPenalties())
	require.NoError(t, err)
	return g
}

func TestNew_RejectsBadDimensions(t *testing.T) {
	_, err := octigrid.New(0, 3, 10, lgraph.Point{}, octigrid.DefaultPenalties())
	require.ErrorIs(t, err, octigrid.ErrBadDimensions)
}

func TestSearch_StraightLineIsCheapestPath(t *testing.T) {
	g := newTestGrid(t, 5, 1)
	require.NoError(t, g.OpenNodeSink(0, 0))
	require.NoError(t, g.OpenNodeSink(4, 0))

	res, err := g.Search([]int{0}, []int{4}, nil)
	require.NoError(t, err)
	require.Equal(t, 4, res.Target)
	require.Equal(t, 4*10.0, res.Cost)
}

func TestSettleNd_RejectsDoubleSettleAndClosedSink(t *testing.T) {
	g := newTestGrid(t, 3, 3)
	require.NoError(t, g.SettleNd(0, combgraph.NodeIndex(0), 0))
	require.ErrorIs(t, g.SettleNd(0, combgraph.NodeIndex(1), 0), octigrid.ErrSinkAlreadySettled)

	require.NoError(t, g.CloseSink(1))
	require.ErrorIs(t, g.SettleNd(1, combgraph.NodeIndex(2), 0), octigrid.ErrSinkClosed)
}

func TestClaimEdge_ClosesCrossingDiagonal(t *testing.T) {
	g := newTestGrid(t, 2, 2)
	// Open the bottom-right and top-left sinks and close the other two, so
	// the NW diagonal between them is the sole route until it is closed by
	// the crossing NE diagonal being claimed.
	require.NoError(t, g.OpenNodeSink(1, 0)) // bottom-right
	require.NoError(t, g.OpenNodeSink(2, 0)) // top-left
	require.NoError(t, g.CloseSink(0))       // bottom-left
	require.NoError(t, g.CloseSink(3))       // top-right

	g.ClaimEdge(0, octigrid.DirNE, combgraph.EdgeIndex(0))

	_, err := g.Search([]int{1}, []int{2}, nil)
	require.ErrorIs(t, err, octigrid.ErrNoPath)
}

func TestSearch_ReturnsErrNoPathWhenSinksClosed(t *testing.T) {
	g := newTestGrid(t, 3, 1)
	require.NoError(t, g.OpenNodeSink(0, 0))
	require.NoError(t, g.OpenNodeSink(2, 0))
	require.NoError(t, g.CloseSink(1))

	_, err := g.Search([]int{0}, []int{2}, nil)
	require.ErrorIs(t, err, octigrid.ErrNoPath)
}

func TestReleaseEdge_RestoresBaseCost(t *testing.T) {
	g := newTestGrid(t, 2, 1)
	require.NoError(t, g.OpenNodeSink(0, 0))
	require.NoError(t, g.OpenNodeSink(1, 0))

	g.ClaimEdge(0, octigrid.DirE, combgraph.EdgeIndex(0))
	_, err := g.Search([]int{0}, []int{1}, nil)
	require.ErrorIs(t, err, octigrid.ErrNoPath)

	g.ReleaseEdge(0, octigrid.DirE)
	res, err := g.Search([]int{0}, []int{1}, nil)
	require.NoError(t, err)
	require.Equal(t, 1, res.Target)
}
