package fixtures_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/octilinear/schematize/internal/fixtures"
)

func TestTriangle_ThreeNodesThreeEdges(t *testing.T) {
	g, err := fixtures.Triangle()
	require.NoError(t, err)
	require.Equal(t, 3, g.NodeCount())
	require.Equal(t, 3, g.EdgeCount())
}

func TestDegreeEightStar_CenterHasDegreeEight(t *testing.T) {
	g, err := fixtures.DegreeEightStar()
	require.NoError(t, err)
	require.Equal(t, 9, g.NodeCount())
	require.Equal(t, 8, g.EdgeCount())

	center, ok := g.NodeByID("Center")
	require.True(t, ok)
	cn, err := g.Node(center)
	require.NoError(t, err)
	require.Equal(t, 8, cn.Degree())
}

func TestGridDetour_LatticeShape(t *testing.T) {
	g, err := fixtures.GridDetour(3, 3, 10)
	require.NoError(t, err)
	require.Equal(t, 9, g.NodeCount())
	require.Equal(t, 12, g.EdgeCount()) // 2*rows*(cols-1) orthogonal links in a 3x3 grid

	origin, ok := g.NodeByID("0,0")
	require.True(t, ok)
	n, err := g.Node(origin)
	require.NoError(t, err)
	require.Equal(t, 0.0, n.Point.X)
	require.Equal(t, 0.0, n.Point.Y)
}
