package topology_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/octilinear/schematize/internal/topology"
)

func TestCycle_RingShape(t *testing.T) {
	g, err := topology.Cycle(5)
	require.NoError(t, err)
	require.Len(t, g.Vertices(), 5)
	require.Len(t, g.Edges(), 5)
	require.Equal(t, topology.Edge{From: "4", To: "0"}, g.Edges()[4])
}

func TestCycle_RejectsTooFew(t *testing.T) {
	_, err := topology.Cycle(2)
	require.Error(t, err)
}

func TestStar_CenterHasNMinusOneSpokes(t *testing.T) {
	g, err := topology.Star(9)
	require.NoError(t, err)
	require.Len(t, g.Vertices(), 9)
	require.Len(t, g.Edges(), 8)
	for _, e := range g.Edges() {
		require.Equal(t, "Center", e.From)
	}
}

func TestGrid_LatticeShape(t *testing.T) {
	g, err := topology.Grid(3, 3)
	require.NoError(t, err)
	require.Len(t, g.Vertices(), 9)
	require.Len(t, g.Edges(), 12)
}

func TestGrid_RejectsNonPositiveDims(t *testing.T) {
	_, err := topology.Grid(0, 3)
	require.Error(t, err)
}
