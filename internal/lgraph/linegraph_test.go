package lgraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/octilinear/schematize/internal/lgraph"
)

func buildTriangle(t *testing.T) *lgraph.LineGraph {
	t.Helper()
	g := lgraph.New()
	a, err := g.AddNode("A", lgraph.Point{X: 0, Y: 0})
	require.NoError(t, err)
	b, err := g.AddNode("B", lgraph.Point{X: 10, Y: 0})
	require.NoError(t, err)
	c, err := g.AddNode("C", lgraph.Point{X: 5, Y: 8.66})
	require.NoError(t, err)

	lines := []lgraph.LineOccurrence{{Line: "M1"}}
	_, err = g.AddEdge(a, b, []lgraph.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, lines)
	require.NoError(t, err)
	_, err = g.AddEdge(b, c, []lgraph.Point{{X: 10, Y: 0}, {X: 5, Y: 8.66}}, lines)
	require.NoError(t, err)
	_, err = g.AddEdge(c, a, []lgraph.Point{{X: 5, Y: 8.66}, {X: 0, Y: 0}}, lines)
	require.NoError(t, err)

	return g
}

func TestAddNode_DuplicateRejected(t *testing.T) {
	g := lgraph.New()
	_, err := g.AddNode("A", lgraph.Point{})
	require.NoError(t, err)
	_, err = g.AddNode("A", lgraph.Point{})
	require.ErrorIs(t, err, lgraph.ErrDuplicateNodeID)
}

func TestAddEdge_RejectsSelfLoopAndParallel(t *testing.T) {
	g := lgraph.New()
	a, _ := g.AddNode("A", lgraph.Point{})
	b, _ := g.AddNode("B", lgraph.Point{X: 1})

	_, err := g.AddEdge(a, a, nil, nil)
	require.ErrorIs(t, err, lgraph.ErrSelfLoop)

	_, err = g.AddEdge(a, b, nil, nil)
	require.NoError(t, err)
	_, err = g.AddEdge(a, b, nil, nil)
	require.ErrorIs(t, err, lgraph.ErrParallelEdge)
}

func TestIncidentOrder_MatchesGeometricAngle(t *testing.T) {
	g := buildTriangle(t)
	a, _ := g.NodeByID("A")
	order, err := g.IncidentOrder(a)
	require.NoError(t, err)
	require.Len(t, order, 2)
	// A-B leaves A due east (0 rad), C-A arrives from about 60 degrees.
	require.Equal(t, []lgraph.EdgeIndex{0, 2}, order)
}

func TestRemoveNode_DropsIncidentEdges(t *testing.T) {
	g := buildTriangle(t)
	b, _ := g.NodeByID("B")
	require.NoError(t, g.RemoveNode(b))
	require.Equal(t, 2, g.NodeCount())
	require.Equal(t, 1, g.EdgeCount())
}

func TestConnected_AfterSplitHighDegreeNode(t *testing.T) {
	g := lgraph.New()
	center, _ := g.AddNode("S", lgraph.Point{})
	for i := 0; i < 9; i++ {
		leaf, err := g.AddNode(string(rune('a'+i)), lgraph.Point{X: float64(i)})
		require.NoError(t, err)
		_, err = g.AddEdge(center, leaf, nil, nil)
		require.NoError(t, err)
	}
	require.NoError(t, lgraph.SplitHighDegreeNode(g, center, 8))
	require.True(t, lgraph.Connected(g))
}

func TestSplitHighDegreeNode_UnsatisfiableForSmallMaxDeg(t *testing.T) {
	g := lgraph.New()
	center, _ := g.AddNode("S", lgraph.Point{})
	for i := 0; i < 5; i++ {
		leaf, _ := g.AddNode(string(rune('a'+i)), lgraph.Point{X: float64(i)})
		_, _ = g.AddEdge(center, leaf, nil, nil)
	}
	err := lgraph.SplitHighDegreeNode(g, center, 2)
	require.ErrorIs(t, err, lgraph.ErrUnsatisfiableDegree)
}
