package combgraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/octilinear/schematize/internal/combgraph"
	"github.com/octilinear/schematize/internal/lgraph"
)

func buildTriangle(t *testing.T) *lgraph.LineGraph {
	t.Helper()
	g := lgraph.New()
	a, _ := g.AddNode("A", lgraph.Point{X: 0, Y: 0})
	b, _ := g.AddNode("B", lgraph.Point{X: 10, Y: 0})
	c, _ := g.AddNode("C", lgraph.Point{X: 5, Y: 8.66})
	lines := []lgraph.LineOccurrence{{Line: "M1"}}
	_, err := g.AddEdge(a, b, []lgraph.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, lines)
	require.NoError(t, err)
	_, err = g.AddEdge(b, c, []lgraph.Point{{X: 10, Y: 0}, {X: 5, Y: 8.66}}, lines)
	require.NoError(t, err)
	_, err = g.AddEdge(c, a, []lgraph.Point{{X: 5, Y: 8.66}, {X: 0, Y: 0}}, lines)
	require.NoError(t, err)

	return g
}

func TestBuild_TriangleHasNoContraction(t *testing.T) {
	lg := buildTriangle(t)
	// Give every node a stop so all three remain decision nodes despite
	// each having degree 2.
	for _, idx := range lg.Nodes() {
		n, _ := lg.Node(idx)
		n.Stops = append(n.Stops, lgraph.Stop{ID: n.ExternalID})
	}

	cg, err := combgraph.Build(lg)
	require.NoError(t, err)
	require.Equal(t, 3, cg.NodeCount())
	require.Equal(t, 3, cg.EdgeCount())
}

func TestBuild_ContractsDegree2Chain(t *testing.T) {
	lg := lgraph.New()
	a, _ := lg.AddNode("A", lgraph.Point{X: 0})
	mid, _ := lg.AddNode("mid", lgraph.Point{X: 1})
	b, _ := lg.AddNode("B", lgraph.Point{X: 2})
	aS, _ := lg.Node(a)
	aS.Stops = []lgraph.Stop{{ID: "A"}}
	bS, _ := lg.Node(b)
	bS.Stops = []lgraph.Stop{{ID: "B"}}

	lines := []lgraph.LineOccurrence{{Line: "M1"}}
	_, err := lg.AddEdge(a, mid, nil, lines)
	require.NoError(t, err)
	_, err = lg.AddEdge(mid, b, nil, lines)
	require.NoError(t, err)

	cg, err := combgraph.Build(lg)
	require.NoError(t, err)
	require.Equal(t, 2, cg.NodeCount())
	require.Equal(t, 1, cg.EdgeCount())
	require.Len(t, cg.Edge(0).Path, 2)
}

func TestBuild_IsolatedRingGetsOneDecisionNode(t *testing.T) {
	lg := lgraph.New()
	a, _ := lg.AddNode("a", lgraph.Point{X: 0})
	b, _ := lg.AddNode("b", lgraph.Point{X: 1})
	c, _ := lg.AddNode("c", lgraph.Point{X: 2})
	_, _ = lg.AddEdge(a, b, nil, nil)
	_, _ = lg.AddEdge(b, c, nil, nil)
	_, _ = lg.AddEdge(c, a, nil, nil)

	cg, err := combgraph.Build(lg)
	require.NoError(t, err)
	require.Equal(t, 1, cg.NodeCount())
}
