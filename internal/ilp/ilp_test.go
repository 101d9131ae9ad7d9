package ilp_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/octilinear/schematize/internal/combgraph"
	"github.com/octilinear/schematize/internal/ilp"
	"github.com/octilinear/schematize/internal/lgraph"
	"github.com/octilinear/schematize/internal/octigrid"
)

func buildPair(t *testing.T) *combgraph.CombGraph {
	t.Helper()
	lg := lgraph.New()
	a, _ := lg.AddNode("A", lgraph.Point{X: 0, Y: 0})
	b, _ := lg.AddNode("B", lgraph.Point{X: 20, Y: 0})
	for _, idx := range []lgraph.NodeIndex{a, b} {
		n, _ := lg.Node(idx)
		n.Stops = append(n.Stops, lgraph.Stop{ID: n.ExternalID})
	}
	_, err := lg.AddEdge(a, b, nil, []lgraph.LineOccurrence{{Line: "M1"}})
	require.NoError(t, err)

	cg, err := combgraph.Build(lg)
	require.NoError(t, err)
	return cg
}

func TestBuild_ProducesNonEmptyModel(t *testing.T) {
	cg := buildPair(t)
	grid, err := octigrid.New(3, 3, 10, lgraph.Point{}, octigrid.DefaultPenalties())
	require.NoError(t, err)

	m, err := ilp.Build(grid, cg, ilp.DefaultBuildOptions())
	require.NoError(t, err)
	require.Greater(t, m.ColumnCount(), 0)
	require.Greater(t, m.RowCount(), 0)
}

func TestWriteMPS_EmitsAllSections(t *testing.T) {
	cg := buildPair(t)
	grid, err := octigrid.New(3, 3, 10, lgraph.Point{}, octigrid.DefaultPenalties())
	require.NoError(t, err)

	m, err := ilp.Build(grid, cg, ilp.DefaultBuildOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ilp.WriteMPS(&buf, m, "test"))

	out := buf.String()
	for _, section := range []string{"ROWS", "COLUMNS", "RHS", "BOUNDS", "ENDATA"} {
		require.True(t, strings.Contains(out, section), "missing section %s", section)
	}
}
