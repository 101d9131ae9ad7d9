package drawing_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/octilinear/schematize/internal/combgraph"
	"github.com/octilinear/schematize/internal/drawing"
	"github.com/octilinear/schematize/internal/lgraph"
	"github.com/octilinear/schematize/internal/octigrid"
)

// DrawingMutationSuite exercises Drawing's node/edge lifecycle against a
// grid-backed lattice as short ordered mutation sequences (set, apply,
// erase, clear), mirroring the teacher's flow package's testify/suite style
// for stateful algorithm state; SetupTest gives each test method a fresh
// Drawing and lattice.
type DrawingMutationSuite struct {
	suite.Suite
	cg   *combgraph.CombGraph
	d    *drawing.Drawing
	grid *octigrid.GridGraph
}

func (s *DrawingMutationSuite) SetupTest() {
	lg := lgraph.New()
	a, _ := lg.AddNode("A", lgraph.Point{X: 0})
	b, _ := lg.AddNode("B", lgraph.Point{X: 1})
	an, _ := lg.Node(a)
	an.Stops = []lgraph.Stop{{ID: "A"}}
	bn, _ := lg.Node(b)
	bn.Stops = []lgraph.Stop{{ID: "B"}}
	_, err := lg.AddEdge(a, b, nil, []lgraph.LineOccurrence{{Line: "M1"}})
	s.Require().NoError(err)

	cg, err := combgraph.Build(lg)
	s.Require().NoError(err)
	s.cg = cg
	s.d = drawing.New(cg)

	grid, err := octigrid.New(2, 1, 10, lgraph.Point{}, octigrid.DefaultPenalties())
	s.Require().NoError(err)
	s.grid = grid
}

func (s *DrawingMutationSuite) TestSetNodeThenSetEdgeAccumulatesScore() {
	s.d.SetNode(0, 0, 0)
	s.d.SetNode(1, 1, 0)
	s.Require().NoError(s.grid.OpenNodeSink(0, 0))
	s.Require().NoError(s.grid.OpenNodeSink(1, 0))

	res, err := s.grid.Search([]int{0}, []int{1}, nil)
	s.Require().NoError(err)
	s.d.SetEdge(0, res, false)
	s.Equal(res.Cost, s.d.Score())
}

func (s *DrawingMutationSuite) TestApplyToGridThenEraseClearsSettlement() {
	s.d.SetNode(0, 0, 0)
	s.d.SetNode(1, 1, 0)
	s.Require().NoError(s.grid.OpenNodeSink(0, 0))
	s.Require().NoError(s.grid.OpenNodeSink(1, 0))
	res, err := s.grid.Search([]int{0}, []int{1}, nil)
	s.Require().NoError(err)
	s.d.SetEdge(0, res, false)

	s.Require().NoError(s.d.ApplyToGrid(s.grid))
	_, ok := s.grid.SettledAt(0)
	s.True(ok)

	s.d.EraseFromGrid(s.grid)
	_, ok = s.grid.SettledAt(0)
	s.False(ok)
}

func (s *DrawingMutationSuite) TestClearEdgeThenClearNodeZeroesScore() {
	s.d.SetNode(0, 5, 2.5)
	s.d.SetEdge(0, octigrid.SearchResult{Target: 6, Cost: 10, Sinks: []int{5, 6}, Hops: []octigrid.GridHop{{From: 5, Dir: octigrid.DirE}}}, false)
	s.Equal(12.5, s.d.Score())

	s.d.ClearEdge(0)
	s.Equal(2.5, s.d.Score())
	s.d.ClearNode(0)
	s.Equal(0.0, s.d.Score())
}

func TestDrawingMutationSuite(t *testing.T) {
	suite.Run(t, new(DrawingMutationSuite))
}
