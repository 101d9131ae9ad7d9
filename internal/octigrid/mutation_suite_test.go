package octigrid_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/octilinear/schematize/internal/combgraph"
	"github.com/octilinear/schematize/internal/lgraph"
	"github.com/octilinear/schematize/internal/octigrid"
)

// GridMutationSuite exercises GridGraph's sink/edge lifecycle as ordered
// sequences of mutations, the way the teacher's flow package uses
// testify/suite for its own stateful max-flow residual-graph tests: each
// test method starts from the fresh 3x1 lattice SetupTest builds for it.
type GridMutationSuite struct {
	suite.Suite
	grid *octigrid.GridGraph
}

func (s *GridMutationSuite) SetupTest() {
	g, err := octigrid.New(3, 1, 10, lgraph.Point{}, octigrid.DefaultPenalties())
	s.Require().NoError(err)
	s.grid = g
}

func (s *GridMutationSuite) TestOpenThenSettleThenDoubleSettleFails() {
	s.Require().NoError(s.grid.OpenNodeSink(0, 0))
	s.Require().NoError(s.grid.SettleNd(0, combgraph.NodeIndex(0), 0))
	s.ErrorIs(s.grid.SettleNd(0, combgraph.NodeIndex(1), 0), octigrid.ErrSinkAlreadySettled)
}

func (s *GridMutationSuite) TestCloseThenSettleFails() {
	s.Require().NoError(s.grid.CloseSink(1))
	s.ErrorIs(s.grid.SettleNd(1, combgraph.NodeIndex(0), 0), octigrid.ErrSinkClosed)
}

func (s *GridMutationSuite) TestClaimThenReleaseRestoresPath() {
	s.Require().NoError(s.grid.OpenNodeSink(0, 0))
	s.Require().NoError(s.grid.OpenNodeSink(1, 0))

	s.grid.ClaimEdge(0, octigrid.DirE, combgraph.EdgeIndex(0))
	_, err := s.grid.Search([]int{0}, []int{1}, nil)
	s.ErrorIs(err, octigrid.ErrNoPath)

	s.grid.ReleaseEdge(0, octigrid.DirE)
	res, err := s.grid.Search([]int{0}, []int{1}, nil)
	s.Require().NoError(err)
	s.Equal(1, res.Target)
}

func TestGridMutationSuite(t *testing.T) {
	suite.Run(t, new(GridMutationSuite))
}
