package drawing

import (
	"errors"

	"github.com/octilinear/schematize/internal/combgraph"
	"github.com/octilinear/schematize/internal/octigrid"
)

// ErrNodeNotSettled indicates a caller asked for the route or position of a
// CombNode/CombEdge the Drawing has no record of.
var ErrNodeNotSettled = errors.New("drawing: comb node has no settled position")

// nodeRecord is the bookkeeping kept for one settled CombNode.
type nodeRecord struct {
	sink     int
	moveCost float64
}

// edgeRecord is the bookkeeping kept for one routed CombEdge.
type edgeRecord struct {
	sinks    []int
	hops     []octigrid.GridHop
	reversed bool
	cost     float64
}

// Drawing is a candidate embedding: which sink each CombNode settled at,
// which sink/port path each CombEdge routed through, and the accumulated
// score of both.
type Drawing struct {
	comb *combgraph.CombGraph

	nodes map[combgraph.NodeIndex]nodeRecord
	edges map[combgraph.EdgeIndex]edgeRecord

	score float64
}

// New returns an empty Drawing over comb.
func New(comb *combgraph.CombGraph) *Drawing {
	return &Drawing{
		comb:  comb,
		nodes: make(map[combgraph.NodeIndex]nodeRecord),
		edges: make(map[combgraph.EdgeIndex]edgeRecord),
	}
}

// Score returns the Drawing's current total: the sum of every claimed
// grid-edge cost plus every node's move/settle cost, per P5.
func (d *Drawing) Score() float64 { return d.score }

// GetGrNd returns the sink settled for CombNode v, if any.
func (d *Drawing) GetGrNd(v combgraph.NodeIndex) (int, bool) {
	rec, ok := d.nodes[v]
	return rec.sink, ok
}

// NodeMoveCost returns the move cost recorded for CombNode v, 0 if unset.
func (d *Drawing) NodeMoveCost(v combgraph.NodeIndex) float64 { return d.nodes[v].moveCost }

// EdgeCost returns the routing cost recorded for CombEdge c, 0 if unset.
func (d *Drawing) EdgeCost(c combgraph.EdgeIndex) float64 { return d.edges[c].cost }

// HasEdge reports whether CombEdge c has a recorded route.
func (d *Drawing) HasEdge(c combgraph.EdgeIndex) bool {
	_, ok := d.edges[c]
	return ok
}

// Route returns the recorded sink path and grid-edge hops for CombEdge c.
func (d *Drawing) Route(c combgraph.EdgeIndex) (sinks []int, hops []octigrid.GridHop, reversed bool, ok bool) {
	rec, ok := d.edges[c]
	return rec.sinks, rec.hops, rec.reversed, ok
}
