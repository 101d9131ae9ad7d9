package octigrid

import (
	"math"

	"github.com/octilinear/schematize/internal/combgraph"
	"github.com/octilinear/schematize/internal/lgraph"
)

// gridEdge is one undirected grid edge, canonically owned by the sink with
// the smaller index. Its cost is mutable: embedders raise it to infinity
// once a route has claimed the edge, and local search restores it on erase.
type gridEdge struct {
	idx          int32
	aSink, bSink int32
	aDir, bDir   uint8
	baseCost     float64
	cost         float64
	usedBy       combgraph.EdgeIndex
	used         bool
}

// sinkState holds the mutable per-sink bookkeeping: whether it is blocked
// by an obstacle, which CombNode (if any) is settled there, and the
// currently open cost of each of its eight sink edges.
type sinkState struct {
	closed      bool
	settled     combgraph.NodeIndex
	hasSettled  bool
	sinkEdgeCost [numDirs]float64
}

// GridGraph is the fixed octilinear lattice embedders route CombGraph nodes
// and edges onto. Dimensions and geometry are immutable after New; sink and
// grid-edge state mutate as embedding proceeds.
type GridGraph struct {
	width, height int
	cellSize      float64
	origin        lgraph.Point
	pens          Penalties

	sinks []sinkState

	// gridEdgeAt[sink*numDirs+dir] is the index into edges for the grid
	// edge leaving that sink in that direction, or -1 if the neighbor
	// falls outside the lattice.
	gridEdgeAt []int32
	edges      []*gridEdge

	// crossPartner[edgeIdx] is the index of the other diagonal grid edge
	// crossing this one inside the same unit cell, or -1 if edgeIdx is not
	// a diagonal, per the crossing-exclusion policy.
	crossPartner []int32
}

// New builds a width x height octilinear lattice whose sink (0,0) sits at
// origin and whose neighboring sinks are cellSize apart. Returns
// ErrBadDimensions if width or height is non-positive.
func New(width, height int, cellSize float64, origin lgraph.Point, pens Penalties) (*GridGraph, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrBadDimensions
	}

	n := width * height
	g := &GridGraph{
		width:    width,
		height:   height,
		cellSize: cellSize,
		origin:   origin,
		pens:     pens,
		sinks:    make([]sinkState, n),
	}
	for i := range g.sinks {
		for d := 0; d < numDirs; d++ {
			g.sinks[i].sinkEdgeCost[d] = math.Inf(1)
		}
	}

	g.gridEdgeAt = make([]int32, n*numDirs)
	for i := range g.gridEdgeAt {
		g.gridEdgeAt[i] = -1
	}

	g.buildGridEdges()
	g.buildCrossPartners()

	return g, nil
}

func (g *GridGraph) sinkID(x, y int) int { return y*g.width + x }

func (g *GridGraph) coords(s int) (x, y int) { return s % g.width, s / g.width }

func (g *GridGraph) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// SinkPos returns the world-space position of sink s.
func (g *GridGraph) SinkPos(s int) lgraph.Point {
	x, y := g.coords(s)
	return lgraph.Point{
		X: g.origin.X + float64(x)*g.cellSize,
		Y: g.origin.Y + float64(y)*g.cellSize,
	}
}

// SinkCount returns the number of sinks in the lattice.
func (g *GridGraph) SinkCount() int { return g.width * g.height }

// SinkXY returns the column/row coordinates of sink s.
func (g *GridGraph) SinkXY(s int) (x, y int) { return g.coords(s) }

// SinkIndexAt returns the sink at column x, row y, or ok=false if out of
// bounds.
func (g *GridGraph) SinkIndexAt(x, y int) (sink int, ok bool) {
	if !g.inBounds(x, y) {
		return 0, false
	}
	return g.sinkID(x, y), true
}

// Width returns the lattice's column count.
func (g *GridGraph) Width() int { return g.width }

// Height returns the lattice's row count.
func (g *GridGraph) Height() int { return g.height }

// buildGridEdges allocates one canonical gridEdge per unordered adjacent
// sink pair, for every direction, and records it in gridEdgeAt for both
// endpoints.
func (g *GridGraph) buildGridEdges() {
	for s := 0; s < g.SinkCount(); s++ {
		x, y := g.coords(s)
		for d := 0; d < numDirs; d++ {
			nx, ny := x+dirOffsets[d][0], y+dirOffsets[d][1]
			if !g.inBounds(nx, ny) {
				continue
			}
			neighbor := g.sinkID(nx, ny)
			if neighbor < s {
				continue // the neighbor already owns this edge
			}
			length := g.cellSize
			if isDiagonal(d) {
				length *= math.Sqrt2
			}
			e := &gridEdge{
				idx:      int32(len(g.edges)),
				aSink:    int32(s),
				bSink:    int32(neighbor),
				aDir:     uint8(d),
				bDir:     uint8(opposite(d)),
				baseCost: length * g.pens.dirPenalty(d),
			}
			e.cost = e.baseCost
			g.gridEdgeAt[s*numDirs+d] = e.idx
			g.gridEdgeAt[neighbor*numDirs+opposite(d)] = e.idx
			g.edges = append(g.edges, e)
		}
	}
}

// buildCrossPartners pairs, within every unit cell, the NE diagonal leaving
// its bottom-left sink with the NW diagonal leaving its bottom-right sink:
// the two diagonals that cross at the cell's center.
func (g *GridGraph) buildCrossPartners() {
	g.crossPartner = make([]int32, len(g.edges))
	for i := range g.crossPartner {
		g.crossPartner[i] = -1
	}
	for y := 0; y < g.height-1; y++ {
		for x := 0; x < g.width-1; x++ {
			bl := g.sinkID(x, y)
			br := g.sinkID(x+1, y)
			ne := g.gridEdgeAt[bl*numDirs+DirNE]
			nw := g.gridEdgeAt[br*numDirs+DirNW]
			if ne < 0 || nw < 0 {
				continue
			}
			g.crossPartner[ne] = nw
			g.crossPartner[nw] = ne
		}
	}
}

// edgeAt returns the gridEdge leaving sink s in direction d, or nil if the
// lattice has no neighbor there.
func (g *GridGraph) edgeAt(s, d int) *gridEdge {
	idx := g.gridEdgeAt[s*numDirs+d]
	if idx < 0 {
		return nil
	}
	return g.edges[idx]
}

// otherEnd returns the sink and port-direction on the far side of a grid
// edge, given the sink and direction it was entered from.
func (e *gridEdge) otherEnd(fromSink int) (sink int, dir int) {
	if int(e.aSink) == fromSink {
		return int(e.bSink), int(e.bDir)
	}
	return int(e.aSink), int(e.aDir)
}
