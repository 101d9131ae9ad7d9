package octigrid

import (
	"math"

	"github.com/octilinear/schematize/internal/combgraph"
)

// checkSink validates a sink index, returning ErrSinkOutOfRange if it is
// outside the lattice and nil otherwise.
func (g *GridGraph) checkSink(s int) error {
	if s < 0 || s >= g.SinkCount() {
		return ErrSinkOutOfRange
	}
	return nil
}

// CloseSink marks a sink unusable, for example because an obstacle polygon
// covers its world position. A closed sink takes part in no routing:
// Search never enters its ports, and OpenNodeSink and SettleNd refuse it
// with ErrSinkClosed.
func (g *GridGraph) CloseSink(s int) error {
	if err := g.checkSink(s); err != nil {
		return err
	}
	g.sinks[s].closed = true
	return nil
}

// IsClosed reports whether sink s is blocked.
func (g *GridGraph) IsClosed(s int) bool { return g.sinks[s].closed }

// OpenNodeSink opens every sink edge of s to cost, making s a candidate
// position for a CombNode. Returns ErrSinkClosed if s is blocked.
func (g *GridGraph) OpenNodeSink(s int, cost float64) error {
	if err := g.checkSink(s); err != nil {
		return err
	}
	if g.sinks[s].closed {
		return ErrSinkClosed
	}
	for d := 0; d < numDirs; d++ {
		g.sinks[s].sinkEdgeCost[d] = cost
	}
	return nil
}

// CloseNodeSink resets every sink edge of s back to infinite cost.
func (g *GridGraph) CloseNodeSink(s int) error {
	if err := g.checkSink(s); err != nil {
		return err
	}
	for d := 0; d < numDirs; d++ {
		g.sinks[s].sinkEdgeCost[d] = math.Inf(1)
	}
	return nil
}

// SettleNd records that CombNode n now occupies sink s, and opens its sink
// edges so routes can terminate there. Returns ErrSinkClosed if s is
// blocked, or ErrSinkAlreadySettled if another node already occupies it.
func (g *GridGraph) SettleNd(s int, n combgraph.NodeIndex, cost float64) error {
	if err := g.checkSink(s); err != nil {
		return err
	}
	st := &g.sinks[s]
	if st.closed {
		return ErrSinkClosed
	}
	if st.hasSettled {
		return ErrSinkAlreadySettled
	}
	st.hasSettled = true
	st.settled = n
	for d := 0; d < numDirs; d++ {
		st.sinkEdgeCost[d] = cost
	}
	return nil
}

// UnSettleNd clears the settled CombNode at sink s, closing its sink edges.
// Returns ErrSinkNotSettled if s carries no settled node.
func (g *GridGraph) UnSettleNd(s int) error {
	if err := g.checkSink(s); err != nil {
		return err
	}
	st := &g.sinks[s]
	if !st.hasSettled {
		return ErrSinkNotSettled
	}
	st.hasSettled = false
	for d := 0; d < numDirs; d++ {
		st.sinkEdgeCost[d] = math.Inf(1)
	}
	return nil
}

// SettledAt reports the CombNode settled at sink s, if any.
func (g *GridGraph) SettledAt(s int) (combgraph.NodeIndex, bool) {
	st := &g.sinks[s]
	return st.settled, st.hasSettled
}

// BlockEdge permanently sets grid edge idx (an index into AllEdges) to
// infinite cost, for an obstacle polygon that geometrically intersects it.
// Unlike ClaimEdge/ReleaseEdge this has no inverse: an obstacle-blocked edge
// never reopens for the lifetime of the GridGraph.
func (g *GridGraph) BlockEdge(idx int) error {
	if idx < 0 || idx >= len(g.edges) {
		return ErrEdgeOutOfRange
	}
	ge := g.edges[idx]
	ge.baseCost = math.Inf(1)
	if !ge.used {
		ge.cost = math.Inf(1)
	}
	return nil
}

// ClaimEdge marks the grid edge at (sink, dir) as used by CombEdge e,
// raising its cost to infinity for every other search and closing its
// crossing partner, per the diagonal mutual-exclusion policy. Also applies
// DensityPen to the edge's bundle neighbors.
func (g *GridGraph) ClaimEdge(sink, dir int, e combgraph.EdgeIndex) {
	ge := g.edgeAt(sink, dir)
	if ge == nil || ge.used {
		return
	}
	ge.used = true
	ge.usedBy = e
	ge.cost = math.Inf(1)

	if p := g.crossPartner[ge.idx]; p >= 0 {
		g.edges[p].cost = math.Inf(1)
	}
	g.applyDensity(ge, g.pens.DensityPen)
}

// ReleaseEdge undoes ClaimEdge, restoring the edge (and, if no other
// diagonal now occupies the cell, its crossing partner) to its base cost.
// Used by local search to retract a route before re-routing it.
func (g *GridGraph) ReleaseEdge(sink, dir int) {
	ge := g.edgeAt(sink, dir)
	if ge == nil || !ge.used {
		return
	}
	ge.used = false
	ge.cost = ge.baseCost

	if p := g.crossPartner[ge.idx]; p >= 0 && !g.edges[p].used {
		g.edges[p].cost = g.edges[p].baseCost
	}
	g.applyDensity(ge, -g.pens.DensityPen)
}

// applyDensity adds delta to the cost of every grid edge running parallel
// to ge in an adjacent lane: the two grid edges in the same direction
// leaving the sinks perpendicular to ge's axis. This approximates the
// "same bundle" neighborhood a corridor of parallel tracks would share.
func (g *GridGraph) applyDensity(ge *gridEdge, delta float64) {
	if delta == 0 {
		return
	}
	d := int(ge.aDir)
	for _, perp := range [2]int{(d + 2) % numDirs, (d + 6) % numDirs} {
		for _, sink := range [2]int32{ge.aSink, ge.bSink} {
			x, y := g.coords(int(sink))
			nx, ny := x+dirOffsets[perp][0], y+dirOffsets[perp][1]
			if !g.inBounds(nx, ny) {
				continue
			}
			neighborSink := g.sinkID(nx, ny)
			if other := g.edgeAt(neighborSink, d); other != nil && other.idx != ge.idx {
				other.cost += delta
			}
		}
	}
}
