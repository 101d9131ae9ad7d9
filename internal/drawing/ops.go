package drawing

import (
	"github.com/octilinear/schematize/internal/combgraph"
	"github.com/octilinear/schematize/internal/octigrid"
)

// SetNode records that CombNode v settled at sink, with moveCost added to
// the Drawing's score (the cost of moving v from its original geography,
// zero the first time a node is placed).
func (d *Drawing) SetNode(v combgraph.NodeIndex, sink int, moveCost float64) {
	if old, ok := d.nodes[v]; ok {
		d.score -= old.moveCost
	}
	d.nodes[v] = nodeRecord{sink: sink, moveCost: moveCost}
	d.score += moveCost
}

// AddPenalty folds an extra scoring term (e.g. a geo-deviation penalty
// computed outside the grid search itself) directly into the score.
func (d *Drawing) AddPenalty(amount float64) {
	d.score += amount
}

// ClearNode removes v's recorded position and its move cost from the
// score, without touching any GridGraph.
func (d *Drawing) ClearNode(v combgraph.NodeIndex) {
	if old, ok := d.nodes[v]; ok {
		d.score -= old.moveCost
		delete(d.nodes, v)
	}
}

// SetEdge records CombEdge c's routed path from a GridGraph search result,
// adding its cost to the score.
func (d *Drawing) SetEdge(c combgraph.EdgeIndex, res octigrid.SearchResult, reversed bool) {
	if old, ok := d.edges[c]; ok {
		d.score -= old.cost
	}
	d.edges[c] = edgeRecord{sinks: res.Sinks, hops: res.Hops, reversed: reversed, cost: res.Cost}
	d.score += res.Cost
}

// ClearEdge removes c's recorded route and its cost from the score,
// without touching any GridGraph.
func (d *Drawing) ClearEdge(c combgraph.EdgeIndex) {
	if old, ok := d.edges[c]; ok {
		d.score -= old.cost
		delete(d.edges, c)
	}
}

// ApplyToGrid materializes every recorded node and edge onto g: settling
// each node's sink and claiming each edge's grid-edge hops. g must be the
// same lattice the Drawing's sinks and ports were computed against.
func (d *Drawing) ApplyToGrid(g *octigrid.GridGraph) error {
	for v, rec := range d.nodes {
		if err := g.SettleNd(rec.sink, v, 0); err != nil {
			return err
		}
	}
	for c, rec := range d.edges {
		claimRoute(g, rec, c)
	}
	return nil
}

// EraseFromGrid undoes ApplyToGrid: unsettles every recorded node and
// releases every recorded edge's grid-edge hops.
func (d *Drawing) EraseFromGrid(g *octigrid.GridGraph) {
	for v := range d.nodes {
		_ = g.UnSettleNd(d.nodes[v].sink)
	}
	for _, rec := range d.edges {
		releaseRoute(g, rec)
	}
}

// EraseNode unsettles CombNode v from g and drops its position and move
// cost from the Drawing, the single-element counterpart of ApplyToGrid
// used by local search to retract one node before retrying it elsewhere.
func (d *Drawing) EraseNode(g *octigrid.GridGraph, v combgraph.NodeIndex) {
	if rec, ok := d.nodes[v]; ok {
		_ = g.UnSettleNd(rec.sink)
	}
	d.ClearNode(v)
}

// EraseEdge releases CombEdge c's grid-edge hops on g and drops its route
// and cost from the Drawing.
func (d *Drawing) EraseEdge(g *octigrid.GridGraph, c combgraph.EdgeIndex) {
	if rec, ok := d.edges[c]; ok {
		releaseRoute(g, rec)
	}
	d.ClearEdge(c)
}

func claimRoute(g *octigrid.GridGraph, rec edgeRecord, c combgraph.EdgeIndex) {
	for _, h := range rec.hops {
		g.ClaimEdge(h.From, h.Dir, c)
	}
}

func releaseRoute(g *octigrid.GridGraph, rec edgeRecord) {
	for _, h := range rec.hops {
		g.ReleaseEdge(h.From, h.Dir)
	}
}
