package heuristic

import (
	"github.com/octilinear/schematize/internal/combgraph"
	"github.com/octilinear/schematize/internal/drawing"
	"github.com/octilinear/schematize/internal/octigrid"
)

// candidateOffsets are the nine positions local search tries for a node:
// its current cell and the eight cells around it.
var candidateOffsets = [9][2]int{
	{0, 0},
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// localSearch repeatedly tries relocating each settled CombNode to one of
// its nine neighboring sinks, re-routing its incident CombEdges at each
// candidate and keeping whichever position (including the original)
// scores lowest. Stops after opts.LocalSearchIters passes, when a pass's
// total improvement falls below opts.ImprovementEps, or at the wall-clock
// deadline.
func (emb *Embedder) localSearch(grid *octigrid.GridGraph, d *drawing.Drawing) {
	for iter := 0; iter < emb.opts.LocalSearchIters; iter++ {
		if emb.pastDeadline() {
			return
		}
		improvement := 0.0
		for _, v := range emb.searchSet() {
			improvement += emb.relocate(grid, d, v)
		}
		if improvement < emb.opts.ImprovementEps {
			return
		}
	}
}

// searchSet returns the comb nodes one local-search pass visits: every node
// unless RestrictLocalSearch names a fraction below 1, in which case a
// fresh random subset of that size is drawn for this pass.
func (emb *Embedder) searchSet() []combgraph.NodeIndex {
	all := emb.comb.Nodes()
	frac := emb.opts.RestrictLocalSearch
	if frac <= 0 || frac >= 1 {
		return all
	}
	n := int(float64(len(all)) * frac)
	if n < 1 {
		n = 1
	}
	shuffled := make([]combgraph.NodeIndex, len(all))
	copy(shuffled, all)
	emb.rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return shuffled[:n]
}

// relocate tries every candidate sink for v and leaves the lowest-scoring
// feasible one applied to grid and d, returning how much the total cost
// of v and its incident edges improved (0 if nothing beat the original).
func (emb *Embedder) relocate(grid *octigrid.GridGraph, d *drawing.Drawing, v combgraph.NodeIndex) float64 {
	origSink, ok := d.GetGrNd(v)
	if !ok {
		return 0
	}
	incident := emb.comb.Node(v).Order
	origTotal := emb.incidentTotal(d, v, incident)

	x0, y0 := grid.SinkXY(origSink)
	d.EraseNode(grid, v)
	for _, c := range incident {
		d.EraseEdge(grid, c)
	}

	bestTotal := origTotal
	haveApplied := false
	bestSink := origSink

	for _, off := range candidateOffsets {
		cand, ok := grid.SinkIndexAt(x0+off[0], y0+off[1])
		if !ok || grid.IsClosed(cand) {
			continue
		}
		if _, settled := grid.SettledAt(cand); settled {
			continue
		}

		total, success := emb.tryCandidate(grid, d, v, cand, incident)
		if !success {
			continue
		}
		if total < bestTotal {
			d.EraseNode(grid, v)
			for _, c := range incident {
				d.EraseEdge(grid, c)
			}
			bestTotal = total
			bestSink = cand
			haveApplied = true
		} else {
			d.EraseNode(grid, v)
			for _, c := range incident {
				d.EraseEdge(grid, c)
			}
		}
	}

	if !haveApplied {
		// No candidate strictly improved on the original: restore it
		// (the (0,0) offset ensures origSink itself was among the
		// candidates tried, but a transient failure there would still
		// leave nothing applied, so force it back explicitly).
		emb.tryCandidate(grid, d, v, origSink, incident)
		return 0
	}
	emb.tryCandidate(grid, d, v, bestSink, incident)
	return origTotal - bestTotal
}

// tryCandidate settles v at cand and re-routes every edge in incident,
// returning the resulting total cost. On any failure it erases whatever
// partial state it created and returns success=false.
func (emb *Embedder) tryCandidate(grid *octigrid.GridGraph, d *drawing.Drawing, v combgraph.NodeIndex, cand int, incident []combgraph.EdgeIndex) (float64, bool) {
	cn := emb.comb.Node(v)
	moveCost := gridDistance(grid, cand, cn.Point, emb.gridSize) * emb.penPerGrid
	if err := grid.SettleNd(cand, v, 0); err != nil {
		return 0, false
	}
	d.SetNode(v, cand, moveCost)

	for _, c := range incident {
		if err := emb.routeEdge(grid, d, c); err != nil {
			d.EraseNode(grid, v)
			for _, done := range incident {
				d.EraseEdge(grid, done)
			}
			return 0, false
		}
	}

	return emb.incidentTotal(d, v, incident), true
}

func (emb *Embedder) incidentTotal(d *drawing.Drawing, v combgraph.NodeIndex, incident []combgraph.EdgeIndex) float64 {
	total := d.NodeMoveCost(v)
	for _, c := range incident {
		total += d.EdgeCost(c)
	}
	return total
}
