package heuristic

import (
	"fmt"

	"github.com/octilinear/schematize/internal/combgraph"
	"github.com/octilinear/schematize/internal/drawing"
	"github.com/octilinear/schematize/internal/lgraph"
	"github.com/octilinear/schematize/internal/octigrid"
)

// routeEdge routes a single CombEdge e=(u,v) on grid, recording it (and any
// newly settled endpoint) into d. Local search pre-settles the node under
// test at its candidate sink before calling routeEdge, so both endpoints
// already being settled is the common case there; an unsettled endpoint is
// resolved to its nearest candidate sink as usual.
func (emb *Embedder) routeEdge(grid *octigrid.GridGraph, d *drawing.Drawing, c combgraph.EdgeIndex) error {
	ce := emb.comb.Edge(c)
	uCN, vCN := emb.comb.Node(ce.From), emb.comb.Node(ce.To)
	uPos, uSettled := d.GetGrNd(ce.From)
	vPos, vSettled := d.GetGrNd(ce.To)

	s, sOpened, err := emb.resolveSource(grid, uCN, uPos, uSettled)
	if err != nil {
		return fmt.Errorf("%w: %v", errRouteFailed, err)
	}

	exclude := s
	if ce.From == ce.To {
		exclude = -1 // a self-loop has no second node to keep off s
	}
	targets, tOpened, err := emb.resolveTargets(grid, vCN, vPos, vSettled, exclude)
	if err != nil {
		if sOpened {
			_ = grid.CloseNodeSink(s)
		}
		return fmt.Errorf("%w: %v", errRouteFailed, err)
	}

	extra := emb.overlay(s, uSettled, targets, vSettled)
	res, err := grid.Search([]int{s}, targets, extra)
	if err != nil {
		if sOpened {
			_ = grid.CloseNodeSink(s)
		}
		for _, t := range tOpened {
			_ = grid.CloseNodeSink(t)
		}
		return fmt.Errorf("%w: %v", errRouteFailed, err)
	}

	if sOpened {
		moveCost := gridDistance(grid, s, uCN.Point, emb.gridSize) * emb.penPerGrid
		_ = grid.CloseNodeSink(s)
		if err := grid.SettleNd(s, ce.From, 0); err != nil {
			return fmt.Errorf("%w: %v", errRouteFailed, err)
		}
		d.SetNode(ce.From, s, moveCost)
	}
	for _, t := range tOpened {
		if t != res.Target {
			_ = grid.CloseNodeSink(t)
		}
	}
	if !vSettled {
		moveCost := gridDistance(grid, res.Target, vCN.Point, emb.gridSize) * emb.penPerGrid
		_ = grid.CloseNodeSink(res.Target)
		if err := grid.SettleNd(res.Target, ce.To, 0); err != nil {
			return fmt.Errorf("%w: %v", errRouteFailed, err)
		}
		d.SetNode(ce.To, res.Target, moveCost)
	}

	d.SetEdge(c, res, false)
	for _, h := range res.Hops {
		grid.ClaimEdge(h.From, h.Dir, c)
	}

	return nil
}

// resolveSource implements routeEdge step 1: an already-settled node keeps
// its sink; otherwise the nearest unsettled, unclosed sink within
// SourceRadiusMul*GridSize is opened as a candidate. sOpened reports
// whether the returned sink is a fresh candidate this call opened (and so
// must be closed on failure, or finalized with SettleNd on success).
func (emb *Embedder) resolveSource(grid *octigrid.GridGraph, cn *combgraph.CombNode, pos int, settled bool) (sink int, sOpened bool, err error) {
	if settled {
		return pos, false, nil
	}

	radius := emb.gridSize * emb.opts.SourceRadiusMul
	best, ok := emb.nearestUnsettled(grid, cn.Point, radius)
	if !ok {
		return 0, false, fmt.Errorf("no unsettled sink within source radius of node")
	}
	cost := gridDistance(grid, best, cn.Point, emb.gridSize) * emb.penPerGrid
	if err := grid.OpenNodeSink(best, cost); err != nil {
		return 0, false, err
	}
	return best, true, nil
}

// resolveTargets implements routeEdge step 2: an already-settled node's
// sink is the sole target; otherwise every unsettled, unclosed sink within
// a doubling radius (starting at TargetRadiusMul*GridSize), other than the
// route's source sink exclude, becomes a candidate target, each opened at a
// cost proportional to its distance from the node's geography.
func (emb *Embedder) resolveTargets(grid *octigrid.GridGraph, cn *combgraph.CombNode, pos int, settled bool, exclude int) (targets, opened []int, err error) {
	if settled {
		return []int{pos}, nil, nil
	}

	radius := emb.gridSize * emb.opts.TargetRadiusMul
	const maxDoublings = 5
	var cands []int
	for i := 0; i < maxDoublings; i++ {
		cands = cands[:0]
		for _, t := range emb.unsettledWithin(grid, cn.Point, radius) {
			if t != exclude {
				cands = append(cands, t)
			}
		}
		if len(cands) > 0 {
			break
		}
		radius *= 2
	}
	if len(cands) == 0 {
		return nil, nil, fmt.Errorf("no unsettled sink within any target radius of node")
	}

	for _, s := range cands {
		cost := gridDistance(grid, s, cn.Point, emb.gridSize) * emb.penPerGrid
		if err := grid.OpenNodeSink(s, cost); err != nil {
			return nil, nil, err
		}
	}
	return cands, cands, nil
}

// overlay builds the ExtraCost functor for routeEdge step 4: it adds
// TopoBlockPenalty plus NodeBendPenalty to every bend and grid edge leaving
// the sink of an endpoint that is already settled, the same amount in every
// direction. It does not look at the circular order of the edges already
// routed at that sink, so no route is singled out for violating that order.
func (emb *Embedder) overlay(s int, uSettled bool, targets []int, vSettled bool) octigrid.ExtraCost {
	extra := octigrid.TopoBlockPenalty() + octigrid.NodeBendPenalty()
	singleSettledTarget := -1
	if vSettled && len(targets) == 1 {
		singleSettledTarget = targets[0]
	}
	if !uSettled && singleSettledTarget < 0 {
		return nil
	}
	return func(sink, dir int) float64 {
		_ = dir
		if uSettled && sink == s {
			return extra
		}
		if singleSettledTarget >= 0 && sink == singleSettledTarget {
			return extra
		}
		return 0
	}
}

// nearestUnsettled scans every sink and returns the closest one to pt that
// is neither closed nor already settled and lies within radius.
func (emb *Embedder) nearestUnsettled(grid *octigrid.GridGraph, pt lgraph.Point, radius float64) (int, bool) {
	best, bestDist := -1, radius
	for s := 0; s < grid.SinkCount(); s++ {
		if grid.IsClosed(s) {
			continue
		}
		if _, settled := grid.SettledAt(s); settled {
			continue
		}
		dist := grid.SinkPos(s).Dist(pt)
		if dist <= bestDist {
			best, bestDist = s, dist
		}
	}
	return best, best >= 0
}

// unsettledWithin returns every open, unsettled sink within radius of pt.
func (emb *Embedder) unsettledWithin(grid *octigrid.GridGraph, pt lgraph.Point, radius float64) []int {
	var out []int
	for s := 0; s < grid.SinkCount(); s++ {
		if grid.IsClosed(s) {
			continue
		}
		if _, settled := grid.SettledAt(s); settled {
			continue
		}
		if grid.SinkPos(s).Dist(pt) <= radius {
			out = append(out, s)
		}
	}
	return out
}

// gridDistance returns the Euclidean distance between sink's world
// position and pt, measured in grid-cell units.
func gridDistance(grid *octigrid.GridGraph, sink int, pt lgraph.Point, gridSize float64) float64 {
	return grid.SinkPos(sink).Dist(pt) / gridSize
}
