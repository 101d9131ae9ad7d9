package heuristic

import (
	"github.com/octilinear/schematize/internal/combgraph"
	"github.com/octilinear/schematize/internal/drawing"
	"github.com/octilinear/schematize/internal/octigrid"
)

// RerouteEdge erases CombEdge c's current route from grid and d, then
// re-routes it with both candidate-search radii scaled by radiusMul.
// Both endpoints stay settled across the call; only the path between them
// is retried. routeEdge reads the radii only for an unsettled endpoint, so
// the scaling does not change the retried search. Used by --enforce-geo to retract a route whose DTW deviation
// from its source geometry exceeded the configured threshold.
func (emb *Embedder) RerouteEdge(grid *octigrid.GridGraph, d *drawing.Drawing, c combgraph.EdgeIndex, radiusMul float64) error {
	d.EraseEdge(grid, c)

	savedSource, savedTarget := emb.opts.SourceRadiusMul, emb.opts.TargetRadiusMul
	emb.opts.SourceRadiusMul *= radiusMul
	emb.opts.TargetRadiusMul *= radiusMul
	defer func() {
		emb.opts.SourceRadiusMul, emb.opts.TargetRadiusMul = savedSource, savedTarget
	}()

	return emb.routeEdge(grid, d, c)
}
