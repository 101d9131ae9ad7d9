package geodev

import (
	"math"

	"github.com/octilinear/schematize/internal/combgraph"
	"github.com/octilinear/schematize/internal/drawing"
	"github.com/octilinear/schematize/internal/lgraph"
	"github.com/octilinear/schematize/internal/octigrid"
)

// Deviation returns the DTW distance between a CombEdge's original
// LineGraph geometry and its routed grid path, normalized by the original
// path's length so a threshold applies uniformly regardless of edge scale.
func Deviation(lg *lgraph.LineGraph, comb *combgraph.CombGraph, grid *octigrid.GridGraph, d *drawing.Drawing, c combgraph.EdgeIndex) (float64, error) {
	orig, err := originalPolyline(lg, comb, c)
	if err != nil {
		return 0, err
	}
	sinks, _, _, ok := d.Route(c)
	if !ok {
		return 0, drawing.ErrNodeNotSettled
	}
	routed := make([]lgraph.Point, len(sinks))
	for i, s := range sinks {
		routed[i] = grid.SinkPos(s)
	}

	distX := dtwDistance(xs(orig), xs(routed))
	distY := dtwDistance(ys(orig), ys(routed))
	dist := math.Hypot(distX, distY)

	length := polylineLength(orig)
	if length == 0 {
		return dist, nil
	}
	return dist / length, nil
}

// Violations scans every routed CombEdge and returns those whose normalized
// deviation exceeds threshold. threshold<=0 disables the check.
func Violations(lg *lgraph.LineGraph, comb *combgraph.CombGraph, grid *octigrid.GridGraph, d *drawing.Drawing, threshold float64) ([]combgraph.EdgeIndex, error) {
	if threshold <= 0 {
		return nil, nil
	}
	var bad []combgraph.EdgeIndex
	for _, c := range comb.Edges() {
		if !d.HasEdge(c) {
			continue
		}
		dev, err := Deviation(lg, comb, grid, d, c)
		if err != nil {
			return nil, err
		}
		if dev > threshold {
			bad = append(bad, c)
		}
	}
	return bad, nil
}

// originalPolyline concatenates the geometry of every LineGraph edge in
// CombEdge c's Path, in traversal order.
func originalPolyline(lg *lgraph.LineGraph, comb *combgraph.CombGraph, c combgraph.EdgeIndex) ([]lgraph.Point, error) {
	ce := comb.Edge(c)
	var pts []lgraph.Point
	for _, eidx := range ce.Path {
		e, err := lg.Edge(eidx)
		if err != nil {
			return nil, err
		}
		if len(pts) > 0 && len(e.Geometry) > 0 && pts[len(pts)-1] == e.Geometry[0] {
			pts = append(pts, e.Geometry[1:]...)
		} else {
			pts = append(pts, e.Geometry...)
		}
	}
	return pts, nil
}

func polylineLength(pts []lgraph.Point) float64 {
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += pts[i-1].Dist(pts[i])
	}
	return total
}

func xs(pts []lgraph.Point) []float64 {
	out := make([]float64, len(pts))
	for i, p := range pts {
		out[i] = p.X
	}
	return out
}

func ys(pts []lgraph.Point) []float64 {
	out := make([]float64, len(pts))
	for i, p := range pts {
		out[i] = p.Y
	}
	return out
}
