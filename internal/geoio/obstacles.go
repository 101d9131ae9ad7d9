package geoio

import (
	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"github.com/octilinear/schematize/internal/octigrid"
)

// ReadObstacles decodes a GeoJSON FeatureCollection of Polygon features (per
// spec.md §6) and blocks every grid edge that geometrically intersects one
// of them, setting its cost to infinity in grid. Ring orientation is
// ignored; only the outer ring of each polygon is tested, matching the
// "obstacle interior" semantics spec.md describes.
func ReadObstacles(data []byte, grid *octigrid.GridGraph) error {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return errors.Wrap(err, "geoio: decoding obstacle geojson")
	}

	var rings []orb.Ring
	for i, f := range fc.Features {
		if f.Geometry == nil || !f.Geometry.IsPolygon() {
			continue
		}
		poly := f.Geometry.Polygon
		if len(poly) == 0 {
			continue
		}
		ring := make(orb.Ring, len(poly[0]))
		for j, c := range poly[0] {
			if len(c) < 2 {
				return errors.Wrapf(ErrMalformedInput, "obstacle feature %d: vertex %d is not 2-D", i, j)
			}
			ring[j] = orb.Point{c[0], c[1]}
		}
		rings = append(rings, ring)
	}

	for _, desc := range grid.AllEdges() {
		a := grid.SinkPos(desc.ASink)
		b := grid.SinkPos(desc.BSink)
		seg := [2]orb.Point{{a.X, a.Y}, {b.X, b.Y}}
		for _, ring := range rings {
			if segmentHitsRing(seg, ring) || pointInRing(seg[0], ring) || pointInRing(seg[1], ring) {
				if err := grid.BlockEdge(desc.Idx); err != nil {
					return err
				}
				break
			}
		}
	}

	return nil
}

// pointInRing is a standard even-odd ray-casting containment test.
func pointInRing(p orb.Point, ring orb.Ring) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := ring[i], ring[j]
		if (pi[1] > p[1]) != (pj[1] > p[1]) {
			xCross := (pj[0]-pi[0])*(p[1]-pi[1])/(pj[1]-pi[1]) + pi[0]
			if p[0] < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// segmentHitsRing reports whether seg crosses any edge of ring, using a
// bounded orientation test (extended from the teacher's unbounded
// infinite-line intersect() in geomath.go, which only solves for where two
// lines would cross, not whether the crossing lies within both segments).
func segmentHitsRing(seg [2]orb.Point, ring orb.Ring) bool {
	n := len(ring)
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		if segmentsIntersect(seg[0], seg[1], a, b) {
			return true
		}
	}
	return false
}

func segmentsIntersect(p1, p2, p3, p4 orb.Point) bool {
	d1 := orientation(p3, p4, p1)
	d2 := orientation(p3, p4, p2)
	d3 := orientation(p1, p2, p3)
	d4 := orientation(p1, p2, p4)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}
	return false
}

func orientation(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func onSegment(a, b, p orb.Point) bool {
	return p[0] >= min2(a[0], b[0]) && p[0] <= max2(a[0], b[0]) &&
		p[1] >= min2(a[1], b[1]) && p[1] <= max2(a[1], b[1])
}

func min2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max2(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
