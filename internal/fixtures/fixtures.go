// Package fixtures synthesizes small LineGraphs for the end-to-end
// scenarios spec.md §8 describes (a triangle, a degree-8 star, a forced
// detour through a grid), using internal/topology's Cycle/Star/Grid
// constructors instead of hand-writing GeoJSON for each one. topology
// emits an abstract vertex/edge topology; these helpers place that
// topology's vertices on concrete world-space coordinates and materialize
// it as an lgraph.LineGraph carrying a single line occurrence per edge.
package fixtures

import (
	"fmt"
	"math"
	"sort"

	"github.com/octilinear/schematize/internal/lgraph"
	"github.com/octilinear/schematize/internal/topology"
)

// lineID is the line every fixture edge belongs to; scenarios needing more
// than one line build them directly rather than through these helpers.
const lineID = "L1"

// Triangle returns a 3-cycle (spec.md §8's Triangle scenario): three nodes
// at the corners of an equilateral triangle, each pair directly connected.
func Triangle() (*lgraph.LineGraph, error) {
	g, err := topology.Cycle(3)
	if err != nil {
		return nil, fmt.Errorf("fixtures: building cycle: %w", err)
	}
	return convert(g, nil)
}

// DegreeEightStar returns a hub-and-spoke network with one center node of
// degree 8 (spec.md §8's Degree-8-star scenario, exercising the ILP/
// heuristic degree-8 port limit) and its spokes placed evenly around it.
func DegreeEightStar() (*lgraph.LineGraph, error) {
	g, err := topology.Star(9)
	if err != nil {
		return nil, fmt.Errorf("fixtures: building star: %w", err)
	}
	return convert(g, nil)
}

// GridDetour returns a rows x cols orthogonal grid (spec.md §8's forced-
// detour scenario: a direct path is available only by routing around
// occupied or blocked cells) with vertices placed on a regular lattice of
// the given spacing.
func GridDetour(rows, cols int, spacing float64) (*lgraph.LineGraph, error) {
	g, err := topology.Grid(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("fixtures: building grid: %w", err)
	}
	return convert(g, gridPlacement(cols, spacing))
}

// placement maps a topology.Graph vertex ID to a world-space point.
type placement func(id string) lgraph.Point

func gridPlacement(cols int, spacing float64) placement {
	return func(id string) lgraph.Point {
		var r, c int
		fmt.Sscanf(id, "%d,%d", &r, &c)
		return lgraph.Point{X: float64(c) * spacing, Y: float64(r) * spacing}
	}
}

// convert copies g's vertices and edges into a fresh LineGraph, computing
// each vertex's point from place when non-nil, or from the circle/star
// layouts computed over the full vertex set otherwise.
func convert(g *topology.Graph, place placement) (*lgraph.LineGraph, error) {
	ids := g.Vertices()
	sort.Strings(ids)

	points := resolvePlacements(ids, place)

	lg := lgraph.New()
	idx := make(map[string]lgraph.NodeIndex, len(ids))
	for _, id := range ids {
		n, err := lg.AddNode(id, points[id])
		if err != nil {
			return nil, fmt.Errorf("fixtures: adding node %q: %w", id, err)
		}
		idx[id] = n
	}

	for _, e := range g.Edges() {
		from, to := idx[e.From], idx[e.To]
		geometry := []lgraph.Point{points[e.From], points[e.To]}
		if _, err := lg.AddEdge(from, to, geometry, []lgraph.LineOccurrence{{Line: lineID}}); err != nil {
			return nil, fmt.Errorf("fixtures: adding edge %s-%s: %w", e.From, e.To, err)
		}
	}

	return lg, nil
}

// resolvePlacements computes every vertex's point. A non-nil place (grid
// layout) is applied directly; a nil place falls back to an evenly spaced
// circular layout sized to len(ids), which also covers the star layout by
// special-casing the fixed "Center" id.
func resolvePlacements(ids []string, place placement) map[string]lgraph.Point {
	out := make(map[string]lgraph.Point, len(ids))
	if place != nil {
		for _, id := range ids {
			out[id] = place(id)
		}
		return out
	}

	leaves := make([]string, 0, len(ids))
	hasCenter := false
	for _, id := range ids {
		if id == "Center" {
			hasCenter = true
			continue
		}
		leaves = append(leaves, id)
	}
	if hasCenter {
		out["Center"] = lgraph.Point{}
		n := len(leaves)
		for i, id := range leaves {
			theta := 2 * math.Pi * float64(i) / float64(n)
			out[id] = lgraph.Point{X: math.Cos(theta), Y: math.Sin(theta)}
		}
		return out
	}

	n := len(ids)
	for i, id := range ids {
		theta := 2 * math.Pi * float64(i) / float64(n)
		out[id] = lgraph.Point{X: math.Cos(theta), Y: math.Sin(theta)}
	}
	return out
}
