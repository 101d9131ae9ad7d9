package ilp

import (
	"fmt"
	"math"

	"github.com/octilinear/schematize/internal/combgraph"
	"github.com/octilinear/schematize/internal/octigrid"
)

// AnglePenalties holds the seven named bend-angle penalty coefficients, in
// ascending port-difference order: d45, d90, d135, d180, d135', d90', d45'.
type AnglePenalties [7]float64

// DefaultAnglePenalties is the sample table from the formulation.
func DefaultAnglePenalties() AnglePenalties {
	return AnglePenalties{3, 2.5, 2, 1, 2, 2.5, 3}
}

// BuildOptions configures model construction.
type BuildOptions struct {
	MaxGridDistMul float64 // candidate sinks within MaxGridDistMul*cellSize of a node
	AnglePens      AnglePenalties
}

// DefaultBuildOptions returns sensible defaults.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{MaxGridDistMul: 3, AnglePens: DefaultAnglePenalties()}
}

const bigM = 8.0

// Build constructs the MIP for comb over grid: variables x/y/d/vuln/angle
// and constraint rows 1-9 of the formulation.
func Build(grid *octigrid.GridGraph, comb *combgraph.CombGraph, opts BuildOptions) (*Model, error) {
	m := newModel()
	pens := grid.Penalties()

	candidates := make(map[combgraph.NodeIndex][]int)
	for _, v := range comb.Nodes() {
		cn := comb.Node(v)
		if len(cn.Order) == 0 {
			continue
		}
		maxDist := opts.MaxGridDistMul * gridCellSize(grid)
		var cands []int
		for s := 0; s < grid.SinkCount(); s++ {
			if grid.IsClosed(s) {
				continue
			}
			d := cn.Point.Dist(grid.SinkPos(s))
			if d <= maxDist {
				cands = append(cands, s)
			}
		}
		candidates[v] = cands

		r := m.addRow(fmt.Sprintf("assign_%d", v), RowEQ, 1)
		for _, s := range cands {
			moveCost := cn.Point.Dist(grid.SinkPos(s)) * pens.NodeMovePen
			col := m.newX(v, s, moveCost)
			r.add(col, 1)
		}
	}

	// y variables over every finite-cost flat arc, per comb edge with
	// degree > 0 at both ends.
	edgeUniqueness := make(map[int]*row) // grid-edge idx -> row
	crossRows := make(map[[2]int]*row)   // {min,max} grid-edge idx pair -> row
	innerUse := make(map[int]*row)       // sink -> row (constraint 5)
	singleSink := make(map[[2]int]*row)  // {sink, combEdge-ordinal-as-int} not used directly; built inline below

	for _, c := range comb.Edges() {
		ce := comb.Edge(c)
		if len(comb.Node(ce.From).Order) == 0 || len(comb.Node(ce.To).Order) == 0 {
			continue
		}

		flow := make(map[int]*row) // flat node -> balance row, built lazily

		for u := 0; u < grid.FlatNodeCount(); u++ {
			for _, arc := range grid.FlatNeighbors(u) {
				if math.IsInf(arc.Cost, 1) {
					continue
				}
				col := m.newY(c, arc.From, arc.To, arc.Cost)

				// constraint 3: flow conservation, written as
				// outgoing - incoming = x_{n,from} - x_{n,to} at sink
				// nodes, outgoing - incoming = 0 at port nodes.
				fr := flowRow(m, flow, arc.From, "out")
				fr.add(col, 1)
				tr := flowRow(m, flow, arc.To, "in")
				tr.add(col, -1)

				if arc.Kind == octigrid.ArcPrimary {
					// constraint 2: edge uniqueness, both directions,
					// summed over every comb edge.
					er := edgeUniqueness[arc.GridEdgeIdx]
					if er == nil {
						er = m.addRow(fmt.Sprintf("edgeuniq_%d", arc.GridEdgeIdx), RowLE, 1)
						edgeUniqueness[arc.GridEdgeIdx] = er
					}
					er.add(col, 1)

					// constraint 6: no-cross.
					if partner, ok := grid.CrossPartner(arc.GridEdgeIdx); ok {
						key := crossKey(arc.GridEdgeIdx, partner)
						cr := crossRows[key]
						if cr == nil {
							cr = m.addRow(fmt.Sprintf("nocross_%d_%d", key[0], key[1]), RowLE, 1)
							crossRows[key] = cr
						}
						cr.add(col, 1)
					}
				}

				if arc.Kind == octigrid.ArcSinkEdge {
					ir := innerUse[grid.NodeSink(arc.From)]
					if ir == nil {
						ir = m.addRow(fmt.Sprintf("inneruse_%d", grid.NodeSink(arc.From)), RowLE, 2)
						innerUse[grid.NodeSink(arc.From)] = ir
					}
					ir.add(col, 1)
				}
			}
		}

		// tie flow conservation rows to x at each candidate sink for
		// both endpoints (constraint 3's "except for endpoints").
		tieFlowToAssignment(m, flow, grid, ce.From, c, candidates[ce.From], -1)
		tieFlowToAssignment(m, flow, grid, ce.To, c, candidates[ce.To], 1)
		_ = singleSink // reserved: constraint 4 is folded into innerUse above
	}

	buildDirectionAndOrder(m, grid, comb, candidates, opts.AnglePens)

	return m, nil
}

func gridCellSize(g *octigrid.GridGraph) float64 {
	p0 := g.SinkPos(0)
	if g.Width() > 1 {
		p1 := g.SinkPos(1)
		return p0.Dist(p1)
	}
	return 1
}

// flowRow returns (creating if needed) the balance row for flat node n,
// keyed so the same row accumulates both "out" and "in" contributions.
func flowRow(m *Model, flow map[int]*row, n int, _ string) *row {
	if r, ok := flow[n]; ok {
		return r
	}
	r := m.addRow(fmt.Sprintf("flow_%d", n), RowEQ, 0)
	flow[n] = r
	return r
}

// tieFlowToAssignment adds sign*x_{n,v} to endpoint v's own flat-sink-node
// balance row, for every candidate sink n, realizing constraint 3's source
// (sign=-1, net +1 outflow) / sink (sign=+1, net +1 inflow) treatment.
func tieFlowToAssignment(m *Model, flow map[int]*row, grid *octigrid.GridGraph, v combgraph.NodeIndex, c combgraph.EdgeIndex, cands []int, sign float64) {
	for _, s := range cands {
		n := grid.SinkNodeID(s)
		r := flowRow(m, flow, n, "")
		if xcol, ok := m.xVar[v][s]; ok {
			r.add(xcol, sign)
		}
	}
}

func crossKey(a, b int) [2]int {
	if a < b {
		return [2]int{a, b}
	}
	return [2]int{b, a}
}
