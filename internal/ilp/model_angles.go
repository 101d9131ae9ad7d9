package ilp

import (
	"fmt"

	"github.com/octilinear/schematize/internal/combgraph"
	"github.com/octilinear/schematize/internal/octigrid"
)

// buildDirectionAndOrder adds constraints 7-9: direction definition,
// circular order (with the single permitted "vuln" wrap), and angle
// indicators for every incident pair sharing a line.
func buildDirectionAndOrder(m *Model, grid *octigrid.GridGraph, comb *combgraph.CombGraph, candidates map[combgraph.NodeIndex][]int, angPens AnglePenalties) {
	for _, v := range comb.Nodes() {
		order := comb.Node(v).Order
		if len(order) < 2 {
			continue
		}
		for _, c := range order {
			buildDirectionRow(m, grid, v, c, candidates[v])
		}
		if len(order) >= 3 {
			buildCircularOrder(m, v, order)
		}
		buildAngleIndicators(m, v, order, comb.Edge, angPens)
	}
}

// buildDirectionRow adds constraint 7: d_{v,c} = Σ_n Σ_i i·y_{sink n, port i, c}
// over v's candidate sinks n, for the sink-edge arcs leaving n.
func buildDirectionRow(m *Model, grid *octigrid.GridGraph, v combgraph.NodeIndex, c combgraph.EdgeIndex, cands []int) {
	dcol := m.newD(v, c)
	r := m.addRow(fmt.Sprintf("dirdef_%d_%d", v, c), RowEQ, 0)
	r.add(dcol, 1)
	ys := m.yVar[c]
	if ys == nil {
		return
	}
	for _, n := range cands {
		from := grid.SinkNodeID(n)
		for i := 0; i < 8; i++ {
			to := grid.PortNodeID(n, i)
			if col, ok := ys[arcKey(from, to)]; ok {
				r.add(col, -float64(i))
			}
		}
	}
}

// buildCircularOrder adds constraint 8: for each consecutive incident pair
// in v's cyclic order, d_b - d_a + M*vuln >= 1, with exactly one wrap
// permitted around the whole cycle.
func buildCircularOrder(m *Model, v combgraph.NodeIndex, order []combgraph.EdgeIndex) {
	sum := m.addRow(fmt.Sprintf("vulnsum_%d", v), RowEQ, 1)
	n := len(order)
	for i := 0; i < n; i++ {
		a, b := order[i], order[(i+1)%n]
		vcol := m.newVuln(v, i)
		sum.add(vcol, 1)

		r := m.addRow(fmt.Sprintf("circorder_%d_%d", v, i), RowGE, 1)
		r.add(m.dVar[v][b], 1)
		r.add(m.dVar[v][a], -1)
		r.add(vcol, bigM)
	}
}

// buildAngleIndicators adds constraint 9 for every incident pair sharing at
// least one line: seven binary bend-angle indicators, a mod-8 linearization
// against d_a/d_b, and the angle-penalty objective coefficients.
func buildAngleIndicators(m *Model, v combgraph.NodeIndex, order []combgraph.EdgeIndex, edgeOf func(combgraph.EdgeIndex) *combgraph.CombEdge, angPens AnglePenalties) {
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			a, b := order[i], order[j]
			if !sharesLine(edgeOf(a), edgeOf(b)) {
				continue
			}
			pair := [2]combgraph.EdgeIndex{a, b}
			wcol := m.newWrap(v, pair)

			// Σ k·z_k = (d_b - d_a) + 8·wrap, so a negative raw
			// difference (b's port index wrapped past 7) is brought
			// back into the representable 0..7 angle-code range.
			link := m.addRow(fmt.Sprintf("angledef_%d_%d_%d", v, a, b), RowEQ, 0)
			link.add(m.dVar[v][b], -1)
			link.add(m.dVar[v][a], 1)
			link.add(wcol, -8)

			cap := m.addRow(fmt.Sprintf("anglecap_%d_%d_%d", v, a, b), RowLE, 1)
			for k := 1; k <= 7; k++ {
				zcol := m.newAngle(v, pair, k, angPens[k-1])
				link.add(zcol, float64(k))
				cap.add(zcol, 1)
			}
		}
	}
}

func sharesLine(a, b *combgraph.CombEdge) bool {
	for line := range a.Lines {
		if b.Lines[line] {
			return true
		}
	}
	return false
}
