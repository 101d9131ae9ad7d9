package ilp

import (
	"io"

	"github.com/octilinear/schematize/internal/combgraph"
	"github.com/octilinear/schematize/internal/drawing"
	"github.com/octilinear/schematize/internal/octigrid"
)

// WriteWarmStart emits a solver MST file assigning 1 to every x/y variable
// a heuristic Drawing already settled, 0 elsewhere (the CBC/SCIP "partial
// MIP start" format: one "<name> <value>" pair per line).
//
// A Drawing's routed edges record only their sink-changing grid-edge hops
// (see octigrid.GridHop), not the intermediate sink-edge/bend sub-path at
// each waypoint sink, so this warm start sets to 1 the primary grid-edge
// y's and the sink-edge y's immediately adjacent to them, and writes 0 for
// every other column, the in-between bend variables included.
func WriteWarmStart(w io.Writer, m *Model, comb *combgraph.CombGraph, grid *octigrid.GridGraph, d *drawing.Drawing) error {
	bw := &errWriter{w: w}
	set := make(map[int]bool)

	for _, v := range comb.Nodes() {
		sink, ok := d.GetGrNd(v)
		if !ok {
			continue
		}
		if col, ok := m.xVar[v][sink]; ok {
			set[col] = true
		}
	}

	for _, c := range comb.Edges() {
		sinks, hops, _, ok := d.Route(c)
		if !ok || len(sinks) == 0 {
			continue
		}
		ys := m.yVar[c]
		if ys == nil {
			continue
		}
		for _, h := range hops {
			from := grid.SinkNodeID(h.From)
			exitPort := grid.PortNodeID(h.From, h.Dir)
			if col, ok := ys[arcKey(from, exitPort)]; ok {
				set[col] = true
			}

			nsink, ndir, ok := grid.NeighborAt(h.From, h.Dir)
			if !ok {
				continue
			}
			entryPort := grid.PortNodeID(nsink, ndir)
			if col, ok := ys[arcKey(exitPort, entryPort)]; ok {
				set[col] = true
			}
			enter := grid.SinkNodeID(nsink)
			if col, ok := ys[arcKey(entryPort, enter)]; ok {
				set[col] = true
			}
		}
	}

	for ci := range m.cols {
		val := 0
		if set[ci] {
			val = 1
		}
		bw.printf("%-16s %d\n", m.cols[ci].name, val)
	}
	return bw.err
}
