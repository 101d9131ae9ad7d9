package ilp

import (
	"fmt"
	"strconv"

	"github.com/octilinear/schematize/internal/combgraph"
	"github.com/octilinear/schematize/internal/drawing"
	"github.com/octilinear/schematize/internal/flowcheck"
	"github.com/octilinear/schematize/internal/octigrid"
)

// Extract reconstructs a Drawing from a solved Solution: x columns give
// every CombNode's settled sink, y columns give every CombEdge's active
// grid arcs. Before trusting an edge's extraction it runs Dinic over just
// that edge's active arcs (via flowcheck, adapted from the teacher's
// core/flow packages) to confirm they decompose into the single simple
// path the flow constraints were meant to guarantee.
func Extract(m *Model, sol *Solution, grid *octigrid.GridGraph, comb *combgraph.CombGraph) (*drawing.Drawing, error) {
	pens := grid.Penalties()
	d := drawing.New(comb)

	nodeSink := make(map[combgraph.NodeIndex]int)
	for _, v := range comb.Nodes() {
		xs, ok := m.xVar[v]
		if !ok {
			continue
		}
		for sink, col := range xs {
			if sol.Values[col] > 0.5 {
				cn := comb.Node(v)
				moveCost := cn.Point.Dist(grid.SinkPos(sink)) * pens.NodeMovePen
				d.SetNode(v, sink, moveCost)
				nodeSink[v] = sink
				break
			}
		}
	}

	for _, c := range comb.Edges() {
		ce := comb.Edge(c)
		fromSink, ok1 := nodeSink[ce.From]
		toSink, ok2 := nodeSink[ce.To]
		if !ok1 || !ok2 {
			continue
		}
		res, reversed, err := extractEdge(m, sol, grid, c, fromSink, toSink)
		if err != nil {
			return nil, fmt.Errorf("ilp: extracting comb edge %d: %w", c, err)
		}
		d.SetEdge(c, res, reversed)
	}

	return d, nil
}

func extractEdge(m *Model, sol *Solution, grid *octigrid.GridGraph, c combgraph.EdgeIndex, fromSink, toSink int) (octigrid.SearchResult, bool, error) {
	ys := m.yVar[c]
	fg := flowcheck.NewGraph()
	cost := 0.0

	seen := make(map[int]bool)
	addVertex := func(n int) {
		key := strconv.Itoa(n)
		if !seen[n] {
			fg.AddVertex(key)
			seen[n] = true
		}
	}

	type activeArc struct {
		from, to int
		cost     float64
	}
	var active []activeArc

	for key, col := range ys {
		if sol.Values[col] <= 0.5 {
			continue
		}
		active = append(active, activeArc{from: int(key >> 20), to: int(key & 0xFFFFF), cost: m.cols[col].objCoef})
	}

	for _, a := range active {
		addVertex(a.from)
		addVertex(a.to)
	}
	for _, a := range active {
		_ = fg.AddEdge(strconv.Itoa(a.from), strconv.Itoa(a.to), 1)
	}

	source := grid.SinkNodeID(fromSink)
	target := grid.SinkNodeID(toSink)
	addVertex(source)
	addVertex(target)

	maxFlow, err := flowcheck.Dinic(fg, strconv.Itoa(source), strconv.Itoa(target), flowcheck.Options{})
	if err != nil {
		return octigrid.SearchResult{}, false, err
	}
	if maxFlow < 0.5 {
		return octigrid.SearchResult{}, false, ErrBadExtraction
	}

	pathStrs, err := flowcheck.SimplePath(fg, strconv.Itoa(source), strconv.Itoa(target), 1e-9)
	if err != nil {
		return octigrid.SearchResult{}, false, fmt.Errorf("%w: %v", ErrBadExtraction, err)
	}

	path := make([]int, len(pathStrs))
	for i, s := range pathStrs {
		n, convErr := strconv.Atoi(s)
		if convErr != nil {
			return octigrid.SearchResult{}, false, ErrBadExtraction
		}
		path[i] = n
	}

	res := octigrid.SearchResult{Target: toSink}
	res.Sinks = append(res.Sinks, grid.NodeSink(path[0]))
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		sa, sb := grid.NodeSink(a), grid.NodeSink(b)
		if sa == sb {
			continue
		}
		res.Hops = append(res.Hops, octigrid.GridHop{From: sa, Dir: grid.NodeDir(a)})
		res.Sinks = append(res.Sinks, sb)
	}

	for _, a := range active {
		cost += a.cost
	}
	res.Cost = cost

	reversed := len(res.Sinks) > 0 && res.Sinks[0] != fromSink
	return res, reversed, nil
}
