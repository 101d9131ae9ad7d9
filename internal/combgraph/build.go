package combgraph

import (
	"github.com/octilinear/schematize/internal/lgraph"
)

// Build contracts every maximal chain of degree-2, stop-free LineGraph
// nodes into a single CombEdge, producing the CombGraph routed by the
// embedders. Isolated rings (a connected component with no natural decision
// node) are broken at their lowest-indexed node, per the documented
// tie-break for this kind of ambiguity (spec.md's "center node" tie-break
// note applies the same rule: lowest node index wins).
// Complexity: O(V+E) over the LineGraph.
func Build(lg *lgraph.LineGraph) (*CombGraph, error) {
	nodes := lg.Nodes()
	if len(nodes) == 0 {
		return nil, ErrEmptyLineGraph
	}

	decision := make(map[lgraph.NodeIndex]bool, len(nodes))
	for _, idx := range nodes {
		n, err := lg.Node(idx)
		if err != nil {
			continue
		}
		if n.Degree() != 2 || len(n.Stops) > 0 {
			decision[idx] = true
		}
	}
	breakIsolatedRings(lg, nodes, decision)

	g := &CombGraph{lgToComb: make(map[lgraph.NodeIndex]NodeIndex, len(decision))}
	for _, idx := range nodes {
		if !decision[idx] {
			continue
		}
		n, _ := lg.Node(idx)
		cn := &CombNode{idx: NodeIndex(len(g.nodes)), LGNode: idx, Point: n.Point, Stops: n.Stops}
		g.lgToComb[idx] = cn.idx
		g.nodes = append(g.nodes, cn)
	}

	visited := make(map[lgraph.EdgeIndex]bool)
	// incidentComb maps a LineGraph edge directly touching a decision node
	// to the CombEdge it belongs to, so each CombNode's Order can later be
	// derived from that node's own LineGraph incidence order rather than
	// from whatever order chains happened to be discovered in.
	incidentComb := make(map[lgraph.EdgeIndex]EdgeIndex)

	for _, idx := range nodes {
		if !decision[idx] {
			continue
		}
		order, err := lg.IncidentOrder(idx)
		if err != nil {
			continue
		}
		for _, eidx := range order {
			if visited[eidx] {
				continue
			}
			path, end, err := walkChain(lg, idx, eidx, decision, visited)
			if err != nil {
				return nil, err
			}
			lines := unionLines(lg, path)
			fromC := g.lgToComb[idx]
			toC := g.lgToComb[end]
			ce := &CombEdge{idx: EdgeIndex(len(g.edges)), From: fromC, To: toC, Path: path, Lines: lines}
			g.edges = append(g.edges, ce)
			incidentComb[path[0]] = ce.idx
			incidentComb[path[len(path)-1]] = ce.idx
		}
	}

	for _, cn := range g.nodes {
		order, err := lg.IncidentOrder(cn.LGNode)
		if err != nil {
			continue
		}
		for _, eidx := range order {
			ceidx, ok := incidentComb[eidx]
			if !ok {
				continue
			}
			cn.Order = append(cn.Order, ceidx)
		}
	}

	return g, nil
}

// walkChain follows the degree-2 chain starting at node `from` via edge
// `first` until it reaches a decision node, marking every traversed edge as
// visited. Returns the LineGraph edge path and the terminating node index.
func walkChain(lg *lgraph.LineGraph, from lgraph.NodeIndex, first lgraph.EdgeIndex, decision map[lgraph.NodeIndex]bool, visited map[lgraph.EdgeIndex]bool) ([]lgraph.EdgeIndex, lgraph.NodeIndex, error) {
	path := []lgraph.EdgeIndex{first}
	visited[first] = true

	e, err := lg.Edge(first)
	if err != nil {
		return nil, 0, err
	}
	cur := e.Other(from)
	prevEdge := first

	for !decision[cur] {
		order, err := lg.IncidentOrder(cur)
		if err != nil {
			return nil, 0, err
		}
		var next lgraph.EdgeIndex
		found := false
		for _, eidx := range order {
			if eidx != prevEdge {
				next = eidx
				found = true
				break
			}
		}
		if !found {
			// Degree-2 node whose other incident edge is itself
			// (a dangling loop) — treat cur as its own terminus.
			break
		}
		visited[next] = true
		path = append(path, next)
		ne, err := lg.Edge(next)
		if err != nil {
			return nil, 0, err
		}
		prevEdge = next
		cur = ne.Other(cur)
	}

	return path, cur, nil
}

func unionLines(lg *lgraph.LineGraph, path []lgraph.EdgeIndex) map[string]bool {
	lines := make(map[string]bool)
	for _, eidx := range path {
		e, err := lg.Edge(eidx)
		if err != nil {
			continue
		}
		for _, occ := range e.Lines {
			lines[occ.Line] = true
		}
	}

	return lines
}

// breakIsolatedRings finds connected components reachable only through
// non-decision nodes (a pure cycle with no station and no branch) and
// promotes their lowest-indexed node to decision status, guaranteeing every
// component contributes at least one CombNode.
func breakIsolatedRings(lg *lgraph.LineGraph, nodes []lgraph.NodeIndex, decision map[lgraph.NodeIndex]bool) {
	visited := make(map[lgraph.NodeIndex]bool, len(nodes))
	for _, start := range nodes {
		if visited[start] {
			continue
		}
		component := collectComponent(lg, start, visited)
		hasDecision := false
		lowest := component[0]
		for _, idx := range component {
			if decision[idx] {
				hasDecision = true
			}
			if idx < lowest {
				lowest = idx
			}
		}
		if !hasDecision {
			decision[lowest] = true
		}
	}
}

func collectComponent(lg *lgraph.LineGraph, start lgraph.NodeIndex, visited map[lgraph.NodeIndex]bool) []lgraph.NodeIndex {
	var component []lgraph.NodeIndex
	stack := []lgraph.NodeIndex{start}
	visited[start] = true
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		component = append(component, cur)
		order, err := lg.IncidentOrder(cur)
		if err != nil {
			continue
		}
		for _, eidx := range order {
			e, err := lg.Edge(eidx)
			if err != nil {
				continue
			}
			other := e.Other(cur)
			if !visited[other] {
				visited[other] = true
				stack = append(stack, other)
			}
		}
	}

	return component
}
