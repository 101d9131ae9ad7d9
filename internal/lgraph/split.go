package lgraph

// This file adapts the teacher's dfs package: instead of a general-purpose
// traversal library, LineGraph only ever needs a yes/no connectivity check
// (does removing this node disconnect its neighbors?), so the DFS walker is
// inlined here rather than kept as a reusable subpackage.
//
// ContractShortEdges and SplitHighDegreeNode are the two "out of scope"
// collaborators spec.md calls out: simple adapters, not the object of this
// spec's engineering effort. The embedder core (CombGraph, GridGraph,
// Drawing, the two embedders) never calls these directly — they run once,
// before CombGraph construction, as part of the input pipeline.

// ContractShortEdges merges the endpoints of every edge whose geometry
// length is below minLen, keeping the surviving node's external id and
// averaging the two endpoints' positions. Lines, stops and exceptions of the
// removed endpoint are folded into the survivor. Self-loops produced by a
// merge are dropped; parallel edges produced by a merge keep only the first
// (callers that care about bundling should run this before constructing the
// CombGraph, where multi-edges are not expected).
// Complexity: O(E) edges scanned, each merge O(deg(n)).
func ContractShortEdges(g *LineGraph, minLen float64) error {
	for {
		merged := false
		for _, eidx := range g.Edges() {
			e, err := g.Edge(eidx)
			if err != nil || e.DontContract {
				continue
			}
			if edgeLength(e) >= minLen {
				continue
			}
			if err := mergeEdgeEndpoints(g, e); err != nil {
				return err
			}
			merged = true
			break // restart the scan: indices/adjacency changed
		}
		if !merged {
			return nil
		}
	}
}

func edgeLength(e *Edge) float64 {
	if len(e.Geometry) < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < len(e.Geometry); i++ {
		total += e.Geometry[i-1].Dist(e.Geometry[i])
	}

	return total
}

func mergeEdgeEndpoints(g *LineGraph, e *Edge) error {
	a, err := g.Node(e.From)
	if err != nil {
		return err
	}
	b, err := g.Node(e.To)
	if err != nil {
		return err
	}

	mid := Point{X: (a.Point.X + b.Point.X) / 2, Y: (a.Point.Y + b.Point.Y) / 2}
	a.Point = mid
	a.Stops = append(a.Stops, b.Stops...)
	a.Exceptions = append(a.Exceptions, b.Exceptions...)
	for line := range b.NotServed {
		a.NotServed[line] = true
	}

	if err := g.RemoveEdge(e.idx); err != nil {
		return err
	}

	// Re-home every surviving edge of b onto a, dropping self-loops and
	// the first parallel edge duplicate.
	bIncident, err := g.IncidentOrder(b.idx)
	if err != nil {
		return err
	}
	for _, beidx := range bIncident {
		be, err := g.Edge(beidx)
		if err != nil {
			continue
		}
		other := be.Other(b.idx)
		dup := false
		for _, aeidx := range a.incident {
			dup = dup || g.edges[aeidx].Other(a.idx) == other
		}
		if other == a.idx || dup {
			_ = g.RemoveEdge(beidx)
			continue
		}
		if be.From == b.idx {
			be.From = a.idx
		} else {
			be.To = a.idx
		}
		g.mu.Lock()
		b.incident = removeIdx(b.incident, beidx)
		a.incident = append(a.incident, beidx)
		g.reorder(a)
		g.mu.Unlock()
	}

	return g.RemoveNode(b.idx)
}

// SplitHighDegreeNode splits node idx, whose degree exceeds maxDeg, into a
// small cluster of zero-length-edge-connected clone nodes each with degree
// <= maxDeg, handing incident edges to the clones in contiguous blocks of
// their circular order so adjacency stays contiguous. Returns ErrUnsatisfiableDegree if
// idx's degree cannot be reduced below maxDeg this way (maxDeg < 3, where a
// clone chain cannot carry both a predecessor/successor link and payload
// edges).
// Complexity: O(deg(idx)).
func SplitHighDegreeNode(g *LineGraph, idx NodeIndex, maxDeg int) error {
	if maxDeg < 3 {
		return ErrUnsatisfiableDegree
	}
	n, err := g.Node(idx)
	if err != nil {
		return err
	}
	order, err := g.IncidentOrder(idx)
	if err != nil {
		return err
	}
	if len(order) <= maxDeg {
		return nil
	}

	payloadPerClone := maxDeg - 2 // two ports reserved for the clone-chain ring
	clonesNeeded := (len(order) + payloadPerClone - 1) / payloadPerClone
	if clonesNeeded < 2 {
		return ErrUnsatisfiableDegree
	}

	clones := make([]NodeIndex, clonesNeeded)
	clones[0] = idx
	for i := 1; i < clonesNeeded; i++ {
		cid, err := g.AddNode(cloneID(n.ExternalID, i), n.Point)
		if err != nil {
			return err
		}
		clones[i] = cid
	}
	for i := 0; i < clonesNeeded; i++ {
		if clonesNeeded == 2 && i == 1 {
			break // two clones are joined by a single link, not a ring
		}
		_, err := g.AddEdge(clones[i], clones[(i+1)%clonesNeeded], []Point{n.Point, n.Point}, nil)
		if err != nil {
			return err
		}
	}

	for i, eidx := range order {
		target := clones[i/payloadPerClone]
		if target == idx {
			continue
		}
		e, err := g.Edge(eidx)
		if err != nil {
			continue
		}
		if e.From == idx {
			e.From = target
		} else {
			e.To = target
		}
		g.mu.Lock()
		n.incident = removeIdx(n.incident, eidx)
		if tn, err := g.node(target); err == nil {
			tn.incident = append(tn.incident, eidx)
			g.reorder(tn)
		}
		g.mu.Unlock()
	}

	return nil
}

func cloneID(base string, n int) string {
	return base + "__split" + itoa(n)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := [20]byte{}
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}

	return string(digits[i:])
}

// Connected reports whether every live node is reachable from any one live
// node via live edges (used after ContractShortEdges/SplitHighDegreeNode to
// confirm the pipeline preserved topology).
// Complexity: O(V+E).
func Connected(g *LineGraph) bool {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return true
	}

	visited := make(map[NodeIndex]bool, len(nodes))
	stack := []NodeIndex{nodes[0]}
	visited[nodes[0]] = true
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order, err := g.IncidentOrder(cur)
		if err != nil {
			continue
		}
		for _, eidx := range order {
			e, err := g.Edge(eidx)
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

	return len(visited) == len(nodes)
}
