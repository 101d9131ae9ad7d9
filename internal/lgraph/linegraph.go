package lgraph

import (
	"fmt"
	"sort"
)

// AddNode inserts a node with external id at the given point and returns
// its index. Calling AddNode twice with the same id is an error: callers
// that want idempotent insertion should check NodeByID first.
// Complexity: O(1) amortized.
func (g *LineGraph) AddNode(externalID string, pt Point) (NodeIndex, error) {
	if externalID == "" {
		return 0, ErrEmptyNodeID
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.idIndex[externalID]; exists {
		return 0, fmt.Errorf("%w: %q", ErrDuplicateNodeID, externalID)
	}

	idx := NodeIndex(len(g.nodes))
	g.nodes = append(g.nodes, &Node{
		idx:        idx,
		ExternalID: externalID,
		Point:      pt,
		NotServed:  make(map[string]bool),
	})
	g.idIndex[externalID] = idx
	g.liveNodes++

	return idx, nil
}

// NodeByID resolves an external id to its index.
// Complexity: O(1).
func (g *LineGraph) NodeByID(externalID string) (NodeIndex, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	idx, ok := g.idIndex[externalID]

	return idx, ok
}

// Node returns the node at idx, or an error if idx was removed or never
// allocated.
// Complexity: O(1).
func (g *LineGraph) Node(idx NodeIndex) (*Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.node(idx)
}

func (g *LineGraph) node(idx NodeIndex) (*Node, error) {
	if int(idx) >= len(g.nodes) || g.nodes[idx] == nil || g.nodes[idx].removed {
		return nil, ErrNodeNotFound
	}

	return g.nodes[idx], nil
}

// Edge returns the edge at idx, or an error if idx was removed or never
// allocated.
// Complexity: O(1).
func (g *LineGraph) Edge(idx EdgeIndex) (*Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edge(idx)
}

func (g *LineGraph) edge(idx EdgeIndex) (*Edge, error) {
	if int(idx) >= len(g.edges) || g.edges[idx] == nil || g.edges[idx].removed {
		return nil, ErrEdgeNotFound
	}

	return g.edges[idx], nil
}

// AddEdge inserts an edge between from and to carrying geometry and lines,
// and returns its index. No self-loops are permitted (ErrSelfLoop) and no
// parallel edges are permitted, whatever their DontContract flag — the
// spec requires the embedder's input to be multi-edge free, so AddEdge
// rejects a second edge between the same endpoint pair (ErrParallelEdge).
// The new edge is inserted into both endpoints' circular ordering by angle.
// Complexity: O(deg(from)+deg(to)) for the reorder.
func (g *LineGraph) AddEdge(from, to NodeIndex, geometry []Point, lines []LineOccurrence) (EdgeIndex, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	fn, err := g.node(from)
	if err != nil {
		return 0, err
	}
	tn, err := g.node(to)
	if err != nil {
		return 0, err
	}
	if from == to {
		return 0, ErrSelfLoop
	}
	for _, eidx := range fn.incident {
		e := g.edges[eidx]
		if e.Other(from) == to {
			return 0, ErrParallelEdge
		}
	}

	idx := EdgeIndex(len(g.edges))
	e := &Edge{idx: idx, From: from, To: to, Geometry: geometry, Lines: lines}
	g.edges = append(g.edges, e)
	g.liveEdges++

	fn.incident = append(fn.incident, idx)
	tn.incident = append(tn.incident, idx)
	g.reorder(fn)
	g.reorder(tn)

	return idx, nil
}

// RemoveEdge tombstones an edge and drops it from both endpoints' ordering.
// Complexity: O(deg(from)+deg(to)).
func (g *LineGraph) RemoveEdge(idx EdgeIndex) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, err := g.edge(idx)
	if err != nil {
		return err
	}
	e.removed = true
	g.liveEdges--

	if fn, err := g.node(e.From); err == nil {
		fn.incident = removeIdx(fn.incident, idx)
	}
	if tn, err := g.node(e.To); err == nil {
		tn.incident = removeIdx(tn.incident, idx)
	}

	return nil
}

func removeIdx(s []EdgeIndex, target EdgeIndex) []EdgeIndex {
	out := s[:0]
	for _, v := range s {
		if v != target {
			out = append(out, v)
		}
	}

	return out
}

// RemoveNode tombstones a node and every edge incident to it.
// Complexity: O(deg(n)) edge removals, each O(deg(other endpoint)).
func (g *LineGraph) RemoveNode(idx NodeIndex) error {
	g.mu.Lock()
	n, err := g.node(idx)
	if err != nil {
		g.mu.Unlock()
		return err
	}
	incident := append([]EdgeIndex(nil), n.incident...)
	n.removed = true
	g.liveNodes--
	delete(g.idIndex, n.ExternalID)
	g.mu.Unlock()

	for _, eidx := range incident {
		_ = g.RemoveEdge(eidx)
	}

	return nil
}

// IncidentOrder returns n's incident edges in counter-clockwise circular
// order (ascending angle, starting from due east).
// Complexity: O(deg(n)).
func (g *LineGraph) IncidentOrder(idx NodeIndex) ([]EdgeIndex, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n, err := g.node(idx)
	if err != nil {
		return nil, err
	}

	return append([]EdgeIndex(nil), n.incident...), nil
}

// reorder recomputes n's circular incidence order by the geometric angle of
// each incident edge's first geometry step away from n, breaking ties by
// the edge's original insertion index (stable sort over the existing
// slice). Must be called with g.mu held for writing.
func (g *LineGraph) reorder(n *Node) {
	sort.SliceStable(n.incident, func(i, j int) bool {
		ai := g.edgeAngleAt(n, n.incident[i])
		aj := g.edgeAngleAt(n, n.incident[j])
		return ai < aj
	})
}

func (g *LineGraph) edgeAngleAt(n *Node, eidx EdgeIndex) float64 {
	e := g.edges[eidx]
	// Angle from n toward the first geometry vertex away from n, falling
	// back to the other endpoint's point when geometry is absent.
	var target Point
	if len(e.Geometry) >= 2 {
		if e.From == n.idx {
			target = e.Geometry[1]
		} else {
			target = e.Geometry[len(e.Geometry)-2]
		}
	} else {
		other := g.nodes[e.Other(n.idx)]
		target = other.Point
	}

	return n.Point.Angle(target)
}

// AddConnException records that Line does not continue between edgeA and
// edgeB at node idx.
func (g *LineGraph) AddConnException(idx NodeIndex, exc ConnException) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	n, err := g.node(idx)
	if err != nil {
		return err
	}
	n.Exceptions = append(n.Exceptions, exc)

	return nil
}

// AddNotServed records that line does not serve node idx.
func (g *LineGraph) AddNotServed(idx NodeIndex, line string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	n, err := g.node(idx)
	if err != nil {
		return err
	}
	n.NotServed[line] = true

	return nil
}

// NodeCount returns the number of live (non-removed) nodes.
func (g *LineGraph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.liveNodes
}

// EdgeCount returns the number of live (non-removed) edges.
func (g *LineGraph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.liveEdges
}

// Nodes returns the indices of every live node, in arena order.
func (g *LineGraph) Nodes() []NodeIndex {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]NodeIndex, 0, g.liveNodes)
	for _, n := range g.nodes {
		if n != nil && !n.removed {
			out = append(out, n.idx)
		}
	}

	return out
}

// Edges returns the indices of every live edge, in arena order.
func (g *LineGraph) Edges() []EdgeIndex {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]EdgeIndex, 0, g.liveEdges)
	for _, e := range g.edges {
		if e != nil && !e.removed {
			out = append(out, e.idx)
		}
	}

	return out
}
