package combgraph

import (
	"errors"

	"github.com/octilinear/schematize/internal/lgraph"
)

// ErrEmptyLineGraph indicates Build was called on a LineGraph with no nodes.
var ErrEmptyLineGraph = errors.New("combgraph: line graph has no nodes")

// NodeIndex addresses a CombNode within a CombGraph's arena.
type NodeIndex uint32

// EdgeIndex addresses a CombEdge within a CombGraph's arena.
type EdgeIndex uint32

// CombNode wraps one decision LineGraph node (a stop or a branch point).
type CombNode struct {
	idx    NodeIndex
	LGNode lgraph.NodeIndex
	Point  lgraph.Point
	Stops  []lgraph.Stop

	// Order is the circular ordering of incident CombEdges, restricted
	// from the owning LineGraph node's full incidence order to just the
	// edges that survived contraction.
	Order []EdgeIndex
}

// Index returns n's stable arena index.
func (n *CombNode) Index() NodeIndex { return n.idx }

// CombEdge is a routed unit: a chain of LineGraph edges between two
// CombNodes whose interior LineGraph nodes all have degree 2 and carry no
// stop. Build decides this from degree and stops alone: the line sets and
// connection exceptions at interior nodes are not checked, so a line that
// ends or does not continue at an interior node is still folded in.
type CombEdge struct {
	idx      EdgeIndex
	From, To NodeIndex

	// Path is the sequence of LineGraph edges from From to To, in
	// traversal order (reversing it yields To to From).
	Path []lgraph.EdgeIndex

	// Lines is the union of line ids carried by every edge in Path.
	Lines map[string]bool
}

// Index returns e's stable arena index.
func (e *CombEdge) Index() EdgeIndex { return e.idx }

// Other returns the endpoint of e that is not n.
func (e *CombEdge) Other(n NodeIndex) NodeIndex {
	if e.From == n {
		return e.To
	}
	return e.From
}

// CombGraph is the decision-node contraction of a LineGraph, built once by
// Build and treated as immutable for the lifetime of an embedding run.
type CombGraph struct {
	nodes []*CombNode
	edges []*CombEdge

	lgToComb map[lgraph.NodeIndex]NodeIndex
}

// Node returns the CombNode at idx.
func (g *CombGraph) Node(idx NodeIndex) *CombNode { return g.nodes[idx] }

// Edge returns the CombEdge at idx.
func (g *CombGraph) Edge(idx EdgeIndex) *CombEdge { return g.edges[idx] }

// NodeCount returns the number of CombNodes.
func (g *CombGraph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of CombEdges.
func (g *CombGraph) EdgeCount() int { return len(g.edges) }

// NodeForLineGraphNode resolves a decision LineGraph node to its CombNode,
// if one was created for it.
func (g *CombGraph) NodeForLineGraphNode(n lgraph.NodeIndex) (NodeIndex, bool) {
	idx, ok := g.lgToComb[n]
	return idx, ok
}

// Nodes returns every CombNode index, in arena order.
func (g *CombGraph) Nodes() []NodeIndex {
	out := make([]NodeIndex, len(g.nodes))
	for i := range g.nodes {
		out[i] = NodeIndex(i)
	}
	return out
}

// Edges returns every CombEdge index, in arena order.
func (g *CombGraph) Edges() []EdgeIndex {
	out := make([]EdgeIndex, len(g.edges))
	for i := range g.edges {
		out[i] = EdgeIndex(i)
	}
	return out
}
