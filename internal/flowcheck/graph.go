package flowcheck

import (
	"errors"
	"fmt"
)

// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
var ErrVertexNotFound = errors.New("flowcheck: vertex not found")

// edge is one directed capacitated arc. Flow is filled in by Dinic.
type edge struct {
	to       string
	cap      float64
	flow     float64
	reverse  int // index, in the owning vertex's adjacency slice, of the paired residual arc
}

// Graph is a directed capacitated multigraph addressed by string vertex ID,
// adapted from the teacher's core.Graph down to just what Dinic needs.
type Graph struct {
	adj map[string][]edge
}

// NewGraph returns an empty Graph.
func NewGraph() *Graph {
	return &Graph{adj: make(map[string][]edge)}
}

// AddVertex registers id if not already present.
func (g *Graph) AddVertex(id string) {
	if _, ok := g.adj[id]; !ok {
		g.adj[id] = nil
	}
}

// HasVertex reports whether id was registered.
func (g *Graph) HasVertex(id string) bool {
	_, ok := g.adj[id]
	return ok
}

// AddEdge adds a directed arc from→to with the given capacity, plus its
// zero-capacity residual twin, both vertices assumed already added.
func (g *Graph) AddEdge(from, to string, cap float64) error {
	if !g.HasVertex(from) {
		return fmt.Errorf("%w: %q", ErrVertexNotFound, from)
	}
	if !g.HasVertex(to) {
		return fmt.Errorf("%w: %q", ErrVertexNotFound, to)
	}
	fi := len(g.adj[from])
	ti := len(g.adj[to])
	g.adj[from] = append(g.adj[from], edge{to: to, cap: cap, reverse: ti})
	g.adj[to] = append(g.adj[to], edge{to: from, cap: 0, reverse: fi})
	return nil
}
