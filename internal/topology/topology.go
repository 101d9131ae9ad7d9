// Package topology synthesizes the small, unweighted, undirected graphs
// internal/fixtures needs for end-to-end scenario tests: a cycle, a star,
// and an orthogonal grid. It carries over the edge-emission order and ID
// scheme of the teacher's builder.Cycle/Star/Grid constructors
// (_examples/katalvlaran-lvlath/builder/impl_cycle.go, impl_star.go,
// impl_grid.go) but drops everything those constructors exist to support
// and fixtures never uses: directed/weighted/multigraph modes, pluggable
// ID schemes, functional options, and the nine other topology generators
// (Bipartite, Complete, Hexagram, Letters, Path, PlatonicSolid,
// RandomRegular, RandomSparse, Wheel) the teacher ships. A fixture graph
// here is always undirected, unweighted, and built with the teacher's
// default numeric/"r,c" ID scheme.
package topology

import (
	"fmt"
)

// Edge is a single undirected connection between two vertex IDs.
type Edge struct {
	From, To string
}

// Graph is an adjacency-list topology: vertex IDs with insertion order
// preserved, and the edges added between them.
type Graph struct {
	order []string
	seen  map[string]bool
	edges []Edge
}

// NewGraph returns an empty topology.
func NewGraph() *Graph {
	return &Graph{seen: make(map[string]bool)}
}

// AddVertex inserts id, failing if it was already added.
func (g *Graph) AddVertex(id string) error {
	if g.seen[id] {
		return fmt.Errorf("topology: duplicate vertex %q", id)
	}
	g.seen[id] = true
	g.order = append(g.order, id)
	return nil
}

// AddEdge connects from and to, failing if either endpoint is unknown.
func (g *Graph) AddEdge(from, to string) error {
	if !g.seen[from] {
		return fmt.Errorf("topology: unknown vertex %q", from)
	}
	if !g.seen[to] {
		return fmt.Errorf("topology: unknown vertex %q", to)
	}
	g.edges = append(g.edges, Edge{From: from, To: to})
	return nil
}

// Vertices returns every vertex ID in insertion order.
func (g *Graph) Vertices() []string {
	return g.order
}

// Edges returns every edge in emission order.
func (g *Graph) Edges() []Edge {
	return g.edges
}

const (
	minCycleNodes = 3
	minStarNodes  = 2
	minGridDim    = 1
	centerID      = "Center"
)

// Cycle builds an n-vertex simple cycle C_n (n >= 3): vertices "0".."n-1",
// edges i -> (i+1)%n in ascending i.
func Cycle(n int) (*Graph, error) {
	if n < minCycleNodes {
		return nil, fmt.Errorf("topology: Cycle: n=%d < min=%d", n, minCycleNodes)
	}
	g := NewGraph()
	for i := 0; i < n; i++ {
		if err := g.AddVertex(fmt.Sprintf("%d", i)); err != nil {
			return nil, err
		}
	}
	for i := 0; i < n; i++ {
		u, v := fmt.Sprintf("%d", i), fmt.Sprintf("%d", (i+1)%n)
		if err := g.AddEdge(u, v); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Star builds a hub-and-spoke topology with n vertices: a fixed hub
// "Center" and n-1 leaves "1".."n-1", each connected Center -> leaf.
func Star(n int) (*Graph, error) {
	if n < minStarNodes {
		return nil, fmt.Errorf("topology: Star: n=%d < min=%d", n, minStarNodes)
	}
	g := NewGraph()
	if err := g.AddVertex(centerID); err != nil {
		return nil, err
	}
	for i := 1; i < n; i++ {
		leaf := fmt.Sprintf("%d", i)
		if err := g.AddVertex(leaf); err != nil {
			return nil, err
		}
		if err := g.AddEdge(centerID, leaf); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Grid builds a rows x cols orthogonal lattice with 4-neighborhoods:
// vertices "r,c" in row-major order, edges to the right (r,c+1) and
// bottom (r+1,c) neighbor where they exist.
func Grid(rows, cols int) (*Graph, error) {
	if rows < minGridDim || cols < minGridDim {
		return nil, fmt.Errorf("topology: Grid: rows=%d, cols=%d (each must be >= %d)", rows, cols, minGridDim)
	}
	g := NewGraph()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if err := g.AddVertex(fmt.Sprintf("%d,%d", r, c)); err != nil {
				return nil, err
			}
		}
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			u := fmt.Sprintf("%d,%d", r, c)
			if c+1 < cols {
				if err := g.AddEdge(u, fmt.Sprintf("%d,%d", r, c+1)); err != nil {
					return nil, err
				}
			}
			if r+1 < rows {
				if err := g.AddEdge(u, fmt.Sprintf("%d,%d", r+1, c)); err != nil {
					return nil, err
				}
			}
		}
	}
	return g, nil
}
