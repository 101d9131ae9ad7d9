package heuristic

import (
	"math/rand"

	"github.com/octilinear/schematize/internal/combgraph"
)

// getOrdering produces one pass over every CombEdge, reachable via a
// breadth-first walk that starts a new traversal from the lowest-indexed
// unvisited CombNode whenever the frontier empties (covering every
// connected component), and at each popped node pushes its incident edges
// in a randomly shuffled copy of that node's circular ordering.
func getOrdering(comb *combgraph.CombGraph, rng *rand.Rand) []combgraph.EdgeIndex {
	visitedNode := make(map[combgraph.NodeIndex]bool, comb.NodeCount())
	emittedEdge := make(map[combgraph.EdgeIndex]bool, comb.EdgeCount())
	order := make([]combgraph.EdgeIndex, 0, comb.EdgeCount())

	for _, root := range comb.Nodes() {
		if visitedNode[root] {
			continue
		}
		queue := []combgraph.NodeIndex{root}
		visitedNode[root] = true

		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]

			incident := append([]combgraph.EdgeIndex(nil), comb.Node(cur).Order...)
			rng.Shuffle(len(incident), func(i, j int) { incident[i], incident[j] = incident[j], incident[i] })

			for _, e := range incident {
				if emittedEdge[e] {
					continue
				}
				emittedEdge[e] = true
				order = append(order, e)

				other := comb.Edge(e).Other(cur)
				if !visitedNode[other] {
					visitedNode[other] = true
					queue = append(queue, other)
				}
			}
		}
	}

	return order
}
