// Package octigrid implements GridGraph: the octilinear search space the
// embedders route combination edges on.
//
// A GridGraph is a rectangular lattice of sink nodes, one per grid cell.
// Every sink owns exactly eight port nodes, one per compass direction.
// Three kinds of edges connect them:
//
//   - grid edges, between a port of one sink and the opposite port of its
//     neighbor in that direction — these carry the actual routing and a
//     mutable cost the embedders update as they settle paths;
//   - bend edges, between two ports of the same sink — these cost the
//     configured turning penalty for the angle between the two directions;
//   - sink edges, between a sink and each of its ports — infinite by
//     default, opened to a finite cost when that sink becomes a candidate
//     station position.
//
// The package is adapted from the teacher's gridgraph subpackage (cell
// geometry, Conn8 neighbor offsets, sentinel errors) and its dijkstra
// subpackage (the heap-based shortest-path runner, generalized here to a
// multi-target search over a function-defined neighbor relation instead of
// a materialized core.Graph, per spec.md's Dijkstra-interface design note).
package octigrid
