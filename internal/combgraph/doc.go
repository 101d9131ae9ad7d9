// Package combgraph builds the CombGraph: the contraction of a LineGraph's
// degree-2, stop-free chains into single combination edges connecting only
// decision nodes (stations or branch points).
//
// A CombGraph is the unit the embedders actually route on the grid — its
// nodes get sinks, its edges get grid-edge paths. It is built once from a
// (contracted, degree-split) LineGraph and is immutable afterward, the same
// build-once-then-traverse lifecycle the teacher library uses for bfs/dfs
// traversal results over a core.Graph.
package combgraph
