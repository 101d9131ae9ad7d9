// Package lgraph implements the LineGraph: an undirected multigraph of
// transit stations and line-bundled track segments.
//
// A LineGraph node carries a geographic point and an ordered list of stops
// (stations sharing that point). A LineGraph edge carries a polyline
// geometry and an ordered list of line occurrences, each optionally
// directed toward one of its endpoints. Nodes additionally carry connection
// exceptions (a line that does not continue between two named edges at that
// node) and a set of lines known not to serve the node.
//
// Storage is arena + index: nodes and edges live in flat slices addressed by
// NodeIndex/EdgeIndex; removal tombstones the slot rather than compacting,
// so indices remain stable for the lifetime of a LineGraph. A single
// sync.RWMutex guards both arenas, mirroring the coarser of the two locks
// the teacher library uses for its vertex/edge catalogs.
package lgraph
