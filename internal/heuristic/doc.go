// Package heuristic implements HeuristicEmbedder: the ordered
// shortest-path embedder that produces the first Drawing of a CombGraph
// onto a GridGraph, and the local-search pass that improves it.
//
// The embedder routes one CombEdge at a time, in an order produced by a
// breadth-first walk over randomly shuffled per-node incidence lists
// (getOrdering), resolving each endpoint to a candidate sink and running a
// single multi-target Dijkstra search per edge (routeEdge). Failing
// orderings are retried with a fresh shuffle; the best scoring Drawing
// found within the retry budget and wall-clock deadline is returned.
//
// Every source of randomness is drawn from a single seeded *rand.Rand, per
// the ordering pass and node-retry shuffle both needing to be
// reproducible from one integer seed.
package heuristic
