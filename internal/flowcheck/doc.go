// Package flowcheck is a small directed capacitated graph plus a Dinic
// max-flow solver, adapted from the teacher's core/flow packages into one
// small self-contained package. It exists for one purpose: letting the
// ILP embedder confirm, before trusting a solved variable assignment, that
// the grid edges a CombEdge claims really do carry one unit of flow from
// its source sink to its target sink with no branching — the "flow
// constraints guarantee a simple path exists" property the formulation
// depends on.
package flowcheck
