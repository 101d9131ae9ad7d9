// Package ilp implements ILPEmbedder: the mixed-integer formulation that
// simultaneously chooses every CombNode's sink and every CombEdge's
// grid-edge path, optimal up to the configured solver time limit.
//
// Build constructs the variable set and constraint rows described in the
// specification (assignment, edge uniqueness, flow balance, single sink
// per comb edge, inner use, no-cross, direction definition, circular
// order, angle indicators) as an in-memory Model; WriteMPS emits it as an
// MPS file and WriteWarmStart as an optional MST warm-start file seeded from
// a heuristic Drawing; Solve shells out to an external MIP solver and parses
// its solution back; Extract walks the solved y variables into a Drawing,
// using internal/flowcheck (a Dinic max-flow adapted from the teacher's flow
// package) to confirm each comb edge's
// claimed edges form a single connected path from its source sink to its
// target sink before trusting the extraction.
package ilp
