package heuristic

import "errors"

// ErrNoEmbeddingFound indicates the top-level loop exhausted its retry
// budget (or its wall-clock deadline) without ever producing a complete
// Drawing.
var ErrNoEmbeddingFound = errors.New("heuristic: no embedding found")

// errRouteFailed is returned internally by routeEdge when a single comb
// edge could not be routed; the top-level loop treats it as "try another
// ordering," not as a terminal failure.
var errRouteFailed = errors.New("heuristic: comb edge could not be routed")
