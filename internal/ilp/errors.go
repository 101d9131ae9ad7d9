package ilp

import "errors"

// ErrSolverUnavailable indicates the configured solver binary could not be
// found or failed to start.
var ErrSolverUnavailable = errors.New("ilp: solver unavailable")

// ErrInfeasible indicates the solver proved the model has no feasible
// solution.
var ErrInfeasible = errors.New("ilp: model is infeasible")

// ErrSolverTimeout indicates the solver hit its time limit without
// reaching a proven-optimal (or any) solution.
var ErrSolverTimeout = errors.New("ilp: solver timed out")

// ErrBadExtraction indicates the solved variable assignment did not
// decompose into valid simple paths per comb edge.
var ErrBadExtraction = errors.New("ilp: solution did not extract to a valid drawing")
