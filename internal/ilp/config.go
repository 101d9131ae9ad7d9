package ilp

import (
	"bytes"
	"context"

	"github.com/octilinear/schematize/internal/combgraph"
	"github.com/octilinear/schematize/internal/drawing"
	"github.com/octilinear/schematize/internal/octigrid"
)

// Embedder runs the full ILP pipeline: build, warm start, solve, extract.
type Embedder struct {
	build BuildOptions
	solve SolveOptions
}

// New returns an Embedder configured with the given build and solve
// options.
func New(build BuildOptions, solve SolveOptions) *Embedder {
	return &Embedder{build: build, solve: solve}
}

// Run builds the MIP for comb over grid, warm-starts it from warm (if
// non-nil), solves it, and extracts the resulting Drawing.
func (e *Embedder) Run(ctx context.Context, grid *octigrid.GridGraph, comb *combgraph.CombGraph, warm *drawing.Drawing) (*drawing.Drawing, error) {
	m, err := Build(grid, comb, e.build)
	if err != nil {
		return nil, err
	}

	var mst []byte
	if warm != nil {
		var buf bytes.Buffer
		if err := WriteWarmStart(&buf, m, comb, grid, warm); err != nil {
			return nil, err
		}
		mst = buf.Bytes()
	}

	sol, err := Solve(ctx, m, mst, e.solve)
	if err != nil {
		return nil, err
	}

	return Extract(m, sol, grid, comb)
}
