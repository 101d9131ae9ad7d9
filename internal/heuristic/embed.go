package heuristic

import (
	"math/rand"
	"time"

	"github.com/octilinear/schematize/internal/combgraph"
	"github.com/octilinear/schematize/internal/drawing"
	"github.com/octilinear/schematize/internal/octigrid"
)

// Embedder runs the heuristic ordered shortest-path search and local
// search over one CombGraph/GridGraph pair.
type Embedder struct {
	comb     *combgraph.CombGraph
	gridSize float64
	pens     octigrid.Penalties
	penPerGrid float64
	opts     Options
	rng      *rand.Rand
	deadline time.Time
}

// New builds an Embedder for comb over a lattice built at the given
// Options' GridSize, using pens for every grid/bend/move cost.
func New(comb *combgraph.CombGraph, pens octigrid.Penalties, opts Options) *Embedder {
	e := &Embedder{
		comb:       comb,
		gridSize:   opts.GridSize,
		pens:       pens,
		penPerGrid: penPerGrid(pens),
		opts:       opts,
		rng:        rand.New(rand.NewSource(opts.Seed)),
	}
	if opts.AbortAfter > 0 {
		e.deadline = time.Now().Add(opts.AbortAfter)
	}
	return e
}

func (emb *Embedder) pastDeadline() bool {
	return !emb.deadline.IsZero() && time.Now().After(emb.deadline)
}

// Run executes the top-level loop: up to opts.MaxOrderings shuffled
// orderings in total, keeping the best-scoring complete Drawing, then local
// search. Returns ErrNoEmbeddingFound if no ordering
// ever produced a complete Drawing before the retry budget or wall-clock
// deadline was exhausted.
func (emb *Embedder) Run(grid *octigrid.GridGraph) (*drawing.Drawing, error) {
	var best *drawing.Drawing

	for attempt := 0; attempt < emb.opts.MaxOrderings; attempt++ {
		if emb.pastDeadline() {
			break
		}
		d, ok := emb.tryOrdering(grid)
		if !ok {
			continue
		}
		// Reset the lattice to empty before judging this attempt against
		// the running best, so every attempt starts from the same clean
		// state and only the eventual winner's footprint survives.
		d.EraseFromGrid(grid)
		if best == nil || d.Score() < best.Score() {
			best = d
		}
	}

	if best == nil {
		return nil, ErrNoEmbeddingFound
	}

	if err := best.ApplyToGrid(grid); err != nil {
		return nil, err
	}
	emb.localSearch(grid, best)
	return best, nil
}

// tryOrdering routes every CombEdge once, in a freshly shuffled order. On
// success the Drawing's footprint is left applied to grid (the caller
// resets it); on failure grid is left exactly as it was found.
func (emb *Embedder) tryOrdering(grid *octigrid.GridGraph) (*drawing.Drawing, bool) {
	order := getOrdering(emb.comb, emb.rng)
	d := drawing.New(emb.comb)

	for _, c := range order {
		if err := emb.routeEdge(grid, d, c); err != nil {
			d.EraseFromGrid(grid)
			return nil, false
		}
	}
	return d, true
}
