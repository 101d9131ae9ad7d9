package heuristic

import (
	"time"

	"github.com/octilinear/schematize/internal/octigrid"
)

// Options configures a HeuristicEmbedder run. Construct via DefaultOptions
// and the With* functions, the same functional-option shape the rest of
// this module's graph packages use.
type Options struct {
	GridSize float64 // world-space distance between adjacent sinks

	SourceRadiusMul float64 // candidate-source search radius, in GridSize units
	TargetRadiusMul float64 // initial candidate-target search radius, in GridSize units

	MaxOrderings     int           // retries of a fresh shuffled ordering before giving up
	LocalSearchIters int           // local-search passes over every comb node
	ImprovementEps   float64       // stop local search when a pass improves the score less than this
	AbortAfter       time.Duration // wall-clock budget for the whole run; zero means unbounded

	// RestrictLocalSearch, when in (0,1), visits only that fraction of
	// comb nodes (resampled fresh each pass) instead of all of them,
	// trading thoroughness for wall-clock on large networks. 0 or >=1
	// visits every node every pass.
	RestrictLocalSearch float64

	Seed int64 // seeds every shuffle this embedder performs
}

// Option mutates an Options value.
type Option func(*Options)

// DefaultOptions returns the spec's default tuning: a 1.7x source radius,
// 3x target radius, 10 ordering retries, 100 local-search iterations, a
// 0.05 improvement floor, and no wall-clock limit.
func DefaultOptions(gridSize float64, seed int64) Options {
	return Options{
		GridSize:         gridSize,
		SourceRadiusMul:  1.7,
		TargetRadiusMul:  3,
		MaxOrderings:     10,
		LocalSearchIters: 100,
		ImprovementEps:   0.05,
		Seed:             seed,
	}
}

// WithAbortAfter sets a wall-clock deadline for the whole embedding run.
func WithAbortAfter(d time.Duration) Option {
	return func(o *Options) { o.AbortAfter = d }
}

// WithMaxOrderings overrides the number of shuffled-ordering retries.
func WithMaxOrderings(n int) Option {
	return func(o *Options) { o.MaxOrderings = n }
}

// WithLocalSearchIters overrides the local-search iteration cap.
func WithLocalSearchIters(n int) Option {
	return func(o *Options) { o.LocalSearchIters = n }
}

// WithRestrictLocalSearch sets the per-pass node-visit fraction.
func WithRestrictLocalSearch(frac float64) Option {
	return func(o *Options) { o.RestrictLocalSearch = frac }
}

// penPerGrid is the per-grid-cell move cost used to price candidate sink
// positions, per spec: 5 + (p45 - p135) + max(diagPen, horizPen).
func penPerGrid(pens octigrid.Penalties) float64 {
	return 5 + (pens.P45 - pens.P135) + maxFloat(pens.DiagonalPen, pens.HorizontalPen)
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
