// Package pipeline wires geoio, config, combgraph, octigrid, heuristic and
// ilp together into the single end-to-end operation both cmd/octischematize
// and internal/httpapi expose: input bytes in, embedded GeoJSON + score
// JSON out. Kept separate from cmd/ so the CLI and the HTTP service share
// one implementation instead of the service re-deriving the CLI's glue.
package pipeline

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/octilinear/schematize/internal/combgraph"
	"github.com/octilinear/schematize/internal/config"
	"github.com/octilinear/schematize/internal/drawing"
	"github.com/octilinear/schematize/internal/geodev"
	"github.com/octilinear/schematize/internal/geoio"
	"github.com/octilinear/schematize/internal/heuristic"
	"github.com/octilinear/schematize/internal/ilp"
	"github.com/octilinear/schematize/internal/lgraph"
	"github.com/octilinear/schematize/internal/octigrid"
)

// Kind classifies a pipeline failure the way spec.md §7 does, so callers
// (CLI exit codes, HTTP status codes) can map it without re-deriving the
// classification from the error text.
type Kind int

const (
	KindOK Kind = iota
	KindMalformedInput
	KindUnsatisfiableDegree
	KindNoEmbeddingFound
	KindSolverUnavailable
	KindTimeout
)

// Error wraps a pipeline failure with its Kind.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Input bundles everything needed for one run.
type Input struct {
	Graph      []byte
	FromDOT    bool
	Obstacles  []byte // optional; nil disables obstacle loading
	Cfg        *config.Config
}

// Output is the geoio-ready result of one run plus the score dictionary.
type Output struct {
	GeoJSON []byte
	Score   *geoio.Score
}

// Run executes the full schematize pipeline: parse input, contract/split,
// build CombGraph + GridGraph, embed (heuristic or ILP, warm-started from
// the heuristic in ILP mode), extract, and encode.
func Run(ctx context.Context, in Input) (*Output, error) {
	start := time.Now()
	cfg := in.Cfg
	if cfg.BaseGraph != config.BaseOcti {
		return nil, &Error{Kind: KindMalformedInput, Err: errors.Errorf("pipeline: base graph %q is not implemented", cfg.BaseGraph)}
	}

	lg, err := parseGraph(in.Graph, in.FromDOT)
	if err != nil {
		return nil, &Error{Kind: KindMalformedInput, Err: err}
	}

	if err := lgraph.ContractShortEdges(lg, 0); err != nil {
		return nil, &Error{Kind: KindMalformedInput, Err: errors.Wrap(err, "contracting short edges")}
	}
	for _, n := range lg.Nodes() {
		node, err := lg.Node(n)
		if err != nil {
			continue
		}
		if node.Degree() > 8 {
			if err := lgraph.SplitHighDegreeNode(lg, n, 8); err != nil {
				return nil, &Error{Kind: KindUnsatisfiableDegree, Err: err}
			}
		}
	}

	comb, err := combgraph.Build(lg)
	if err != nil {
		return nil, &Error{Kind: KindMalformedInput, Err: errors.Wrap(err, "building comb graph")}
	}

	grid, err := buildGrid(lg, cfg)
	if err != nil {
		return nil, &Error{Kind: KindMalformedInput, Err: err}
	}

	if in.Obstacles != nil {
		if err := geoio.ReadObstacles(in.Obstacles, grid); err != nil {
			return nil, &Error{Kind: KindMalformedInput, Err: errors.Wrap(err, "loading obstacles")}
		}
	}

	runCtx := ctx
	var cancel context.CancelFunc
	if cfg.AbortAfter > 0 {
		runCtx, cancel = context.WithTimeout(ctx, cfg.AbortAfter)
		defer cancel()
	}

	heurOpts := heuristic.DefaultOptions(gridCellSize(grid), 1)
	heurOpts.AbortAfter = cfg.AbortAfter
	heurOpts.RestrictLocalSearch = cfg.RestrictLocalSearch
	heurEmb := heuristic.New(comb, grid.Penalties(), heurOpts)

	heurDrawing, err := heurEmb.Run(grid)
	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return nil, &Error{Kind: KindTimeout, Err: err}
		}
		return nil, &Error{Kind: KindNoEmbeddingFound, Err: err}
	}

	var final *drawing.Drawing
	switch cfg.OptimMode {
	case config.OptimILP:
		heurDrawing.EraseFromGrid(grid)

		buildOpts := ilp.DefaultBuildOptions()
		buildOpts.MaxGridDistMul = cfg.MaxGridDistMul
		solveOpts := ilp.SolveOptions{
			SolverPath: cfg.ILPSolverPath,
			TimeLimit:  cfg.ILPTimeLimit,
			KeepFiles:  cfg.ILPNoSolve,
		}
		embedder := ilp.New(buildOpts, solveOpts)
		final, err = embedder.Run(runCtx, grid, comb, heurDrawing)
		if err != nil {
			switch {
			case errors.Is(err, ilp.ErrSolverUnavailable):
				return nil, &Error{Kind: KindSolverUnavailable, Err: err}
			case errors.Is(err, ilp.ErrSolverTimeout):
				return nil, &Error{Kind: KindTimeout, Err: err}
			case errors.Is(err, ilp.ErrInfeasible):
				return nil, &Error{Kind: KindNoEmbeddingFound, Err: err}
			default:
				return nil, &Error{Kind: KindNoEmbeddingFound, Err: err}
			}
		}
	default:
		final = heurDrawing
	}

	geoViolations := 0
	if cfg.EnforceGeo > 0 {
		bad, err := geodev.Violations(lg, comb, grid, final, cfg.EnforceGeo)
		if err != nil {
			return nil, &Error{Kind: KindNoEmbeddingFound, Err: errors.Wrap(err, "checking geo-deviation")}
		}
		if cfg.OptimMode != config.OptimILP {
			for _, c := range bad {
				_ = heurEmb.RerouteEdge(grid, final, c, 0.5)
			}
			bad, err = geodev.Violations(lg, comb, grid, final, cfg.EnforceGeo)
			if err != nil {
				return nil, &Error{Kind: KindNoEmbeddingFound, Err: errors.Wrap(err, "re-checking geo-deviation")}
			}
		}
		geoViolations = len(bad)
		for _, c := range bad {
			dev, err := geodev.Deviation(lg, comb, grid, final, c)
			if err == nil {
				final.AddPenalty(dev * cfg.Penalties.GeoDeviationPen)
			}
		}
	}

	transit, err := final.GetTransitGraph(grid)
	if err != nil {
		return nil, &Error{Kind: KindNoEmbeddingFound, Err: errors.Wrap(err, "extracting transit graph")}
	}

	var out []byte
	if cfg.PrintMode == config.PrintGridGraph {
		out, err = geoio.WriteGridGraph(grid)
	} else {
		out, err = geoio.WriteGeoJSON(transit)
	}
	if err != nil {
		return nil, &Error{Kind: KindNoEmbeddingFound, Err: err}
	}

	score := &geoio.Score{}
	score.Scores.TotalScore = final.Score()
	score.GridGraphSize.Nodes = grid.SinkCount()
	score.GridGraphSize.Edges = len(grid.AllEdges())
	score.Misc.Method = string(cfg.OptimMode)
	score.Misc.Deg2Heur = cfg.Deg2Heuristic
	score.Misc.MaxGridDist = cfg.MaxGridDistMul
	score.Misc.GeoViolations = geoViolations
	score.Pens = penaltyMap(grid.Penalties())
	score.TimeMs = time.Since(start).Milliseconds()
	score.Procs = 1

	return &Output{GeoJSON: out, Score: score}, nil
}

func parseGraph(data []byte, fromDOT bool) (*lgraph.LineGraph, error) {
	if fromDOT {
		return geoio.ReadDOT(data)
	}
	return geoio.ReadGeoJSON(data)
}

// buildGrid sizes a GridGraph from cfg's grid-size spec over lg's bounding
// box, padded by 1+cfg.BorderRadius cells on every side.
func buildGrid(lg *lgraph.LineGraph, cfg *config.Config) (*octigrid.GridGraph, error) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	count := 0
	for _, nidx := range lg.Nodes() {
		n, err := lg.Node(nidx)
		if err != nil {
			continue
		}
		count++
		minX = math.Min(minX, n.Point.X)
		minY = math.Min(minY, n.Point.Y)
		maxX = math.Max(maxX, n.Point.X)
		maxY = math.Max(maxY, n.Point.Y)
	}
	if count == 0 {
		return nil, errors.New("pipeline: input graph has no nodes")
	}

	cellSize, err := resolveGridSize(cfg.GridSizeSpec, maxX-minX, maxY-minY, count)
	if err != nil {
		return nil, err
	}

	pad := cellSize * (1 + cfg.BorderRadius)
	origin := lgraph.Point{X: minX - pad, Y: minY - pad}
	width := int(math.Ceil((maxX-minX+2*pad)/cellSize)) + 1
	height := int(math.Ceil((maxY-minY+2*pad)/cellSize)) + 1
	if width < 2 {
		width = 2
	}
	if height < 2 {
		height = 2
	}

	return octigrid.New(width, height, cellSize, origin, cfg.Penalties)
}

// resolveGridSize interprets the "<N>" or "<N>%" spec: an absolute cell
// size, or a percentage of the input's average nearest-neighbor spacing
// (approximated here by the bounding box diagonal divided by sqrt(node
// count + 1), a standard density estimate for scattered point sets).
func resolveGridSize(spec string, spanX, spanY float64, nodeCount int) (float64, error) {
	if spec == "" {
		return 0, errors.New("pipeline: empty grid-size spec")
	}
	if spec[len(spec)-1] == '%' {
		var pct float64
		if _, err := fmt.Sscanf(spec[:len(spec)-1], "%f", &pct); err != nil {
			return 0, errors.Wrapf(err, "pipeline: invalid grid-size %q", spec)
		}
		diag := math.Hypot(spanX, spanY)
		density := diag / math.Sqrt(float64(nodeCount)+1)
		size := density * pct / 100
		if size <= 0 {
			return 0, errors.Errorf("pipeline: grid-size %q resolved to non-positive cell size", spec)
		}
		return size, nil
	}
	var n float64
	if _, err := fmt.Sscanf(spec, "%f", &n); err != nil {
		return 0, errors.Wrapf(err, "pipeline: invalid grid-size %q", spec)
	}
	if n <= 0 {
		return 0, errors.Errorf("pipeline: grid-size %q must be positive", spec)
	}
	return n, nil
}

func gridCellSize(grid *octigrid.GridGraph) float64 {
	a := grid.SinkPos(0)
	if grid.Width() > 1 {
		if s, ok := grid.SinkIndexAt(1, 0); ok {
			return a.Dist(grid.SinkPos(s))
		}
	}
	return 1
}

func penaltyMap(p octigrid.Penalties) map[string]float64 {
	return map[string]float64{
		"p0": p.P0, "p45": p.P45, "p90": p.P90, "p135": p.P135,
		"horizontal": p.HorizontalPen, "vertical": p.VerticalPen, "diagonal": p.DiagonalPen,
		"density": p.DensityPen, "node-move": p.NodeMovePen, "geo-deviation": p.GeoDeviationPen,
	}
}
