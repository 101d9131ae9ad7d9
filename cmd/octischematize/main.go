// Command octischematize reads a transit network and writes back an
// octilinear schematization: nodes moved onto a regular grid, edges routed
// along the eight compass directions, subject to the topology and
// tightness constraints spec'd for the embedders in internal/heuristic and
// internal/ilp.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/octilinear/schematize/internal/config"
	"github.com/octilinear/schematize/internal/metrics"
	"github.com/octilinear/schematize/internal/octigrid"
	"github.com/octilinear/schematize/internal/pipeline"
)

var (
	inFile      = flag.String("in", "", "Input network file (GeoJSON by default, DOT with --from-dot)")
	outFile     = flag.String("out", "", "Output GeoJSON file (default: stdout)")
	scoreFile   = flag.String("score-out", "", "Optional output file for the score JSON dictionary")
	fromDOT     = flag.Bool("from-dot", false, "Parse --in as GraphViz DOT instead of GeoJSON")
	gridSize    = flag.String("grid-size", "", "Grid cell size: an absolute value, or a percentage (e.g. \"50%\") of the estimated point density")
	optimMode   = flag.String("optim-mode", "", "Embedding method: heur or ilp")
	maxGridDist = flag.Float64("max-grid-dist", 0, "ILP candidate-sink radius multiplier (0 keeps the config default)")
	deg2Heur    = flag.Int("deg2-heur", -1, "Degree-2 node heuristic setting, reported in the score JSON; comb-graph contraction does not read it (1 on, 0 off, -1 keeps the config default)")
	borderRad   = flag.Float64("border-rad", -1, "Grid padding, in cell units, added to the one-cell margin around the input bounding box (-1 keeps the config default)")
	penaltiesArg = flag.String("penalties", "", "Comma-separated key=value overrides, e.g. p0=16,p45=8,diagonal=1.4,geo-deviation=1")
	enforceGeo  = flag.Float64("enforce-geo", -1, "Max allowed normalized DTW deviation of a route from its source geometry; <=0 disables the check (-1 keeps the config default)")
	restrictLS  = flag.Float64("restrict-local-search", -1, "Fraction of comb nodes local search visits per pass (-1 keeps the config default)")
	ilpSolver   = flag.String("ilp-solver", "", "Path to the external MIP solver binary")
	ilpTimeLim  = flag.Int("ilp-time-limit", -1, "ILP solver wall-clock budget in seconds; 0 means unbounded (-1 keeps the config default)")
	ilpNoSolve  = flag.Bool("ilp-no-solve", false, "Keep the ILP model, warm-start and solution files in the OS temp dir instead of deleting them; the solver still runs")
	obstacles   = flag.String("obstacles", "", "Optional GeoJSON Polygon FeatureCollection of routing obstacles")
	abortAfter  = flag.Int("abort-after", -1, "Overall wall-clock budget in seconds; 0 means unbounded (-1 keeps the config default)")
	printMode   = flag.String("print-mode", "", "What --out contains: drawing (GeoJSON transit graph) or gridgraph")
	baseGraph   = flag.String("base-graph", "", "Lattice family: octi, orthoradial, or pseudo-orthoradial")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fatal(1, err)
	}
	applyFlags(cfg)

	if *inFile == "" {
		fatal(1, errors.New("octischematize: --in is required"))
	}
	graphData, err := os.ReadFile(*inFile)
	if err != nil {
		fatal(1, errors.Wrap(err, "reading --in"))
	}

	var obstacleData []byte
	if *obstacles != "" {
		obstacleData, err = os.ReadFile(*obstacles)
		if err != nil {
			fatal(1, errors.Wrap(err, "reading --obstacles"))
		}
	}

	if cfg.MetricsAddr != "" {
		srv := metrics.NewCollector().Serve(cfg.MetricsAddr)
		defer srv.Close()
	}

	ctx := context.Background()
	out, err := pipeline.Run(ctx, pipeline.Input{
		Graph:     graphData,
		FromDOT:   *fromDOT,
		Obstacles: obstacleData,
		Cfg:       cfg,
	})
	if err != nil {
		fatal(exitCodeFor(err), err)
	}

	if err := writeOutput(*outFile, out.GeoJSON); err != nil {
		fatal(1, err)
	}

	if *scoreFile != "" {
		scoreJSON, err := json.MarshalIndent(out.Score, "", "  ")
		if err != nil {
			fatal(1, errors.Wrap(err, "encoding score json"))
		}
		if err := writeOutput(*scoreFile, scoreJSON); err != nil {
			fatal(1, err)
		}
	}
}

// applyFlags layers explicit command-line overrides on top of the
// .env/environment-resolved config.Config, the same precedence order
// config.Load documents for its own env-var layer.
func applyFlags(cfg *config.Config) {
	if *gridSize != "" {
		cfg.GridSizeSpec = *gridSize
	}
	if *optimMode != "" {
		cfg.OptimMode = config.OptimMode(*optimMode)
	}
	if *maxGridDist > 0 {
		cfg.MaxGridDistMul = *maxGridDist
	}
	if *deg2Heur >= 0 {
		cfg.Deg2Heuristic = *deg2Heur != 0
	}
	if *borderRad >= 0 {
		cfg.BorderRadius = *borderRad
	}
	if *penaltiesArg != "" {
		applyPenalties(&cfg.Penalties, *penaltiesArg)
	}
	if *enforceGeo >= 0 {
		cfg.EnforceGeo = *enforceGeo
	}
	if *restrictLS >= 0 {
		cfg.RestrictLocalSearch = *restrictLS
	}
	if *ilpSolver != "" {
		cfg.ILPSolverPath = *ilpSolver
	}
	if *ilpTimeLim >= 0 {
		cfg.ILPTimeLimit = time.Duration(*ilpTimeLim) * time.Second
	}
	if *ilpNoSolve {
		cfg.ILPNoSolve = true
	}
	if *abortAfter >= 0 {
		cfg.AbortAfter = time.Duration(*abortAfter) * time.Second
	}
	if *printMode != "" {
		cfg.PrintMode = config.PrintMode(*printMode)
	}
	if *baseGraph != "" {
		cfg.BaseGraph = config.BaseGraph(*baseGraph)
	}
}

func applyPenalties(p *octigrid.Penalties, spec string) {
	for _, pair := range strings.Split(spec, ",") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			continue
		}
		v, err := strconv.ParseFloat(kv[1], 64)
		if err != nil {
			continue
		}
		switch strings.TrimSpace(kv[0]) {
		case "p0":
			p.P0 = v
		case "p45":
			p.P45 = v
		case "p90":
			p.P90 = v
		case "p135":
			p.P135 = v
		case "horizontal":
			p.HorizontalPen = v
		case "vertical":
			p.VerticalPen = v
		case "diagonal":
			p.DiagonalPen = v
		case "density":
			p.DensityPen = v
		case "node-move":
			p.NodeMovePen = v
		case "geo-deviation":
			p.GeoDeviationPen = v
		}
	}
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// exitCodeFor maps a pipeline.Error's Kind onto the CLI's exit codes:
// 2 malformed input or unsatisfiable degree, 1 no embedding found,
// 3 solver unavailable, 4 timeout.
func exitCodeFor(err error) int {
	pe, ok := err.(*pipeline.Error)
	if !ok {
		return 1
	}
	switch pe.Kind {
	case pipeline.KindMalformedInput, pipeline.KindUnsatisfiableDegree:
		return 2
	case pipeline.KindNoEmbeddingFound:
		return 1
	case pipeline.KindSolverUnavailable:
		return 3
	case pipeline.KindTimeout:
		return 4
	default:
		return 1
	}
}

func fatal(code int, err error) {
	fmt.Fprintln(os.Stderr, "octischematize:", err)
	os.Exit(code)
}
