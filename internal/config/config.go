// Package config resolves run configuration for the octischematize CLI and
// service: defaults, then a .env file via godotenv, then environment
// variables. CLI flags (parsed in cmd/octischematize) overlay whatever this
// package returns, never the other way around.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/octilinear/schematize/internal/octigrid"
)

// OptimMode selects which embedder cmd/octischematize runs.
type OptimMode string

const (
	OptimHeuristic OptimMode = "heur"
	OptimILP       OptimMode = "ilp"
)

// BaseGraph selects the lattice shape GridGraph is built over.
type BaseGraph string

const (
	BaseOcti             BaseGraph = "octi"
	BaseOrthoradial      BaseGraph = "orthoradial"
	BasePseudoOrthoradial BaseGraph = "pseudo-orthoradial"
)

// PrintMode selects what cmd/octischematize writes as its output GeoJSON:
// the embedded drawing or the grid graph lattice.
type PrintMode string

const (
	PrintDrawing   PrintMode = "drawing"
	PrintGridGraph PrintMode = "gridgraph"
)

// Config is the fully resolved set of knobs the embedder pipeline needs,
// before any per-invocation CLI flag overrides.
type Config struct {
	GridSizeSpec    string // "<N>" or "<N>%"; resolved against input extent by internal/pipeline
	OptimMode       OptimMode
	MaxGridDistMul  float64
	Deg2Heuristic   bool
	BorderRadius    float64
	Penalties       octigrid.Penalties
	EnforceGeo      float64 // 0 disables DTW-based geo-deviation enforcement
	RestrictLocalSearch float64
	ILPSolverPath   string
	ILPTimeLimit    time.Duration
	ILPNoSolve      bool
	ObstaclesPath   string
	AbortAfter      time.Duration
	PrintMode       PrintMode
	BaseGraph       BaseGraph
	MetricsAddr     string // empty disables the metrics HTTP server
}

// Load reads a .env file if present, then overlays environment variables
// onto a set of defaults matching spec.md's documented CLI defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		GridSizeSpec:        getenvDefault("OCTISCHEM_GRID_SIZE", "100%"),
		OptimMode:           OptimMode(getenvDefault("OCTISCHEM_OPTIM_MODE", string(OptimHeuristic))),
		MaxGridDistMul:      3.0,
		Deg2Heuristic:       true,
		BorderRadius:        1.0,
		Penalties:           octigrid.DefaultPenalties(),
		EnforceGeo:          0,
		RestrictLocalSearch: 0,
		ILPSolverPath:       getenvDefault("OCTISCHEM_ILP_SOLVER", "cbc"),
		ILPTimeLimit:        0,
		ILPNoSolve:          false,
		ObstaclesPath:       os.Getenv("OCTISCHEM_OBSTACLES"),
		AbortAfter:          0,
		PrintMode:           PrintDrawing,
		BaseGraph:           BaseOcti,
		MetricsAddr:         os.Getenv("OCTISCHEM_METRICS_ADDR"),
	}

	if v := os.Getenv("OCTISCHEM_MAX_GRID_DIST"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid OCTISCHEM_MAX_GRID_DIST: %q", v)
		}
		cfg.MaxGridDistMul = f
	}

	if v := os.Getenv("OCTISCHEM_DEG2_HEUR"); v != "" {
		cfg.Deg2Heuristic = parseBool(v)
	}

	if v := os.Getenv("OCTISCHEM_BORDER_RAD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid OCTISCHEM_BORDER_RAD: %q", v)
		}
		cfg.BorderRadius = f
	}

	if v := os.Getenv("OCTISCHEM_ENFORCE_GEO"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid OCTISCHEM_ENFORCE_GEO: %q", v)
		}
		cfg.EnforceGeo = f
	}

	if v := os.Getenv("OCTISCHEM_RESTRICT_LOCAL_SEARCH"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid OCTISCHEM_RESTRICT_LOCAL_SEARCH: %q", v)
		}
		cfg.RestrictLocalSearch = f
	}

	if v := os.Getenv("OCTISCHEM_ILP_TIME_LIMIT_SEC"); v != "" {
		sec, err := strconv.Atoi(v)
		if err != nil || sec < 0 {
			return nil, fmt.Errorf("invalid OCTISCHEM_ILP_TIME_LIMIT_SEC: %q", v)
		}
		cfg.ILPTimeLimit = time.Duration(sec) * time.Second
	}

	if v := os.Getenv("OCTISCHEM_ILP_NO_SOLVE"); v != "" {
		cfg.ILPNoSolve = parseBool(v)
	}

	if v := os.Getenv("OCTISCHEM_ABORT_AFTER_SEC"); v != "" {
		sec, err := strconv.Atoi(v)
		if err != nil || sec < 0 {
			return nil, fmt.Errorf("invalid OCTISCHEM_ABORT_AFTER_SEC: %q", v)
		}
		cfg.AbortAfter = time.Duration(sec) * time.Second
	}

	if v := os.Getenv("OCTISCHEM_PRINT_MODE"); v != "" {
		cfg.PrintMode = PrintMode(v)
	}

	if v := os.Getenv("OCTISCHEM_BASE_GRAPH"); v != "" {
		cfg.BaseGraph = BaseGraph(v)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.OptimMode {
	case OptimHeuristic, OptimILP:
	default:
		return fmt.Errorf("invalid optim mode: %q", c.OptimMode)
	}
	switch c.BaseGraph {
	case BaseOcti, BaseOrthoradial, BasePseudoOrthoradial:
	default:
		return fmt.Errorf("invalid base graph: %q", c.BaseGraph)
	}
	switch c.PrintMode {
	case PrintDrawing, PrintGridGraph:
	default:
		return fmt.Errorf("invalid print mode: %q", c.PrintMode)
	}
	return nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}
