// Package metrics exposes Prometheus instrumentation for embedder runs,
// grounded on ponytojas-gtfs-simulator-go/internal/metrics's Collector
// pattern: one struct of pre-registered collectors built by NewCollector,
// served over HTTP by Serve.
package metrics

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds every metric the CLI and service mode emit across a
// schematization run.
type Collector struct {
	reg *prometheus.Registry

	RunsTotal      *prometheus.CounterVec // outcome label: ok|no_embedding|timeout|solver_unavailable|bad_input|unsatisfiable_degree|error
	RunDuration    *prometheus.HistogramVec // method label: heur|ilp
	EmbedScore     prometheus.Gauge
	TopologyViolations prometheus.Gauge

	CombEdgesRouted prometheus.Counter
	LocalSearchIters prometheus.Counter

	ILPColumns prometheus.Gauge
	ILPRows    prometheus.Gauge
	ILPSolverDuration prometheus.Histogram

	GridSinks prometheus.Gauge
	GridEdges prometheus.Gauge
}

// NewCollector builds and registers every metric on a fresh registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "octischem_runs_total",
			Help: "Total schematization runs by outcome.",
		}, []string{"outcome"}),
		RunDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "octischem_run_duration_seconds",
			Help:    "Wall-clock duration of a schematization run.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 15),
		}, []string{"method"}),
		EmbedScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "octischem_embed_score",
			Help: "Drawing score of the most recent successful run.",
		}),
		TopologyViolations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "octischem_topology_violations",
			Help: "Topology violations (P2) in the most recent drawing.",
		}),
		CombEdgesRouted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "octischem_comb_edges_routed_total",
			Help: "Total CombEdges successfully routed across all runs.",
		}),
		LocalSearchIters: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "octischem_local_search_iterations_total",
			Help: "Total heuristic local-search iterations performed.",
		}),
		ILPColumns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "octischem_ilp_columns",
			Help: "Decision variable count of the most recent ILP model.",
		}),
		ILPRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "octischem_ilp_rows",
			Help: "Constraint row count of the most recent ILP model.",
		}),
		ILPSolverDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "octischem_ilp_solver_duration_seconds",
			Help:    "Duration of the external MIP solver subprocess.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 15),
		}),
		GridSinks: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "octischem_gridgraph_sinks",
			Help: "Sink count of the most recently built GridGraph.",
		}),
		GridEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "octischem_gridgraph_edges",
			Help: "Grid edge count of the most recently built GridGraph.",
		}),
	}

	reg.MustRegister(
		c.RunsTotal, c.RunDuration, c.EmbedScore, c.TopologyViolations,
		c.CombEdgesRouted, c.LocalSearchIters,
		c.ILPColumns, c.ILPRows, c.ILPSolverDuration,
		c.GridSinks, c.GridEdges,
	)

	return c
}

// Handler returns the /metrics HTTP handler for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// Serve starts an HTTP server exposing /metrics on addr; ListenAndServe
// errors other than a graceful close are logged, not returned, matching the
// fire-and-forget style of the pack's metrics servers.
func (c *Collector) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	log.Printf("metrics listening on %s", addr)
	return srv
}
