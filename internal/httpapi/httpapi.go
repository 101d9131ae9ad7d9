// Package httpapi exposes the pipeline as an HTTP service: POST /schematize
// runs one embedding, GET /healthz is a liveness probe, and GET /metrics
// (when a metrics.Collector is supplied) serves Prometheus scrape data.
// Grounded on mohamedThameurSassi-Projet-transport-intermodal/Server's
// gorilla/mux + encoding/json handler idiom.
package httpapi

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/octilinear/schematize/internal/config"
	"github.com/octilinear/schematize/internal/metrics"
	"github.com/octilinear/schematize/internal/pipeline"
)

// Request is the POST /schematize body: a graph document (GeoJSON by
// default, DOT when FromDOT is set) plus an optional obstacle
// FeatureCollection. Config knobs not present in cfg's environment/.env
// defaults are taken as-is from the server's own config.Config.
type Request struct {
	Graph     json.RawMessage `json:"graph"`
	FromDOT   bool            `json:"from_dot"`
	Obstacles json.RawMessage `json:"obstacles,omitempty"`
}

// NewRouter builds the service's mux.Router. cfg supplies every embedding
// knob a request doesn't override; coll is optional and, when non-nil, also
// mounts /metrics.
func NewRouter(cfg *config.Config, coll *metrics.Collector) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", healthzHandler).Methods("GET")
	r.HandleFunc("/schematize", schematizeHandler(cfg, coll)).Methods("POST")
	if coll != nil {
		r.Handle("/metrics", coll.Handler()).Methods("GET")
	}
	return r
}

func healthzHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func schematizeHandler(cfg *config.Config, coll *metrics.Collector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		runCfg := *cfg
		out, err := pipeline.Run(r.Context(), pipeline.Input{
			Graph:     req.Graph,
			FromDOT:   req.FromDOT,
			Obstacles: req.Obstacles,
			Cfg:       &runCfg,
		})
		if err != nil {
			status := statusFor(err)
			if coll != nil {
				coll.RunsTotal.WithLabelValues(outcomeFor(err)).Inc()
			}
			writeError(w, status, err)
			return
		}

		if coll != nil {
			coll.RunsTotal.WithLabelValues("ok").Inc()
			coll.EmbedScore.Set(out.Score.Scores.TotalScore)
			coll.GridSinks.Set(float64(out.Score.GridGraphSize.Nodes))
			coll.GridEdges.Set(float64(out.Score.GridGraphSize.Edges))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(struct {
			GeoJSON json.RawMessage `json:"geojson"`
			Score   interface{}     `json:"score"`
		}{GeoJSON: out.GeoJSON, Score: out.Score})
	}
}

func statusFor(err error) int {
	pe, ok := err.(*pipeline.Error)
	if !ok {
		return http.StatusInternalServerError
	}
	switch pe.Kind {
	case pipeline.KindMalformedInput:
		return http.StatusBadRequest
	case pipeline.KindUnsatisfiableDegree, pipeline.KindNoEmbeddingFound:
		return http.StatusUnprocessableEntity
	case pipeline.KindSolverUnavailable:
		return http.StatusServiceUnavailable
	case pipeline.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func outcomeFor(err error) string {
	pe, ok := err.(*pipeline.Error)
	if !ok {
		return "error"
	}
	switch pe.Kind {
	case pipeline.KindMalformedInput:
		return "bad_input"
	case pipeline.KindUnsatisfiableDegree:
		return "unsatisfiable_degree"
	case pipeline.KindNoEmbeddingFound:
		return "no_embedding"
	case pipeline.KindSolverUnavailable:
		return "solver_unavailable"
	case pipeline.KindTimeout:
		return "timeout"
	default:
		return "error"
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	log.Printf("schematize request failed: %v", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
