package geoio

import (
	"encoding/json"
	"math"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"

	"github.com/octilinear/schematize/internal/lgraph"
	"github.com/octilinear/schematize/internal/octigrid"
)

// WriteGeoJSON encodes a LineGraph (typically Drawing.GetTransitGraph's
// output) back into the station/line FeatureCollection shape spec.md §6
// describes as output: one Point feature per node, one LineString feature
// per edge carrying its accumulated line occurrences.
func WriteGeoJSON(g *lgraph.LineGraph) ([]byte, error) {
	fc := geojson.NewFeatureCollection()

	for _, nidx := range g.Nodes() {
		n, err := g.Node(nidx)
		if err != nil {
			return nil, err
		}
		f := geojson.NewPointFeature([]float64{n.Point.X, n.Point.Y})
		f.SetProperty("id", n.ExternalID)
		if len(n.Stops) > 0 {
			f.SetProperty("station_id", n.Stops[0].ID)
			if n.Stops[0].Label != "" {
				f.SetProperty("station_label", n.Stops[0].Label)
			}
		}
		fc.AddFeature(f)
	}

	for _, eidx := range g.Edges() {
		e, err := g.Edge(eidx)
		if err != nil {
			return nil, err
		}
		fromN, err := g.Node(e.From)
		if err != nil {
			return nil, err
		}
		toN, err := g.Node(e.To)
		if err != nil {
			return nil, err
		}

		coords := make([][]float64, len(e.Geometry))
		for i, p := range e.Geometry {
			coords[i] = []float64{p.X, p.Y}
		}
		f := geojson.NewLineStringFeature(coords)
		f.SetProperty("from", fromN.ExternalID)
		f.SetProperty("to", toN.ExternalID)

		lines := make([]map[string]interface{}, 0, len(e.Lines))
		for _, occ := range e.Lines {
			entry := map[string]interface{}{"id": occ.Line}
			if occ.Label != "" {
				entry["label"] = occ.Label
			}
			if occ.Color != "" {
				entry["color"] = occ.Color
			}
			if toward, ok := occ.Dir.Node(); ok {
				towardN, err := g.Node(toward)
				if err == nil {
					entry["direction"] = towardN.ExternalID
				}
			}
			lines = append(lines, entry)
		}
		f.SetProperty("lines", lines)
		fc.AddFeature(f)
	}

	b, err := fc.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "geoio: encoding geojson")
	}
	return b, nil
}

// WriteGridGraph encodes grid's raw lattice (every sink as a Point feature,
// every unblocked grid edge as a LineString feature) for --print-mode=
// gridgraph, which shows the candidate lattice instead of the extracted
// transit graph.
func WriteGridGraph(grid *octigrid.GridGraph) ([]byte, error) {
	fc := geojson.NewFeatureCollection()

	for s := 0; s < grid.SinkCount(); s++ {
		p := grid.SinkPos(s)
		f := geojson.NewPointFeature([]float64{p.X, p.Y})
		f.SetProperty("sink", s)
		fc.AddFeature(f)
	}

	for _, e := range grid.AllEdges() {
		if math.IsInf(e.Cost, 1) {
			continue
		}
		a, b := grid.SinkPos(e.ASink), grid.SinkPos(e.BSink)
		f := geojson.NewLineStringFeature([][]float64{{a.X, a.Y}, {b.X, b.Y}})
		f.SetProperty("cost", e.Cost)
		fc.AddFeature(f)
	}

	b, err := fc.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "geoio: encoding gridgraph geojson")
	}
	return b, nil
}

// Score is the JSON score dictionary spec.md §6 specifies alongside the
// output GeoJSON.
type Score struct {
	Scores struct {
		TotalScore        float64 `json:"total_score"`
		TopologyViolations int    `json:"topology_violations"`
		DensityScore       float64 `json:"density-score"`
		BendScore          float64 `json:"bend-score"`
		HopScore           float64 `json:"hop-score"`
		MoveScore          float64 `json:"move-score"`
	} `json:"scores"`
	Pens         map[string]float64 `json:"pens"`
	GridGraphSize struct {
		Nodes int `json:"nodes"`
		Edges int `json:"edges"`
	} `json:"gridgraph-size"`
	Misc struct {
		Method        string  `json:"method"`
		Deg2Heur      bool    `json:"deg2heur"`
		MaxGridDist   float64 `json:"max-grid-dist"`
		GeoViolations int     `json:"geo-violations"`
	} `json:"misc"`
	TimeMs     int64 `json:"time_ms"`
	Procs      int   `json:"procs"`
	PeakMemory int64 `json:"peak_memory"`
}

// WriteScore encodes a Score as indented JSON.
func WriteScore(s *Score) ([]byte, error) {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "geoio: encoding score json")
	}
	return b, nil
}
