package geoio

import (
	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"

	"github.com/octilinear/schematize/internal/lgraph"
)

// lineProps mirrors one entry of a LineString feature's "lines" property.
type lineProps struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Color        string `json:"color"`
	Direction    string `json:"direction"`
	Style        string `json:"style"`
	OutlineStyle string `json:"outline-style"`
	StartLabel   string `json:"startLabel"`
	BackLabel    string `json:"backLabel"`
}

// excludedConn mirrors one entry of a Point feature's "excluded_line_conns".
type excludedConn struct {
	Route     string `json:"route"`
	Edge1Node string `json:"edge1_node"`
	Edge2Node string `json:"edge2_node"`
}

// ReadGeoJSON decodes a FeatureCollection per spec.md §6 into a LineGraph:
// Point features become nodes, LineString features become edges. Edges are
// added in feature order so IncidentOrder's tie-break-by-insertion rule
// matches the input document order.
func ReadGeoJSON(data []byte) (*lgraph.LineGraph, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "geoio: decoding geojson")
	}

	g := lgraph.New()
	nodeByID := make(map[string]lgraph.NodeIndex)

	// First pass: Point features, so every node referenced by an edge in
	// the second pass already has an arena index.
	for i, f := range fc.Features {
		if f.Geometry == nil || !f.Geometry.IsPoint() {
			continue
		}
		id, ok := stringProp(f.Properties, "id")
		if !ok || id == "" {
			return nil, errors.Wrapf(ErrMalformedInput, "feature %d: missing \"id\"", i)
		}
		pt := f.Geometry.Point
		if len(pt) < 2 {
			return nil, errors.Wrapf(ErrMalformedInput, "feature %d (%s): point geometry needs 2 coordinates", i, id)
		}
		idx, err := g.AddNode(id, lgraph.Point{X: pt[0], Y: pt[1]})
		if err != nil {
			return nil, errors.Wrapf(err, "feature %d (%s)", i, id)
		}
		nodeByID[id] = idx

		n, _ := g.Node(idx)
		if stationID, ok := stringProp(f.Properties, "station_id"); ok && stationID != "" {
			label, _ := stringProp(f.Properties, "station_label")
			n.Stops = append(n.Stops, lgraph.Stop{ID: stationID, Label: label})
		}
		if raw, ok := f.Properties["not_serving"]; ok {
			for _, line := range toStringSlice(raw) {
				if err := g.AddNotServed(idx, line); err != nil {
					return nil, errors.Wrapf(err, "feature %d (%s)", i, id)
				}
			}
		}
	}

	// Second pass: LineString features, now that every node id resolves.
	for i, f := range fc.Features {
		if f.Geometry == nil || !f.Geometry.IsLineString() {
			continue
		}
		fromID, ok1 := stringProp(f.Properties, "from")
		toID, ok2 := stringProp(f.Properties, "to")
		if !ok1 || !ok2 {
			return nil, errors.Wrapf(ErrMalformedInput, "feature %d: edge missing \"from\"/\"to\"", i)
		}
		from, ok := nodeByID[fromID]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownNodeRef, "feature %d: from %q", i, fromID)
		}
		to, ok := nodeByID[toID]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownNodeRef, "feature %d: to %q", i, toID)
		}

		coords := f.Geometry.LineString
		geometry := make([]lgraph.Point, len(coords))
		for j, c := range coords {
			if len(c) < 2 {
				return nil, errors.Wrapf(ErrMalformedInput, "feature %d: vertex %d is not 2-D", i, j)
			}
			geometry[j] = lgraph.Point{X: c[0], Y: c[1]}
		}

		occs, err := decodeLines(f.Properties, nodeByID)
		if err != nil {
			return nil, errors.Wrapf(err, "feature %d", i)
		}

		eidx, err := g.AddEdge(from, to, geometry, occs)
		if err != nil {
			return nil, errors.Wrapf(err, "feature %d (%s -> %s)", i, fromID, toID)
		}
		if dc, ok := f.Properties["dontcontract"]; ok && truthy(dc) {
			e, _ := g.Edge(eidx)
			e.DontContract = true
		}
	}

	// Third pass: excluded_line_conns, now that every edge id is known by
	// endpoint pair rather than a standalone id — resolved per node.
	for i, f := range fc.Features {
		if f.Geometry == nil || !f.Geometry.IsPoint() {
			continue
		}
		id, _ := stringProp(f.Properties, "id")
		idx, ok := nodeByID[id]
		if !ok {
			continue
		}
		raw, ok := f.Properties["excluded_line_conns"]
		if !ok {
			continue
		}
		for _, c := range toExcludedConns(raw) {
			ea, eb, found := resolveIncidentPair(g, idx, c.Edge1Node, c.Edge2Node)
			if !found {
				continue // warning-level: referenced edge missing, skip per spec.md §7
			}
			if err := g.AddConnException(idx, lgraph.ConnException{Line: c.Route, EdgeA: ea, EdgeB: eb}); err != nil {
				return nil, errors.Wrapf(err, "feature %d (%s)", i, id)
			}
		}
	}

	return g, nil
}

func decodeLines(props map[string]interface{}, nodeByID map[string]lgraph.NodeIndex) ([]lgraph.LineOccurrence, error) {
	raw, ok := props["lines"]
	if !ok {
		return nil, errors.Wrap(ErrMalformedInput, "edge missing \"lines\"")
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, errors.Wrap(ErrMalformedInput, "\"lines\" is not an array")
	}

	occs := make([]lgraph.LineOccurrence, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		lp := lineProps{
			ID:           asString(m["id"]),
			Label:        asString(m["label"]),
			Color:        asString(m["color"]),
			Direction:    asString(m["direction"]),
			Style:        asString(m["style"]),
			OutlineStyle: asString(m["outline-style"]),
			StartLabel:   asString(m["startLabel"]),
			BackLabel:    asString(m["backLabel"]),
		}
		if lp.ID == "" {
			return nil, errors.Wrap(ErrMalformedInput, "line occurrence missing \"id\"")
		}
		dir := lgraph.NoDirection()
		if lp.Direction != "" {
			towardIdx, ok := nodeByID[lp.Direction]
			if !ok {
				return nil, errors.Wrapf(ErrUnknownNodeRef, "line %s direction %q", lp.ID, lp.Direction)
			}
			dir = lgraph.TowardNode(towardIdx)
		}
		occs = append(occs, lgraph.LineOccurrence{
			Line: lp.ID, Label: lp.Label, Color: lp.Color,
			Style: lp.Style, OutlineStyle: lp.OutlineStyle,
			StartLabel: lp.StartLabel, BackLabel: lp.BackLabel, Dir: dir,
		})
	}
	return occs, nil
}

// resolveIncidentPair finds, among node's incident edges, the ones whose far
// endpoint id matches edge1Node/edge2Node respectively.
func resolveIncidentPair(g *lgraph.LineGraph, node lgraph.NodeIndex, edge1Node, edge2Node string) (a, b lgraph.EdgeIndex, ok bool) {
	order, err := g.IncidentOrder(node)
	if err != nil {
		return 0, 0, false
	}
	var found [2]lgraph.EdgeIndex
	var count int
	for _, eidx := range order {
		e, err := g.Edge(eidx)
		if err != nil {
			continue
		}
		other := e.Other(node)
		on, err := g.Node(other)
		if err != nil {
			continue
		}
		if on.ExternalID == edge1Node || on.ExternalID == edge2Node {
			if count < 2 {
				found[count] = eidx
			}
			count++
		}
	}
	if count != 2 {
		return 0, 0, false
	}
	return found[0], found[1], true
}

func stringProp(props map[string]interface{}, key string) (string, bool) {
	v, ok := props[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func toStringSlice(raw interface{}) []string {
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func toExcludedConns(raw interface{}) []excludedConn {
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	out := make([]excludedConn, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]interface{})
		if !ok {
			continue
		}
		out = append(out, excludedConn{
			Route:     asString(m["route"]),
			Edge1Node: asString(m["edge1_node"]),
			Edge2Node: asString(m["edge2_node"]),
		})
	}
	return out
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case float64:
		return t != 0
	case bool:
		return t
	case string:
		return t != "" && t != "0"
	default:
		return false
	}
}
