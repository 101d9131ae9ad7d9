package drawing

import (
	"github.com/octilinear/schematize/internal/combgraph"
	"github.com/octilinear/schematize/internal/lgraph"
	"github.com/octilinear/schematize/internal/octigrid"
)

// GetTransitGraph emits a new LineGraph whose nodes sit at the Drawing's
// settled sink positions and whose edges follow the octilinear polyline
// each CombEdge routed, one vertex per sink along the path. CombNodes with
// no recorded position are skipped; their incident CombEdges are likewise
// skipped rather than emitted with a dangling endpoint.
func (d *Drawing) GetTransitGraph(grid *octigrid.GridGraph) (*lgraph.LineGraph, error) {
	out := lgraph.New()
	nodeIdx := make(map[combgraph.NodeIndex]lgraph.NodeIndex, len(d.nodes))

	for _, v := range d.comb.Nodes() {
		rec, ok := d.nodes[v]
		if !ok {
			continue
		}
		cn := d.comb.Node(v)
		n, err := out.AddNode(externalID(cn, v), grid.SinkPos(rec.sink))
		if err != nil {
			return nil, err
		}
		n2, _ := out.Node(n)
		n2.Stops = cn.Stops
		nodeIdx[v] = n
	}

	for _, c := range d.comb.Edges() {
		ce := d.comb.Edge(c)
		rec, ok := d.edges[c]
		if !ok {
			continue
		}
		from, fromOK := nodeIdx[ce.From]
		to, toOK := nodeIdx[ce.To]
		if !fromOK || !toOK {
			continue
		}

		points := make([]lgraph.Point, len(rec.sinks))
		for i, s := range rec.sinks {
			points[i] = grid.SinkPos(s)
		}
		if rec.reversed {
			for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
				points[i], points[j] = points[j], points[i]
			}
		}

		lines := make([]lgraph.LineOccurrence, 0, len(ce.Lines))
		for name := range ce.Lines {
			lines = append(lines, lgraph.LineOccurrence{Line: name})
		}
		if _, err := out.AddEdge(from, to, points, lines); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func externalID(cn *combgraph.CombNode, v combgraph.NodeIndex) string {
	if len(cn.Stops) > 0 {
		return cn.Stops[0].ID
	}
	return "junction-" + itoa(uint32(v))
}

func itoa(v uint32) string {
	if v == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
