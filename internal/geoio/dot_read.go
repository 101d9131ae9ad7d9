package geoio

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/octilinear/schematize/internal/lgraph"
)

// ReadDOT decodes the constrained GraphViz subset spec.md §6 describes:
// nodes carry pos="x,y" and optional station_id/label; edges carry
// id/label/color; "->" edges are interpreted as one-way lines toward their
// target, "--" edges as undirected.
//
// No DOT grammar library appears anywhere in the retrieval pack, so this is
// a small hand-rolled scanner over the statement-list subset the spec
// actually uses (node and edge statements with a bracketed attribute list),
// not a general GraphViz parser.
func ReadDOT(data []byte) (*lgraph.LineGraph, error) {
	stmts, err := tokenizeDOT(string(data))
	if err != nil {
		return nil, err
	}

	g := lgraph.New()
	nodeByID := make(map[string]lgraph.NodeIndex)
	lineSeq := 0

	ensureNode := func(id string, attrs map[string]string) (lgraph.NodeIndex, error) {
		if idx, ok := nodeByID[id]; ok {
			return idx, nil
		}
		pt, err := parsePos(attrs["pos"])
		if err != nil {
			return 0, errors.Wrapf(err, "node %q", id)
		}
		idx, err := g.AddNode(id, pt)
		if err != nil {
			return 0, errors.Wrapf(err, "node %q", id)
		}
		nodeByID[id] = idx
		if stationID := attrs["station_id"]; stationID != "" {
			n, _ := g.Node(idx)
			n.Stops = append(n.Stops, lgraph.Stop{ID: stationID, Label: attrs["label"]})
		}
		return idx, nil
	}

	for _, st := range stmts {
		if st.isEdge {
			from, err := ensureNode(st.from, st.fromAttrs)
			if err != nil {
				return nil, err
			}
			to, err := ensureNode(st.to, st.toAttrs)
			if err != nil {
				return nil, err
			}
			lineSeq++
			lineID := st.attrs["id"]
			if lineID == "" {
				lineID = st.attrs["label"]
			}
			if lineID == "" {
				lineID = "line" + strconv.Itoa(lineSeq)
			}
			dir := lgraph.NoDirection()
			if st.directed {
				dir = lgraph.TowardNode(to)
			}
			occ := lgraph.LineOccurrence{
				Line: lineID, Label: st.attrs["label"], Color: st.attrs["color"], Dir: dir,
			}
			fromN, _ := g.Node(from)
			toN, _ := g.Node(to)
			geom := []lgraph.Point{fromN.Point, toN.Point}
			if _, err := g.AddEdge(from, to, geom, []lgraph.LineOccurrence{occ}); err != nil {
				return nil, errors.Wrapf(err, "edge %s -> %s", st.from, st.to)
			}
		} else {
			if _, err := ensureNode(st.from, st.attrs); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

func parsePos(pos string) (lgraph.Point, error) {
	if pos == "" {
		return lgraph.Point{}, errors.Wrap(ErrMalformedInput, "missing \"pos\" attribute")
	}
	parts := strings.SplitN(pos, ",", 2)
	if len(parts) != 2 {
		return lgraph.Point{}, errors.Wrapf(ErrMalformedInput, "pos %q is not \"x,y\"", pos)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return lgraph.Point{}, errors.Wrapf(ErrMalformedInput, "pos %q: non-numeric x", pos)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return lgraph.Point{}, errors.Wrapf(ErrMalformedInput, "pos %q: non-numeric y", pos)
	}
	return lgraph.Point{X: x, Y: y}, nil
}

// dotStmt is either a bare node declaration (isEdge=false, from+attrs) or an
// edge statement (isEdge=true, from/to + their own trailing attrs, plus the
// edge's own attrs).
type dotStmt struct {
	isEdge    bool
	directed  bool
	from, to  string
	attrs     map[string]string
	fromAttrs map[string]string
	toAttrs   map[string]string
}

// tokenizeDOT extracts node and edge statements from the body of the first
// "{ ... }" block, ignoring graph-level attribute statements (those with no
// "->"/"--" and no trailing "[...]" are skipped if they look like `key=value;`).
func tokenizeDOT(src string) ([]dotStmt, error) {
	open := strings.IndexByte(src, '{')
	close := strings.LastIndexByte(src, '}')
	if open < 0 || close < 0 || close < open {
		return nil, errors.Wrap(ErrMalformedInput, "no \"{ ... }\" graph body found")
	}
	body := src[open+1 : close]

	var stmts []dotStmt
	for _, raw := range splitStatements(body) {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if idx := strings.Index(line, "->"); idx >= 0 {
			stmts = append(stmts, parseEdgeStmt(line, idx, 2, true))
			continue
		}
		if idx := strings.Index(line, "--"); idx >= 0 {
			stmts = append(stmts, parseEdgeStmt(line, idx, 2, false))
			continue
		}
		id, attrs := parseNodeStmt(line)
		if id == "" || strings.Contains(id, "=") {
			continue // graph-level attribute statement, not a node
		}
		stmts = append(stmts, dotStmt{from: id, attrs: attrs})
	}
	return stmts, nil
}

func parseEdgeStmt(line string, sepIdx, sepLen int, directed bool) dotStmt {
	left := strings.TrimSpace(line[:sepIdx])
	right := strings.TrimSpace(line[sepIdx+sepLen:])
	fromID, _ := parseNodeStmt(left)
	toID, attrs := parseNodeStmt(right)
	return dotStmt{isEdge: true, directed: directed, from: fromID, to: toID, attrs: attrs, fromAttrs: map[string]string{}, toAttrs: map[string]string{}}
}

// parseNodeStmt splits "id [k=v, k2=v2]" into the bare id and its attribute
// map; returns an empty id if no identifier-like token is found.
func parseNodeStmt(s string) (string, map[string]string) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ";")
	s = strings.TrimSpace(s)
	attrs := map[string]string{}

	bracket := strings.IndexByte(s, '[')
	id := s
	if bracket >= 0 {
		id = strings.TrimSpace(s[:bracket])
		end := strings.LastIndexByte(s, ']')
		if end > bracket {
			attrs = parseAttrList(s[bracket+1 : end])
		}
	}
	id = strings.Trim(id, `"`)
	return id, attrs
}

func parseAttrList(s string) map[string]string {
	out := map[string]string{}
	for _, pair := range splitTopLevel(s, ',') {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			continue
		}
		k := strings.TrimSpace(kv[0])
		v := strings.Trim(strings.TrimSpace(kv[1]), `"`)
		out[k] = v
	}
	return out
}

// splitStatements splits body on ';', respecting quoted strings so commas
// and semicolons inside pos="x,y" don't break statement boundaries.
func splitStatements(body string) []string {
	return splitTopLevel(body, ';')
}

// splitTopLevel splits s on sep, ignoring occurrences inside double quotes.
func splitTopLevel(s string, sep byte) []string {
	var out []string
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' {
			inQuotes = !inQuotes
		}
		if c == sep && !inQuotes {
			out = append(out, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteByte(c)
	}
	if strings.TrimSpace(cur.String()) != "" {
		out = append(out, cur.String())
	}
	return out
}
