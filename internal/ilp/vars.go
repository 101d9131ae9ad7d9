package ilp

import (
	"fmt"

	"github.com/octilinear/schematize/internal/combgraph"
)

// VarKind distinguishes the roles a Model column can play; only Binary and
// Integer columns appear (the formulation has no continuous decisions).
type VarKind int

const (
	KindBinary VarKind = iota
	KindInteger
)

// column is one decision variable: its MPS name, objective coefficient,
// bounds, and kind.
type column struct {
	name    string
	kind    VarKind
	lower   float64
	upper   float64
	objCoef float64
}

// RowSense is the relational operator of a constraint row.
type RowSense int

const (
	RowEQ RowSense = iota
	RowLE
	RowGE
)

// row is one constraint: a sparse linear combination of column indices,
// related to rhs by sense.
type row struct {
	name  string
	sense RowSense
	rhs   float64
	terms map[int]float64 // column index -> coefficient
}

// Model is the in-memory MIP: every column and row plus the index maps
// needed to look a variable back up by the (node, sink), (edge, arc), or
// (node, edge) it represents.
type Model struct {
	cols []column
	rows []*row

	// xVar[v][sink] is the column index of x_{sink,v}.
	xVar map[combgraph.NodeIndex]map[int]int
	// yVar[c][arcID] is the column index of y_{arc,c}; arcID is a flat
	// (from<<20 | to) key into the grid's FlatArc space.
	yVar map[combgraph.EdgeIndex]map[int64]int
	// dVar[v][c] is the column index of d_{v,c}.
	dVar map[combgraph.NodeIndex]map[combgraph.EdgeIndex]int
	// vulnVar[v][i] is the column index of the circular-order wrap
	// indicator for v's i-th consecutive incident pair.
	vulnVar map[combgraph.NodeIndex]map[int]int
	// wrapVar[v][pairKey] is the mod-8 linearization helper for an
	// angle-indicator pair.
	wrapVar map[combgraph.NodeIndex]map[[2]combgraph.EdgeIndex]int
	// angleVar[v][pairKey][i] (i in 1..7) is the angle-code indicator z_i.
	angleVar map[combgraph.NodeIndex]map[[2]combgraph.EdgeIndex]map[int]int
}

func newModel() *Model {
	return &Model{
		xVar:     make(map[combgraph.NodeIndex]map[int]int),
		yVar:     make(map[combgraph.EdgeIndex]map[int64]int),
		dVar:     make(map[combgraph.NodeIndex]map[combgraph.EdgeIndex]int),
		vulnVar:  make(map[combgraph.NodeIndex]map[int]int),
		wrapVar:  make(map[combgraph.NodeIndex]map[[2]combgraph.EdgeIndex]int),
		angleVar: make(map[combgraph.NodeIndex]map[[2]combgraph.EdgeIndex]map[int]int),
	}
}

func arcKey(from, to int) int64 { return int64(from)<<20 | int64(to) }

func (m *Model) addCol(name string, kind VarKind, lower, upper, obj float64) int {
	idx := len(m.cols)
	m.cols = append(m.cols, column{name: name, kind: kind, lower: lower, upper: upper, objCoef: obj})
	return idx
}

func (m *Model) addRow(name string, sense RowSense, rhs float64) *row {
	r := &row{name: name, sense: sense, rhs: rhs, terms: make(map[int]float64)}
	m.rows = append(m.rows, r)
	return r
}

func (r *row) add(col int, coef float64) {
	r.terms[col] += coef
}

func (m *Model) newX(v combgraph.NodeIndex, sink int, obj float64) int {
	idx := m.addCol(fmt.Sprintf("x_%d_%d", sink, v), KindBinary, 0, 1, obj)
	if m.xVar[v] == nil {
		m.xVar[v] = make(map[int]int)
	}
	m.xVar[v][sink] = idx
	return idx
}

func (m *Model) newY(c combgraph.EdgeIndex, from, to int, obj float64) int {
	idx := m.addCol(fmt.Sprintf("y_%d_%d_%d", from, to, c), KindBinary, 0, 1, obj)
	if m.yVar[c] == nil {
		m.yVar[c] = make(map[int64]int)
	}
	m.yVar[c][arcKey(from, to)] = idx
	return idx
}

func (m *Model) newD(v combgraph.NodeIndex, c combgraph.EdgeIndex) int {
	idx := m.addCol(fmt.Sprintf("d_%d_%d", v, c), KindInteger, 0, 7, 0)
	if m.dVar[v] == nil {
		m.dVar[v] = make(map[combgraph.EdgeIndex]int)
	}
	m.dVar[v][c] = idx
	return idx
}

func (m *Model) newVuln(v combgraph.NodeIndex, i int) int {
	idx := m.addCol(fmt.Sprintf("vuln_%d_%d", v, i), KindBinary, 0, 1, 0)
	if m.vulnVar[v] == nil {
		m.vulnVar[v] = make(map[int]int)
	}
	m.vulnVar[v][i] = idx
	return idx
}

func (m *Model) newWrap(v combgraph.NodeIndex, pair [2]combgraph.EdgeIndex) int {
	idx := m.addCol(fmt.Sprintf("wrap_%d_%d_%d", v, pair[0], pair[1]), KindBinary, 0, 1, 0)
	if m.wrapVar[v] == nil {
		m.wrapVar[v] = make(map[[2]combgraph.EdgeIndex]int)
	}
	m.wrapVar[v][pair] = idx
	return idx
}

func (m *Model) newAngle(v combgraph.NodeIndex, pair [2]combgraph.EdgeIndex, i int, pen float64) int {
	idx := m.addCol(fmt.Sprintf("ang_%d_%d_%d_%d", v, pair[0], pair[1], i), KindBinary, 0, 1, pen)
	if m.angleVar[v] == nil {
		m.angleVar[v] = make(map[[2]combgraph.EdgeIndex]map[int]int)
	}
	if m.angleVar[v][pair] == nil {
		m.angleVar[v][pair] = make(map[int]int)
	}
	m.angleVar[v][pair][i] = idx
	return idx
}

// ColumnCount returns the number of decision variables in the model.
func (m *Model) ColumnCount() int { return len(m.cols) }

// RowCount returns the number of constraint rows in the model.
func (m *Model) RowCount() int { return len(m.rows) }
