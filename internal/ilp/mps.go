package ilp

import (
	"fmt"
	"io"
	"sort"
)

// WriteMPS serializes m in free-format MPS, the format every common
// open-source MIP solver (CBC, SCIP, HiGHS) accepts on the command line.
func WriteMPS(w io.Writer, m *Model, name string) error {
	bw := &errWriter{w: w}

	bw.printf("NAME          %s\n", name)
	bw.printf("ROWS\n")
	bw.printf(" N  COST\n")
	for _, r := range m.rows {
		bw.printf(" %s  %s\n", mpsRowSense(r.sense), r.name)
	}

	bw.printf("COLUMNS\n")
	colRows := columnRows(m)
	var intOpen bool
	for ci, col := range m.cols {
		if col.kind == KindInteger && !intOpen {
			bw.printf("    MARKER                 INTORG\n")
			intOpen = true
		}
		if col.kind == KindBinary && intOpen {
			bw.printf("    MARKER                 INTEND\n")
			intOpen = false
		}
		if col.objCoef != 0 {
			bw.printf("    %-10s  COST      %.10g\n", col.name, col.objCoef)
		}
		for _, ri := range colRows[ci] {
			r := m.rows[ri]
			bw.printf("    %-10s  %-8s  %.10g\n", col.name, r.name, r.terms[ci])
		}
	}
	if intOpen {
		bw.printf("    MARKER                 INTEND\n")
	}

	bw.printf("RHS\n")
	for _, r := range m.rows {
		if r.rhs != 0 {
			bw.printf("    RHS       %-8s  %.10g\n", r.name, r.rhs)
		}
	}

	bw.printf("BOUNDS\n")
	for _, col := range m.cols {
		switch {
		case col.kind == KindBinary:
			bw.printf(" BV BND       %s\n", col.name)
		default:
			bw.printf(" LO BND       %s  %.10g\n", col.name, col.lower)
			bw.printf(" UP BND       %s  %.10g\n", col.name, col.upper)
		}
	}

	bw.printf("ENDATA\n")
	return bw.err
}

func mpsRowSense(s RowSense) string {
	switch s {
	case RowLE:
		return "L"
	case RowGE:
		return "G"
	default:
		return "E"
	}
}

// columnRows returns, for each column index, the sorted list of row
// indices referencing it, so COLUMNS section entries come out grouped by
// column and deterministically ordered.
func columnRows(m *Model) [][]int {
	out := make([][]int, len(m.cols))
	for ri, r := range m.rows {
		for ci := range r.terms {
			out[ci] = append(out[ci], ri)
		}
	}
	for ci := range out {
		sort.Ints(out[ci])
	}
	return out
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
