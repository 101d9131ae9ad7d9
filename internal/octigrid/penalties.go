package octigrid

// Penalties bundles every tunable cost the embedders add on top of raw
// Euclidean grid-edge length. All fields are non-negative; a zero value
// disables that particular penalty.
type Penalties struct {
	// Bend penalties, keyed by the port-index difference between the
	// incoming and outgoing port at a sink (see portDiff). A difference of
	// 4 (straight through) is always free and has no field here; P0 is the
	// full reversal, the worst bend a route can make.
	P0, P45, P90, P135 float64

	// Direction penalties multiply a grid edge's Euclidean length before
	// any bend penalty is added, letting horizontal/vertical runs be
	// preferred or disfavored relative to diagonals.
	HorizontalPen, VerticalPen, DiagonalPen float64

	// DensityPen is added to a grid edge's cost for every other settled
	// edge sharing its bundle (see applyDensity).
	DensityPen float64

	// NodeMovePen scales the ILP embedder's move cost: placing a CombNode on
	// a sink at Euclidean distance d from its input position costs
	// d * NodeMovePen. The heuristic embedder prices moves with its own
	// per-grid-step rate instead.
	NodeMovePen float64

	// GeoDeviationPen scales the DTW-measured deviation between a routed
	// grid path and the original LineGraph geometry, used only when
	// --enforce-geo is active.
	GeoDeviationPen float64
}

// DefaultPenalties returns the penalty set the CLI falls back to when the
// operator does not override --penalties.
func DefaultPenalties() Penalties {
	return Penalties{
		P0:              16,
		P45:             8,
		P90:             4,
		P135:            1,
		HorizontalPen:   1,
		VerticalPen:     1,
		DiagonalPen:     1.4,
		DensityPen:      0.5,
		NodeMovePen:     2,
		GeoDeviationPen: 1,
	}
}

// bendCost returns the penalty for turning from port i to port j at a
// single sink. Straight-through (portDiff == 4) is free.
func (p Penalties) bendCost(i, j int) float64 {
	switch portDiff(i, j) {
	case 0:
		return p.P0
	case 1:
		return p.P45
	case 2:
		return p.P90
	case 3:
		return p.P135
	default:
		return 0
	}
}

// dirPenalty returns the multiplier applied to a grid edge's raw length
// based on its axis.
func (p Penalties) dirPenalty(d int) float64 {
	switch {
	case isHorizontal(d):
		return p.HorizontalPen
	case isVertical(d):
		return p.VerticalPen
	default:
		return p.DiagonalPen
	}
}

// TopoBlockPenalty is an additive overlay constant for one routing search.
// It is never persisted onto gridEdge.cost; callers pass it through the
// search's extra cost hook instead (see ExtraCost). The heuristic embedder
// adds it, together with NodeBendPenalty, to every bend and grid edge
// leaving the sink of a route endpoint that is already settled.
func TopoBlockPenalty() float64 { return 1e6 }

// NodeBendPenalty is the second additive overlay constant, applied by the
// heuristic embedder alongside TopoBlockPenalty (see TopoBlockPenalty).
func NodeBendPenalty() float64 { return 1e3 }
