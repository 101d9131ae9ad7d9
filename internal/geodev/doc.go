// Package geodev implements the --enforce-geo supplemented feature: it
// measures how far a routed CombEdge's grid path has drifted from the
// original LineGraph geometry it replaces, using a Dynamic Time Warping
// distance (dtw.go, trimmed from the teacher's dtw package), and flags
// routes that drifted past a caller-given threshold.
//
// dtwDistance compares two 1-D float64 sequences; a routed path and its
// source geometry are both 2-D polylines. This package runs it once over
// each polyline's X coordinates and once over its Y coordinates and
// combines the two distances as a Euclidean pair (sqrt(distX^2+distY^2)),
// the standard per-axis decomposition used when a 1-D sequence-comparison
// primitive is applied to point sequences.
package geodev
