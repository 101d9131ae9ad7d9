package geodev

import "math"

// dtwDistance computes the Dynamic Time Warping distance between two 1-D
// sequences using a two-row rolling array, trimmed from the teacher's
// dtw.DTW (_examples/katalvlaran-lvlath/dtw/dtw.go) down to the one mode
// Deviation actually needs: no Sakoe-Chiba window, no slope penalty, no
// path recovery, since geodev only ever wants the scalar distance between
// an original and a routed coordinate sequence. Memory is O(m), two rows
// of len(b)+1, instead of the teacher's O(n*m) full-matrix option.
//
// Either sequence being empty returns 0: an edge with a degenerate (single-
// point) original or routed geometry has nothing to measure drift against.
func dtwDistance(a, b []float64) float64 {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return 0
	}

	inf := math.Inf(1)
	prev := make([]float64, m+1)
	curr := make([]float64, m+1)
	for j := 1; j <= m; j++ {
		prev[j] = inf
	}

	for i := 1; i <= n; i++ {
		curr[0] = inf
		for j := 1; j <= m; j++ {
			cost := math.Abs(a[i-1] - b[j-1])
			best := prev[j]
			if curr[j-1] < best {
				best = curr[j-1]
			}
			if prev[j-1] < best {
				best = prev[j-1]
			}
			curr[j] = cost + best
		}
		prev, curr = curr, prev
	}
	return prev[m]
}
