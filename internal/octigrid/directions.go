package octigrid

// Eight compass directions index every sink's ports, in counter-clockwise
// order starting at due east, mirroring the Conn8 neighbor ordering the
// teacher's gridgraph package uses for its eight-connectivity offsets.
const (
	DirE = iota
	DirNE
	DirN
	DirNW
	DirW
	DirSW
	DirS
	DirSE
	numDirs = 8
)

// dirOffsets[d] gives the (dx, dy) unit step of direction d.
var dirOffsets = [numDirs][2]int{
	{1, 0},   // E
	{1, 1},   // NE
	{0, 1},   // N
	{-1, 1},  // NW
	{-1, 0},  // W
	{-1, -1}, // SW
	{0, -1},  // S
	{1, -1},  // SE
}

// opposite returns the direction pointing the other way along the same axis.
func opposite(d int) int { return (d + 4) % numDirs }

// isDiagonal reports whether d is one of the four diagonal directions.
func isDiagonal(d int) bool { return d%2 == 1 }

// isHorizontal reports whether d runs along the east-west axis.
func isHorizontal(d int) bool { return d == DirE || d == DirW }

// isVertical reports whether d runs along the north-south axis.
func isVertical(d int) bool { return d == DirN || d == DirS }

// portDiff returns the shortest distance between two port indices around
// the eight-port ring, in {0,...,4}. A diff of 4 is a straight line through
// the sink (cheapest); a diff of 0 is a full reversal (most expensive).
func portDiff(i, j int) int {
	d := i - j
	if d < 0 {
		d = -d
	}
	if d > numDirs/2 {
		d = numDirs - d
	}
	return d
}
