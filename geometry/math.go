package geometry

import "math"

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns -1, 0 or 1 depending on the sign of x.
func Sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ManhattanDistance calculates the Manhattan distance between two tiles.
func ManhattanDistance(a, b Tile) int {
	return Abs(b.X-a.X) + Abs(b.Y-a.Y)
}

// IsHorizontal returns true if the line from a to b is more horizontal than vertical.
func IsHorizontal(a, b Tile) bool {
	return Abs(b.X-a.X) > Abs(b.Y-a.Y)
}
