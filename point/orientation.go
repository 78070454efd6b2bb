package point

// IsLeft reports whether the point pt is to the left of the directed infinite
// line from a to b.
//
// A positive cross product of (b - a) and (pt - a) means a counterclockwise
// turn, placing pt on the left side of the line.
func IsLeft(a, b, pt Point) bool {
	return b.Sub(a).CrossProduct(pt.Sub(a)) > 0
}

// IsLeftOrEqual reports whether pt is to the left of, or lying exactly on,
// the directed infinite line from a to b.
func IsLeftOrEqual(a, b, pt Point) bool {
	return b.Sub(a).CrossProduct(pt.Sub(a)) >= 0
}

// IsLeftOrCoincident reports whether pt is to the left of, or within epsilon
// of, the directed infinite line from a to b.
func IsLeftOrCoincident(a, b, pt Point, epsilon float64) bool {
	return b.Sub(a).CrossProduct(pt.Sub(a)) > -epsilon
}

// IsRightOrCoincident reports whether pt is to the right of, or within epsilon
// of, the directed infinite line from a to b.
func IsRightOrCoincident(a, b, pt Point, epsilon float64) bool {
	return b.Sub(a).CrossProduct(pt.Sub(a)) < epsilon
}
