// Package polyarc provides a 2D polyline geometry kernel built around vertexes
// that carry a bulge value, where each bulge implicitly defines a circular arc
// to the next vertex.
//
// The polyarc module is built around the [pline.Polyline] type and its
// supporting packages, covering numerically robust segment intersection,
// polyline parallel offsetting, and boolean operations (union, intersection,
// difference and symmetric difference) between closed polylines.
//
// # Coordinate System
//
// This library assumes a standard Cartesian coordinate system where the x-axis
// increases to the right and the y-axis increases upward. A positive bulge
// sweeps counter-clockwise, a negative bulge sweeps clockwise.
//
// # Core Packages
//
//   - point: the 2D point/vector primitive used by all geometry.
//   - angle: angle and bulge conversion helpers.
//   - numeric: epsilon-tolerant floating point comparisons.
//   - aabb: axis-aligned bounding boxes.
//   - intersect: line-line, line-circle and circle-circle intersection
//     primitives with fuzzy tolerances.
//   - index: the spatial index used for broad-phase bounding box queries.
//   - pline: the polyline container, segment operations, views, the
//     intersect/offset/boolean engines.
//
// # Precision Control with Epsilon
//
// All positional comparisons go through an explicit epsilon value
// (defaulting to [numeric.DefaultEpsilon]) so that coincident geometry is
// classified consistently across the different intersection primitives.
package polyarc

func init() {
	logDebugf("debug logging enabled")
}
