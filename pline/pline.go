// Package pline provides the polyline container at the heart of the polyarc
// library along with its segment operations, zero-copy views, and the
// intersect, parallel offset and boolean engines.
//
// # Polylines
//
// A [Polyline] is an ordered sequence of vertexes where each [Vertex] carries
// a position and a bulge value. A bulge of zero means the segment from that
// vertex to the next is a straight line; otherwise the segment is a circular
// arc with sweep angle 4·atan(bulge), counter-clockwise when the bulge is
// positive. A polyline is either open or closed (closing segment from the
// last vertex back to the first).
//
// # Segment Functions
//
// Package-level functions prefixed with Seg operate on a single segment
// expressed as its two vertexes: arc radius and center derivation, splitting,
// tangents, closest points, bounding boxes, lengths and midpoints. Radius and
// center are always derived on demand from the bulge; they are never stored.
//
// # Engines
//
// [Polyline.FindIntersects] and the self intersect visitors locate all
// intersections between and within polylines using spatial index broad-phase
// queries. [Polyline.ParallelOffset] computes parallel offset polylines, and
// [Polyline.Boolean] combines two closed polylines with union, intersection,
// difference or symmetric difference.
package pline
