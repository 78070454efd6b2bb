// Package point defines the foundational geometric primitive in the polyarc library, the Point type.
// All other geometric types—polyline vertexes, segments, bounding boxes, etc. are built upon this type.
//
// # Overview
//
// The Point type represents a two-dimensional point (or vector) with floating-point coordinates.
// It provides fundamental geometric operations such as translation, distance measurement, vector
// arithmetic, perpendicular products, and rotation. Points are essential building blocks in
// computational geometry, enabling higher-level constructs such as polyline segments and arcs.
//
// # Key Features
//
// Vector Operations
//   - Basic operations like Translate, Sub and Negate enable geometric transformations.
//   - Scale performs uniform vector scaling; ScaleAbout scales around a reference point.
//   - DotProduct and CrossProduct support orientation and projection calculations
//     (the 2D cross product is also known as the perpendicular product).
//   - UnitPerp returns the left-perpendicular unit vector, used to generate parallel offsets.
//
// Distance Measurements
//   - DistanceToPoint and DistanceSquaredToPoint provide Euclidean distance calculations.
//   - Length and LengthSquared give the vector magnitude.
//
// Equality
//   - Eq checks approximate equality using [numeric.DefaultEpsilon]; EqEps takes an explicit
//     tolerance.
//
// # Notes
//
//   - Floating-point operations may introduce precision errors. Comparison operations accept an
//     epsilon value to account for this.
//
// The [Point] type serves as the core building block for all geometric structures in polyarc.
package point

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/mikenye/polyarc/numeric"
)

var origin Point

func init() {
	origin = New(0, 0)
}

// Origin returns the origin point (0,0) in the 2D coordinate system.
//
// This function provides efficient access to a pre-initialized point at the
// coordinate system origin. The returned point is a copy, so it can be safely
// used in any context without affecting the stored origin.
func Origin() Point {
	return origin
}

// Point represents a point in two-dimensional space with x and y coordinates of type float64.
// The Point struct provides methods for common vector operations such as addition, subtraction and
// distance calculations, making it versatile for computational geometry applications.
type Point struct {
	x float64
	y float64
}

// New creates a new Point with the specified x and y coordinates.
func New(x, y float64) Point {
	return Point{
		x: x,
		y: y,
	}
}

// Add returns the sum of two points as if they were vectors.
// It performs component-wise addition:
//
//	(p.X + q.X, p.Y + q.Y)
func (p Point) Add(q Point) Point {
	return Point{
		x: p.x + q.x,
		y: p.y + q.y,
	}
}

// Coordinates returns the X and Y coordinates of the Point as separate values.
// This function allows convenient access to the individual components of a Point.
func (p Point) Coordinates() (x, y float64) {
	return p.x, p.y
}

// CrossProduct returns the 2D cross product (perpendicular product) of two vectors:
//
//	a × b = a.x * b.y - a.y * b.x
//
// This function is useful in computational geometry for determining relative orientation:
//   - A positive result indicates a counterclockwise turn (left turn),
//   - A negative result indicates a clockwise turn (right turn),
//   - A result of zero indicates that the vectors are parallel.
func (a Point) CrossProduct(b Point) float64 {
	return a.x*b.y - a.y*b.x
}

// DistanceSquaredToPoint calculates the squared Euclidean distance between Point p and another Point q.
// This method returns the squared distance, which avoids the computational cost of a square root
// calculation and is useful in cases where only distance comparisons are needed.
func (p Point) DistanceSquaredToPoint(q Point) float64 {
	return (q.x-p.x)*(q.x-p.x) + (q.y-p.y)*(q.y-p.y)
}

// DistanceToPoint calculates the Euclidean (straight-line) distance between the current Point p
// and another Point q.
func (p Point) DistanceToPoint(q Point) float64 {
	return math.Sqrt(p.DistanceSquaredToPoint(q))
}

// DotProduct calculates the dot product of the vector represented by Point p with the vector
// represented by Point q. The dot product is defined as p.x*q.x + p.y*q.y and is widely used in
// geometry for angle calculations, projection operations, and determining the relationship
// between two vectors.
func (p Point) DotProduct(q Point) float64 {
	return (p.x * q.x) + (p.y * q.y)
}

// Eq determines whether the calling Point p is equal to another Point q within
// [numeric.DefaultEpsilon] to account for floating-point precision.
func (p Point) Eq(q Point) bool {
	return p.EqEps(q, numeric.DefaultEpsilon)
}

// EqEps determines whether the calling Point p is equal to another Point q using
// the epsilon given to account for floating-point precision.
func (p Point) EqEps(q Point, epsilon float64) bool {
	return numeric.FloatEquals(p.x, q.x, epsilon) && numeric.FloatEquals(p.y, q.y, epsilon)
}

// Length returns the magnitude of the vector represented by the Point.
func (p Point) Length() float64 {
	return math.Sqrt(p.LengthSquared())
}

// LengthSquared returns the squared magnitude of the vector represented by the Point.
// This avoids the computational cost of a square root calculation and is useful in cases
// where only magnitude comparisons are needed.
func (p Point) LengthSquared() float64 {
	return p.x*p.x + p.y*p.y
}

// MarshalJSON serializes Point as JSON.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}{
		X: p.x,
		Y: p.y,
	})
}

// Negate returns a new Point with both x and y coordinates negated.
// This operation is equivalent to reflecting the point across the origin
// and is useful in reversing the direction of a vector.
func (p Point) Negate() Point {
	return New(-p.x, -p.y)
}

// Normalize returns the unit vector pointing in the same direction as p.
//
// Behavior:
//   - The caller must ensure p is not the zero vector; normalizing a zero-length
//     vector yields NaN components.
func (p Point) Normalize() Point {
	length := p.Length()
	return New(p.x/length, p.y/length)
}

// Rotate rotates the point by a specified angle (in radians), counter-clockwise, around a given
// pivot point.
//
// Behavior:
//   - The method first translates the point to the origin (relative to the pivot),
//     applies the rotation matrix, and then translates the point back to its original position.
func (p Point) Rotate(pivot Point, radians float64) Point {

	// Translate the point to the origin (pivot)
	translatedX := p.x - pivot.x
	translatedY := p.y - pivot.y

	// Apply rotation
	rotatedX := translatedX*math.Cos(radians) - translatedY*math.Sin(radians)
	rotatedY := translatedX*math.Sin(radians) + translatedY*math.Cos(radians)

	// Translate back
	newX := rotatedX + pivot.x
	newY := rotatedY + pivot.y

	return New(newX, newY)
}

// Scale scales the vector represented by the point by a factor k.
func (p Point) Scale(k float64) Point {
	return New(p.x*k, p.y*k)
}

// ScaleAbout scales the point by a factor k relative to a reference point ref.
func (p Point) ScaleAbout(ref Point, k float64) Point {
	return New(
		ref.x+(p.x-ref.x)*k,
		ref.y+(p.y-ref.y)*k,
	)
}

// String returns a string representation of the Point p in the format "(x,y)".
// This provides a readable format for the point’s coordinates, useful for debugging
// and displaying points in logs or output.
func (p Point) String() string {
	return fmt.Sprintf("(%f,%f)", p.x, p.y)
}

// Sub returns the vector from point q to this point.
func (p Point) Sub(q Point) Point {
	return New(p.x-q.x, p.y-q.y)
}

// Translate moves the Point by a given displacement vector.
func (p Point) Translate(delta Point) Point {
	return New(p.x+delta.x, p.y+delta.y)
}

// UnitPerp returns the unit vector perpendicular to p, rotated 90 degrees
// counter-clockwise (to the left of p's direction).
//
// Behavior:
//   - The caller must ensure p is not the zero vector.
func (p Point) UnitPerp() Point {
	return New(-p.y, p.x).Normalize()
}

// UnmarshalJSON deserializes JSON into a Point.
func (p *Point) UnmarshalJSON(data []byte) error {
	var temp struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	p.x = temp.X
	p.y = temp.Y
	return nil
}

// X returns the x-coordinate of the Point p.
func (p Point) X() float64 {
	return p.x
}

// Y returns the y-coordinate of the Point p.
func (p Point) Y() float64 {
	return p.y
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return New((a.x+b.x)/2.0, (a.y+b.y)/2.0)
}

// FromParametric returns the point at parametric value t along the line
// segment from p0 to p1 (t = 0 at p0, t = 1 at p1).
func FromParametric(p0, p1 Point, t float64) Point {
	return p0.Add(p1.Sub(p0).Scale(t))
}

// ParametricFromPoint returns the parametric value of pt along the line
// from p0 to p1. The projection uses whichever axis has the larger
// magnitude to avoid division by a near-zero component. Assumes pt lies on
// the infinite line through p0 and p1.
func ParametricFromPoint(p0, p1, pt Point) float64 {
	v := p1.Sub(p0)
	if math.Abs(v.x) > math.Abs(v.y) {
		return (pt.x - p0.x) / v.x
	}
	return (pt.y - p0.y) / v.y
}

// LineSegClosestPoint returns the closest point to pt on the line segment
// from p0 to p1 (result is clamped to the segment ends).
func LineSegClosestPoint(p0, p1, pt Point) Point {
	v := p1.Sub(p0)
	w := pt.Sub(p0)
	c1 := w.DotProduct(v)
	if c1 <= 0 {
		return p0
	}
	c2 := v.DotProduct(v)
	if c2 <= c1 {
		return p1
	}
	return p0.Add(v.Scale(c1 / c2))
}
