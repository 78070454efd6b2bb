package pline

import (
	"encoding/json"
	"fmt"

	"github.com/mikenye/polyarc/numeric"
	"github.com/mikenye/polyarc/point"
)

// Vertex represents a single polyline vertex: a position and the bulge value
// of the segment beginning at that position.
//
// The bulge equals tan(sweepAngle/4) of the arc from this vertex to the next,
// with a positive sign sweeping counter-clockwise. A bulge of zero makes the
// segment a straight line. A vertex alone carries no segment; the segment is
// formed with the following vertex.
type Vertex struct {
	x     float64
	y     float64
	bulge float64
}

// NewVertex creates a vertex from its coordinates and bulge value.
func NewVertex(x, y, bulge float64) Vertex {
	return Vertex{x: x, y: y, bulge: bulge}
}

// VertexFromPoint creates a vertex positioned at p with the bulge given.
func VertexFromPoint(p point.Point, bulge float64) Vertex {
	return Vertex{x: p.X(), y: p.Y(), bulge: bulge}
}

// X returns the x-coordinate of the vertex position.
func (v Vertex) X() float64 {
	return v.x
}

// Y returns the y-coordinate of the vertex position.
func (v Vertex) Y() float64 {
	return v.y
}

// Bulge returns the bulge value of the segment starting at this vertex.
func (v Vertex) Bulge() float64 {
	return v.bulge
}

// Pos returns the vertex position as a point.
func (v Vertex) Pos() point.Point {
	return point.New(v.x, v.y)
}

// WithBulge returns a copy of the vertex with its bulge replaced.
func (v Vertex) WithBulge(bulge float64) Vertex {
	return Vertex{x: v.x, y: v.y, bulge: bulge}
}

// BulgeIsZero reports whether the segment starting at this vertex is a line.
func (v Vertex) BulgeIsZero() bool {
	return v.bulge == 0
}

// BulgeIsPos reports whether the segment starting at this vertex is a
// counter-clockwise arc.
func (v Vertex) BulgeIsPos() bool {
	return v.bulge > 0
}

// BulgeIsNeg reports whether the segment starting at this vertex is a
// clockwise arc.
func (v Vertex) BulgeIsNeg() bool {
	return v.bulge < 0
}

// Eq determines whether the vertex equals another within
// [numeric.DefaultEpsilon], comparing position and bulge.
func (v Vertex) Eq(other Vertex) bool {
	return v.EqEps(other, numeric.DefaultEpsilon)
}

// EqEps determines whether the vertex equals another within the epsilon
// given, comparing position and bulge.
func (v Vertex) EqEps(other Vertex, epsilon float64) bool {
	return numeric.FloatEquals(v.x, other.x, epsilon) &&
		numeric.FloatEquals(v.y, other.y, epsilon) &&
		numeric.FloatEquals(v.bulge, other.bulge, epsilon)
}

// String returns a string representation of the vertex in the format
// "(x,y,bulge)".
func (v Vertex) String() string {
	return fmt.Sprintf("(%f,%f,%f)", v.x, v.y, v.bulge)
}

// MarshalJSON serializes the vertex as JSON.
func (v Vertex) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		X     float64 `json:"x"`
		Y     float64 `json:"y"`
		Bulge float64 `json:"bulge"`
	}{
		X:     v.x,
		Y:     v.y,
		Bulge: v.bulge,
	})
}

// UnmarshalJSON deserializes JSON into a vertex.
func (v *Vertex) UnmarshalJSON(data []byte) error {
	var temp struct {
		X     float64 `json:"x"`
		Y     float64 `json:"y"`
		Bulge float64 `json:"bulge"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	v.x = temp.X
	v.y = temp.Y
	v.bulge = temp.Bulge
	return nil
}
