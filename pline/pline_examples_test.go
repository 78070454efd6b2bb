package pline_test

import (
	"fmt"

	"github.com/mikenye/polyarc/pline"
	"github.com/mikenye/polyarc/point"
)

func ExamplePolyline_ParallelOffset() {
	// full circle of radius 0.5 represented by two vertexes with bulge 1
	circle := pline.NewClosed()
	circle.Add(0, 0, 1)
	circle.Add(1, 0, 1)

	results := circle.ParallelOffset(0.2)
	for _, offset := range results {
		fmt.Printf("vertexes: %d, area: %.4f\n", offset.VertexCount(), offset.Area())
	}
	// Output:
	// vertexes: 2, area: 0.2827
}

func ExamplePolyline_Boolean() {
	rectangle := pline.NewClosed()
	rectangle.Add(-1, -2, 0)
	rectangle.Add(3, -2, 0)
	rectangle.Add(3, 2, 0)
	rectangle.Add(-1, 2, 0)

	circle := pline.NewClosed()
	circle.Add(0, 0, 1)
	circle.Add(2, 0, 1)

	// the circle is fully inside the rectangle so subtracting it leaves the
	// rectangle with a hole
	result := rectangle.Boolean(circle, pline.BooleanNot)
	fmt.Printf("positive: %d, negative: %d\n", len(result.PosPlines), len(result.NegPlines))
	fmt.Printf("outer area: %.4f, hole area: %.4f\n",
		result.PosPlines[0].Pline.Area(), result.NegPlines[0].Pline.Area())
	// Output:
	// positive: 1, negative: 1
	// outer area: 16.0000, hole area: -3.1416
}

func ExamplePolyline_WindingNumber() {
	circle := pline.NewClosed()
	circle.Add(0, 0, 1)
	circle.Add(2, 0, 1)

	fmt.Println(circle.WindingNumber(point.New(1, 0)))
	fmt.Println(circle.WindingNumber(point.New(5, 5)))
	// Output:
	// 1
	// 0
}
