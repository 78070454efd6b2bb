// Command plinetool runs polyline offset, boolean and self intersect
// operations on polylines supplied as JSON on stdin, writing the results as
// JSON to stdout.
//
// Input for the offset and selfintersects commands is a single polyline
// object; input for the boolean command is a two element array of polylines.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mikenye/polyarc/options"
	"github.com/mikenye/polyarc/pline"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:      "plinetool",
		Usage:     "Runs polyline offset, boolean and self intersect operations on JSON polylines",
		UsageText: "plinetool <offset|boolean|selfintersects> [options] < input.json",
		Commands: []*cli.Command{
			{
				Name:      "offset",
				Usage:     "Parallel offset the polyline read from stdin",
				UsageText: "plinetool offset --distance <value> < polyline.json",
				Flags: []cli.Flag{
					&cli.FloatFlag{
						Name:     "distance",
						Usage:    "The offset distance (positive offsets to the left of the path tangent)",
						Aliases:  []string{"d"},
						Required: true,
						OnlyOnce: true,
					},
					&cli.BoolFlag{
						Name:     "handle-self-intersects",
						Usage:    "Handle self intersecting input polylines",
						OnlyOnce: true,
					},
				},
				Action: offsetApp,
			},
			{
				Name:      "boolean",
				Usage:     "Combine the two polylines read from stdin",
				UsageText: "plinetool boolean --op <or|and|not|xor> < polylines.json",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "op",
						Usage:    "The boolean operation to perform: or, and, not or xor",
						Value:    "or",
						OnlyOnce: true,
						Validator: func(s string) error {
							if _, err := parseBooleanOp(s); err != nil {
								return err
							}
							return nil
						},
					},
				},
				Action: booleanApp,
			},
			{
				Name:      "selfintersects",
				Usage:     "Report the self intersects of the polyline read from stdin",
				UsageText: "plinetool selfintersects < polyline.json",
				Action:    selfIntersectsApp,
			},
		},
		HideVersion: true,
		Authors:     []any{"https://github.com/mikenye"},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func parseBooleanOp(s string) (pline.BooleanOp, error) {
	switch s {
	case "or":
		return pline.BooleanOr, nil
	case "and":
		return pline.BooleanAnd, nil
	case "not":
		return pline.BooleanNot, nil
	case "xor":
		return pline.BooleanXor, nil
	default:
		return 0, fmt.Errorf("unknown boolean op %q (expected or, and, not or xor)", s)
	}
}

func readInput(v any) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func writeOutput(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Print(string(b))
	return nil
}

func offsetApp(_ context.Context, cmd *cli.Command) error {
	var input pline.Polyline
	if err := readInput(&input); err != nil {
		return err
	}

	if input.VertexCount() < 2 {
		return fmt.Errorf("input polyline must have at least 2 vertexes")
	}

	// the offset engine assumes no repeat position vertexes
	cleaned := &input
	if r := cleaned.RemoveRepeatPos(1e-5); r != nil {
		cleaned = r
	}

	results := cleaned.ParallelOffset(cmd.Float("distance"),
		options.WithHandleSelfIntersects(cmd.Bool("handle-self-intersects")))
	return writeOutput(results)
}

func booleanApp(_ context.Context, cmd *cli.Command) error {
	var input [2]*pline.Polyline
	if err := readInput(&input); err != nil {
		return err
	}
	if input[0] == nil || input[1] == nil {
		return fmt.Errorf("input must be a two element array of polylines")
	}

	op, err := parseBooleanOp(cmd.String("op"))
	if err != nil {
		return err
	}

	result := input[0].Boolean(input[1], op)

	output := struct {
		PosPlines []*pline.Polyline `json:"posPlines"`
		NegPlines []*pline.Polyline `json:"negPlines"`
	}{
		PosPlines: make([]*pline.Polyline, 0, len(result.PosPlines)),
		NegPlines: make([]*pline.Polyline, 0, len(result.NegPlines)),
	}
	for _, rp := range result.PosPlines {
		output.PosPlines = append(output.PosPlines, rp.Pline)
	}
	for _, rp := range result.NegPlines {
		output.NegPlines = append(output.NegPlines, rp.Pline)
	}
	return writeOutput(output)
}

func selfIntersectsApp(_ context.Context, _ *cli.Command) error {
	var input pline.Polyline
	if err := readInput(&input); err != nil {
		return err
	}

	type jsonIntersect struct {
		Kind        string  `json:"kind"`
		StartIndex1 int     `json:"startIndex1"`
		StartIndex2 int     `json:"startIndex2"`
		X1          float64 `json:"x1"`
		Y1          float64 `json:"y1"`
		X2          float64 `json:"x2,omitempty"`
		Y2          float64 `json:"y2,omitempty"`
	}

	var output []jsonIntersect
	input.VisitSelfIntersects(func(intr pline.Intersect) bool {
		ji := jsonIntersect{
			StartIndex1: intr.StartIndex1,
			StartIndex2: intr.StartIndex2,
			X1:          intr.Point1.X(),
			Y1:          intr.Point1.Y(),
		}
		if intr.Kind == pline.IntersectBasic {
			ji.Kind = "basic"
		} else {
			ji.Kind = "overlapping"
			ji.X2 = intr.Point2.X()
			ji.Y2 = intr.Point2.Y()
		}
		output = append(output, ji)
		return true
	})

	return writeOutput(output)
}
