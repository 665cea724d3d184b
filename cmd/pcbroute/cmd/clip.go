package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gopcb/pcbcore/geom"
	"github.com/gopcb/pcbcore/polygon"
)

var clipOp string

// clipCmd runs a Boolean operation between two overlapping synthetic
// rectangles through the polygon package, reporting the resulting
// region's piece/hole counts and area.
var clipCmd = &cobra.Command{
	Use:   "clip",
	Short: "exercise the polygon Boolean engine on two overlapping rectangles",
	RunE: func(cmd *cobra.Command, args []string) error {
		op, err := parseOp(clipOp)
		if err != nil {
			return err
		}
		a := geom.RectRegion(geom.NewBox(0, 0, 4000, 4000))
		b := geom.RectRegion(geom.NewBox(2000, 2000, 6000, 6000))

		result, err := polygon.Boolean(a, b, op)
		if err != nil {
			return err
		}

		holes := 0
		for _, pc := range result.Pieces {
			holes += len(pc.Holes)
		}
		fmt.Printf("op=%s pieces=%d holes=%d area=%d\n", clipOp, len(result.Pieces), holes, result.Area())
		return nil
	},
}

func parseOp(name string) (polygon.Op, error) {
	switch name {
	case "union":
		return polygon.Union, nil
	case "intersect":
		return polygon.Intersection, nil
	case "subtract":
		return polygon.Subtract, nil
	case "xor":
		return polygon.Xor, nil
	default:
		return 0, fmt.Errorf("clip: unknown op %q (want union|intersect|subtract|xor)", name)
	}
}

func init() {
	RootCmd.AddCommand(clipCmd)
	clipCmd.Flags().StringVar(&clipOp, "op", "union", "boolean operation: union|intersect|subtract|xor")
}
