package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gopcb/pcbcore/internal/config"
	"github.com/gopcb/pcbcore/place"
)

var (
	placeConfigPath string
	placeComponents int
	placeNets       int
)

// placeCmd anneals a synthetic board's component layout and reports
// the resulting cost.
var placeCmd = &cobra.Command{
	Use:   "place",
	Short: "anneal a synthetic board's component layout",
	Long: `Build a small synthetic board from --components/--nets and run
the simulated-annealing placer over it, reporting the final cost and
temperature. There is no board file format to load a real design
from; this exercises the placer end to end.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadConfig(placeConfigPath)
		if err != nil {
			return err
		}
		ctx := config.NewContext(settings, nil)

		b := syntheticBoard(ctx.Board.X2, ctx.Board.Y2, placeComponents, placeNets, settings.AnnealSeed)
		ann := place.NewAnnealer(b, ctx.PlaceCost, settings.AnnealSeed)
		t0 := ann.EstimateT0()
		ctx.Logger.Message("placer: %d components, %d nets, T0=%.1f", placeComponents, placeNets, t0)

		result := ann.Run()
		ctx.Logger.Message("placer: finished after %d stages, final cost=%.1f, final T=%.2f, moved=%v",
			result.Stages, result.FinalCost, result.FinalT, result.MovedAny)
		fmt.Printf("stages=%d cost=%.1f moved=%v\n", result.Stages, result.FinalCost, result.MovedAny)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(placeCmd)
	placeCmd.Flags().StringVar(&placeConfigPath, "config", "", "settings YAML file (defaults used if omitted)")
	placeCmd.Flags().IntVar(&placeComponents, "components", 12, "number of synthetic components to place")
	placeCmd.Flags().IntVar(&placeNets, "nets", 10, "number of synthetic two-pin nets to wire")
}
