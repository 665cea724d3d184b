package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gopcb/pcbcore/board"
	"github.com/gopcb/pcbcore/internal/config"
	"github.com/gopcb/pcbcore/route"
	"github.com/gopcb/pcbcore/route/pass"
	"github.com/gopcb/pcbcore/spatial/mts"
)

var (
	routeConfigPath string
	routeComponents int
	routeNets       int
)

// routeCmd runs the multi-pass autorouter over a synthetic board.
var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "route a synthetic board",
	Long: `Build a small synthetic board from --components/--nets, register
each net's pins as fixed route.Box terminals, and run the multi-pass
autorouter over them, reporting how many nets routed cleanly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadConfig(routeConfigPath)
		if err != nil {
			return err
		}
		ctx := config.NewContext(settings, nil)

		b := syntheticBoard(ctx.Board.X2, ctx.Board.Y2, routeComponents, routeNets, settings.AnnealSeed)
		netStyle := map[string]string{}
		for _, net := range b.Nets {
			netStyle[net.Name] = net.Style
		}
		styleForNet := func(net string) board.RouteStyle { return ctx.Style(netStyle[net]) }

		mspace := mts.New()
		m := route.Prepare(route.PrepareConfig{
			Board:       b,
			LayerGroups: []int{0},
			Style:       styleForNet,
			MTS:         mspace,
		})

		netBoxes := map[string][]*route.Box{}
		for _, net := range b.Nets {
			netBoxes[net.Name] = m.SameNet(net.Name)
		}
		netOrder := pass.OrderByArea(b.Nets)

		result, err := pass.Run(pass.Config{
			Model:       m,
			MTS:         mspace,
			Board:       ctx.Board,
			LayerGroups: []int{0},
			NetBoxes:    netBoxes,
			NetOrder:    netOrder,
			Style:       styleForNet,
			Passes:      ctx.Passes,
			Smoothes:    ctx.Smoothes,
			ViaOn:       ctx.ViaOn,
			AllowJogs:   ctx.AllowJogs,
			Progress: func(pct float64) bool {
				ctx.Logger.Message("router: %.0f%% complete", pct)
				return false
			},
		})
		if err != nil {
			return err
		}

		routed := 0
		for _, r := range result.Nets {
			if r.Routed {
				routed++
			}
		}
		ctx.Logger.Message("router: %d/%d nets routed in %d passes", routed, len(result.Nets), result.PassesRun)
		fmt.Printf("routed=%d/%d passes=%d\n", routed, len(result.Nets), result.PassesRun)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(routeCmd)
	routeCmd.Flags().StringVar(&routeConfigPath, "config", "", "settings YAML file (defaults used if omitted)")
	routeCmd.Flags().IntVar(&routeComponents, "components", 12, "number of synthetic components to place pins on")
	routeCmd.Flags().IntVar(&routeNets, "nets", 10, "number of synthetic two-pin nets to route")
}
