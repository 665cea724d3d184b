package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "pcbroute",
	Short: "autoplace and autoroute PCB designs",
	Long: `pcbroute drives the autoplacer and autorouter core:
	- place: anneal a set of components into a low-cost layout,
	- route: run the multi-pass gridless autorouter,
	- clip: exercise the polygon clearance/Boolean engine,
	- config: write a prefilled YAML settings file.`,
}

// Execute adds all child commands to the root command and runs it. It
// is called by main.main; it only needs to happen once.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
