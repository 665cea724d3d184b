package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gopcb/pcbcore/internal/config"
)

// configCmd writes a prefilled build settings file.
var configCmd = &cobra.Command{
	Use:   "config [FILE]",
	Short: "write a build settings file",
	Long: `Write a build settings file in YAML format, prefilled with
default values. If FILE is not given, 'pcbroute.yml' is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "pcbroute.yml"
		if len(args) >= 1 {
			path = args[0]
		}
		ok, err := confirmIfExists(path, fmt.Sprintf("%s already exists, overwrite? [y/N]", path))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("aborted")
			return nil
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Printf("settings written to %s\n", path)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
}
