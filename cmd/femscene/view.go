package main

import (
	"github.com/philipparndt/femscene/internal/app"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Open a model in the interactive viewer",
	Long:  "Open a YAML structure or STL file in a window. The file is reloaded when it changes on disk.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	filename := ""
	if len(args) == 1 {
		filename = args[0]
	}
	return app.Run(filename, cfg, logger)
}
