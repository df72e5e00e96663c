package main

import (
	"errors"
	"fmt"

	"github.com/philipparndt/femscene/internal/app"
	"github.com/philipparndt/femscene/internal/script"
	"github.com/philipparndt/femscene/pkg/model"
	"github.com/spf13/cobra"
)

var pickScript string

var pickCmd = &cobra.Command{
	Use:   "pick [file]",
	Short: "Replay a gesture script and print the resulting selection",
	Long: `Replay clicks, drags and wheel steps from a YAML script against a model
without opening a window, then print the selected nodes, elements and groups.`,
	Args: cobra.ExactArgs(1),
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)

	pickCmd.Flags().StringVarP(&pickScript, "script", "s", "", "Gesture script (YAML)")
}

func runPick(cmd *cobra.Command, args []string) error {
	if pickScript == "" {
		return errors.New("a gesture script is required (--script)")
	}

	structure, err := model.Load(args[0])
	if err != nil {
		return err
	}
	steps, err := script.ParseFile(pickScript)
	if err != nil {
		return err
	}

	session, err := app.NewSession(structure, cfg, logger)
	if err != nil {
		return err
	}
	runner := &script.Runner{Router: session.Router, Selector: session.Selector, Logger: logger}
	if err := runner.Run(steps); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), session.Summary())
	return nil
}
