package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/femscene/pkg/model"
	"github.com/spf13/cobra"
)

var convertOutput string

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Write a model as a YAML structure file",
	Long: `Convert an STL mesh (or normalize a YAML structure) into a YAML structure file.
Unique vertices become nodes, unique triangle edges become elements and each
facet becomes a group of its three edges.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output file (default stdout)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	structure, err := model.Load(args[0])
	if err != nil {
		return err
	}

	if convertOutput == "" {
		return model.WriteYAML(cmd.OutOrStdout(), structure)
	}

	f, err := os.Create(convertOutput)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := model.WriteYAML(f, structure); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info("structure written", "file", convertOutput, "nodes", len(structure.Nodes), "elements", len(structure.Elements))
	return nil
}
