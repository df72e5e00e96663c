package main

import (
	"fmt"

	"github.com/philipparndt/femscene/pkg/analysis"
	"github.com/philipparndt/femscene/pkg/model"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a model",
	Long:  "Show node, element and group counts, the bounding box and element length statistics.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	structure, err := model.Load(filename)
	if err != nil {
		return err
	}

	result := analysis.AnalyzeStructure(structure)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Model Information")
	fmt.Fprintln(out, "=================")
	fmt.Fprintf(out, "Name: %s\n", structure.Name)
	fmt.Fprintf(out, "File: %s\n\n", filename)

	fmt.Fprintln(out, "Structure:")
	fmt.Fprintf(out, "  Nodes: %d\n", result.NodeCount)
	fmt.Fprintf(out, "  Elements: %d\n", result.ElementCount)
	fmt.Fprintf(out, "  Groups: %d\n\n", result.GroupCount)

	if result.NodeCount > 0 {
		fmt.Fprintln(out, "Bounding Box:")
		fmt.Fprintf(out, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
		fmt.Fprintf(out, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
		fmt.Fprintf(out, "  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

		fmt.Fprintln(out, "Dimensions:")
		fmt.Fprintf(out, "  Width (X):  %.6f units\n", result.Dimensions.X)
		fmt.Fprintf(out, "  Height (Y): %.6f units\n", result.Dimensions.Y)
		fmt.Fprintf(out, "  Depth (Z):  %.6f units\n\n", result.Dimensions.Z)
	}

	if result.ElementCount > 0 {
		fmt.Fprintln(out, "Element Lengths:")
		fmt.Fprintf(out, "  Total:   %s\n", analysis.FormatMeasurement(result.TotalLength, "units"))
		fmt.Fprintf(out, "  Minimum: %s\n", analysis.FormatMeasurement(result.MinElementLength, "units"))
		fmt.Fprintf(out, "  Maximum: %s\n", analysis.FormatMeasurement(result.MaxElementLength, "units"))
		fmt.Fprintf(out, "  Average: %s\n", analysis.FormatMeasurement(result.AvgElementLength, "units"))
	}
	return nil
}
