package main

import (
	"fmt"

	"github.com/philipparndt/femscene/pkg/analysis"
	"github.com/philipparndt/femscene/pkg/model"
	"github.com/spf13/cobra"
)

var (
	elementsCount     int
	elementsLongest   bool
	elementsShortest  bool
	elementsMinLength float64
	elementsMaxLength float64
)

var elementsCmd = &cobra.Command{
	Use:   "elements [file]",
	Short: "List and measure the elements of a model",
	Long:  "Find and measure elements, including longest, shortest, or elements within a specific length range.",
	Args:  cobra.ExactArgs(1),
	RunE:  runElements,
}

func init() {
	rootCmd.AddCommand(elementsCmd)

	elementsCmd.Flags().IntVarP(&elementsCount, "count", "n", 10, "Number of elements to display")
	elementsCmd.Flags().BoolVarP(&elementsLongest, "longest", "l", false, "Show longest elements")
	elementsCmd.Flags().BoolVarP(&elementsShortest, "shortest", "s", false, "Show shortest elements")
	elementsCmd.Flags().Float64Var(&elementsMinLength, "min", 0.0, "Minimum element length filter")
	elementsCmd.Flags().Float64Var(&elementsMaxLength, "max", 0.0, "Maximum element length filter")
}

func runElements(cmd *cobra.Command, args []string) error {
	structure, err := model.Load(args[0])
	if err != nil {
		return err
	}

	result := analysis.AnalyzeStructure(structure)

	var elements []analysis.ElementInfo
	var title string

	switch {
	case elementsLongest:
		elements = analysis.FindLongestElements(result, elementsCount)
		title = fmt.Sprintf("Top %d Longest Elements", len(elements))
	case elementsShortest:
		elements = analysis.FindShortestElements(result, elementsCount)
		title = fmt.Sprintf("Top %d Shortest Elements", len(elements))
	case elementsMaxLength > 0:
		elements = analysis.FindElementsByLength(result, elementsMinLength, elementsMaxLength)
		title = fmt.Sprintf("Elements between %.6f and %.6f units (found %d)", elementsMinLength, elementsMaxLength, len(elements))
	default:
		elements = result.AllElements
		title = fmt.Sprintf("All Elements (showing at most %d of %d)", elementsCount, len(elements))
	}
	if len(elements) > elementsCount {
		elements = elements[:elementsCount]
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, title)
	for _, e := range elements {
		fmt.Fprintf(out, "  %d: %s -> %s  %s\n", e.ID,
			analysis.FormatVector(e.Start), analysis.FormatVector(e.End),
			analysis.FormatMeasurement(e.Length, "units"))
	}
	return nil
}
