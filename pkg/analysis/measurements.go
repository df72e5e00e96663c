package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/femscene/pkg/geometry"
	"github.com/philipparndt/femscene/pkg/model"
)

// ElementInfo contains information about an element of the structure
type ElementInfo struct {
	ID     int
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64
}

// StructureResult contains various measurements of a structure
type StructureResult struct {
	BoundingBox      geometry.AABB
	Dimensions       geometry.Vector3
	NodeCount        int
	ElementCount     int
	GroupCount       int
	TotalLength      float64
	MinElementLength float64
	MaxElementLength float64
	AvgElementLength float64
	AllElements      []ElementInfo
}

// AnalyzeStructure measures every element of a structure.
// Elements referencing unknown nodes are skipped.
func AnalyzeStructure(s *model.Structure) *StructureResult {
	result := &StructureResult{
		BoundingBox: s.Bounds(),
		NodeCount:   len(s.Nodes),
		GroupCount:  len(s.Groups),
		AllElements: make([]ElementInfo, 0, len(s.Elements)),
	}
	if !result.BoundingBox.IsEmpty() {
		result.Dimensions = result.BoundingBox.Size()
	}

	minLength := math.MaxFloat64
	maxLength := 0.0
	for _, e := range s.Elements {
		from, to, ok := s.ElementEnds(e.ID)
		if !ok {
			continue
		}
		length := from.Distance(to)
		result.AllElements = append(result.AllElements, ElementInfo{
			ID:     e.ID,
			Start:  from,
			End:    to,
			Length: length,
		})

		result.TotalLength += length
		minLength = math.Min(minLength, length)
		maxLength = math.Max(maxLength, length)
	}

	result.ElementCount = len(result.AllElements)
	if result.ElementCount > 0 {
		result.MinElementLength = minLength
		result.MaxElementLength = maxLength
		result.AvgElementLength = result.TotalLength / float64(result.ElementCount)
	}

	return result
}

// FindElementsByLength finds all elements within a length range
func FindElementsByLength(result *StructureResult, minLength, maxLength float64) []ElementInfo {
	var elements []ElementInfo
	for _, e := range result.AllElements {
		if e.Length >= minLength && e.Length <= maxLength {
			elements = append(elements, e)
		}
	}
	return elements
}

// FindLongestElements returns the N longest elements
func FindLongestElements(result *StructureResult, count int) []ElementInfo {
	return sortedElements(result, count, func(a, b ElementInfo) bool {
		return a.Length > b.Length
	})
}

// FindShortestElements returns the N shortest elements
func FindShortestElements(result *StructureResult, count int) []ElementInfo {
	return sortedElements(result, count, func(a, b ElementInfo) bool {
		return a.Length < b.Length
	})
}

func sortedElements(result *StructureResult, count int, less func(a, b ElementInfo) bool) []ElementInfo {
	elements := make([]ElementInfo, len(result.AllElements))
	copy(elements, result.AllElements)

	sort.SliceStable(elements, func(i, j int) bool {
		return less(elements[i], elements[j])
	})

	count = max(0, min(count, len(elements)))
	return elements[:count]
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
