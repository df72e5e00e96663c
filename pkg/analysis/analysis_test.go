package analysis

import (
	"testing"

	"github.com/philipparndt/femscene/pkg/geometry"
	"github.com/philipparndt/femscene/pkg/idset"
	"github.com/philipparndt/femscene/pkg/model"
	"github.com/philipparndt/femscene/pkg/scene"
	"github.com/philipparndt/femscene/pkg/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func portal() *model.Structure {
	s := model.NewStructure("portal")
	s.AddNode(1, geometry.NewVector3(0, 0, 0))
	s.AddNode(2, geometry.NewVector3(0, 3, 0))
	s.AddNode(3, geometry.NewVector3(4, 3, 0))
	s.AddNode(4, geometry.NewVector3(4, 0, 0))
	s.AddElement(10, 1, 2)
	s.AddElement(11, 2, 3)
	s.AddElement(12, 3, 4)
	s.AddElement(13, 1, 99)
	s.AddGroup(1, "columns", 10, 12)
	s.AddGroup(2, "beam", 11)
	return s
}

func TestAnalyzeStructure(t *testing.T) {
	result := AnalyzeStructure(portal())

	assert.Equal(t, 4, result.NodeCount)
	assert.Equal(t, 3, result.ElementCount)
	assert.Equal(t, 2, result.GroupCount)
	assert.Equal(t, geometry.NewVector3(4, 3, 0), result.Dimensions)
	assert.InDelta(t, 10, result.TotalLength, 1e-12)
	assert.InDelta(t, 3, result.MinElementLength, 1e-12)
	assert.InDelta(t, 4, result.MaxElementLength, 1e-12)
	assert.InDelta(t, 10.0/3, result.AvgElementLength, 1e-12)

	longest := FindLongestElements(result, 1)
	require.Len(t, longest, 1)
	assert.Equal(t, 11, longest[0].ID)

	shortest := FindShortestElements(result, 10)
	require.Len(t, shortest, 3)
	assert.Equal(t, []int{10, 12, 11}, []int{shortest[0].ID, shortest[1].ID, shortest[2].ID})

	assert.Len(t, FindElementsByLength(result, 3.5, 5), 1)
}

func TestAnalyzeEmptyStructure(t *testing.T) {
	result := AnalyzeStructure(model.NewStructure("empty"))
	assert.Zero(t, result.ElementCount)
	assert.Zero(t, result.MinElementLength)
	assert.Equal(t, geometry.Vector3{}, result.Dimensions)
}

func TestSummarize(t *testing.T) {
	st := selection.NewState()
	st.Points = idset.Of[scene.PointID](1, 3, 42)
	st.Segments = idset.Of[scene.SegmentID](11, 13)
	st.Groups = idset.Of[scene.GroupID](2)

	summary := Summarize(portal(), st)
	require.Len(t, summary.Nodes, 2)
	require.Len(t, summary.Elements, 1)
	require.Len(t, summary.Groups, 1)
	assert.Equal(t, "beam", summary.Groups[0].Name)
	assert.InDelta(t, 4, summary.TotalLength, 1e-12)

	require.NotNil(t, summary.Distance)
	assert.Equal(t, 1, summary.Distance.From)
	assert.Equal(t, 3, summary.Distance.To)
	assert.Equal(t, geometry.NewVector3(4, 3, 0), summary.Distance.Delta)
	assert.InDelta(t, 5, summary.Distance.Total, 1e-12)

	text := summary.String()
	assert.Contains(t, text, "Nodes: 2")
	assert.Contains(t, text, "Distance 1-3: 5.000000 units")
	assert.Contains(t, text, "2 beam (1 elements)")
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(portal(), selection.NewState())
	assert.True(t, summary.IsEmpty())
	assert.Nil(t, summary.Distance)
	assert.Equal(t, "Nothing selected", summary.String())
}

func TestFormatVector(t *testing.T) {
	assert.Equal(t, "(1.000000, -2.500000, 0.000000)", FormatVector(geometry.NewVector3(1, -2.5, 0)))
	assert.Equal(t, "1.500000 mm", FormatMeasurement(1.5, "mm"))
}
