package scene

import (
	"testing"

	"github.com/philipparndt/femscene/pkg/camera"
	"github.com/philipparndt/femscene/pkg/geometry"
	"github.com/philipparndt/femscene/pkg/idset"
	"github.com/philipparndt/femscene/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// portal frame: two columns and a beam in the z=0 plane
func portal() *model.Structure {
	s := model.NewStructure("portal")
	s.AddNode(1, geometry.NewVector3(0, 0, 0))
	s.AddNode(2, geometry.NewVector3(0, 3, 0))
	s.AddNode(3, geometry.NewVector3(4, 3, 0))
	s.AddNode(4, geometry.NewVector3(4, 0, 0))
	s.AddElement(10, 1, 2)
	s.AddElement(11, 2, 3)
	s.AddElement(12, 3, 4)
	s.AddGroup(1, "columns", 10, 12)
	s.AddGroup(2, "beam", 11)
	return s
}

func TestBuild(t *testing.T) {
	idx := Build(portal(), 0.5)

	assert.Equal(t, []PointID{1, 2, 3, 4}, idx.Points())
	assert.Equal(t, []SegmentID{10, 11, 12}, idx.Segments())
	assert.Equal(t, []GroupID{1, 2}, idx.Groups())

	b, ok := idx.PointBounds(2)
	require.True(t, ok)
	assert.Equal(t, geometry.NewVector3(-0.5, 2.5, -0.5), b.Min)
	assert.Equal(t, geometry.NewVector3(0.5, 3.5, 0.5), b.Max)

	b, ok = idx.SegmentBounds(11)
	require.True(t, ok)
	assert.Equal(t, geometry.NewVector3(-0.5, 2.5, -0.5), b.Min)
	assert.Equal(t, geometry.NewVector3(4.5, 3.5, 0.5), b.Max)

	_, ok = idx.SegmentBounds(99)
	assert.False(t, ok)

	assert.Equal(t, []SegmentID{10, 12}, idx.Members(1))
	assert.Equal(t, []GroupID{1}, idx.GroupsOf(12))
	assert.Empty(t, idx.GroupsOf(99))

	bounds := idx.Bounds()
	assert.Equal(t, geometry.NewVector3(-0.5, -0.5, -0.5), bounds.Min)
	assert.Equal(t, geometry.NewVector3(4.5, 3.5, 0.5), bounds.Max)
}

func TestBuildSkipsDanglingElements(t *testing.T) {
	s := portal()
	s.AddElement(13, 4, 42)
	idx := Build(s, 0)
	_, ok := idx.SegmentBounds(13)
	assert.False(t, ok)
}

func TestGroupsTouching(t *testing.T) {
	idx := NewIndex(nil, nil, map[GroupID][]SegmentID{
		1: {1, 2},
		2: {2, 3},
		3: {4},
	})

	assert.Equal(t, []GroupID{1, 2}, idx.GroupsTouching(idset.Of[SegmentID](2)).Sorted())
	assert.Equal(t, []GroupID{1, 3}, idx.GroupsTouching(idset.Of[SegmentID](1, 4)).Sorted())
	assert.Zero(t, idx.GroupsTouching(idset.Of[SegmentID](7)).Len())
	assert.Equal(t, []GroupID{1, 2}, idx.GroupsOf(2))
}

func TestNewIndexCopiesInput(t *testing.T) {
	points := map[PointID]geometry.AABB{1: geometry.AABBFromPoints(geometry.Vector3{})}
	idx := NewIndex(points, nil, nil)
	delete(points, 1)

	assert.Equal(t, []PointID{1}, idx.Points())
	assert.True(t, Empty().Bounds().IsEmpty())
}

func frontCamera() *camera.Camera {
	cam := camera.New()
	cam.FocalPoint = geometry.NewVector3(2, 1.5, 0)
	cam.Position = geometry.NewVector3(2, 1.5, 20)
	cam.Projection = camera.Parallel
	cam.ParallelScale = 5
	return cam
}

func screenOf(t *testing.T, cam *camera.Camera, vp camera.Viewport, p geometry.Vector3) geometry.Vector2 {
	t.Helper()
	s, _, ok := cam.WorldToScreen(p, vp)
	require.True(t, ok)
	return s
}

func TestPickerPick(t *testing.T) {
	s := portal()
	cam := frontCamera()
	vp := camera.Viewport{Width: 400, Height: 400}
	picker := NewPicker(s, cam)
	picker.SetViewport(vp)

	// on node 3
	h, ok := picker.Pick(screenOf(t, cam, vp, geometry.NewVector3(4, 3, 0)))
	require.True(t, ok)
	assert.True(t, h.IsNode)
	assert.Equal(t, 3, h.Node)

	// middle of the beam
	h, ok = picker.Pick(screenOf(t, cam, vp, geometry.NewVector3(2, 3, 0)).Add(geometry.NewVector2(0, 2)))
	require.True(t, ok)
	assert.False(t, h.IsNode)
	assert.Equal(t, 11, h.Element)
	assert.InDelta(t, 2, h.Point.X, 0.1)
	assert.InDelta(t, 3, h.Point.Y, 1e-9)

	// empty space in the middle of the frame
	_, ok = picker.Pick(vp.Center())
	assert.False(t, ok)

	p, ok := picker.PickUnderCursor(screenOf(t, cam, vp, geometry.NewVector3(0, 0, 0)))
	require.True(t, ok)
	assert.Equal(t, geometry.NewVector3(0, 0, 0), p)
}

func TestPickerPrefersNearest(t *testing.T) {
	s := model.NewStructure("stack")
	s.AddNode(1, geometry.NewVector3(0, 0, -5))
	s.AddNode(2, geometry.NewVector3(0, 0, 5))

	cam := camera.New()
	cam.Position = geometry.NewVector3(0, 0, 20)
	picker := NewPicker(s, cam)
	vp := camera.Viewport{Width: 100, Height: 100}
	picker.SetViewport(vp)

	h, ok := picker.Pick(vp.Center())
	require.True(t, ok)
	assert.Equal(t, 2, h.Node)
}

func TestPickerWithoutViewport(t *testing.T) {
	picker := NewPicker(portal(), frontCamera())
	_, ok := picker.Pick(geometry.NewVector2(1, 1))
	assert.False(t, ok)

	bounds, ok := picker.VisibleBounds()
	require.True(t, ok)
	assert.Equal(t, geometry.NewVector3(4, 3, 0), bounds.Max)

	picker.SetStructure(nil)
	_, ok = picker.VisibleBounds()
	assert.False(t, ok)
}
