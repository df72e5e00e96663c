package camera

import (
	"testing"

	"github.com/philipparndt/femscene/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookingDownZ(projection Projection) *Camera {
	cam := New()
	cam.Position = geometry.NewVector3(0, 0, 10)
	cam.Projection = projection
	return cam
}

func TestParseProjection(t *testing.T) {
	p, err := ParseProjection("Parallel")
	require.NoError(t, err)
	assert.Equal(t, Parallel, p)

	p, err = ParseProjection("")
	require.NoError(t, err)
	assert.Equal(t, Perspective, p)

	_, err = ParseProjection("fisheye")
	assert.Error(t, err)
}

func TestAxes(t *testing.T) {
	cam := lookingDownZ(Perspective)
	right, up, forward := cam.Axes()
	assert.InDelta(t, 1, right.X, 1e-12)
	assert.InDelta(t, 1, up.Y, 1e-12)
	assert.InDelta(t, -1, forward.Z, 1e-12)

	side := cam.SideAxis()
	assert.InDelta(t, -1, side.X, 1e-12)
}

func TestViewHeight(t *testing.T) {
	cam := lookingDownZ(Parallel)
	cam.ParallelScale = 2.5
	assert.InDelta(t, 5, cam.ViewHeight(), 1e-12)

	cam.Projection = Perspective
	cam.ViewAngle = 90
	assert.InDelta(t, 20, cam.ViewHeight(), 1e-9)
}

func TestWorldToScreen(t *testing.T) {
	vp := Viewport{Width: 200, Height: 100}
	for _, projection := range []Projection{Perspective, Parallel} {
		cam := lookingDownZ(projection)

		pos, _, ok := cam.WorldToScreen(cam.FocalPoint, vp)
		require.True(t, ok)
		assert.InDelta(t, 100, pos.X, 1e-9, projection.String())
		assert.InDelta(t, 50, pos.Y, 1e-9, projection.String())

		// a point above the focal point is drawn above the center
		pos, _, ok = cam.WorldToScreen(geometry.NewVector3(0, 0.1, 0), vp)
		require.True(t, ok)
		assert.Less(t, pos.Y, 50.0, projection.String())
	}

	cam := lookingDownZ(Perspective)
	_, _, ok := cam.WorldToScreen(geometry.NewVector3(0, 0, 20), Viewport{Width: 200, Height: 100})
	assert.False(t, ok, "behind the camera")

	_, _, ok = cam.WorldToScreen(cam.FocalPoint, Viewport{})
	assert.False(t, ok, "empty viewport")
}

func TestScreenToFocalPlaneRoundTrip(t *testing.T) {
	vp := Viewport{Width: 640, Height: 480}
	for _, projection := range []Projection{Perspective, Parallel} {
		cam := lookingDownZ(projection)
		screen := geometry.NewVector2(100, 400)

		world := cam.ScreenToFocalPlane(screen, vp)
		assert.InDelta(t, 0, world.Z, 1e-9)

		back, _, ok := cam.WorldToScreen(world, vp)
		require.True(t, ok)
		assert.InDelta(t, screen.X, back.X, 1e-6, projection.String())
		assert.InDelta(t, screen.Y, back.Y, 1e-6, projection.String())
	}
}

func TestDollyTowardsFocalPoint(t *testing.T) {
	cam := lookingDownZ(Perspective)
	cam.Dolly(2)
	assert.InDelta(t, 5, cam.Distance(), 1e-12)
	assert.Equal(t, geometry.Vector3{}, cam.FocalPoint)

	before := *cam
	cam.Dolly(0)
	assert.Equal(t, before, *cam)
}

func TestResetClippingRange(t *testing.T) {
	cam := lookingDownZ(Perspective)
	cam.ResetClippingRange(geometry.AABBFromPoints(
		geometry.NewVector3(-1, -1, -1),
		geometry.NewVector3(1, 1, 1),
	))

	near, far := cam.ClippingRange[0], cam.ClippingRange[1]
	assert.Greater(t, near, 0.0)
	assert.LessOrEqual(t, near, 9.0)
	assert.GreaterOrEqual(t, far, 11.0)

	before := *cam
	cam.ResetClippingRange(geometry.NewAABB())
	assert.Equal(t, before, *cam)
}

func TestResetToBounds(t *testing.T) {
	cam := lookingDownZ(Perspective)
	bounds := geometry.AABBFromPoints(
		geometry.NewVector3(10, 10, 0),
		geometry.NewVector3(14, 13, 0),
	)
	cam.ResetToBounds(bounds)

	assert.Equal(t, geometry.NewVector3(12, 11.5, 0), cam.FocalPoint)
	assert.InDelta(t, 0, cam.Direction().Sub(geometry.NewVector3(0, 0, -1)).Length(), 1e-12)
	assert.InDelta(t, 2.5, cam.ParallelScale, 1e-12)

	vp := Viewport{Width: 300, Height: 300}
	for _, corner := range bounds.Corners() {
		pos, _, ok := cam.WorldToScreen(corner, vp)
		require.True(t, ok)
		assert.True(t, vp.Rect().Contains(pos), "corner %v at %v", corner, pos)
	}
}

func TestOrthogonalizeViewUp(t *testing.T) {
	cam := lookingDownZ(Perspective)
	cam.ViewUp = geometry.NewVector3(0, 1, 1)
	cam.OrthogonalizeViewUp()
	assert.InDelta(t, 0, cam.ViewUp.Dot(cam.Direction()), 1e-12)
	assert.InDelta(t, 1, cam.ViewUp.Length(), 1e-12)

	// up parallel to the view direction
	cam.ViewUp = geometry.NewVector3(0, 0, 1)
	cam.OrthogonalizeViewUp()
	assert.InDelta(t, 0, cam.ViewUp.Dot(cam.Direction()), 1e-12)
	assert.InDelta(t, 1, cam.ViewUp.Length(), 1e-12)
}

func TestSelectionFrustum(t *testing.T) {
	cam := lookingDownZ(Parallel)
	vp := Viewport{Width: 100, Height: 100}

	// upper left quadrant
	f, ok := cam.SelectionFrustum(geometry.RectFromCorners(
		geometry.NewVector2(0, 0),
		geometry.NewVector2(50, 50),
	), vp)
	require.True(t, ok)
	assert.True(t, f.ContainsPoint(geometry.NewVector3(-0.5, 0.5, 0)))
	assert.False(t, f.ContainsPoint(geometry.NewVector3(0.5, 0.5, 0)))
	assert.False(t, f.ContainsPoint(geometry.NewVector3(-0.5, -0.5, 0)))

	// partially outside, clamped
	f, ok = cam.SelectionFrustum(geometry.RectFromCorners(
		geometry.NewVector2(90, 90),
		geometry.NewVector2(200, 200),
	), vp)
	require.True(t, ok)
	assert.True(t, f.ContainsPoint(geometry.NewVector3(0.9, -0.9, 0)))

	_, ok = cam.SelectionFrustum(geometry.RectFromCorners(
		geometry.NewVector2(120, 0),
		geometry.NewVector2(200, 50),
	), vp)
	assert.False(t, ok, "outside the viewport")

	_, ok = cam.SelectionFrustum(geometry.RectFromCorners(
		geometry.NewVector2(0, 0),
		geometry.NewVector2(50, 50),
	), Viewport{})
	assert.False(t, ok, "empty viewport")
}

func TestSelectionFrustumPerspective(t *testing.T) {
	cam := lookingDownZ(Perspective)
	vp := Viewport{Width: 100, Height: 100}

	f, ok := cam.SelectionFrustum(geometry.RectFromCorners(
		geometry.NewVector2(45, 45),
		geometry.NewVector2(55, 55),
	), vp)
	require.True(t, ok)
	assert.True(t, f.ContainsPoint(cam.FocalPoint))

	half := 0.1 * cam.ViewHeight() / 2
	assert.False(t, f.ContainsPoint(geometry.NewVector3(2*half, 0, 0)))
	assert.True(t, f.ContainsPoint(geometry.NewVector3(0.5*half, 0, 0)))
}
