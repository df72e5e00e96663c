// Package camera holds the viewport camera and the arcball controller that
// turns pointer gestures into camera transforms.
package camera

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/femscene/pkg/geometry"
)

// Projection selects perspective or parallel (orthographic) viewing
type Projection int

const (
	Perspective Projection = iota
	Parallel
)

func (p Projection) String() string {
	switch p {
	case Perspective:
		return "perspective"
	case Parallel:
		return "parallel"
	}
	return fmt.Sprintf("Projection(%d)", int(p))
}

// ParseProjection parses "perspective" or "parallel"
func ParseProjection(s string) (Projection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "perspective", "":
		return Perspective, nil
	case "parallel", "orthographic", "ortho":
		return Parallel, nil
	}
	return Perspective, fmt.Errorf("unknown projection %q", s)
}

// Viewport is the size of the render target in pixels
type Viewport struct {
	Width, Height float64
}

// Valid reports whether both dimensions are positive
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

// Aspect returns width / height
func (v Viewport) Aspect() float64 {
	if v.Height == 0 {
		return 1
	}
	return v.Width / v.Height
}

// Center returns the middle of the viewport in screen coordinates
func (v Viewport) Center() geometry.Vector2 {
	return geometry.Vector2{X: v.Width / 2, Y: v.Height / 2}
}

// Rect returns the viewport as a screen rectangle
func (v Viewport) Rect() geometry.Rect {
	return geometry.Rect{Max: geometry.Vector2{X: v.Width, Y: v.Height}}
}

// Camera is the viewing state. It is a plain value: copying it snapshots it
// and two cameras compare equal when every field is identical.
type Camera struct {
	Position   geometry.Vector3
	FocalPoint geometry.Vector3
	ViewUp     geometry.Vector3
	Projection Projection

	ViewAngle     float64    // vertical field of view in degrees (perspective)
	ParallelScale float64    // half of the visible height in world units (parallel)
	ClippingRange [2]float64 // near and far distance along the view direction
}

// New creates a camera at (0,0,1) looking at the origin with +Y up
func New() *Camera {
	return &Camera{
		Position:      geometry.NewVector3(0, 0, 1),
		ViewUp:        geometry.NewVector3(0, 1, 0),
		Projection:    Perspective,
		ViewAngle:     30,
		ParallelScale: 1,
		ClippingRange: [2]float64{0.01, 1000.01},
	}
}

// Distance returns the distance from position to focal point
func (c *Camera) Distance() float64 {
	return c.Position.Distance(c.FocalPoint)
}

// Direction returns the normalized direction of projection
func (c *Camera) Direction() geometry.Vector3 {
	return c.FocalPoint.Sub(c.Position).Normalize()
}

// ViewMatrix returns the world-to-camera transform
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position.Mgl(), c.FocalPoint.Mgl(), c.ViewUp.Mgl())
}

// ProjectionMatrix returns the camera-to-clip transform for the given aspect ratio
func (c *Camera) ProjectionMatrix(aspect float64) mgl64.Mat4 {
	near, far := c.ClippingRange[0], c.ClippingRange[1]
	if c.Projection == Parallel {
		s := c.ParallelScale
		return mgl64.Ortho(-s*aspect, s*aspect, -s, s, near, far)
	}
	if near <= 0 {
		near = far * 1e-4
	}
	return mgl64.Perspective(mgl64.DegToRad(c.ViewAngle), aspect, near, far)
}

// Axes returns the camera right, up and forward vectors in world space
func (c *Camera) Axes() (right, up, forward geometry.Vector3) {
	forward = c.Direction()
	right = forward.Cross(c.ViewUp).Normalize()
	up = right.Cross(forward).Normalize()
	return right, up, forward
}

// SideAxis returns the lateral rotation axis: the negated first row of the view matrix
func (c *Camera) SideAxis() geometry.Vector3 {
	row := c.ViewMatrix().Row(0)
	return geometry.NewVector3(-row[0], -row[1], -row[2])
}

// ViewHeight returns the visible height in world units at the focal point
func (c *Camera) ViewHeight() float64 {
	if c.Projection == Parallel {
		return 2 * c.ParallelScale
	}
	return 2 * c.Distance() * math.Tan(mgl64.DegToRad(0.5*c.ViewAngle))
}

// Translate moves position and focal point by d
func (c *Camera) Translate(d geometry.Vector3) {
	c.Position = c.Position.Add(d)
	c.FocalPoint = c.FocalPoint.Add(d)
}

// ApplyTransform applies m to position and focal point; the view-up vector is untouched
func (c *Camera) ApplyTransform(m mgl64.Mat4) {
	c.Position = c.Position.Transform(m)
	c.FocalPoint = c.FocalPoint.Transform(m)
}

// Dolly moves the position towards the focal point, dividing the distance by factor
func (c *Camera) Dolly(factor float64) {
	if factor <= 0 {
		return
	}
	d := c.Distance() / factor
	c.Position = c.FocalPoint.Sub(c.Direction().Mul(d))
}

// OrthogonalizeViewUp makes the view-up vector perpendicular to the view direction
func (c *Camera) OrthogonalizeViewUp() {
	c.ViewUp = orthogonalize(c.ViewUp, c.Direction(), geometry.Vector3{})
}

// orthogonalize removes the component of up along dir. When up is parallel to
// dir the fallback is used instead, and failing that any perpendicular axis.
func orthogonalize(up, dir, fallback geometry.Vector3) geometry.Vector3 {
	for _, candidate := range []geometry.Vector3{up, fallback} {
		v := candidate.Sub(dir.Mul(candidate.Dot(dir)))
		if v.Length() > 1e-9 {
			return v.Normalize()
		}
	}
	axis := geometry.NewVector3(0, 1, 0)
	if math.Abs(dir.Y) > 0.9 {
		axis = geometry.NewVector3(0, 0, 1)
	}
	return axis.Sub(dir.Mul(axis.Dot(dir))).Normalize()
}

// ResetClippingRange fits near and far planes around bounds
func (c *Camera) ResetClippingRange(bounds geometry.AABB) {
	if bounds.IsEmpty() {
		return
	}
	dir := c.Direction()
	near, far := math.MaxFloat64, -math.MaxFloat64
	for _, corner := range bounds.Corners() {
		d := corner.Sub(c.Position).Dot(dir)
		near = math.Min(near, d)
		far = math.Max(far, d)
	}

	pad := 0.01*(far-near) + 1e-6*math.Max(1, math.Abs(far))
	near -= pad
	far += pad

	if c.Projection == Perspective {
		if far <= 0 {
			return
		}
		near = math.Max(near, far*1e-3)
	}
	c.ClippingRange = [2]float64{near, far}
}

// ResetToBounds keeps the view direction and frames bounds in the viewport
func (c *Camera) ResetToBounds(bounds geometry.AABB) {
	if bounds.IsEmpty() {
		return
	}
	dir := c.Direction()
	if dir.IsZero() {
		dir = geometry.NewVector3(0, 0, -1)
	}
	radius := bounds.Diagonal() / 2
	if radius == 0 {
		radius = 1
	}

	distance := radius / math.Sin(mgl64.DegToRad(0.5*c.ViewAngle))
	c.FocalPoint = bounds.Center()
	c.Position = c.FocalPoint.Sub(dir.Mul(distance))
	c.ViewUp = orthogonalize(c.ViewUp, dir, geometry.Vector3{})
	c.ParallelScale = radius
	c.ResetClippingRange(bounds)
}

// WorldToScreen projects p to screen coordinates (pixels, y down).
// ok is false when p is behind a perspective camera or the viewport is empty.
func (c *Camera) WorldToScreen(p geometry.Vector3, vp Viewport) (pos geometry.Vector2, depth float64, ok bool) {
	if !vp.Valid() {
		return pos, 0, false
	}
	clip := c.ProjectionMatrix(vp.Aspect()).Mul4(c.ViewMatrix()).Mul4x1(p.Mgl().Vec4(1))
	if clip[3] <= 0 {
		return pos, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip[3])
	pos = geometry.Vector2{
		X: (ndc[0] + 1) / 2 * vp.Width,
		Y: (1 - ndc[1]) / 2 * vp.Height,
	}
	return pos, ndc[2], true
}

// ScreenToFocalPlane returns the world point on the plane through the focal
// point (perpendicular to the view direction) that is shown at screen position s
func (c *Camera) ScreenToFocalPlane(s geometry.Vector2, vp Viewport) geometry.Vector3 {
	if !vp.Valid() {
		return c.FocalPoint
	}
	scale := c.ViewHeight() / vp.Height
	offset := s.Sub(vp.Center())
	right, up, _ := c.Axes()
	return c.FocalPoint.Add(right.Mul(offset.X * scale)).Add(up.Mul(-offset.Y * scale))
}

// SelectionFrustum returns the frustum swept by a screen rectangle. The rectangle
// is clamped to the viewport; ok is false when nothing of it remains.
func (c *Camera) SelectionFrustum(r geometry.Rect, vp Viewport) (geometry.Frustum, bool) {
	if !vp.Valid() {
		return geometry.Frustum{}, false
	}
	r = r.Intersect(vp.Rect())
	if r.IsEmpty() {
		return geometry.Frustum{}, false
	}

	// rectangle in normalized device coordinates (y up)
	x0 := 2*r.Min.X/vp.Width - 1
	x1 := 2*r.Max.X/vp.Width - 1
	y0 := 1 - 2*r.Max.Y/vp.Height
	y1 := 1 - 2*r.Min.Y/vp.Height

	// pick matrix mapping the rectangle onto the full clip volume
	sx, sy := 2/(x1-x0), 2/(y1-y0)
	tx, ty := -(x1+x0)/(x1-x0), -(y1+y0)/(y1-y0)
	pick := mgl64.Mat4{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, 1, 0,
		tx, ty, 0, 1,
	}

	m := pick.Mul4(c.ProjectionMatrix(vp.Aspect())).Mul4(c.ViewMatrix())
	return geometry.FrustumFromMatrix(m), true
}
