package camera

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/femscene/pkg/geometry"
)

// Reference interaction constants
const (
	DefaultMotionFactor     = 10.0
	DefaultElevationAzimuth = -20.0
	DefaultDollyBase        = 1.1
	DefaultDollyStep        = 0.2
)

// Prober answers scene queries the controller needs but cannot compute itself
type Prober interface {
	// PickUnderCursor returns the nearest visible scene point under a screen position
	PickUnderCursor(pos geometry.Vector2) (geometry.Vector3, bool)
	// VisibleBounds returns the bounds of everything currently shown
	VisibleBounds() (geometry.AABB, bool)
}

// PivotMarker displays the rotation pivot while a rotation is active
type PivotMarker interface {
	ShowPivot(p geometry.Vector3)
	HidePivot()
}

// State is the gesture state of the controller
type State int

const (
	Idle State = iota
	Rotating
	Panning
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Rotating:
		return "rotating"
	case Panning:
		return "panning"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Controller turns pointer gestures into camera transforms: arcball rotation
// around a pivot, screen-plane pan and cursor-anchored dolly.
// It is not safe for concurrent use; drive it from the UI event loop.
type Controller struct {
	camera   *Camera
	viewport Viewport
	prober   Prober
	marker   PivotMarker
	logger   *slog.Logger

	motionFactor     float64
	elevationAzimuth float64
	dollyBase        float64
	dollyStep        float64

	defaultPivot    geometry.Vector3
	hasDefaultPivot bool

	state    State
	pivot    geometry.Vector3
	hasPivot bool
	last     geometry.Vector2
}

// Option configures a Controller
type Option func(*Controller)

// WithMotionFactor sets the gesture sensitivity multiplier
func WithMotionFactor(f float64) Option {
	return func(c *Controller) {
		c.motionFactor = f
	}
}

// WithElevationAzimuth sets the degrees swept when dragging across the full viewport
// (before the motion factor is applied)
func WithElevationAzimuth(deg float64) Option {
	return func(c *Controller) {
		c.elevationAzimuth = deg
	}
}

// WithDolly sets the base and per-tick exponent of the dolly factor
func WithDolly(base, step float64) Option {
	return func(c *Controller) {
		c.dollyBase = base
		c.dollyStep = step
	}
}

// WithDefaultPivot sets the pivot used when nothing is under the cursor
func WithDefaultPivot(p geometry.Vector3) Option {
	return func(c *Controller) {
		c.defaultPivot = p
		c.hasDefaultPivot = true
	}
}

// WithProber sets the scene query used for pivot discovery and clipping
func WithProber(p Prober) Option {
	return func(c *Controller) {
		c.prober = p
	}
}

// WithPivotMarker sets the pivot display
func WithPivotMarker(m PivotMarker) Option {
	return func(c *Controller) {
		c.marker = m
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// NewController creates a controller for cam. cam may be nil and bound later.
func NewController(cam *Camera, options ...Option) *Controller {
	c := &Controller{
		camera:           cam,
		motionFactor:     DefaultMotionFactor,
		elevationAzimuth: DefaultElevationAzimuth,
		dollyBase:        DefaultDollyBase,
		dollyStep:        DefaultDollyStep,
		logger:           slog.Default(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Camera returns the bound camera (may be nil)
func (c *Controller) Camera() *Camera {
	return c.camera
}

// BindCamera replaces the controlled camera and aborts any active gesture
func (c *Controller) BindCamera(cam *Camera) {
	c.Abandon()
	c.camera = cam
}

// SetViewport updates the render target size
func (c *Controller) SetViewport(vp Viewport) {
	c.viewport = vp
}

// Viewport returns the render target size
func (c *Controller) Viewport() Viewport {
	return c.viewport
}

// SetProber replaces the scene query
func (c *Controller) SetProber(p Prober) {
	c.prober = p
}

// SetPivotMarker replaces the pivot display
func (c *Controller) SetPivotMarker(m PivotMarker) {
	c.marker = m
}

// SetDefaultPivot sets the fallback pivot
func (c *Controller) SetDefaultPivot(p geometry.Vector3) {
	c.defaultPivot = p
	c.hasDefaultPivot = true
}

// ClearDefaultPivot removes the fallback pivot
func (c *Controller) ClearDefaultPivot() {
	c.hasDefaultPivot = false
}

// State returns the current gesture state
func (c *Controller) State() State {
	return c.state
}

// Pivot returns the pivot of the active rotation
func (c *Controller) Pivot() (geometry.Vector3, bool) {
	return c.pivot, c.hasPivot
}

// BeginRotate starts a rotation and resolves its pivot: the scene point under
// the cursor, else the default pivot, else the center of the visible bounds,
// else the focal point.
func (c *Controller) BeginRotate(pos geometry.Vector2) {
	if c.camera == nil || c.state != Idle {
		return
	}

	source := "focal point"
	c.pivot = c.camera.FocalPoint
	if hit, ok := c.pick(pos); ok {
		c.pivot, source = hit, "pick"
	} else if c.hasDefaultPivot {
		c.pivot, source = c.defaultPivot, "default"
	} else if b, ok := c.visibleBounds(); ok {
		c.pivot, source = b.Center(), "bounds center"
	}
	c.hasPivot = true
	c.state = Rotating
	c.last = pos

	c.logger.Debug("rotation started", "pivot", c.pivot, "source", source)
	if c.marker != nil {
		c.marker.ShowPivot(c.pivot)
	}
}

// UpdateRotate rotates the camera rigidly around the pivot by the pointer motion
// since the previous update
func (c *Controller) UpdateRotate(pos geometry.Vector2) {
	if c.camera == nil || c.state != Rotating || !c.viewport.Valid() {
		return
	}
	dx := pos.X - c.last.X
	dy := c.last.Y - pos.Y // screen y grows downwards
	c.last = pos
	if dx == 0 && dy == 0 {
		return
	}

	azimuth := dx * c.motionFactor * (c.elevationAzimuth / c.viewport.Width)
	elevation := dy * c.motionFactor * (c.elevationAzimuth / c.viewport.Height)
	c.rotate(azimuth, elevation)
	c.resetClipping()
}

func (c *Controller) rotate(azimuth, elevation float64) {
	cam := c.camera
	savedUp := cam.ViewUp
	side := cam.SideAxis()

	// the elevated up vector only serves as the azimuth axis
	up := savedUp.RotateAround(side, elevation)

	p := c.pivot
	m := mgl64.Translate3D(p.X, p.Y, p.Z).
		Mul4(mgl64.HomogRotate3D(mgl64.DegToRad(azimuth), up.Normalize().Mgl())).
		Mul4(mgl64.HomogRotate3D(mgl64.DegToRad(elevation), side.Normalize().Mgl())).
		Mul4(mgl64.Translate3D(-p.X, -p.Y, -p.Z))
	cam.ApplyTransform(m)

	cam.ViewUp = orthogonalize(savedUp, cam.Direction(), up)
}

// EndRotate finishes the rotation and discards the pivot
func (c *Controller) EndRotate() {
	if c.state != Rotating {
		return
	}
	c.state = Idle
	c.hasPivot = false
	if c.marker != nil {
		c.marker.HidePivot()
	}
}

// BeginPan starts a pan gesture
func (c *Controller) BeginPan(pos geometry.Vector2) {
	if c.camera == nil || c.state != Idle {
		return
	}
	c.state = Panning
	c.last = pos
}

// UpdatePan pans by the pointer motion since the previous update
func (c *Controller) UpdatePan(pos geometry.Vector2) {
	if c.state != Panning {
		return
	}
	delta := pos.Sub(c.last)
	c.last = pos
	c.Pan(delta)
}

// EndPan finishes the pan gesture
func (c *Controller) EndPan() {
	if c.state == Panning {
		c.state = Idle
	}
}

// Pan translates position and focal point in the view plane so that the
// focal-plane point under the cursor follows a pointer move of delta pixels
func (c *Controller) Pan(delta geometry.Vector2) {
	if c.camera == nil || !c.viewport.Valid() || (delta.X == 0 && delta.Y == 0) {
		return
	}
	scale := c.camera.ViewHeight() / c.viewport.Height
	right, up, _ := c.camera.Axes()
	c.camera.Translate(right.Mul(-delta.X * scale).Add(up.Mul(delta.Y * scale)))
}

// Dolly zooms by wheel ticks keeping the scene point under the cursor in place.
// Positive ticks zoom in.
func (c *Controller) Dolly(cursor geometry.Vector2, ticks float64) {
	if c.camera == nil || ticks == 0 || c.viewport.Height == 0 {
		return
	}
	sign := 1.0
	if ticks < 0 {
		sign = -1
	}
	factor := math.Pow(c.dollyBase, c.motionFactor*sign*c.dollyStep)
	if !(factor > 0) || math.IsInf(factor, 0) {
		c.logger.Debug("dolly rejected", "factor", factor)
		return
	}

	cam := c.camera
	scale := cam.ViewHeight() / c.viewport.Height
	if !(scale > 0) || math.IsInf(scale, 0) {
		return
	}
	offset := cursor.Sub(c.viewport.Center()).Mul(scale * (1 - 1/factor))
	right, up, _ := cam.Axes()
	cam.Translate(right.Mul(offset.X).Add(up.Mul(-offset.Y)))

	if cam.Projection == Parallel {
		cam.ParallelScale /= factor
	} else {
		cam.Dolly(factor)
		c.resetClipping()
	}
}

// Abandon ends any active gesture without further camera changes
func (c *Controller) Abandon() {
	switch c.state {
	case Rotating:
		c.EndRotate()
	case Panning:
		c.EndPan()
	}
}

func (c *Controller) pick(pos geometry.Vector2) (geometry.Vector3, bool) {
	if c.prober == nil {
		return geometry.Vector3{}, false
	}
	return c.prober.PickUnderCursor(pos)
}

func (c *Controller) visibleBounds() (geometry.AABB, bool) {
	if c.prober == nil {
		return geometry.AABB{}, false
	}
	b, ok := c.prober.VisibleBounds()
	if !ok || b.IsEmpty() {
		return geometry.AABB{}, false
	}
	return b, true
}

func (c *Controller) resetClipping() {
	if b, ok := c.visibleBounds(); ok {
		c.camera.ResetClippingRange(b)
	}
}
