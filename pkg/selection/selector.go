package selection

import (
	"log/slog"
	"math"

	"github.com/philipparndt/femscene/pkg/camera"
	"github.com/philipparndt/femscene/pkg/geometry"
	"github.com/philipparndt/femscene/pkg/idset"
	"github.com/philipparndt/femscene/pkg/scene"
)

// DefaultTolerance is the minimum box size in pixels; smaller gestures are clicks
const DefaultTolerance = 10.0

// Overlay draws the rubber band rectangle of an active box gesture
type Overlay interface {
	ShowRect(r geometry.Rect)
	Hide()
}

// Handle removes a registered observer
type Handle struct {
	id  uint32
	sel *Selector
}

// Remove unregisters the observer; removing twice is harmless
func (h Handle) Remove() {
	if h.sel == nil {
		return
	}
	for i := range h.sel.observers {
		if h.sel.observers[i].id == h.id {
			h.sel.observers = append(h.sel.observers[:i], h.sel.observers[i+1:]...)
			return
		}
	}
}

type observer struct {
	id uint32
	fn func()
}

type gesture struct {
	anchor  geometry.Vector2
	current geometry.Vector2
}

// Selector maps click and box gestures to a selection. It reads the scene index
// and the camera but never modifies them. It is not safe for concurrent use.
type Selector struct {
	index     *scene.Index
	camera    *camera.Camera
	viewport  camera.Viewport
	policy    PriorityPolicy
	toggle    ToggleMode
	tolerance float64
	overlay   Overlay
	logger    *slog.Logger

	state   State
	gesture *gesture

	observers []observer
	nextID    uint32
}

// Option configures a Selector
type Option func(*Selector)

// WithPolicy sets the priority policy (default PointPriority)
func WithPolicy(p PriorityPolicy) Option {
	return func(s *Selector) {
		if p != nil {
			s.policy = p
		}
	}
}

// WithToggleMode sets the Toggle modifier semantics (default ToggleUnion)
func WithToggleMode(m ToggleMode) Option {
	return func(s *Selector) {
		s.toggle = m
	}
}

// WithTolerance sets the click tolerance in pixels
func WithTolerance(px float64) Option {
	return func(s *Selector) {
		if px > 0 {
			s.tolerance = px
		}
	}
}

// WithOverlay sets the rubber band display
func WithOverlay(o Overlay) Option {
	return func(s *Selector) {
		s.overlay = o
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Selector) {
		s.logger = l
	}
}

// NewSelector creates a selector over idx viewed through cam. Both may be nil;
// without them every pick is empty.
func NewSelector(idx *scene.Index, cam *camera.Camera, options ...Option) *Selector {
	s := &Selector{
		index:     idx,
		camera:    cam,
		policy:    PointPriority{},
		tolerance: DefaultTolerance,
		logger:    slog.Default(),
		state:     NewState(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// SetIndex replaces the scene index. The selection is kept; hosts reloading
// the model call Clear.
func (s *Selector) SetIndex(idx *scene.Index) {
	s.index = idx
}

// SetCamera replaces the camera
func (s *Selector) SetCamera(cam *camera.Camera) {
	s.camera = cam
}

// SetViewport updates the render target size
func (s *Selector) SetViewport(vp camera.Viewport) {
	s.viewport = vp
}

// SetPolicy replaces the priority policy
func (s *Selector) SetPolicy(p PriorityPolicy) {
	if p != nil {
		s.policy = p
	}
}

// SetOverlay replaces the rubber band display
func (s *Selector) SetOverlay(o Overlay) {
	s.overlay = o
}

// SetToggleMode replaces the Toggle modifier semantics
func (s *Selector) SetToggleMode(m ToggleMode) {
	s.toggle = m
}

// OnSelectionChanged registers fn to be called after every completed gesture
// and every Clear
func (s *Selector) OnSelectionChanged(fn func()) Handle {
	s.nextID++
	s.observers = append(s.observers, observer{id: s.nextID, fn: fn})
	return Handle{id: s.nextID, sel: s}
}

func (s *Selector) notify() {
	for _, o := range append([]observer(nil), s.observers...) {
		o.fn()
	}
}

// Active reports whether a box gesture is in progress
func (s *Selector) Active() bool {
	return s.gesture != nil
}

// BeginGesture anchors a new gesture at pos
func (s *Selector) BeginGesture(pos geometry.Vector2) {
	s.gesture = &gesture{anchor: pos, current: pos}
	s.showOverlay()
}

// UpdateGesture moves the free corner of the rubber band to pos
func (s *Selector) UpdateGesture(pos geometry.Vector2) {
	if s.gesture == nil {
		return
	}
	s.gesture.current = pos
	s.showOverlay()
}

func (s *Selector) showOverlay() {
	if s.overlay == nil {
		return
	}
	r := geometry.RectFromCorners(s.gesture.anchor, s.gesture.current)
	if s.viewport.Valid() {
		r = r.Intersect(s.viewport.Rect())
	}
	s.overlay.ShowRect(r)
}

func (s *Selector) hideOverlay() {
	if s.overlay != nil {
		s.overlay.Hide()
	}
}

// EndGesture completes the gesture at pos, combines the picked entities with
// the selection according to m and notifies the observers once.
// Without a preceding BeginGesture the gesture is a click at pos.
func (s *Selector) EndGesture(pos geometry.Vector2, m Modifier) {
	g := s.gesture
	if g == nil {
		g = &gesture{anchor: pos}
	}
	g.current = pos
	s.gesture = nil
	s.hideOverlay()

	r := geometry.RectFromCorners(g.anchor, g.current)
	single := r.Width() < s.tolerance || r.Height() < s.tolerance
	if single {
		r = r.Expand(s.tolerance / 2)
	}

	picked := s.Pick(r, single)
	s.state = s.state.Combine(picked.State, m, s.toggle)

	s.logger.Debug("selection gesture completed",
		"click", single,
		"modifier", m,
		"picked_points", picked.Points.Len(),
		"picked_segments", picked.Segments.Len(),
		"picked_groups", picked.Groups.Len(),
		"points", s.state.Points.Len(),
		"segments", s.state.Segments.Len(),
		"groups", s.state.Groups.Len(),
	)
	s.notify()
}

// AbandonGesture drops an active gesture without changing the selection
func (s *Selector) AbandonGesture() {
	if s.gesture == nil {
		return
	}
	s.gesture = nil
	s.hideOverlay()
}

// Pick returns the entities inside the frustum swept by r after tie-breaking
// and priority arbitration, without touching the selection
func (s *Selector) Pick(r geometry.Rect, singleClick bool) Candidates {
	c := Candidates{State: NewState(), SingleClick: singleClick}
	if s.index == nil || s.camera == nil {
		return c
	}
	frustum, ok := s.camera.SelectionFrustum(r, s.viewport)
	if !ok {
		return c
	}

	eye := s.camera.Position
	c.Points = pickIn(s.index.Points(), s.index.PointBounds, frustum, singleClick, eye)
	c.Segments = pickIn(s.index.Segments(), s.index.SegmentBounds, frustum, singleClick, eye)
	c.Groups = s.index.GroupsTouching(c.Segments)

	s.policy.Arbitrate(&c)
	return c
}

// pickIn collects the ids whose bounds overlap the frustum. For a single click
// only the id with the camera-nearest box corner is kept; ids are visited in
// ascending order and the first wins ties.
func pickIn[T ~int](
	ids []T,
	bounds func(T) (geometry.AABB, bool),
	frustum geometry.Frustum,
	singleClick bool,
	eye geometry.Vector3,
) idset.Set[T] {
	picked := idset.New[T]()
	var nearest T
	nearestDist := math.Inf(1)

	for _, id := range ids {
		b, ok := bounds(id)
		if !ok || !frustum.IntersectsAABB(b) {
			continue
		}
		if !singleClick {
			picked.Add(id)
			continue
		}
		if d := b.NearestCornerDistance(eye); d < nearestDist {
			nearest, nearestDist = id, d
		}
	}

	if singleClick && !math.IsInf(nearestDist, 1) {
		picked.Add(nearest)
	}
	return picked
}

// Clear empties the selection and notifies the observers
func (s *Selector) Clear() {
	s.state = NewState()
	s.notify()
}

// State returns a copy of the selection
func (s *Selector) State() State {
	return s.state.Clone()
}

// Points returns the selected points in ascending order
func (s *Selector) Points() []scene.PointID {
	return s.state.Points.Sorted()
}

// Segments returns the selected segments in ascending order
func (s *Selector) Segments() []scene.SegmentID {
	return s.state.Segments.Sorted()
}

// Groups returns the selected groups in ascending order
func (s *Selector) Groups() []scene.GroupID {
	return s.state.Groups.Sorted()
}
