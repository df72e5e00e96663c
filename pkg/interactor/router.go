// Package interactor forwards raw viewport input to the selector and the
// camera controller according to the mouse button bindings.
package interactor

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/philipparndt/femscene/pkg/camera"
	"github.com/philipparndt/femscene/pkg/geometry"
	"github.com/philipparndt/femscene/pkg/selection"
)

// ErrConflictingBindings is returned when two actions share a button
var ErrConflictingBindings = errors.New("conflicting button bindings")

// Button is a mouse button
type Button int

const (
	NoButton Button = iota
	Primary
	Secondary
	Tertiary
)

func (b Button) String() string {
	switch b {
	case NoButton:
		return "none"
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	case Tertiary:
		return "tertiary"
	}
	return fmt.Sprintf("Button(%d)", int(b))
}

// ParseButton parses a button name; "left", "right" and "middle" are accepted as aliases
func ParseButton(s string) (Button, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "primary", "left":
		return Primary, nil
	case "secondary", "right":
		return Secondary, nil
	case "tertiary", "middle":
		return Tertiary, nil
	case "none", "":
		return NoButton, nil
	}
	return NoButton, fmt.Errorf("unknown button %q", s)
}

// Action is what an active drag does
type Action int

const (
	ActionNone Action = iota
	ActionRotate
	ActionPan
	ActionBoxSelect
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionRotate:
		return "rotate"
	case ActionPan:
		return "pan"
	case ActionBoxSelect:
		return "box-select"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Bindings assigns a button to each action. NoButton disables an action.
type Bindings struct {
	Select Button
	Rotate Button
	Pan    Button
}

// DefaultBindings selects with the primary, rotates with the secondary and
// pans with the tertiary button
func DefaultBindings() Bindings {
	return Bindings{Select: Primary, Rotate: Secondary, Pan: Tertiary}
}

// Validate ensures no two actions share a button
func (b Bindings) Validate() error {
	seen := map[Button]string{}
	for _, entry := range []struct {
		name   string
		button Button
	}{{"select", b.Select}, {"rotate", b.Rotate}, {"pan", b.Pan}} {
		if entry.button == NoButton {
			continue
		}
		if other, ok := seen[entry.button]; ok {
			return fmt.Errorf("%w: %s and %s both use %s", ErrConflictingBindings, other, entry.name, entry.button)
		}
		seen[entry.button] = entry.name
	}
	return nil
}

func (b Bindings) action(button Button) Action {
	switch {
	case button == NoButton:
		return ActionNone
	case button == b.Select:
		return ActionBoxSelect
	case button == b.Rotate:
		return ActionRotate
	case button == b.Pan:
		return ActionPan
	}
	return ActionNone
}

// Gesture is the transient state of the active drag
type Gesture struct {
	Anchor  geometry.Vector2
	Current geometry.Vector2
	Action  Action
	Button  Button
}

// ViewportListener is notified of viewport size changes
type ViewportListener interface {
	SetViewport(vp camera.Viewport)
}

// Router routes pointer, wheel, resize and focus events. At most one drag is
// active at a time; presses of other buttons during a drag are ignored.
type Router struct {
	selector  *selection.Selector
	camera    *camera.Controller
	bindings  Bindings
	listeners []ViewportListener
	logger    *slog.Logger

	gesture Gesture
}

// Option configures a Router
type Option func(*Router)

// WithBindings sets the button bindings
func WithBindings(b Bindings) Option {
	return func(r *Router) {
		r.bindings = b
	}
}

// WithViewportListener adds a component to be told about viewport resizes
func WithViewportListener(l ViewportListener) Option {
	return func(r *Router) {
		r.listeners = append(r.listeners, l)
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) {
		r.logger = l
	}
}

// NewRouter creates a router. Either component may be nil, which disables
// the actions bound to it.
func NewRouter(sel *selection.Selector, ctrl *camera.Controller, options ...Option) (*Router, error) {
	r := &Router{
		selector: sel,
		camera:   ctrl,
		bindings: DefaultBindings(),
		logger:   slog.Default(),
	}
	for _, option := range options {
		option(r)
	}
	if err := r.bindings.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Gesture returns the active drag; its Action is ActionNone when idle
func (r *Router) Gesture() Gesture {
	return r.gesture
}

// Bindings returns the button bindings
func (r *Router) Bindings() Bindings {
	return r.bindings
}

// PointerDown starts the drag bound to button
func (r *Router) PointerDown(pos geometry.Vector2, button Button) {
	if r.gesture.Action != ActionNone {
		return
	}
	action := r.bindings.action(button)
	switch action {
	case ActionBoxSelect:
		if r.selector == nil {
			return
		}
		r.selector.BeginGesture(pos)
	case ActionRotate:
		if r.camera == nil {
			return
		}
		r.camera.BeginRotate(pos)
	case ActionPan:
		if r.camera == nil {
			return
		}
		r.camera.BeginPan(pos)
	default:
		return
	}
	r.gesture = Gesture{Anchor: pos, Current: pos, Action: action, Button: button}
	r.logger.Debug("gesture started", "action", action, "button", button)
}

// PointerMove updates the active drag
func (r *Router) PointerMove(pos geometry.Vector2) {
	switch r.gesture.Action {
	case ActionBoxSelect:
		r.selector.UpdateGesture(pos)
	case ActionRotate:
		r.camera.UpdateRotate(pos)
	case ActionPan:
		r.camera.UpdatePan(pos)
	default:
		return
	}
	r.gesture.Current = pos
}

// PointerUp completes the drag started with button. The modifier is only
// used by selection gestures.
func (r *Router) PointerUp(pos geometry.Vector2, button Button, m selection.Modifier) {
	if r.gesture.Action == ActionNone || button != r.gesture.Button {
		return
	}
	switch r.gesture.Action {
	case ActionBoxSelect:
		r.selector.UpdateGesture(pos)
		r.selector.EndGesture(pos, m)
	case ActionRotate:
		r.camera.UpdateRotate(pos)
		r.camera.EndRotate()
	case ActionPan:
		r.camera.UpdatePan(pos)
		r.camera.EndPan()
	}
	r.gesture = Gesture{}
}

// Click is a complete press and release at pos
func (r *Router) Click(pos geometry.Vector2, button Button, m selection.Modifier) {
	r.PointerDown(pos, button)
	r.PointerUp(pos, button, m)
}

// Wheel dollies the camera around pos. Wheel input during a drag is ignored.
func (r *Router) Wheel(pos geometry.Vector2, ticks float64) {
	if r.camera == nil || r.gesture.Action != ActionNone {
		return
	}
	r.camera.Dolly(pos, ticks)
}

// Resize propagates a new viewport size
func (r *Router) Resize(vp camera.Viewport) {
	if r.selector != nil {
		r.selector.SetViewport(vp)
	}
	if r.camera != nil {
		r.camera.SetViewport(vp)
	}
	for _, l := range r.listeners {
		l.SetViewport(vp)
	}
}

// FocusLost abandons the active drag without completing it
func (r *Router) FocusLost() {
	switch r.gesture.Action {
	case ActionBoxSelect:
		r.selector.AbandonGesture()
	case ActionRotate, ActionPan:
		r.camera.Abandon()
	default:
		return
	}
	r.logger.Debug("gesture abandoned", "action", r.gesture.Action)
	r.gesture = Gesture{}
}
