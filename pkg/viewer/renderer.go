package viewer

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/femscene/pkg/camera"
	"github.com/philipparndt/femscene/pkg/geometry"
	"github.com/philipparndt/femscene/pkg/interactor"
	"github.com/philipparndt/femscene/pkg/model"
	"github.com/philipparndt/femscene/pkg/scene"
	"github.com/philipparndt/femscene/pkg/selection"
)

var (
	selectedColor = color.RGBA{255, 0, 0, 255}
	groupColor    = color.RGBA{255, 170, 0, 255}
	nodeColor     = color.RGBA{200, 200, 200, 255}
	pivotColor    = color.RGBA{0, 255, 0, 255}
	bandColor     = color.RGBA{80, 160, 255, 255}
)

const nodeSize = float32(6)

// ScenePanel draws a structure as a wireframe and forwards mouse, wheel and
// focus events to an interactor.Router. It also serves as the selection
// rubber band and the rotation pivot marker.
type ScenePanel struct {
	widget.BaseWidget

	structure *model.Structure
	camera    *camera.Camera
	selector  *selection.Selector
	router    *interactor.Router

	lines  []*canvas.Line
	nodes  []*canvas.Circle
	band   *canvas.Rectangle
	pivot  *canvas.Circle
	width  float64
	height float64

	bandVisible  bool
	pivotVisible bool
	pivotPoint   geometry.Vector3
	pressed      interactor.Button
}

// NewScenePanel creates an empty panel; call Bind before showing it
func NewScenePanel() *ScenePanel {
	p := &ScenePanel{
		band:  canvas.NewRectangle(color.Transparent),
		pivot: canvas.NewCircle(pivotColor),
	}
	p.band.StrokeColor = bandColor
	p.band.StrokeWidth = 1
	p.pivot.StrokeColor = color.White
	p.pivot.StrokeWidth = 2
	p.ExtendBaseWidget(p)
	return p
}

// Bind connects the panel to the structure it draws and the components that
// handle its input
func (p *ScenePanel) Bind(s *model.Structure, cam *camera.Camera, sel *selection.Selector, router *interactor.Router) {
	p.structure = s
	p.camera = cam
	p.selector = sel
	p.router = router
	if router != nil && p.width > 0 && p.height > 0 {
		router.Resize(camera.Viewport{Width: p.width, Height: p.height})
	}
	p.Render()
}

// SetStructure replaces the drawn structure
func (p *ScenePanel) SetStructure(s *model.Structure) {
	p.structure = s
	p.Render()
}

// Render projects the structure with the current camera
func (p *ScenePanel) Render() {
	p.lines = p.lines[:0]
	p.nodes = p.nodes[:0]
	if p.structure == nil || p.camera == nil {
		p.Refresh()
		return
	}

	vp := camera.Viewport{Width: p.width, Height: p.height}
	state := selection.NewState()
	if p.selector != nil {
		state = p.selector.State()
	}

	// depth range for shading
	near, far := math.MaxFloat64, -math.MaxFloat64
	for _, n := range p.structure.Nodes {
		d := p.camera.Position.Distance(n.Position)
		near, far = math.Min(near, d), math.Max(far, d)
	}

	for _, e := range p.structure.Elements {
		from, to, ok := p.structure.ElementEnds(e.ID)
		if !ok {
			continue
		}
		x1, okA := p.project(from, vp)
		x2, okB := p.project(to, vp)
		if !okA || !okB {
			continue
		}

		line := canvas.NewLine(p.shade(from.Lerp(to, 0.5), near, far))
		line.StrokeWidth = 1
		switch {
		case state.Segments.Has(scene.SegmentID(e.ID)):
			line.StrokeColor = selectedColor
			line.StrokeWidth = 3
		case p.inSelectedGroup(e.ID, state):
			line.StrokeColor = groupColor
			line.StrokeWidth = 2
		}
		line.Position1 = x1
		line.Position2 = x2
		p.lines = append(p.lines, line)
	}

	for _, n := range p.structure.Nodes {
		pos, ok := p.project(n.Position, vp)
		if !ok {
			continue
		}
		size := nodeSize
		marker := canvas.NewCircle(nodeColor)
		if state.Points.Has(scene.PointID(n.ID)) {
			marker.FillColor = selectedColor
			marker.StrokeColor = color.White
			marker.StrokeWidth = 2
			size = 2 * nodeSize
		}
		marker.Resize(fyne.NewSize(size, size))
		marker.Move(fyne.NewPos(pos.X-size/2, pos.Y-size/2))
		p.nodes = append(p.nodes, marker)
	}

	p.placePivot()
	p.Refresh()
}

func (p *ScenePanel) project(v geometry.Vector3, vp camera.Viewport) (fyne.Position, bool) {
	s, _, ok := p.camera.WorldToScreen(v, vp)
	if !ok {
		return fyne.Position{}, false
	}
	return fyne.NewPos(float32(s.X), float32(s.Y)), true
}

// shade darkens lines with distance from the camera
func (p *ScenePanel) shade(v geometry.Vector3, near, far float64) color.Color {
	t := 0.0
	if far > near {
		t = (p.camera.Position.Distance(v) - near) / (far - near)
	}
	brightness := uint8(math.Max(80, math.Min(255, 230-t*130)))
	return color.RGBA{brightness, brightness, brightness, 255}
}

func (p *ScenePanel) inSelectedGroup(element int, state selection.State) bool {
	for _, g := range p.structure.Groups {
		if !state.Groups.Has(scene.GroupID(g.ID)) {
			continue
		}
		for _, e := range g.Elements {
			if e == element {
				return true
			}
		}
	}
	return false
}

func (p *ScenePanel) placePivot() {
	if !p.pivotVisible || p.camera == nil {
		return
	}
	pos, ok := p.project(p.pivotPoint, camera.Viewport{Width: p.width, Height: p.height})
	if !ok {
		return
	}
	size := float32(10)
	p.pivot.Resize(fyne.NewSize(size, size))
	p.pivot.Move(fyne.NewPos(pos.X-size/2, pos.Y-size/2))
}

// ShowRect shows the rubber band rectangle
func (p *ScenePanel) ShowRect(r geometry.Rect) {
	p.band.Move(fyne.NewPos(float32(r.Min.X), float32(r.Min.Y)))
	p.band.Resize(fyne.NewSize(float32(r.Width()), float32(r.Height())))
	p.bandVisible = true
	p.Refresh()
}

// Hide removes the rubber band rectangle
func (p *ScenePanel) Hide() {
	p.bandVisible = false
	p.Refresh()
}

// ShowPivot marks the rotation pivot
func (p *ScenePanel) ShowPivot(v geometry.Vector3) {
	p.pivotPoint = v
	p.pivotVisible = true
	p.placePivot()
	p.Refresh()
}

// HidePivot removes the pivot marker
func (p *ScenePanel) HidePivot() {
	p.pivotVisible = false
	p.Refresh()
}

// BandVisible reports whether the rubber band is shown
func (p *ScenePanel) BandVisible() bool {
	return p.bandVisible
}

// PivotVisible reports whether the pivot marker is shown
func (p *ScenePanel) PivotVisible() bool {
	return p.pivotVisible
}

func screenPos(pos fyne.Position) geometry.Vector2 {
	return geometry.NewVector2(float64(pos.X), float64(pos.Y))
}

func buttonOf(b desktop.MouseButton) interactor.Button {
	switch b {
	case desktop.MouseButtonPrimary:
		return interactor.Primary
	case desktop.MouseButtonSecondary:
		return interactor.Secondary
	case desktop.MouseButtonTertiary:
		return interactor.Tertiary
	}
	return interactor.NoButton
}

func modifierOf(m fyne.KeyModifier) selection.Modifier {
	return selection.ModifierFromKeys(
		m&fyne.KeyModifierShift != 0,
		m&(fyne.KeyModifierControl|fyne.KeyModifierSuper) != 0,
		m&fyne.KeyModifierAlt != 0,
	)
}

// MouseDown starts the gesture bound to the pressed button
func (p *ScenePanel) MouseDown(e *desktop.MouseEvent) {
	if p.router == nil {
		return
	}
	if c := fyne.CurrentApp().Driver().CanvasForObject(p); c != nil {
		c.Focus(p)
	}
	p.pressed = buttonOf(e.Button)
	p.router.PointerDown(screenPos(e.Position), p.pressed)
	p.Render()
}

// MouseUp completes the gesture with the modifiers held at release
func (p *ScenePanel) MouseUp(e *desktop.MouseEvent) {
	if p.router == nil {
		return
	}
	p.router.PointerUp(screenPos(e.Position), buttonOf(e.Button), modifierOf(e.Modifier))
	p.pressed = interactor.NoButton
	p.Render()
}

// MouseIn is part of desktop.Hoverable
func (p *ScenePanel) MouseIn(*desktop.MouseEvent) {}

// MouseMoved updates the active gesture
func (p *ScenePanel) MouseMoved(e *desktop.MouseEvent) {
	p.move(e.Position)
}

// MouseOut is part of desktop.Hoverable
func (p *ScenePanel) MouseOut() {}

// Dragged updates the active gesture while the primary button is held
func (p *ScenePanel) Dragged(e *fyne.DragEvent) {
	p.move(e.Position)
}

// DragEnd is handled by MouseUp
func (p *ScenePanel) DragEnd() {}

func (p *ScenePanel) move(pos fyne.Position) {
	if p.router == nil || p.router.Gesture().Action == interactor.ActionNone {
		return
	}
	p.router.PointerMove(screenPos(pos))
	if p.router.Gesture().Action != interactor.ActionBoxSelect {
		p.Render()
	}
}

// Scrolled dollies the camera around the cursor
func (p *ScenePanel) Scrolled(e *fyne.ScrollEvent) {
	if p.router == nil || e.Scrolled.DY == 0 {
		return
	}
	p.router.Wheel(screenPos(e.Position), float64(e.Scrolled.DY))
	p.Render()
}

// FocusGained is part of fyne.Focusable
func (p *ScenePanel) FocusGained() {}

// FocusLost abandons the active gesture
func (p *ScenePanel) FocusLost() {
	if p.router == nil {
		return
	}
	p.router.FocusLost()
	p.Render()
}

// TypedRune is part of fyne.Focusable
func (p *ScenePanel) TypedRune(rune) {}

// TypedKey abandons the active gesture on escape
func (p *ScenePanel) TypedKey(e *fyne.KeyEvent) {
	if e.Name == fyne.KeyEscape {
		p.FocusLost()
	}
}

func (p *ScenePanel) resize(size fyne.Size) {
	p.width = float64(size.Width)
	p.height = float64(size.Height)
	if p.router != nil {
		p.router.Resize(camera.Viewport{Width: p.width, Height: p.height})
	}
	p.Render()
}

// CreateRenderer creates the renderer for the widget
func (p *ScenePanel) CreateRenderer() fyne.WidgetRenderer {
	return &sceneWidgetRenderer{panel: p}
}

// sceneWidgetRenderer implements fyne.WidgetRenderer
type sceneWidgetRenderer struct {
	panel   *ScenePanel
	objects []fyne.CanvasObject
}

func (r *sceneWidgetRenderer) Layout(size fyne.Size) {
	r.panel.resize(size)
}

func (r *sceneWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *sceneWidgetRenderer) Refresh() {
	r.objects = make([]fyne.CanvasObject, 0, len(r.panel.lines)+len(r.panel.nodes)+2)
	for _, line := range r.panel.lines {
		r.objects = append(r.objects, line)
	}
	for _, node := range r.panel.nodes {
		r.objects = append(r.objects, node)
	}
	if r.panel.bandVisible {
		r.objects = append(r.objects, r.panel.band)
	}
	if r.panel.pivotVisible {
		r.objects = append(r.objects, r.panel.pivot)
	}
	canvas.Refresh(r.panel)
}

func (r *sceneWidgetRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *sceneWidgetRenderer) Destroy() {}
