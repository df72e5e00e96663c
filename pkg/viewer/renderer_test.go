package viewer

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/philipparndt/femscene/pkg/camera"
	"github.com/philipparndt/femscene/pkg/geometry"
	"github.com/philipparndt/femscene/pkg/interactor"
	"github.com/philipparndt/femscene/pkg/model"
	"github.com/philipparndt/femscene/pkg/scene"
	"github.com/philipparndt/femscene/pkg/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPanel(t *testing.T) (*ScenePanel, *selection.Selector, *camera.Camera) {
	test.NewTempApp(t)

	s := model.NewStructure("beam")
	s.AddNode(1, geometry.NewVector3(-1, 0, 0))
	s.AddNode(2, geometry.NewVector3(1, 0, 0))
	s.AddElement(10, 1, 2)

	cam := camera.New()
	cam.Position = geometry.NewVector3(0, 0, 10)
	cam.Projection = camera.Parallel
	cam.ParallelScale = 2

	p := NewScenePanel()
	sel := selection.NewSelector(scene.Build(s, 0), cam, selection.WithOverlay(p))
	ctrl := camera.NewController(cam, camera.WithPivotMarker(p))
	router, err := interactor.NewRouter(sel, ctrl)
	require.NoError(t, err)

	p.Bind(s, cam, sel, router)

	w := test.NewWindow(p)
	t.Cleanup(w.Close)
	w.SetPadded(false)
	w.Resize(fyne.NewSize(200, 200))
	p.resize(fyne.NewSize(200, 200))
	return p, sel, cam
}

func mouse(x, y float32, b desktop.MouseButton, m fyne.KeyModifier) *desktop.MouseEvent {
	e := &desktop.MouseEvent{Button: b, Modifier: m}
	e.Position = fyne.NewPos(x, y)
	return e
}

func TestRenderDrawsStructure(t *testing.T) {
	p, _, _ := newPanel(t)

	require.Len(t, p.lines, 1)
	require.Len(t, p.nodes, 2)
	assert.InDelta(t, 50, p.lines[0].Position1.X, 1e-3)
	assert.InDelta(t, 150, p.lines[0].Position2.X, 1e-3)
}

func TestClickSelectsNode(t *testing.T) {
	p, sel, _ := newPanel(t)

	p.MouseDown(mouse(50, 100, desktop.MouseButtonPrimary, 0))
	p.MouseUp(mouse(50, 100, desktop.MouseButtonPrimary, 0))
	assert.Equal(t, []scene.PointID{1}, sel.Points())
	assert.Equal(t, selectedColor, p.nodes[0].FillColor)

	p.MouseDown(mouse(150, 100, desktop.MouseButtonPrimary, 0))
	p.MouseUp(mouse(150, 100, desktop.MouseButtonPrimary, fyne.KeyModifierShift))
	assert.Equal(t, []scene.PointID{1, 2}, sel.Points())
}

func TestBoxDragShowsBand(t *testing.T) {
	p, sel, _ := newPanel(t)

	p.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary, 0))
	p.MouseMoved(mouse(190, 190, 0, 0))
	assert.True(t, p.BandVisible())
	assert.Equal(t, float32(180), p.band.Size().Width)

	p.MouseUp(mouse(190, 190, desktop.MouseButtonPrimary, 0))
	assert.False(t, p.BandVisible())
	assert.Equal(t, []scene.PointID{1, 2}, sel.Points())
}

func TestRotateShowsPivot(t *testing.T) {
	p, _, cam := newPanel(t)
	before := cam.Position

	p.MouseDown(mouse(100, 100, desktop.MouseButtonSecondary, 0))
	assert.True(t, p.PivotVisible())
	p.MouseMoved(mouse(120, 100, 0, 0))
	assert.NotEqual(t, before, cam.Position)

	p.MouseUp(mouse(120, 100, desktop.MouseButtonSecondary, 0))
	assert.False(t, p.PivotVisible())
}

func TestScrollAndFocusLoss(t *testing.T) {
	p, sel, cam := newPanel(t)

	p.Scrolled(&fyne.ScrollEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(100, 100)},
		Scrolled:   fyne.NewDelta(0, 1),
	})
	assert.Less(t, cam.ParallelScale, 2.0)

	p.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary, 0))
	p.MouseMoved(mouse(190, 190, 0, 0))
	p.TypedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
	assert.False(t, p.BandVisible())
	assert.Empty(t, sel.Points())
}

func TestModifierMapping(t *testing.T) {
	assert.Equal(t, selection.None, modifierOf(0))
	assert.Equal(t, selection.Union, modifierOf(fyne.KeyModifierShift))
	assert.Equal(t, selection.Toggle, modifierOf(fyne.KeyModifierSuper))
	assert.Equal(t, selection.Subtract, modifierOf(fyne.KeyModifierAlt|fyne.KeyModifierControl))
	assert.Equal(t, interactor.Tertiary, buttonOf(desktop.MouseButtonTertiary))
}
