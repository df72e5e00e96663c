package app

import (
	"testing"

	"github.com/philipparndt/femscene/internal/config"
	"github.com/philipparndt/femscene/pkg/camera"
	"github.com/philipparndt/femscene/pkg/geometry"
	"github.com/philipparndt/femscene/pkg/interactor"
	"github.com/philipparndt/femscene/pkg/model"
	"github.com/philipparndt/femscene/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func beam() *model.Structure {
	s := model.NewStructure("beam")
	s.AddNode(1, geometry.NewVector3(-1, 0, 0))
	s.AddNode(2, geometry.NewVector3(1, 0, 0))
	s.AddElement(10, 1, 2)
	s.AddGroup(1, "chord", 10)
	return s
}

func newSession(t *testing.T) *Session {
	cfg := config.Default()
	cfg.Camera.Projection = camera.Parallel.String()

	s, err := NewSession(beam(), cfg, nil)
	require.NoError(t, err)
	s.Router.Resize(camera.Viewport{Width: 200, Height: 200})
	return s
}

func TestNewSessionFramesStructure(t *testing.T) {
	s := newSession(t)

	assert.Equal(t, geometry.NewVector3(0, 0, 0), s.Camera.FocalPoint)
	assert.InDelta(t, 1, s.Camera.ParallelScale, 1e-9)
	assert.Equal(t, interactor.DefaultBindings(), s.Router.Bindings())
}

func TestSessionSelectAndSummarize(t *testing.T) {
	s := newSession(t)
	s.Camera.ParallelScale = 2

	pos, _, ok := s.Camera.WorldToScreen(geometry.NewVector3(-1, 0, 0), camera.Viewport{Width: 200, Height: 200})
	require.True(t, ok)
	s.Router.Click(pos, interactor.Primary, 0)
	assert.Equal(t, []scene.PointID{1}, s.Selector.Points())

	summary := s.Summary()
	require.Len(t, summary.Nodes, 1)
	assert.Equal(t, 1, summary.Nodes[0].ID)
}

func TestSetStructureClearsSelection(t *testing.T) {
	s := newSession(t)

	s.Router.Click(geometry.NewVector2(100, 100), interactor.Primary, 0)
	require.False(t, s.Selector.State().IsEmpty())

	changed := 0
	s.Selector.OnSelectionChanged(func() { changed++ })

	other := model.NewStructure("point")
	other.AddNode(7, geometry.NewVector3(5, 5, 5))
	s.SetStructure(other)

	assert.Equal(t, 1, changed)
	assert.True(t, s.Selector.State().IsEmpty())
	assert.Same(t, other, s.Structure)

	hit, ok := s.Picker.Pick(geometry.NewVector2(100, 100))
	assert.False(t, ok, "%+v", hit)
}

func TestSetProjection(t *testing.T) {
	s := newSession(t)

	s.SetProjection(camera.Perspective)
	assert.Equal(t, camera.Perspective, s.Camera.Projection)
	assert.Equal(t, geometry.NewVector3(0, 0, 0), s.Camera.FocalPoint)
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Projection = "fisheye"

	_, err := NewSession(beam(), cfg, nil)
	assert.ErrorContains(t, err, "invalid camera settings")
}
