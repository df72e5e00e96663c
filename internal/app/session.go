// Package app wires a structure, the camera and the interaction components
// into a viewer session and hosts it in a fyne window.
package app

import (
	"fmt"
	"log/slog"

	"github.com/philipparndt/femscene/internal/config"
	"github.com/philipparndt/femscene/pkg/analysis"
	"github.com/philipparndt/femscene/pkg/camera"
	"github.com/philipparndt/femscene/pkg/interactor"
	"github.com/philipparndt/femscene/pkg/model"
	"github.com/philipparndt/femscene/pkg/scene"
	"github.com/philipparndt/femscene/pkg/selection"
)

// Session owns the components that interact with one structure
type Session struct {
	Config     config.Config
	Structure  *model.Structure
	Camera     *camera.Camera
	Picker     *scene.Picker
	Selector   *selection.Selector
	Controller *camera.Controller
	Router     *interactor.Router

	logger *slog.Logger
}

// NewSession builds the scene index and the interaction components for s
func NewSession(s *model.Structure, cfg config.Config, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if s == nil {
		s = model.NewStructure("")
	}

	cam, err := cfg.NewCamera()
	if err != nil {
		return nil, fmt.Errorf("invalid camera settings: %w", err)
	}
	selectorOptions, err := cfg.SelectorOptions()
	if err != nil {
		return nil, fmt.Errorf("invalid selection settings: %w", err)
	}
	bindings, err := cfg.Bindings()
	if err != nil {
		return nil, fmt.Errorf("invalid button settings: %w", err)
	}

	picker := scene.NewPicker(s, cam)
	sel := selection.NewSelector(scene.Build(s, cfg.Selection.Padding), cam,
		append(selectorOptions, selection.WithLogger(logger))...)
	ctrl := camera.NewController(cam,
		append(cfg.ControllerOptions(), camera.WithProber(picker), camera.WithLogger(logger))...)
	router, err := interactor.NewRouter(sel, ctrl,
		interactor.WithBindings(bindings),
		interactor.WithViewportListener(picker),
		interactor.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	session := &Session{
		Config:     cfg,
		Structure:  s,
		Camera:     cam,
		Picker:     picker,
		Selector:   sel,
		Controller: ctrl,
		Router:     router,
		logger:     logger,
	}
	session.ResetView()
	return session, nil
}

// SetStructure replaces the structure, rebuilds the index and clears the
// selection. The camera is kept.
func (s *Session) SetStructure(st *model.Structure) {
	s.Router.FocusLost()
	s.Structure = st
	s.Picker.SetStructure(st)
	s.Selector.SetIndex(scene.Build(st, s.Config.Selection.Padding))
	s.Selector.Clear()
	s.Camera.ResetClippingRange(st.Bounds())
	s.logger.Info("structure loaded", "name", st.Name, "nodes", len(st.Nodes), "elements", len(st.Elements))
}

// ResetView frames the whole structure
func (s *Session) ResetView() {
	s.Router.FocusLost()
	s.Camera.ResetToBounds(s.Structure.Bounds())
}

// SetProjection switches between perspective and parallel projection and
// frames the structure again
func (s *Session) SetProjection(p camera.Projection) {
	s.Camera.Projection = p
	s.ResetView()
}

// Summary describes the current selection
func (s *Session) Summary() *analysis.SelectionSummary {
	return analysis.Summarize(s.Structure, s.Selector.State())
}
