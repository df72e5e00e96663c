package app

import (
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/femscene/internal/config"
	"github.com/philipparndt/femscene/pkg/analysis"
	"github.com/philipparndt/femscene/pkg/camera"
	"github.com/philipparndt/femscene/pkg/model"
	"github.com/philipparndt/femscene/pkg/viewer"
	"github.com/philipparndt/femscene/pkg/watcher"
)

const reloadDebounce = 300 * time.Millisecond

// Window hosts a session in a fyne window
type Window struct {
	window  fyne.Window
	session *Session
	panel   *viewer.ScenePanel
	watcher *watcher.FileWatcher
	logger  *slog.Logger

	modelInfo     *widget.Label
	selectionInfo *widget.Label
}

// Run opens a window for filename (may be empty) and blocks until it is closed
func Run(filename string, cfg config.Config, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	s := model.NewStructure("")
	if filename != "" {
		var err error
		if s, err = model.Load(filename); err != nil {
			return err
		}
	}

	session, err := NewSession(s, cfg, logger)
	if err != nil {
		return err
	}

	fw, err := watcher.NewFileWatcher(reloadDebounce, logger)
	if err != nil {
		return err
	}
	defer fw.Close()
	fw.Start()

	a := fyneapp.New()
	w := &Window{
		window:        a.NewWindow("femscene"),
		session:       session,
		panel:         viewer.NewScenePanel(),
		watcher:       fw,
		logger:        logger,
		modelInfo:     widget.NewLabel(""),
		selectionInfo: widget.NewLabel(""),
	}
	w.bind()
	if filename != "" {
		w.watch(filename)
	}

	w.window.Resize(fyne.NewSize(1200, 800))
	w.window.ShowAndRun()
	return nil
}

func (w *Window) bind() {
	s := w.session
	s.Selector.SetOverlay(w.panel)
	s.Controller.SetPivotMarker(w.panel)
	w.panel.Bind(s.Structure, s.Camera, s.Selector, s.Router)

	s.Selector.OnSelectionChanged(func() {
		w.updateSelectionInfo()
		w.panel.Render()
	})

	openButton := widget.NewButton("Open File", w.showFileDialog)
	clearButton := widget.NewButton("Clear Selection", s.Selector.Clear)
	resetButton := widget.NewButton("Reset View", func() {
		s.ResetView()
		w.panel.Render()
	})

	parallel := widget.NewCheck("Parallel Projection", func(checked bool) {
		p := camera.Perspective
		if checked {
			p = camera.Parallel
		}
		s.SetProjection(p)
		w.panel.Render()
	})
	parallel.SetChecked(s.Camera.Projection == camera.Parallel)

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Click or drag a box to select\n" +
			"• Shift adds, Ctrl toggles, Alt removes\n" +
			"• Right drag rotates around the point under the cursor\n" +
			"• Middle drag pans, scroll zooms at the cursor\n" +
			"• Escape cancels a drag",
	)
	instructions.Wrapping = fyne.TextWrapWord
	w.selectionInfo.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		widget.NewLabel("Model Information:"),
		widget.NewSeparator(),
		w.modelInfo,
		widget.NewSeparator(),
		widget.NewLabel("Selection:"),
		widget.NewSeparator(),
		w.selectionInfo,
		widget.NewSeparator(),
		widget.NewLabel("Display Options:"),
		parallel,
		widget.NewSeparator(),
		instructions,
		layout.NewSpacer(),
		openButton,
		clearButton,
		resetButton,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(300, 0))

	w.window.SetContent(container.NewBorder(nil, nil, nil, infoScroll, w.panel))
	w.window.Canvas().Focus(w.panel)

	w.updateModelInfo()
	w.updateSelectionInfo()
}

func (w *Window) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		filename := reader.URI().Path()
		if err := w.load(filename); err != nil {
			dialog.ShowError(err, w.window)
			return
		}
		w.session.ResetView()
		w.panel.Render()
		w.watch(filename)
	}, w.window)
}

func (w *Window) load(filename string) error {
	s, err := model.Load(filename)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}
	w.session.SetStructure(s)
	w.panel.SetStructure(s)
	w.updateModelInfo()
	return nil
}

// watch reloads filename whenever it changes on disk
func (w *Window) watch(filename string) {
	if err := w.watcher.RemoveAll(); err != nil {
		w.logger.Warn("failed to stop watching", "error", err)
	}
	err := w.watcher.Watch([]string{filename}, func(path string) {
		fyne.Do(func() {
			if err := w.load(path); err != nil {
				w.logger.Error("reload failed", "file", path, "error", err)
			}
		})
	})
	if err != nil {
		w.logger.Warn("file changes will not be picked up", "file", filename, "error", err)
	}
}

func (w *Window) updateModelInfo() {
	s := w.session.Structure
	result := analysis.AnalyzeStructure(s)
	w.modelInfo.SetText(fmt.Sprintf(
		"Model: %s\nNodes: %d\nElements: %d\nGroups: %d\nTotal Length: %s\n\nDimensions:\n  X: %.2f\n  Y: %.2f\n  Z: %.2f",
		s.Name,
		result.NodeCount,
		result.ElementCount,
		result.GroupCount,
		analysis.FormatMeasurement(result.TotalLength, "units"),
		result.Dimensions.X,
		result.Dimensions.Y,
		result.Dimensions.Z,
	))
}

func (w *Window) updateSelectionInfo() {
	w.selectionInfo.SetText(w.session.Summary().String())
}
