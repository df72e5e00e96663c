// Package script replays recorded viewport gestures without a window
package script

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/philipparndt/femscene/pkg/camera"
	"github.com/philipparndt/femscene/pkg/geometry"
	"github.com/philipparndt/femscene/pkg/interactor"
	"github.com/philipparndt/femscene/pkg/selection"
	"gopkg.in/yaml.v3"
)

// ErrUnknownStep is returned for steps that do not name exactly one action
var ErrUnknownStep = errors.New("unknown script step")

// Point is a screen position or a size in pixels
type Point [2]float64

// Vector returns the point as a screen vector
func (p Point) Vector() geometry.Vector2 {
	return geometry.NewVector2(p[0], p[1])
}

// Drag is a pointer drag from one position to another
type Drag struct {
	From  Point `yaml:"from"`
	To    Point `yaml:"to"`
	Moves int   `yaml:"moves,omitempty"` // intermediate pointer moves, default 4
}

// Wheel is a wheel event
type Wheel struct {
	At    Point   `yaml:"at"`
	Ticks float64 `yaml:"ticks"`
}

// Step is one scripted input. Exactly one of the action fields must be set;
// Button and Modifier apply to clicks and drags.
type Step struct {
	Click     *Point `yaml:"click,omitempty"`
	Drag      *Drag  `yaml:"drag,omitempty"`
	Wheel     *Wheel `yaml:"wheel,omitempty"`
	Resize    *Point `yaml:"resize,omitempty"`
	Clear     bool   `yaml:"clear,omitempty"`
	FocusLost bool   `yaml:"focus_lost,omitempty"`

	Button   string `yaml:"button,omitempty"`
	Modifier string `yaml:"modifier,omitempty"`
}

func (s Step) actions() int {
	n := 0
	for _, set := range []bool{s.Click != nil, s.Drag != nil, s.Wheel != nil, s.Resize != nil, s.Clear, s.FocusLost} {
		if set {
			n++
		}
	}
	return n
}

// Script is a sequence of steps replayed on a viewport of the given size
type Script struct {
	Viewport Point  `yaml:"viewport"`
	Steps    []Step `yaml:"steps"`
}

// ParseFile reads a script file
func ParseFile(filename string) (*Script, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// Parse decodes and checks a YAML script
func Parse(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	if s.Viewport == (Point{}) {
		s.Viewport = Point{800, 600}
	}
	for i, step := range s.Steps {
		if step.actions() != 1 {
			return nil, fmt.Errorf("step %d: %w", i+1, ErrUnknownStep)
		}
		if _, err := ParseModifier(step.Modifier); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		if _, err := button(step); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &s, nil
}

// ParseModifier parses a key name ("shift", "ctrl", "alt") or a modifier name
func ParseModifier(s string) (selection.Modifier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return selection.None, nil
	case "shift", "union":
		return selection.Union, nil
	case "ctrl", "control", "toggle":
		return selection.Toggle, nil
	case "alt", "subtract":
		return selection.Subtract, nil
	}
	return selection.None, fmt.Errorf("unknown modifier %q", s)
}

func button(s Step) (interactor.Button, error) {
	if s.Button == "" {
		return interactor.Primary, nil
	}
	return interactor.ParseButton(s.Button)
}

// Runner replays scripts through a router
type Runner struct {
	Router   *interactor.Router
	Selector *selection.Selector
	Logger   *slog.Logger
}

// Run replays every step. The viewport is resized first.
func (r *Runner) Run(s *Script) error {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r.Router.Resize(camera.Viewport{Width: s.Viewport[0], Height: s.Viewport[1]})

	for i, step := range s.Steps {
		if err := r.step(step); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		logger.Debug("script step replayed", "step", i+1)
	}
	return nil
}

func (r *Runner) step(s Step) error {
	m, err := ParseModifier(s.Modifier)
	if err != nil {
		return err
	}
	b, err := button(s)
	if err != nil {
		return err
	}

	switch {
	case s.Click != nil:
		r.Router.Click(s.Click.Vector(), b, m)
	case s.Drag != nil:
		moves := s.Drag.Moves
		if moves <= 0 {
			moves = 4
		}
		from, to := s.Drag.From.Vector(), s.Drag.To.Vector()
		r.Router.PointerDown(from, b)
		for i := 1; i <= moves; i++ {
			t := float64(i) / float64(moves)
			r.Router.PointerMove(from.Add(to.Sub(from).Mul(t)))
		}
		r.Router.PointerUp(to, b, m)
	case s.Wheel != nil:
		r.Router.Wheel(s.Wheel.At.Vector(), s.Wheel.Ticks)
	case s.Resize != nil:
		r.Router.Resize(camera.Viewport{Width: s.Resize[0], Height: s.Resize[1]})
	case s.Clear:
		if r.Selector != nil {
			r.Selector.Clear()
		}
	case s.FocusLost:
		r.Router.FocusLost()
	default:
		return ErrUnknownStep
	}
	return nil
}
