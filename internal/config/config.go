// Package config loads the viewer settings from a TOML file
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/philipparndt/femscene/pkg/camera"
	"github.com/philipparndt/femscene/pkg/geometry"
	"github.com/philipparndt/femscene/pkg/interactor"
	"github.com/philipparndt/femscene/pkg/selection"
)

// Selection configures the selector
type Selection struct {
	Tolerance float64 `toml:"tolerance"` // click tolerance in pixels
	Padding   float64 `toml:"padding"`   // bounding box padding in world units
	Toggle    string  `toml:"toggle"`    // "union" or "xor"
	Priority  string  `toml:"priority"`  // "point" or "geometry"
}

// Camera configures the camera and its controller
type Camera struct {
	Projection       string    `toml:"projection"`
	ViewAngle        float64   `toml:"view_angle"`
	MotionFactor     float64   `toml:"motion_factor"`
	ElevationAzimuth float64   `toml:"elevation_azimuth"`
	DollyBase        float64   `toml:"dolly_base"`
	DollyStep        float64   `toml:"dolly_step"`
	DefaultPivot     []float64 `toml:"default_pivot,omitempty"`
}

// Buttons binds mouse buttons to actions
type Buttons struct {
	Select string `toml:"select"`
	Rotate string `toml:"rotate"`
	Pan    string `toml:"pan"`
}

// Log configures logging
type Log struct {
	Level string `toml:"level"`
}

// Config holds all settings
type Config struct {
	Selection Selection `toml:"selection"`
	Camera    Camera    `toml:"camera"`
	Buttons   Buttons   `toml:"buttons"`
	Log       Log       `toml:"log"`
}

// Default returns the reference settings
func Default() Config {
	return Config{
		Selection: Selection{
			Tolerance: selection.DefaultTolerance,
			Toggle:    selection.ToggleUnion.String(),
			Priority:  "point",
		},
		Camera: Camera{
			Projection:       camera.Perspective.String(),
			ViewAngle:        30,
			MotionFactor:     camera.DefaultMotionFactor,
			ElevationAzimuth: camera.DefaultElevationAzimuth,
			DollyBase:        camera.DefaultDollyBase,
			DollyStep:        camera.DefaultDollyStep,
		},
		Buttons: Buttons{
			Select: interactor.Primary.String(),
			Rotate: interactor.Secondary.String(),
			Pan:    interactor.Tertiary.String(),
		},
		Log: Log{Level: "info"},
	}
}

// Load reads a config file on top of the defaults. An empty filename
// returns the defaults.
func Load(filename string) (Config, error) {
	if filename == "" {
		return Default(), nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// Parse decodes TOML on top of the defaults and validates the result
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("invalid config: %s", strict.String())
		}
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Write encodes the config as TOML
func (c Config) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Validate checks every enumerated and numeric setting
func (c Config) Validate() error {
	var errs []error
	if c.Selection.Tolerance <= 0 {
		errs = append(errs, fmt.Errorf("selection.tolerance must be positive, got %g", c.Selection.Tolerance))
	}
	if c.Selection.Padding < 0 {
		errs = append(errs, fmt.Errorf("selection.padding must not be negative, got %g", c.Selection.Padding))
	}
	if _, err := selection.ParseToggleMode(c.Selection.Toggle); err != nil {
		errs = append(errs, fmt.Errorf("selection.toggle: %w", err))
	}
	if _, err := selection.ParsePriority(c.Selection.Priority); err != nil {
		errs = append(errs, fmt.Errorf("selection.priority: %w", err))
	}
	if _, err := camera.ParseProjection(c.Camera.Projection); err != nil {
		errs = append(errs, fmt.Errorf("camera.projection: %w", err))
	}
	if c.Camera.ViewAngle <= 0 || c.Camera.ViewAngle >= 180 {
		errs = append(errs, fmt.Errorf("camera.view_angle must be in (0, 180), got %g", c.Camera.ViewAngle))
	}
	if c.Camera.DollyBase <= 0 {
		errs = append(errs, fmt.Errorf("camera.dolly_base must be positive, got %g", c.Camera.DollyBase))
	}
	if n := len(c.Camera.DefaultPivot); n != 0 && n != 3 {
		errs = append(errs, fmt.Errorf("camera.default_pivot needs 3 coordinates, got %d", n))
	}
	if _, err := c.Bindings(); err != nil {
		errs = append(errs, fmt.Errorf("buttons: %w", err))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// SelectorOptions returns the selector options described by the config
func (c Config) SelectorOptions() ([]selection.Option, error) {
	toggle, err := selection.ParseToggleMode(c.Selection.Toggle)
	if err != nil {
		return nil, err
	}
	policy, err := selection.ParsePriority(c.Selection.Priority)
	if err != nil {
		return nil, err
	}
	return []selection.Option{
		selection.WithTolerance(c.Selection.Tolerance),
		selection.WithToggleMode(toggle),
		selection.WithPolicy(policy),
	}, nil
}

// ControllerOptions returns the camera controller options described by the config
func (c Config) ControllerOptions() []camera.Option {
	options := []camera.Option{
		camera.WithMotionFactor(c.Camera.MotionFactor),
		camera.WithElevationAzimuth(c.Camera.ElevationAzimuth),
		camera.WithDolly(c.Camera.DollyBase, c.Camera.DollyStep),
	}
	if p := c.Camera.DefaultPivot; len(p) == 3 {
		options = append(options, camera.WithDefaultPivot(geometry.NewVector3(p[0], p[1], p[2])))
	}
	return options
}

// NewCamera returns a camera with the configured projection and view angle
func (c Config) NewCamera() (*camera.Camera, error) {
	projection, err := camera.ParseProjection(c.Camera.Projection)
	if err != nil {
		return nil, err
	}
	cam := camera.New()
	cam.Projection = projection
	cam.ViewAngle = c.Camera.ViewAngle
	return cam, nil
}

// Bindings returns the configured mouse button bindings
func (c Config) Bindings() (interactor.Bindings, error) {
	var b interactor.Bindings
	var err error
	if b.Select, err = interactor.ParseButton(c.Buttons.Select); err != nil {
		return b, err
	}
	if b.Rotate, err = interactor.ParseButton(c.Buttons.Rotate); err != nil {
		return b, err
	}
	if b.Pan, err = interactor.ParseButton(c.Buttons.Pan); err != nil {
		return b, err
	}
	return b, b.Validate()
}

// ParseLevel parses a slog level name
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
