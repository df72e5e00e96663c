package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/femscene/pkg/camera"
	"github.com/philipparndt/femscene/pkg/interactor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 10.0, cfg.Selection.Tolerance)
	assert.Equal(t, "union", cfg.Selection.Toggle)
	assert.Equal(t, 10.0, cfg.Camera.MotionFactor)
	assert.Equal(t, -20.0, cfg.Camera.ElevationAzimuth)

	b, err := cfg.Bindings()
	require.NoError(t, err)
	assert.Equal(t, interactor.DefaultBindings(), b)

	cam, err := cfg.NewCamera()
	require.NoError(t, err)
	assert.Equal(t, camera.Perspective, cam.Projection)

	level, err := ParseLevel(cfg.Log.Level)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`
[selection]
toggle = "xor"
priority = "geometry"

[camera]
projection = "parallel"
default_pivot = [1.0, 2.0, 3.0]

[buttons]
select = "left"
rotate = "middle"
pan = "right"

[log]
level = "DEBUG"
`))
	require.NoError(t, err)

	assert.Equal(t, 10.0, cfg.Selection.Tolerance)
	assert.Equal(t, "xor", cfg.Selection.Toggle)
	assert.Equal(t, []float64{1, 2, 3}, cfg.Camera.DefaultPivot)
	assert.Equal(t, 1.1, cfg.Camera.DollyBase)

	options, err := cfg.SelectorOptions()
	require.NoError(t, err)
	assert.Len(t, options, 3)
	assert.Len(t, cfg.ControllerOptions(), 4)

	b, err := cfg.Bindings()
	require.NoError(t, err)
	assert.Equal(t, interactor.Bindings{Select: interactor.Primary, Rotate: interactor.Tertiary, Pan: interactor.Secondary}, b)

	cam, err := cfg.NewCamera()
	require.NoError(t, err)
	assert.Equal(t, camera.Parallel, cam.Projection)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"unknown key", "[selection]\nradius = 3\n", "radius"},
		{"syntax", "[selection\n", "invalid config"},
		{"toggle", "[selection]\ntoggle = \"flip\"\n", "selection.toggle"},
		{"tolerance", "[selection]\ntolerance = 0.0\n", "selection.tolerance"},
		{"pivot", "[camera]\ndefault_pivot = [1.0]\n", "default_pivot"},
		{"buttons", "[buttons]\nrotate = \"primary\"\n", "conflicting button bindings"},
		{"level", "[log]\nlevel = \"loud\"\n", "log.level"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(c.input))
			assert.ErrorContains(t, err, c.want)
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Selection.Priority = "geometry"

	var buf bytes.Buffer
	require.NoError(t, cfg.Write(&buf))

	again, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "femscene.toml")
	require.NoError(t, os.WriteFile(path, []byte("[camera]\nview_angle = 45.0\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 45.0, cfg.Camera.ViewAngle)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "failed to open config")
}
