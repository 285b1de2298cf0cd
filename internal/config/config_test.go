package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/collide"
	"github.com/gogpu/collide/editor"
)

func write(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := write(t, `
[canvas]
width = 800
grid = 10

[collision]
min_spacing = 2
distance = 15
method = "convex"

[window]
labels = true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 800.0, cfg.Canvas.Width)
	assert.Equal(t, float64(editor.DefaultCanvasHeight), cfg.Canvas.Height, "unset keys keep defaults")
	assert.Equal(t, 10.0, cfg.Canvas.Grid)
	assert.Equal(t, 2.0, cfg.Collision.MinSpacing)
	assert.Equal(t, float64(collide.DefaultBoxGap), cfg.Collision.BoxGap)
	assert.True(t, cfg.Window.Labels)
	assert.Equal(t, 1280, cfg.Window.Width)

	det := cfg.Detector()
	assert.Equal(t, 2.0, det.MinSpacing())
	assert.Equal(t, 15.0, det.Expander().Distance())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[canvas\nwidth = 1"},
		{"unknown key", "[canvas]\ncolour = 'red'"},
		{"bad grid", "[canvas]\ngrid = 0"},
		{"tiny grid", "[canvas]\ngrid = 0.001"},
		{"huge canvas", "[canvas]\nwidth = 1e7"},
		{"nan canvas", "[canvas]\nheight = nan"},
		{"negative gap", "[collision]\nbox_gap = -1"},
		{"bad method", "[collision]\nmethod = 'arcs'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(write(t, tt.body))
			assert.Error(t, err)
			assert.Equal(t, Default(), cfg)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadDefaultPathMissing(t *testing.T) {
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Canvas.Snap = false
	cfg.Collision.Method = "preserve_shape"
	cfg.Editor.Color = "#112233"
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestEditorOptions(t *testing.T) {
	cfg := Default()
	cfg.Canvas.Width, cfg.Canvas.Height = 640, 480
	cfg.Canvas.Grid = 16
	cfg.Canvas.Snap = false
	cfg.Collision.BoxGap = 7

	ed := editor.New(cfg.EditorOptions()...)
	w, h := ed.Size()
	assert.Equal(t, 640.0, w)
	assert.Equal(t, 480.0, h)
	assert.Equal(t, 16.0, ed.Grid())
	assert.False(t, ed.Snap())
	assert.Equal(t, 7.0, ed.Detector().BoxGap())
}

func TestDetectorMethodOverride(t *testing.T) {
	cfg := Default()
	cfg.Collision.Method = "convex"
	o := collide.Obstacle{
		Kind: collide.Rectangle, Width: 20, Height: 20,
		Expansion: collide.Expansion{Distance: 5, Method: collide.Generalized},
	}
	r, ok, err := cfg.Detector().Expander().Expand(o)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, collide.Convex, r.Method)
}
