// Package config loads the collide settings file.
//
// Settings live in a TOML file, by default ~/.config/collide/config.toml.
// A missing file is not an error; every field has a default.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/collide"
	"github.com/gogpu/collide/editor"
	"github.com/gogpu/collide/scene"
)

// DefaultPath is where Load looks when no path is given.
const DefaultPath = "~/.config/collide/config.toml"

// Config holds every setting.
type Config struct {
	Canvas    Canvas    `toml:"canvas"`
	Collision Collision `toml:"collision"`
	Editor    Editor    `toml:"editor"`
	Window    Window    `toml:"window"`
	Log       Log       `toml:"log"`
}

// Canvas sets the drawing area.
type Canvas struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Grid   float64 `toml:"grid"`
	Snap   bool    `toml:"snap"`
}

// Collision sets clearances and the default collision box growth.
type Collision struct {
	MinSpacing float64 `toml:"min_spacing"`
	BoxGap     float64 `toml:"box_gap"`
	ArcSamples int     `toml:"arc_samples"`
	// Distance is applied to obstacles that carry none. Zero disables it.
	Distance        float64 `toml:"distance"`
	ForceConvexHull bool    `toml:"force_convex_hull"`
	// Method, when set, overrides every obstacle's own method.
	Method string `toml:"method,omitempty"`
}

// Editor sets editing behaviour.
type Editor struct {
	Color        string `toml:"color"`
	HistoryLimit int    `toml:"history_limit"`
}

// Window sets the interactive viewer.
type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	Labels bool   `toml:"labels"`
	// Watch reloads the open scene when another program changes it.
	Watch bool `toml:"watch"`
}

// Log sets diagnostics.
type Log struct {
	Level string `toml:"level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Canvas: Canvas{
			Width:  editor.DefaultCanvasWidth,
			Height: editor.DefaultCanvasHeight,
			Grid:   editor.DefaultGrid,
			Snap:   true,
		},
		Collision: Collision{
			MinSpacing: collide.DefaultMinSpacing,
			BoxGap:     collide.DefaultBoxGap,
			ArcSamples: collide.DefaultArcSamples,
		},
		Editor: Editor{
			Color:        editor.DefaultColor,
			HistoryLimit: editor.DefaultHistoryLimit,
		},
		Window: Window{
			Width:  1280,
			Height: 800,
			Title:  "Obstacle Collision Box Editor",
			Watch:  true,
		},
		Log: Log{Level: "warn"},
	}
}

// Load reads the file at path over the defaults. An empty path means
// DefaultPath, which may be absent.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	collide.Logger().Debug("config: loaded", "path", path)
	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg Config) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects values no component can work with.
func (c Config) Validate() error {
	switch {
	case !(c.Canvas.Width > 0) || !(c.Canvas.Height > 0):
		return fmt.Errorf("canvas size must be positive, got %gx%g", c.Canvas.Width, c.Canvas.Height)
	case !(c.Canvas.Grid > 0):
		return fmt.Errorf("grid must be positive, got %g", c.Canvas.Grid)
	case c.Collision.MinSpacing < 0 || c.Collision.BoxGap < 0 || c.Collision.Distance < 0:
		return errors.New("clearances and distance must be non-negative")
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	canvas := scene.Canvas{Width: c.Canvas.Width, Height: c.Canvas.Height, Grid: c.Canvas.Grid}
	if err := canvas.Validate(); err != nil {
		return err
	}
	if c.Collision.Method != "" {
		if _, err := collide.ParseMethod(c.Collision.Method); err != nil {
			return err
		}
	}
	return nil
}

// Detector builds the collision detector the settings describe.
func (c Config) Detector() *collide.Detector {
	exOpts := []collide.ExpanderOption{
		collide.WithDistance(c.Collision.Distance),
		collide.WithForceConvexHull(c.Collision.ForceConvexHull),
	}
	if m, err := collide.ParseMethod(c.Collision.Method); err == nil && c.Collision.Method != "" {
		exOpts = append(exOpts, collide.WithMethodOverride(m))
	}
	return collide.NewDetector(
		collide.WithMinSpacing(c.Collision.MinSpacing),
		collide.WithBoxGap(c.Collision.BoxGap),
		collide.WithArcSamples(c.Collision.ArcSamples),
		collide.WithExpander(collide.NewExpander(exOpts...)),
	)
}

// EditorOptions returns the editor options the settings describe.
func (c Config) EditorOptions() []editor.Option {
	return []editor.Option{
		editor.WithCanvasSize(c.Canvas.Width, c.Canvas.Height),
		editor.WithGrid(c.Canvas.Grid),
		editor.WithSnap(c.Canvas.Snap),
		editor.WithColor(c.Editor.Color),
		editor.WithHistoryLimit(c.Editor.HistoryLimit),
		editor.WithDetector(c.Detector()),
	}
}
