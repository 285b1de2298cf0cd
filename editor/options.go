package editor

import (
	"time"

	"github.com/gogpu/collide"
)

// Defaults for a new Editor.
const (
	DefaultCanvasWidth  = 2048
	DefaultCanvasHeight = 2048
	DefaultGrid         = 20
	DefaultColor        = "#6496c8"
)

// Option configures an Editor during creation.
//
// Example:
//
//	ed := editor.New(
//		editor.WithCanvasSize(1024, 768),
//		editor.WithSnap(true),
//	)
type Option func(*Editor)

// WithCanvasSize sets the canvas extent in pixels.
func WithCanvasSize(w, h float64) Option {
	return func(e *Editor) {
		if w > 0 && h > 0 {
			e.width, e.height = w, h
		}
	}
}

// WithGrid sets the grid spacing used for snapping and polygon points.
func WithGrid(g float64) Option {
	return func(e *Editor) {
		if g > 0 {
			e.grid = g
		}
	}
}

// WithSnap sets whether shapes snap to the grid while drawn and moved.
func WithSnap(on bool) Option {
	return func(e *Editor) {
		e.snap = on
	}
}

// WithColor sets the fill colour of new obstacles.
func WithColor(hex string) Option {
	return func(e *Editor) {
		if hex != "" {
			e.color = hex
		}
	}
}

// WithDetector sets the collision detector.
func WithDetector(d *collide.Detector) Option {
	return func(e *Editor) {
		if d != nil {
			e.det = d
		}
	}
}

// WithHistoryLimit sets the number of undo steps kept.
func WithHistoryLimit(n int) Option {
	return func(e *Editor) {
		e.history = NewHistory(n)
	}
}

// WithClock replaces time.Now for status message expiry.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) {
		if now != nil {
			e.now = now
		}
	}
}
