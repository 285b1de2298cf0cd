package render

import (
	"fmt"
	"image/png"
	"io"
	"math"

	"github.com/gogpu/collide"
	"github.com/gogpu/collide/editor"
	"github.com/gogpu/collide/scene"
)

// ExportOptions controls RenderPNG.
type ExportOptions struct {
	// Detector supplies the expander and clearances. Nil uses the defaults.
	Detector *collide.Detector
	// Labels draws a caption on every obstacle.
	Labels bool
	// Collisions outlines obstacles that violate a clearance.
	Collisions bool
	// Fit crops the image to the obstacles and their collision boxes plus
	// Margin instead of drawing the whole canvas.
	Fit    bool
	Margin float64
	Theme  *Theme
}

// RenderPNG draws a scene document and writes it as PNG. The document is
// validated first, so its canvas is within scene.MaxCanvasSize. A fitted
// crop is limited to MaxImageSize on each side.
func RenderPNG(doc scene.Document, w io.Writer, opts ExportOptions) error {
	obstacles, err := doc.Resolve()
	if err != nil {
		return err
	}
	det := opts.Detector
	if det == nil {
		det = collide.NewDetector()
	}

	f := Frame{
		Width:     doc.Canvas.Width,
		Height:    doc.Canvas.Height,
		Grid:      doc.Canvas.Grid,
		Obstacles: obstacles,
		Labels:    opts.Labels,
	}
	if f.Width <= 0 || f.Height <= 0 {
		f.Width, f.Height = editor.DefaultCanvasWidth, editor.DefaultCanvasHeight
	}
	ropts := []Option{WithDetector(det)}
	if opts.Theme != nil {
		ropts = append(ropts, WithTheme(*opts.Theme))
	}
	r := New(ropts...)
	if opts.Collisions {
		f.Collisions = r.Collisions(det, obstacles)
	}
	if opts.Fit && len(obstacles) > 0 {
		margin := opts.Margin
		if !(margin >= 0) {
			margin = 0
		}
		b := sceneBounds(det, obstacles).Inflate(math.Min(margin, MaxImageSize))
		f.Offset = b.Min
		f.Width = math.Min(math.Max(b.Width(), 1), MaxImageSize)
		f.Height = math.Min(math.Max(b.Height(), 1), MaxImageSize)
	}

	img, err := r.Image(f)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	collide.Logger().Debug("render: png written", "obstacles", len(obstacles),
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return nil
}

// sceneBounds returns the box around every obstacle and collision box.
func sceneBounds(det *collide.Detector, obstacles []collide.Obstacle) collide.Rect {
	b := collide.Bounds(obstacles[0].Vertices())
	for _, o := range obstacles {
		b = b.Union(collide.Bounds(o.Vertices()))
		if box := det.BoxOutline(o); len(box) > 0 {
			b = b.Union(collide.Bounds(box))
		}
	}
	return b
}
