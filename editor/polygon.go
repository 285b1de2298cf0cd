package editor

import (
	"errors"
	"math"
	"slices"

	"github.com/gogpu/collide"
)

// Errors returned by PolygonEditor.
var (
	ErrNotDrawing   = errors.New("editor: polygon drawing not started")
	ErrEdgeCrossing = errors.New("editor: edge would cross the polygon")
	ErrTooFewPoints = errors.New("editor: polygon needs at least 3 points")
	ErrTooSmall     = errors.New("editor: obstacle smaller than minimum size")
)

// PolygonEditor collects the vertices of a custom polygon. Every point is
// snapped to Grid, whether or not canvas snapping is enabled.
type PolygonEditor struct {
	Grid float64

	points     []collide.Point
	preview    collide.Point
	hasPreview bool
	drawing    bool
}

// NewPolygonEditor creates an editor snapping to grid.
func NewPolygonEditor(grid float64) *PolygonEditor {
	return &PolygonEditor{Grid: grid}
}

// Start begins a new polygon, discarding any previous points.
func (pe *PolygonEditor) Start() {
	pe.points = nil
	pe.hasPreview = false
	pe.drawing = true
}

// Drawing reports whether a polygon is in progress.
func (pe *PolygonEditor) Drawing() bool { return pe.drawing }

// tolerance is the distance under which two snapped points are the same.
func (pe *PolygonEditor) tolerance() float64 {
	return pe.Grid / 2
}

// AddPoint snaps p and appends it. A point that repeats the last one, or
// returns to the start once the outline has three points, is ignored;
// Build closes the outline. A point whose new edge or closing edge would
// cross the chain is refused with ErrEdgeCrossing.
func (pe *PolygonEditor) AddPoint(p collide.Point) error {
	if !pe.drawing {
		return ErrNotDrawing
	}
	p = collide.SnapPoint(p, pe.Grid)

	if n := len(pe.points); n > 0 {
		if p.Distance(pe.points[n-1]) <= pe.tolerance() {
			return nil
		}
		if n >= 3 && p.Distance(pe.points[0]) <= pe.tolerance() {
			return nil
		}
	}
	if collide.NewEdgeCrosses(pe.points, p) {
		return ErrEdgeCrossing
	}
	pe.points = append(pe.points, p)
	return nil
}

// RemoveLast drops the most recent point. It reports whether one was removed.
func (pe *PolygonEditor) RemoveLast() bool {
	if !pe.drawing || len(pe.points) == 0 {
		return false
	}
	pe.points = pe.points[:len(pe.points)-1]
	return true
}

// SetPreview sets the snapped cursor position used for the rubber band.
func (pe *PolygonEditor) SetPreview(p collide.Point) {
	pe.preview = collide.SnapPoint(p, pe.Grid)
	pe.hasPreview = true
}

// ClearPreview removes the rubber band point.
func (pe *PolygonEditor) ClearPreview() {
	pe.hasPreview = false
}

// Preview returns the rubber band point, if any.
func (pe *PolygonEditor) Preview() (collide.Point, bool) {
	return pe.preview, pe.hasPreview && pe.drawing
}

// Points returns a copy of the collected points in canvas coordinates.
func (pe *PolygonEditor) Points() []collide.Point {
	return slices.Clone(pe.points)
}

// Count returns the number of collected points.
func (pe *PolygonEditor) Count() int { return len(pe.points) }

// CanFinish reports whether enough points exist to build a polygon.
func (pe *PolygonEditor) CanFinish() bool {
	return len(pe.points) >= 3
}

// Cancel abandons the polygon.
func (pe *PolygonEditor) Cancel() {
	pe.points = nil
	pe.hasPreview = false
	pe.drawing = false
}

// cleaned drops consecutive points within half a grid cell of each other
// and a final point that lands back on the first.
func (pe *PolygonEditor) cleaned() []collide.Point {
	if len(pe.points) < 2 {
		return slices.Clone(pe.points)
	}
	tol := pe.tolerance()
	out := []collide.Point{pe.points[0]}
	for _, p := range pe.points[1:] {
		if p.Distance(out[len(out)-1]) > tol {
			out = append(out, p)
		}
	}
	if len(out) > 1 && out[len(out)-1].Distance(out[0]) < tol {
		out = out[:len(out)-1]
	}
	return out
}

// Build turns the collected points into a CustomPolygon obstacle. The
// obstacle's box is the bounding box of the points, truncated to whole
// pixels, and its outline is stored relative to the box corner. Build does
// not end the drawing session.
func (pe *PolygonEditor) Build(color string) (collide.Obstacle, error) {
	if !pe.CanFinish() {
		return collide.Obstacle{}, ErrTooFewPoints
	}
	pts := pe.cleaned()
	if len(pts) < 3 {
		return collide.Obstacle{}, ErrTooFewPoints
	}

	b := collide.Bounds(pts)
	if b.Width() < collide.MinObstacleSize || b.Height() < collide.MinObstacleSize {
		return collide.Obstacle{}, ErrTooSmall
	}

	local := make([]collide.Point, len(pts))
	for i, p := range pts {
		local[i] = p.Sub(b.Min)
	}
	return collide.Obstacle{
		Kind:   collide.CustomPolygon,
		X:      math.Trunc(b.Min.X),
		Y:      math.Trunc(b.Min.Y),
		Width:  math.Trunc(b.Width()),
		Height: math.Trunc(b.Height()),
		Color:  color,
		Points: local,
	}, nil
}
