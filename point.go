package collide

import (
	"math"

	"github.com/gogpu/gg"
)

// Point is a 2D point or vector. It is the same type gg draws with, so
// geometry computed here can be handed to a gg.Context unchanged.
type Point = gg.Point

// Matrix is a 2D affine transform.
type Matrix = gg.Matrix

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// outwardNormal returns the unit normal to the right of the edge a->b.
// For a counter-clockwise polygon this points away from the interior.
// A zero-length edge yields the zero vector.
func outwardNormal(a, b Point) Point {
	e := b.Sub(a)
	n := Point{X: e.Y, Y: -e.X}
	l := n.Length()
	if l <= epsilon {
		return Point{}
	}
	return n.Div(l)
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return a.Distance(b)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// SnapToGrid rounds v to the nearest multiple of grid.
// A non-positive grid leaves v unchanged.
func SnapToGrid(v, grid float64) float64 {
	if grid <= 0 {
		return v
	}
	return math.Round(v/grid) * grid
}

// SnapPoint snaps both coordinates of p to the grid.
func SnapPoint(p Point, grid float64) Point {
	return Point{X: SnapToGrid(p.X, grid), Y: SnapToGrid(p.Y, grid)}
}

// rotateAbout returns the transform rotating by deg degrees around c.
func rotateAbout(deg float64, c Point) Matrix {
	rad := deg * math.Pi / 180
	return gg.Translate(c.X, c.Y).Multiply(gg.Rotate(rad)).Multiply(gg.Translate(-c.X, -c.Y))
}

func transformAll(m Matrix, pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = m.TransformPoint(p)
	}
	return out
}

func translateAll(pts []Point, dx, dy float64) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{X: p.X + dx, Y: p.Y + dy}
	}
	return out
}
