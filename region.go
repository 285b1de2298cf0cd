package collide

import (
	"math"
	"slices"
)

// DefaultArcSamples is the number of segments used to approximate one
// rounded corner when a generalized region is turned into a polygon.
const DefaultArcSamples = 5

// Region is a grown collision box.
//
// Convex and PreserveShape regions are plain polygons. Generalized regions
// are kept exact: offset edges plus arcs of ArcRadius around ArcCenters,
// where the arc around ArcCenters[i+1] joins Edges[i] to Edges[i+1].
type Region struct {
	Method Method

	// Polygon holds the outline for Convex and PreserveShape.
	Polygon []Point

	// Edges, ArcCenters and ArcRadius describe a Generalized region.
	Edges      []Segment
	ArcCenters []Point
	ArcRadius  float64

	// Directional is set when per-side distances produced the region.
	Directional bool
}

// IsEmpty reports whether the region holds no geometry.
func (r Region) IsEmpty() bool {
	return len(r.Polygon) == 0 && len(r.Edges) == 0
}

// Outline returns a polygon approximating the region. Each rounded corner
// contributes samples-1 interior points; samples below 1 use
// DefaultArcSamples.
func (r Region) Outline(samples int) []Point {
	if r.Method != Generalized {
		return slices.Clone(r.Polygon)
	}
	if samples < 1 {
		samples = DefaultArcSamples
	}

	n := len(r.Edges)
	if n == 0 || len(r.ArcCenters) != n {
		return nil
	}

	out := make([]Point, 0, n*samples)
	for i, e := range r.Edges {
		out = append(out, e.A)

		center := r.ArcCenters[(i+1)%n]
		next := r.Edges[(i+1)%n].A

		// Directional regions place corners on the arc centres; there is
		// no sweep to sample.
		if e.B.Distance(center) <= epsilon || next.Distance(center) <= epsilon {
			continue
		}

		a1 := math.Atan2(e.B.Y-center.Y, e.B.X-center.X)
		a2 := math.Atan2(next.Y-center.Y, next.X-center.X)
		sweep := normalizeAngle(a2 - a1)
		for j := 1; j < samples; j++ {
			a := a1 + sweep*float64(j)/float64(samples)
			out = append(out, Point{
				X: center.X + r.ArcRadius*math.Cos(a),
				Y: center.Y + r.ArcRadius*math.Sin(a),
			})
		}
	}
	return out
}

// Bounds returns the bounding box of the region, arcs included.
func (r Region) Bounds() Rect {
	if r.Method != Generalized {
		return Bounds(r.Polygon)
	}
	pts := make([]Point, 0, 2*len(r.Edges))
	for _, e := range r.Edges {
		pts = append(pts, e.A, e.B)
	}
	b := Bounds(pts)
	if len(r.ArcCenters) > 0 {
		b = b.Union(Bounds(r.ArcCenters).Inflate(r.ArcRadius))
	}
	return b
}

// normalizeAngle maps a to (-pi, pi].
func normalizeAngle(a float64) float64 {
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// Expanded pairs an obstacle with its collision box.
type Expanded struct {
	Obstacle Obstacle
	Region   Region
}
