package collide

import (
	"math"
	"slices"
	"sort"
)

// epsilon guards divisions by edge lengths and line determinants.
const epsilon = 1e-10

// SignedArea returns twice the signed area of the polygon (shoelace sum).
// Positive means counter-clockwise in the package's convention.
func SignedArea(pts []Point) float64 {
	var sum float64
	n := len(pts)
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum
}

// IsCounterClockwise reports whether the polygon winds counter-clockwise.
// Degenerate polygons (zero area) report false.
func IsCounterClockwise(pts []Point) bool {
	return SignedArea(pts) > 0
}

// EnsureCounterClockwise returns the vertices in counter-clockwise order.
// The input is never modified; a reversed copy is returned when needed.
func EnsureCounterClockwise(pts []Point) []Point {
	out := slices.Clone(pts)
	if !IsCounterClockwise(out) {
		slices.Reverse(out)
	}
	return out
}

// Centroid returns the mean of the vertices.
func Centroid(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	var c Point
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.Div(float64(len(pts)))
}

// Rect is an axis-aligned box.
type Rect struct {
	Min, Max Point
}

// Width returns the box width.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the box height.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Inflate grows the box by d on every side.
func (r Rect) Inflate(d float64) Rect {
	return Rect{
		Min: Point{X: r.Min.X - d, Y: r.Min.Y - d},
		Max: Point{X: r.Max.X + d, Y: r.Max.Y + d},
	}
}

// Polygon returns the four corners of the box, clockwise from top-left
// on screen.
func (r Rect) Polygon() []Point {
	return []Point{
		r.Min,
		{X: r.Max.X, Y: r.Min.Y},
		r.Max,
		{X: r.Min.X, Y: r.Max.Y},
	}
}

// Union returns the smallest box containing both.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, o.Min.X), Y: math.Min(r.Min.Y, o.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, o.Max.X), Y: math.Max(r.Max.Y, o.Max.Y)},
	}
}

// Intersects reports whether the boxes share any point.
func (r Rect) Intersects(o Rect) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X &&
		r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

// Bounds returns the bounding box of the points.
func Bounds(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r
}

// LineIntersection intersects the infinite lines p1-p2 and p3-p4.
// Parallel lines yield the midpoint of p2 and p3, which is where two
// adjacent offset edges of a straight corner touch.
func LineIntersection(p1, p2, p3, p4 Point) Point {
	denom := (p1.X-p2.X)*(p3.Y-p4.Y) - (p1.Y-p2.Y)*(p3.X-p4.X)
	if math.Abs(denom) < epsilon {
		return p2.Add(p3).Div(2)
	}
	t := ((p1.X-p3.X)*(p3.Y-p4.Y) - (p1.Y-p3.Y)*(p3.X-p4.X)) / denom
	return Point{
		X: p1.X + t*(p2.X-p1.X),
		Y: p1.Y + t*(p2.Y-p1.Y),
	}
}

// ContainsPoint tests p against the polygon with the even-odd rule.
func ContainsPoint(pts []Point, p Point) bool {
	inside := false
	n := len(pts)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// ConvexHull returns the convex hull of pts in counter-clockwise order
// (positive signed area). Fewer than three points, or points that are all
// collinear, are returned unchanged.
func ConvexHull(pts []Point) []Point {
	if len(pts) < 3 {
		return slices.Clone(pts)
	}

	sorted := slices.Clone(pts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	cross := func(o, a, b Point) float64 {
		return a.Sub(o).Cross(b.Sub(o))
	}

	// Andrew's monotone chain.
	hull := make([]Point, 0, 2*len(sorted))
	for _, p := range sorted {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	hull = hull[:len(hull)-1]

	if len(hull) < 3 {
		Logger().Warn("collide: convex hull degenerate, keeping original vertices", "points", len(pts))
		return slices.Clone(pts)
	}
	return EnsureCounterClockwise(hull)
}

// RegularPolygon returns n vertices on a circle of radius r around (cx, cy),
// starting straight up and stepping clockwise on screen.
func RegularPolygon(cx, cy, r float64, n int) []Point {
	pts := make([]Point, n)
	step := 2 * math.Pi / float64(n)
	for i := range pts {
		a := -math.Pi/2 + float64(i)*step
		pts[i] = Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return pts
}
