package collide

import "math"

// Segment is a straight edge between two points.
type Segment struct {
	A, B Point
}

// Seg is a convenience function to create a Segment.
func Seg(a, b Point) Segment {
	return Segment{A: a, B: b}
}

// Reverse returns the segment with swapped endpoints.
func (s Segment) Reverse() Segment {
	return Segment{A: s.B, B: s.A}
}

// Length returns the segment length.
func (s Segment) Length() float64 {
	return s.A.Distance(s.B)
}

// Midpoint returns the middle of the segment.
func (s Segment) Midpoint() Point {
	return s.A.Lerp(s.B, 0.5)
}

// orientation classifies the turn p->q->r: 0 collinear, 1 and 2 for the
// two rotation senses.
func orientation(p, q, r Point) int {
	v := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	switch {
	case v == 0:
		return 0
	case v > 0:
		return 1
	default:
		return 2
	}
}

// onSegment reports whether q lies within the bounding box of p-r.
// Only meaningful when p, q and r are collinear.
func onSegment(p, q, r Point) bool {
	return q.X <= math.Max(p.X, r.X) && q.X >= math.Min(p.X, r.X) &&
		q.Y <= math.Max(p.Y, r.Y) && q.Y >= math.Min(p.Y, r.Y)
}

// SegmentsIntersect reports whether segment p1-p2 touches segment p3-p4,
// including collinear overlap and shared endpoints.
func SegmentsIntersect(p1, p2, p3, p4 Point) bool {
	o1 := orientation(p1, p2, p3)
	o2 := orientation(p1, p2, p4)
	o3 := orientation(p3, p4, p1)
	o4 := orientation(p3, p4, p2)

	if o1 != o2 && o3 != o4 {
		return true
	}

	switch {
	case o1 == 0 && onSegment(p1, p3, p2):
		return true
	case o2 == 0 && onSegment(p1, p4, p2):
		return true
	case o3 == 0 && onSegment(p3, p1, p4):
		return true
	case o4 == 0 && onSegment(p3, p2, p4):
		return true
	}
	return false
}

// Intersects reports whether the two segments touch.
func (s Segment) Intersects(o Segment) bool {
	return SegmentsIntersect(s.A, s.B, o.A, o.B)
}

// SelfIntersections reports crossings between non-adjacent edges of a
// closed polygon. Each pair (i, j) names edge i (pts[i]->pts[i+1]) and
// edge j. The pair formed by the first and the closing edge is adjacent
// and never reported.
func SelfIntersections(pts []Point) (bool, [][2]int) {
	n := len(pts)
	if n < 3 {
		return false, nil
	}

	var pairs [][2]int
	for i := 0; i < n; i++ {
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if SegmentsIntersect(pts[i], pts[(i+1)%n], pts[j], pts[(j+1)%n]) {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return len(pairs) > 0, pairs
}

// NewEdgeCrosses reports whether appending p to the open chain would make
// the new edge (last->p), or the closing edge (p->first), cross an edge
// already in the chain.
func NewEdgeCrosses(chain []Point, p Point) bool {
	if len(chain) < 2 {
		return false
	}

	// The chain's final edge ends at last and is adjacent to the new edge.
	last := chain[len(chain)-1]
	for i := 0; i < len(chain)-2; i++ {
		if SegmentsIntersect(last, p, chain[i], chain[i+1]) {
			return true
		}
	}

	first := chain[0]
	for i := 1; i < len(chain)-1; i++ {
		if SegmentsIntersect(p, first, chain[i], chain[i+1]) {
			return true
		}
	}
	return false
}
