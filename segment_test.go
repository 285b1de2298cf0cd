package collide

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name           string
		p1, p2, p3, p4 Point
		want           bool
	}{
		{"crossing", Pt(0, 0), Pt(10, 10), Pt(0, 10), Pt(10, 0), true},
		{"disjoint", Pt(0, 0), Pt(1, 0), Pt(0, 5), Pt(1, 5), false},
		{"shared endpoint", Pt(0, 0), Pt(5, 5), Pt(5, 5), Pt(10, 0), true},
		{"collinear overlap", Pt(0, 0), Pt(10, 0), Pt(5, 0), Pt(15, 0), true},
		{"collinear apart", Pt(0, 0), Pt(4, 0), Pt(5, 0), Pt(15, 0), false},
		{"t junction", Pt(0, 0), Pt(10, 0), Pt(5, -5), Pt(5, 0), true},
		{"near miss", Pt(0, 0), Pt(10, 0), Pt(5, 1), Pt(5, 10), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentsIntersect(tt.p1, tt.p2, tt.p3, tt.p4); got != tt.want {
				t.Errorf("SegmentsIntersect = %v, want %v", got, tt.want)
			}
			// Symmetric in argument order.
			if got := Seg(tt.p3, tt.p4).Intersects(Seg(tt.p1, tt.p2)); got != tt.want {
				t.Errorf("swapped Intersects = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegment(t *testing.T) {
	s := Seg(Pt(0, 0), Pt(6, 8))
	if s.Length() != 10 {
		t.Errorf("Length = %v, want 10", s.Length())
	}
	if s.Midpoint() != Pt(3, 4) {
		t.Errorf("Midpoint = %v, want (3,4)", s.Midpoint())
	}
	if r := s.Reverse(); r.A != s.B || r.B != s.A {
		t.Errorf("Reverse = %v", r)
	}
}

func TestSelfIntersections(t *testing.T) {
	bowtie := []Point{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 10}}
	ok, pairs := SelfIntersections(bowtie)
	if !ok {
		t.Fatal("bowtie should self-intersect")
	}
	if diff := cmp.Diff([][2]int{{0, 2}}, pairs); diff != "" {
		t.Errorf("pairs mismatch (-want +got):\n%s", diff)
	}

	if ok, _ := SelfIntersections(square(0, 0, 10)); ok {
		t.Error("square should not self-intersect")
	}
	if ok, _ := SelfIntersections([]Point{{X: 0, Y: 0}, {X: 1, Y: 1}}); ok {
		t.Error("two points cannot self-intersect")
	}
}

func TestNewEdgeCrosses(t *testing.T) {
	chain := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"closes square", Pt(0, 10), false},
		{"new edge crosses first edge", Pt(5, -5), true},
		{"closing edge crosses chain", Pt(20, 5), true},
		{"continues outward", Pt(5, 15), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewEdgeCrosses(chain, tt.p); got != tt.want {
				t.Errorf("NewEdgeCrosses(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}

	if NewEdgeCrosses([]Point{{X: 0, Y: 0}}, Pt(5, 5)) {
		t.Error("a single point has no edges to cross")
	}
}
