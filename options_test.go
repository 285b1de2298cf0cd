package collide

import (
	"testing"
)

func TestNewExpanderDefaults(t *testing.T) {
	ex := NewExpander()
	if ex.Distance() != 0 {
		t.Errorf("Distance() = %v, want 0", ex.Distance())
	}
	if ex.forceHull {
		t.Error("forceHull should default to false")
	}
	if ex.override != nil {
		t.Error("override should default to nil")
	}
}

func TestExpanderOptions(t *testing.T) {
	ex := NewExpander(WithDistance(12), WithForceConvexHull(true), WithMethodOverride(Convex))
	if ex.Distance() != 12 {
		t.Errorf("Distance() = %v, want 12", ex.Distance())
	}
	if !ex.forceHull {
		t.Error("WithForceConvexHull not applied")
	}

	o := Obstacle{Kind: Rectangle, Width: 20, Height: 20, Expansion: Expansion{Method: PreserveShape}}
	if got := ex.method(o); got != Convex {
		t.Errorf("method() = %v, want convex", got)
	}
}

func TestExpanderFallbackDistance(t *testing.T) {
	o := Obstacle{Kind: Rectangle, Width: 20, Height: 20, Expansion: Expansion{Method: PreserveShape}}

	if _, ok, err := NewExpander().Expand(o); err != nil || ok {
		t.Fatalf("Expand without distance = ok %v, err %v; want no box", ok, err)
	}

	r, ok, err := NewExpander(WithDistance(5)).Expand(o)
	if err != nil || !ok {
		t.Fatalf("Expand with fallback = ok %v, err %v", ok, err)
	}
	b := r.Bounds()
	if b.Width() != 30 || b.Height() != 30 {
		t.Errorf("fallback box = %+v, want 30x30", b)
	}
}

func TestDetectorDefaults(t *testing.T) {
	d := NewDetector()
	if d.MinSpacing() != DefaultMinSpacing {
		t.Errorf("MinSpacing() = %v, want %v", d.MinSpacing(), DefaultMinSpacing)
	}
	if d.BoxGap() != DefaultBoxGap {
		t.Errorf("BoxGap() = %v, want %v", d.BoxGap(), DefaultBoxGap)
	}
	if d.ArcSamples() != DefaultArcSamples {
		t.Errorf("ArcSamples() = %v, want %v", d.ArcSamples(), DefaultArcSamples)
	}
	if d.Expander() == nil {
		t.Error("Expander() is nil")
	}
}

func TestWithExpander(t *testing.T) {
	ex := NewExpander(WithDistance(3))
	if got := NewDetector(WithExpander(ex)).Expander(); got != ex {
		t.Error("WithExpander not applied")
	}
	if NewDetector(WithExpander(nil)).Expander() == nil {
		t.Error("WithExpander(nil) should keep the default")
	}
	if got := NewDetector(WithArcSamples(9)).ArcSamples(); got != 9 {
		t.Errorf("ArcSamples() = %d, want 9", got)
	}
}
