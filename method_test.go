package collide

import (
	"errors"
	"testing"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{"generalized", Generalized, false},
		{"preserve_shape", PreserveShape, false},
		{"convex", Convex, false},
		{"", Generalized, false},
		{"Convex", 0, true},
		{"arcs", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMethod(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownMethod) {
					t.Fatalf("ParseMethod(%q) err = %v, want ErrUnknownMethod", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMethod(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseMethod(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMethodNames(t *testing.T) {
	tests := []struct {
		m    Method
		name string
	}{
		{Generalized, "Generalized (Arcs)"},
		{PreserveShape, "Maintain Shape"},
		{Convex, "Convex Hull"},
		{Method(7), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.m.Name(); got != tt.name {
			t.Errorf("Method(%d).Name() = %q, want %q", int(tt.m), got, tt.name)
		}
	}
	if got := Method(-1).String(); got != "Method(-1)" {
		t.Errorf("String of invalid method = %q", got)
	}
}

func TestMethodNext(t *testing.T) {
	m := Generalized
	seen := map[Method]bool{}
	for range Methods() {
		seen[m] = true
		m = m.Next()
	}
	if m != Generalized {
		t.Errorf("cycling through all methods ended at %v", m)
	}
	if len(seen) != 3 {
		t.Errorf("Next visited %d methods, want 3", len(seen))
	}
}

func TestMethodText(t *testing.T) {
	b, err := PreserveShape.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	var m Method
	if err := m.UnmarshalText(b); err != nil {
		t.Fatal(err)
	}
	if m != PreserveShape {
		t.Errorf("round trip gave %v", m)
	}
	if _, err := Method(9).MarshalText(); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("MarshalText of invalid method err = %v", err)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", k.String(), err)
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %v", k.String(), got)
		}
	}
	if _, err := ParseKind("circle"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("ParseKind(circle) err = %v, want ErrUnknownKind", err)
	}
	if CustomPolygon.Basic() {
		t.Error("custom polygon is not a basic kind")
	}
	if got := CustomPolygon.Title(); got != "Custom Polygon" {
		t.Errorf("Title = %q", got)
	}
}

func TestLocalVertices(t *testing.T) {
	tests := []struct {
		kind Kind
		n    int
	}{
		{Rectangle, 4},
		{Triangle, 3},
		{Pentagon, 5},
		{Hexagon, 6},
		{CustomPolygon, 4},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			pts := LocalVertices(tt.kind, 40, 30)
			if len(pts) != tt.n {
				t.Fatalf("len = %d, want %d", len(pts), tt.n)
			}
			b := Bounds(pts)
			if b.Min.X < -1e-9 || b.Min.Y < -1e-9 || b.Max.X > 40+1e-9 || b.Max.Y > 30+1e-9 {
				t.Errorf("outline %+v escapes its 40x30 box", b)
			}
		})
	}
}
