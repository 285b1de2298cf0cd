package collide

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownKind is returned for unrecognised obstacle kinds.
var ErrUnknownKind = errors.New("collide: unknown obstacle kind")

// Kind identifies the outline of an obstacle.
type Kind int

const (
	// Rectangle is an axis-aligned box of the obstacle's size.
	Rectangle Kind = iota

	// Triangle is isosceles, apex at the top centre of the box.
	Triangle

	// Pentagon is regular, inscribed in the box's shorter side.
	Pentagon

	// Hexagon is regular, inscribed in the box's shorter side.
	Hexagon

	// CustomPolygon is a user-authored outline stored in local coordinates.
	CustomPolygon
)

var kindNames = [...]string{
	Rectangle:     "rectangle",
	Triangle:      "triangle",
	Pentagon:      "pentagon",
	Hexagon:       "hexagon",
	CustomPolygon: "custom_polygon",
}

// Kinds returns every obstacle kind.
func Kinds() []Kind {
	return []Kind{Rectangle, Triangle, Pentagon, Hexagon, CustomPolygon}
}

// BasicKinds returns the parametric kinds that support directional
// expansion and rotation.
func BasicKinds() []Kind {
	return []Kind{Rectangle, Triangle, Pentagon, Hexagon}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k >= Rectangle && k <= CustomPolygon
}

// Basic reports whether k is parametric (not custom).
func (k Kind) Basic() bool {
	return k.Valid() && k != CustomPolygon
}

// String returns the identifier used in scene files.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Title returns the capitalised name shown in status messages.
func (k Kind) Title() string {
	switch k {
	case Rectangle:
		return "Rectangle"
	case Triangle:
		return "Triangle"
	case Pentagon:
		return "Pentagon"
	case Hexagon:
		return "Hexagon"
	case CustomPolygon:
		return "Custom Polygon"
	}
	return "Unknown"
}

// ParseKind parses a scene-file identifier.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// LocalVertices returns the outline of a parametric kind in its own box
// (0,0)-(w,h). CustomPolygon and unknown kinds fall back to the rectangle;
// custom outlines live on the obstacle itself.
func LocalVertices(k Kind, w, h float64) []Point {
	switch k {
	case Triangle:
		return []Point{{X: w / 2, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}}
	case Pentagon:
		return RegularPolygon(w/2, h/2, math.Min(w, h)/2, 5)
	case Hexagon:
		return RegularPolygon(w/2, h/2, math.Min(w, h)/2, 6)
	default:
		return []Point{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}}
	}
}
