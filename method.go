package collide

import (
	"errors"
	"fmt"
)

// ErrUnknownMethod is returned when an expansion method name or value is
// not recognised.
var ErrUnknownMethod = errors.New("collide: unknown expansion method")

// Method selects how an obstacle outline is grown into its collision box.
type Method int

const (
	// Generalized pushes every edge out and rounds the corners with arcs
	// centred on the original vertices. It is the zero value.
	Generalized Method = iota

	// PreserveShape pushes every edge out and extends adjacent edges until
	// they meet.
	PreserveShape

	// Convex replaces every corner with the two points reached along the
	// normals of its adjacent edges.
	Convex
)

var methodNames = [...]string{
	Generalized:   "generalized",
	PreserveShape: "preserve_shape",
	Convex:        "convex",
}

var methodLabels = [...]string{
	Generalized:   "Generalized (Arcs)",
	PreserveShape: "Maintain Shape",
	Convex:        "Convex Hull",
}

// Methods returns every expansion method in menu order.
func Methods() []Method {
	return []Method{Generalized, PreserveShape, Convex}
}

// Valid reports whether m is a known method.
func (m Method) Valid() bool {
	return m >= Generalized && m <= Convex
}

// String returns the identifier used in scene files.
func (m Method) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// Name returns the human-readable label, or "Unknown".
func (m Method) Name() string {
	if !m.Valid() {
		return "Unknown"
	}
	return methodLabels[m]
}

// Next cycles to the following method in menu order.
func (m Method) Next() Method {
	all := Methods()
	for i, v := range all {
		if v == m {
			return all[(i+1)%len(all)]
		}
	}
	return Generalized
}

// ParseMethod parses a scene-file identifier. Matching is exact; the empty
// string selects Generalized.
func ParseMethod(s string) (Method, error) {
	if s == "" {
		return Generalized, nil
	}
	for i, name := range methodNames {
		if name == s {
			return Method(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int(m))
	}
	return []byte(methodNames[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(b []byte) error {
	v, err := ParseMethod(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
