package editor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/collide"
)

// Errors returned by property edits. The status message carries the
// wording shown to the user.
var (
	ErrNoSelection  = errors.New("editor: no obstacle selected")
	ErrInvalidValue = errors.New("editor: invalid value")
	ErrOverlap      = errors.New("editor: would overlap another obstacle")
	ErrNotSupported = errors.New("editor: not supported for this obstacle")
)

// Property names accepted by SetProperty.
const (
	PropX        = "x"
	PropY        = "y"
	PropWidth    = "width"
	PropHeight   = "height"
	PropRotation = "rotation"
)

// SetProperty edits one geometric property of the selection from text.
// Position and size take whole pixels; size must stay at least the
// minimum obstacle size. Rotation takes degrees, is normalised to
// [0, 360) and is refused for custom polygons. A position or size change
// that would collide is reverted.
func (e *Editor) SetProperty(name, value string) error {
	i := e.selectedIndex()
	if i < 0 {
		return ErrNoSelection
	}
	o := e.obstacles[i]
	value = strings.TrimSpace(value)

	if name == PropRotation {
		if !o.CanRotate() {
			e.setStatus("Custom polygons cannot be rotated", longStatus)
			return ErrNotSupported
		}
		deg, err := strconv.ParseFloat(value, 64)
		if err != nil {
			e.setStatus("Invalid value entered", longStatus)
			return fmt.Errorf("%w: %q", ErrInvalidValue, value)
		}
		e.history.Push(e.obstacles)
		e.obstacles[i].Rotation = normalizeDegrees(deg)
		e.touch()
		e.setStatus("Property rotation updated", shortStatus)
		return nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		e.setStatus("Invalid value entered", longStatus)
		return fmt.Errorf("%w: %q", ErrInvalidValue, value)
	}
	v := float64(n)

	next := o
	switch name {
	case PropX:
		next.X = v
	case PropY:
		next.Y = v
	case PropWidth:
		if v < collide.MinObstacleSize {
			e.setStatus(fmt.Sprintf("Width must be at least %d pixels", collide.MinObstacleSize), longStatus)
			return fmt.Errorf("%w: width %d", ErrInvalidValue, n)
		}
		next = reshape(o, o.X, o.Y, v, o.Height)
	case PropHeight:
		if v < collide.MinObstacleSize {
			e.setStatus(fmt.Sprintf("Height must be at least %d pixels", collide.MinObstacleSize), longStatus)
			return fmt.Errorf("%w: height %d", ErrInvalidValue, n)
		}
		next = reshape(o, o.X, o.Y, o.Width, v)
	default:
		e.setStatus(fmt.Sprintf("Unknown property %q", name), longStatus)
		return fmt.Errorf("%w: unknown property %q", ErrInvalidValue, name)
	}

	if e.det.Overlaps(next, e.obstacles, o.ID) {
		e.setStatus("Cannot apply change: Would overlap with another obstacle", longStatus)
		return ErrOverlap
	}
	e.history.Push(e.obstacles)
	e.obstacles[i] = next
	e.touch()
	e.setStatus(fmt.Sprintf("Property %s updated", name), shortStatus)
	return nil
}

// ApplyCollisionBox gives the selection a uniform collision box of the
// given distance and method. Parametric kinds get every directional side
// seeded with the same distance, and directional mode is switched off.
func (e *Editor) ApplyCollisionBox(distance float64, m collide.Method) error {
	i := e.selectedIndex()
	if i < 0 {
		return ErrNoSelection
	}
	if distance <= 0 {
		e.setStatus("Expansion distance must be greater than 0", longStatus)
		return fmt.Errorf("%w: distance %g", ErrInvalidValue, distance)
	}
	if !m.Valid() {
		e.setStatus("Unknown expansion method", longStatus)
		return fmt.Errorf("%w: %w", ErrInvalidValue, collide.ErrUnknownMethod)
	}

	e.history.Push(e.obstacles)
	o := &e.obstacles[i]
	o.Expansion.Distance = distance
	o.Expansion.Method = m
	o.Expansion.UseDirectional = false
	if o.Kind.Basic() {
		o.Expansion.Directional = collide.Uniform(distance)
	}
	e.touch()

	mode := ""
	if o.Kind == collide.CustomPolygon {
		if o.Expansion.ForceConvexHull {
			mode = " (Convex mode)"
		} else {
			mode = " (Concave mode)"
		}
	}
	e.setStatus(fmt.Sprintf("Uniform collision box added: %gpx using %s%s", distance, m.Name(), mode), longStatus)
	return nil
}

// RemoveCollisionBox clears the selection's collision box.
func (e *Editor) RemoveCollisionBox() error {
	i := e.selectedIndex()
	if i < 0 {
		return ErrNoSelection
	}
	e.history.Push(e.obstacles)
	o := &e.obstacles[i]
	o.Expansion.Distance = 0
	o.Expansion.UseDirectional = false
	o.Expansion.Directional = collide.Directional{}
	e.touch()
	e.setStatus("Collision box removed", shortStatus)
	return nil
}

// SetDirectional sets one side of the selection's directional expansion
// and switches directional mode on. Only parametric kinds support it.
func (e *Editor) SetDirectional(dir collide.Direction, value float64) error {
	i := e.selectedIndex()
	if i < 0 {
		return ErrNoSelection
	}
	o := &e.obstacles[i]
	if !o.Kind.Basic() {
		e.setStatus(fmt.Sprintf("Directional expansion not supported for %s", o.Kind), longStatus)
		return ErrNotSupported
	}
	if value < 0 {
		e.setStatus("Expansion value must be non-negative", longStatus)
		return fmt.Errorf("%w: %g", ErrInvalidValue, value)
	}

	e.history.Push(e.obstacles)
	o = &e.obstacles[i]
	o.Expansion.Directional = o.Expansion.Directional.Set(dir, value)
	o.Expansion.UseDirectional = true
	e.touch()
	e.setStatus(fmt.Sprintf("Directional expansion (%s): %gpx applied", dir, value), shortStatus)
	return nil
}

// SetConvexHull sets whether a custom polygon is hulled before growing.
func (e *Editor) SetConvexHull(on bool) error {
	i := e.selectedIndex()
	if i < 0 {
		return ErrNoSelection
	}
	if e.obstacles[i].Kind != collide.CustomPolygon {
		e.setStatus("Convex hull toggle only applies to custom polygons", longStatus)
		return ErrNotSupported
	}

	e.history.Push(e.obstacles)
	e.obstacles[i].Expansion.ForceConvexHull = on
	e.touch()
	if on {
		e.setStatus("Convex hull mode enabled - custom polygon will be converted to convex", longStatus)
	} else {
		e.setStatus("Concave mode enabled - custom polygon shape will be preserved", longStatus)
	}
	return nil
}

// CycleMethod switches the selection to the next expansion method.
func (e *Editor) CycleMethod() (collide.Method, error) {
	i := e.selectedIndex()
	if i < 0 {
		return 0, ErrNoSelection
	}
	e.history.Push(e.obstacles)
	m := e.obstacles[i].Expansion.Method.Next()
	e.obstacles[i].Expansion.Method = m
	e.touch()
	e.setStatus("Expansion method: "+m.Name(), shortStatus)
	return m, nil
}

// SetColor sets the selection's fill colour.
func (e *Editor) SetColor(hex string) error {
	i := e.selectedIndex()
	if i < 0 {
		return ErrNoSelection
	}
	if !validHex(hex) {
		e.setStatus("Invalid colour "+hex, longStatus)
		return fmt.Errorf("%w: colour %q", ErrInvalidValue, hex)
	}
	e.history.Push(e.obstacles)
	e.obstacles[i].Color = hex
	e.touch()
	e.setStatus("Property color updated", shortStatus)
	return nil
}

// validHex accepts #rgb and #rrggbb.
func validHex(s string) bool {
	if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7) {
		return false
	}
	_, err := strconv.ParseUint(s[1:], 16, 32)
	return err == nil
}
