package collide

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// MinObstacleSize is the smallest width or height an obstacle may have.
const MinObstacleSize = 10

// ErrInvalidObstacle is returned by Obstacle.Validate.
var ErrInvalidObstacle = errors.New("collide: invalid obstacle")

// Direction names one side of an obstacle for directional expansion.
// North is up on screen (negative Y).
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

var directionNames = [...]string{North: "north", South: "south", East: "east", West: "west"}

// String returns the lower-case direction name.
func (d Direction) String() string {
	if d < North || d > West {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection parses "north", "south", "east" or "west".
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("collide: unknown direction %q", s)
}

// Directional holds per-side expansion distances. The values replace the
// uniform distance on their side rather than adding to it.
type Directional struct {
	North, South, East, West float64
}

// Uniform returns a Directional with all four sides set to d.
func Uniform(d float64) Directional {
	return Directional{North: d, South: d, East: d, West: d}
}

// Get returns the distance for one side.
func (d Directional) Get(dir Direction) float64 {
	switch dir {
	case North:
		return d.North
	case South:
		return d.South
	case East:
		return d.East
	case West:
		return d.West
	}
	return 0
}

// Set returns a copy with one side replaced.
func (d Directional) Set(dir Direction, v float64) Directional {
	switch dir {
	case North:
		d.North = v
	case South:
		d.South = v
	case East:
		d.East = v
	case West:
		d.West = v
	}
	return d
}

// Any reports whether any side is positive.
func (d Directional) Any() bool {
	return d.North > 0 || d.South > 0 || d.East > 0 || d.West > 0
}

// Max returns the largest side.
func (d Directional) Max() float64 {
	return math.Max(math.Max(d.North, d.South), math.Max(d.East, d.West))
}

// Mean returns the average of the four sides.
func (d Directional) Mean() float64 {
	return (d.North + d.South + d.East + d.West) / 4
}

// Expansion describes an obstacle's collision box.
type Expansion struct {
	// Distance is the uniform growth. Zero or less means no box.
	Distance float64

	// Method selects the corner treatment.
	Method Method

	// ForceConvexHull replaces the outline with its convex hull before
	// growing it, so concave pockets cannot trap a planner.
	ForceConvexHull bool

	// UseDirectional switches parametric kinds to per-side distances.
	UseDirectional bool

	Directional Directional
}

// directionalActive reports whether per-side distances drive the box.
func (e Expansion) directionalActive() bool {
	return e.UseDirectional && e.Directional.Any()
}

// Obstacle is a shape placed on the canvas.
type Obstacle struct {
	ID   string
	Kind Kind

	// X and Y are the top-left corner of the unrotated bounding box.
	X, Y          float64
	Width, Height float64

	// Rotation in degrees about the box centre, clockwise on screen.
	// Custom polygons ignore it.
	Rotation float64

	// Color is a hex fill colour such as "#6496c8".
	Color string

	// Points is the outline of a CustomPolygon, relative to (X, Y).
	Points []Point

	Expansion Expansion
}

// CanRotate reports whether the obstacle honours Rotation.
func (o Obstacle) CanRotate() bool {
	return o.Kind != CustomPolygon
}

// HasCollisionBox reports whether the obstacle grows a collision box.
func (o Obstacle) HasCollisionBox() bool {
	if o.Kind.Basic() && o.Expansion.directionalActive() {
		return true
	}
	return o.Expansion.Distance > 0
}

// Center returns the centre of the unrotated bounding box.
func (o Obstacle) Center() Point {
	return Point{X: o.X + o.Width/2, Y: o.Y + o.Height/2}
}

// Box returns the unrotated bounding box.
func (o Obstacle) Box() Rect {
	return Rect{Min: Point{X: o.X, Y: o.Y}, Max: Point{X: o.X + o.Width, Y: o.Y + o.Height}}
}

// LocalVertices returns the outline before rotation and translation.
func (o Obstacle) LocalVertices() []Point {
	if o.Kind == CustomPolygon && len(o.Points) > 0 {
		return slices.Clone(o.Points)
	}
	return LocalVertices(o.Kind, o.Width, o.Height)
}

// pivot returns the local rotation centre: the vertex mean for custom
// outlines, the box centre otherwise.
func (o Obstacle) pivot(local []Point) Point {
	if o.Kind == CustomPolygon {
		return Centroid(local)
	}
	return Point{X: o.Width / 2, Y: o.Height / 2}
}

// Vertices returns the outline in canvas coordinates.
func (o Obstacle) Vertices() []Point {
	local := o.LocalVertices()
	if o.Rotation != 0 && o.CanRotate() {
		local = transformAll(rotateAbout(o.Rotation, o.pivot(local)), local)
	}
	return translateAll(local, o.X, o.Y)
}

// Contains reports whether p lies inside the outline (even-odd rule).
func (o Obstacle) Contains(p Point) bool {
	return ContainsPoint(o.Vertices(), p)
}

// Clone returns a deep copy.
func (o Obstacle) Clone() Obstacle {
	o.Points = slices.Clone(o.Points)
	return o
}

// Validate checks that the obstacle can be drawn and expanded.
func (o Obstacle) Validate() error {
	if !o.Kind.Valid() {
		return fmt.Errorf("%w: %w", ErrInvalidObstacle, ErrUnknownKind)
	}
	if !o.Expansion.Method.Valid() {
		return fmt.Errorf("%w: %w", ErrInvalidObstacle, ErrUnknownMethod)
	}
	d := o.Expansion.Directional
	for _, v := range []float64{
		o.X, o.Y, o.Width, o.Height, o.Rotation, o.Expansion.Distance,
		d.North, d.South, d.East, d.West,
	} {
		if !finite(v) {
			return fmt.Errorf("%w: non-finite value", ErrInvalidObstacle)
		}
	}
	for i, p := range o.Points {
		if !finite(p.X) || !finite(p.Y) {
			return fmt.Errorf("%w: point %d is not finite", ErrInvalidObstacle, i)
		}
	}
	if o.Kind == CustomPolygon {
		if len(o.Points) < 3 {
			return fmt.Errorf("%w: custom polygon needs at least 3 points, has %d", ErrInvalidObstacle, len(o.Points))
		}
	} else if o.Width < MinObstacleSize || o.Height < MinObstacleSize {
		return fmt.Errorf("%w: %s is %gx%g, minimum is %dx%d",
			ErrInvalidObstacle, o.Kind, o.Width, o.Height, MinObstacleSize, MinObstacleSize)
	}
	if o.Expansion.Distance < 0 {
		return fmt.Errorf("%w: negative expansion distance %g", ErrInvalidObstacle, o.Expansion.Distance)
	}
	if d.North < 0 || d.South < 0 || d.East < 0 || d.West < 0 {
		return fmt.Errorf("%w: negative directional expansion", ErrInvalidObstacle)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
