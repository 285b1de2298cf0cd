// Package scene reads and writes obstacle scenes.
//
// A scene file holds the canvas dimensions and every obstacle with its
// collision box settings. YAML and JSON are supported; the format follows
// the file extension. Files are written atomically so a crash never leaves
// a truncated scene, and a Watcher reports edits made by other programs.
package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/gogpu/collide"
)

// Version is the scene format written by this package.
const Version = 1

// Canvas limits. A zero width or height means the viewer's default size
// and a zero grid turns the grid off.
const (
	MaxCanvasSize = 16384
	MinGrid       = 1
)

// Errors returned by the package.
var (
	ErrUnknownFormat      = errors.New("scene: unknown file format")
	ErrUnsupportedVersion = errors.New("scene: unsupported version")
	ErrDuplicateID        = errors.New("scene: duplicate obstacle id")
	ErrInvalidCanvas      = errors.New("scene: invalid canvas")
)

// Document is the on-disk form of a scene.
type Document struct {
	Version   int        `yaml:"version" json:"version"`
	Canvas    Canvas     `yaml:"canvas" json:"canvas"`
	Obstacles []Obstacle `yaml:"obstacles" json:"obstacles"`
}

// Canvas holds the drawing area settings.
type Canvas struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
	Grid   float64 `yaml:"grid,omitempty" json:"grid,omitempty"`
}

// Validate checks the canvas size and grid against the package limits.
func (c Canvas) Validate() error {
	for _, side := range []struct {
		name string
		v    float64
	}{{"width", c.Width}, {"height", c.Height}} {
		if math.IsNaN(side.v) || side.v < 0 || side.v > MaxCanvasSize {
			return fmt.Errorf("%w: %s %g outside 0..%d", ErrInvalidCanvas, side.name, side.v, MaxCanvasSize)
		}
	}
	if c.Grid != 0 && (math.IsNaN(c.Grid) || c.Grid < MinGrid || c.Grid > MaxCanvasSize) {
		return fmt.Errorf("%w: grid %g must be 0 or %d..%d", ErrInvalidCanvas, c.Grid, MinGrid, MaxCanvasSize)
	}
	return nil
}

// Obstacle is the on-disk form of collide.Obstacle.
type Obstacle struct {
	ID       string       `yaml:"id,omitempty" json:"id,omitempty"`
	Type     collide.Kind `yaml:"type" json:"type"`
	X        float64      `yaml:"x" json:"x"`
	Y        float64      `yaml:"y" json:"y"`
	Width    float64      `yaml:"width" json:"width"`
	Height   float64      `yaml:"height" json:"height"`
	Rotation float64      `yaml:"rotation,omitempty" json:"rotation,omitempty"`
	Color    string       `yaml:"color,omitempty" json:"color,omitempty"`
	Points   []Point      `yaml:"points,omitempty" json:"points,omitempty"`

	Expansion *Expansion `yaml:"expansion,omitempty" json:"expansion,omitempty"`
}

// Point is a vertex of a custom polygon, relative to the obstacle corner.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Expansion is the on-disk form of collide.Expansion.
type Expansion struct {
	Distance        float64        `yaml:"distance" json:"distance"`
	Method          collide.Method `yaml:"method" json:"method"`
	ForceConvexHull bool           `yaml:"force_convex_hull,omitempty" json:"force_convex_hull,omitempty"`
	UseDirectional  bool           `yaml:"use_directional,omitempty" json:"use_directional,omitempty"`
	Directional     *Directional   `yaml:"directional,omitempty" json:"directional,omitempty"`
}

// Directional holds per-side distances.
type Directional struct {
	North float64 `yaml:"north" json:"north"`
	South float64 `yaml:"south" json:"south"`
	East  float64 `yaml:"east" json:"east"`
	West  float64 `yaml:"west" json:"west"`
}

// New returns an empty document for a canvas of the given size.
func New(width, height, grid float64) Document {
	return Document{
		Version: Version,
		Canvas:  Canvas{Width: width, Height: height, Grid: grid},
	}
}

// FromObstacles builds a document from obstacles.
func FromObstacles(c Canvas, obstacles []collide.Obstacle) Document {
	d := Document{Version: Version, Canvas: c, Obstacles: make([]Obstacle, len(obstacles))}
	for i, o := range obstacles {
		d.Obstacles[i] = fromObstacle(o)
	}
	return d
}

func fromObstacle(o collide.Obstacle) Obstacle {
	out := Obstacle{
		ID:       o.ID,
		Type:     o.Kind,
		X:        o.X,
		Y:        o.Y,
		Width:    o.Width,
		Height:   o.Height,
		Rotation: o.Rotation,
		Color:    o.Color,
	}
	if o.Kind == collide.CustomPolygon {
		out.Points = make([]Point, len(o.Points))
		for i, p := range o.Points {
			out.Points[i] = Point{X: p.X, Y: p.Y}
		}
	}

	e := o.Expansion
	if e.Distance > 0 || e.UseDirectional || e.Directional.Any() || e.ForceConvexHull || e.Method != collide.Generalized {
		out.Expansion = &Expansion{
			Distance:        e.Distance,
			Method:          e.Method,
			ForceConvexHull: e.ForceConvexHull,
			UseDirectional:  e.UseDirectional,
		}
		if e.Directional.Any() {
			dir := Directional(e.Directional)
			out.Expansion.Directional = &dir
		}
	}
	return out
}

// Obstacle converts the on-disk form back to a collide.Obstacle.
func (o Obstacle) Obstacle() collide.Obstacle {
	out := collide.Obstacle{
		ID:       o.ID,
		Kind:     o.Type,
		X:        o.X,
		Y:        o.Y,
		Width:    o.Width,
		Height:   o.Height,
		Rotation: o.Rotation,
		Color:    o.Color,
	}
	if len(o.Points) > 0 {
		out.Points = make([]collide.Point, len(o.Points))
		for i, p := range o.Points {
			out.Points[i] = collide.Pt(p.X, p.Y)
		}
	}
	if e := o.Expansion; e != nil {
		out.Expansion = collide.Expansion{
			Distance:        e.Distance,
			Method:          e.Method,
			ForceConvexHull: e.ForceConvexHull,
			UseDirectional:  e.UseDirectional,
		}
		if e.Directional != nil {
			out.Expansion.Directional = collide.Directional(*e.Directional)
		}
	}
	return out
}

// Validate checks the version, the canvas, every obstacle and ID
// uniqueness.
func (d Document) Validate() error {
	if d.Version > Version {
		return fmt.Errorf("%w: %d (newest is %d)", ErrUnsupportedVersion, d.Version, Version)
	}
	if err := d.Canvas.Validate(); err != nil {
		return err
	}
	seen := make(map[string]int, len(d.Obstacles))
	for i, o := range d.Obstacles {
		if err := o.Obstacle().Validate(); err != nil {
			return fmt.Errorf("scene: obstacle %d: %w", i, err)
		}
		if o.ID == "" {
			continue
		}
		if j, dup := seen[o.ID]; dup {
			return fmt.Errorf("%w: %q at %d and %d", ErrDuplicateID, o.ID, j, i)
		}
		seen[o.ID] = i
	}
	return nil
}

// Resolve validates the document and returns its obstacles. Obstacles
// stored without an ID get a fresh one.
func (d Document) Resolve() ([]collide.Obstacle, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	out := make([]collide.Obstacle, len(d.Obstacles))
	for i, o := range d.Obstacles {
		out[i] = o.Obstacle()
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
	}
	return out, nil
}
