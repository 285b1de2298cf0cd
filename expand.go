package collide

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Expander grows obstacles into collision boxes. The zero value is not
// usable; create one with NewExpander. An Expander is immutable and safe
// for concurrent use.
type Expander struct {
	distance  float64
	forceHull bool
	override  *Method
}

// NewExpander creates an Expander. Without options it adds no growth of
// its own, so only obstacles with a positive distance get a box.
func NewExpander(opts ...ExpanderOption) *Expander {
	e := &Expander{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Distance returns the fallback distance.
func (e *Expander) Distance() float64 {
	return e.distance
}

// method resolves the method used for o.
func (e *Expander) method(o Obstacle) Method {
	if e.override != nil {
		return *e.override
	}
	return o.Expansion.Method
}

// Expand grows o. The boolean is false when the obstacle has no collision
// box (no positive distance and no directional sides).
//
// Parametric kinds with directional expansion enabled use their per-side
// distances. Otherwise the obstacle's distance is used, falling back to the
// Expander's. The outline is replaced by its convex hull when either the
// obstacle or the Expander asks for it.
func (e *Expander) Expand(o Obstacle) (Region, bool, error) {
	m := e.method(o)
	if !m.Valid() {
		return Region{}, false, fmt.Errorf("%w: %d", ErrUnknownMethod, int(m))
	}

	if o.Expansion.directionalActive() {
		switch o.Kind {
		case Rectangle:
			return expandRectangleDirectional(o, m), true, nil
		case Triangle, Pentagon, Hexagon:
			return expandPolygonDirectional(o, m), true, nil
		}
	}

	d := o.Expansion.Distance
	if d <= 0 {
		d = e.distance
	}
	if d <= 0 {
		return Region{}, false, nil
	}

	verts := o.Vertices()
	if len(verts) < 3 {
		return Region{}, false, fmt.Errorf("%w: %d vertices", ErrInvalidObstacle, len(verts))
	}
	if o.Expansion.ForceConvexHull || e.forceHull {
		verts = ConvexHull(verts)
	}

	Logger().Debug("collide: expand", "id", o.ID, "kind", o.Kind, "method", m, "distance", d)
	return expandVertices(verts, d, m), true, nil
}

// expandVertices applies m to a world-space outline.
func expandVertices(verts []Point, d float64, m Method) Region {
	switch m {
	case PreserveShape:
		return Region{Method: m, Polygon: PreserveShapeExpand(verts, d)}
	case Convex:
		return Region{Method: m, Polygon: ConvexExpand(verts, d)}
	default:
		edges, centers := GeneralizedExpand(verts, d)
		return Region{Method: Generalized, Edges: edges, ArcCenters: centers, ArcRadius: d}
	}
}

// offsetEdges orients verts counter-clockwise and pushes every edge out by
// d along its outward normal.
func offsetEdges(verts []Point, d float64) ([]Point, []Segment) {
	ccw := EnsureCounterClockwise(verts)
	n := len(ccw)
	edges := make([]Segment, n)
	for i := range ccw {
		a, b := ccw[i], ccw[(i+1)%n]
		off := outwardNormal(a, b).Mul(d)
		edges[i] = Segment{A: a.Add(off), B: b.Add(off)}
	}
	return ccw, edges
}

// joinEdges intersects each offset edge with the next one.
func joinEdges(edges []Segment) []Point {
	n := len(edges)
	out := make([]Point, n)
	for i := range edges {
		cur, next := edges[i], edges[(i+1)%n]
		out[i] = LineIntersection(cur.A, cur.B, next.A, next.B)
	}
	return out
}

// PreserveShapeExpand grows the outline by d, keeping its silhouette:
// every edge moves out by d and adjacent edges are extended to meet.
// Vertex i of the result is the corner between edges i and i+1 of the
// counter-clockwise outline.
func PreserveShapeExpand(verts []Point, d float64) []Point {
	_, edges := offsetEdges(verts, d)
	return joinEdges(edges)
}

// ConvexExpand replaces every corner with two points: the corner pushed
// by d along the previous edge's outward normal, then along the next
// edge's. The result has twice as many vertices as the input.
func ConvexExpand(verts []Point, d float64) []Point {
	ccw := EnsureCounterClockwise(verts)
	return chamfer(ccw, d)
}

// chamfer is ConvexExpand on an outline that is already oriented.
func chamfer(ccw []Point, d float64) []Point {
	n := len(ccw)
	out := make([]Point, 0, 2*n)
	for i := range ccw {
		cur := ccw[i]
		prev := ccw[(i-1+n)%n]
		next := ccw[(i+1)%n]
		out = append(out,
			cur.Add(outwardNormal(prev, cur).Mul(d)),
			cur.Add(outwardNormal(cur, next).Mul(d)),
		)
	}
	return out
}

// GeneralizedExpand returns the offset edges of the counter-clockwise
// outline and the arc centres (its vertices) that round the corners with
// radius d.
func GeneralizedExpand(verts []Point, d float64) ([]Segment, []Point) {
	ccw, edges := offsetEdges(verts, d)
	return edges, ccw
}

// ExpandAll grows every obstacle concurrently. Results keep the input
// order; obstacles without a collision box are omitted. An obstacle that
// fails to expand is logged and skipped, so one bad entry does not hide
// the rest of the scene. The only error returned is ctx's.
//
// To expand a whole scene with one method, build ex with
// WithMethodOverride.
func ExpandAll(ctx context.Context, ex *Expander, obstacles []Obstacle) ([]Expanded, error) {
	type slot struct {
		region Region
		ok     bool
	}
	slots := make([]slot, len(obstacles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range obstacles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, ok, err := ex.Expand(obstacles[i])
			if err != nil {
				Logger().Warn("collide: failed to expand obstacle", "id", obstacles[i].ID, "err", err)
				return nil
			}
			slots[i] = slot{region: r, ok: ok}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Expanded, 0, len(obstacles))
	for i, s := range slots {
		if s.ok {
			out = append(out, Expanded{Obstacle: obstacles[i], Region: s.region})
		}
	}
	return out, nil
}
