package collide

// Default clearances enforced by a Detector.
const (
	// DefaultMinSpacing separates an obstacle outline from anything else.
	DefaultMinSpacing = 5

	// DefaultBoxGap separates two collision boxes.
	DefaultBoxGap = 20
)

// Detector checks obstacles against each other. Create one with
// NewDetector; a Detector is immutable and safe for concurrent use.
type Detector struct {
	minSpacing float64
	boxGap     float64
	arcSamples int
	expander   *Expander
}

// NewDetector creates a Detector with the default clearances.
func NewDetector(opts ...DetectorOption) *Detector {
	d := &Detector{
		minSpacing: DefaultMinSpacing,
		boxGap:     DefaultBoxGap,
		arcSamples: DefaultArcSamples,
		expander:   NewExpander(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// MinSpacing returns the outline clearance.
func (d *Detector) MinSpacing() float64 { return d.minSpacing }

// BoxGap returns the collision box clearance.
func (d *Detector) BoxGap() float64 { return d.boxGap }

// ArcSamples returns the number of segments per rounded corner.
func (d *Detector) ArcSamples() int { return d.arcSamples }

// Expander returns the expander used for collision boxes.
func (d *Detector) Expander() *Expander { return d.expander }

// BoxOutline returns the polygon approximating o's collision box, or nil
// when o has none.
func (d *Detector) BoxOutline(o Obstacle) []Point {
	r, ok, err := d.expander.Expand(o)
	if err != nil {
		Logger().Warn("collide: collision box unavailable", "id", o.ID, "err", err)
		return nil
	}
	if !ok {
		return nil
	}
	return r.Outline(d.arcSamples)
}

// Overlaps reports whether o is too close to any obstacle in others.
// An entry whose ID equals exclude is skipped, so an obstacle can be
// checked against the scene it belongs to.
//
// Three clearances apply to each pair: outline to outline keeps
// MinSpacing; when both have collision boxes, box to box keeps BoxGap;
// and each box keeps MinSpacing from the other outline.
func (d *Detector) Overlaps(o Obstacle, others []Obstacle, exclude string) bool {
	return d.firstHit(o, others, exclude) >= 0
}

// firstHit returns the index of the first obstacle o collides with, or -1.
func (d *Detector) firstHit(o Obstacle, others []Obstacle, exclude string) int {
	outline := o.Vertices()
	box := d.BoxOutline(o)

	for i, other := range others {
		if exclude != "" && other.ID == exclude {
			continue
		}
		if d.pairOverlaps(outline, box, other) {
			return i
		}
	}
	return -1
}

func (d *Detector) pairOverlaps(outline, box []Point, other Obstacle) bool {
	return d.shapesOverlap(outline, box, other.Vertices(), d.BoxOutline(other))
}

func (d *Detector) shapesOverlap(outline, box, otherOutline, otherBox []Point) bool {
	if PolygonsOverlap(outline, otherOutline, d.minSpacing) {
		return true
	}
	if len(box) >= 3 && len(otherBox) >= 3 && PolygonsOverlap(box, otherBox, d.boxGap) {
		return true
	}
	if len(box) >= 3 && PolygonsOverlap(box, otherOutline, d.minSpacing) {
		return true
	}
	if len(otherBox) >= 3 && PolygonsOverlap(outline, otherBox, d.minSpacing) {
		return true
	}
	return false
}

// Collision names two obstacles that are too close, by index.
type Collision struct {
	A, B int
}

// BoxFunc returns the collision box outline of an obstacle, or nil when it
// has none.
type BoxFunc func(Obstacle) []Point

// Collisions returns every pair of obstacles in the scene that violates a
// clearance, each pair once with A < B.
func (d *Detector) Collisions(obstacles []Obstacle) []Collision {
	return d.CollisionsWith(obstacles, d.BoxOutline)
}

// CollisionsWith is Collisions with box outlines taken from box, which is
// called once per obstacle. A caller keeping boxes between frames passes
// its cache here.
func (d *Detector) CollisionsWith(obstacles []Obstacle, box BoxFunc) []Collision {
	outlines := make([][]Point, len(obstacles))
	boxes := make([][]Point, len(obstacles))
	for i, o := range obstacles {
		outlines[i] = o.Vertices()
		boxes[i] = box(o)
	}

	var out []Collision
	for i := range obstacles {
		for j := i + 1; j < len(obstacles); j++ {
			if d.shapesOverlap(outlines[i], boxes[i], outlines[j], boxes[j]) {
				out = append(out, Collision{A: i, B: j})
			}
		}
	}
	return out
}

// ObstacleAt returns the index of the topmost obstacle containing p, or -1.
// Later obstacles are drawn above earlier ones.
func (d *Detector) ObstacleAt(p Point, obstacles []Obstacle) int {
	for i := len(obstacles) - 1; i >= 0; i-- {
		if obstacles[i].Contains(p) {
			return i
		}
	}
	return -1
}

// PolygonsOverlap reports whether two polygons share any area. With a
// positive spacing, a is first replaced by its bounding box grown by
// spacing on every side, so nearby polygons also count as overlapping.
func PolygonsOverlap(a, b []Point, spacing float64) bool {
	if len(a) < 3 || len(b) < 3 {
		return false
	}
	if spacing > 0 {
		a = Bounds(a).Inflate(spacing).Polygon()
	}

	// Cheap reject on boxes first.
	ba, bb := Bounds(a), Bounds(b)
	if ba.Max.X < bb.Min.X || bb.Max.X < ba.Min.X || ba.Max.Y < bb.Min.Y || bb.Max.Y < ba.Min.Y {
		return false
	}

	na, nb := len(a), len(b)
	for i := 0; i < na; i++ {
		for j := 0; j < nb; j++ {
			if SegmentsIntersect(a[i], a[(i+1)%na], b[j], b[(j+1)%nb]) {
				return true
			}
		}
	}
	return ContainsPoint(b, a[0]) || ContainsPoint(a, b[0])
}
