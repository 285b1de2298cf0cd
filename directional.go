package collide

// Directional expansion gives each side of a parametric shape its own
// distance. North is up on screen.

// expandRectangleDirectional grows the unrotated box side by side, rotates
// the result about the original box centre and applies m to the corners.
func expandRectangleDirectional(o Obstacle, m Method) Region {
	d := o.Expansion.Directional
	w, h := o.Width, o.Height

	local := []Point{
		{X: -d.West, Y: -d.North},
		{X: w + d.East, Y: -d.North},
		{X: w + d.East, Y: h + d.South},
		{X: -d.West, Y: h + d.South},
	}
	if o.Rotation != 0 {
		local = transformAll(rotateAbout(o.Rotation, Point{X: w / 2, Y: h / 2}), local)
	}
	return directionalRegion(translateAll(local, o.X, o.Y), d, m)
}

// expandPolygonDirectional moves each edge of a triangle, pentagon or
// hexagon by the directional offset that matches its quadrant, projected on
// the edge normal. An edge whose midpoint lies above the centre takes the
// north distance, below takes south, and left or right of it west or east;
// diagonal edges combine both.
func expandPolygonDirectional(o Obstacle, m Method) Region {
	d := o.Expansion.Directional
	local := EnsureCounterClockwise(LocalVertices(o.Kind, o.Width, o.Height))
	center := Centroid(local)

	n := len(local)
	edges := make([]Segment, n)
	for i := range local {
		a, b := local[i], local[(i+1)%n]
		mid := a.Add(b).Div(2)

		var shift Point
		if mid.Y < center.Y {
			shift.Y -= d.North
		}
		if mid.Y > center.Y {
			shift.Y += d.South
		}
		if mid.X < center.X {
			shift.X -= d.West
		}
		if mid.X > center.X {
			shift.X += d.East
		}

		normal := outwardNormal(a, b)
		off := normal.Mul(shift.Dot(normal))
		edges[i] = Segment{A: a.Add(off), B: b.Add(off)}
	}

	verts := joinEdges(edges)
	if o.Rotation != 0 {
		verts = transformAll(rotateAbout(o.Rotation, center), verts)
	}
	return directionalRegion(translateAll(verts, o.X, o.Y), d, m)
}

// directionalRegion finishes a directional expansion. The grown outline is
// already the collision box: Generalized marks its corners with arcs of the
// largest side, Convex chamfers it by the mean side, PreserveShape keeps it.
func directionalRegion(verts []Point, d Directional, m Method) Region {
	switch m {
	case PreserveShape:
		return Region{Method: m, Polygon: verts, Directional: true}
	case Convex:
		return Region{Method: m, Polygon: chamfer(EnsureCounterClockwise(verts), d.Mean()), Directional: true}
	default:
		n := len(verts)
		edges := make([]Segment, n)
		for i := range verts {
			edges[i] = Segment{A: verts[i], B: verts[(i+1)%n]}
		}
		return Region{
			Method:      Generalized,
			Edges:       edges,
			ArcCenters:  verts,
			ArcRadius:   d.Max(),
			Directional: true,
		}
	}
}
