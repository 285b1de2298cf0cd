package collide

// ExpanderOption configures an Expander during creation.
//
// Example:
//
//	// No default growth; obstacles carry their own distances
//	ex := collide.NewExpander()
//
//	// Robot radius 12, always hull concave outlines
//	ex := collide.NewExpander(collide.WithDistance(12), collide.WithForceConvexHull(true))
type ExpanderOption func(*Expander)

// WithDistance sets the distance used for obstacles that do not carry
// their own.
func WithDistance(d float64) ExpanderOption {
	return func(e *Expander) {
		e.distance = d
	}
}

// WithForceConvexHull makes every obstacle use its convex hull before
// growth, regardless of its own setting.
func WithForceConvexHull(force bool) ExpanderOption {
	return func(e *Expander) {
		e.forceHull = force
	}
}

// WithMethodOverride makes every obstacle use m instead of its own method.
func WithMethodOverride(m Method) ExpanderOption {
	return func(e *Expander) {
		e.override = &m
	}
}

// DetectorOption configures a Detector during creation.
type DetectorOption func(*Detector)

// WithMinSpacing sets the clearance enforced between an obstacle outline
// and anything else. Default 5.
func WithMinSpacing(d float64) DetectorOption {
	return func(det *Detector) {
		det.minSpacing = d
	}
}

// WithBoxGap sets the clearance enforced between two collision boxes.
// Default 20.
func WithBoxGap(d float64) DetectorOption {
	return func(det *Detector) {
		det.boxGap = d
	}
}

// WithArcSamples sets how many segments approximate each rounded corner
// of a generalized collision box. Values below 1 are ignored.
func WithArcSamples(n int) DetectorOption {
	return func(det *Detector) {
		if n >= 1 {
			det.arcSamples = n
		}
	}
}

// WithExpander makes the detector grow collision boxes with ex.
func WithExpander(ex *Expander) DetectorOption {
	return func(det *Detector) {
		if ex != nil {
			det.expander = ex
		}
	}
}
