// Package collide grows 2D obstacles into collision boxes for path planning.
//
// # Overview
//
// A robot moving among obstacles can be reduced to a single point if every
// obstacle is grown by the robot radius. collide computes that growth for
// rectangles, triangles, regular pentagons and hexagons, and free-form
// polygons authored by the user, and checks the grown regions against each
// other so a scene keeps a minimum clearance between them.
//
// # Quick Start
//
//	ob := collide.Obstacle{
//	    Kind: collide.Rectangle, X: 100, Y: 100, Width: 80, Height: 40,
//	    Expansion: collide.Expansion{Distance: 15, Method: collide.Generalized},
//	}
//	region, ok, err := collide.NewExpander().Expand(ob)
//
// # Expansion Methods
//
//   - [Generalized]: edges pushed outward, joined by circular arcs around the
//     original corners. Uniform clearance everywhere; the safest choice.
//   - [PreserveShape]: edges pushed outward and extended until adjacent
//     edges meet. Keeps the silhouette but overshoots at sharp corners.
//   - [Convex]: each corner replaced by the two points reached along the
//     adjacent edge normals. Chamfered corners, may dip below the distance.
//
// Parametric shapes also accept per-direction distances (north, south, east,
// west) through [Directional].
//
// # Coordinate System
//
// Screen coordinates, shared with github.com/gogpu/gg:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Rotation in degrees, positive turns clockwise on screen
//
// Polygon orientation is classified with the shoelace formula; a positive
// signed area is treated as counter-clockwise.
//
// # Packages
//
//   - editor: canvas editing state machine and custom polygon authoring
//   - scene: scene documents and file watching
//   - render: drawing scenes with gg
//   - viewer: interactive window
package collide

// Version information
const (
	// Version is the current version of the module
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
