package render

import (
	"github.com/gogpu/gg"
)

// Theme holds the colours and stroke settings used to draw a scene.
type Theme struct {
	Background gg.RGBA
	Grid       gg.RGBA

	Outline      gg.RGBA
	OutlineWidth float64

	Selected      gg.RGBA
	SelectedWidth float64

	Overlap      gg.RGBA
	OverlapFill  gg.RGBA
	OverlapWidth float64

	Box      gg.RGBA
	BoxFill  gg.RGBA
	BoxWidth float64
	BoxDash  []float64

	// PreviewAlpha is the fill alpha of a shape being dragged out.
	PreviewAlpha float64
	PreviewDash  []float64

	RotationHandle     gg.RGBA
	RotationHandleFill gg.RGBA
	ResizeHandle       gg.RGBA

	Vertex        gg.RGBA
	StartVertex   gg.RGBA
	SnapIndicator gg.RGBA
	PolygonEdge   gg.RGBA

	Label gg.RGBA
}

func rgb(r, g, b uint8) gg.RGBA { return rgba(r, g, b, 255) }

func rgba(r, g, b, a uint8) gg.RGBA {
	return gg.RGBA2(float64(r)/255, float64(g)/255, float64(b)/255, float64(a)/255)
}

// DefaultTheme returns the light theme of the editor.
func DefaultTheme() Theme {
	return Theme{
		Background: rgb(255, 255, 255),
		Grid:       rgb(200, 200, 200),

		Outline:      rgb(50, 50, 50),
		OutlineWidth: 2,

		Selected:      rgb(255, 200, 0),
		SelectedWidth: 4,

		Overlap:      rgb(255, 0, 0),
		OverlapFill:  rgba(255, 0, 0, 30),
		OverlapWidth: 4,

		Box:      rgb(128, 128, 128),
		BoxFill:  rgba(128, 128, 128, 40),
		BoxWidth: 2,
		BoxDash:  []float64{6, 4},

		PreviewAlpha: 50.0 / 255,
		PreviewDash:  []float64{5, 5},

		RotationHandle:     rgb(255, 0, 0),
		RotationHandleFill: rgb(255, 100, 100),
		ResizeHandle:       rgb(0, 100, 255),

		Vertex:        rgb(255, 100, 100),
		StartVertex:   rgb(0, 200, 0),
		SnapIndicator: rgb(128, 128, 128),
		PolygonEdge:   rgb(255, 100, 100),

		Label: rgb(20, 20, 20),
	}
}

// obstacleFill parses an obstacle colour, falling back to fallback for an
// empty value.
func obstacleFill(hex string, fallback gg.RGBA) gg.RGBA {
	if hex == "" {
		return fallback
	}
	return gg.Hex(hex)
}
