package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/collide"
	"github.com/gogpu/collide/editor"
	"github.com/gogpu/collide/scene"
)

func box(id string, x, y, w, h float64) collide.Obstacle {
	return collide.Obstacle{ID: id, Kind: collide.Rectangle, X: x, Y: y, Width: w, Height: h, Color: "#00ff00"}
}

func render(t *testing.T, f Frame) *image.RGBA {
	t.Helper()
	img, err := New().Image(f)
	require.NoError(t, err)
	return img
}

func near(t *testing.T, want color.RGBA, got color.RGBA, tol int) {
	t.Helper()
	d := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	assert.True(t, d(want.R, got.R) <= tol && d(want.G, got.G) <= tol && d(want.B, got.B) <= tol,
		"pixel %v, want %v", got, want)
}

func TestSceneFillsObstacle(t *testing.T) {
	img := render(t, Frame{Width: 200, Height: 200, Obstacles: []collide.Obstacle{box("a", 50, 50, 60, 40)}})

	assert.Equal(t, image.Rect(0, 0, 200, 200), img.Bounds())
	near(t, color.RGBA{0, 255, 0, 255}, img.RGBAAt(80, 70), 2)
	near(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(10, 10), 0)
	near(t, color.RGBA{50, 50, 50, 255}, img.RGBAAt(50, 70), 40)
}

func TestSceneDefaultColor(t *testing.T) {
	o := box("a", 50, 50, 60, 40)
	o.Color = ""
	img := render(t, Frame{Width: 200, Height: 200, Obstacles: []collide.Obstacle{o}})
	near(t, color.RGBA{100, 150, 200, 255}, img.RGBAAt(80, 70), 2)
}

func TestSceneOffset(t *testing.T) {
	img := render(t, Frame{
		Width: 100, Height: 100,
		Offset:    collide.Pt(100, 100),
		Obstacles: []collide.Obstacle{box("a", 100, 100, 60, 40)},
	})
	near(t, color.RGBA{0, 255, 0, 255}, img.RGBAAt(30, 20), 2)
}

func TestSceneCollisionBox(t *testing.T) {
	o := box("a", 100, 100, 60, 40)
	o.Expansion = collide.Expansion{Distance: 20, Method: collide.Generalized}
	img := render(t, Frame{Width: 300, Height: 300, Obstacles: []collide.Obstacle{o}})

	inside := img.RGBAAt(90, 120)
	assert.Less(t, inside.R, uint8(250), "collision box should tint the background")
	assert.InDelta(t, int(inside.R), int(inside.G), 2)
	assert.InDelta(t, int(inside.G), int(inside.B), 2)
	near(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(60, 120), 0)
}

func TestSceneGrid(t *testing.T) {
	img := render(t, Frame{Width: 100, Height: 100, Grid: 20})
	line := img.RGBAAt(40, 10)
	assert.Less(t, line.R, uint8(250), "grid line expected at x=40")
	near(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(50, 10), 0)
}

func TestSceneCollisionsOutlinedRed(t *testing.T) {
	f := Frame{
		Width: 300, Height: 300,
		Obstacles:  []collide.Obstacle{box("a", 100, 100, 60, 40), box("b", 162, 100, 60, 40)},
		Collisions: []collide.Collision{{A: 0, B: 1}},
	}
	img := render(t, f)
	px := img.RGBAAt(100, 120)
	assert.Greater(t, px.R, uint8(200))
	assert.Less(t, px.G, uint8(80))
}

func TestSceneSelectionHandles(t *testing.T) {
	o := box("a", 100, 100, 60, 40)
	img := render(t, Frame{Width: 300, Height: 300, Obstacles: []collide.Obstacle{o}, SelectedID: "a"})

	near(t, color.RGBA{255, 100, 100, 255}, img.RGBAAt(160, 100), 3)
	near(t, color.RGBA{0, 100, 255, 255}, img.RGBAAt(100, 140), 3)
}

func TestSceneCustomPolygonHasNoRotationHandle(t *testing.T) {
	o := collide.Obstacle{
		ID: "p", Kind: collide.CustomPolygon, X: 100, Y: 100, Width: 60, Height: 40,
		Points: []collide.Point{{X: 0, Y: 0}, {X: 60, Y: 0}, {X: 60, Y: 40}, {X: 0, Y: 40}},
	}
	img := render(t, Frame{Width: 300, Height: 300, Obstacles: []collide.Obstacle{o}, SelectedID: "p"})
	near(t, color.RGBA{0, 100, 255, 255}, img.RGBAAt(160, 100), 3)
}

func TestScenePreviewAndPolygon(t *testing.T) {
	pv := editor.Preview{Obstacle: box("", 20, 20, 60, 60)}
	pointer := collide.Pt(180, 40)
	f := Frame{
		Width: 200, Height: 200,
		Preview:        &pv,
		Polygon:        []collide.Point{{X: 100, Y: 150}, {X: 160, Y: 150}},
		PolygonPreview: &pointer,
	}
	img := render(t, f)

	p := img.RGBAAt(50, 50)
	assert.Less(t, p.R, uint8(255), "preview is tinted")
	assert.Greater(t, p.R, uint8(150), "preview is translucent")
	near(t, color.RGBA{0, 200, 0, 255}, img.RGBAAt(100, 150), 3)
	near(t, color.RGBA{255, 100, 100, 255}, img.RGBAAt(160, 150), 3)
}

func TestFrameOf(t *testing.T) {
	ed := editor.New(editor.WithCanvasSize(400, 400))
	ed.Load([]collide.Obstacle{box("a", 100, 100, 60, 40)})
	ed.Select(ed.Obstacles()[0].ID)
	ed.SelectTool(editor.ToolCustom)
	ed.Press(editor.ButtonLeft, collide.Pt(300, 300))

	f := FrameOf(ed, 640, 480)
	assert.Equal(t, 640.0, f.Width)
	assert.Len(t, f.Obstacles, 1)
	assert.Len(t, f.Polygon, 1)
	assert.Nil(t, f.Preview)
}

func TestLabel(t *testing.T) {
	o := box("a", 0, 0, 20, 20)
	assert.Equal(t, "Rectangle", Label(o))

	o.Expansion = collide.Expansion{Distance: 15, Method: collide.Convex}
	assert.Equal(t, "Rectangle 15px convex", Label(o))

	o.Expansion.UseDirectional = true
	o.Expansion.Directional = collide.Directional{North: 1, South: 2, East: 3, West: 4}
	assert.Equal(t, "Rectangle N1 S2 E3 W4", Label(o))
}

func TestLabelsDrawText(t *testing.T) {
	o := box("a", 20, 20, 160, 60)
	o.Color = "#ffffff"
	f := Frame{Width: 200, Height: 100, Obstacles: []collide.Obstacle{o}}

	dark := func(img *image.RGBA) int {
		n := 0
		for y := 30; y < 70; y++ {
			for x := 30; x < 170; x++ {
				if img.RGBAAt(x, y).R < 100 {
					n++
				}
			}
		}
		return n
	}
	assert.Zero(t, dark(render(t, f)))
	f.Labels = true
	assert.Positive(t, dark(render(t, f)))
}

func TestImageEmpty(t *testing.T) {
	img, err := New().Image(Frame{})
	require.NoError(t, err)
	assert.True(t, img.Bounds().Empty())
}

// reddish reports whether any pixel on the diagonal from (lo,lo) to
// (hi,hi) carries the polygon edge colour.
func reddish(img *image.RGBA, lo, hi int) bool {
	for i := lo; i <= hi; i++ {
		c := img.RGBAAt(i, i)
		if c.R > 200 && c.G < 220 && c.B < 220 {
			return true
		}
	}
	return false
}

func TestScenePolygonClosingEdge(t *testing.T) {
	tests := []struct {
		name    string
		pts     []collide.Point
		pointer *collide.Point
		want    bool
	}{
		{"two points", []collide.Point{{X: 50, Y: 50}, {X: 150, Y: 50}}, nil, false},
		{"three points close", []collide.Point{{X: 50, Y: 50}, {X: 150, Y: 50}, {X: 150, Y: 150}}, nil, true},
		{"pointer closes", []collide.Point{{X: 50, Y: 50}, {X: 150, Y: 50}}, &collide.Point{X: 150, Y: 150}, true},
		{"single point", []collide.Point{{X: 50, Y: 50}}, &collide.Point{X: 150, Y: 50}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := render(t, Frame{Width: 200, Height: 200, Polygon: tt.pts, PolygonPreview: tt.pointer})
			assert.Equal(t, tt.want, reddish(img, 70, 130))
		})
	}
}

func TestScenePolygonEmptyWithPointer(t *testing.T) {
	pointer := collide.Pt(10, 10)
	assert.NotPanics(t, func() {
		render(t, Frame{Width: 50, Height: 50, PolygonPreview: &pointer})
	})
}

func TestRenderPNG(t *testing.T) {
	o := box("a", 100, 100, 60, 40)
	o.Expansion = collide.Expansion{Distance: 20, Method: collide.PreserveShape}
	doc := scene.FromObstacles(scene.Canvas{Width: 320, Height: 240, Grid: 20}, []collide.Obstacle{o})

	var buf bytes.Buffer
	require.NoError(t, RenderPNG(doc, &buf, ExportOptions{Labels: true, Collisions: true}))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 320, 240), img.Bounds())

	buf.Reset()
	require.NoError(t, RenderPNG(doc, &buf, ExportOptions{Fit: true, Margin: 10}))
	img, err = png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 120, 100), img.Bounds())
}

func TestRenderPNGInvalid(t *testing.T) {
	doc := scene.FromObstacles(scene.Canvas{}, []collide.Obstacle{box("a", 0, 0, 2, 2)})
	assert.ErrorIs(t, RenderPNG(doc, &bytes.Buffer{}, ExportOptions{}), collide.ErrInvalidObstacle)
}

func TestRenderPNGRejectsHugeCanvas(t *testing.T) {
	doc := scene.FromObstacles(scene.Canvas{Width: 1e7, Height: 1e7}, []collide.Obstacle{box("a", 0, 0, 20, 20)})
	assert.ErrorIs(t, RenderPNG(doc, &bytes.Buffer{}, ExportOptions{}), scene.ErrInvalidCanvas)

	doc.Canvas = scene.Canvas{Width: 100, Height: 100, Grid: 1e-9}
	assert.ErrorIs(t, RenderPNG(doc, &bytes.Buffer{}, ExportOptions{}), scene.ErrInvalidCanvas)
}

func TestRenderPNGFitIsBounded(t *testing.T) {
	doc := scene.FromObstacles(scene.Canvas{Width: 100, Height: 100}, []collide.Obstacle{
		box("a", 0, 0, 20, 20),
		box("b", 3*MaxImageSize, 0, 20, 20),
	})
	var buf bytes.Buffer
	require.NoError(t, RenderPNG(doc, &buf, ExportOptions{Fit: true, Margin: -5}))
	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, MaxImageSize, cfg.Width)
	assert.Equal(t, 20, cfg.Height, "negative margin is ignored")
}

func TestImageBoundsFrame(t *testing.T) {
	r := New()
	for _, f := range []Frame{
		{Width: math.NaN(), Height: 10},
		{Width: 10, Height: math.Inf(-1)},
		{Width: 0.5, Height: 10},
	} {
		img, err := r.Image(f)
		require.NoError(t, err)
		assert.True(t, img.Bounds().Empty(), "%+v", f)
	}

	img, err := r.Image(Frame{Width: 1e9, Height: 2, Grid: 1e-9})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, MaxImageSize, 2), img.Bounds())
}

func TestGridLines(t *testing.T) {
	first, n := gridLines(5, 65, 20)
	assert.Equal(t, 0.0, first)
	assert.Equal(t, 4, n)

	_, n = gridLines(0, 1e12, 1)
	assert.Equal(t, MaxImageSize+1, n)

	_, n = gridLines(10, 5, 20)
	assert.Equal(t, 1, n, "line at or before lo is still drawn")
}

func TestBoxCacheReusedAcrossFrames(t *testing.T) {
	a := box("a", 20, 20, 40, 40)
	a.Expansion.Distance = 10
	b := box("b", 120, 20, 40, 40)
	b.Expansion.Distance = 10
	f := Frame{Width: 200, Height: 100, Obstacles: []collide.Obstacle{a, b}}

	r := New()
	for i := 0; i < 3; i++ {
		_, err := r.Image(f)
		require.NoError(t, err)
	}
	st := r.CacheStats()
	assert.Equal(t, 2, st.Len)
	assert.Equal(t, uint64(2), st.Misses)
	assert.Equal(t, uint64(4), st.Hits)

	// Moving one obstacle only regrows that one.
	f.Obstacles[1].X = 130
	_, err := r.Image(f)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), r.CacheStats().Misses)

	assert.Zero(t, New(WithBoxCache(0)).CacheStats())
}

func TestRendererFrameOfUsesBoxCache(t *testing.T) {
	a := box("a", 20, 20, 40, 40)
	a.Expansion.Distance = 10
	b := box("b", 75, 20, 40, 40)
	b.Expansion.Distance = 10
	c := box("c", 300, 300, 40, 40)
	ed := editor.New(editor.WithCanvasSize(400, 400))
	ed.Load([]collide.Obstacle{a, b, c})

	r := New(WithDetector(ed.Detector()))
	f := r.FrameOf(ed, 400, 400)
	assert.Equal(t, ed.Collisions(), f.Collisions)
	assert.Equal(t, []collide.Collision{{A: 0, B: 1}}, f.Collisions)
	assert.Equal(t, uint64(3), r.CacheStats().Misses)

	_, err := r.Image(f)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		f = r.FrameOf(ed, 400, 400)
	}
	st := r.CacheStats()
	assert.Equal(t, uint64(3), st.Misses, "redraws regrow nothing")
	assert.Equal(t, uint64(12), st.Hits)

	// A renderer built for another expander falls back to the detector.
	other := New()
	assert.Equal(t, f.Collisions, other.Collisions(ed.Detector(), f.Obstacles))
	assert.Zero(t, other.CacheStats().Misses)
}
