// Package viewer runs the interactive obstacle editor in a window.
//
// The window shows the editor's scene rendered by package render and
// forwards mouse and keyboard input to the editor. The scene is only
// re-rendered when something visible changed.
package viewer

import (
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/collide"
	"github.com/gogpu/collide/editor"
	"github.com/gogpu/collide/internal/controls"
	"github.com/gogpu/collide/internal/session"
	"github.com/gogpu/collide/render"
)

// Options configures the window.
type Options struct {
	Title  string
	Width  int
	Height int
	// PanStep is how far the arrow keys move the view, in pixels.
	PanStep float64
}

// Run opens the window and blocks until it closes.
func Run(s *session.Session, opts Options) error {
	if opts.Title == "" {
		opts.Title = "Obstacle Collision Box Editor"
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1280, 800
	}
	if opts.PanStep <= 0 {
		opts.PanStep = 40
	}
	if err := s.Watch(); err != nil {
		collide.Logger().Warn("viewer: watch failed", "path", s.Path(), "err", err)
	}

	g := &game{
		s:     s,
		r:     render.New(render.WithDetector(s.Editor().Detector())),
		title: opts.Title,
		step:  opts.PanStep,
	}
	ebiten.SetWindowTitle(s.Title(opts.Title))
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	return err
}

type game struct {
	s     *session.Session
	r     *render.Renderer
	title string
	step  float64

	w, h   int
	canvas *ebiten.Image
	cache  controls.FrameCache

	input  input
	cmd    *controls.CommandLine
	titled string
}

func (g *game) ed() *editor.Editor { return g.s.Editor() }

func (g *game) Update() error {
	g.s.Poll()
	g.handleInput()

	if t := g.s.Title(g.title); t != g.titled {
		ebiten.SetWindowTitle(t)
		g.titled = t
	}
	ebiten.SetCursorShape(cursorShapes[controls.CursorShape(g.ed().Cursor())])

	if g.s.Done() {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.w == 0 || g.h == 0 {
		return
	}
	if g.canvas == nil || g.canvas.Bounds() != image.Rect(0, 0, g.w, g.h) {
		if g.canvas != nil {
			g.canvas.Deallocate()
		}
		g.canvas = ebiten.NewImage(g.w, g.h)
		g.cache.Invalidate()
	}

	ed := g.ed()
	key := controls.KeyFor(ed, g.w, g.h, g.s.Labels())
	if g.cache.Stale(ed, key) {
		f := g.r.FrameOf(ed, float64(g.w), float64(g.h))
		f.Labels = g.s.Labels()
		img, err := g.r.Image(f)
		if err != nil {
			collide.Logger().Error("viewer: render failed", "err", err)
		} else {
			g.canvas.WritePixels(img.Pix)
			g.cache.Store(key)
		}
	}
	screen.DrawImage(g.canvas, nil)

	g.drawOverlay(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.ed().SetViewport(float64(g.w), float64(g.h))
	}
	return outsideWidth, outsideHeight
}

var cursorShapes = map[controls.Shape]ebiten.CursorShapeType{
	controls.ShapeDefault:    ebiten.CursorShapeDefault,
	controls.ShapeCrosshair:  ebiten.CursorShapeCrosshair,
	controls.ShapeMove:       ebiten.CursorShapeMove,
	controls.ShapeResizeNWSE: ebiten.CursorShapeNWSEResize,
	controls.ShapeResizeNESW: ebiten.CursorShapeNESWResize,
}
