// Package render draws obstacle scenes with gg.
//
// A Frame is a snapshot of what the editor shows: obstacles, the
// selection, a shape being dragged out and the polygon under
// construction. Renderer.Scene paints a frame onto a gg.Context in the
// order collision boxes, obstacles, selection, preview, polygon overlay.
// Labels are drawn separately onto the finished image.
package render

import (
	"image"
	"image/draw"
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/collide"
	"github.com/gogpu/collide/editor"
	"github.com/gogpu/collide/internal/boxcache"
	"github.com/gogpu/collide/scene"
)

// Frame is everything needed to draw one view of a scene.
type Frame struct {
	// Width and Height are the viewport size in pixels.
	Width, Height float64
	// Offset is the canvas position at the top-left pixel.
	Offset collide.Point
	Grid   float64

	Obstacles   []collide.Obstacle
	SelectedID  string
	MoveOverlap bool
	Collisions  []collide.Collision

	Preview *editor.Preview

	Polygon        []collide.Point
	PolygonPreview *collide.Point

	Labels bool
}

// FrameOf captures the current state of an editor for a w x h viewport.
func FrameOf(ed *editor.Editor, w, h float64) Frame {
	f := frameOf(ed, w, h)
	f.Collisions = ed.Collisions()
	return f
}

// FrameOf is like the package FrameOf, but finds collisions through the
// renderer's box cache.
func (r *Renderer) FrameOf(ed *editor.Editor, w, h float64) Frame {
	f := frameOf(ed, w, h)
	f.Collisions = r.Collisions(ed.Detector(), f.Obstacles)
	return f
}

func frameOf(ed *editor.Editor, w, h float64) Frame {
	f := Frame{
		Width:       w,
		Height:      h,
		Offset:      ed.Offset(),
		Grid:        ed.Grid(),
		Obstacles:   ed.Obstacles(),
		SelectedID:  ed.SelectedID(),
		MoveOverlap: ed.MoveOverlap(),
	}
	if p, ok := ed.Preview(); ok {
		f.Preview = &p
	}
	if ed.PolygonActive() {
		f.Polygon = ed.Polygon().Points()
		if pt, ok := ed.Polygon().Preview(); ok {
			f.PolygonPreview = &pt
		}
	}
	return f
}

// view returns the visible canvas area.
func (f Frame) view() collide.Rect {
	return collide.Rect{
		Min: f.Offset,
		Max: collide.Pt(f.Offset.X+f.Width, f.Offset.Y+f.Height),
	}
}

// MaxImageSize bounds both sides of a rendered image. Larger frames are
// cut off at the right and bottom.
const MaxImageSize = scene.MaxCanvasSize

// Renderer draws frames.
type Renderer struct {
	theme      Theme
	expander   *collide.Expander
	arcSamples int
	cacheSize  int
	boxes      *boxcache.Boxes
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTheme replaces the default theme.
func WithTheme(t Theme) Option {
	return func(r *Renderer) { r.theme = t }
}

// WithDetector makes collision boxes match the detector's expander and
// arc sampling.
func WithDetector(d *collide.Detector) Option {
	return func(r *Renderer) {
		if d != nil {
			r.expander = d.Expander()
			r.arcSamples = d.ArcSamples()
		}
	}
}

// WithArcSamples sets how many segments fill a rounded corner.
func WithArcSamples(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.arcSamples = n
		}
	}
}

// WithBoxCache sets how many collision boxes are kept between frames.
// Zero disables the cache.
func WithBoxCache(n int) Option {
	return func(r *Renderer) { r.cacheSize = n }
}

// New creates a renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		theme:      DefaultTheme(),
		expander:   collide.NewExpander(),
		arcSamples: 8,
		cacheSize:  512,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cacheSize > 0 {
		r.boxes = boxcache.NewBoxes(r.expander, r.cacheSize)
	}
	return r
}

func (r *Renderer) expand(o collide.Obstacle) (collide.Region, bool, error) {
	if r.boxes != nil {
		return r.boxes.Expand(o)
	}
	return r.expander.Expand(o)
}

// Collisions returns det.Collisions(obstacles). Boxes come from the
// renderer's cache when det grows them with the renderer's expander, as
// after WithDetector(det).
func (r *Renderer) Collisions(det *collide.Detector, obstacles []collide.Obstacle) []collide.Collision {
	if r.boxes == nil || det.Expander() != r.expander {
		return det.Collisions(obstacles)
	}
	samples := det.ArcSamples()
	return det.CollisionsWith(obstacles, func(o collide.Obstacle) []collide.Point {
		region, ok, err := r.boxes.Expand(o)
		if err != nil {
			collide.Logger().Warn("render: collision box unavailable", "id", o.ID, "err", err)
			return nil
		}
		if !ok {
			return nil
		}
		return region.Outline(samples)
	})
}

// CacheStats reports collision box cache usage. It is zero when the
// cache is disabled.
func (r *Renderer) CacheStats() boxcache.Stats {
	if r.boxes == nil {
		return boxcache.Stats{}
	}
	return r.boxes.Stats()
}

// Theme returns the renderer's theme.
func (r *Renderer) Theme() Theme { return r.theme }

// Scene paints f onto dc. The context is cleared first; its size should
// match the frame.
func (r *Renderer) Scene(dc *gg.Context, f Frame) error {
	dc.ClearWithColor(r.theme.Background)

	dc.Push()
	defer dc.Pop()
	dc.Translate(-f.Offset.X, -f.Offset.Y)

	p := &painter{dc: dc}
	view := f.view()

	r.grid(p, view, f.Grid)

	for _, o := range f.Obstacles {
		region, ok, err := r.expand(o)
		if err != nil {
			collide.Logger().Warn("render: collision box skipped", "id", o.ID, "err", err)
			continue
		}
		if ok && region.Bounds().Intersects(view) {
			r.region(p, region)
		}
	}

	colliding := make(map[int]bool, 2*len(f.Collisions))
	for _, c := range f.Collisions {
		colliding[c.A] = true
		colliding[c.B] = true
	}
	for i, o := range f.Obstacles {
		verts := o.Vertices()
		if !collide.Bounds(verts).Intersects(view) {
			continue
		}
		r.obstacle(p, o, verts, colliding[i])
	}

	for _, o := range f.Obstacles {
		if o.ID != "" && o.ID == f.SelectedID {
			r.selection(p, o, f.MoveOverlap)
			break
		}
	}

	if f.Preview != nil {
		r.preview(p, *f.Preview)
	}
	if len(f.Polygon) > 0 {
		r.polygon(p, f.Polygon, f.PolygonPreview)
	}
	return p.err
}

// Image renders f into a new image, labels included when f.Labels is set.
func (r *Renderer) Image(f Frame) (*image.RGBA, error) {
	if !(f.Width >= 1) || !(f.Height >= 1) {
		return image.NewRGBA(image.Rect(0, 0, 0, 0)), nil
	}
	f.Width = math.Min(f.Width, MaxImageSize)
	f.Height = math.Min(f.Height, MaxImageSize)
	w, h := int(math.Ceil(f.Width)), int(math.Ceil(f.Height))
	dc := gg.NewContext(w, h)
	defer dc.Close()

	if err := r.Scene(dc, f); err != nil {
		return nil, err
	}
	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		src := dc.Image()
		img = image.NewRGBA(src.Bounds())
		draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)
	}
	if f.Labels {
		r.Labels(img, f)
	}
	return img, nil
}

func (r *Renderer) grid(p *painter, view collide.Rect, grid float64) {
	if !(grid >= scene.MinGrid) || math.IsInf(grid, 0) {
		return
	}
	dc := p.dc
	dc.ClearDash()
	dc.SetColor(r.theme.Grid.Color())
	dc.SetLineWidth(1)
	x0, nx := gridLines(view.Min.X, view.Max.X, grid)
	for i := 0; i < nx; i++ {
		x := x0 + float64(i)*grid
		dc.MoveTo(x, view.Min.Y)
		dc.LineTo(x, view.Max.Y)
	}
	y0, ny := gridLines(view.Min.Y, view.Max.Y, grid)
	for i := 0; i < ny; i++ {
		y := y0 + float64(i)*grid
		dc.MoveTo(view.Min.X, y)
		dc.LineTo(view.Max.X, y)
	}
	p.stroke()
}

// gridLines returns the first grid line at or before lo and how many
// lines fall in [first, hi], capped so a frame never exceeds one line per
// pixel.
func gridLines(lo, hi, grid float64) (first float64, n int) {
	first = math.Floor(lo/grid) * grid
	span := (hi - first) / grid
	if !(span >= 0) {
		return first, 0
	}
	return first, int(math.Min(span, MaxImageSize)) + 1
}

// region draws a collision box: a translucent fill and a dashed border.
// Generalized regions keep their true arcs.
func (r *Renderer) region(p *painter, region collide.Region) {
	dc := p.dc
	outline := region.Outline(r.arcSamples)
	p.path(outline)
	dc.SetColor(r.theme.BoxFill.Color())
	p.fill()

	dc.SetColor(r.theme.Box.Color())
	dc.SetLineWidth(r.theme.BoxWidth)
	dc.SetDash(r.theme.BoxDash...)
	defer dc.ClearDash()

	if region.Method != collide.Generalized {
		p.path(region.Polygon)
		p.stroke()
		return
	}

	n := len(region.Edges)
	for i, e := range region.Edges {
		dc.MoveTo(e.A.X, e.A.Y)
		dc.LineTo(e.B.X, e.B.Y)
		if len(region.ArcCenters) != n {
			continue
		}
		arc(dc, region.ArcCenters[(i+1)%n], region.ArcRadius, e.B, region.Edges[(i+1)%n].A)
	}
	p.stroke()
}

// arc adds the short arc around c from a to b. gg sweeps arcs with
// increasing angle, so a clockwise arc is drawn from its other end.
func arc(dc *gg.Context, c collide.Point, radius float64, a, b collide.Point) {
	if radius <= 0 || a.Distance(c) < 1e-9 || b.Distance(c) < 1e-9 {
		return
	}
	a1 := math.Atan2(a.Y-c.Y, a.X-c.X)
	a2 := math.Atan2(b.Y-c.Y, b.X-c.X)
	sweep := a2 - a1
	for sweep <= -math.Pi {
		sweep += 2 * math.Pi
	}
	for sweep > math.Pi {
		sweep -= 2 * math.Pi
	}
	if math.Abs(sweep) < 1e-9 {
		return
	}
	start := a
	if sweep < 0 {
		start, a1, sweep = b, a2, -sweep
	}
	dc.MoveTo(start.X, start.Y)
	dc.DrawArc(c.X, c.Y, radius, a1, a1+sweep)
}

func (r *Renderer) obstacle(p *painter, o collide.Obstacle, verts []collide.Point, colliding bool) {
	dc := p.dc
	dc.ClearDash()

	p.path(verts)
	dc.SetColor(obstacleFill(o.Color, gg.Hex(editor.DefaultColor)).Color())
	p.fill()

	p.path(verts)
	if colliding {
		dc.SetColor(r.theme.Overlap.Color())
		dc.SetLineWidth(r.theme.OverlapWidth)
	} else {
		dc.SetColor(r.theme.Outline.Color())
		dc.SetLineWidth(r.theme.OutlineWidth)
	}
	p.stroke()
}

func (r *Renderer) selection(p *painter, o collide.Obstacle, overlap bool) {
	dc := p.dc
	dc.ClearDash()
	verts := o.Vertices()

	if overlap {
		p.path(verts)
		dc.SetColor(r.theme.OverlapFill.Color())
		p.fill()
		p.path(verts)
		dc.SetColor(r.theme.Overlap.Color())
		dc.SetLineWidth(r.theme.OverlapWidth)
		p.stroke()
		return
	}

	p.path(verts)
	dc.SetColor(r.theme.Selected.Color())
	dc.SetLineWidth(r.theme.SelectedWidth)
	p.stroke()

	dc.SetLineWidth(1)
	half := float64(editor.ResizeHandleRadius) / 2
	for _, h := range []editor.Handle{editor.HandleTopLeft, editor.HandleTopRight, editor.HandleBottomLeft, editor.HandleBottomRight} {
		c := editor.ResizeHandles(o)[h]
		dc.DrawRectangle(c.X-half, c.Y-half, 2*half, 2*half)
	}
	dc.SetColor(r.theme.ResizeHandle.Color())
	p.fill()

	if o.CanRotate() {
		c := editor.RotationHandle(o)
		dc.DrawCircle(c.X, c.Y, editor.RotationHandleRadius)
		dc.SetColor(r.theme.RotationHandleFill.Color())
		p.fill()
		dc.DrawCircle(c.X, c.Y, editor.RotationHandleRadius)
		dc.SetColor(r.theme.RotationHandle.Color())
		dc.SetLineWidth(2)
		p.stroke()
	}
}

func (r *Renderer) preview(p *painter, pv editor.Preview) {
	dc := p.dc
	verts := pv.Obstacle.Vertices()

	fill := obstacleFill(pv.Obstacle.Color, gg.Hex(editor.DefaultColor))
	fill.A = r.theme.PreviewAlpha
	if pv.Overlap {
		fill = r.theme.OverlapFill
	}
	p.path(verts)
	dc.SetColor(fill.Color())
	p.fill()

	p.path(verts)
	if pv.Overlap {
		dc.SetColor(r.theme.Overlap.Color())
	} else {
		dc.SetColor(r.theme.Outline.Color())
	}
	dc.SetLineWidth(r.theme.OutlineWidth)
	dc.SetDash(r.theme.PreviewDash...)
	p.stroke()
	dc.ClearDash()
}

// polygon draws a polygon under construction: placed edges, a dashed
// rubber band to the pointer and the vertices, the first one larger.
func (r *Renderer) polygon(p *painter, pts []collide.Point, pointer *collide.Point) {
	if len(pts) == 0 {
		return
	}
	dc := p.dc
	dc.ClearDash()
	dc.SetLineWidth(2)
	dc.SetColor(r.theme.PolygonEdge.Color())
	first, last := pts[0], pts[len(pts)-1]
	if len(pts) > 1 {
		p.path(pts)
		p.stroke()
	}

	// The edge Enter would close.
	if len(pts) >= 3 {
		dc.SetDash(r.theme.PreviewDash...)
		dc.MoveTo(last.X, last.Y)
		dc.LineTo(first.X, first.Y)
		p.stroke()
	}

	if pointer != nil {
		dc.SetDash(r.theme.PreviewDash...)
		dc.SetLineWidth(1)
		dc.MoveTo(last.X, last.Y)
		dc.LineTo(pointer.X, pointer.Y)
		if len(pts) >= 2 {
			dc.MoveTo(pointer.X, pointer.Y)
			dc.LineTo(first.X, first.Y)
		}
		p.stroke()
		dc.ClearDash()

		dc.SetColor(r.theme.SnapIndicator.Color())
		dc.DrawCircle(pointer.X, pointer.Y, 8)
		p.stroke()
	}
	dc.ClearDash()

	for i, q := range pts {
		radius, col := 4.0, r.theme.Vertex
		if i == 0 {
			radius, col = 6, r.theme.StartVertex
		}
		dc.DrawCircle(q.X, q.Y, radius)
		dc.SetColor(col.Color())
		p.fill()
	}
}

// painter issues gg fill and stroke calls and keeps the first error.
type painter struct {
	dc  *gg.Context
	err error
}

func (p *painter) path(pts []collide.Point) {
	if len(pts) == 0 {
		return
	}
	p.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, q := range pts[1:] {
		p.dc.LineTo(q.X, q.Y)
	}
	p.dc.ClosePath()
}

func (p *painter) fill() {
	if err := p.dc.Fill(); err != nil && p.err == nil {
		p.err = err
	}
}

func (p *painter) stroke() {
	if err := p.dc.Stroke(); err != nil && p.err == nil {
		p.err = err
	}
}
