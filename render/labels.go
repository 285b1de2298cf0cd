package render

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/collide"
)

// Label returns the caption drawn on an obstacle.
func Label(o collide.Obstacle) string {
	e := o.Expansion
	switch {
	case e.UseDirectional && e.Directional.Any():
		d := e.Directional
		return fmt.Sprintf("%s N%g S%g E%g W%g", o.Kind.Title(), d.North, d.South, d.East, d.West)
	case e.Distance > 0:
		return fmt.Sprintf("%s %gpx %s", o.Kind.Title(), e.Distance, e.Method)
	}
	return o.Kind.Title()
}

// Labels writes each visible obstacle's caption, centred on the
// obstacle, onto img.
func (r *Renderer) Labels(img *image.RGBA, f Frame) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(r.theme.Label.Color()),
		Face: face,
	}
	ascent := face.Metrics().Ascent
	for _, o := range f.Obstacles {
		text := Label(o)
		c := o.Center()
		x := c.X - f.Offset.X
		y := c.Y - f.Offset.Y
		if x < 0 || y < 0 || x > f.Width || y > f.Height {
			continue
		}
		width := d.MeasureString(text)
		d.Dot = fixed.Point26_6{
			X: fixed.Int26_6(x*64) - width/2,
			Y: fixed.Int26_6(y*64) + ascent/2,
		}
		d.DrawString(text)
	}
}
