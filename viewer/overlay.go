package viewer

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gogpu/collide/internal/controls"
)

const barHeight = 20

var (
	barColor       = color.RGBA{40, 40, 40, 220}
	crosshairColor = color.RGBA{100, 100, 100, 160}
	snapColor      = color.RGBA{255, 100, 100, 200}
)

// drawOverlay draws what changes every frame on top of the cached scene:
// the pointer crosshair, the status bar and the command line.
func (g *game) drawOverlay(screen *ebiten.Image) {
	ed := g.ed()
	w, h := float32(g.w), float32(g.h)

	if _, placing := ed.Tool().Kind(); placing && g.input.moved {
		x, y := float32(g.input.x), float32(g.input.y)
		vector.StrokeLine(screen, x, 0, x, h-barHeight, 1, crosshairColor, false)
		vector.StrokeLine(screen, 0, y, w, y, 1, crosshairColor, false)

		if ed.Snap() || ed.PolygonActive() {
			sx, sy := controls.SnapScreen(x, y, float32(ed.Offset().X), float32(ed.Offset().Y), float32(ed.Grid()))
			vector.StrokeCircle(screen, sx, sy, 4, 1.5, snapColor, true)
		}
	}

	vector.DrawFilledRect(screen, 0, h-barHeight, w, barHeight, barColor, false)
	ebitenutil.DebugPrintAt(screen, g.s.StatusLine(), 6, g.h-barHeight+2)

	if g.cmd != nil {
		vector.DrawFilledRect(screen, 0, 0, w, barHeight, barColor, false)
		ebitenutil.DebugPrintAt(screen, ":"+g.cmd.String()+"_", 6, 2)
	} else if q, ok := ed.Pending(); ok {
		vector.DrawFilledRect(screen, 0, 0, w, barHeight, barColor, false)
		ebitenutil.DebugPrintAt(screen, q.Title+" - press Y or N", 6, 2)
	}
}
