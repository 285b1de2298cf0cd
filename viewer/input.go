package viewer

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gogpu/collide"
	"github.com/gogpu/collide/editor"
	"github.com/gogpu/collide/internal/controls"
)

// input remembers the last pointer position so moves are only reported
// when the pointer actually moves.
type input struct {
	x, y  int
	moved bool
}

var buttons = []struct {
	eb ebiten.MouseButton
	ed editor.Button
}{
	{ebiten.MouseButtonLeft, editor.ButtonLeft},
	{ebiten.MouseButtonMiddle, editor.ButtonMiddle},
	{ebiten.MouseButtonRight, editor.ButtonRight},
}

var keyMap = []struct {
	eb  ebiten.Key
	key controls.Key
}{
	{ebiten.KeyR, controls.KeyR},
	{ebiten.KeyT, controls.KeyT},
	{ebiten.KeyP, controls.KeyP},
	{ebiten.KeyH, controls.KeyH},
	{ebiten.KeyC, controls.KeyC},
	{ebiten.KeyN, controls.KeyN},
	{ebiten.KeyY, controls.KeyY},
	{ebiten.KeyZ, controls.KeyZ},
	{ebiten.KeyS, controls.KeyS},
	{ebiten.KeyQ, controls.KeyQ},
	{ebiten.KeyG, controls.KeyG},
	{ebiten.KeyM, controls.KeyM},
	{ebiten.KeyL, controls.KeyL},
	{ebiten.KeyEscape, controls.KeyEscape},
	{ebiten.KeyBackspace, controls.KeyBackspace},
	{ebiten.KeyDelete, controls.KeyDelete},
	{ebiten.KeyEnter, controls.KeyEnter},
	{ebiten.KeyNumpadEnter, controls.KeyEnter},
	{ebiten.KeyArrowLeft, controls.KeyLeft},
	{ebiten.KeyArrowRight, controls.KeyRight},
	{ebiten.KeyArrowUp, controls.KeyUp},
	{ebiten.KeyArrowDown, controls.KeyDown},
}

// backspaceRepeat is how many ticks Backspace is held before it repeats.
const backspaceRepeat = 20

func readKeys() *controls.Keys {
	k := &controls.Keys{
		Ctrl: ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) ||
			ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight),
		Shift: ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight),
		Chars: ebiten.AppendInputChars(nil),
	}
	for _, m := range keyMap {
		if inpututil.IsKeyJustPressed(m.eb) {
			k.Press(m.key)
		} else if ebiten.IsKeyPressed(m.eb) {
			k.Hold(m.key)
		}
	}
	if inpututil.KeyPressDuration(ebiten.KeyBackspace) > backspaceRepeat {
		k.Repeat(controls.KeyBackspace)
	}
	return k
}

func (g *game) handleInput() {
	k := readKeys()

	if g.cmd != nil {
		g.commandInput(k)
		return
	}

	ed := g.ed()
	if _, ok := ed.Pending(); ok {
		if yes, answered := controls.Confirmation(k); answered {
			ed.Confirm(yes)
		}
		return
	}

	for _, a := range controls.Actions(k) {
		g.apply(a)
	}
	if dx, dy := controls.Pan(k, g.step); dx != 0 || dy != 0 {
		ed.PanBy(dx, dy)
	}
	g.mouse()
}

func (g *game) apply(a controls.Action) {
	ed := g.ed()
	switch a.Op {
	case controls.OpUndo:
		ed.Key(editor.KeyUndo)
	case controls.OpRedo:
		ed.Key(editor.KeyRedo)
	case controls.OpSave:
		g.s.Save("")
	case controls.OpQuit:
		g.s.Quit()
	case controls.OpCommandLine:
		g.cmd = &controls.CommandLine{}
	case controls.OpTool:
		ed.SelectTool(a.Tool)
	case controls.OpEscape:
		ed.Key(editor.KeyEscape)
	case controls.OpBackspace:
		ed.Key(editor.KeyBackspace)
	case controls.OpDelete:
		ed.Key(editor.KeyDelete)
	case controls.OpFinishPolygon:
		if ed.PolygonActive() {
			if err := ed.FinishPolygon(); err != nil && !errors.Is(err, editor.ErrNotDrawing) {
				collide.Logger().Debug("viewer: polygon not finished", "err", err)
			}
		}
	case controls.OpToggleSnap:
		ed.ToggleSnap()
	case controls.OpCycleMethod:
		ed.CycleMethod()
	case controls.OpToggleLabels:
		g.s.ToggleLabels()
	}
}

func (g *game) mouse() {
	ed := g.ed()
	x, y := ebiten.CursorPosition()
	p := collide.Pt(float64(x), float64(y))

	if x != g.input.x || y != g.input.y || !g.input.moved {
		g.input.x, g.input.y, g.input.moved = x, y, true
		ed.Move(p)
	}

	for _, b := range buttons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			ed.Press(b.ed, p)
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			ed.Release(b.ed, p)
		}
	}

	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		ed.PanBy(-wx*g.step, -wy*g.step)
	}
}

func (g *game) commandInput(k *controls.Keys) {
	line, submit, closed := g.cmd.Update(k)
	if !closed {
		return
	}
	g.cmd = nil
	if !submit {
		return
	}
	if err := g.s.Run(line); err != nil {
		collide.Logger().Debug("viewer: command failed", "line", line, "err", err)
	}
}
