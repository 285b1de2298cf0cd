// Package controls maps one tick of keyboard and pointer state to editor
// actions.
//
// The window layer fills a Keys value from its input library and applies
// the returned Actions; nothing here talks to a window.
package controls

import (
	"slices"

	"github.com/chewxy/math32"

	"github.com/gogpu/collide/editor"
)

// Key is a key the viewer reacts to.
type Key int

const (
	KeyR Key = iota
	KeyT
	KeyP
	KeyH
	KeyC
	KeyN
	KeyY
	KeyZ
	KeyS
	KeyQ
	KeyG
	KeyM
	KeyL
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyEnter
	KeyLeft
	KeyRight
	KeyUp
	KeyDown

	numKeys
)

// Keys is the keyboard state of one tick.
type Keys struct {
	pressed [numKeys]bool
	held    [numKeys]bool
	repeat  [numKeys]bool

	// Ctrl is true while Control or Command is held.
	Ctrl  bool
	Shift bool
	// Chars is the text typed this tick.
	Chars []rune
}

// Press marks keys as having gone down this tick. Pressed keys are also
// held.
func (k *Keys) Press(keys ...Key) {
	for _, key := range keys {
		k.pressed[key] = true
		k.held[key] = true
	}
}

// Hold marks keys as held down.
func (k *Keys) Hold(keys ...Key) {
	for _, key := range keys {
		k.held[key] = true
	}
}

// Repeat marks keys as held long enough to auto-repeat.
func (k *Keys) Repeat(keys ...Key) {
	for _, key := range keys {
		k.repeat[key] = true
	}
}

// Pressed reports whether key went down this tick.
func (k *Keys) Pressed(key Key) bool { return k.pressed[key] }

// Held reports whether key is down.
func (k *Keys) Held(key Key) bool { return k.held[key] }

// Op is something the viewer does in response to keys.
type Op int

const (
	OpUndo Op = iota
	OpRedo
	OpSave
	OpQuit
	OpCommandLine
	OpTool
	OpEscape
	OpBackspace
	OpDelete
	OpFinishPolygon
	OpToggleSnap
	OpCycleMethod
	OpToggleLabels
)

// Action is one Op, with the tool for OpTool.
type Action struct {
	Op   Op
	Tool editor.Tool
}

var toolKeys = []struct {
	key  Key
	tool editor.Tool
}{
	{KeyR, editor.ToolRectangle},
	{KeyT, editor.ToolTriangle},
	{KeyP, editor.ToolPentagon},
	{KeyH, editor.ToolHexagon},
	{KeyC, editor.ToolCustom},
}

// Actions returns what k asks for while no confirmation is pending and the
// command line is closed. Ctrl shortcuts shadow every other key, and ':'
// opens the command line instead of anything else.
func Actions(k *Keys) []Action {
	if k.Ctrl {
		switch {
		case k.Pressed(KeyZ) && k.Shift, k.Pressed(KeyY):
			return []Action{{Op: OpRedo}}
		case k.Pressed(KeyZ):
			return []Action{{Op: OpUndo}}
		case k.Pressed(KeyS):
			return []Action{{Op: OpSave}}
		case k.Pressed(KeyQ):
			return []Action{{Op: OpQuit}}
		}
		return nil
	}
	if slices.Contains(k.Chars, ':') {
		return []Action{{Op: OpCommandLine}}
	}

	var out []Action
	for _, tk := range toolKeys {
		if k.Pressed(tk.key) {
			out = append(out, Action{Op: OpTool, Tool: tk.tool})
		}
	}
	switch {
	case k.Pressed(KeyEscape):
		out = append(out, Action{Op: OpEscape})
	case k.Pressed(KeyBackspace):
		out = append(out, Action{Op: OpBackspace})
	case k.Pressed(KeyDelete):
		out = append(out, Action{Op: OpDelete})
	case k.Pressed(KeyEnter):
		out = append(out, Action{Op: OpFinishPolygon})
	case k.Pressed(KeyG):
		out = append(out, Action{Op: OpToggleSnap})
	case k.Pressed(KeyM):
		out = append(out, Action{Op: OpCycleMethod})
	case k.Pressed(KeyL):
		out = append(out, Action{Op: OpToggleLabels})
	case k.Pressed(KeyN):
		out = append(out, Action{Op: OpTool, Tool: editor.ToolNone})
	}
	return out
}

// Confirmation returns the answer to a pending question: Y or Enter says
// yes, N or Escape says no. ok is false when k answers nothing.
func Confirmation(k *Keys) (yes, ok bool) {
	switch {
	case k.Pressed(KeyY), k.Pressed(KeyEnter):
		return true, true
	case k.Pressed(KeyN), k.Pressed(KeyEscape):
		return false, true
	}
	return false, false
}

// panDivisor spreads one arrow step over four ticks of a held key.
const panDivisor = 4

// Pan returns how far the held arrow keys scroll the view this tick.
func Pan(k *Keys, step float64) (dx, dy float64) {
	if k.Held(KeyLeft) {
		dx -= step
	}
	if k.Held(KeyRight) {
		dx += step
	}
	if k.Held(KeyUp) {
		dy -= step
	}
	if k.Held(KeyDown) {
		dy += step
	}
	return dx / panDivisor, dy / panDivisor
}

// CommandLine is the text typed after ':'.
type CommandLine struct {
	text []rune
}

// String returns the text typed so far.
func (c *CommandLine) String() string { return string(c.text) }

// Update applies one tick of keys. It returns the line and submit=true
// when Enter is pressed, and closed=true when the line is finished either
// way: Enter, Escape, or Backspace on an empty line.
func (c *CommandLine) Update(k *Keys) (line string, submit, closed bool) {
	switch {
	case k.Pressed(KeyEscape):
		return "", false, true
	case k.Pressed(KeyEnter):
		return string(c.text), true, true
	case k.Pressed(KeyBackspace) || k.repeat[KeyBackspace]:
		if n := len(c.text); n > 0 {
			c.text = c.text[:n-1]
		} else if k.Pressed(KeyBackspace) {
			return "", false, true
		}
	}
	c.text = append(c.text, k.Chars...)
	return "", false, false
}

// Shape is a mouse cursor shape.
type Shape int

const (
	ShapeDefault Shape = iota
	ShapeCrosshair
	ShapeMove
	ShapeResizeNWSE
	ShapeResizeNESW
)

// CursorShape returns the pointer shape for an editor cursor.
func CursorShape(c editor.Cursor) Shape {
	switch c {
	case editor.CursorCrosshair:
		return ShapeCrosshair
	case editor.CursorMove, editor.CursorGrab:
		return ShapeMove
	case editor.CursorResizeNWSE:
		return ShapeResizeNWSE
	case editor.CursorResizeNESW:
		return ShapeResizeNESW
	}
	return ShapeDefault
}

// SnapScreen returns the screen position of the grid point nearest to the
// pointer at (x, y) for a view scrolled by (ox, oy).
func SnapScreen(x, y, ox, oy, grid float32) (float32, float32) {
	if !(grid > 0) {
		return x, y
	}
	cx := math32.Floor((x+ox)/grid+0.5) * grid
	cy := math32.Floor((y+oy)/grid+0.5) * grid
	return cx - ox, cy - oy
}
