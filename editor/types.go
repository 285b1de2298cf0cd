package editor

import (
	"time"

	"github.com/gogpu/collide"
)

// Tool is the shape placed by dragging on empty canvas.
type Tool int

const (
	ToolNone Tool = iota
	ToolRectangle
	ToolTriangle
	ToolPentagon
	ToolHexagon
	ToolCustom
)

// ToolFor returns the tool that places obstacles of kind k.
func ToolFor(k collide.Kind) Tool {
	switch k {
	case collide.Rectangle:
		return ToolRectangle
	case collide.Triangle:
		return ToolTriangle
	case collide.Pentagon:
		return ToolPentagon
	case collide.Hexagon:
		return ToolHexagon
	case collide.CustomPolygon:
		return ToolCustom
	}
	return ToolNone
}

// Kind returns the obstacle kind the tool places.
func (t Tool) Kind() (collide.Kind, bool) {
	switch t {
	case ToolRectangle:
		return collide.Rectangle, true
	case ToolTriangle:
		return collide.Triangle, true
	case ToolPentagon:
		return collide.Pentagon, true
	case ToolHexagon:
		return collide.Hexagon, true
	case ToolCustom:
		return collide.CustomPolygon, true
	}
	return 0, false
}

// String returns the tool label.
func (t Tool) String() string {
	if k, ok := t.Kind(); ok {
		if k == collide.CustomPolygon {
			return "Custom"
		}
		return k.Title()
	}
	return "None"
}

// Mode is the gesture in progress.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDrawing
	ModeMoving
	ModeRotating
	ModeResizing
	ModePanning
)

var modeNames = [...]string{"idle", "drawing", "moving", "rotating", "resizing", "panning"}

func (m Mode) String() string {
	if m < ModeIdle || m > ModePanning {
		return "unknown"
	}
	return modeNames[m]
}

// Button identifies a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Key is an editing key the canvas reacts to.
type Key int

const (
	KeyDelete Key = iota
	KeyEscape
	KeyBackspace
	KeyUndo
	KeyRedo
)

// Handle names a resize handle on the selection's box.
type Handle int

const (
	HandleNone Handle = iota
	HandleTopLeft
	HandleTopRight
	HandleBottomLeft
	HandleBottomRight
)

// Handle sizes in canvas pixels.
const (
	RotationHandleRadius = 10
	ResizeHandleRadius   = 8
)

// Cursor is the pointer shape the canvas asks for.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorCrosshair
	CursorMove
	CursorGrab
	CursorResizeNWSE
	CursorResizeNESW
)

// Status is a status bar message. A zero Duration keeps the message until
// another replaces it.
type Status struct {
	Text     string
	Duration time.Duration
}

// Message durations used by the canvas.
const (
	shortStatus = 2 * time.Second
	longStatus  = 3 * time.Second
)

// Confirmation is a pending yes/no question. The action runs only when
// the question is answered yes through Editor.Confirm.
type Confirmation struct {
	Title    string
	Question string

	action func()
}

// Preview is the shape being dragged out with a parametric tool.
type Preview struct {
	Obstacle collide.Obstacle
	Overlap  bool
}
