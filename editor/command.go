package editor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/collide"
)

// ErrUnknownCommand is returned by Exec for a verb it does not handle.
var ErrUnknownCommand = errors.New("editor: unknown command")

var propertyAliases = map[string]string{
	"x": PropX, "y": PropY,
	"w": PropWidth, "width": PropWidth,
	"h": PropHeight, "height": PropHeight,
	"r": PropRotation, "rot": PropRotation, "rotation": PropRotation,
}

// Exec runs a one-line text command against the editor:
//
//	x 40 | y 40 | width 60 | height 30 | rotation 45
//	expand 20 [generalized|preserve_shape|convex] | expand off
//	dir north 15
//	hull on|off
//	method
//	color #ff8800
//	tool rectangle|triangle|pentagon|hexagon|custom_polygon|none
//	snap | undo | redo | delete | clear | finish | cancel
//
// The editor's status line reports the outcome. Verbs not listed return
// ErrUnknownCommand so callers can layer their own commands on top.
func (e *Editor) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	verb, args := strings.ToLower(fields[0]), fields[1:]

	if prop, ok := propertyAliases[verb]; ok {
		if len(args) != 1 {
			return e.usage(verb + " <value>")
		}
		return e.SetProperty(prop, args[0])
	}

	switch verb {
	case "expand":
		if len(args) == 1 && args[0] == "off" {
			return e.RemoveCollisionBox()
		}
		if len(args) < 1 || len(args) > 2 {
			return e.usage("expand <distance> [method]")
		}
		d, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			e.setStatus("Invalid value entered", longStatus)
			return fmt.Errorf("%w: %q", ErrInvalidValue, args[0])
		}
		m := collide.Generalized
		if sel, ok := e.Selected(); ok {
			m = sel.Expansion.Method
		}
		if len(args) == 2 {
			if m, err = collide.ParseMethod(args[1]); err != nil {
				e.setStatus("Unknown expansion method", longStatus)
				return err
			}
		}
		return e.ApplyCollisionBox(d, m)

	case "dir":
		if len(args) != 2 {
			return e.usage("dir <north|south|east|west> <distance>")
		}
		dir, err := collide.ParseDirection(strings.ToLower(args[0]))
		if err != nil {
			e.setStatus(fmt.Sprintf("Unknown direction %q", args[0]), longStatus)
			return err
		}
		v, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			e.setStatus("Invalid value entered", longStatus)
			return fmt.Errorf("%w: %q", ErrInvalidValue, args[1])
		}
		return e.SetDirectional(dir, v)

	case "hull":
		if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
			return e.usage("hull on|off")
		}
		return e.SetConvexHull(args[0] == "on")

	case "method":
		_, err := e.CycleMethod()
		return err

	case "color", "colour":
		if len(args) != 1 {
			return e.usage("color #rrggbb")
		}
		return e.SetColor(args[0])

	case "tool":
		if len(args) != 1 {
			return e.usage("tool <shape>")
		}
		switch args[0] {
		case "none":
			e.SelectTool(ToolNone)
			return nil
		case "custom":
			e.SelectTool(ToolCustom)
			return nil
		}
		k, err := collide.ParseKind(args[0])
		if err != nil {
			e.setStatus(fmt.Sprintf("Unknown shape %q", args[0]), longStatus)
			return err
		}
		e.SelectTool(ToolFor(k))
		return nil

	case "snap":
		e.ToggleSnap()
		return nil
	case "undo":
		e.Undo()
		return nil
	case "redo":
		e.Redo()
		return nil
	case "delete":
		if e.selectedIndex() < 0 {
			return ErrNoSelection
		}
		e.DeleteSelected()
		return nil
	case "clear":
		e.ClearAll()
		return nil
	case "finish":
		return e.FinishPolygon()
	case "cancel":
		e.CancelPolygon()
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownCommand, verb)
}

func (e *Editor) usage(form string) error {
	e.setStatus("Usage: "+form, longStatus)
	return fmt.Errorf("%w: usage: %s", ErrInvalidValue, form)
}
