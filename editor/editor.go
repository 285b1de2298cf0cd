// Package editor implements the interactive obstacle canvas: placing,
// selecting, moving, rotating and resizing obstacles, authoring custom
// polygons, and editing collision box settings.
//
// The Editor is a plain state machine driven by pointer and key events in
// screen coordinates. It owns no window and draws nothing; the viewer
// package feeds it input and renders its state with the render package.
// An Editor is not safe for concurrent use.
package editor

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/gogpu/collide"
)

// Editor holds the obstacles on the canvas and the interaction state.
type Editor struct {
	width, height float64
	grid          float64
	snap          bool
	color         string
	det           *collide.Detector
	history       *History
	now           func() time.Time

	obstacles []collide.Obstacle
	selected  string
	tool      Tool
	mode      Mode
	polygon   *PolygonEditor

	// Drag state.
	dragStart      collide.Point
	preview        collide.Obstacle
	hasPreview     bool
	previewOverlap bool
	moveOffset     collide.Point
	origin         collide.Obstacle
	moveOverlap    bool
	handle         Handle
	before         []collide.Obstacle
	changed        bool

	// Viewport.
	offset       collide.Point
	viewW, viewH float64
	panLast      collide.Point
	pointer      collide.Point

	status   Status
	statusAt time.Time
	pending  *Confirmation

	revision uint64
	saved    uint64
}

// New creates an empty canvas.
func New(opts ...Option) *Editor {
	e := &Editor{
		width:  DefaultCanvasWidth,
		height: DefaultCanvasHeight,
		grid:   DefaultGrid,
		color:  DefaultColor,
		det:    collide.NewDetector(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.history == nil {
		e.history = NewHistory(DefaultHistoryLimit)
	}
	e.polygon = NewPolygonEditor(e.grid)
	e.setStatus(fmt.Sprintf("Ready | Canvas: %gx%g pixels | Use middle mouse button to pan", e.width, e.height), 0)
	return e
}

// Size returns the canvas extent.
func (e *Editor) Size() (w, h float64) { return e.width, e.height }

// Grid returns the grid spacing.
func (e *Editor) Grid() float64 { return e.grid }

// Snap reports whether drawing and moving snap to the grid.
func (e *Editor) Snap() bool { return e.snap }

// Detector returns the collision detector in use.
func (e *Editor) Detector() *collide.Detector { return e.det }

// Tool returns the active tool.
func (e *Editor) Tool() Tool { return e.tool }

// Mode returns the gesture in progress.
func (e *Editor) Mode() Mode { return e.mode }

// Polygon returns the custom polygon editor. Its points are in canvas
// coordinates.
func (e *Editor) Polygon() *PolygonEditor { return e.polygon }

// PolygonActive reports whether a custom polygon is being authored.
func (e *Editor) PolygonActive() bool { return e.polygon.Drawing() }

// Obstacles returns the obstacles in drawing order. The slice is shared;
// callers must not modify it.
func (e *Editor) Obstacles() []collide.Obstacle { return e.obstacles }

// Revision increases on every change to the obstacles.
func (e *Editor) Revision() uint64 { return e.revision }

// Dirty reports whether obstacles changed since MarkSaved.
func (e *Editor) Dirty() bool { return e.revision != e.saved }

// MarkSaved records the current revision as persisted.
func (e *Editor) MarkSaved() { e.saved = e.revision }

// touch records a change to the obstacles.
func (e *Editor) touch() { e.revision++ }

// Selected returns the selected obstacle.
func (e *Editor) Selected() (collide.Obstacle, bool) {
	i := e.selectedIndex()
	if i < 0 {
		return collide.Obstacle{}, false
	}
	return e.obstacles[i], true
}

// SelectedID returns the ID of the selection, or "".
func (e *Editor) SelectedID() string { return e.selected }

func (e *Editor) selectedIndex() int {
	if e.selected == "" {
		return -1
	}
	return slices.IndexFunc(e.obstacles, func(o collide.Obstacle) bool { return o.ID == e.selected })
}

// Select selects the obstacle with the given ID; "" clears the selection.
func (e *Editor) Select(id string) bool {
	if id == "" {
		e.selected = ""
		return true
	}
	if slices.IndexFunc(e.obstacles, func(o collide.Obstacle) bool { return o.ID == id }) < 0 {
		return false
	}
	e.selected = id
	return true
}

// MoveOverlap reports whether the obstacle being moved currently collides.
func (e *Editor) MoveOverlap() bool {
	return (e.mode == ModeMoving || e.mode == ModeResizing) && e.moveOverlap
}

// Preview returns the shape being dragged out, if any.
func (e *Editor) Preview() (Preview, bool) {
	if e.mode != ModeDrawing || !e.hasPreview {
		return Preview{}, false
	}
	return Preview{Obstacle: e.preview, Overlap: e.previewOverlap}, true
}

// Offset returns the canvas position shown at the top-left of the view.
func (e *Editor) Offset() collide.Point { return e.offset }

// Pointer returns the last pointer position in canvas coordinates.
func (e *Editor) Pointer() collide.Point { return e.pointer }

// SetViewport sets the visible area so panning stays on the canvas.
func (e *Editor) SetViewport(w, h float64) {
	e.viewW, e.viewH = w, h
	e.PanBy(0, 0)
}

// PanBy scrolls the view by (dx, dy) canvas pixels.
func (e *Editor) PanBy(dx, dy float64) {
	maxX := math.Max(0, e.width-e.viewW)
	maxY := math.Max(0, e.height-e.viewH)
	e.offset = collide.Point{
		X: collide.Clamp(e.offset.X+dx, 0, maxX),
		Y: collide.Clamp(e.offset.Y+dy, 0, maxY),
	}
}

// ToCanvas converts a screen position to canvas coordinates.
func (e *Editor) ToCanvas(screen collide.Point) collide.Point {
	return screen.Add(e.offset)
}

// setStatus replaces the status message.
func (e *Editor) setStatus(text string, d time.Duration) {
	e.status = Status{Text: text, Duration: d}
	e.statusAt = e.now()
}

// Status returns the current status message, or a zero Status once a
// timed message has expired.
func (e *Editor) Status() Status {
	if e.status.Duration > 0 && e.now().Sub(e.statusAt) >= e.status.Duration {
		return Status{}
	}
	return e.status
}

// Pending returns the unanswered confirmation, if any.
func (e *Editor) Pending() (Confirmation, bool) {
	if e.pending == nil {
		return Confirmation{}, false
	}
	return *e.pending, true
}

// Confirm answers the pending question. It reports whether a question was
// pending.
func (e *Editor) Confirm(yes bool) bool {
	p := e.pending
	if p == nil {
		return false
	}
	e.pending = nil
	if !yes {
		e.setStatus(p.Title+" cancelled", shortStatus)
		return true
	}
	if p.action != nil {
		p.action()
	}
	return true
}

// ask stores a question to be answered through Confirm.
func (e *Editor) ask(title, question string, action func()) {
	e.pending = &Confirmation{Title: title, Question: question, action: action}
	e.setStatus(question+" (y/n)", 0)
}

// newID returns a fresh obstacle ID.
func newID() string {
	return uuid.NewString()
}

// SetObstacles replaces the scene, for example after loading a file.
// Obstacles without an ID get one. The replacement can be undone.
func (e *Editor) SetObstacles(obstacles []collide.Obstacle) {
	e.history.Push(e.obstacles)
	e.replace(obstacles)
	e.touch()
}

// Load replaces the scene and forgets the undo history. The loaded state
// counts as saved.
func (e *Editor) Load(obstacles []collide.Obstacle) {
	e.history.Reset()
	e.replace(obstacles)
	e.touch()
	e.MarkSaved()
}

func (e *Editor) replace(obstacles []collide.Obstacle) {
	e.cancelGesture()
	next := make([]collide.Obstacle, len(obstacles))
	for i, o := range obstacles {
		o = o.Clone()
		if o.ID == "" {
			o.ID = newID()
		}
		next[i] = o
	}
	e.obstacles = next
	if e.selectedIndex() < 0 {
		e.selected = ""
	}
}

// cancelGesture abandons any drag without applying it.
func (e *Editor) cancelGesture() {
	if (e.mode == ModeMoving || e.mode == ModeRotating || e.mode == ModeResizing) && e.changed {
		if i := e.selectedIndex(); i >= 0 {
			e.obstacles[i] = e.origin
		}
	}
	e.mode = ModeIdle
	e.hasPreview = false
	e.previewOverlap = false
	e.moveOverlap = false
	e.changed = false
	e.before = nil
}

// SelectTool activates a placement tool. The custom tool starts authoring
// a polygon; any other tool abandons one in progress.
func (e *Editor) SelectTool(t Tool) {
	e.tool = t
	switch t {
	case ToolCustom:
		e.polygon.Start()
		e.setStatus("Custom Polygon mode - Click to add points (SNAP TO GRID: ALWAYS ON) | Press Esc to cancel", 0)
	case ToolNone:
		if e.polygon.Drawing() {
			e.polygon.Cancel()
		}
		e.setStatus("No tool selected", shortStatus)
	default:
		if e.polygon.Drawing() {
			e.polygon.Cancel()
		}
		e.setStatus(fmt.Sprintf("Tool: %s selected - Click and drag to place", t), 0)
	}
}

// ToggleSnap flips grid snapping for drawing and moving.
func (e *Editor) ToggleSnap() bool {
	e.snap = !e.snap
	if e.snap {
		e.setStatus("Snap to Grid: ON", shortStatus)
	} else {
		e.setStatus("Snap to Grid: OFF", shortStatus)
	}
	return e.snap
}

// snapPoint applies canvas snapping when enabled.
func (e *Editor) snapPoint(p collide.Point) collide.Point {
	if !e.snap {
		return p
	}
	return collide.SnapPoint(p, e.grid)
}

// RotationHandle returns the rotation handle centre: the top-right corner
// of the unrotated box.
func RotationHandle(o collide.Obstacle) collide.Point {
	return collide.Point{X: o.X + o.Width, Y: o.Y}
}

// ResizeHandles returns the four box corners.
func ResizeHandles(o collide.Obstacle) map[Handle]collide.Point {
	return map[Handle]collide.Point{
		HandleTopLeft:     {X: o.X, Y: o.Y},
		HandleTopRight:    {X: o.X + o.Width, Y: o.Y},
		HandleBottomLeft:  {X: o.X, Y: o.Y + o.Height},
		HandleBottomRight: {X: o.X + o.Width, Y: o.Y + o.Height},
	}
}

// onRotationHandle reports whether p grabs the rotation handle of o.
func onRotationHandle(o collide.Obstacle, p collide.Point) bool {
	return o.CanRotate() && p.Distance(RotationHandle(o)) <= RotationHandleRadius
}

// resizeHandleAt returns the resize handle of o under p.
func resizeHandleAt(o collide.Obstacle, p collide.Point) Handle {
	for _, h := range []Handle{HandleTopLeft, HandleTopRight, HandleBottomLeft, HandleBottomRight} {
		if p.Distance(ResizeHandles(o)[h]) <= ResizeHandleRadius {
			return h
		}
	}
	return HandleNone
}

// Cursor returns the pointer shape for the last pointer position.
func (e *Editor) Cursor() Cursor {
	switch e.mode {
	case ModePanning:
		return CursorGrab
	case ModeMoving:
		return CursorMove
	case ModeRotating:
		return CursorCrosshair
	case ModeResizing:
		return handleCursor(e.handle)
	}
	if e.polygon.Drawing() {
		return CursorCrosshair
	}
	if sel, ok := e.Selected(); ok {
		if onRotationHandle(sel, e.pointer) {
			return CursorCrosshair
		}
		if h := resizeHandleAt(sel, e.pointer); h != HandleNone {
			return handleCursor(h)
		}
	}
	return CursorDefault
}

func handleCursor(h Handle) Cursor {
	switch h {
	case HandleTopLeft, HandleBottomRight:
		return CursorResizeNWSE
	case HandleTopRight, HandleBottomLeft:
		return CursorResizeNESW
	}
	return CursorDefault
}

// Press handles a pointer button going down at a screen position.
func (e *Editor) Press(btn Button, screen collide.Point) {
	if e.pending != nil {
		return
	}
	p := e.ToCanvas(screen)
	e.pointer = p

	switch btn {
	case ButtonMiddle:
		e.cancelGesture()
		e.mode = ModePanning
		e.panLast = screen
	case ButtonLeft:
		e.pressLeft(p)
	}
}

func (e *Editor) pressLeft(p collide.Point) {
	if e.mode != ModeIdle {
		return
	}
	if e.polygon.Drawing() {
		e.addPolygonPoint(p)
		return
	}

	if i := e.selectedIndex(); i >= 0 {
		sel := e.obstacles[i]
		if onRotationHandle(sel, p) {
			e.beginEdit(i, ModeRotating)
			return
		}
		if h := resizeHandleAt(sel, p); h != HandleNone {
			e.beginEdit(i, ModeResizing)
			e.handle = h
			return
		}
	}

	if i := e.det.ObstacleAt(p, e.obstacles); i >= 0 {
		o := e.obstacles[i]
		e.selected = o.ID
		e.beginEdit(i, ModeMoving)
		e.moveOffset = collide.Point{X: p.X - o.X, Y: p.Y - o.Y}
		return
	}

	e.selected = ""
	if k, ok := e.tool.Kind(); ok && k.Basic() {
		e.mode = ModeDrawing
		e.dragStart = e.snapPoint(p)
		e.hasPreview = false
	}
}

// beginEdit starts a gesture that modifies obstacle i.
func (e *Editor) beginEdit(i int, m Mode) {
	e.mode = m
	e.origin = e.obstacles[i].Clone()
	e.before = snapshot(e.obstacles)
	e.moveOverlap = false
	e.changed = false
}

// Move handles pointer motion to a screen position.
func (e *Editor) Move(screen collide.Point) {
	if e.mode == ModePanning {
		d := screen.Sub(e.panLast)
		e.panLast = screen
		e.PanBy(-d.X, -d.Y)
		e.pointer = e.ToCanvas(screen)
		return
	}

	p := e.ToCanvas(screen)
	e.pointer = p
	if e.polygon.Drawing() {
		e.polygon.SetPreview(p)
	}

	switch e.mode {
	case ModeRotating:
		e.rotateTo(p)
	case ModeMoving:
		e.moveTo(p)
	case ModeResizing:
		e.resizeTo(p)
	case ModeDrawing:
		e.dragTo(p)
	}
}

func (e *Editor) rotateTo(p collide.Point) {
	i := e.selectedIndex()
	if i < 0 || !e.obstacles[i].CanRotate() {
		return
	}
	c := e.obstacles[i].Center()
	deg := math.Atan2(p.Y-c.Y, p.X-c.X) * 180 / math.Pi
	e.obstacles[i].Rotation = normalizeDegrees(deg)
	e.changed = true
}

func (e *Editor) moveTo(p collide.Point) {
	i := e.selectedIndex()
	if i < 0 {
		return
	}
	pos := e.snapPoint(p.Sub(e.moveOffset))
	e.obstacles[i].X, e.obstacles[i].Y = pos.X, pos.Y
	e.moveOverlap = e.det.Overlaps(e.obstacles[i], e.obstacles, e.selected)
	e.changed = true
}

// resizeTo drags the active handle to p. The opposite corner stays put and
// a box smaller than the minimum size is ignored.
func (e *Editor) resizeTo(p collide.Point) {
	i := e.selectedIndex()
	if i < 0 {
		return
	}
	o := e.obstacles[i]
	sp := e.snapPoint(p)
	x0, y0, x1, y1 := o.X, o.Y, o.X+o.Width, o.Y+o.Height

	switch e.handle {
	case HandleTopLeft:
		x0, y0 = sp.X, sp.Y
	case HandleTopRight:
		x1, y0 = sp.X, sp.Y
	case HandleBottomLeft:
		x0, y1 = sp.X, sp.Y
	case HandleBottomRight:
		x1, y1 = sp.X, sp.Y
	default:
		return
	}
	if x1-x0 < collide.MinObstacleSize || y1-y0 < collide.MinObstacleSize {
		return
	}

	e.obstacles[i] = reshape(o, x0, y0, x1-x0, y1-y0)
	e.moveOverlap = e.det.Overlaps(e.obstacles[i], e.obstacles, e.selected)
	e.changed = true
}

// reshape moves and resizes o. A custom outline is scaled to the new box.
func reshape(o collide.Obstacle, x, y, w, h float64) collide.Obstacle {
	if o.Kind == collide.CustomPolygon && o.Width > 0 && o.Height > 0 {
		sx, sy := w/o.Width, h/o.Height
		pts := make([]collide.Point, len(o.Points))
		for i, p := range o.Points {
			pts[i] = collide.Point{X: p.X * sx, Y: p.Y * sy}
		}
		o.Points = pts
	}
	o.X, o.Y, o.Width, o.Height = x, y, w, h
	return o
}

func (e *Editor) dragTo(p collide.Point) {
	k, ok := e.tool.Kind()
	if !ok {
		return
	}
	end := e.snapPoint(p)
	e.preview = collide.Obstacle{
		Kind:   k,
		X:      math.Min(e.dragStart.X, end.X),
		Y:      math.Min(e.dragStart.Y, end.Y),
		Width:  math.Abs(end.X - e.dragStart.X),
		Height: math.Abs(end.Y - e.dragStart.Y),
		Color:  e.color,
	}
	e.hasPreview = true
	e.previewOverlap = e.det.Overlaps(e.preview, e.obstacles, "")
}

// Release handles a pointer button going up at a screen position.
func (e *Editor) Release(btn Button, screen collide.Point) {
	p := e.ToCanvas(screen)
	e.pointer = p

	switch {
	case btn == ButtonMiddle && e.mode == ModePanning:
		e.mode = ModeIdle
	case btn != ButtonLeft:
	case e.mode == ModeRotating:
		e.finishEdit("")
	case e.mode == ModeMoving:
		e.finishEdit("Cannot move obstacle: Would overlap with another obstacle")
	case e.mode == ModeResizing:
		e.finishEdit("Cannot resize obstacle: Would overlap with another obstacle")
	case e.mode == ModeDrawing:
		e.dragTo(p)
		e.finishDraw()
	}
}

// finishEdit ends a move, rotate or resize. An overlapping result is put
// back where it started and reported with msg.
func (e *Editor) finishEdit(msg string) {
	i := e.selectedIndex()
	switch {
	case i < 0:
	case e.moveOverlap && msg != "":
		e.obstacles[i] = e.origin
		e.setStatus(msg, longStatus)
	case e.changed && !sameGeometry(e.origin, e.obstacles[i]):
		e.history.Push(e.before)
		e.touch()
	}
	e.mode = ModeIdle
	e.handle = HandleNone
	e.moveOverlap = false
	e.changed = false
	e.before = nil
}

func sameGeometry(a, b collide.Obstacle) bool {
	return a.X == b.X && a.Y == b.Y && a.Width == b.Width && a.Height == b.Height && a.Rotation == b.Rotation
}

func (e *Editor) finishDraw() {
	defer func() {
		e.mode = ModeIdle
		e.hasPreview = false
		e.previewOverlap = false
	}()
	if !e.hasPreview {
		return
	}
	o := e.preview
	if o.Width < collide.MinObstacleSize || o.Height < collide.MinObstacleSize {
		return
	}
	if e.det.Overlaps(o, e.obstacles, "") {
		e.setStatus("Cannot create obstacle: Overlaps with existing obstacle", longStatus)
		return
	}
	o.ID = newID()
	e.add(o)
	collide.Logger().Debug("editor: obstacle created", "id", o.ID, "kind", o.Kind)
}

// add appends o as a new undoable step.
func (e *Editor) add(o collide.Obstacle) {
	e.history.Push(e.obstacles)
	e.obstacles = append(e.obstacles, o)
	e.touch()
}

// Key handles an editing key.
func (e *Editor) Key(k Key) {
	if e.pending != nil {
		if k == KeyEscape {
			e.Confirm(false)
		}
		return
	}
	switch k {
	case KeyDelete:
		e.DeleteSelected()
	case KeyEscape:
		if e.polygon.Drawing() {
			e.CancelPolygon()
			return
		}
		if e.mode != ModeIdle {
			e.cancelGesture()
		}
	case KeyBackspace:
		if e.polygon.RemoveLast() {
			e.polygonStatus()
		}
	case KeyUndo:
		e.Undo()
	case KeyRedo:
		e.Redo()
	}
}

func (e *Editor) addPolygonPoint(p collide.Point) {
	if err := e.polygon.AddPoint(p); err != nil {
		e.setStatus("Cannot add point: edge would cross the polygon", longStatus)
		return
	}
	e.polygonStatus()
}

func (e *Editor) polygonStatus() {
	n := e.polygon.Count()
	s := fmt.Sprintf("Polygon: %d point(s) (snap to grid: ALWAYS ON)", n)
	if e.polygon.CanFinish() {
		s += " - Click Finish Polygon button or press Escape to cancel"
	} else {
		s += fmt.Sprintf(" - Need %d more point(s)", 3-n)
	}
	e.setStatus(s, 0)
}

// FinishPolygon turns the authored points into an obstacle. On failure the
// points are kept so the outline can still be corrected or cancelled.
func (e *Editor) FinishPolygon() error {
	if !e.polygon.Drawing() {
		return ErrNotDrawing
	}
	o, err := e.polygon.Build(e.color)
	switch {
	case errors.Is(err, ErrTooSmall):
		e.setStatus(fmt.Sprintf("Polygon must be at least %dx%d pixels", collide.MinObstacleSize, collide.MinObstacleSize), longStatus)
		return err
	case err != nil:
		e.setStatus("Polygon needs at least 3 points", longStatus)
		return err
	}
	if e.det.Overlaps(o, e.obstacles, "") {
		e.setStatus("Cannot create polygon: Overlaps with existing obstacle", longStatus)
		return ErrOverlap
	}

	o.ID = newID()
	e.add(o)
	e.polygon.Cancel()
	e.tool = ToolNone
	e.setStatus(fmt.Sprintf("Custom polygon created with %d points", len(o.Points)), longStatus)
	return nil
}

// CancelPolygon abandons the polygon being authored.
func (e *Editor) CancelPolygon() {
	if !e.polygon.Drawing() {
		return
	}
	e.polygon.Cancel()
	e.tool = ToolNone
	e.setStatus("Polygon drawing cancelled", shortStatus)
}

// DeleteSelected asks to delete the selection.
func (e *Editor) DeleteSelected() {
	if e.selectedIndex() < 0 {
		return
	}
	id := e.selected
	e.ask("Delete Obstacle", "Are you sure you want to delete the selected obstacle?", func() {
		i := slices.IndexFunc(e.obstacles, func(o collide.Obstacle) bool { return o.ID == id })
		if i < 0 {
			return
		}
		e.history.Push(e.obstacles)
		e.obstacles = slices.Delete(slices.Clone(e.obstacles), i, i+1)
		e.selected = ""
		e.touch()
		e.setStatus("Obstacle deleted", shortStatus)
	})
}

// ClearAll asks to delete every obstacle.
func (e *Editor) ClearAll() {
	if len(e.obstacles) == 0 {
		return
	}
	e.ask("Clear All Obstacles",
		fmt.Sprintf("Are you sure you want to delete all %d obstacle(s)?", len(e.obstacles)),
		func() {
			e.history.Push(e.obstacles)
			e.obstacles = nil
			e.selected = ""
			e.touch()
			e.setStatus("All obstacles cleared", shortStatus)
		})
}

// Undo restores the state before the last change.
func (e *Editor) Undo() bool {
	prev, ok := e.history.Undo(e.obstacles)
	if !ok {
		e.setStatus("Nothing to undo", shortStatus)
		return false
	}
	e.restore(prev)
	e.setStatus("Undo", shortStatus)
	return true
}

// Redo reapplies the last undone change.
func (e *Editor) Redo() bool {
	next, ok := e.history.Redo(e.obstacles)
	if !ok {
		e.setStatus("Nothing to redo", shortStatus)
		return false
	}
	e.restore(next)
	e.setStatus("Redo", shortStatus)
	return true
}

func (e *Editor) restore(obstacles []collide.Obstacle) {
	e.cancelGesture()
	e.obstacles = obstacles
	if e.selectedIndex() < 0 {
		e.selected = ""
	}
	e.touch()
}

// Collisions returns the pairs of obstacles that currently violate a
// clearance.
func (e *Editor) Collisions() []collide.Collision {
	return e.det.Collisions(e.obstacles)
}

// normalizeDegrees maps deg to [0, 360).
func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
