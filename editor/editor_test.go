package editor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/collide"
)

func drag(e *Editor, from, to collide.Point) {
	e.Press(ButtonLeft, from)
	e.Move(to)
	e.Release(ButtonLeft, to)
}

// withRect returns an editor holding one 60x40 rectangle at (100,100).
func withRect(t *testing.T, opts ...Option) *Editor {
	t.Helper()
	e := New(opts...)
	e.SelectTool(ToolRectangle)
	drag(e, collide.Pt(100, 100), collide.Pt(160, 140))
	require.Len(t, e.Obstacles(), 1)
	return e
}

func TestEditor_DrawRectangle(t *testing.T) {
	e := withRect(t)
	o := e.Obstacles()[0]

	assert.NotEmpty(t, o.ID)
	assert.Equal(t, collide.Rectangle, o.Kind)
	assert.Equal(t, collide.Pt(100, 100), collide.Pt(o.X, o.Y))
	assert.Equal(t, 60.0, o.Width)
	assert.Equal(t, 40.0, o.Height)
	assert.Equal(t, DefaultColor, o.Color)
	assert.Equal(t, collide.Generalized, o.Expansion.Method)
	assert.Equal(t, ModeIdle, e.Mode())
	assert.True(t, e.Dirty())
}

func TestEditor_DrawPreview(t *testing.T) {
	e := New()
	e.SelectTool(ToolHexagon)
	e.Press(ButtonLeft, collide.Pt(200, 200))
	e.Move(collide.Pt(150, 260))

	p, ok := e.Preview()
	require.True(t, ok)
	assert.Equal(t, collide.Hexagon, p.Obstacle.Kind)
	assert.Equal(t, collide.Pt(150, 200), collide.Pt(p.Obstacle.X, p.Obstacle.Y))
	assert.Equal(t, 50.0, p.Obstacle.Width)
	assert.False(t, p.Overlap)

	e.Release(ButtonLeft, collide.Pt(150, 260))
	_, ok = e.Preview()
	assert.False(t, ok)
	assert.Len(t, e.Obstacles(), 1)
}

func TestEditor_DrawSnapped(t *testing.T) {
	e := New(WithSnap(true))
	e.SelectTool(ToolRectangle)
	drag(e, collide.Pt(93, 108), collide.Pt(171, 149))

	require.Len(t, e.Obstacles(), 1)
	o := e.Obstacles()[0]
	assert.Equal(t, collide.Pt(100, 100), collide.Pt(o.X, o.Y))
	assert.Equal(t, 80.0, o.Width)
	assert.Equal(t, 40.0, o.Height)
}

func TestEditor_DrawTooSmall(t *testing.T) {
	e := New()
	e.SelectTool(ToolRectangle)
	drag(e, collide.Pt(100, 100), collide.Pt(105, 150))
	assert.Empty(t, e.Obstacles())
}

func TestEditor_DrawOverlapping(t *testing.T) {
	e := withRect(t)
	drag(e, collide.Pt(250, 200), collide.Pt(150, 120))

	assert.Len(t, e.Obstacles(), 1)
	assert.Equal(t, "Cannot create obstacle: Overlaps with existing obstacle", e.Status().Text)
}

func TestEditor_NoToolSelectsNothing(t *testing.T) {
	e := New()
	drag(e, collide.Pt(100, 100), collide.Pt(200, 200))
	assert.Empty(t, e.Obstacles())
	assert.Equal(t, ModeIdle, e.Mode())
}

func TestEditor_MoveAndUndo(t *testing.T) {
	e := withRect(t)
	id := e.Obstacles()[0].ID

	drag(e, collide.Pt(110, 110), collide.Pt(310, 130))
	assert.Equal(t, id, e.SelectedID())
	o, ok := e.Selected()
	require.True(t, ok)
	assert.Equal(t, collide.Pt(300, 120), collide.Pt(o.X, o.Y))

	require.True(t, e.Undo())
	o = e.Obstacles()[0]
	assert.Equal(t, collide.Pt(100, 100), collide.Pt(o.X, o.Y))
	assert.Equal(t, id, e.SelectedID(), "selection survives undo")

	require.True(t, e.Redo())
	o = e.Obstacles()[0]
	assert.Equal(t, collide.Pt(300, 120), collide.Pt(o.X, o.Y))
}

func TestEditor_MoveOverlapReverts(t *testing.T) {
	e := withRect(t)
	drag(e, collide.Pt(300, 100), collide.Pt(360, 140))
	require.Len(t, e.Obstacles(), 2)

	e.Press(ButtonLeft, collide.Pt(110, 110))
	e.Move(collide.Pt(310, 110))
	assert.True(t, e.MoveOverlap())
	e.Release(ButtonLeft, collide.Pt(310, 110))

	o := e.Obstacles()[0]
	assert.Equal(t, collide.Pt(100, 100), collide.Pt(o.X, o.Y))
	assert.Equal(t, "Cannot move obstacle: Would overlap with another obstacle", e.Status().Text)
	assert.False(t, e.MoveOverlap())
}

func TestEditor_Rotate(t *testing.T) {
	e := withRect(t)
	drag(e, collide.Pt(110, 110), collide.Pt(110, 110)) // select
	rev := e.Revision()

	e.Press(ButtonLeft, collide.Pt(160, 100))
	require.Equal(t, ModeRotating, e.Mode())
	assert.Equal(t, CursorCrosshair, e.Cursor())
	e.Move(collide.Pt(130, 170))
	e.Release(ButtonLeft, collide.Pt(130, 170))

	o, _ := e.Selected()
	assert.InDelta(t, 90, o.Rotation, 1e-9)
	assert.Greater(t, e.Revision(), rev)
}

func TestEditor_Resize(t *testing.T) {
	e := withRect(t)
	drag(e, collide.Pt(110, 110), collide.Pt(110, 110))

	e.Press(ButtonLeft, collide.Pt(160, 140))
	require.Equal(t, ModeResizing, e.Mode())
	assert.Equal(t, CursorResizeNWSE, e.Cursor())
	e.Move(collide.Pt(180, 160))
	e.Release(ButtonLeft, collide.Pt(180, 160))

	o, _ := e.Selected()
	assert.Equal(t, 80.0, o.Width)
	assert.Equal(t, 60.0, o.Height)

	// Shrinking below the minimum is ignored.
	e.Press(ButtonLeft, collide.Pt(180, 160))
	e.Move(collide.Pt(105, 105))
	e.Release(ButtonLeft, collide.Pt(105, 105))
	o, _ = e.Selected()
	assert.Equal(t, 80.0, o.Width)
}

func TestEditor_ClickEmptyDeselects(t *testing.T) {
	e := withRect(t)
	e.SelectTool(ToolNone)
	drag(e, collide.Pt(110, 110), collide.Pt(110, 110))
	require.NotEmpty(t, e.SelectedID())

	drag(e, collide.Pt(500, 500), collide.Pt(500, 500))
	assert.Empty(t, e.SelectedID())
}

func TestEditor_DeleteNeedsConfirmation(t *testing.T) {
	e := withRect(t)
	drag(e, collide.Pt(110, 110), collide.Pt(110, 110))

	e.Key(KeyDelete)
	c, ok := e.Pending()
	require.True(t, ok)
	assert.Equal(t, "Delete Obstacle", c.Title)
	assert.Len(t, e.Obstacles(), 1)

	// Input is blocked while the question is open.
	e.Press(ButtonLeft, collide.Pt(500, 500))
	assert.Equal(t, ModeIdle, e.Mode())

	require.True(t, e.Confirm(false))
	assert.Len(t, e.Obstacles(), 1)

	e.DeleteSelected()
	require.True(t, e.Confirm(true))
	assert.Empty(t, e.Obstacles())
	assert.Empty(t, e.SelectedID())
	assert.False(t, e.Confirm(true), "nothing left to confirm")
}

func TestEditor_ClearAll(t *testing.T) {
	e := withRect(t)
	drag(e, collide.Pt(300, 300), collide.Pt(360, 360))

	e.ClearAll()
	c, ok := e.Pending()
	require.True(t, ok)
	assert.Equal(t, "Are you sure you want to delete all 2 obstacle(s)?", c.Question)

	e.Key(KeyEscape)
	assert.Len(t, e.Obstacles(), 2)

	e.ClearAll()
	e.Confirm(true)
	assert.Empty(t, e.Obstacles())

	require.True(t, e.Undo())
	assert.Len(t, e.Obstacles(), 2)
}

func TestEditor_CustomPolygon(t *testing.T) {
	e := New()
	e.SelectTool(ToolCustom)
	require.True(t, e.PolygonActive())

	e.Press(ButtonLeft, collide.Pt(200, 200))
	e.Press(ButtonLeft, collide.Pt(300, 200))
	assert.Contains(t, e.Status().Text, "Need 1 more point(s)")
	assert.ErrorIs(t, e.FinishPolygon(), ErrTooFewPoints)

	e.Press(ButtonLeft, collide.Pt(300, 300))
	assert.Contains(t, e.Status().Text, "Polygon: 3 point(s)")
	require.NoError(t, e.FinishPolygon())

	require.Len(t, e.Obstacles(), 1)
	o := e.Obstacles()[0]
	assert.Equal(t, collide.CustomPolygon, o.Kind)
	assert.Equal(t, collide.Pt(200, 200), collide.Pt(o.X, o.Y))
	assert.Len(t, o.Points, 3)
	assert.False(t, e.PolygonActive())
	assert.Equal(t, ToolNone, e.Tool())
	assert.Equal(t, "Custom polygon created with 3 points", e.Status().Text)
}

func TestEditor_CustomPolygonOverlap(t *testing.T) {
	e := withRect(t)
	e.SelectTool(ToolCustom)
	for _, p := range []collide.Point{{X: 80, Y: 80}, {X: 200, Y: 80}, {X: 200, Y: 200}} {
		e.Press(ButtonLeft, p)
	}
	assert.ErrorIs(t, e.FinishPolygon(), ErrOverlap)
	assert.True(t, e.PolygonActive(), "points are kept after a failed finish")

	e.Key(KeyEscape)
	assert.False(t, e.PolygonActive())
	assert.Equal(t, "Polygon drawing cancelled", e.Status().Text)
}

func TestEditor_SwitchingToolCancelsPolygon(t *testing.T) {
	e := New()
	e.SelectTool(ToolCustom)
	e.Press(ButtonLeft, collide.Pt(0, 0))
	e.SelectTool(ToolTriangle)
	assert.False(t, e.PolygonActive())
	assert.Equal(t, "Tool: Triangle selected - Click and drag to place", e.Status().Text)
}

func TestEditor_Pan(t *testing.T) {
	e := New()
	e.SetViewport(800, 600)

	e.Press(ButtonMiddle, collide.Pt(400, 300))
	assert.Equal(t, ModePanning, e.Mode())
	assert.Equal(t, CursorGrab, e.Cursor())
	e.Move(collide.Pt(300, 200))
	e.Release(ButtonMiddle, collide.Pt(300, 200))

	assert.Equal(t, collide.Pt(100, 100), e.Offset())
	assert.Equal(t, collide.Pt(110, 120), e.ToCanvas(collide.Pt(10, 20)))

	e.PanBy(-500, 5000)
	assert.Equal(t, collide.Pt(0, DefaultCanvasHeight-600), e.Offset())
}

func TestEditor_StatusExpires(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e := New(WithClock(func() time.Time { return now }))
	assert.Contains(t, e.Status().Text, "Ready")

	assert.True(t, e.ToggleSnap())
	assert.Equal(t, "Snap to Grid: ON", e.Status().Text)
	now = now.Add(3 * time.Second)
	assert.Empty(t, e.Status().Text)
}

func TestEditor_LoadAssignsIDs(t *testing.T) {
	e := New()
	e.Load([]collide.Obstacle{
		{Kind: collide.Rectangle, X: 0, Y: 0, Width: 20, Height: 20},
		{ID: "keep", Kind: collide.Hexagon, X: 100, Y: 0, Width: 40, Height: 40},
	})
	require.Len(t, e.Obstacles(), 2)
	assert.NotEmpty(t, e.Obstacles()[0].ID)
	assert.Equal(t, "keep", e.Obstacles()[1].ID)
	assert.False(t, e.Dirty())
	assert.False(t, e.Undo())
	assert.Equal(t, "Nothing to undo", e.Status().Text)
}

func TestEditor_SetObstaclesCanBeUndone(t *testing.T) {
	e := withRect(t)
	e.SetObstacles(nil)
	assert.Empty(t, e.Obstacles())
	require.True(t, e.Undo())
	assert.Len(t, e.Obstacles(), 1)
}

func TestEditor_Collisions(t *testing.T) {
	e := New()
	e.Load([]collide.Obstacle{
		{ID: "a", Kind: collide.Rectangle, Width: 20, Height: 20},
		{ID: "b", Kind: collide.Rectangle, X: 22, Width: 20, Height: 20},
	})
	assert.Equal(t, []collide.Collision{{A: 0, B: 1}}, e.Collisions())
}
