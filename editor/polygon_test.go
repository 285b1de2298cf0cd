package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/collide"
)

func TestPolygonEditor_NotDrawing(t *testing.T) {
	pe := NewPolygonEditor(20)
	assert.ErrorIs(t, pe.AddPoint(collide.Pt(0, 0)), ErrNotDrawing)
	assert.False(t, pe.Drawing())
}

func TestPolygonEditor_SnapsPoints(t *testing.T) {
	pe := NewPolygonEditor(20)
	pe.Start()
	require.NoError(t, pe.AddPoint(collide.Pt(3, 8)))
	require.NoError(t, pe.AddPoint(collide.Pt(58, 1)))

	assert.Equal(t, []collide.Point{{X: 0, Y: 0}, {X: 60, Y: 0}}, pe.Points())

	pe.SetPreview(collide.Pt(47, 33))
	p, ok := pe.Preview()
	require.True(t, ok)
	assert.Equal(t, collide.Pt(40, 40), p)
}

func TestPolygonEditor_IgnoresRepeats(t *testing.T) {
	pe := NewPolygonEditor(20)
	pe.Start()
	for _, p := range []collide.Point{{X: 0, Y: 0}, {X: 2, Y: 2}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 1, Y: 1}} {
		require.NoError(t, pe.AddPoint(p))
	}
	// The repeat of the start and the returning click are both dropped.
	assert.Equal(t, 3, pe.Count())
	assert.True(t, pe.CanFinish())
}

func TestPolygonEditor_RefusesCrossing(t *testing.T) {
	pe := NewPolygonEditor(20)
	pe.Start()
	for _, p := range []collide.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}} {
		require.NoError(t, pe.AddPoint(p))
	}
	assert.ErrorIs(t, pe.AddPoint(collide.Pt(60, -60)), ErrEdgeCrossing)
	assert.Equal(t, 3, pe.Count())

	require.NoError(t, pe.AddPoint(collide.Pt(0, 100)))
	assert.Equal(t, 4, pe.Count())
}

func TestPolygonEditor_Build(t *testing.T) {
	pe := NewPolygonEditor(20)
	pe.Start()
	for _, p := range []collide.Point{{X: 40, Y: 60}, {X: 140, Y: 60}, {X: 100, Y: 120}} {
		require.NoError(t, pe.AddPoint(p))
	}

	o, err := pe.Build("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, collide.CustomPolygon, o.Kind)
	assert.Equal(t, 40.0, o.X)
	assert.Equal(t, 60.0, o.Y)
	assert.Equal(t, 100.0, o.Width)
	assert.Equal(t, 60.0, o.Height)
	assert.Equal(t, "#ff0000", o.Color)
	assert.Zero(t, o.Rotation)
	assert.Equal(t, []collide.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 60, Y: 60}}, o.Points)
	assert.True(t, pe.Drawing(), "Build must not end the session")
}

func TestPolygonEditor_BuildErrors(t *testing.T) {
	pe := NewPolygonEditor(20)
	pe.Start()
	require.NoError(t, pe.AddPoint(collide.Pt(0, 0)))
	require.NoError(t, pe.AddPoint(collide.Pt(100, 0)))
	_, err := pe.Build("")
	assert.ErrorIs(t, err, ErrTooFewPoints)

	flat := NewPolygonEditor(5)
	flat.Start()
	for _, p := range []collide.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 50, Y: 5}} {
		require.NoError(t, flat.AddPoint(p))
	}
	_, err = flat.Build("")
	assert.ErrorIs(t, err, ErrTooSmall)
}

func TestPolygonEditor_RemoveLastAndCancel(t *testing.T) {
	pe := NewPolygonEditor(20)
	pe.Start()
	require.NoError(t, pe.AddPoint(collide.Pt(0, 0)))
	require.NoError(t, pe.AddPoint(collide.Pt(40, 0)))

	assert.True(t, pe.RemoveLast())
	assert.Equal(t, 1, pe.Count())

	pe.Cancel()
	assert.False(t, pe.Drawing())
	assert.Zero(t, pe.Count())
	assert.False(t, pe.RemoveLast())
	_, ok := pe.Preview()
	assert.False(t, ok)
}
