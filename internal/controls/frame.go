package controls

import (
	"github.com/gogpu/collide"
	"github.com/gogpu/collide/editor"
)

// FrameKey identifies what a cached scene image shows.
type FrameKey struct {
	rev         uint64
	offset      collide.Point
	w, h        int
	selected    string
	moveOverlap bool
	labels      bool
}

// KeyFor returns the key of the picture ed renders in a w by h view.
func KeyFor(ed *editor.Editor, w, h int, labels bool) FrameKey {
	return FrameKey{
		rev:         ed.Revision(),
		offset:      ed.Offset(),
		w:           w,
		h:           h,
		selected:    ed.SelectedID(),
		moveOverlap: ed.MoveOverlap(),
		labels:      labels,
	}
}

// Live reports whether ed is in a gesture or authoring a polygon. The
// picture then changes with the pointer without a new revision.
func Live(ed *editor.Editor) bool {
	return ed.Mode() != editor.ModeIdle || ed.PolygonActive()
}

// FrameCache tracks whether the cached scene image is current.
type FrameCache struct {
	key   FrameKey
	valid bool
}

// Stale reports whether the image must be redrawn for key.
func (c *FrameCache) Stale(ed *editor.Editor, key FrameKey) bool {
	return !c.valid || Live(ed) || key != c.key
}

// Store records that the image now shows key.
func (c *FrameCache) Store(key FrameKey) {
	c.key, c.valid = key, true
}

// Invalidate forces the next Stale to report true.
func (c *FrameCache) Invalidate() { c.valid = false }
