package editor

import (
	"github.com/jinzhu/copier"

	"github.com/gogpu/collide"
)

// DefaultHistoryLimit is the number of undo steps kept.
const DefaultHistoryLimit = 100

// History is a bounded undo/redo stack of scene snapshots. Snapshots are
// deep copies, so later edits never reach into stored states.
type History struct {
	limit int
	undo  [][]collide.Obstacle
	redo  [][]collide.Obstacle
}

// NewHistory creates a history keeping at most limit undo steps.
// A non-positive limit uses DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// snapshot deep-copies a scene.
func snapshot(obstacles []collide.Obstacle) []collide.Obstacle {
	out := make([]collide.Obstacle, 0, len(obstacles))
	if err := copier.CopyWithOption(&out, &obstacles, copier.Option{DeepCopy: true}); err != nil {
		// copier only fails on mismatched types; fall back to Clone.
		collide.Logger().Warn("editor: snapshot copy failed", "err", err)
		out = out[:0]
		for _, o := range obstacles {
			out = append(out, o.Clone())
		}
	}
	return out
}

// Push records state as the newest undo step and clears the redo stack.
func (h *History) Push(state []collide.Obstacle) {
	h.undo = append(h.undo, snapshot(state))
	if len(h.undo) > h.limit {
		h.undo = h.undo[len(h.undo)-h.limit:]
	}
	h.redo = nil
}

// Undo returns the previous state and records current for Redo.
func (h *History) Undo(current []collide.Obstacle) ([]collide.Obstacle, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, snapshot(current))
	return snapshot(prev), true
}

// Redo returns the state undone most recently and records current for Undo.
func (h *History) Redo(current []collide.Obstacle) ([]collide.Obstacle, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, snapshot(current))
	return snapshot(next), true
}

// CanUndo reports whether Undo has a state to return.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo has a state to return.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Reset drops all recorded states.
func (h *History) Reset() {
	h.undo, h.redo = nil, nil
}
