// internal/history/history.go
//
// Undo/redo over whole-match snapshots.
//
// Layout:
//   - past:   earlier states, most recent last.
//   - future: undone states, most recent first.
//
// Every snapshot going in or coming out is deep-copied with match.Clone, so
// no two entries (or the caller's live state) ever share a slice or pointer.
// Recording a new state discards the redo branch.

package history

import "github.com/robalobadob/cricket-scorer/internal/match"

// Manager holds the undo and redo stacks. The zero value is ready to use
// and keeps unlimited history.
type Manager struct {
	past   []match.Match
	future []match.Match
	limit  int // max past entries; 0 = unlimited
}

// New returns a Manager keeping at most limit undo steps (0 = unlimited).
func New(limit int) *Manager {
	if limit < 0 {
		limit = 0
	}
	return &Manager{limit: limit}
}

// Record stores prior, the state as it was before a mutation, and clears
// the redo stack.
func (h *Manager) Record(prior match.Match) {
	h.pushPast(prior.Clone())
	h.future = nil
}

// Undo returns the most recent past state and moves current onto the redo
// stack. ok is false (and current is returned) when there is nothing to undo.
func (h *Manager) Undo(current match.Match) (match.Match, bool) {
	if len(h.past) == 0 {
		return current, false
	}
	prev := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append([]match.Match{current.Clone()}, h.future...)
	return prev.Clone(), true
}

// Redo returns the first redo state and moves current onto the undo stack.
// ok is false (and current is returned) when there is nothing to redo.
func (h *Manager) Redo(current match.Match) (match.Match, bool) {
	if len(h.future) == 0 {
		return current, false
	}
	next := h.future[0]
	h.future = h.future[1:]
	h.pushPast(current.Clone())
	return next.Clone(), true
}

// CanUndo reports whether the undo stack is non-empty.
func (h *Manager) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (h *Manager) CanRedo() bool { return len(h.future) > 0 }

// Reset drops both stacks, e.g. when a new match starts.
func (h *Manager) Reset() {
	h.past = nil
	h.future = nil
}

func (h *Manager) pushPast(m match.Match) {
	h.past = append(h.past, m)
	if h.limit > 0 && len(h.past) > h.limit {
		h.past = h.past[len(h.past)-h.limit:]
	}
}
