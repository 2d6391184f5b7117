package edit

import "scorewriter/internal/score"

// HistoryCapacity bounds the undo stack; the oldest snapshot is evicted
// when a new one would overflow it.
const HistoryCapacity = 64

// History holds the undo and redo stacks of full-score snapshots. Snapshots
// are deep copies: nothing on either stack aliases the live score.
type History struct {
	undo []*score.Score
	redo []*score.Score
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

// Record pushes a pre-mutation snapshot and discards the redo branch, the
// standard branching-history behavior.
func (h *History) Record(snapshot *score.Score) {
	if len(h.undo) >= HistoryCapacity {
		copy(h.undo, h.undo[1:])
		h.undo = h.undo[:len(h.undo)-1]
	}
	h.undo = append(h.undo, snapshot)
	h.redo = h.redo[:0]
}

// Undo exchanges the current score for the last snapshot. Returns the
// restored score, or nil when there is nothing to undo.
func (h *History) Undo(current *score.Score) *score.Score {
	if len(h.undo) == 0 {
		return nil
	}
	last := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current)
	return last
}

// Redo is symmetric with Undo.
func (h *History) Redo(current *score.Score) *score.Score {
	if len(h.redo) == 0 {
		return nil
	}
	last := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current)
	return last
}

// CanUndo reports whether an undo snapshot exists.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether a redo snapshot exists.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Depth returns the undo stack depth.
func (h *History) Depth() int { return len(h.undo) }
