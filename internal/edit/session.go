// Package edit applies score-mutating commands with bounded undo/redo.
// A Session assumes single-writer, single-thread access: it is driven by
// one interactive event stream and is not safe for concurrent use.
package edit

import (
	"errors"

	"scorewriter/internal/score"
)

// Command rejections. These are ordinary results, not failures: the score
// is left untouched.
var (
	ErrLastStaff     = errors.New("cannot remove the only staff")
	ErrStaffNotFound = errors.New("staff not found")
	ErrBadIndex      = errors.New("index out of range")
)

// EventType identifies session events.
type EventType int

const (
	EventScoreChanged EventType = iota
	EventSelectionChanged
	EventToolChanged
)

// EventListener is called when an event occurs.
type EventListener func()

// Tool is the note-entry state an external duration selector feeds: the
// duration and dotted flag the next AddNote/AddRest will use.
type Tool struct {
	Duration score.Duration
	Dotted   bool
}

// Session owns one live score, the selection, the tool state, and the
// undo/redo history.
type Session struct {
	score     *score.Score
	sel       score.Selection
	tool      Tool
	history   *History
	listeners map[EventType][]EventListener
}

// NewSession wraps an existing score in a fresh session.
func NewSession(sc *score.Score) *Session {
	return &Session{
		score:     sc,
		sel:       score.NoSelection(),
		tool:      Tool{Duration: score.Quarter},
		history:   NewHistory(),
		listeners: make(map[EventType][]EventListener),
	}
}

// Score returns the live score. Callers must treat it as read-only and
// mutate only through commands.
func (s *Session) Score() *score.Score { return s.score }

// Selection returns the current selection.
func (s *Session) Selection() score.Selection { return s.sel }

// Tool returns the current note-entry tool state.
func (s *Session) Tool() Tool { return s.tool }

// SetTool updates the duration/dotted state used by AddNote and AddRest.
func (s *Session) SetTool(t Tool) {
	s.tool = t
	s.emit(EventToolChanged)
}

// On registers an event listener.
func (s *Session) On(event EventType, fn EventListener) {
	s.listeners[event] = append(s.listeners[event], fn)
}

func (s *Session) emit(event EventType) {
	for _, fn := range s.listeners[event] {
		fn()
	}
}

// snapshot records the pre-mutation score. Commands call it after their
// validation passes, so rejected commands leave the history untouched.
func (s *Session) snapshot() {
	s.history.Record(s.score.Clone())
}

// Undo restores the previous snapshot. Returns false when the undo stack
// is empty.
func (s *Session) Undo() bool {
	restored := s.history.Undo(s.score)
	if restored == nil {
		return false
	}
	s.score = restored
	s.sel = score.NoSelection()
	s.emit(EventScoreChanged)
	s.emit(EventSelectionChanged)
	return true
}

// Redo reapplies the last undone change. Returns false when the redo stack
// is empty (including after any new edit, which discards it).
func (s *Session) Redo() bool {
	restored := s.history.Redo(s.score)
	if restored == nil {
		return false
	}
	s.score = restored
	s.sel = score.NoSelection()
	s.emit(EventScoreChanged)
	s.emit(EventSelectionChanged)
	return true
}

// CanUndo reports whether Undo would do anything.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether Redo would do anything.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// SelectNote sets the full selection path. Selection commands do not touch
// the undo history.
func (s *Session) SelectNote(staffID string, measureIdx, noteIdx int) {
	s.sel = score.Selection{StaffID: staffID, MeasureIdx: measureIdx, NoteIdx: noteIdx}
	s.emit(EventSelectionChanged)
}

// SelectMeasure selects a measure without a note.
func (s *Session) SelectMeasure(staffID string, measureIdx int) {
	s.sel = score.Selection{StaffID: staffID, MeasureIdx: measureIdx, NoteIdx: -1}
	s.emit(EventSelectionChanged)
}

// ClearSelection resets the selection.
func (s *Session) ClearSelection() {
	s.sel = score.NoSelection()
	s.emit(EventSelectionChanged)
}
