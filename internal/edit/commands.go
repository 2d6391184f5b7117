package edit

import (
	"github.com/google/uuid"

	"scorewriter/internal/score"
)

// measureAt validates and resolves a (staff, measure) pair.
func (s *Session) measureAt(staffID string, measureIdx int) (*score.Staff, *score.Measure, error) {
	st := s.score.StaffByID(staffID)
	if st == nil {
		return nil, nil, ErrStaffNotFound
	}
	if measureIdx < 0 || measureIdx >= len(st.Measures) {
		return nil, nil, ErrBadIndex
	}
	return st, st.Measures[measureIdx], nil
}

// AddNote appends a note with the current tool duration/dotted state, then
// selects it.
func (s *Session) AddNote(staffID string, measureIdx int, p score.Pitch) error {
	_, m, err := s.measureAt(staffID, measureIdx)
	if err != nil {
		return err
	}
	s.snapshot()
	m.Notes = append(m.Notes, &score.Note{
		ID:       uuid.New().String(),
		Kind:     score.KindNote,
		Duration: s.tool.Duration,
		Dotted:   s.tool.Dotted,
		Pitch:    p,
	})
	s.sel = score.Selection{StaffID: staffID, MeasureIdx: measureIdx, NoteIdx: len(m.Notes) - 1}
	s.emit(EventScoreChanged)
	s.emit(EventSelectionChanged)
	return nil
}

// AddRest appends a rest with the current tool state. The placeholder pitch
// keeps the middle-line convention and is never rendered.
func (s *Session) AddRest(staffID string, measureIdx int) error {
	st, m, err := s.measureAt(staffID, measureIdx)
	if err != nil {
		return err
	}
	s.snapshot()
	m.Notes = append(m.Notes, &score.Note{
		ID:       uuid.New().String(),
		Kind:     score.KindRest,
		Duration: s.tool.Duration,
		Dotted:   s.tool.Dotted,
		Pitch:    st.Clef.MiddlePitch(),
	})
	s.emit(EventScoreChanged)
	return nil
}

// RemoveNote deletes the note at the given index.
func (s *Session) RemoveNote(staffID string, measureIdx, noteIdx int) error {
	_, m, err := s.measureAt(staffID, measureIdx)
	if err != nil {
		return err
	}
	if noteIdx < 0 || noteIdx >= len(m.Notes) {
		return ErrBadIndex
	}
	s.snapshot()
	m.Notes = append(m.Notes[:noteIdx], m.Notes[noteIdx+1:]...)
	if s.sel.StaffID == staffID && s.sel.MeasureIdx == measureIdx && s.sel.NoteIdx >= noteIdx {
		s.sel.NoteIdx = -1
	}
	s.emit(EventScoreChanged)
	s.emit(EventSelectionChanged)
	return nil
}

// NotePatch carries the optional fields UpdateNote applies. Nil fields are
// left unchanged. Setting Extra promotes a note to a chord; setting it to
// an empty slice demotes a chord back to a note.
type NotePatch struct {
	Duration *score.Duration
	Dotted   *bool
	Pitch    *score.Pitch
	Extra    *[]score.Pitch
	Tied     *bool
}

// UpdateNote applies a patch to the note at the given index.
func (s *Session) UpdateNote(staffID string, measureIdx, noteIdx int, patch NotePatch) error {
	_, m, err := s.measureAt(staffID, measureIdx)
	if err != nil {
		return err
	}
	if noteIdx < 0 || noteIdx >= len(m.Notes) {
		return ErrBadIndex
	}
	s.snapshot()
	n := m.Notes[noteIdx]
	if patch.Duration != nil {
		n.Duration = *patch.Duration
	}
	if patch.Dotted != nil {
		n.Dotted = *patch.Dotted
	}
	if patch.Pitch != nil {
		n.Pitch = *patch.Pitch
	}
	if patch.Extra != nil {
		n.Extra = append([]score.Pitch(nil), (*patch.Extra)...)
		if n.Kind != score.KindRest {
			if len(n.Extra) > 0 {
				n.Kind = score.KindChord
			} else {
				n.Kind = score.KindNote
				n.Extra = nil
			}
		}
	}
	if patch.Tied != nil {
		n.Tied = *patch.Tied
	}
	s.emit(EventScoreChanged)
	return nil
}

// AddMeasure appends an empty measure to one staff, or to every staff when
// staffID is empty, which keeps measure counts aligned.
func (s *Session) AddMeasure(staffID string) error {
	if staffID != "" && s.score.StaffByID(staffID) == nil {
		return ErrStaffNotFound
	}
	s.snapshot()
	for _, st := range s.score.Staves {
		if staffID == "" || st.ID == staffID {
			st.Measures = append(st.Measures, score.NewMeasure())
		}
	}
	s.emit(EventScoreChanged)
	return nil
}

// RemoveMeasure drops the trailing measure from one staff, or from every
// staff when staffID is empty. A staff keeps at least one measure.
func (s *Session) RemoveMeasure(staffID string) error {
	if staffID != "" && s.score.StaffByID(staffID) == nil {
		return ErrStaffNotFound
	}
	s.snapshot()
	for _, st := range s.score.Staves {
		if (staffID == "" || st.ID == staffID) && len(st.Measures) > 1 {
			st.Measures = st.Measures[:len(st.Measures)-1]
		}
	}
	if s.sel.MeasureIdx >= s.score.MeasureCount() {
		s.sel = score.NoSelection()
	}
	s.emit(EventScoreChanged)
	s.emit(EventSelectionChanged)
	return nil
}

// AddStaff appends a staff with the same measure count as the rest of the
// score.
func (s *Session) AddStaff(name string, clef score.Clef) error {
	s.snapshot()
	count := s.score.MeasureCount()
	if count == 0 {
		count = score.DefaultMeasureCount
	}
	s.score.Staves = append(s.score.Staves, score.NewStaff(name, clef, count))
	s.emit(EventScoreChanged)
	return nil
}

// RemoveStaff deletes a staff. Removing the last remaining staff is
// rejected and leaves the score unchanged.
func (s *Session) RemoveStaff(staffID string) error {
	if len(s.score.Staves) <= 1 {
		return ErrLastStaff
	}
	idx := -1
	for i, st := range s.score.Staves {
		if st.ID == staffID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrStaffNotFound
	}
	s.snapshot()
	s.score.Staves = append(s.score.Staves[:idx], s.score.Staves[idx+1:]...)
	if s.sel.StaffID == staffID {
		s.sel = score.NoSelection()
	}
	s.emit(EventScoreChanged)
	s.emit(EventSelectionChanged)
	return nil
}

// UpdateStaffClef changes a staff's clef. Existing pitches keep their
// letter/octave identity and therefore move on the staff.
func (s *Session) UpdateStaffClef(staffID string, clef score.Clef) error {
	st := s.score.StaffByID(staffID)
	if st == nil {
		return ErrStaffNotFound
	}
	s.snapshot()
	st.Clef = clef
	s.emit(EventScoreChanged)
	return nil
}

// UpdateStaffName renames a staff.
func (s *Session) UpdateStaffName(staffID, name string) error {
	st := s.score.StaffByID(staffID)
	if st == nil {
		return ErrStaffNotFound
	}
	s.snapshot()
	st.Name = name
	s.emit(EventScoreChanged)
	return nil
}

// UpdateMeta sets the score title and composer.
func (s *Session) UpdateMeta(title, composer string) error {
	s.snapshot()
	s.score.Title = title
	s.score.Composer = composer
	s.emit(EventScoreChanged)
	return nil
}

// SetKeySignature changes the key for the whole score.
func (s *Session) SetKeySignature(k score.KeySignature) error {
	s.snapshot()
	s.score.Key = k
	s.emit(EventScoreChanged)
	return nil
}

// SetTimeSignature changes the time signature for the whole score. Measure
// contents are not revalidated; entry stays freeform.
func (s *Session) SetTimeSignature(beats, beatType int) error {
	s.snapshot()
	s.score.Time = score.TimeSignature{Beats: beats, BeatType: beatType}
	s.emit(EventScoreChanged)
	return nil
}

// SetTempo changes the tempo in beats per minute.
func (s *Session) SetTempo(bpm int) error {
	s.snapshot()
	s.score.Tempo = bpm
	s.emit(EventScoreChanged)
	return nil
}
