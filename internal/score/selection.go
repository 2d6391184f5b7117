package score

// Selection identifies the currently selected staff, measure, and note. It
// lives outside the Score itself: rendering reads it for highlighting and
// the edit session updates it, but layout geometry never depends on it.
// A -1 index (or empty staff ID) means that level has no selection.
type Selection struct {
	StaffID    string `json:"staffId,omitempty"`
	MeasureIdx int    `json:"measureIdx"`
	NoteIdx    int    `json:"noteIdx"`
}

// NoSelection returns the empty selection.
func NoSelection() Selection {
	return Selection{MeasureIdx: -1, NoteIdx: -1}
}

// HasStaff reports whether a staff is selected.
func (s Selection) HasStaff() bool { return s.StaffID != "" }

// HasMeasure reports whether a measure is selected.
func (s Selection) HasMeasure() bool { return s.HasStaff() && s.MeasureIdx >= 0 }

// HasNote reports whether a note is selected.
func (s Selection) HasNote() bool { return s.HasMeasure() && s.NoteIdx >= 0 }
