package score

import "github.com/google/uuid"

// Default canvas size and seed measure count for a new score.
const (
	DefaultWidth        = 1000.0
	DefaultHeight       = 600.0
	DefaultMeasureCount = 4
	DefaultTempo        = 120
)

// TimeSignature holds the beat count and the beat unit (4 = quarter).
type TimeSignature struct {
	Beats    int `json:"beats"`
	BeatType int `json:"beatType"`
}

// Measure is an ordered left-to-right sequence of notes. Total note duration
// is not validated against the time signature; entry is freeform.
type Measure struct {
	ID    string  `json:"id"`
	Notes []*Note `json:"notes"`
}

// NewMeasure creates an empty measure with a fresh ID.
func NewMeasure() *Measure {
	return &Measure{ID: uuid.New().String(), Notes: []*Note{}}
}

// Clone returns a deep copy of the measure.
func (m *Measure) Clone() *Measure {
	c := &Measure{ID: m.ID, Notes: make([]*Note, len(m.Notes))}
	for i, n := range m.Notes {
		c.Notes[i] = n.Clone()
	}
	return c
}

// Staff is a named clef plus an ordered sequence of measures.
type Staff struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Clef     Clef       `json:"clef"`
	Measures []*Measure `json:"measures"`
}

// NewStaff creates a staff with the given number of empty measures.
func NewStaff(name string, clef Clef, measures int) *Staff {
	s := &Staff{ID: uuid.New().String(), Name: name, Clef: clef}
	for i := 0; i < measures; i++ {
		s.Measures = append(s.Measures, NewMeasure())
	}
	return s
}

// Clone returns a deep copy of the staff.
func (s *Staff) Clone() *Staff {
	c := &Staff{ID: s.ID, Name: s.Name, Clef: s.Clef, Measures: make([]*Measure, len(s.Measures))}
	for i, m := range s.Measures {
		c.Measures[i] = m.Clone()
	}
	return c
}

// Score is the sole root: it owns its staves, which own their measures,
// which own their notes. Nothing is shared between two scores.
type Score struct {
	Title    string        `json:"title"`
	Composer string        `json:"composer"`
	Key      KeySignature  `json:"keySignature"`
	Time     TimeSignature `json:"timeSignature"`
	Tempo    int           `json:"tempo"`
	Staves   []*Staff      `json:"staves"`
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
}

// NewScore creates a score with a single default treble staff.
func NewScore(title string) *Score {
	return &Score{
		Title:    title,
		Composer: "",
		Key:      "C",
		Time:     TimeSignature{Beats: 4, BeatType: 4},
		Tempo:    DefaultTempo,
		Staves:   []*Staff{NewStaff("Staff 1", Treble, DefaultMeasureCount)},
		Width:    DefaultWidth,
		Height:   DefaultHeight,
	}
}

// Clone returns a deep copy with no aliasing to the original. Undo snapshots
// rely on this.
func (sc *Score) Clone() *Score {
	c := *sc
	c.Staves = make([]*Staff, len(sc.Staves))
	for i, s := range sc.Staves {
		c.Staves[i] = s.Clone()
	}
	return &c
}

// StaffByID finds a staff by ID, or nil.
func (sc *Score) StaffByID(id string) *Staff {
	for _, s := range sc.Staves {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// MeasureCount returns the largest measure count over all staves. The edit
// commands keep staves aligned; this tolerates externally built scores that
// are not.
func (sc *Score) MeasureCount() int {
	n := 0
	for _, s := range sc.Staves {
		if len(s.Measures) > n {
			n = len(s.Measures)
		}
	}
	return n
}

// NoteCount returns the total number of note entries across the score.
func (sc *Score) NoteCount() int {
	n := 0
	for _, s := range sc.Staves {
		for _, m := range s.Measures {
			n += len(m.Notes)
		}
	}
	return n
}
