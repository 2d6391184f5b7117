// Package score defines the notation data model: pitches, notes, measures,
// staves, and the score root, plus the clef-relative pitch/position transform.
package score

import "fmt"

// NoteName is one of the seven diatonic letter names.
type NoteName int

const (
	C NoteName = iota
	D
	E
	F
	G
	A
	B
)

var noteNames = [7]string{"C", "D", "E", "F", "G", "A", "B"}

func (n NoteName) String() string {
	if n < C || n > B {
		return "?"
	}
	return noteNames[n]
}

// ParseNoteName converts a letter ("C".."B") to a NoteName.
func ParseNoteName(s string) (NoteName, error) {
	for i, name := range noteNames {
		if name == s {
			return NoteName(i), nil
		}
	}
	return C, fmt.Errorf("unknown note name %q", s)
}

// Accidental modifies how a pitch sounds and renders. It is not part of the
// diatonic position.
type Accidental string

const (
	NoAccidental Accidental = ""
	Sharp        Accidental = "sharp"
	Flat         Accidental = "flat"
	Natural      Accidental = "natural"
)

// Glyph returns the Unicode accidental symbol, or "" for none.
func (a Accidental) Glyph() string {
	switch a {
	case Sharp:
		return "♯"
	case Flat:
		return "♭"
	case Natural:
		return "♮"
	}
	return ""
}

// Pitch identifies a diatonic position plus an optional accidental.
type Pitch struct {
	Name       NoteName   `json:"name"`
	Octave     int        `json:"octave"`
	Accidental Accidental `json:"accidental,omitempty"`
}

// NewPitch creates a pitch without an accidental.
func NewPitch(name NoteName, octave int) Pitch {
	return Pitch{Name: name, Octave: octave}
}

// Diatonic returns the absolute diatonic index (octave*7 + letter index).
// Accidentals do not participate.
func (p Pitch) Diatonic() int {
	return p.Octave*7 + int(p.Name)
}

// pitchFromDiatonic inverts Diatonic. Uses floored division so negative
// indices map to negative octaves rather than wrapping.
func pitchFromDiatonic(d int) Pitch {
	octave := d / 7
	step := d % 7
	if step < 0 {
		step += 7
		octave--
	}
	return Pitch{Name: NoteName(step), Octave: octave}
}

func (p Pitch) String() string {
	return fmt.Sprintf("%s%d%s", p.Name, p.Octave, p.Accidental.Glyph())
}

// Duration is a note or rest length.
type Duration string

const (
	Whole     Duration = "whole"
	Half      Duration = "half"
	Quarter   Duration = "quarter"
	Eighth    Duration = "eighth"
	Sixteenth Duration = "sixteenth"
)

// Beats returns the length in quarter-note beats, with the dot multiplier
// applied when dotted is set.
func (d Duration) Beats(dotted bool) float64 {
	var beats float64
	switch d {
	case Whole:
		beats = 4
	case Half:
		beats = 2
	case Quarter:
		beats = 1
	case Eighth:
		beats = 0.5
	case Sixteenth:
		beats = 0.25
	}
	if dotted {
		beats *= 1.5
	}
	return beats
}

// Flags returns how many flags the duration renders on an unbeamed stem.
func (d Duration) Flags() int {
	switch d {
	case Eighth:
		return 1
	case Sixteenth:
		return 2
	}
	return 0
}

// Hollow reports whether the notehead is drawn unfilled.
func (d Duration) Hollow() bool {
	return d == Whole || d == Half
}

// HasStem reports whether the duration carries a stem. Whole notes do not.
func (d Duration) HasStem() bool {
	return d != Whole
}

// NoteKind tags the note/rest/chord variant.
type NoteKind string

const (
	KindNote  NoteKind = "note"
	KindRest  NoteKind = "rest"
	KindChord NoteKind = "chord"
)

// Note is a single entry in a measure: a pitched note, a rest, or a chord.
// A rest keeps a placeholder Pitch that is never rendered as a notehead.
// A chord holds its primary pitch in Pitch and the remainder in Extra; all
// chord pitches share one duration and stem.
type Note struct {
	ID       string   `json:"id"`
	Kind     NoteKind `json:"kind"`
	Duration Duration `json:"duration"`
	Dotted   bool     `json:"dotted,omitempty"`
	Pitch    Pitch    `json:"pitch"`
	Extra    []Pitch  `json:"extra,omitempty"`
	Tied     bool     `json:"tied,omitempty"`
}

// Pitches returns every sounding pitch: the primary followed by any chord
// extras. Rests return nil.
func (n *Note) Pitches() []Pitch {
	if n.Kind == KindRest {
		return nil
	}
	out := make([]Pitch, 0, 1+len(n.Extra))
	out = append(out, n.Pitch)
	out = append(out, n.Extra...)
	return out
}

// Clone returns a deep copy of the note.
func (n *Note) Clone() *Note {
	c := *n
	if n.Extra != nil {
		c.Extra = append([]Pitch(nil), n.Extra...)
	}
	return &c
}
