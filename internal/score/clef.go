package score

// Clef determines which pitch sits on the middle staff line.
type Clef string

const (
	Treble Clef = "treble"
	Bass   Clef = "bass"
	Alto   Clef = "alto"
	Tenor  Clef = "tenor"
)

// MiddlePitch returns the pitch on the clef's middle line: B4 for treble,
// D3 for bass, C4 for alto and A3 for tenor. Unknown clefs fall back to
// treble so externally constructed scores degrade instead of crashing.
func (c Clef) MiddlePitch() Pitch {
	switch c {
	case Bass:
		return NewPitch(D, 3)
	case Alto:
		return NewPitch(C, 4)
	case Tenor:
		return NewPitch(A, 3)
	}
	return NewPitch(B, 4)
}

// Glyph returns the Unicode clef symbol.
func (c Clef) Glyph() string {
	switch c {
	case Bass:
		return "\U0001d122"
	case Alto, Tenor:
		return "\U0001d121"
	}
	return "\U0001d11e"
}

// StaffPosition maps a pitch to its signed half-space offset from the clef's
// middle line. Positive offsets sit above the middle line. Each unit is half
// a line spacing: consecutive diatonic steps alternate line and space.
func StaffPosition(p Pitch, clef Clef) int {
	return p.Diatonic() - clef.MiddlePitch().Diatonic()
}

// PitchAt inverts StaffPosition: it returns the (accidental-free) pitch at
// the given half-space offset. PitchAt and StaffPosition are exact inverses
// for every integer offset.
func PitchAt(clef Clef, offset int) Pitch {
	return pitchFromDiatonic(clef.MiddlePitch().Diatonic() + offset)
}
