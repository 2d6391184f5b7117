package score

// KeySignature is a major key name: "C", "G", "D", ... "F#" on the sharp
// side, "F", "Bb", ... "Cb" on the flat side.
type KeySignature string

// keyAccidentals maps each key to its signed accidental count. Positive
// counts are sharps, negative are flats. Range is -7..+6.
var keyAccidentals = map[KeySignature]int{
	"C":  0,
	"G":  1,
	"D":  2,
	"A":  3,
	"E":  4,
	"B":  5,
	"F#": 6,
	"F":  -1,
	"Bb": -2,
	"Eb": -3,
	"Ab": -4,
	"Db": -5,
	"Gb": -6,
	"Cb": -7,
}

// Accidentals returns the signed accidental count for the key. Unknown keys
// behave as C major.
func (k KeySignature) Accidentals() int {
	return keyAccidentals[k]
}

// SharpOrder lists the letters sharps appear in: F C G D A E B.
var SharpOrder = [7]NoteName{F, C, G, D, A, E, B}

// FlatOrder is the reverse: B E A D G C F.
var FlatOrder = [7]NoteName{B, E, A, D, G, C, F}

// KnownKeys lists every key signature in circle-of-fifths order, flats first.
func KnownKeys() []KeySignature {
	return []KeySignature{
		"Cb", "Gb", "Db", "Ab", "Eb", "Bb", "F",
		"C", "G", "D", "A", "E", "B", "F#",
	}
}
