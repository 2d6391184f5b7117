package layout

import "scorewriter/internal/score"

// Key-signature accidentals sit at fixed pitches per clef. Sharps follow the
// order F C G D A E B; flats the reverse. The tenor tables carry the usual
// low-F# exception, so they are spelled out rather than derived by shifting
// the treble tables.
var sharpPitches = map[score.Clef][7]score.Pitch{
	score.Treble: {p(score.F, 5), p(score.C, 5), p(score.G, 5), p(score.D, 5), p(score.A, 4), p(score.E, 5), p(score.B, 4)},
	score.Bass:   {p(score.F, 3), p(score.C, 3), p(score.G, 3), p(score.D, 3), p(score.A, 2), p(score.E, 3), p(score.B, 2)},
	score.Alto:   {p(score.F, 4), p(score.C, 4), p(score.G, 4), p(score.D, 4), p(score.A, 3), p(score.E, 4), p(score.B, 3)},
	score.Tenor:  {p(score.F, 3), p(score.C, 4), p(score.G, 3), p(score.D, 4), p(score.A, 3), p(score.E, 4), p(score.B, 3)},
}

var flatPitches = map[score.Clef][7]score.Pitch{
	score.Treble: {p(score.B, 4), p(score.E, 5), p(score.A, 4), p(score.D, 5), p(score.G, 4), p(score.C, 5), p(score.F, 4)},
	score.Bass:   {p(score.B, 2), p(score.E, 3), p(score.A, 2), p(score.D, 3), p(score.G, 2), p(score.C, 3), p(score.F, 2)},
	score.Alto:   {p(score.B, 3), p(score.E, 4), p(score.A, 3), p(score.D, 4), p(score.G, 3), p(score.C, 4), p(score.F, 3)},
	score.Tenor:  {p(score.B, 3), p(score.E, 3), p(score.A, 3), p(score.D, 3), p(score.G, 3), p(score.C, 3), p(score.F, 3)},
}

func p(n score.NoteName, octave int) score.Pitch {
	return score.NewPitch(n, octave)
}

// keyAnchors returns one anchor per accidental of the key signature, laid
// out left to right starting at startX.
func keyAnchors(key score.KeySignature, clef score.Clef, startX, middleY float64) []KeyAnchor {
	count := key.Accidentals()
	if count == 0 {
		return nil
	}

	sharp := count > 0
	table := flatPitches[clef]
	if sharp {
		table = sharpPitches[clef]
	}
	n := count
	if n < 0 {
		n = -n
	}
	if n > 7 {
		n = 7
	}

	anchors := make([]KeyAnchor, n)
	for i := 0; i < n; i++ {
		pos := score.StaffPosition(table[i], clef)
		anchors[i] = KeyAnchor{
			X:     startX + float64(i)*AccidentalWidth,
			Y:     PositionToY(pos, middleY),
			Pos:   pos,
			Pitch: table[i],
			Sharp: sharp,
		}
	}
	return anchors
}
