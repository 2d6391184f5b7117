package layout

import (
	"testing"

	"scorewriter/internal/score"
)

func addNote(sc *score.Score, measure int, p score.Pitch, d score.Duration) {
	m := sc.Staves[0].Measures[measure]
	m.Notes = append(m.Notes, &score.Note{
		Kind:     score.KindNote,
		Duration: d,
		Pitch:    p,
	})
}

func TestPositionToYRoundTrip(t *testing.T) {
	middleY := StaffTopY(0) + StaffHeight/2
	for pos := -20; pos <= 20; pos++ {
		y := PositionToY(pos, middleY)
		if got := YToPosition(y, middleY); got != pos {
			t.Fatalf("pos %d: y=%v maps back to %d", pos, y, got)
		}
	}
}

func TestYToPositionRounding(t *testing.T) {
	middleY := 200.0
	// A click 2 units above the middle line is still position 0; 3 units
	// rounds to the next half-space up.
	if got := YToPosition(middleY-2, middleY); got != 0 {
		t.Fatalf("2 units above middle: want 0, got %d", got)
	}
	if got := YToPosition(middleY-3, middleY); got != 1 {
		t.Fatalf("3 units above middle: want 1, got %d", got)
	}
	if got := YToPosition(middleY+3, middleY); got != -1 {
		t.Fatalf("3 units below middle: want -1, got %d", got)
	}
}

func TestMiddleCLedgerLine(t *testing.T) {
	// Middle C on a treble staff sits one ledger line below the staff.
	pos := score.StaffPosition(score.NewPitch(score.C, 4), score.Treble)
	if pos != -6 {
		t.Fatalf("middle C on treble: want position -6, got %d", pos)
	}
	ledgers := LedgerPositions(pos)
	if len(ledgers) != 1 || ledgers[0] != -6 {
		t.Fatalf("middle C: want exactly one ledger line at -6, got %v", ledgers)
	}
}

func TestLedgerPositions(t *testing.T) {
	cases := []struct {
		pos  int
		want []int
	}{
		{0, nil},
		{4, nil},
		{-4, nil},
		{5, nil},
		{6, []int{6}},
		{7, []int{6}},
		{9, []int{6, 8}},
		{-6, []int{-6}},
		{-10, []int{-6, -8, -10}},
	}
	for _, c := range cases {
		got := LedgerPositions(c.pos)
		if len(got) != len(c.want) {
			t.Fatalf("pos %d: want %v, got %v", c.pos, c.want, got)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("pos %d: want %v, got %v", c.pos, c.want, got)
			}
		}
	}
}

func TestGMajorTrebleKeySignature(t *testing.T) {
	sc := score.NewScore("x")
	sc.Key = "G"
	l := Compute(sc)

	keys := l.Staves[0].Keys
	if len(keys) != 1 {
		t.Fatalf("G major: want 1 sharp, got %d", len(keys))
	}
	if keys[0].Pitch != score.NewPitch(score.F, 5) {
		t.Fatalf("G major sharp should sit on F5, got %s", keys[0].Pitch)
	}
	if !keys[0].Sharp {
		t.Fatal("G major accidental marked as flat")
	}
	// F5 is the top staff line.
	if keys[0].Pos != 4 {
		t.Fatalf("F5 on treble: want position 4, got %d", keys[0].Pos)
	}
}

func TestKeySignatureOrders(t *testing.T) {
	for clef, table := range sharpPitches {
		for i, pitch := range table {
			if pitch.Name != score.SharpOrder[i] {
				t.Fatalf("%s clef sharp %d: want letter %s, got %s", clef, i, score.SharpOrder[i], pitch.Name)
			}
			pos := score.StaffPosition(pitch, clef)
			if pos < -5 || pos > 5 {
				t.Fatalf("%s clef sharp %d (%s) lands outside the staff at %d", clef, i, pitch, pos)
			}
		}
	}
	for clef, table := range flatPitches {
		for i, pitch := range table {
			if pitch.Name != score.FlatOrder[i] {
				t.Fatalf("%s clef flat %d: want letter %s, got %s", clef, i, score.FlatOrder[i], pitch.Name)
			}
			pos := score.StaffPosition(pitch, clef)
			if pos < -5 || pos > 5 {
				t.Fatalf("%s clef flat %d (%s) lands outside the staff at %d", clef, i, pitch, pos)
			}
		}
	}
}

func TestFlatKeyAnchors(t *testing.T) {
	sc := score.NewScore("x")
	sc.Key = "Eb"
	l := Compute(sc)

	keys := l.Staves[0].Keys
	if len(keys) != 3 {
		t.Fatalf("Eb major: want 3 flats, got %d", len(keys))
	}
	wantLetters := []score.NoteName{score.B, score.E, score.A}
	for i, k := range keys {
		if k.Sharp {
			t.Fatalf("Eb major anchor %d marked sharp", i)
		}
		if k.Pitch.Name != wantLetters[i] {
			t.Fatalf("Eb major anchor %d: want %s, got %s", i, wantLetters[i], k.Pitch.Name)
		}
	}
	// Anchors march left to right.
	for i := 1; i < len(keys); i++ {
		if keys[i].X <= keys[i-1].X {
			t.Fatalf("key anchors out of order: %v then %v", keys[i-1].X, keys[i].X)
		}
	}
}

func TestMeasurePartition(t *testing.T) {
	sc := score.NewScore("x")
	l := Compute(sc)
	g := l.Staves[0]

	// Measures tile the content area with no gaps and no overlap.
	if len(g.Measures) != len(sc.Staves[0].Measures) {
		t.Fatalf("want %d measure boxes, got %d", len(sc.Staves[0].Measures), len(g.Measures))
	}
	if g.Measures[0].X != g.ContentX {
		t.Fatalf("first measure starts at %v, content starts at %v", g.Measures[0].X, g.ContentX)
	}
	for i := 1; i < len(g.Measures); i++ {
		prev := g.Measures[i-1]
		if g.Measures[i].X != prev.X+prev.Width {
			t.Fatalf("measure %d starts at %v, previous ends at %v", i, g.Measures[i].X, prev.X+prev.Width)
		}
	}
	if len(g.BarlineXs) != len(g.Measures)+1 {
		t.Fatalf("want %d barlines, got %d", len(g.Measures)+1, len(g.BarlineXs))
	}

	// The content area is divided evenly, within the page.
	last := g.Measures[len(g.Measures)-1]
	rightEdge := last.X + last.Width
	if want := sc.Width - RightMargin; rightEdge < want-0.5 || rightEdge > want+0.5 {
		t.Fatalf("staff ends at %v, want %v", rightEdge, want)
	}
}

func TestMeasureWidthFloor(t *testing.T) {
	sc := score.NewScore("x")
	sc.Width = 300 // far too narrow for four measures
	l := Compute(sc)
	g := l.Staves[0]
	if g.MeasureWidth != MinMeasureWidth {
		t.Fatalf("narrow page: want measure width %v, got %v", MinMeasureWidth, g.MeasureWidth)
	}
	if l.Bounds().Width <= sc.Width {
		t.Fatal("overflow page should report wider bounds")
	}
}

func TestContentXAccountsForKeySignature(t *testing.T) {
	plain := score.NewScore("x")
	l1 := Compute(plain)

	sharped := score.NewScore("x")
	sharped.Key = "A" // three sharps
	l2 := Compute(sharped)

	want := l1.Staves[0].ContentX + 3*AccidentalWidth
	if got := l2.Staves[0].ContentX; got != want {
		t.Fatalf("A major content start: want %v, got %v", want, got)
	}
}

func TestNoteSlotSpacing(t *testing.T) {
	sc := score.NewScore("x")
	for i := 0; i < 4; i++ {
		addNote(sc, 0, score.NewPitch(score.G, 4), score.Quarter)
	}
	l := Compute(sc)
	box := l.Staves[0].Measures[0]
	if len(box.Notes) != 4 {
		t.Fatalf("want 4 slots, got %d", len(box.Notes))
	}
	slotW := box.Width / 4
	for i, slot := range box.Notes {
		wantX := box.X + (float64(i)+0.5)*slotW
		if slot.X != wantX {
			t.Fatalf("slot %d: want x=%v, got %v", i, wantX, slot.X)
		}
		if slot.SlotWidth != slotW {
			t.Fatalf("slot %d: want width %v, got %v", i, slot.SlotWidth, slotW)
		}
	}
}

func TestSecondStaffStacksBelow(t *testing.T) {
	sc := score.NewScore("x")
	sc.Staves = append(sc.Staves, score.NewStaff("Bass", score.Bass, len(sc.Staves[0].Measures)))
	l := Compute(sc)
	if len(l.Staves) != 2 {
		t.Fatalf("want 2 staff geometries, got %d", len(l.Staves))
	}
	g0, g1 := l.Staves[0], l.Staves[1]
	if g1.TopY != g0.TopY+StaffHeight+StaffGap {
		t.Fatalf("second staff top at %v, want %v", g1.TopY, g0.TopY+StaffHeight+StaffGap)
	}
	if g1.ZoneMinY <= g0.ZoneMaxY-2*HitZonePad {
		t.Fatal("staff hit zones collapsed")
	}
}
