package layout

import (
	"testing"

	"scorewriter/internal/score"
)

func TestHitTestAgreesWithLayout(t *testing.T) {
	sc := score.NewScore("x")
	sc.Key = "D"
	pitches := []score.Pitch{
		score.NewPitch(score.C, 4),
		score.NewPitch(score.E, 4),
		score.NewPitch(score.B, 4),
		score.NewPitch(score.F, 5),
		score.NewPitch(score.A, 5),
	}
	for mi := 0; mi < len(sc.Staves[0].Measures); mi++ {
		for _, p := range pitches {
			addNote(sc, mi, p, score.Quarter)
		}
	}

	l := Compute(sc)
	g := l.Staves[0]
	for _, box := range g.Measures {
		for _, slot := range box.Notes {
			hit, ok := l.HitTest(slot.X, slot.Y)
			if !ok {
				t.Fatalf("no hit at note slot (%v, %v)", slot.X, slot.Y)
			}
			if hit.StaffID != g.Staff.ID {
				t.Fatalf("slot (%v, %v): hit staff %s, want %s", slot.X, slot.Y, hit.StaffID, g.Staff.ID)
			}
			if hit.MeasureIdx != box.Index {
				t.Fatalf("slot (%v, %v): hit measure %d, want %d", slot.X, slot.Y, hit.MeasureIdx, box.Index)
			}
			want := slot.Note.Pitch
			if hit.Pitch.Name != want.Name || hit.Pitch.Octave != want.Octave {
				t.Fatalf("slot for %s: hit-test says %s", want, hit.Pitch)
			}
		}
	}
}

func TestHitTestOutsideZones(t *testing.T) {
	sc := score.NewScore("x")
	l := Compute(sc)
	g := l.Staves[0]

	if _, ok := l.HitTest(200, g.ZoneMinY-1); ok {
		t.Fatal("hit above the staff zone")
	}
	if _, ok := l.HitTest(200, g.ZoneMaxY+1); ok {
		t.Fatal("hit below the staff zone")
	}
	if _, ok := l.HitTest(200, g.ZoneMinY+1); !ok {
		t.Fatal("no hit just inside the zone")
	}
}

func TestHitTestClampsMeasureIndex(t *testing.T) {
	sc := score.NewScore("x")
	l := Compute(sc)
	g := l.Staves[0]

	// Left of the first measure, inside the clef area.
	hit, ok := l.HitTest(g.ContentX-20, g.MiddleY)
	if !ok || hit.MeasureIdx != 0 {
		t.Fatalf("left of content: want measure 0, got %+v ok=%v", hit, ok)
	}

	// Past the last barline.
	rightEdge := g.BarlineXs[len(g.BarlineXs)-1]
	hit, ok = l.HitTest(rightEdge+50, g.MiddleY)
	if !ok || hit.MeasureIdx != len(sc.Staves[0].Measures)-1 {
		t.Fatalf("right of content: want last measure, got %+v ok=%v", hit, ok)
	}
}

func TestHitTestPicksCorrectStaff(t *testing.T) {
	sc := score.NewScore("x")
	sc.Staves = append(sc.Staves, score.NewStaff("Bass", score.Bass, len(sc.Staves[0].Measures)))
	l := Compute(sc)
	g1 := l.Staves[1]

	hit, ok := l.HitTest(300, g1.MiddleY)
	if !ok {
		t.Fatal("no hit on second staff middle line")
	}
	if hit.StaffIdx != 1 || hit.Clef != score.Bass {
		t.Fatalf("want second staff with bass clef, got %+v", hit)
	}
	// The bass middle line is D3.
	if hit.Pitch != score.NewPitch(score.D, 3) {
		t.Fatalf("bass middle line: want D3, got %s", hit.Pitch)
	}
}

func TestHitTestPitchMatchesClickedPosition(t *testing.T) {
	sc := score.NewScore("x")
	l := Compute(sc)
	g := l.Staves[0]

	for pos := -10; pos <= 10; pos++ {
		y := PositionToY(pos, g.MiddleY)
		hit, ok := l.HitTest(g.ContentX+10, y)
		if !ok {
			// Positions far outside the zone pad legally miss.
			if y >= g.ZoneMinY && y <= g.ZoneMaxY {
				t.Fatalf("pos %d inside zone missed", pos)
			}
			continue
		}
		want := score.PitchAt(score.Treble, pos)
		if hit.Pitch != want {
			t.Fatalf("pos %d: want %s, got %s", pos, want, hit.Pitch)
		}
	}
}

func TestPackageLevelHitTest(t *testing.T) {
	sc := score.NewScore("x")
	g := Compute(sc).Staves[0]
	hit, ok := HitTest(sc, 300, g.MiddleY)
	if !ok {
		t.Fatal("package-level hit test missed the staff")
	}
	if hit.Pitch != score.NewPitch(score.B, 4) {
		t.Fatalf("treble middle line: want B4, got %s", hit.Pitch)
	}
}
