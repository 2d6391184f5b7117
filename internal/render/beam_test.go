package render

import (
	"math"
	"testing"

	"scorewriter/internal/layout"
	"scorewriter/internal/score"
)

func TestBeamedRunReplacesFlags(t *testing.T) {
	sc := testScore()
	for i := 0; i < 4; i++ {
		put(sc, 0, note(score.Eighth, score.NewPitch(score.G, 4)))
	}
	prims := Render(sc, score.NoSelection())
	if got := CountTag(prims, TagFlag); got != 4 {
		t.Fatalf("default render: want 4 flags, got %d", got)
	}
	if got := CountTag(prims, TagBeam); got != 0 {
		t.Fatalf("default render: want no beams, got %d", got)
	}

}

func TestBeamGroupGeometry(t *testing.T) {
	sc := testScore()
	for i := 0; i < 4; i++ {
		put(sc, 0, note(score.Eighth, score.NewPitch(score.G, 4)))
	}
	prims := renderOpts(sc, Options{Beams: true})

	if got := CountTag(prims, TagFlag); got != 0 {
		t.Fatalf("beamed run: want 0 flags, got %d", got)
	}
	beams := FindTag(prims, TagBeam)
	if len(beams) != 1 {
		t.Fatalf("beamed run: want 1 beam, got %d", len(beams))
	}
	// Every note still has exactly one stem.
	if got := CountTag(prims, TagStem); got != 4 {
		t.Fatalf("beamed run: want 4 stems, got %d", got)
	}
	// Equal pitches give a level beam.
	b := beams[0]
	if len(b.Points) != 4 {
		t.Fatalf("beam quad should have 4 points, got %d", len(b.Points))
	}
	if math.Abs(b.Points[0].Y-b.Points[1].Y) > 1e-9 {
		t.Fatalf("level run produced sloped beam: %v vs %v", b.Points[0].Y, b.Points[1].Y)
	}
}

func TestBeamSlopeClamp(t *testing.T) {
	sc := testScore()
	// Narrow page forces the minimum measure width, so the two stems sit
	// close together and the raw fit through the leap is steeper than the
	// clamp allows.
	sc.Width = 300
	put(sc, 0, note(score.Eighth, score.NewPitch(score.C, 4)))
	put(sc, 0, note(score.Eighth, score.NewPitch(score.G, 4)))
	prims := renderOpts(sc, Options{Beams: true})

	beams := FindTag(prims, TagBeam)
	if len(beams) != 1 {
		t.Fatalf("want 1 beam, got %d", len(beams))
	}
	b := beams[0]
	dx := b.Points[1].X - b.Points[0].X
	dy := b.Points[1].Y - b.Points[0].Y
	if dx <= 0 {
		t.Fatalf("beam runs backwards: dx=%v", dx)
	}
	slope := math.Abs(dy / dx)
	if slope > maxBeamSlope+1e-9 {
		t.Fatalf("beam slope %v exceeds clamp %v", slope, maxBeamSlope)
	}
	if slope < maxBeamSlope-1e-9 {
		t.Fatalf("leap should pin the beam at the clamp slope, got %v", slope)
	}
}

func TestIsolatedEighthKeepsFlag(t *testing.T) {
	sc := testScore()
	put(sc, 0, note(score.Eighth, score.NewPitch(score.G, 4)))
	put(sc, 0, rest(score.Eighth))
	put(sc, 0, note(score.Quarter, score.NewPitch(score.G, 4)))
	prims := renderOpts(sc, Options{Beams: true})

	if got := CountTag(prims, TagBeam); got != 0 {
		t.Fatalf("lone eighth: want 0 beams, got %d", got)
	}
	if got := CountTag(prims, TagFlag); got != 1 {
		t.Fatalf("lone eighth: want 1 flag, got %d", got)
	}
	// One stem for the eighth, one for the quarter.
	if got := CountTag(prims, TagStem); got != 2 {
		t.Fatalf("want 2 stems, got %d", got)
	}
}

func TestRestBreaksBeamRun(t *testing.T) {
	sc := testScore()
	put(sc, 0, note(score.Eighth, score.NewPitch(score.G, 4)))
	put(sc, 0, note(score.Eighth, score.NewPitch(score.A, 4)))
	put(sc, 0, rest(score.Eighth))
	put(sc, 0, note(score.Eighth, score.NewPitch(score.B, 4)))
	put(sc, 0, note(score.Eighth, score.NewPitch(score.C, 5)))
	prims := renderOpts(sc, Options{Beams: true})

	if got := CountTag(prims, TagBeam); got != 2 {
		t.Fatalf("rest-split runs: want 2 beams, got %d", got)
	}
	if got := CountTag(prims, TagFlag); got != 0 {
		t.Fatalf("rest-split runs: want 0 flags, got %d", got)
	}
}

func TestStemDirectionChangeBreaksRun(t *testing.T) {
	sc := testScore()
	put(sc, 0, note(score.Eighth, score.NewPitch(score.G, 4))) // stem up
	put(sc, 0, note(score.Eighth, score.NewPitch(score.A, 4))) // stem up
	put(sc, 0, note(score.Eighth, score.NewPitch(score.D, 5))) // stem down
	put(sc, 0, note(score.Eighth, score.NewPitch(score.E, 5))) // stem down
	prims := renderOpts(sc, Options{Beams: true})

	if got := CountTag(prims, TagBeam); got != 2 {
		t.Fatalf("direction change: want 2 beams, got %d", got)
	}
}

func TestSixteenthPairGetsSecondaryBeam(t *testing.T) {
	sc := testScore()
	put(sc, 0, note(score.Sixteenth, score.NewPitch(score.G, 4)))
	put(sc, 0, note(score.Sixteenth, score.NewPitch(score.A, 4)))
	prims := renderOpts(sc, Options{Beams: true})

	// Primary beam plus one secondary segment.
	if got := CountTag(prims, TagBeam); got != 2 {
		t.Fatalf("sixteenth pair: want 2 beams, got %d", got)
	}
}

func renderOpts(sc *score.Score, opts Options) []Primitive {
	return RenderLayout(layout.Compute(sc), sc, score.NoSelection(), opts)
}
