package render

import (
	"bytes"
	"strings"
	"testing"

	"scorewriter/internal/score"
)

func TestWriteSVGDeterministic(t *testing.T) {
	sc := testScore()
	sc.Title = "Etude"
	put(sc, 0, note(score.Quarter, score.NewPitch(score.C, 5)))
	prims := Render(sc, score.NoSelection())

	var a, b bytes.Buffer
	if err := WriteSVG(&a, sc.Width, sc.Height, prims); err != nil {
		t.Fatalf("write svg: %v", err)
	}
	if err := WriteSVG(&b, sc.Width, sc.Height, prims); err != nil {
		t.Fatalf("write svg: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatal("two serializations of the same primitives differ")
	}
}

func TestWriteSVGStructure(t *testing.T) {
	sc := testScore()
	put(sc, 0, note(score.Quarter, score.NewPitch(score.G, 4)))
	prims := Render(sc, score.NoSelection())

	var buf bytes.Buffer
	if err := WriteSVG(&buf, sc.Width, sc.Height, prims); err != nil {
		t.Fatalf("write svg: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Fatal("missing svg header")
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Fatal("missing svg footer")
	}
	if !strings.Contains(out, `viewBox="0 0 1000 600"`) {
		t.Fatal("missing viewBox")
	}
	// Glyph classes survive into the markup for styling.
	if !strings.Contains(out, `class="notehead"`) {
		t.Fatal("missing notehead class")
	}
	if !strings.Contains(out, `class="staff-line"`) {
		t.Fatal("missing staff-line class")
	}
	if strings.Count(out, `class="staff-line"`) != 5 {
		t.Fatalf("want 5 staff lines in markup, got %d", strings.Count(out, `class="staff-line"`))
	}
}

func TestWriteSVGEscapesText(t *testing.T) {
	sc := testScore()
	sc.Title = "Airs & <Graces>"
	prims := Render(sc, score.NoSelection())

	var buf bytes.Buffer
	if err := WriteSVG(&buf, sc.Width, sc.Height, prims); err != nil {
		t.Fatalf("write svg: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Airs &amp; &lt;Graces&gt;") {
		t.Fatal("title was not escaped")
	}
	if strings.Contains(out, "<Graces>") {
		t.Fatal("raw angle brackets leaked into markup")
	}
}

func TestHollowNoteheadMarkup(t *testing.T) {
	sc := testScore()
	put(sc, 0, note(score.Half, score.NewPitch(score.B, 4)))
	prims := Render(sc, score.NoSelection())

	var buf bytes.Buffer
	if err := WriteSVG(&buf, sc.Width, sc.Height, prims); err != nil {
		t.Fatalf("write svg: %v", err)
	}
	if !strings.Contains(buf.String(), `fill="none" stroke="#1a1a1a"`) {
		t.Fatal("half note should serialize as an outlined ellipse")
	}
}
