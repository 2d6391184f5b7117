// Package layout computes staff geometry for a score: staff stacking, clef,
// key and time signature anchors, measure widths, and per-note coordinates.
// The hit-test in this package inverts the same geometry, so the two must
// share every constant below.
package layout

import (
	"scorewriter/internal/score"
	"scorewriter/pkg/geometry"
)

// Geometry constants. All coordinates are in score units (Score.Width x
// Score.Height). LineSpacing is the distance between adjacent staff lines;
// one staff position step is half of it.
const (
	LineSpacing = 10.0
	StaffLines  = 5
	StaffHeight = (StaffLines - 1) * LineSpacing

	TopMargin   = 110.0
	LeftMargin  = 40.0
	RightMargin = 40.0
	StaffGap    = 70.0

	ClefWidth          = 35.0
	AccidentalWidth    = 12.0
	TimeSignatureWidth = 30.0
	MinMeasureWidth    = 100.0

	// HitZonePad extends each staff's vertical hit zone beyond its top and
	// bottom lines.
	HitZonePad = 3 * LineSpacing

	TitleY    = 40.0
	ComposerY = 68.0
)

// KeyAnchor is one key-signature accidental glyph slot.
type KeyAnchor struct {
	X     float64
	Y     float64
	Pos   int // staff position of the accidental
	Pitch score.Pitch
	Sharp bool
}

// NoteSlot is the computed position of one note entry.
type NoteSlot struct {
	Note       *score.Note
	NoteIdx    int
	X          float64
	Y          float64 // Y of the primary pitch; middle line for rests
	Pos        int     // staff position of the primary pitch
	SlotWidth  float64
	MeasureIdx int
}

// MeasureBox is the horizontal extent of one measure on a staff.
type MeasureBox struct {
	Index int
	X     float64
	Width float64
	Notes []NoteSlot
}

// StaffGeom holds the computed geometry of one staff.
type StaffGeom struct {
	Index    int
	Staff    *score.Staff
	TopY     float64
	MiddleY  float64
	BottomY  float64
	ClefX    float64
	Keys     []KeyAnchor
	TimeX    float64
	ContentX float64
	// MeasureWidth is the uniform width of every measure on this staff.
	MeasureWidth float64
	Measures     []MeasureBox
	// BarlineXs are the X positions of bar lines between measures, the
	// first entry being the content start and the last the closing bar.
	BarlineXs []float64
	ZoneMinY  float64
	ZoneMaxY  float64
}

// Layout is the full computed geometry for a score.
type Layout struct {
	Width  float64
	Height float64
	Staves []StaffGeom
}

// StaffTopY returns the Y of the top line of the i-th staff.
func StaffTopY(i int) float64 {
	return TopMargin + float64(i)*(StaffHeight+StaffGap)
}

// PositionToY converts a staff position (half-space offset from the middle
// line) to a Y coordinate given the middle line's Y.
func PositionToY(pos int, middleY float64) float64 {
	return middleY - float64(pos)*(LineSpacing/2)
}

// YToPosition inverts PositionToY, rounding to the nearest position.
func YToPosition(y, middleY float64) int {
	d := (middleY - y) / (LineSpacing / 2)
	if d >= 0 {
		return int(d + 0.5)
	}
	return -int(-d + 0.5)
}

// LedgerPositions returns the staff positions of the ledger lines a note at
// pos needs: one per line step beyond the staff edge, inclusive of pos when
// it falls on a line. The staff's own lines span positions -4..+4.
func LedgerPositions(pos int) []int {
	var out []int
	for p := 6; p <= pos; p += 2 {
		out = append(out, p)
	}
	for p := -6; p >= pos; p -= 2 {
		out = append(out, p)
	}
	return out
}

// Compute lays out the whole score. It never fails: degenerate inputs (zero
// width, extreme octaves) produce degenerate but well-defined geometry.
func Compute(sc *score.Score) *Layout {
	l := &Layout{Width: sc.Width, Height: sc.Height}
	for i, st := range sc.Staves {
		l.Staves = append(l.Staves, computeStaff(sc, st, i))
	}
	return l
}

func computeStaff(sc *score.Score, st *score.Staff, index int) StaffGeom {
	topY := StaffTopY(index)
	g := StaffGeom{
		Index:    index,
		Staff:    st,
		TopY:     topY,
		MiddleY:  topY + StaffHeight/2,
		BottomY:  topY + StaffHeight,
		ClefX:    LeftMargin,
		ZoneMinY: topY - HitZonePad,
		ZoneMaxY: topY + StaffHeight + HitZonePad,
	}

	g.Keys = keyAnchors(sc.Key, st.Clef, LeftMargin+ClefWidth, g.MiddleY)
	g.TimeX = LeftMargin + ClefWidth + float64(len(g.Keys))*AccidentalWidth
	g.ContentX = g.TimeX + TimeSignatureWidth

	g.MeasureWidth = measureWidth(sc, g.ContentX, len(st.Measures))

	x := g.ContentX
	g.BarlineXs = append(g.BarlineXs, x)
	for mi, m := range st.Measures {
		box := MeasureBox{Index: mi, X: x, Width: g.MeasureWidth}
		box.Notes = noteSlots(m, mi, x, g.MeasureWidth, st.Clef, g.MiddleY)
		g.Measures = append(g.Measures, box)
		x += g.MeasureWidth
		g.BarlineXs = append(g.BarlineXs, x)
	}
	return g
}

// measureWidth divides the content area evenly, with a minimum floor so
// narrow scores overflow to the right instead of collapsing.
func measureWidth(sc *score.Score, contentX float64, measures int) float64 {
	if measures == 0 {
		return MinMeasureWidth
	}
	avail := sc.Width - RightMargin - contentX
	w := avail / float64(measures)
	if w < MinMeasureWidth {
		w = MinMeasureWidth
	}
	return w
}

// noteSlots spaces a measure's notes evenly across its width. Rests occupy a
// slot exactly like notes.
func noteSlots(m *score.Measure, mi int, x, width float64, clef score.Clef, middleY float64) []NoteSlot {
	n := len(m.Notes)
	if n == 0 {
		return nil
	}
	slotW := width / float64(n)
	slots := make([]NoteSlot, n)
	for i, note := range m.Notes {
		pos := 0 // rests sit on the middle line
		if note.Kind != score.KindRest {
			pos = score.StaffPosition(note.Pitch, clef)
		}
		slots[i] = NoteSlot{
			Note:       note,
			NoteIdx:    i,
			X:          x + (float64(i)+0.5)*slotW,
			Y:          PositionToY(pos, middleY),
			Pos:        pos,
			SlotWidth:  slotW,
			MeasureIdx: mi,
		}
	}
	return slots
}

// Bounds returns the drawn extent of the layout, which can exceed the score
// size when measures hit the minimum width floor.
func (l *Layout) Bounds() geometry.Rect {
	r := geometry.NewRect(0, 0, l.Width, l.Height)
	for _, g := range l.Staves {
		right := g.BarlineXs[len(g.BarlineXs)-1]
		r = r.Union(geometry.NewRect(0, 0, right+RightMargin, g.BottomY+StaffGap))
	}
	return r
}
