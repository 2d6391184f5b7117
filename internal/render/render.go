package render

import (
	"fmt"

	"scorewriter/internal/layout"
	"scorewriter/internal/score"
	"scorewriter/pkg/geometry"
)

// Notehead and stem proportions, in score units.
const (
	noteheadRX = 6.0
	noteheadRY = 4.5
	stemHeight = 3.5 * layout.LineSpacing
	ledgerHalf = 10.0
	dotRadius  = 1.8
)

// Options tunes optional rendering passes. The zero value matches the
// default engraving: every eighth and sixteenth note carries its own flags.
type Options struct {
	// Beams replaces flags with beams over runs of two or more eighth or
	// sixteenth notes that share a measure and stem direction.
	Beams bool
}

// Render produces the primitive list for a score plus selection highlight.
// It computes the layout itself; use RenderLayout to reuse one.
func Render(sc *score.Score, sel score.Selection) []Primitive {
	return RenderLayout(layout.Compute(sc), sc, sel, Options{})
}

// RenderLayout renders against a precomputed layout.
func RenderLayout(l *layout.Layout, sc *score.Score, sel score.Selection, opts Options) []Primitive {
	var prims []Primitive

	if sc.Title != "" {
		prims = append(prims, text(TagTitle, sc.Width/2, layout.TitleY, sc.Title, 24))
	}
	if sc.Composer != "" {
		prims = append(prims, text(TagComposer, sc.Width/2, layout.ComposerY, sc.Composer, 14))
	}

	for _, g := range l.Staves {
		prims = append(prims, renderStaff(&g, sc, sel, opts)...)
	}
	return prims
}

func renderStaff(g *layout.StaffGeom, sc *score.Score, sel score.Selection, opts Options) []Primitive {
	var prims []Primitive
	right := g.BarlineXs[len(g.BarlineXs)-1]

	// Five staff lines, positions +4..-4 stepping by lines.
	for i := 0; i < layout.StaffLines; i++ {
		y := g.TopY + float64(i)*layout.LineSpacing
		prims = append(prims, line(TagStaffLine, layout.LeftMargin, y, right, y, 1))
	}

	prims = append(prims, renderClef(g)...)
	for _, k := range g.Keys {
		glyph := score.Flat.Glyph()
		if k.Sharp {
			glyph = score.Sharp.Glyph()
		}
		prims = append(prims, text(TagKeyAcc, k.X, k.Y, glyph, 2.2*layout.LineSpacing))
	}

	// Time signature: beats over beat type, centered in its column.
	tsX := g.TimeX + layout.TimeSignatureWidth/2
	prims = append(prims,
		text(TagTimeSig, tsX, g.MiddleY-layout.LineSpacing, fmt.Sprintf("%d", sc.Time.Beats), 2*layout.LineSpacing),
		text(TagTimeSig, tsX, g.MiddleY+layout.LineSpacing, fmt.Sprintf("%d", sc.Time.BeatType), 2*layout.LineSpacing),
	)

	// Bar lines between measures, then the closing double bar.
	for i := 1; i < len(g.BarlineXs)-1; i++ {
		x := g.BarlineXs[i]
		prims = append(prims, line(TagBarline, x, g.TopY, x, g.BottomY, 1))
	}
	prims = append(prims,
		line(TagBarline, right-5, g.TopY, right-5, g.BottomY, 1),
		line(TagBarline, right, g.TopY, right, g.BottomY, 3),
	)

	staffSelected := sel.StaffID == g.Staff.ID
	for _, box := range g.Measures {
		measureSelected := staffSelected && sel.MeasureIdx == box.Index
		for _, slot := range box.Notes {
			noteSel := measureSelected && sel.NoteIdx == slot.NoteIdx
			prims = append(prims, renderNote(g, &slot, noteSel, opts)...)
		}
		if opts.Beams {
			prims = append(prims, renderBeams(g, box.Notes)...)
		}
	}

	// Highlight rectangles sit last so they draw over the glyphs. Layout
	// geometry is untouched by selection.
	if staffSelected {
		switch {
		case sel.HasNote():
			if slot := slotAt(g, sel.MeasureIdx, sel.NoteIdx); slot != nil {
				prims = append(prims, selectionRect(slot.X-slot.SlotWidth/2, g.ZoneMinY, slot.SlotWidth, g.ZoneMaxY-g.ZoneMinY))
			}
		case sel.HasMeasure():
			if sel.MeasureIdx >= 0 && sel.MeasureIdx < len(g.Measures) {
				box := g.Measures[sel.MeasureIdx]
				prims = append(prims, selectionRect(box.X, g.ZoneMinY, box.Width, g.ZoneMaxY-g.ZoneMinY))
			}
		default:
			prims = append(prims, selectionRect(layout.LeftMargin, g.ZoneMinY, right-layout.LeftMargin, g.ZoneMaxY-g.ZoneMinY))
		}
	}
	return prims
}

func renderClef(g *layout.StaffGeom) []Primitive {
	clef := g.Staff.Clef
	// Anchor each clef on its reference line: G4 for treble, F3 for bass,
	// C4 for the C-clefs (which is what distinguishes alto from tenor).
	var ref score.Pitch
	switch clef {
	case score.Bass:
		ref = score.NewPitch(score.F, 3)
	case score.Alto, score.Tenor:
		ref = score.NewPitch(score.C, 4)
	default:
		ref = score.NewPitch(score.G, 4)
	}
	y := layout.PositionToY(score.StaffPosition(ref, clef), g.MiddleY)
	return []Primitive{text(TagClef, g.ClefX+layout.ClefWidth/2, y, clef.Glyph(), 4*layout.LineSpacing)}
}

func renderNote(g *layout.StaffGeom, slot *layout.NoteSlot, selected bool, opts Options) []Primitive {
	n := slot.Note
	if n.Kind == score.KindRest {
		return renderRest(g, slot)
	}

	var prims []Primitive
	pitches := n.Pitches()
	clef := g.Staff.Clef

	// Ledger lines, deduplicated across chord pitches.
	seen := map[int]bool{}
	for _, p := range pitches {
		for _, lp := range layout.LedgerPositions(score.StaffPosition(p, clef)) {
			if !seen[lp] {
				seen[lp] = true
				y := layout.PositionToY(lp, g.MiddleY)
				prims = append(prims, line(TagLedger, slot.X-ledgerHalf, y, slot.X+ledgerHalf, y, 1.4))
			}
		}
	}

	stemUp := slot.Pos < 0
	for _, p := range pitches {
		pos := score.StaffPosition(p, clef)
		y := layout.PositionToY(pos, g.MiddleY)
		prims = append(prims, ellipse(TagNotehead, slot.X, y, noteheadRX, noteheadRY, n.Duration.Hollow()))

		if p.Accidental != score.NoAccidental {
			prims = append(prims, text(TagAccidental, slot.X-noteheadRX-8, y, p.Accidental.Glyph(), 2.2*layout.LineSpacing))
		}
		if n.Dotted {
			dotY := y
			if pos%2 == 0 {
				// On a line: the dot moves into the space above.
				dotY -= layout.LineSpacing / 2
			}
			prims = append(prims, ellipse(TagDot, slot.X+noteheadRX+5, dotY, dotRadius, dotRadius, false))
		}
	}

	// With beaming on, eighths and sixteenths get their stems from the
	// beam pass (which may extend them to the beam line).
	if n.Duration.HasStem() && !(opts.Beams && beamable(n)) {
		topY, botY := stemSpan(g, slot, pitches)
		prims = append(prims, renderStem(slot, topY, botY, stemUp))
		if stemUp {
			prims = append(prims, renderFlags(slot.X+noteheadRX, topY-stemHeight, n.Duration, true)...)
		} else {
			prims = append(prims, renderFlags(slot.X-noteheadRX, botY+stemHeight, n.Duration, false)...)
		}
	}

	if n.Tied {
		// Tie arc toward the next slot, approximated as a shallow polygon.
		y := slot.Y + noteheadRY + 4
		prims = append(prims, Primitive{
			Kind: KindPolygon, Tag: TagTie,
			Points: []geometry.Point2D{
				{X: slot.X + noteheadRX, Y: y},
				{X: slot.X + slot.SlotWidth/2, Y: y + 4},
				{X: slot.X + slot.SlotWidth - noteheadRX, Y: y},
			},
			Stroke: inkColor, StrokeWidth: 1.4, Fill: "none",
		})
	}
	return prims
}

// stemSpan returns the Y of the highest and lowest notehead the stem must
// touch. For a single note both equal slot.Y.
func stemSpan(g *layout.StaffGeom, slot *layout.NoteSlot, pitches []score.Pitch) (topY, botY float64) {
	minPos, maxPos := slot.Pos, slot.Pos
	for _, p := range pitches {
		pos := score.StaffPosition(p, g.Staff.Clef)
		if pos < minPos {
			minPos = pos
		}
		if pos > maxPos {
			maxPos = pos
		}
	}
	return layout.PositionToY(maxPos, g.MiddleY), layout.PositionToY(minPos, g.MiddleY)
}

// renderStem draws one stem for the note or chord. Chord stems span from the
// lowest to the highest notehead before extending the usual stem height.
func renderStem(slot *layout.NoteSlot, topY, botY float64, stemUp bool) Primitive {
	if stemUp {
		x := slot.X + noteheadRX
		return line(TagStem, x, botY, x, topY-stemHeight, 1.4)
	}
	x := slot.X - noteheadRX
	return line(TagStem, x, topY, x, botY+stemHeight, 1.4)
}

// renderFlags draws one flag per eighth step past a quarter note, hung from
// the stem tip at (x, tipY): one for eighths, two for sixteenths.
func renderFlags(x, tipY float64, d score.Duration, stemUp bool) []Primitive {
	var prims []Primitive
	for i := 0; i < d.Flags(); i++ {
		off := float64(i) * 7
		if stemUp {
			tip := tipY + off
			prims = append(prims, polygon(TagFlag, []geometry.Point2D{
				{X: x, Y: tip},
				{X: x + 9, Y: tip + 7},
				{X: x + 5, Y: tip + 13},
				{X: x, Y: tip + 6},
			}))
		} else {
			tip := tipY - off
			prims = append(prims, polygon(TagFlag, []geometry.Point2D{
				{X: x, Y: tip},
				{X: x + 9, Y: tip - 7},
				{X: x + 5, Y: tip - 13},
				{X: x, Y: tip - 6},
			}))
		}
	}
	return prims
}

func renderRest(g *layout.StaffGeom, slot *layout.NoteSlot) []Primitive {
	var prims []Primitive
	switch slot.Note.Duration {
	case score.Whole:
		// Hangs below the second line from the top.
		y := layout.PositionToY(2, g.MiddleY)
		prims = append(prims, filledRect(TagRest, slot.X-7, y, 14, 0.4*layout.LineSpacing))
	case score.Half:
		// Sits on the middle line.
		y := g.MiddleY - 0.4*layout.LineSpacing
		prims = append(prims, filledRect(TagRest, slot.X-7, y, 14, 0.4*layout.LineSpacing))
	case score.Eighth:
		prims = append(prims, text(TagRest, slot.X, g.MiddleY, "\U0001d13e", 3*layout.LineSpacing))
	case score.Sixteenth:
		prims = append(prims, text(TagRest, slot.X, g.MiddleY, "\U0001d13f", 3*layout.LineSpacing))
	default:
		prims = append(prims, text(TagRest, slot.X, g.MiddleY, "\U0001d13d", 3*layout.LineSpacing))
	}
	if slot.Note.Dotted {
		prims = append(prims, ellipse(TagDot, slot.X+12, g.MiddleY-layout.LineSpacing/2, dotRadius, dotRadius, false))
	}
	return prims
}

func selectionRect(x, y, w, h float64) Primitive {
	return Primitive{Kind: KindRect, Tag: TagSelection, X: x, Y: y, W: w, H: h, Fill: selectionColor, Opacity: 0.35}
}

func slotAt(g *layout.StaffGeom, mi, ni int) *layout.NoteSlot {
	if mi < 0 || mi >= len(g.Measures) {
		return nil
	}
	box := g.Measures[mi]
	if ni < 0 || ni >= len(box.Notes) {
		return nil
	}
	return &box.Notes[ni]
}
