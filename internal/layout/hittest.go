package layout

import "scorewriter/internal/score"

// Hit is the musical position under a screen coordinate.
type Hit struct {
	StaffID    string
	StaffIdx   int
	Clef       score.Clef
	MeasureIdx int
	Pitch      score.Pitch
}

// HitTest maps a coordinate back to (staff, measure, pitch). Staves are
// checked top to bottom; a staff claims any Y within HitZonePad of its
// lines. The measure index divides X by the same per-measure width Compute
// produced, clamped into range; the pitch comes from the shared inverse
// transform. Returns false when y is outside every staff's zone.
func (l *Layout) HitTest(x, y float64) (Hit, bool) {
	for _, g := range l.Staves {
		if y < g.ZoneMinY || y > g.ZoneMaxY {
			continue
		}

		mi := 0
		if g.MeasureWidth > 0 {
			mi = int((x - g.ContentX) / g.MeasureWidth)
		}
		if mi < 0 {
			mi = 0
		}
		if max := len(g.Staff.Measures) - 1; mi > max {
			mi = max
		}
		if mi < 0 {
			// Staff with no measures: nothing to address.
			continue
		}

		pos := YToPosition(y, g.MiddleY)
		return Hit{
			StaffID:    g.Staff.ID,
			StaffIdx:   g.Index,
			Clef:       g.Staff.Clef,
			MeasureIdx: mi,
			Pitch:      score.PitchAt(g.Staff.Clef, pos),
		}, true
	}
	return Hit{}, false
}

// HitTest is the package-level convenience that computes the layout first.
func HitTest(sc *score.Score, x, y float64) (Hit, bool) {
	return Compute(sc).HitTest(x, y)
}
