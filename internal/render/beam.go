package render

import (
	"gonum.org/v1/gonum/stat"

	"scorewriter/internal/layout"
	"scorewriter/internal/score"
	"scorewriter/pkg/geometry"
)

const (
	beamThickness = 4.0
	// maxBeamSlope caps the fitted beam slope so wide pitch leaps don't
	// produce beams steeper than engraving practice allows.
	maxBeamSlope = 0.25
)

// renderBeams emits beam quads over runs of two or more consecutive eighth
// or sixteenth notes in a measure that share a stem direction. Rests and
// other durations break a run. The beam line is a least-squares fit through
// the stem tips, slope-clamped; stems are extended to meet it.
func renderBeams(g *layout.StaffGeom, slots []layout.NoteSlot) []Primitive {
	var prims []Primitive
	run := make([]*layout.NoteSlot, 0, len(slots))

	flush := func() {
		switch {
		case len(run) >= 2:
			prims = append(prims, beamGroup(run)...)
		case len(run) == 1:
			// An isolated eighth or sixteenth keeps its ordinary flags.
			s := run[0]
			up := stemUp(s)
			x := stemX(s, up)
			prims = append(prims, line(TagStem, x, s.Y, x, stemTipY(s, up), 1.4))
			prims = append(prims, renderFlags(x, stemTipY(s, up), s.Note.Duration, up)...)
		}
		run = run[:0]
	}

	for i := range slots {
		s := &slots[i]
		if !beamable(s.Note) {
			flush()
			continue
		}
		if len(run) > 0 && stemUp(run[0]) != stemUp(s) {
			flush()
		}
		run = append(run, s)
	}
	flush()
	return prims
}

func beamable(n *score.Note) bool {
	if n.Kind == score.KindRest {
		return false
	}
	return n.Duration == score.Eighth || n.Duration == score.Sixteenth
}

func stemUp(s *layout.NoteSlot) bool { return s.Pos < 0 }

func beamGroup(run []*layout.NoteSlot) []Primitive {
	up := stemUp(run[0])

	xs := make([]float64, len(run))
	ys := make([]float64, len(run))
	for i, s := range run {
		xs[i] = stemX(s, up)
		ys[i] = stemTipY(s, up)
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	if beta > maxBeamSlope {
		beta = maxBeamSlope
	} else if beta < -maxBeamSlope {
		beta = -maxBeamSlope
	}
	// Re-anchor the clamped line on the centroid the fit passed through.
	cx, cy := stat.Mean(xs, nil), stat.Mean(ys, nil)
	alpha = cy - beta*cx

	beamY := func(x float64) float64 { return alpha + beta*x }

	var prims []Primitive
	// Extended stems up to the beam line.
	for _, s := range run {
		x := stemX(s, up)
		prims = append(prims, line(TagStem, x, s.Y, x, beamY(x), 1.4))
	}

	x0, x1 := xs[0], xs[len(xs)-1]
	prims = append(prims, beamQuad(x0, beamY(x0), x1, beamY(x1), up))

	// Secondary beam segments between adjacent sixteenth pairs.
	for i := 0; i+1 < len(run); i++ {
		if run[i].Note.Duration == score.Sixteenth && run[i+1].Note.Duration == score.Sixteenth {
			a, b := xs[i], xs[i+1]
			off := beamThickness + 2
			if up {
				prims = append(prims, beamQuad(a, beamY(a)+off, b, beamY(b)+off, up))
			} else {
				prims = append(prims, beamQuad(a, beamY(a)-off, b, beamY(b)-off, up))
			}
		}
	}
	return prims
}

func beamQuad(x0, y0, x1, y1 float64, up bool) Primitive {
	t := beamThickness
	if !up {
		t = -t
	}
	return polygon(TagBeam, []geometry.Point2D{
		{X: x0, Y: y0},
		{X: x1, Y: y1},
		{X: x1, Y: y1 + t},
		{X: x0, Y: y0 + t},
	})
}

func stemX(s *layout.NoteSlot, up bool) float64 {
	if up {
		return s.X + noteheadRX
	}
	return s.X - noteheadRX
}

func stemTipY(s *layout.NoteSlot, up bool) float64 {
	if up {
		return s.Y - stemHeight
	}
	return s.Y + stemHeight
}
