// Package raster converts a rendered primitive list into an image.RGBA.
// It is a preview/export collaborator: the notation engine itself only
// emits primitives and never touches pixels.
package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"scorewriter/internal/render"
	"scorewriter/pkg/colorutil"
	"scorewriter/pkg/geometry"
)

var paper = colorutil.Paper

// Draw rasterizes primitives onto a fresh RGBA canvas of the given size.
// Primitives outside the canvas are clipped, never a crash.
func Draw(prims []render.Primitive, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, paper)
		}
	}
	for _, p := range prims {
		drawPrimitive(img, p)
	}
	return img
}

func drawPrimitive(img *image.RGBA, p render.Primitive) {
	switch p.Kind {
	case render.KindLine:
		drawThickLine(img, p.X, p.Y, p.X2, p.Y2, int(math.Max(1, p.StrokeWidth)), colorutil.ParseHex(p.Stroke, 1))
	case render.KindRect:
		drawRect(img, p)
	case render.KindEllipse:
		drawEllipse(img, p)
	case render.KindPolygon:
		drawPolygon(img, p)
	case render.KindText:
		drawText(img, p)
	}
}

func drawRect(img *image.RGBA, p render.Primitive) {
	if p.Fill == "" || p.Fill == "none" {
		return
	}
	col := colorutil.ParseHex(p.Fill, p.Opacity)
	bounds := img.Bounds()
	for y := int(p.Y); y <= int(p.Y+p.H); y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		for x := int(p.X); x <= int(p.X+p.W); x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			blend(img, x, y, col)
		}
	}
}

func drawEllipse(img *image.RGBA, p render.Primitive) {
	bounds := img.Bounds()
	rx, ry := p.RX, p.RY
	if rx <= 0 || ry <= 0 {
		return
	}
	filled := p.Fill != "" && p.Fill != "none"
	var fillCol, strokeCol color.RGBA
	if filled {
		fillCol = colorutil.ParseHex(p.Fill, p.Opacity)
	}
	hasStroke := p.Stroke != ""
	if hasStroke {
		strokeCol = colorutil.ParseHex(p.Stroke, 1)
	}

	for y := int(p.Y - ry - 1); y <= int(p.Y+ry+1); y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		for x := int(p.X - rx - 1); x <= int(p.X+rx+1); x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			dx := (float64(x) - p.X) / rx
			dy := (float64(y) - p.Y) / ry
			d := dx*dx + dy*dy
			switch {
			case filled && d <= 1:
				blend(img, x, y, fillCol)
			case hasStroke && d <= 1 && d >= 0.55:
				// Outline ring for hollow noteheads.
				blend(img, x, y, strokeCol)
			}
		}
	}
}

// drawPolygon fills with a scanline pass, then strokes the outline.
func drawPolygon(img *image.RGBA, p render.Primitive) {
	if len(p.Points) < 2 {
		return
	}
	bounds := img.Bounds()
	box := geometry.BoundingBox(p.Points)

	if p.Fill != "" && p.Fill != "none" {
		col := colorutil.ParseHex(p.Fill, p.Opacity)
		n := len(p.Points)
		for y := int(box.Y); y <= int(box.Y+box.Height); y++ {
			if y < bounds.Min.Y || y >= bounds.Max.Y {
				continue
			}
			var xs []float64
			for i := 0; i < n; i++ {
				p1 := p.Points[i]
				p2 := p.Points[(i+1)%n]
				fy := float64(y)
				if (p1.Y <= fy && p2.Y > fy) || (p2.Y <= fy && p1.Y > fy) {
					t := (fy - p1.Y) / (p2.Y - p1.Y)
					xs = append(xs, p1.X+t*(p2.X-p1.X))
				}
			}
			for i := 0; i < len(xs); i++ {
				for j := i + 1; j < len(xs); j++ {
					if xs[j] < xs[i] {
						xs[i], xs[j] = xs[j], xs[i]
					}
				}
			}
			for i := 0; i+1 < len(xs); i += 2 {
				for x := int(xs[i]); x <= int(xs[i+1]); x++ {
					if x >= bounds.Min.X && x < bounds.Max.X {
						blend(img, x, y, col)
					}
				}
			}
		}
	}

	if p.Stroke != "" {
		col := colorutil.ParseHex(p.Stroke, 1)
		w := int(math.Max(1, p.StrokeWidth))
		for i := 0; i+1 < len(p.Points); i++ {
			a, b := p.Points[i], p.Points[i+1]
			drawThickLine(img, a.X, a.Y, b.X, b.Y, w, col)
		}
	}
}

// drawText renders with the basicfont face. The Unicode music glyphs the
// renderer emits are substituted with ASCII stand-ins, which is plenty for
// a preview raster.
func drawText(img *image.RGBA, p render.Primitive) {
	s := substituteGlyphs(p.Text)
	face := basicfont.Face7x13
	w := font.MeasureString(face, s).Ceil()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(colorutil.ParseHex(p.Fill, p.Opacity)),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(int(p.X) - w/2),
			Y: fixed.I(int(p.Y) + face.Height/2 - 2),
		},
	}
	d.DrawString(s)
}

// substituteGlyphs maps the renderer's Unicode music symbols to ASCII.
var glyphSubs = map[rune]string{
	'\U0001d11e': "G", // treble clef
	'\U0001d122': "F", // bass clef
	'\U0001d121': "C", // C clef
	'\U0001d13d': "Q", // quarter rest
	'\U0001d13e': "E", // eighth rest
	'\U0001d13f': "S", // sixteenth rest
	'♯':     "#",
	'♭':     "b",
	'♮':     "n",
}

func substituteGlyphs(s string) string {
	out := ""
	for _, r := range s {
		if sub, ok := glyphSubs[r]; ok {
			out += sub
		} else if r < 128 {
			out += string(r)
		} else {
			out += "?"
		}
	}
	return out
}

// drawThickLine draws a Bresenham line with square caps.
func drawThickLine(img *image.RGBA, x1f, y1f, x2f, y2f float64, thickness int, col color.RGBA) {
	bounds := img.Bounds()
	x1, y1 := int(x1f), int(y1f)
	x2, y2 := int(x2f), int(y2f)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		for t := -thickness / 2; t <= thickness/2; t++ {
			for s := -thickness / 2; s <= thickness/2; s++ {
				px, py := x1+s, y1+t
				if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
					img.SetRGBA(px, py, col)
				}
			}
		}
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// blend writes col over the existing pixel with col's implied opacity.
func blend(img *image.RGBA, x, y int, col color.RGBA) {
	img.SetRGBA(x, y, colorutil.Over(img.RGBAAt(x, y), col))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
