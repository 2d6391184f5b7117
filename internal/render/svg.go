package render

import (
	"fmt"
	"io"
	"strings"
)

const paperColor = "#fffef7"

// WriteSVG serializes a primitive list as an SVG document of the given size.
// Output is byte-deterministic for a given input.
func WriteSVG(w io.Writer, width, height float64, prims []Primitive) error {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&b, `<rect width="%g" height="%g" fill="%s"/>`+"\n", width, height, paperColor)

	for _, p := range prims {
		writePrimitive(&b, p)
	}

	b.WriteString("</svg>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func writePrimitive(b *strings.Builder, p Primitive) {
	switch p.Kind {
	case KindLine:
		fmt.Fprintf(b, `<line x1="%g" y1="%g" x2="%g" y2="%g" stroke="%s" stroke-width="%g"%s/>`+"\n",
			p.X, p.Y, p.X2, p.Y2, p.Stroke, p.StrokeWidth, classAttr(p))
	case KindRect:
		fmt.Fprintf(b, `<rect x="%g" y="%g" width="%g" height="%g" fill="%s"%s%s/>`+"\n",
			p.X, p.Y, p.W, p.H, p.Fill, opacityAttr(p), classAttr(p))
	case KindEllipse:
		fmt.Fprintf(b, `<ellipse cx="%g" cy="%g" rx="%g" ry="%g" fill="%s"%s%s/>`+"\n",
			p.X, p.Y, p.RX, p.RY, p.Fill, strokeAttr(p), classAttr(p))
	case KindPolygon:
		pts := make([]string, len(p.Points))
		for i, pt := range p.Points {
			pts[i] = fmt.Sprintf("%g,%g", pt.X, pt.Y)
		}
		fill := p.Fill
		if fill == "" {
			fill = "none"
		}
		fmt.Fprintf(b, `<polygon points="%s" fill="%s"%s%s/>`+"\n",
			strings.Join(pts, " "), fill, strokeAttr(p), classAttr(p))
	case KindText:
		fmt.Fprintf(b, `<text x="%g" y="%g" font-size="%g" fill="%s" text-anchor="middle" dominant-baseline="middle"%s>%s</text>`+"\n",
			p.X, p.Y, p.Size, p.Fill, classAttr(p), escapeText(p.Text))
	}
}

func strokeAttr(p Primitive) string {
	if p.Stroke == "" {
		return ""
	}
	return fmt.Sprintf(` stroke="%s" stroke-width="%g"`, p.Stroke, p.StrokeWidth)
}

func opacityAttr(p Primitive) string {
	if p.Opacity == 0 {
		return ""
	}
	return fmt.Sprintf(` fill-opacity="%g"`, p.Opacity)
}

func classAttr(p Primitive) string {
	if p.Tag == "" {
		return ""
	}
	return fmt.Sprintf(` class="%s"`, p.Tag)
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeText(s string) string {
	return textEscaper.Replace(s)
}
