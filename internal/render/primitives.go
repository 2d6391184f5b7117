// Package render turns a score into a flat list of vector drawing
// primitives. The output is deterministic: the same score and selection
// always produce the same list in the same order.
package render

import "scorewriter/pkg/geometry"

// Kind discriminates the primitive variants.
type Kind string

const (
	KindLine    Kind = "line"
	KindRect    Kind = "rect"
	KindEllipse Kind = "ellipse"
	KindPolygon Kind = "polygon"
	KindText    Kind = "text"
)

// Tag labels what a primitive represents, for consumers that want to style
// or count specific glyph classes.
type Tag string

const (
	TagStaffLine  Tag = "staff-line"
	TagClef       Tag = "clef"
	TagKeyAcc     Tag = "key-accidental"
	TagTimeSig    Tag = "time-signature"
	TagBarline    Tag = "barline"
	TagNotehead   Tag = "notehead"
	TagStem       Tag = "stem"
	TagFlag       Tag = "flag"
	TagBeam       Tag = "beam"
	TagDot        Tag = "dot"
	TagRest       Tag = "rest"
	TagLedger     Tag = "ledger"
	TagAccidental Tag = "accidental"
	TagTie        Tag = "tie"
	TagTitle      Tag = "title"
	TagComposer   Tag = "composer"
	TagSelection  Tag = "selection"
)

// Primitive is one drawing instruction. Which coordinate fields are
// meaningful depends on Kind: lines use X..Y2, rects X/Y/W/H, ellipses
// X/Y as center with RX/RY, polygons Points, text X/Y as the anchor.
type Primitive struct {
	Kind Kind `json:"kind"`
	Tag  Tag  `json:"tag"`

	X  float64 `json:"x,omitempty"`
	Y  float64 `json:"y,omitempty"`
	X2 float64 `json:"x2,omitempty"`
	Y2 float64 `json:"y2,omitempty"`
	W  float64 `json:"w,omitempty"`
	H  float64 `json:"h,omitempty"`
	RX float64 `json:"rx,omitempty"`
	RY float64 `json:"ry,omitempty"`

	Points []geometry.Point2D `json:"points,omitempty"`

	Text string  `json:"text,omitempty"`
	Size float64 `json:"size,omitempty"`

	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	Fill        string  `json:"fill,omitempty"`
	Opacity     float64 `json:"opacity,omitempty"`
}

const (
	inkColor       = "#1a1a1a"
	selectionColor = "#ffd54f"
)

func line(tag Tag, x1, y1, x2, y2, width float64) Primitive {
	return Primitive{Kind: KindLine, Tag: tag, X: x1, Y: y1, X2: x2, Y2: y2, Stroke: inkColor, StrokeWidth: width}
}

func filledRect(tag Tag, x, y, w, h float64) Primitive {
	return Primitive{Kind: KindRect, Tag: tag, X: x, Y: y, W: w, H: h, Fill: inkColor}
}

func ellipse(tag Tag, cx, cy, rx, ry float64, hollow bool) Primitive {
	p := Primitive{Kind: KindEllipse, Tag: tag, X: cx, Y: cy, RX: rx, RY: ry}
	if hollow {
		p.Fill = "none"
		p.Stroke = inkColor
		p.StrokeWidth = 1.6
	} else {
		p.Fill = inkColor
	}
	return p
}

func text(tag Tag, x, y float64, s string, size float64) Primitive {
	return Primitive{Kind: KindText, Tag: tag, X: x, Y: y, Text: s, Size: size, Fill: inkColor}
}

func polygon(tag Tag, pts []geometry.Point2D) Primitive {
	return Primitive{Kind: KindPolygon, Tag: tag, Points: pts, Fill: inkColor}
}

// CountTag returns how many primitives carry the given tag.
func CountTag(prims []Primitive, tag Tag) int {
	n := 0
	for _, p := range prims {
		if p.Tag == tag {
			n++
		}
	}
	return n
}

// FindTag returns the primitives carrying the given tag, in output order.
func FindTag(prims []Primitive, tag Tag) []Primitive {
	var out []Primitive
	for _, p := range prims {
		if p.Tag == tag {
			out = append(out, p)
		}
	}
	return out
}
