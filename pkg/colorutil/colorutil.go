// Package colorutil provides shared color utilities for the notation
// renderer and rasterizer.
package colorutil

import "image/color"

// Colors shared between the raster preview and the GUI canvas.
var (
	Paper     = color.RGBA{R: 0xff, G: 0xfe, B: 0xf7, A: 0xff}
	Ink       = color.RGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 0xff}
	Highlight = color.RGBA{R: 0xff, G: 0xd5, B: 0x4f, A: 0xff}
)

// ParseHex reads a #rrggbb color string. Opacity in (0, 1) is folded into
// the alpha channel; 0 or 1 means fully opaque. Malformed input yields
// opaque black, which keeps glyphs visible rather than invisible.
func ParseHex(s string, opacity float64) color.RGBA {
	c := color.RGBA{0, 0, 0, 0xff}
	if len(s) == 7 && s[0] == '#' {
		c.R = hexByte(s[1], s[2])
		c.G = hexByte(s[3], s[4])
		c.B = hexByte(s[5], s[6])
	}
	if opacity > 0 && opacity < 1 {
		c.A = uint8(opacity * 255)
	}
	return c
}

// Over composites src over base using src's alpha and returns an opaque
// result.
func Over(base, src color.RGBA) color.RGBA {
	if src.A == 0xff {
		return src
	}
	a := float64(src.A) / 255
	return color.RGBA{
		R: uint8(float64(src.R)*a + float64(base.R)*(1-a)),
		G: uint8(float64(src.G)*a + float64(base.G)*(1-a)),
		B: uint8(float64(src.B)*a + float64(base.B)*(1-a)),
		A: 0xff,
	}
}

func hexByte(hi, lo byte) uint8 {
	return hexNibble(hi)<<4 | hexNibble(lo)
}

func hexNibble(b byte) uint8 {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10
	}
	return 0
}
