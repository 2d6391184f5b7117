package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// ScoreTheme provides a custom theme for the application.
type ScoreTheme struct{}

var _ fyne.Theme = (*ScoreTheme)(nil)

func (t *ScoreTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x3E, G: 0x2F, B: 0x23, A: 0xFF} // Ink brown
	case theme.ColorNameSelection:
		return color.NRGBA{R: 0xFF, G: 0xD5, B: 0x4F, A: 0x80} // Highlight gold
	case theme.ColorNameBackground:
		return color.NRGBA{R: 0xFA, G: 0xF8, B: 0xF0, A: 0xFF} // Paper
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *ScoreTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *ScoreTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *ScoreTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameScrollBar:
		return 16
	default:
		return theme.DefaultTheme().Size(name)
	}
}
