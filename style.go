package lcdtext

import "github.com/gogpu/lcdtext/surface"

// BaseSize is the text height in pixels at font scale 1.
const BaseSize = 12.0

// LineSpacing is the line height as a multiple of the point size.
const LineSpacing = 1.25

// numFaces is the number of selectable typefaces.
const numFaces = 5

// StyleParameters controls how one DrawText call shapes its glyphs.
// It is read-only while a glyph is rendered.
type StyleParameters struct {
	// WidthScale condenses (<1) or expands (>1) glyphs horizontally.
	// It does not change advances.
	WidthScale float64
	// Skew is the faux italic slant; positive leans right.
	Skew float64
	// FauxWeight thickens (>0) or thins (<0) stems.
	FauxWeight float64
	// LetterSpacing is added to every advance, in pixels.
	LetterSpacing float64
	// PointSize is the text height in pixels.
	PointSize float64
	// SubpixelFactor is the horizontal oversampling, 1 or 3.
	SubpixelFactor int

	Hinting bool
	Kerning bool
}

// LineHeight returns the distance between baselines.
func (s StyleParameters) LineHeight() float64 {
	return s.PointSize * LineSpacing
}

// ColorScheme is a text color over a background color.
type ColorScheme struct {
	Foreground surface.RGB
	Background surface.RGB
}

// Ink returns the color glyphs are drawn with. Inverted frames draw with
// the background color over a foreground fill.
func (c ColorScheme) Ink(invert bool) surface.RGB {
	if invert {
		return c.Background
	}
	return c.Foreground
}

// Schemes are the predefined color schemes.
var Schemes = [...]ColorScheme{
	{Foreground: surface.Hex(0x000000), Background: surface.Hex(0xffffff)},
	{Foreground: surface.Hex(0x231f20), Background: surface.Hex(0xe9e5cd)},
	{Foreground: surface.Hex(0x389ad4), Background: surface.Hex(0xe9e5cd)},
	{Foreground: surface.Hex(0x231f20), Background: surface.Hex(0x7cb1e0)},
	{Foreground: surface.Hex(0xffffff), Background: surface.Hex(0x7cb1e0)},
}

// Scheme returns the predefined scheme i, clamped to the valid indices.
func Scheme(i int) ColorScheme {
	if i < 0 {
		i = 0
	}
	if i >= len(Schemes) {
		i = len(Schemes) - 1
	}
	return Schemes[i]
}
