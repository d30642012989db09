package lcdtext

import "math"

// Range is the closed interval a numeric control accepts.
type Range struct {
	Min, Max float64
}

// Clamp limits v to the range. NaN becomes Min.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) || v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Control ranges.
var (
	FontScaleRange     = Range{0.5, 2}
	FauxItalicRange    = Range{-1, 1}
	FauxWeightRange    = Range{-1, 1}
	LetterSpacingRange = Range{-0.2, 0.2}
	WidthScaleRange    = Range{0.75, 1.25}
	GammaRange         = Range{0.5, 2.5}
	PrimaryWeightRange = Range{0, 1}
)

// Controls is the set of user adjustable settings for one frame.
type Controls struct {
	// FontFace selects the typeface from the font path table.
	FontFace int
	// ColorScheme selects one of Schemes.
	ColorScheme int

	FontScale     float64
	FauxItalic    float64
	FauxWeight    float64
	LetterSpacing float64
	WidthScale    float64
	Gamma         float64
	PrimaryWeight float64

	Grayscale bool
	Hinting   bool
	Kerning   bool
	Invert    bool
}

// DefaultControls returns the initial control values.
func DefaultControls() Controls {
	return Controls{
		FontFace:      4,
		ColorScheme:   1,
		FontScale:     1,
		WidthScale:    1,
		Gamma:         1.8,
		PrimaryWeight: 0.448,
		Hinting:       true,
		Kerning:       true,
	}
}

// Clamp returns c with every numeric control limited to its range. The
// typeface index wraps modulo the number of typefaces and the color scheme
// index is clamped to the predefined schemes.
func (c Controls) Clamp() Controls {
	c.FontFace = ((c.FontFace % numFaces) + numFaces) % numFaces
	if c.ColorScheme < 0 {
		c.ColorScheme = 0
	}
	if c.ColorScheme >= len(Schemes) {
		c.ColorScheme = len(Schemes) - 1
	}
	c.FontScale = FontScaleRange.Clamp(c.FontScale)
	c.FauxItalic = FauxItalicRange.Clamp(c.FauxItalic)
	c.FauxWeight = FauxWeightRange.Clamp(c.FauxWeight)
	c.LetterSpacing = LetterSpacingRange.Clamp(c.LetterSpacing)
	c.WidthScale = WidthScaleRange.Clamp(c.WidthScale)
	c.Gamma = GammaRange.Clamp(c.Gamma)
	c.PrimaryWeight = PrimaryWeightRange.Clamp(c.PrimaryWeight)
	return c
}

// PointSize returns the text height in pixels: 12 scaled by FontScale.
func (c Controls) PointSize() float64 {
	return BaseSize * c.FontScale
}

// Subpixels returns the horizontal oversampling for the controls: 1 in
// grayscale mode, 3 otherwise.
func (c Controls) Subpixels() int {
	if c.Grayscale {
		return 1
	}
	return 3
}

// Style derives the style parameters of a draw call.
func (c Controls) Style(subpixels int) StyleParameters {
	return StyleParameters{
		WidthScale:     c.WidthScale,
		Skew:           c.FauxItalic,
		FauxWeight:     c.FauxWeight,
		LetterSpacing:  c.LetterSpacing,
		PointSize:      c.PointSize(),
		SubpixelFactor: subpixels,
		Hinting:        c.Hinting,
		Kerning:        c.Kerning,
	}
}
