package text

import (
	"fmt"

	"github.com/gogpu/lcdtext/outline"
)

// Kind describes the data carried by a Glyph.
type Kind uint8

const (
	// KindInvalid marks a character the face cannot render.
	KindInvalid Kind = iota

	// KindBitmap marks a glyph that only has bitmap (or color) data.
	// The layout driver advances past it but does not draw it.
	KindBitmap

	// KindOutline marks a glyph with vector outline data.
	KindOutline
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "Invalid"
	case KindBitmap:
		return "Bitmap"
	case KindOutline:
		return "Outline"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Glyph is the provider's answer for one character at the current size.
type Glyph struct {
	// Outline is the glyph shape in pixels, y up, origin on the baseline.
	// Nil or empty for blank glyphs such as space.
	Outline *outline.Outline

	// AdvanceX and AdvanceY are the pen advance in pixels.
	AdvanceX float64
	AdvanceY float64

	// Kind tells which data is present.
	Kind Kind

	// Index is the glyph index in the face.
	Index uint16

	// Orientation is the winding of outer contours, fixed by the font
	// format.
	Orientation outline.Orientation
}

// RenderMode selects how glyph data is requested from the face.
type RenderMode uint8

const (
	// RenderOutline requests vector outlines.
	RenderOutline RenderMode = iota

	// RenderBitmap requests pre-rasterized bitmaps.
	RenderBitmap
)

// String returns the string representation of the mode.
func (m RenderMode) String() string {
	switch m {
	case RenderOutline:
		return "outline"
	case RenderBitmap:
		return "bitmap"
	default:
		return fmt.Sprintf("RenderMode(%d)", uint8(m))
	}
}

// Provider is the font engine consumed by the layout driver.
//
// A Provider holds one current face and is not safe for concurrent use.
type Provider interface {
	// OpenFont makes the face at faceIndex of the file at path current.
	// Reopening the current face is cheap.
	OpenFont(path string, faceIndex int, mode RenderMode) error

	// SetSize sets the pixel height used for subsequent queries.
	SetSize(height float64)

	// SetHinting toggles hinted metrics.
	SetHinting(on bool)

	// Glyph returns the glyph for r. ok is false if the face has no glyph
	// for r or no font is open.
	Glyph(r rune) (g Glyph, ok bool)

	// Kerning returns the pen adjustment, in pixels, between prev and cur.
	Kerning(prev, cur rune) (dx, dy float64)

	// Signature identifies the current face, size, hinting and mode.
	// Glyph answers are stable for a given signature.
	Signature() string
}
