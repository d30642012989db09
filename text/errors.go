package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrFontNotLoaded is returned when a query is made before OpenFont
	// succeeded.
	ErrFontNotLoaded = errors.New("text: no font loaded")

	// ErrFaceIndex is returned when a collection has no face at the
	// requested index.
	ErrFaceIndex = errors.New("text: face index out of range")

	// ErrUnsupportedMode is returned for rendering modes the provider does
	// not implement.
	ErrUnsupportedMode = errors.New("text: unsupported rendering mode")
)

// FontError represents a font that could not be opened.
type FontError struct {
	Path string
	Err  error
}

func (e *FontError) Error() string {
	return "text: open " + e.Path + ": " + e.Err.Error()
}

func (e *FontError) Unwrap() error { return e.Err }
