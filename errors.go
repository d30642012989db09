package lcdtext

import "errors"

// Sentinel errors for lcdtext package.
var (
	// ErrFontUnavailable is reported by LastError when a draw call could
	// not open its font. The draw call itself is a no-op.
	ErrFontUnavailable = errors.New("lcdtext: font unavailable")

	// ErrNoFrame is reported by LastError when DrawText is called before
	// BeginFrame.
	ErrNoFrame = errors.New("lcdtext: no frame in progress")

	// ErrNilSurface is returned when rendering to a nil surface.
	ErrNilSurface = errors.New("lcdtext: nil surface")

	// ErrEmptySurface is returned when rendering to a surface with no
	// pixels.
	ErrEmptySurface = errors.New("lcdtext: empty surface")
)
