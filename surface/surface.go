// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import "image"

// BytesPerPixel is the size of one packed RGB pixel.
const BytesPerPixel = 3

// Surface is the rendering target of the glyph compositor.
//
// Surfaces are NOT thread-safe. Each surface should be used from a single
// goroutine, or external synchronization must be used.
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// FlipY reports whether y grows upward.
	FlipY() bool

	// Clear fills the entire surface with the given color.
	Clear(c RGB)

	// CopyRect fills r with c. r is in surface coordinates and is clipped
	// to the surface bounds.
	CopyRect(r image.Rectangle, c RGB)

	// Pix returns the raw pixel bytes in R, G, B order.
	Pix() []byte

	// PixOffset returns the index in Pix of the first byte of pixel (x, y).
	// The caller must keep (x, y) within bounds.
	PixOffset(x, y int) int
}

// Bounds returns the rectangle covering the whole surface.
func Bounds(s Surface) image.Rectangle {
	return image.Rect(0, 0, s.Width(), s.Height())
}
