// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
)

// ImageSurface is a CPU surface backed by a packed RGB24 buffer.
//
// It implements image.Image so frames can be encoded directly, for example
// with image/png.
//
// Example:
//
//	s := surface.NewImageSurface(800, 600, false)
//	s.Clear(surface.RGB{R: 255, G: 255, B: 255})
//	img := s.Snapshot()
type ImageSurface struct {
	width  int
	height int
	stride int
	flipY  bool
	pix    []byte
}

// NewImageSurface creates a surface with the given dimensions.
// Non-positive sizes are clamped to 1.
func NewImageSurface(width, height int, flipY bool) *ImageSurface {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	stride := width * BytesPerPixel
	return &ImageSurface{
		width:  width,
		height: height,
		stride: stride,
		flipY:  flipY,
		pix:    make([]byte, stride*height),
	}
}

// Width returns the surface width.
func (s *ImageSurface) Width() int { return s.width }

// Height returns the surface height.
func (s *ImageSurface) Height() int { return s.height }

// FlipY reports whether y grows upward.
func (s *ImageSurface) FlipY() bool { return s.flipY }

// Stride returns the number of bytes per row.
func (s *ImageSurface) Stride() int { return s.stride }

// Pix returns the pixel buffer.
func (s *ImageSurface) Pix() []byte { return s.pix }

// PixOffset returns the byte offset of pixel (x, y).
func (s *ImageSurface) PixOffset(x, y int) int {
	return s.row(y)*s.stride + x*BytesPerPixel
}

// row maps a surface y to a memory row.
func (s *ImageSurface) row(y int) int {
	if s.flipY {
		return s.height - 1 - y
	}
	return y
}

// Clear fills the entire surface with the given color.
func (s *ImageSurface) Clear(c RGB) {
	if len(s.pix) == 0 {
		return
	}
	s.pix[0], s.pix[1], s.pix[2] = c.R, c.G, c.B
	// Doubling copy fills the buffer in O(log n) copy calls.
	for n := BytesPerPixel; n < len(s.pix); n *= 2 {
		copy(s.pix[n:], s.pix[:n])
	}
}

// CopyRect fills r with c, clipped to the surface.
func (s *ImageSurface) CopyRect(r image.Rectangle, c RGB) {
	r = r.Canon().Intersect(image.Rect(0, 0, s.width, s.height))
	if r.Empty() {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := s.PixOffset(r.Min.X, y)
		row := s.pix[off : off+r.Dx()*BytesPerPixel]
		for i := 0; i < len(row); i += BytesPerPixel {
			row[i], row[i+1], row[i+2] = c.R, c.G, c.B
		}
	}
}

// RGBAt returns the color at surface coordinates (x, y).
func (s *ImageSurface) RGBAt(x, y int) RGB {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return RGB{}
	}
	off := s.PixOffset(x, y)
	return RGB{R: s.pix[off], G: s.pix[off+1], B: s.pix[off+2]}
}

// ColorModel implements image.Image.
func (s *ImageSurface) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (s *ImageSurface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// At implements image.Image. Coordinates are image coordinates (y-down)
// regardless of FlipY.
func (s *ImageSurface) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return color.RGBA{}
	}
	off := y*s.stride + x*BytesPerPixel
	return color.RGBA{R: s.pix[off], G: s.pix[off+1], B: s.pix[off+2], A: 0xff}
}

// Snapshot returns the current surface contents as an RGBA image.
// The returned image is a copy; modifications to it do not affect the surface.
func (s *ImageSurface) Snapshot() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	for y := 0; y < s.height; y++ {
		src := s.pix[y*s.stride : (y+1)*s.stride]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < s.width; x++ {
			dst[x*4] = src[x*3]
			dst[x*4+1] = src[x*3+1]
			dst[x*4+2] = src[x*3+2]
			dst[x*4+3] = 0xff
		}
	}
	return img
}

// Compile-time interface checks.
var (
	_ Surface     = (*ImageSurface)(nil)
	_ image.Image = (*ImageSurface)(nil)
)
