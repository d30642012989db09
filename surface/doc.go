// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the destination framebuffer for glyph rendering.
//
// A Surface is a packed 24-bit RGB pixel buffer with raw byte access. The
// compositor writes three bytes per pixel through PixOffset, while Clear and
// CopyRect cover the bulk fills needed at frame start.
//
// # Coordinates
//
// Surfaces can be addressed y-down (row 0 at the top, image convention) or
// y-up (row 0 at the bottom, font convention). A y-up surface stores its rows
// in the same top-to-bottom memory order as a y-down one; only PixOffset and
// CopyRect interpret y differently. Snapshot and the image.Image methods
// always return the top-to-bottom picture.
//
// # Usage
//
//	s := surface.NewImageSurface(640, 560, true)
//	s.Clear(surface.RGB{R: 0xe9, G: 0xe5, B: 0xcd})
//	off := s.PixOffset(10, 20)
//	s.Pix()[off] = 0x23
//	png.Encode(w, s)
package surface
