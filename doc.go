// Package lcdtext renders text onto RGB surfaces with LCD subpixel
// antialiasing and synthetic ("faux") weight and slant.
//
// # Overview
//
// Each glyph outline supplied by a text.Provider runs through a small stage
// pipeline (width scale, skew, pen translation and an optional contour offset
// for faux weight). The result is scan converted at three samples per pixel,
// spread over the color channels by the LCD distribution filter, mapped
// through a gamma table and blended toward the ink color. A grayscale path
// skips the oversampling and the filter.
//
// # Quick Start
//
//	r := lcdtext.NewRenderer()
//	s := surface.NewImageSurface(640, 560, true)
//	if err := r.RenderFrame(s, lcdtext.DefaultControls()); err != nil {
//	    log.Fatal(err)
//	}
//	png.Encode(w, s)
//
// Lower level drawing goes through BeginFrame and DrawText:
//
//	f := r.BeginFrame(s, controls)
//	y := r.DrawText(fontPath, "Hello\nworld", 10, 500, controls.Style(f.Subpixels), f.Scheme)
//
// # Coordinate System
//
// Coordinates follow the surface: on a y-up surface (surface.FlipY) the
// origin is at the bottom left and a newline moves the pen down by
// decreasing y, as in font space. On a y-down surface the origin is at the
// top left and a newline increases y. Pen x is tracked in subpixels
// internally; DrawText takes and returns pixel coordinates.
//
// # Concurrency
//
// A Renderer is single-threaded. Per-frame state (gamma table, filter
// kernel, compositor) is rebuilt by BeginFrame and read-only while the frame
// is drawn.
package lcdtext
