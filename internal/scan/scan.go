// Package scan converts transformed glyph outlines into 8-bit coverage
// masks. Horizontal resolution is oversampled by the subpixel factor of the
// compositor; vertical resolution is one row per pixel.
package scan

import (
	"errors"
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/lcdtext/outline"
)

// MaxExtent is the largest mask side, in samples, the converter allocates.
const MaxExtent = 1 << 15

// ErrTooLarge is returned when an outline would need a mask larger than
// MaxExtent on either side.
var ErrTooLarge = errors.New("scan: outline extent too large")

// Coverage is a rectangular coverage mask in outline space.
//
// Sample (i, r) covers x in [X0+i, X0+i+1) and y in [Y0+r, Y0+r+1). X0 is
// always a multiple of the subpixel factor, so sample i belongs to pixel
// column (X0+i)/subpixels. Row order follows outline y, not surface rows.
type Coverage struct {
	X0, Y0 int
	W, H   int
	Stride int
	Pix    []uint8
}

// Empty reports whether the mask has no samples.
func (c *Coverage) Empty() bool {
	return c == nil || c.W <= 0 || c.H <= 0
}

// Row returns the samples of row r.
func (c *Coverage) Row(r int) []uint8 {
	off := r * c.Stride
	return c.Pix[off : off+c.W]
}

// Converter rasterizes outlines with golang.org/x/image/vector. The
// rasterizer and the mask buffer are reused between calls, so a Converter
// is not safe for concurrent use and the returned Coverage is only valid
// until the next call to Convert.
type Converter struct {
	z     vector.Rasterizer
	alpha image.Alpha
	cov   Coverage
}

// NewConverter creates a converter.
func NewConverter() *Converter {
	return &Converter{}
}

// Convert rasterizes the segments of vs. x coordinates are in samples
// (pixels times subpixels). When subpixels is larger than one, the mask is
// padded so that the LCD filter has room to spread into neighbouring
// pixels. Returns (nil, nil) for outlines with no drawable segments.
func (c *Converter) Convert(vs *outline.VertexSource, subpixels int) (*Coverage, error) {
	if subpixels < 1 {
		subpixels = 1
	}
	src := vs.Outline()
	if src == nil || src.IsEmpty() {
		return nil, nil
	}
	minX, minY, maxX, maxY, ok := src.Bounds()
	if !ok {
		return nil, nil
	}

	margin := 0.0
	if subpixels > 1 {
		margin = 2
	}
	s := float64(subpixels)
	p0 := math.Floor((minX - margin) / s)
	p1 := math.Ceil((maxX + margin) / s)
	y0 := math.Floor(minY)
	y1 := math.Ceil(maxY)
	if y1 == y0 {
		y1++
	}
	if p1 == p0 {
		p1++
	}

	w := (p1 - p0) * s
	h := y1 - y0
	if w > MaxExtent || h > MaxExtent {
		return nil, ErrTooLarge
	}

	c.cov.X0 = int(p0) * subpixels
	c.cov.Y0 = int(y0)
	c.cov.W = int(w)
	c.cov.H = int(h)

	c.z.Reset(c.cov.W, c.cov.H)
	c.z.DrawOp = draw.Src

	ox := float32(c.cov.X0)
	oy := float32(c.cov.Y0)
	vs.Rewind()
	open := false
	for {
		seg, more := vs.Next()
		if !more {
			break
		}
		p := seg.Points
		switch seg.Op {
		case outline.OpMoveTo:
			if open {
				c.z.ClosePath()
			}
			c.z.MoveTo(float32(p[0].X)-ox, float32(p[0].Y)-oy)
			open = true
		case outline.OpLineTo:
			c.z.LineTo(float32(p[0].X)-ox, float32(p[0].Y)-oy)
		case outline.OpQuadTo:
			c.z.QuadTo(
				float32(p[0].X)-ox, float32(p[0].Y)-oy,
				float32(p[1].X)-ox, float32(p[1].Y)-oy,
			)
		case outline.OpCubicTo:
			c.z.CubeTo(
				float32(p[0].X)-ox, float32(p[0].Y)-oy,
				float32(p[1].X)-ox, float32(p[1].Y)-oy,
				float32(p[2].X)-ox, float32(p[2].Y)-oy,
			)
		case outline.OpClose:
			if open {
				c.z.ClosePath()
				open = false
			}
		}
	}
	if open {
		c.z.ClosePath()
	}

	c.prepare()
	c.z.Draw(&c.alpha, c.alpha.Rect, image.Opaque, image.Point{})

	c.cov.Stride = c.alpha.Stride
	c.cov.Pix = c.alpha.Pix
	return &c.cov, nil
}

// prepare sizes the reusable alpha mask to the current coverage rectangle.
func (c *Converter) prepare() {
	n := c.cov.W * c.cov.H
	if cap(c.alpha.Pix) < n {
		c.alpha.Pix = make([]uint8, n)
	}
	c.alpha.Pix = c.alpha.Pix[:n]
	c.alpha.Stride = c.cov.W
	c.alpha.Rect = image.Rect(0, 0, c.cov.W, c.cov.H)
}
