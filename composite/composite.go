// Package composite blends coverage masks into a surface.
//
// A Compositor turns one row of coverage samples into per-pixel channel
// coverage (Spread) and blends a pixel toward the ink color through the gamma
// table (Blend). The grayscale and LCD paths differ only in those two steps,
// so the caller selects an implementation once per frame and the glyph draw
// code is shared.
package composite

import (
	"github.com/gogpu/lcdtext/gamma"
	"github.com/gogpu/lcdtext/lcd"
	"github.com/gogpu/lcdtext/surface"
)

// Compositor converts coverage into blended pixels.
type Compositor interface {
	// Subpixels returns the horizontal oversampling factor expected from
	// the scan converter.
	Subpixels() int

	// Spread converts len(dst)*Subpixels() samples into one coverage
	// triple per pixel.
	Spread(samples []uint8, dst [][3]uint8)

	// Blend maps cov through the gamma table and blends the three bytes of
	// px toward ink.
	Blend(px []byte, cov [3]uint8, ink surface.RGB)
}

// blend performs the per-channel gamma mapping and linear interpolation
// shared by both compositors.
func blend(g *gamma.Table, px []byte, cov [3]uint8, ink surface.RGB) {
	inkc := ink.Channels()
	for c := 0; c < 3; c++ {
		a := uint32(g.Dir(cov[c]))
		if a == 0 {
			continue
		}
		px[c] = uint8((uint32(px[c])*(255-a) + uint32(inkc[c])*a + 127) / 255)
	}
}

// Grayscale composites a single coverage value per pixel, applied equally
// to all channels.
type Grayscale struct {
	gamma *gamma.Table
}

// NewGrayscale creates a grayscale compositor using table g.
func NewGrayscale(g *gamma.Table) *Grayscale {
	return &Grayscale{gamma: g}
}

// Subpixels returns 1.
func (*Grayscale) Subpixels() int { return 1 }

// Spread replicates each sample into three channels.
func (*Grayscale) Spread(samples []uint8, dst [][3]uint8) {
	for i := range dst {
		var v uint8
		if i < len(samples) {
			v = samples[i]
		}
		dst[i] = [3]uint8{v, v, v}
	}
}

// Blend implements Compositor.
func (c *Grayscale) Blend(px []byte, cov [3]uint8, ink surface.RGB) {
	blend(c.gamma, px, cov, ink)
}

// LCD composites three-times oversampled coverage through the LCD
// distribution filter.
type LCD struct {
	gamma  *gamma.Table
	filter *lcd.Filter
}

// NewLCD creates an LCD compositor using table g and filter f.
func NewLCD(g *gamma.Table, f *lcd.Filter) *LCD {
	return &LCD{gamma: g, filter: f}
}

// Subpixels returns lcd.Subpixels.
func (*LCD) Subpixels() int { return lcd.Subpixels }

// Spread runs the distribution filter.
func (c *LCD) Spread(samples []uint8, dst [][3]uint8) {
	c.filter.Distribute(samples, dst)
}

// Blend implements Compositor.
func (c *LCD) Blend(px []byte, cov [3]uint8, ink surface.RGB) {
	blend(c.gamma, px, cov, ink)
}

// Filter returns the distribution filter.
func (c *LCD) Filter() *lcd.Filter { return c.filter }

// Compile-time interface checks.
var (
	_ Compositor = (*Grayscale)(nil)
	_ Compositor = (*LCD)(nil)
)
