package composite

import (
	"image"

	"github.com/gogpu/lcdtext/internal/scan"
	"github.com/gogpu/lcdtext/surface"
)

// Blitter composites coverage masks into a surface. Its channel buffer is
// reused between calls, so a Blitter is not safe for concurrent use.
type Blitter struct {
	comp    Compositor
	scratch [][3]uint8
}

// NewBlitter creates a blitter for the compositor c.
func NewBlitter(c Compositor) *Blitter {
	return &Blitter{comp: c}
}

// Compositor returns the compositor in use.
func (b *Blitter) Compositor() Compositor { return b.comp }

// SetCompositor replaces the compositor, keeping the scratch buffer.
func (b *Blitter) SetCompositor(c Compositor) { b.comp = c }

// Blit composites cov into s with color ink. Pixels outside clip, or outside
// the surface, are left untouched. cov.X0 must be a multiple of the
// compositor's subpixel factor.
func (b *Blitter) Blit(s surface.Surface, cov *scan.Coverage, ink surface.RGB, clip image.Rectangle) {
	if cov.Empty() {
		return
	}
	clip = clip.Intersect(surface.Bounds(s))
	if clip.Empty() {
		return
	}

	sub := b.comp.Subpixels()
	px0 := floorDiv(cov.X0, sub)
	npx := (cov.W + sub - 1) / sub
	if cap(b.scratch) < npx {
		b.scratch = make([][3]uint8, npx)
	}
	row := b.scratch[:npx]
	pix := s.Pix()

	for r := 0; r < cov.H; r++ {
		y := cov.Y0 + r
		if y < clip.Min.Y || y >= clip.Max.Y {
			continue
		}
		b.comp.Spread(cov.Row(r), row)
		for i, c := range row {
			if c == ([3]uint8{}) {
				continue
			}
			x := px0 + i
			if x < clip.Min.X || x >= clip.Max.X {
				continue
			}
			off := s.PixOffset(x, y)
			b.comp.Blend(pix[off:off+surface.BytesPerPixel], c, ink)
		}
	}
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
