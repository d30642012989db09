package lcdtext

import (
	"image"

	"github.com/gogpu/lcdtext/composite"
	"github.com/gogpu/lcdtext/gamma"
	"github.com/gogpu/lcdtext/lcd"
	"github.com/gogpu/lcdtext/surface"
)

// Frame is the per-frame render state built by Renderer.BeginFrame. It is
// read-only while text is drawn.
type Frame struct {
	// Controls are the clamped controls of the frame.
	Controls Controls

	// Gamma is the gamma table applied to coverage.
	Gamma *gamma.Table

	// Kernel is the LCD filter kernel in use. It may differ from the
	// kernel built from Controls.PrimaryWeight when normalization is on.
	Kernel lcd.Kernel

	// Compositor is the grayscale or LCD compositor.
	Compositor composite.Compositor

	// Scheme is the color scheme selected by Controls.ColorScheme.
	Scheme ColorScheme

	// Invert draws text in the background color over a foreground fill.
	Invert bool

	// Clip is the drawable area in surface coordinates. RenderFrame
	// narrows it to the text area.
	Clip image.Rectangle

	// Subpixels is the horizontal oversampling, 1 or 3.
	Subpixels int

	kernelErr error
}

// NewFrame builds frame state for controls on a width by height surface.
// The clip covers the whole surface.
func NewFrame(c Controls, width, height int, g *gamma.Table, order lcd.ChannelOrder, normalize bool) *Frame {
	c = c.Clamp()
	if g == nil {
		g = gamma.New(c.Gamma)
	} else {
		g.SetGamma(c.Gamma)
	}
	f := &Frame{
		Controls:  c,
		Gamma:     g,
		Scheme:    Scheme(c.ColorScheme),
		Invert:    c.Invert,
		Clip:      image.Rect(0, 0, width, height),
		Subpixels: c.Subpixels(),
	}

	k, err := lcd.FromPrimary(c.PrimaryWeight)
	f.kernelErr = err
	if err != nil && normalize {
		k = k.Normalized()
	}
	f.Kernel = k

	if c.Grayscale {
		f.Compositor = composite.NewGrayscale(g)
	} else {
		f.Compositor = composite.NewLCD(g, lcd.NewFilter(k, order))
	}
	return f
}

// KernelErr returns the kernel validation error, or nil if the kernel built
// from the primary weight conserves energy.
func (f *Frame) KernelErr() error {
	return f.kernelErr
}

// Ink returns the glyph color for scheme in this frame.
func (f *Frame) Ink(scheme ColorScheme) surface.RGB {
	return scheme.Ink(f.Invert)
}

// textArea returns the surface without the control panel band: panel rows
// at the bottom of a y-up surface or the top of a y-down one, the image
// rows nearest the original's controls.
func textArea(width, height, panel int, flipY bool) image.Rectangle {
	panel = min(panel, height)
	if flipY {
		return image.Rect(0, panel, width, height)
	}
	return image.Rect(0, 0, width, height-panel)
}
