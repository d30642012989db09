package lcdtext

import (
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/lcdtext/composite"
	"github.com/gogpu/lcdtext/fontpath"
	"github.com/gogpu/lcdtext/gamma"
	"github.com/gogpu/lcdtext/internal/contour"
	"github.com/gogpu/lcdtext/internal/scan"
	"github.com/gogpu/lcdtext/outline"
	"github.com/gogpu/lcdtext/surface"
	"github.com/gogpu/lcdtext/text"
)

// Pipeline stage names.
const (
	StageWidthScale = "width-scale"
	StageSkew       = "skew"
	StageTranslate  = "translate"
	StageFauxWeight = contour.StageName
)

// paragraph layout of RenderFrame, in pixels.
const (
	frameMarginX   = 10
	frameMarginTop = 20
	paragraphGap   = 7
)

// Placement is the position of one glyph produced by Layout.
type Placement struct {
	// Rune is the character the glyph was looked up for.
	Rune rune
	// Glyph is the provider's glyph.
	Glyph text.Glyph
	// X and Y are the pen position in pixels, after kerning and, for Y,
	// hinting.
	X, Y float64
}

// Drawn reports whether the glyph has an outline that is rasterized.
func (p Placement) Drawn() bool {
	return p.Glyph.Kind == text.KindOutline && !p.Glyph.Outline.IsEmpty()
}

// Renderer draws text into surfaces. It owns the font provider, the glyph
// cache and the reusable rasterization buffers.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	opts     rendererOptions
	provider text.Provider
	fonts    *fontpath.Table
	cache    *text.GlyphCache
	gamma    *gamma.Table

	pipe      *outline.Pipeline
	width     *outline.AffineStage
	skew      *outline.AffineStage
	translate *outline.AffineStage
	weight    *contour.WeightStage
	conv      *scan.Converter
	blit      *composite.Blitter

	surface surface.Surface
	frame   *Frame
	lastErr error
}

// NewRenderer creates a renderer.
//
// Example:
//
//	r := lcdtext.NewRenderer(lcdtext.WithLogger(logger))
//	err := r.RenderFrame(s, lcdtext.DefaultControls())
func NewRenderer(opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	r := &Renderer{
		opts:      o,
		provider:  o.provider,
		fonts:     o.fonts,
		cache:     text.NewGlyphCacheWithConfig(text.GlyphCacheConfig{MaxFonts: o.cacheFonts}),
		width:     outline.NewAffineStage(StageWidthScale, outline.Identity()),
		skew:      outline.NewAffineStage(StageSkew, outline.Identity()),
		translate: outline.NewAffineStage(StageTranslate, outline.Identity()),
		weight:    contour.NewWeightStage(0, outline.Clockwise),
		conv:      scan.NewConverter(),
	}
	if r.provider == nil {
		r.provider = text.NewSFNTProvider()
	}
	if r.fonts == nil {
		r.fonts = fontpath.Initialize("")
	}
	r.pipe = outline.NewPipeline(r.width, r.skew, r.translate, r.weight)
	r.pipe.SetEnabled(StageFauxWeight, false)
	return r
}

// Provider returns the font engine.
func (r *Renderer) Provider() text.Provider { return r.provider }

// Fonts returns the typeface table used by RenderFrame.
func (r *Renderer) Fonts() *fontpath.Table { return r.fonts }

// Cache returns the glyph cache.
func (r *Renderer) Cache() *text.GlyphCache { return r.cache }

// Frame returns the frame in progress, or nil before BeginFrame.
func (r *Renderer) Frame() *Frame { return r.frame }

// LastError returns the error of the most recent BeginFrame or DrawText
// call, or nil. Draw calls never fail; a font that cannot be opened turns
// the call into a no-op and is reported here.
func (r *Renderer) LastError() error { return r.lastErr }

func (r *Renderer) logger() *slog.Logger {
	if r.opts.logger != nil {
		return r.opts.logger
	}
	return Logger()
}

// BeginFrame makes s the target of subsequent DrawText calls and builds the
// frame state for controls. It does not touch the surface pixels.
// A kernel that does not conserve energy is kept, reported through
// Frame.KernelErr and logged at warn level.
func (r *Renderer) BeginFrame(s surface.Surface, c Controls) *Frame {
	if err := checkSurface(s); err != nil {
		r.lastErr = err
		r.surface, r.frame = nil, nil
		return nil
	}
	r.lastErr = nil
	if r.gamma == nil {
		r.gamma = gamma.New(c.Gamma)
	}
	f := NewFrame(c, s.Width(), s.Height(), r.gamma, r.opts.order, r.opts.normalize)
	if err := f.KernelErr(); err != nil {
		r.logger().Warn("lcdtext: filter kernel not normalized",
			"primary", f.Controls.PrimaryWeight, "error", err)
	}
	if r.blit == nil {
		r.blit = composite.NewBlitter(f.Compositor)
	} else {
		r.blit.SetCompositor(f.Compositor)
	}
	r.surface, r.frame = s, f
	return f
}

// RenderFrame draws the sample paragraphs for controls into s: it clears the
// surface to the scheme background, fills the text area with the foreground
// when inverted and draws the four paragraphs alternating the regular and
// italic faces of the selected typeface. Text is clipped to the surface
// minus the control panel band (see WithPanelHeight).
//
// Only a nil or empty surface is an error. Fonts that cannot be opened and
// missing glyphs are skipped.
func (r *Renderer) RenderFrame(s surface.Surface, c Controls) error {
	f := r.BeginFrame(s, c)
	if f == nil {
		return r.lastErr
	}
	f.Clip = textArea(s.Width(), s.Height(), r.opts.panelHeight, s.FlipY())
	s.Clear(f.Scheme.Background)
	if f.Invert {
		s.CopyRect(f.Clip, f.Scheme.Foreground)
	}

	style := f.Controls.Style(f.Subpixels)
	h := float64(s.Height())
	y := h - frameMarginTop
	for i, p := range Paragraphs {
		path, err := r.fonts.Path(f.Controls.FontFace%max(r.fonts.Len(), 1), i%2 == 1)
		if err != nil {
			r.logger().Debug("lcdtext: no typeface", "index", f.Controls.FontFace, "error", err)
		}
		if s.FlipY() {
			y = r.DrawText(path, p, frameMarginX, y, style, f.Scheme)
		} else {
			y = h - r.DrawText(path, p, frameMarginX, h-y, style, f.Scheme)
		}
		y -= paragraphGap + style.PointSize
	}
	return nil
}

// DrawText draws s with the font at fontPath, starting at pixel (x, y) on
// the baseline, and returns the final pen y. BeginFrame must have been
// called. If the font cannot be opened nothing is drawn, y is returned and
// LastError reports ErrFontUnavailable.
func (r *Renderer) DrawText(fontPath, s string, x, y float64, style StyleParameters, scheme ColorScheme) float64 {
	r.lastErr = nil
	if r.frame == nil {
		r.lastErr = ErrNoFrame
		return y
	}
	if style.SubpixelFactor != r.frame.Compositor.Subpixels() {
		r.logger().Debug("lcdtext: subpixel factor differs from compositor",
			"style", style.SubpixelFactor, "compositor", r.frame.Compositor.Subpixels())
		style.SubpixelFactor = r.frame.Compositor.Subpixels()
	}
	if !r.open(fontPath, style) {
		return y
	}

	ink := r.frame.Ink(scheme)
	ydir := r.ydir()
	sub := float64(style.SubpixelFactor)
	r.width.Matrix = outline.Scale(style.WidthScale*sub, ydir)
	r.skew.Matrix = outline.Skew(style.Skew*sub/3*ydir, 0)
	w := contour.WidthFor(style.FauxWeight, style.PointSize, style.SubpixelFactor)
	r.weight.Width = w
	r.pipe.SetEnabled(StageFauxWeight, w != 0)

	return r.walk(s, x, y, style, func(ch rune, g text.Glyph, penX, penY float64) {
		if g.Kind != text.KindOutline || g.Outline.IsEmpty() {
			return
		}
		r.translate.Matrix = outline.Translate(penX, penY)
		r.weight.Orientation = g.Orientation
		if ydir < 0 {
			r.weight.Orientation = reverse(g.Orientation)
		}
		cov, err := r.conv.Convert(r.pipe.Run(g.Outline), style.SubpixelFactor)
		if err != nil {
			r.logger().Debug("lcdtext: glyph not rasterized", "rune", string(ch), "error", err)
			return
		}
		r.blit.Blit(r.surface, cov, ink, r.frame.Clip)
	})
}

// Layout positions s like DrawText without drawing and returns the
// placements and the final pen y. The y direction follows the surface of
// the frame in progress, y-up without one.
func (r *Renderer) Layout(fontPath, s string, x, y float64, style StyleParameters) ([]Placement, float64, error) {
	if style.SubpixelFactor < 1 {
		style.SubpixelFactor = 1
	}
	if err := r.provider.OpenFont(fontPath, 0, text.RenderOutline); err != nil {
		return nil, y, fmt.Errorf("%w: %w", ErrFontUnavailable, err)
	}
	r.provider.SetSize(style.PointSize)
	r.provider.SetHinting(style.Hinting)

	var out []Placement
	sub := float64(style.SubpixelFactor)
	y = r.walk(s, x, y, style, func(ch rune, g text.Glyph, penX, penY float64) {
		out = append(out, Placement{Rune: ch, Glyph: g, X: penX / sub, Y: penY})
	})
	return out, y, nil
}

// open makes fontPath current in the provider at the style's size.
func (r *Renderer) open(fontPath string, style StyleParameters) bool {
	if err := r.provider.OpenFont(fontPath, 0, text.RenderOutline); err != nil {
		r.lastErr = fmt.Errorf("%w: %w", ErrFontUnavailable, err)
		r.logger().Debug("lcdtext: font unavailable", "path", fontPath, "error", err)
		return false
	}
	r.provider.SetSize(style.PointSize)
	r.provider.SetHinting(style.Hinting)
	return true
}

// walk runs the pen over s and calls place for every glyph found. Pen x is
// tracked in subpixels; penY is snapped when hinting.
func (r *Renderer) walk(s string, x, y float64, style StyleParameters, place func(ch rune, g text.Glyph, penX, penY float64)) float64 {
	ydir := r.ydir()
	sub := float64(style.SubpixelFactor)
	x *= sub
	startX := x

	var prev rune
	hasPrev := false
	for _, ch := range norm.NFC.String(s) {
		if ch == '\n' {
			x = startX
			y -= ydir * style.LineHeight()
			hasPrev = false
			continue
		}
		g, ok := r.cache.Glyph(r.provider, ch)
		if !ok {
			r.logger().Debug("lcdtext: missing glyph", "rune", string(ch))
			continue
		}
		if style.Kerning && hasPrev {
			dx, dy := r.provider.Kerning(prev, ch)
			x += dx * sub
			y += dy * ydir
		}
		ty := y
		if style.Hinting {
			ty = math.Floor(y + 0.5)
		}
		place(ch, g, x, ty)

		x += (g.AdvanceX + style.LetterSpacing) * sub
		y += g.AdvanceY * ydir
		prev, hasPrev = ch, true
	}
	return y
}

// ydir is +1 when surface y grows upward like outline y, -1 otherwise.
func (r *Renderer) ydir() float64 {
	if r.surface != nil && !r.surface.FlipY() {
		return -1
	}
	return 1
}

func reverse(o outline.Orientation) outline.Orientation {
	if o == outline.Clockwise {
		return outline.CounterClockwise
	}
	return outline.Clockwise
}

func checkSurface(s surface.Surface) error {
	if s == nil {
		return ErrNilSurface
	}
	if s.Width() <= 0 || s.Height() <= 0 || len(s.Pix()) == 0 {
		return ErrEmptySurface
	}
	return nil
}
