package lcdtext

import (
	"log/slog"

	"github.com/gogpu/lcdtext/fontpath"
	"github.com/gogpu/lcdtext/lcd"
	"github.com/gogpu/lcdtext/text"
)

// DefaultPanelHeight is the height of the control panel band RenderFrame
// excludes from the text area, in pixels.
const DefaultPanelHeight = 120

// Option configures a Renderer during creation.
//
// Example:
//
//	r := lcdtext.NewRenderer(
//	    lcdtext.WithFontPaths(fontpath.Initialize("/opt/fonts")),
//	    lcdtext.WithChannelOrder(lcd.BGR),
//	)
type Option func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	logger      *slog.Logger
	provider    text.Provider
	fonts       *fontpath.Table
	panelHeight int
	cacheFonts  int
	order       lcd.ChannelOrder
	normalize   bool
}

// defaultOptions returns the default renderer options.
func defaultOptions() rendererOptions {
	return rendererOptions{
		panelHeight: DefaultPanelHeight,
		cacheFonts:  text.DefaultGlyphCacheConfig().MaxFonts,
		order:       lcd.RGB,
	}
}

// WithLogger sets the logger of the renderer. Without it the renderer uses
// the package logger (see SetLogger).
func WithLogger(l *slog.Logger) Option {
	return func(o *rendererOptions) {
		o.logger = l
	}
}

// WithProvider sets the font engine. The default is a text.SFNTProvider.
func WithProvider(p text.Provider) Option {
	return func(o *rendererOptions) {
		o.provider = p
	}
}

// WithFontPaths sets the typeface table used by RenderFrame. The default is
// fontpath.Initialize("").
func WithFontPaths(t *fontpath.Table) Option {
	return func(o *rendererOptions) {
		o.fonts = t
	}
}

// WithPanelHeight sets the height of the band RenderFrame leaves out of the
// text area. DrawText after a plain BeginFrame is never clipped by it.
// Negative values are treated as zero.
func WithPanelHeight(h int) Option {
	return func(o *rendererOptions) {
		o.panelHeight = max(h, 0)
	}
}

// WithCacheFonts sets how many font signatures the glyph cache keeps.
func WithCacheFonts(n int) Option {
	return func(o *rendererOptions) {
		o.cacheFonts = n
	}
}

// WithChannelOrder sets the subpixel layout of the target panel.
func WithChannelOrder(order lcd.ChannelOrder) Option {
	return func(o *rendererOptions) {
		o.order = order
	}
}

// WithKernelNormalization rescales filter kernels that do not sum to one
// before use. The kernel error is still reported by Frame.KernelErr.
func WithKernelNormalization(on bool) Option {
	return func(o *rendererOptions) {
		o.normalize = on
	}
}
