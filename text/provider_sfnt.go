package text

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/lcdtext/outline"
)

// ProviderOption configures an SFNTProvider.
type ProviderOption func(*providerConfig)

type providerConfig struct {
	data         map[string][]byte
	gposFallback bool
}

func defaultProviderConfig() providerConfig {
	return providerConfig{
		data:         make(map[string][]byte),
		gposFallback: true,
	}
}

// WithFontData registers in-memory font data under path. OpenFont(path, ...)
// then uses data instead of reading the file system.
func WithFontData(path string, data []byte) ProviderOption {
	return func(c *providerConfig) {
		c.data[path] = data
	}
}

// WithGPOSKerning toggles the GPOS pair kerning fallback used when the
// legacy kern table has no entry for a pair. Enabled by default.
func WithGPOSKerning(on bool) ProviderOption {
	return func(c *providerConfig) {
		c.gposFallback = on
	}
}

// sfntFace is one parsed face of a font file.
type sfntFace struct {
	path   string
	index  int
	data   []byte
	font   *sfnt.Font
	orient outline.Orientation
	gpos   *gposKerner
}

// SFNTProvider is a Provider for TrueType, OpenType and collection files.
//
// Parsed faces are kept for the lifetime of the provider keyed by path and
// face index, so switching between a small set of fonts does not reparse
// them. SFNTProvider is not safe for concurrent use.
type SFNTProvider struct {
	config providerConfig
	faces  map[faceKey]*sfntFace

	cur     *sfntFace
	mode    RenderMode
	size    float64
	hinting bool
	sig     string

	buf  sfnt.Buffer
	kern map[[2]rune]float64
}

type faceKey struct {
	path  string
	index int
}

// NewSFNTProvider creates a provider with a default size of 12 pixels.
func NewSFNTProvider(opts ...ProviderOption) *SFNTProvider {
	cfg := defaultProviderConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &SFNTProvider{
		config: cfg,
		faces:  make(map[faceKey]*sfntFace),
		size:   12,
		kern:   make(map[[2]rune]float64),
	}
}

// OpenFont implements Provider. On failure the previous face stays current.
func (p *SFNTProvider) OpenFont(path string, faceIndex int, mode RenderMode) error {
	if mode != RenderOutline {
		return &FontError{Path: path, Err: fmt.Errorf("%w: %v", ErrUnsupportedMode, mode)}
	}
	key := faceKey{path: path, index: faceIndex}
	f, ok := p.faces[key]
	if !ok {
		var err error
		f, err = p.load(path, faceIndex)
		if err != nil {
			return &FontError{Path: path, Err: err}
		}
		p.faces[key] = f
	}
	if f != p.cur || mode != p.mode {
		p.cur = f
		p.mode = mode
		p.changed()
	}
	return nil
}

func (p *SFNTProvider) load(path string, index int) (*sfntFace, error) {
	data, ok := p.config.data[path]
	if !ok {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	var f *sfnt.Font
	if isCollection(data) {
		c, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, fmt.Errorf("text: failed to parse font collection: %w", err)
		}
		if index < 0 || index >= c.NumFonts() {
			return nil, ErrFaceIndex
		}
		f, err = c.Font(index)
		if err != nil {
			return nil, fmt.Errorf("text: failed to parse font: %w", err)
		}
	} else {
		if index != 0 {
			return nil, ErrFaceIndex
		}
		var err error
		f, err = opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("text: failed to parse font: %w", err)
		}
	}

	return &sfntFace{
		path:   path,
		index:  index,
		data:   data,
		font:   f,
		orient: outlineOrientation(data, index),
	}, nil
}

// SetSize implements Provider.
func (p *SFNTProvider) SetSize(height float64) {
	if height == p.size {
		return
	}
	p.size = height
	p.changed()
}

// SetHinting implements Provider.
func (p *SFNTProvider) SetHinting(on bool) {
	if on == p.hinting {
		return
	}
	p.hinting = on
	p.changed()
}

// Signature implements Provider. It is empty until a font is open.
func (p *SFNTProvider) Signature() string {
	return p.sig
}

func (p *SFNTProvider) changed() {
	clear(p.kern)
	if p.cur == nil {
		p.sig = ""
		return
	}
	p.sig = fmt.Sprintf("%s#%d,%s,%g,%t", p.cur.path, p.cur.index, p.mode, p.size, p.hinting)
}

func (p *SFNTProvider) ppem() fixed.Int26_6 {
	return fixed.Int26_6(math.Round(p.size * 64))
}

func (p *SFNTProvider) fontHinting() font.Hinting {
	if p.hinting {
		return font.HintingFull
	}
	return font.HintingNone
}

// Glyph implements Provider.
func (p *SFNTProvider) Glyph(r rune) (Glyph, bool) {
	if p.cur == nil {
		return Glyph{}, false
	}
	f := p.cur.font
	idx, err := f.GlyphIndex(&p.buf, r)
	if err != nil || idx == 0 {
		return Glyph{}, false
	}

	ppem := p.ppem()
	adv, err := f.GlyphAdvance(&p.buf, idx, ppem, p.fontHinting())
	if err != nil {
		return Glyph{}, false
	}
	g := Glyph{
		AdvanceX:    fixedToFloat(adv),
		Index:       uint16(idx),
		Orientation: p.cur.orient,
	}

	segs, err := f.LoadGlyph(&p.buf, idx, ppem, nil)
	switch {
	case errors.Is(err, sfnt.ErrColoredGlyph):
		g.Kind = KindBitmap
		return g, true
	case err != nil:
		return Glyph{}, false
	}

	g.Kind = KindOutline
	g.Outline = convertSegments(segs)
	return g, true
}

// convertSegments copies sfnt segments (y down, implicit contour closing)
// into an outline (y up, explicit Close).
func convertSegments(segs sfnt.Segments) *outline.Outline {
	o := &outline.Outline{Segments: make([]outline.Segment, 0, len(segs)+4)}
	open := false
	for _, seg := range segs {
		a := seg.Args
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				o.Close()
			}
			o.MoveTo(fixedToFloat(a[0].X), -fixedToFloat(a[0].Y))
			open = true
		case sfnt.SegmentOpLineTo:
			o.LineTo(fixedToFloat(a[0].X), -fixedToFloat(a[0].Y))
		case sfnt.SegmentOpQuadTo:
			o.QuadTo(
				fixedToFloat(a[0].X), -fixedToFloat(a[0].Y),
				fixedToFloat(a[1].X), -fixedToFloat(a[1].Y),
			)
		case sfnt.SegmentOpCubeTo:
			o.CubicTo(
				fixedToFloat(a[0].X), -fixedToFloat(a[0].Y),
				fixedToFloat(a[1].X), -fixedToFloat(a[1].Y),
				fixedToFloat(a[2].X), -fixedToFloat(a[2].Y),
			)
		}
	}
	if open {
		o.Close()
	}
	return o
}

// Kerning implements Provider. The kern table is consulted first; pairs it
// does not cover fall back to GPOS pair adjustment when enabled.
func (p *SFNTProvider) Kerning(prev, cur rune) (dx, dy float64) {
	if p.cur == nil {
		return 0, 0
	}
	key := [2]rune{prev, cur}
	if v, ok := p.kern[key]; ok {
		return v, 0
	}

	dx = p.legacyKerning(prev, cur)
	if dx == 0 && p.config.gposFallback {
		if p.cur.gpos == nil {
			p.cur.gpos = newGPOSKerner(p.cur.data, p.cur.index)
		}
		dx = p.cur.gpos.Kerning(prev, cur, p.size)
		if p.hinting {
			dx = math.Round(dx)
		}
	}
	p.kern[key] = dx
	return dx, 0
}

func (p *SFNTProvider) legacyKerning(prev, cur rune) float64 {
	f := p.cur.font
	i0, err := f.GlyphIndex(&p.buf, prev)
	if err != nil || i0 == 0 {
		return 0
	}
	i1, err := f.GlyphIndex(&p.buf, cur)
	if err != nil || i1 == 0 {
		return 0
	}
	k, err := f.Kern(&p.buf, i0, i1, p.ppem(), p.fontHinting())
	if err != nil {
		return 0
	}
	return fixedToFloat(k)
}

// Name returns the family name of the current face. It returns
// ErrFontNotLoaded before a font was opened.
func (p *SFNTProvider) Name() (string, error) {
	if p.cur == nil {
		return "", ErrFontNotLoaded
	}
	name, err := p.cur.font.Name(&p.buf, sfnt.NameIDFamily)
	if err != nil {
		return "", fmt.Errorf("text: family name of %s: %w", p.cur.path, err)
	}
	return name, nil
}

// isCollection reports whether data starts with a TrueType collection
// header.
func isCollection(data []byte) bool {
	return len(data) >= 4 && string(data[:4]) == "ttcf"
}

// outlineOrientation reads the sfnt version tag of face index. CFF based
// faces ("OTTO") wind outer contours counter-clockwise, glyf based faces
// clockwise.
func outlineOrientation(data []byte, index int) outline.Orientation {
	off := 0
	if isCollection(data) {
		pos := 12 + 4*index
		if pos+4 > len(data) {
			return outline.Clockwise
		}
		off = int(binary.BigEndian.Uint32(data[pos:]))
	}
	if off+4 > len(data) {
		return outline.Clockwise
	}
	if string(data[off:off+4]) == "OTTO" {
		return outline.CounterClockwise
	}
	return outline.Clockwise
}

// fixedToFloat converts fixed.Int26_6 to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

// Compile-time interface check.
var _ Provider = (*SFNTProvider)(nil)
