package lcdtext

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/lcdtext/fontpath"
	"github.com/gogpu/lcdtext/lcd"
	"github.com/gogpu/lcdtext/outline"
	"github.com/gogpu/lcdtext/surface"
	"github.com/gogpu/lcdtext/text"
)

// squareProvider answers every rune except '?' with an 8x10 box (at size
// 12) advancing 10 pixels. Space has no outline.
type squareProvider struct {
	fail    bool
	path    string
	size    float64
	hinting bool
	kern    map[[2]rune]float64
	opened  int
}

func (p *squareProvider) OpenFont(path string, _ int, _ text.RenderMode) error {
	if p.fail {
		return fmt.Errorf("open %s: no such file", path)
	}
	p.path = path
	p.opened++
	return nil
}

func (p *squareProvider) SetSize(h float64)  { p.size = h }
func (p *squareProvider) SetHinting(on bool) { p.hinting = on }

func (p *squareProvider) Signature() string {
	return fmt.Sprintf("%s,%g,%t", p.path, p.size, p.hinting)
}

func (p *squareProvider) Kerning(prev, cur rune) (float64, float64) {
	return p.kern[[2]rune{prev, cur}], 0
}

func (p *squareProvider) Glyph(r rune) (text.Glyph, bool) {
	k := p.size / 12
	switch r {
	case '?':
		return text.Glyph{}, false
	case ' ':
		return text.Glyph{AdvanceX: 4 * k, Kind: text.KindOutline}, true
	}
	o := &outline.Outline{}
	o.MoveTo(0, 0)
	o.LineTo(0, 10*k)
	o.LineTo(8*k, 10*k)
	o.LineTo(8*k, 0)
	o.Close()
	return text.Glyph{Outline: o, AdvanceX: 10 * k, Kind: text.KindOutline, Orientation: outline.Clockwise}, true
}

var (
	blackOnWhite = ColorScheme{Foreground: surface.Hex(0x000000), Background: surface.Hex(0xffffff)}
	white        = surface.Hex(0xffffff)
	black        = surface.Hex(0x000000)
)

func grayscaleControls() Controls {
	c := DefaultControls()
	c.Grayscale = true
	c.ColorScheme = 0
	return c
}

func TestLayoutNewline(t *testing.T) {
	r := NewRenderer(WithProvider(&squareProvider{}))
	style := grayscaleControls().Style(1)

	pl, y, err := r.Layout("square", "A\nB", 10, 100, style)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if want := 100 - style.LineHeight(); y != want {
		t.Errorf("final y = %v, want %v", y, want)
	}
	if len(pl) != 2 {
		t.Fatalf("got %d placements, want 2", len(pl))
	}
	if pl[1].Rune != 'B' || pl[1].X != 10 || pl[1].Y != 85 {
		t.Errorf("B placed at (%v, %v), want (10, 85)", pl[1].X, pl[1].Y)
	}
}

func TestLayoutKerning(t *testing.T) {
	p := &squareProvider{kern: map[[2]rune]float64{{'A', 'V'}: -2}}
	r := NewRenderer(WithProvider(p))

	tests := []struct {
		name    string
		kerning bool
		wantX   float64
	}{
		{"off", false, 20},
		{"on", true, 18},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := grayscaleControls().Style(1)
			style.Kerning = tt.kerning
			pl, _, err := r.Layout("square", "AV", 10, 50, style)
			if err != nil {
				t.Fatal(err)
			}
			if pl[1].X != tt.wantX {
				t.Errorf("V at x = %v, want %v", pl[1].X, tt.wantX)
			}
			if tt.kerning && pl[1].X >= 20 {
				t.Error("negative kerning pair did not move the glyph left")
			}
		})
	}
}

func TestLayoutMissingGlyph(t *testing.T) {
	p := &squareProvider{kern: map[[2]rune]float64{{'A', 'B'}: -1}}
	r := NewRenderer(WithProvider(p))

	pl, _, err := r.Layout("square", "A?B", 10, 50, grayscaleControls().Style(1))
	if err != nil {
		t.Fatal(err)
	}
	if len(pl) != 2 {
		t.Fatalf("got %d placements, want 2", len(pl))
	}
	// no advance for '?', and A stays the previous glyph for kerning
	if pl[1].X != 19 {
		t.Errorf("B at x = %v, want 19", pl[1].X)
	}
}

func TestLayoutLetterSpacingSubpixel(t *testing.T) {
	r := NewRenderer(WithProvider(&squareProvider{}))
	c := DefaultControls()
	c.LetterSpacing = 0.2
	pl, _, err := r.Layout("square", "AB", 10, 50, c.Style(3))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(pl[1].X-20.2) > 1e-9 {
		t.Errorf("B at x = %v, want 20.2", pl[1].X)
	}
}

func TestLayoutHinting(t *testing.T) {
	r := NewRenderer(WithProvider(&squareProvider{}))
	tests := []struct {
		hinting bool
		want    float64
	}{
		{true, 50},
		{false, 49.6},
	}
	for _, tt := range tests {
		style := grayscaleControls().Style(1)
		style.Hinting = tt.hinting
		pl, _, err := r.Layout("square", "A", 10, 49.6, style)
		if err != nil {
			t.Fatal(err)
		}
		if pl[0].Y != tt.want {
			t.Errorf("hinting=%t: y = %v, want %v", tt.hinting, pl[0].Y, tt.want)
		}
	}
}

func TestLayoutYDown(t *testing.T) {
	r := NewRenderer(WithProvider(&squareProvider{}))
	s := surface.NewImageSurface(100, 100, false)
	f := r.BeginFrame(s, grayscaleControls())

	_, y, err := r.Layout("square", "A\nB", 10, 20, f.Controls.Style(f.Subpixels))
	if err != nil {
		t.Fatal(err)
	}
	if y != 35 {
		t.Errorf("final y = %v, want 35", y)
	}
}

func TestLayoutFontUnavailable(t *testing.T) {
	r := NewRenderer(WithProvider(&squareProvider{fail: true}))
	_, y, err := r.Layout("missing.ttf", "A", 10, 50, grayscaleControls().Style(1))
	if !errors.Is(err, ErrFontUnavailable) {
		t.Errorf("err = %v, want ErrFontUnavailable", err)
	}
	if y != 50 {
		t.Errorf("y = %v, want 50", y)
	}
}

func TestDrawTextNoFrame(t *testing.T) {
	r := NewRenderer(WithProvider(&squareProvider{}))
	y := r.DrawText("square", "A", 10, 50, grayscaleControls().Style(1), blackOnWhite)
	if y != 50 {
		t.Errorf("y = %v, want 50", y)
	}
	if !errors.Is(r.LastError(), ErrNoFrame) {
		t.Errorf("LastError() = %v, want ErrNoFrame", r.LastError())
	}
}

func TestDrawTextFontUnavailable(t *testing.T) {
	r := NewRenderer(WithProvider(&squareProvider{fail: true}))
	s := surface.NewImageSurface(50, 50, true)
	s.Clear(white)
	f := r.BeginFrame(s, grayscaleControls())
	before := append([]byte(nil), s.Pix()...)

	y := r.DrawText("missing.ttf", "AB", 10, 20, f.Controls.Style(1), blackOnWhite)
	if y != 20 {
		t.Errorf("y = %v, want 20", y)
	}
	if !errors.Is(r.LastError(), ErrFontUnavailable) {
		t.Errorf("LastError() = %v, want ErrFontUnavailable", r.LastError())
	}
	if !bytes.Equal(before, s.Pix()) {
		t.Error("surface modified by a failed draw")
	}
}

func TestDrawTextPureInk(t *testing.T) {
	tests := []struct {
		name      string
		grayscale bool
	}{
		{"grayscale", true},
		{"lcd", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRenderer(WithProvider(&squareProvider{}))
			s := surface.NewImageSurface(100, 100, true)
			s.Clear(white)
			c := grayscaleControls()
			c.Grayscale = tt.grayscale
			f := r.BeginFrame(s, c)
			r.DrawText("square", "A", 10, 50, f.Controls.Style(f.Subpixels), blackOnWhite)

			for x := 11; x < 17; x++ {
				if got := s.RGBAt(x, 55); got != black {
					t.Errorf("interior pixel %d = %v, want black", x, got)
				}
			}
			if got := s.RGBAt(5, 55); got != white {
				t.Errorf("pixel left of the glyph = %v, want white", got)
			}
			if got := s.RGBAt(12, 61); got != white {
				t.Errorf("pixel above the glyph = %v, want white", got)
			}
		})
	}
}

func TestDrawTextLCDFringe(t *testing.T) {
	r := NewRenderer(WithProvider(&squareProvider{}))
	s := surface.NewImageSurface(100, 100, true)
	s.Clear(white)
	c := DefaultControls()
	c.ColorScheme = 0
	f := r.BeginFrame(s, c)
	r.DrawText("square", "A", 10, 50, f.Controls.Style(f.Subpixels), blackOnWhite)

	// The glyph starts on subpixel 30; the filter reaches two samples into
	// pixel 9, darkening blue most and leaving red alone.
	got := s.RGBAt(9, 55)
	if got.R != 255 {
		t.Errorf("fringe red = %d, want 255", got.R)
	}
	if got.B >= got.G || got.B == 255 {
		t.Errorf("fringe = %v, want blue darker than green", got)
	}
}

func TestDrawTextClip(t *testing.T) {
	r := NewRenderer(WithProvider(&squareProvider{}))
	s := surface.NewImageSurface(100, 200, true)
	s.Clear(white)
	f := r.BeginFrame(s, grayscaleControls())
	if f.Clip != image.Rect(0, 0, 100, 200) {
		t.Fatalf("clip = %v, want the whole surface", f.Clip)
	}
	// A glyph crossing the surface edge is cut, not dropped.
	r.DrawText("square", "A\nA", 10, 195, f.Controls.Style(1), blackOnWhite)
	if got := s.RGBAt(12, 199); got != black {
		t.Errorf("pixel at the top edge = %v, want black", got)
	}
	if got := s.RGBAt(12, 181); got != black {
		t.Errorf("second line pixel = %v, want black", got)
	}
}

func TestRenderFramePanelBand(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		flipY bool
		want  image.Rectangle
	}{
		{"default y-up", nil, true, image.Rect(0, DefaultPanelHeight, 200, 300)},
		{"default y-down", nil, false, image.Rect(0, 0, 200, 300-DefaultPanelHeight)},
		{"custom", []Option{WithPanelHeight(40)}, true, image.Rect(0, 40, 200, 300)},
		{"none", []Option{WithPanelHeight(-5)}, true, image.Rect(0, 0, 200, 300)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRenderer(append([]Option{WithProvider(&squareProvider{})}, tt.opts...)...)
			if err := r.RenderFrame(surface.NewImageSurface(200, 300, tt.flipY), DefaultControls()); err != nil {
				t.Fatal(err)
			}
			if got := r.Frame().Clip; got != tt.want {
				t.Errorf("clip = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFauxWeight(t *testing.T) {
	draw := func(fw float64) []byte {
		r := NewRenderer(WithProvider(&squareProvider{}))
		s := surface.NewImageSurface(60, 40, true)
		s.Clear(white)
		c := grayscaleControls()
		c.FauxWeight = fw
		f := r.BeginFrame(s, c)
		r.DrawText("square", "AB", 10, 20, f.Controls.Style(1), blackOnWhite)
		return append([]byte(nil), s.Pix()...)
	}
	inked := func(pix []byte) int {
		n := 0
		for _, v := range pix {
			if v != 255 {
				n++
			}
		}
		return n
	}

	plain := draw(0)
	if !bytes.Equal(plain, draw(0.04)) {
		t.Error("faux weight below threshold changed the pixels")
	}
	if bold := draw(0.5); inked(bold) <= inked(plain) {
		t.Errorf("bold inked %d bytes, plain %d", inked(bold), inked(plain))
	}
	if light := draw(-0.5); inked(light) > inked(plain) {
		t.Errorf("light inked %d bytes, plain %d", inked(light), inked(plain))
	}
}

func TestDrawTextGoRegular(t *testing.T) {
	p := text.NewSFNTProvider(text.WithFontData("goregular.ttf", goregular.TTF))
	r := NewRenderer(WithProvider(p))
	s := surface.NewImageSurface(100, 100, true)
	s.Clear(white)
	f := r.BeginFrame(s, grayscaleControls())

	style := f.Controls.Style(1)
	if style.PointSize != 12 || !style.Hinting {
		t.Fatalf("style = %+v", style)
	}
	r.DrawText("goregular.ttf", "A", 10, 50, style, blackOnWhite)
	if err := r.LastError(); err != nil {
		t.Fatalf("LastError() = %v", err)
	}

	var mid, pure bool
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			c := s.RGBAt(x, y)
			if c == black {
				pure = true
			} else if c != white {
				mid = true
			}
		}
	}
	if !mid {
		t.Error("no pixel strictly between foreground and background")
	}
	if !pure {
		t.Error("no pixel equal to the foreground")
	}
}

func TestBeginFrameKernel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	tests := []struct {
		name      string
		primary   float64
		normalize bool
		wantErr   bool
		wantSum   float64
	}{
		{"default", 0.448, false, false, 1},
		{"adjusted", 0.6, false, true, 1.152},
		{"normalized", 0.6, true, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			r := NewRenderer(WithProvider(&squareProvider{}), WithLogger(logger), WithKernelNormalization(tt.normalize))
			c := DefaultControls()
			c.PrimaryWeight = tt.primary
			f := r.BeginFrame(surface.NewImageSurface(10, 10, true), c)

			err := f.KernelErr()
			if got := err != nil; got != tt.wantErr {
				t.Fatalf("KernelErr() = %v, wantErr %t", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, lcd.ErrKernelNotNormalized) {
					t.Errorf("KernelErr() = %v, want ErrKernelNotNormalized", err)
				}
				if !strings.Contains(buf.String(), "level=WARN") {
					t.Errorf("no warning logged: %q", buf.String())
				}
			}
			if math.Abs(f.Kernel.Sum()-tt.wantSum) > 1e-9 {
				t.Errorf("kernel sum = %v, want %v", f.Kernel.Sum(), tt.wantSum)
			}
		})
	}
}

func TestRenderFrameSurfaceErrors(t *testing.T) {
	r := NewRenderer(WithProvider(&squareProvider{}))
	if err := r.RenderFrame(nil, DefaultControls()); !errors.Is(err, ErrNilSurface) {
		t.Errorf("RenderFrame(nil) = %v, want ErrNilSurface", err)
	}
	if r.Frame() != nil {
		t.Error("frame left in progress after a failed BeginFrame")
	}
}

func TestRenderFrame(t *testing.T) {
	scheme := Schemes[1]
	tests := []struct {
		name   string
		flipY  bool
		invert bool
		// a pixel inside the first glyph
		glyph [2]int
		// a pixel of the text area between the first two lines
		empty [2]int
		// a pixel of the panel band
		panel [2]int
		// ink and text area fill
		ink, fill surface.RGB
	}{
		{"y-up", true, false, [2]int{12, 545}, [2]int{300, 537}, [2]int{635, 60}, scheme.Foreground, scheme.Background},
		{"y-up inverted", true, true, [2]int{12, 545}, [2]int{300, 537}, [2]int{635, 60}, scheme.Background, scheme.Foreground},
		{"y-down", false, false, [2]int{12, 15}, [2]int{300, 22}, [2]int{635, 500}, scheme.Foreground, scheme.Background},
		{"y-down inverted", false, true, [2]int{12, 15}, [2]int{300, 22}, [2]int{635, 500}, scheme.Background, scheme.Foreground},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &squareProvider{}
			r := NewRenderer(WithProvider(p))
			s := surface.NewImageSurface(640, 560, tt.flipY)
			c := DefaultControls()
			c.Invert = tt.invert
			if err := r.RenderFrame(s, c); err != nil {
				t.Fatalf("RenderFrame: %v", err)
			}
			if got := s.RGBAt(tt.glyph[0], tt.glyph[1]); got != tt.ink {
				t.Errorf("glyph pixel = %v, want %v", got, tt.ink)
			}
			if got := s.RGBAt(tt.empty[0], tt.empty[1]); got != tt.fill {
				t.Errorf("text area pixel = %v, want %v", got, tt.fill)
			}
			if got := s.RGBAt(tt.panel[0], tt.panel[1]); got != scheme.Background {
				t.Errorf("panel pixel = %v, want %v", got, scheme.Background)
			}
			if p.opened != len(Paragraphs) {
				t.Errorf("fonts opened %d times, want %d", p.opened, len(Paragraphs))
			}
		})
	}
}

func TestRenderFrameAlternatesFaces(t *testing.T) {
	p := &recordingProvider{}
	r := NewRenderer(WithProvider(p))
	if err := r.RenderFrame(surface.NewImageSurface(64, 64, true), DefaultControls()); err != nil {
		t.Fatal(err)
	}
	face, err := r.Fonts().Face(DefaultControls().FontFace)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{face.Regular, face.Italic, face.Regular, face.Italic}
	if strings.Join(p.paths, "|") != strings.Join(want, "|") {
		t.Errorf("paths = %v, want %v", p.paths, want)
	}
}

// recordingProvider records opened paths and has no glyphs.
type recordingProvider struct {
	squareProvider
	paths []string
}

func (p *recordingProvider) OpenFont(path string, i int, m text.RenderMode) error {
	p.paths = append(p.paths, path)
	return p.squareProvider.OpenFont(path, i, m)
}

func (p *recordingProvider) Glyph(rune) (text.Glyph, bool) { return text.Glyph{}, false }

func BenchmarkRenderFrame(b *testing.B) {
	p := text.NewSFNTProvider(text.WithFontData("goregular.ttf", goregular.TTF))
	fonts := fontpath.Initialize("")
	for i := 0; i < fonts.Len(); i++ {
		if err := fonts.Override(i, fontpath.Face{Name: "Go", Regular: "goregular.ttf", Italic: "goregular.ttf"}); err != nil {
			b.Fatal(err)
		}
	}
	r := NewRenderer(WithProvider(p), WithFontPaths(fonts))
	s := surface.NewImageSurface(640, 560, true)
	c := DefaultControls()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := r.RenderFrame(s, c); err != nil {
			b.Fatal(err)
		}
	}
}
