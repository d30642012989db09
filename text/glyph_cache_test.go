package text

import (
	"fmt"
	"testing"
)

// countingProvider answers every rune with a fixed advance and counts calls.
type countingProvider struct {
	sig   string
	calls int
}

func (p *countingProvider) OpenFont(string, int, RenderMode) error { return nil }
func (p *countingProvider) SetSize(float64)                        {}
func (p *countingProvider) SetHinting(bool)                        {}
func (p *countingProvider) Kerning(rune, rune) (float64, float64)  { return 0, 0 }
func (p *countingProvider) Signature() string                      { return p.sig }

func (p *countingProvider) Glyph(r rune) (Glyph, bool) {
	p.calls++
	if r == 'x' {
		return Glyph{}, false
	}
	return Glyph{AdvanceX: float64(r), Kind: KindOutline}, true
}

func TestDefaultGlyphCacheConfig(t *testing.T) {
	config := DefaultGlyphCacheConfig()
	if config.MaxFonts != 32 {
		t.Errorf("MaxFonts = %d, want 32", config.MaxFonts)
	}
	c := NewGlyphCacheWithConfig(GlyphCacheConfig{})
	if c.config.MaxFonts != 32 {
		t.Errorf("MaxFonts should default to 32, got %d", c.config.MaxFonts)
	}
}

func TestGlyphCacheHitMiss(t *testing.T) {
	c := NewGlyphCache()
	p := &countingProvider{sig: "a"}

	for i := 0; i < 3; i++ {
		g, ok := c.Glyph(p, 'B')
		if !ok || g.AdvanceX != 'B' {
			t.Fatalf("Glyph = %v, %v", g, ok)
		}
		if _, ok := c.Glyph(p, 'x'); ok {
			t.Fatal("missing glyph reported as found")
		}
	}
	if p.calls != 2 {
		t.Errorf("provider calls = %d, want 2", p.calls)
	}
	st := c.Stats()
	if st.Hits != 4 || st.Misses != 2 || st.Insertions != 2 {
		t.Errorf("stats = %+v", st)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestGlyphCacheSeparatesSignatures(t *testing.T) {
	c := NewGlyphCache()
	p := &countingProvider{sig: "12px"}
	c.Glyph(p, 'A')
	p.sig = "24px"
	c.Glyph(p, 'A')
	if p.calls != 2 {
		t.Errorf("provider calls = %d, want 2", p.calls)
	}
	if c.Fonts() != 2 {
		t.Errorf("Fonts() = %d, want 2", c.Fonts())
	}
}

func TestGlyphCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewGlyphCacheWithConfig(GlyphCacheConfig{MaxFonts: 2})
	p := &countingProvider{}
	use := func(sig string) {
		p.sig = sig
		c.Glyph(p, 'A')
	}
	use("f1")
	use("f2")
	use("f1") // f2 is now least recently used
	use("f3")

	if !c.Contains("f1") || !c.Contains("f3") {
		t.Error("recent signatures evicted")
	}
	if c.Contains("f2") {
		t.Error("least recently used signature kept")
	}
	if c.Stats().Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", c.Stats().Evictions)
	}
}

func TestGlyphCacheUnsignedProvider(t *testing.T) {
	c := NewGlyphCache()
	p := &countingProvider{}
	c.Glyph(p, 'A')
	c.Glyph(p, 'A')
	if p.calls != 2 || c.Fonts() != 0 {
		t.Errorf("calls = %d, fonts = %d; want uncached", p.calls, c.Fonts())
	}
}

func TestGlyphCacheClear(t *testing.T) {
	c := NewGlyphCache()
	p := &countingProvider{}
	for i := 0; i < 5; i++ {
		p.sig = fmt.Sprint(i)
		c.Glyph(p, 'A')
	}
	c.Clear()
	if c.Fonts() != 0 || c.Len() != 0 {
		t.Errorf("after Clear: fonts=%d len=%d", c.Fonts(), c.Len())
	}
	p.sig = "again"
	c.Glyph(p, 'A')
	if c.Fonts() != 1 {
		t.Errorf("Fonts() after reuse = %d", c.Fonts())
	}
}
