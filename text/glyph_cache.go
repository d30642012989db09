package text

// GlyphCacheConfig holds configuration for GlyphCache.
type GlyphCacheConfig struct {
	// MaxFonts is the maximum number of font signatures kept.
	// Default: 32
	MaxFonts int
}

// DefaultGlyphCacheConfig returns the default cache configuration.
func DefaultGlyphCacheConfig() GlyphCacheConfig {
	return GlyphCacheConfig{
		MaxFonts: 32,
	}
}

// cachedGlyph is a provider answer, including negative ones.
type cachedGlyph struct {
	glyph Glyph
	ok    bool
}

// fontEntry holds the glyphs of one font signature.
type fontEntry struct {
	sig    string
	glyphs map[rune]cachedGlyph

	// prev and next for LRU doubly-linked list
	prev *fontEntry
	next *fontEntry
}

// GlyphCacheStats holds cache statistics.
type GlyphCacheStats struct {
	Hits       uint64
	Misses     uint64
	Insertions uint64
	Evictions  uint64
}

// GlyphCache memoizes Provider.Glyph answers, grouped by provider signature.
// The least recently used signature is evicted when MaxFonts is exceeded.
//
// Lookups and insertions may be interleaved freely on one goroutine.
// GlyphCache is not safe for concurrent use.
type GlyphCache struct {
	config  GlyphCacheConfig
	entries map[string]*fontEntry

	// head is the most recently used entry
	head *fontEntry
	// tail is the least recently used entry
	tail *fontEntry

	stats GlyphCacheStats
}

// NewGlyphCache creates a new glyph cache with default configuration.
func NewGlyphCache() *GlyphCache {
	return NewGlyphCacheWithConfig(DefaultGlyphCacheConfig())
}

// NewGlyphCacheWithConfig creates a new glyph cache with the given configuration.
func NewGlyphCacheWithConfig(config GlyphCacheConfig) *GlyphCache {
	if config.MaxFonts <= 0 {
		config.MaxFonts = 32
	}
	return &GlyphCache{
		config:  config,
		entries: make(map[string]*fontEntry, config.MaxFonts),
	}
}

// Glyph returns p.Glyph(r), consulting the cache first. Providers with an
// empty signature are not cached.
func (c *GlyphCache) Glyph(p Provider, r rune) (Glyph, bool) {
	sig := p.Signature()
	if sig == "" {
		return p.Glyph(r)
	}
	e := c.entry(sig)
	if cg, ok := e.glyphs[r]; ok {
		c.stats.Hits++
		return cg.glyph, cg.ok
	}
	c.stats.Misses++
	g, ok := p.Glyph(r)
	e.glyphs[r] = cachedGlyph{glyph: g, ok: ok}
	c.stats.Insertions++
	return g, ok
}

// entry returns the font entry for sig, creating it and evicting the least
// recently used entry if needed.
func (c *GlyphCache) entry(sig string) *fontEntry {
	if e, ok := c.entries[sig]; ok {
		c.moveToFront(e)
		return e
	}
	e := &fontEntry{sig: sig, glyphs: make(map[rune]cachedGlyph)}
	c.entries[sig] = e
	c.pushFront(e)
	for len(c.entries) > c.config.MaxFonts {
		c.evict(c.tail)
	}
	return e
}

func (c *GlyphCache) pushFront(e *fontEntry) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *GlyphCache) unlink(e *fontEntry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev, e.next = nil, nil
}

func (c *GlyphCache) moveToFront(e *fontEntry) {
	if c.head == e {
		return
	}
	c.unlink(e)
	c.pushFront(e)
}

func (c *GlyphCache) evict(e *fontEntry) {
	c.unlink(e)
	delete(c.entries, e.sig)
	c.stats.Evictions++
}

// Contains reports whether sig has a font entry.
func (c *GlyphCache) Contains(sig string) bool {
	_, ok := c.entries[sig]
	return ok
}

// Fonts returns the number of cached font signatures.
func (c *GlyphCache) Fonts() int {
	return len(c.entries)
}

// Len returns the total number of cached glyph answers.
func (c *GlyphCache) Len() int {
	n := 0
	for _, e := range c.entries {
		n += len(e.glyphs)
	}
	return n
}

// Stats returns a snapshot of the cache statistics.
func (c *GlyphCache) Stats() GlyphCacheStats {
	return c.stats
}

// Clear removes all entries. Statistics are kept.
func (c *GlyphCache) Clear() {
	clear(c.entries)
	c.head, c.tail = nil, nil
}
