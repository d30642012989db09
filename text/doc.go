// Package text supplies glyph outlines, advances and kerning to the layout
// driver.
//
// A Provider opens a font face, is configured with a pixel size and a hinting
// flag, and then answers per-character queries. SFNTProvider is the default
// implementation, built on golang.org/x/image/font/sfnt with pair kerning from
// the legacy kern table and a GPOS fallback through go-text/typesetting.
//
// Outlines are returned in pixels with y growing upward and the origin on the
// baseline. They are immutable once returned; transform stages must copy
// them.
//
// GlyphCache memoizes provider answers per font signature so repeated frames
// do not reload outlines.
package text
