package text

import (
	"bytes"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// gposKerner measures pair kerning by shaping two-glyph runs with
// go-text/typesetting, which applies GPOS pair adjustments. It is only used
// for pairs the legacy kern table does not cover.
type gposKerner struct {
	font   *font.Font
	shaper shaping.HarfbuzzShaper
	runes  [2]rune
}

// newGPOSKerner parses data with go-text. A face that fails to parse yields
// a kerner that always reports zero.
func newGPOSKerner(data []byte, index int) *gposKerner {
	k := &gposKerner{}
	r := bytes.NewReader(data)
	if isCollection(data) {
		faces, err := font.ParseTTC(r)
		if err != nil || index < 0 || index >= len(faces) {
			return k
		}
		k.font = faces[index].Font
		return k
	}
	face, err := font.ParseTTF(r)
	if err != nil {
		return k
	}
	k.font = face.Font
	return k
}

// Kerning returns the horizontal adjustment between prev and cur at size
// pixels: the advance of prev when followed by cur minus its advance alone.
func (k *gposKerner) Kerning(prev, cur rune, size float64) float64 {
	if k.font == nil {
		return 0
	}
	k.runes = [2]rune{prev, cur}
	pair := k.shape(2, size)
	if len(pair.Glyphs) != 2 {
		// Ligature or decomposition; not a plain pair.
		return 0
	}
	pairAdv := pair.Glyphs[0].Advance
	single := k.shape(1, size)
	if len(single.Glyphs) != 1 {
		return 0
	}
	return fixedToFloat(pairAdv - single.Glyphs[0].Advance)
}

func (k *gposKerner) shape(n int, size float64) shaping.Output {
	input := shaping.Input{
		Text:      k.runes[:n],
		RunStart:  0,
		RunEnd:    n,
		Direction: di.DirectionLTR,
		Face:      font.NewFace(k.font),
		Size:      fixed.Int26_6(size * 64),
		Script:    language.LookupScript(k.runes[0]),
		Language:  language.NewLanguage("en"),
	}
	return k.shaper.Shape(input)
}
