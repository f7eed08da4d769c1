package generators

import (
	"math/rand"
	"strings"

	"github.com/mmrzaf/sfseed/internal/domain"
)

// JIS level 1/2 character pools.
var (
	hiraganaPool = runeRange(0x3041, 0x3096)
	katakanaPool = runeRange(0x30A1, 0x30FA)
	kanjiPool    = runeRange(0x4E00, 0x9FFE)
)

func runeRange(lo, hi rune) []rune {
	out := make([]rune, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		out = append(out, r)
	}
	return out
}

// TextGenerator produces variable-length Japanese text. Length is drawn
// uniformly from [MinLength, field length] so boundary lengths get exercised.
type TextGenerator struct{}

func (g *TextGenerator) Validate(f *domain.FieldDefinition) error {
	if f.Length <= 0 {
		return &domain.GenerationError{Field: f.Name, Reason: "text field without a length"}
	}
	return nil
}

func (g *TextGenerator) Generate(rng *rand.Rand, f *domain.FieldDefinition, ctx *Context) (string, error) {
	maxLen := f.Length
	if maxLen <= 0 {
		maxLen = 10
	}
	minLen := ctx.Locale.MinLength
	if minLen < 1 {
		minLen = 1
	}
	if minLen > maxLen {
		minLen = maxLen
	}

	length := minLen + rng.Intn(maxLen-minLen+1)
	var b strings.Builder
	b.Grow(length * 3)
	for i := 0; i < length; i++ {
		b.WriteRune(pickRune(rng, ctx.Locale))
	}
	return b.String(), nil
}

func pickRune(rng *rand.Rand, loc domain.LocaleParams) rune {
	hw, kw, jw := loc.HiraganaWeight, loc.KatakanaWeight, loc.KanjiWeight
	total := hw + kw + jw
	if total <= 0 {
		hw, kw, jw = 0.45, 0.45, 0.10
		total = 1.0
	}

	r := rng.Float64() * total
	switch {
	case r < hw:
		return hiraganaPool[rng.Intn(len(hiraganaPool))]
	case r < hw+kw:
		return katakanaPool[rng.Intn(len(katakanaPool))]
	default:
		return kanjiPool[rng.Intn(len(kanjiPool))]
	}
}
