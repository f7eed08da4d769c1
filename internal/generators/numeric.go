package generators

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/mmrzaf/sfseed/internal/domain"
)

// NumericGenerator covers int, double, currency and percent fields. The
// integer part never exceeds precision-scale digits and the fraction never
// exceeds scale digits; values are non-negative.
type NumericGenerator struct{}

func (g *NumericGenerator) Validate(f *domain.FieldDefinition) error {
	if f.Scale > f.Precision {
		return &domain.GenerationError{Field: f.Name, Reason: "scale exceeds precision"}
	}
	return nil
}

func (g *NumericGenerator) Generate(rng *rand.Rand, f *domain.FieldDefinition, ctx *Context) (string, error) {
	if f.Type == domain.FieldTypeInt {
		digits := f.Digits
		if digits <= 0 {
			return strconv.FormatInt(rng.Int63n(1001), 10), nil
		}
		return strconv.FormatInt(randomWithDigits(rng, digits), 10), nil
	}

	if f.Precision <= 0 {
		return strconv.FormatInt(rng.Int63n(1001), 10), nil
	}

	intDigits := f.Precision - f.Scale
	if intDigits < 1 {
		intDigits = 1
	}
	integer := randomWithDigits(rng, intDigits)

	if f.Scale <= 0 {
		return strconv.FormatInt(integer, 10), nil
	}

	var frac strings.Builder
	for i := 0; i < f.Scale; i++ {
		frac.WriteByte(byte('0' + rng.Intn(10)))
	}
	return strconv.FormatInt(integer, 10) + "." + frac.String(), nil
}

// randomWithDigits returns a value in [0, 10^digits). Digit counts above 18
// are clamped so the result still fits an int64.
func randomWithDigits(rng *rand.Rand, digits int) int64 {
	if digits > 18 {
		digits = 18
	}
	max := int64(1)
	for i := 0; i < digits; i++ {
		max *= 10
	}
	return rng.Int63n(max)
}
