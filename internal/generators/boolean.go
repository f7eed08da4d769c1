package generators

import (
	"math/rand"

	"github.com/mmrzaf/sfseed/internal/domain"
)

// BooleanGenerator emits true/false with the context's bias (default 0.5).
type BooleanGenerator struct{}

func (g *BooleanGenerator) Validate(f *domain.FieldDefinition) error { return nil }

func (g *BooleanGenerator) Generate(rng *rand.Rand, f *domain.FieldDefinition, ctx *Context) (string, error) {
	bias := ctx.BoolTrueBias
	if bias <= 0 || bias > 1 {
		bias = 0.5
	}
	if rng.Float64() < bias {
		return "true", nil
	}
	return "false", nil
}
