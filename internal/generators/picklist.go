package generators

import (
	"math/rand"
	"strings"

	"github.com/mmrzaf/sfseed/internal/domain"
)

type PicklistGenerator struct{}

func (g *PicklistGenerator) Validate(f *domain.FieldDefinition) error {
	if len(f.PicklistValues) == 0 && !f.Nillable {
		return &domain.GenerationError{Field: f.Name, Reason: "required picklist has no values"}
	}
	return nil
}

func (g *PicklistGenerator) Generate(rng *rand.Rand, f *domain.FieldDefinition, ctx *Context) (string, error) {
	if len(f.PicklistValues) == 0 {
		if f.Nillable {
			return "", nil
		}
		return "", &domain.GenerationError{
			Field:  f.Name,
			Row:    ctx.RowIndex,
			Reason: "required picklist has no values",
		}
	}
	return f.PicklistValues[rng.Intn(len(f.PicklistValues))], nil
}

// MultiPicklistGenerator selects a random non-empty subset and joins it with
// the platform separator. A nillable field may come out empty.
type MultiPicklistGenerator struct{}

func (g *MultiPicklistGenerator) Validate(f *domain.FieldDefinition) error {
	if len(f.PicklistValues) == 0 && !f.Nillable {
		return &domain.GenerationError{Field: f.Name, Reason: "required multipicklist has no values"}
	}
	return nil
}

func (g *MultiPicklistGenerator) Generate(rng *rand.Rand, f *domain.FieldDefinition, ctx *Context) (string, error) {
	if len(f.PicklistValues) == 0 {
		if f.Nillable {
			return "", nil
		}
		return "", &domain.GenerationError{
			Field:  f.Name,
			Row:    ctx.RowIndex,
			Reason: "required multipicklist has no values",
		}
	}

	count := 1 + rng.Intn(len(f.PicklistValues))
	perm := rng.Perm(len(f.PicklistValues))
	picked := make([]string, count)
	for i := 0; i < count; i++ {
		picked[i] = f.PicklistValues[perm[i]]
	}
	return strings.Join(picked, domain.MultiPicklistSeparator), nil
}
