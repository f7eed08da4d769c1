package generators

import (
	"math/rand"

	"github.com/mmrzaf/sfseed/internal/domain"
)

// ReferenceGenerator leaves foreign keys blank unless the run supplies an
// explicit override; valid IDs require lookups against the org.
type ReferenceGenerator struct{}

func (g *ReferenceGenerator) Validate(f *domain.FieldDefinition) error { return nil }

func (g *ReferenceGenerator) Generate(rng *rand.Rand, f *domain.FieldDefinition, ctx *Context) (string, error) {
	if v, ok := ctx.Override(f.Name); ok {
		return v, nil
	}
	return "", nil
}

// RecordTypeGenerator assigns RecordTypeId. In person mode every row gets
// the person record type; otherwise a random active non-master type.
type RecordTypeGenerator struct{}

func (g *RecordTypeGenerator) Validate(f *domain.FieldDefinition) error { return nil }

func (g *RecordTypeGenerator) Generate(rng *rand.Rand, f *domain.FieldDefinition, ctx *Context) (string, error) {
	if v, ok := ctx.Override(f.Name); ok {
		return v, nil
	}
	if ctx.PersonMode {
		return ctx.PersonRecordTypeID, nil
	}
	if len(ctx.RecordTypeIDs) == 0 {
		return "", nil
	}
	return ctx.RecordTypeIDs[rng.Intn(len(ctx.RecordTypeIDs))], nil
}
