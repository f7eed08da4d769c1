package generators

import (
	"math/rand"
	"time"

	"github.com/mmrzaf/sfseed/internal/domain"
	"github.com/mmrzaf/sfseed/internal/timeutil"
)

// TemporalGenerator covers date, datetime and time fields. Dates fall inside
// the context's configured range (default: the last year).
type TemporalGenerator struct{}

func (g *TemporalGenerator) Validate(f *domain.FieldDefinition) error { return nil }

func (g *TemporalGenerator) Generate(rng *rand.Rand, f *domain.FieldDefinition, ctx *Context) (string, error) {
	t := randomInRange(rng, ctx.DateStart, ctx.DateEnd)

	switch f.Type {
	case domain.FieldTypeDate:
		return timeutil.FormatDate(t), nil
	case domain.FieldTypeDateTime:
		return timeutil.FormatDateTime(t), nil
	case domain.FieldTypeTime:
		return timeutil.FormatTime(t), nil
	default:
		return "", &domain.GenerationError{
			Field:  f.Name,
			Row:    ctx.RowIndex,
			Reason: "temporal generator bound to non-temporal field",
		}
	}
}

func randomInRange(rng *rand.Rand, start, end time.Time) time.Time {
	if !end.After(start) {
		return start
	}
	span := end.Sub(start)
	return start.Add(time.Duration(rng.Int63n(int64(span))))
}
