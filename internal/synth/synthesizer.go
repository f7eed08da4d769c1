package synth

import (
	"fmt"
	"math/rand"

	"github.com/mmrzaf/sfseed/internal/domain"
	"github.com/mmrzaf/sfseed/internal/generators"
	"github.com/mmrzaf/sfseed/internal/registry"
	"github.com/mmrzaf/sfseed/internal/timeutil"
)

// Synthesizer produces records from a parsed schema, one row at a time,
// streaming each validated record to the caller-supplied emit function.
type Synthesizer struct {
	registry *registry.GeneratorRegistry
	enforcer *Enforcer
}

func NewSynthesizer(reg *registry.GeneratorRegistry) *Synthesizer {
	return &Synthesizer{registry: reg, enforcer: NewEnforcer()}
}

// BuildContext resolves a profile into a generation context against the
// schema's record types. A person record type name that matches nothing in
// the schema is an error: silently generating business rows instead would
// defeat the point of the toggle.
func BuildContext(schema *domain.Schema, prof *domain.Profile) (*generators.Context, error) {
	locale := domain.DefaultLocaleParams()
	if prof.Locale != nil {
		locale = *prof.Locale
		if locale.MinLength < 1 {
			locale.MinLength = 1
		}
	}

	ctx := generators.NewContext(locale)
	ctx.Overrides = prof.Overrides

	if prof.BooleanTrueBias != nil {
		ctx.BoolTrueBias = *prof.BooleanTrueBias
	}

	if prof.DateRangeStart != "" {
		t, err := timeutil.ParseRelativeTime(prof.DateRangeStart, ctx.DateEnd)
		if err != nil {
			return nil, fmt.Errorf("invalid date_range_start: %w", err)
		}
		ctx.DateStart = t
	}
	if prof.DateRangeEnd != "" {
		t, err := timeutil.ParseRelativeTime(prof.DateRangeEnd, ctx.DateEnd)
		if err != nil {
			return nil, fmt.Errorf("invalid date_range_end: %w", err)
		}
		ctx.DateEnd = t
	}

	for _, rt := range schema.RecordTypes {
		ctx.RecordTypeIDs = append(ctx.RecordTypeIDs, rt.RecordTypeID)
		if prof.PersonRecordType != "" && rt.DeveloperName == prof.PersonRecordType {
			ctx.PersonMode = true
			ctx.PersonRecordTypeID = rt.RecordTypeID
		}
	}
	if prof.PersonRecordType != "" && !ctx.PersonMode {
		return nil, fmt.Errorf("person record type %q not found on object %s",
			prof.PersonRecordType, schema.ObjectName)
	}

	return ctx, nil
}

// Columns returns the exact column names a run with this schema, profile and
// context will emit, in order. It lets callers write the CSV header before
// the first row, so even a zero-row run produces one.
func (s *Synthesizer) Columns(schema *domain.Schema, prof *domain.Profile, ctx *generators.Context) ([]string, error) {
	skip := make(map[string]struct{}, len(prof.SkipFields))
	for _, n := range prof.SkipFields {
		skip[n] = struct{}{}
	}

	var out []string
	for _, f := range s.activeFields(schema, skip, ctx.PersonMode) {
		gen, err := s.registry.Get(f.Type)
		if err != nil {
			return nil, fmt.Errorf("object '%s', field '%s': %w", schema.ObjectName, f.Name, err)
		}
		if cg, ok := gen.(generators.CompoundGenerator); ok {
			out = append(out, cg.ComponentNames(f)...)
			continue
		}
		out = append(out, f.Name)
	}
	return out, nil
}

// Run generates exactly prof.Rows records. Field order within each record
// follows schema order minus exclusions; the first generation or consistency
// error aborts the run.
func (s *Synthesizer) Run(schema *domain.Schema, prof *domain.Profile, ctx *generators.Context, rng *rand.Rand, emit func(row int, rec *domain.Record) error) error {
	if prof.Rows < 0 {
		return fmt.Errorf("rows must be >= 0, got %d", prof.Rows)
	}

	skip := make(map[string]struct{}, len(prof.SkipFields))
	for _, n := range prof.SkipFields {
		skip[n] = struct{}{}
	}

	active := s.activeFields(schema, skip, ctx.PersonMode)

	// Surface unsatisfiable constraints before generating anything.
	for _, f := range active {
		gen, err := s.registry.Get(f.Type)
		if err != nil {
			return fmt.Errorf("object '%s': %w", schema.ObjectName, err)
		}
		if err := gen.Validate(f); err != nil {
			return err
		}
	}

	for row := 0; row < prof.Rows; row++ {
		ctx.RowIndex = row
		rec := domain.NewRecord()

		for _, f := range active {
			gen, err := s.registry.Get(f.Type)
			if err != nil {
				return fmt.Errorf("object '%s', field '%s': %w", schema.ObjectName, f.Name, err)
			}

			if cg, ok := gen.(generators.CompoundGenerator); ok {
				comps, err := cg.GenerateComponents(rng, f, ctx)
				if err != nil {
					return err
				}
				for _, c := range comps {
					rec.Set(c.Name, c.Value)
				}
				continue
			}

			val, err := gen.Generate(rng, f, ctx)
			if err != nil {
				return err
			}
			rec.Set(f.Name, val)
		}

		if err := s.enforcer.Check(schema, rec, row, ctx.PersonMode); err != nil {
			return err
		}

		if err := emit(row, rec); err != nil {
			return err
		}
	}

	return nil
}

// activeFields drops skip-set, calculated and mode-inapplicable fields and
// returns the rest in schema order.
func (s *Synthesizer) activeFields(schema *domain.Schema, skip map[string]struct{}, personMode bool) []*domain.FieldDefinition {
	out := make([]*domain.FieldDefinition, 0, len(schema.Fields))
	for i := range schema.Fields {
		f := &schema.Fields[i]
		if f.Calculated {
			continue
		}
		if _, ok := skip[f.Name]; ok {
			continue
		}
		switch f.Applicability {
		case domain.ApplicabilityPersonOnly:
			if !personMode {
				continue
			}
		case domain.ApplicabilityBusinessOnly:
			if personMode {
				continue
			}
		}
		out = append(out, f)
	}
	return out
}
