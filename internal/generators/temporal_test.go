package generators

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/mmrzaf/sfseed/internal/domain"
	"github.com/mmrzaf/sfseed/internal/timeutil"
)

func TestTemporalGeneratorFormats(t *testing.T) {
	t.Parallel()

	gen := &TemporalGenerator{}
	rng := rand.New(rand.NewSource(8))
	ctx := testContext()
	ctx.DateStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	ctx.DateEnd = time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	dateField := &domain.FieldDefinition{Name: "CloseDate", Type: domain.FieldTypeDate}
	for i := 0; i < 100; i++ {
		v, err := gen.Generate(rng, dateField, ctx)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		parsed, err := time.Parse(timeutil.DateLayout, v)
		if err != nil {
			t.Fatalf("unparseable date %q: %v", v, err)
		}
		if parsed.Before(ctx.DateStart) || parsed.After(ctx.DateEnd) {
			t.Fatalf("date %q outside configured range", v)
		}
	}

	dtField := &domain.FieldDefinition{Name: "Stamp__c", Type: domain.FieldTypeDateTime}
	v, err := gen.Generate(rng, dtField, ctx)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := time.Parse(timeutil.DateTimeLayout, v); err != nil {
		t.Fatalf("unparseable datetime %q: %v", v, err)
	}

	timeField := &domain.FieldDefinition{Name: "Opens__c", Type: domain.FieldTypeTime}
	v, err = gen.Generate(rng, timeField, ctx)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasSuffix(v, "Z") {
		t.Fatalf("time %q missing Z suffix", v)
	}
	if _, err := time.Parse("15:04:05.000", strings.TrimSuffix(v, "Z")); err != nil {
		t.Fatalf("unparseable time %q: %v", v, err)
	}
}

func TestTemporalGeneratorRejectsWrongType(t *testing.T) {
	t.Parallel()

	gen := &TemporalGenerator{}
	rng := rand.New(rand.NewSource(8))
	f := &domain.FieldDefinition{Name: "Name", Type: domain.FieldTypeString}
	if _, err := gen.Generate(rng, f, testContext()); err == nil {
		t.Fatal("expected error for non-temporal field")
	}
}
