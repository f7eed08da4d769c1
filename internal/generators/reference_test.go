package generators

import (
	"math/rand"
	"testing"

	"github.com/mmrzaf/sfseed/internal/domain"
)

func TestReferenceGeneratorBlankWithoutOverride(t *testing.T) {
	t.Parallel()

	gen := &ReferenceGenerator{}
	rng := rand.New(rand.NewSource(1))
	f := &domain.FieldDefinition{Name: "AccountId", Type: domain.FieldTypeReference}

	v, err := gen.Generate(rng, f, testContext())
	if err != nil || v != "" {
		t.Fatalf("expected blank, got %q err=%v", v, err)
	}

	ctx := testContext()
	ctx.Overrides = map[string]string{"AccountId": "001000000000001"}
	v, err = gen.Generate(rng, f, ctx)
	if err != nil || v != "001000000000001" {
		t.Fatalf("override ignored: %q err=%v", v, err)
	}
}

func TestRecordTypeGeneratorPersonMode(t *testing.T) {
	t.Parallel()

	gen := &RecordTypeGenerator{}
	rng := rand.New(rand.NewSource(1))
	f := &domain.FieldDefinition{Name: "RecordTypeId", Type: domain.FieldTypeRecordType}

	ctx := testContext()
	ctx.PersonMode = true
	ctx.PersonRecordTypeID = "012000000000009"
	ctx.RecordTypeIDs = []string{"012000000000001", "012000000000009"}

	for i := 0; i < 20; i++ {
		v, err := gen.Generate(rng, f, ctx)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if v != "012000000000009" {
			t.Fatalf("person mode must pin the person record type, got %q", v)
		}
	}
}

func TestRecordTypeGeneratorRandomChoice(t *testing.T) {
	t.Parallel()

	gen := &RecordTypeGenerator{}
	rng := rand.New(rand.NewSource(13))
	f := &domain.FieldDefinition{Name: "RecordTypeId", Type: domain.FieldTypeRecordType}

	ctx := testContext()
	ctx.RecordTypeIDs = []string{"a", "b"}

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		v, err := gen.Generate(rng, f, ctx)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if v != "a" && v != "b" {
			t.Fatalf("unknown record type %q", v)
		}
		seen[v] = true
	}
	if !seen["a"] || !seen["b"] {
		t.Error("expected both record types over 100 draws")
	}

	ctx.RecordTypeIDs = nil
	v, err := gen.Generate(rng, f, ctx)
	if err != nil || v != "" {
		t.Fatalf("no record types should yield blank, got %q err=%v", v, err)
	}
}
