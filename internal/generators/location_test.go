package generators

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/mmrzaf/sfseed/internal/domain"
)

func TestLocationGeneratorBounds(t *testing.T) {
	t.Parallel()

	gen := &LocationGenerator{}
	rng := rand.New(rand.NewSource(12))
	ctx := testContext()
	f := &domain.FieldDefinition{Name: "Position__c", Type: domain.FieldTypeLocation}

	for i := 0; i < 100; i++ {
		comps, err := gen.GenerateComponents(rng, f, ctx)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(comps) != 2 {
			t.Fatalf("expected 2 components, got %d", len(comps))
		}

		lat, err := strconv.ParseFloat(comps[0].Value, 64)
		if err != nil || lat < -90 || lat > 90 {
			t.Fatalf("latitude %q out of range", comps[0].Value)
		}
		lon, err := strconv.ParseFloat(comps[1].Value, 64)
		if err != nil || lon < -180 || lon > 180 {
			t.Fatalf("longitude %q out of range", comps[1].Value)
		}
	}
}

func TestLocationComponentNaming(t *testing.T) {
	t.Parallel()

	gen := &LocationGenerator{}
	rng := rand.New(rand.NewSource(12))
	ctx := testContext()

	custom := &domain.FieldDefinition{Name: "Position__c", Type: domain.FieldTypeLocation}
	comps, err := gen.GenerateComponents(rng, custom, ctx)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if comps[0].Name != "Position__Latitude__s" || comps[1].Name != "Position__Longitude__s" {
		t.Fatalf("unexpected component names: %s, %s", comps[0].Name, comps[1].Name)
	}

	declared := &domain.FieldDefinition{
		Name: "Geo",
		Type: domain.FieldTypeLocation,
		Components: []domain.FieldDefinition{
			{Name: "GeoLatitude"},
			{Name: "GeoLongitude"},
		},
	}
	comps, err = gen.GenerateComponents(rng, declared, ctx)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if comps[0].Name != "GeoLatitude" || comps[1].Name != "GeoLongitude" {
		t.Fatalf("declared component names ignored: %s, %s", comps[0].Name, comps[1].Name)
	}
}

func TestLocationGenerateIsComponentOnly(t *testing.T) {
	t.Parallel()

	gen := &LocationGenerator{}
	rng := rand.New(rand.NewSource(12))
	f := &domain.FieldDefinition{Name: "Position__c", Type: domain.FieldTypeLocation}
	if _, err := gen.Generate(rng, f, testContext()); err == nil {
		t.Fatal("expected error from scalar Generate")
	}
}
