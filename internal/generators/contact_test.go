package generators

import (
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mmrzaf/sfseed/internal/domain"
)

func TestPhoneGeneratorTruncates(t *testing.T) {
	t.Parallel()

	gen := &PhoneGenerator{}
	rng := rand.New(rand.NewSource(2))
	ctx := testContext()
	f := &domain.FieldDefinition{Name: "Phone", Type: domain.FieldTypePhone, Length: 10}

	for i := 0; i < 50; i++ {
		v, err := gen.Generate(rng, f, ctx)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if utf8.RuneCountInString(v) > 10 {
			t.Fatalf("phone %q exceeds length 10", v)
		}
	}
}

func TestEmailGeneratorUnique(t *testing.T) {
	t.Parallel()

	gen := &EmailGenerator{}
	rng := rand.New(rand.NewSource(4))
	ctx := testContext()
	f := &domain.FieldDefinition{Name: "Email__c", Type: domain.FieldTypeEmail, Length: 80, Unique: true}

	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		v, err := gen.Generate(rng, f, ctx)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if seen[v] {
			t.Fatalf("duplicate unique email %q at row %d", v, i)
		}
		seen[v] = true
		if !strings.Contains(v, "@") {
			t.Fatalf("not an email: %q", v)
		}
		if len(v) > 80 {
			t.Fatalf("email %q exceeds length 80", v)
		}
	}
}

func TestEmailGeneratorUniqueShortField(t *testing.T) {
	t.Parallel()

	gen := &EmailGenerator{}
	rng := rand.New(rand.NewSource(4))
	ctx := testContext()
	f := &domain.FieldDefinition{Name: "Email__c", Type: domain.FieldTypeEmail, Length: 20, Unique: true}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		v, err := gen.Generate(rng, f, ctx)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(v) > 20 {
			t.Fatalf("email %q exceeds length 20", v)
		}
		if seen[v] {
			t.Fatalf("duplicate %q", v)
		}
		seen[v] = true
	}
}

func TestEmailGeneratorTightLength(t *testing.T) {
	t.Parallel()

	gen := &EmailGenerator{}
	ctx := testContext()

	tests := []struct {
		name   string
		length int
		unique bool
	}{
		{"plain 12", 12, false},
		{"plain 6", 6, false},
		{"unique 10", 10, true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rng := rand.New(rand.NewSource(11))
			f := &domain.FieldDefinition{Name: "Email__c", Type: domain.FieldTypeEmail, Length: tc.length, Unique: tc.unique}
			if err := gen.Validate(f); err != nil {
				t.Fatalf("validate: %v", err)
			}

			seen := make(map[string]bool)
			for i := 0; i < 200; i++ {
				v, err := gen.Generate(rng, f, ctx)
				if err != nil {
					t.Fatalf("generate: %v", err)
				}
				if utf8.RuneCountInString(v) > tc.length {
					t.Fatalf("email %q exceeds length %d", v, tc.length)
				}
				if !strings.Contains(v, "@") {
					t.Fatalf("not an email: %q", v)
				}
				if tc.unique {
					if seen[v] {
						t.Fatalf("duplicate %q", v)
					}
					seen[v] = true
				}
			}
		})
	}
}

func TestEmailGeneratorUnsatisfiableLength(t *testing.T) {
	t.Parallel()

	gen := &EmailGenerator{}
	tests := []struct {
		name   string
		length int
		unique bool
	}{
		{"plain 5", 5, false},
		{"unique 6", 6, true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := &domain.FieldDefinition{Name: "Email__c", Type: domain.FieldTypeEmail, Length: tc.length, Unique: tc.unique}
			if err := gen.Validate(f); err == nil {
				t.Fatalf("expected validate error for length %d", tc.length)
			}
		})
	}
}

func TestURLGeneratorLength(t *testing.T) {
	t.Parallel()

	gen := &URLGenerator{}
	rng := rand.New(rand.NewSource(6))
	ctx := testContext()
	f := &domain.FieldDefinition{Name: "Website", Type: domain.FieldTypeURL, Length: 16}

	for i := 0; i < 50; i++ {
		v, err := gen.Generate(rng, f, ctx)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(v) > 16 {
			t.Fatalf("url %q exceeds length 16", v)
		}
	}
}

func TestURLGeneratorTightLength(t *testing.T) {
	t.Parallel()

	gen := &URLGenerator{}
	rng := rand.New(rand.NewSource(8))
	ctx := testContext()
	f := &domain.FieldDefinition{Name: "Website", Type: domain.FieldTypeURL, Length: 11}

	if err := gen.Validate(f); err != nil {
		t.Fatalf("validate: %v", err)
	}
	for i := 0; i < 50; i++ {
		v, err := gen.Generate(rng, f, ctx)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(v) > 11 {
			t.Fatalf("url %q exceeds length 11", v)
		}
		if !strings.HasPrefix(v, "http://") && !strings.HasPrefix(v, "https://") {
			t.Fatalf("not an absolute url: %q", v)
		}
	}
}

func TestURLGeneratorUnsatisfiableLength(t *testing.T) {
	t.Parallel()

	gen := &URLGenerator{}
	f := &domain.FieldDefinition{Name: "Website", Type: domain.FieldTypeURL, Length: 10}
	if err := gen.Validate(f); err == nil {
		t.Fatal("expected validate error for length 10")
	}
}
