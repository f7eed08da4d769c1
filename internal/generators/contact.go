package generators

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/go-faker/faker/v4"
	"github.com/mmrzaf/sfseed/internal/domain"
)

// PhoneGenerator emits a plausible phone number, truncated to the field
// length when the schema declares one.
type PhoneGenerator struct{}

func (g *PhoneGenerator) Validate(f *domain.FieldDefinition) error { return nil }

func (g *PhoneGenerator) Generate(rng *rand.Rand, f *domain.FieldDefinition, ctx *Context) (string, error) {
	number := faker.Phonenumber()
	if f.Length > 0 {
		number = truncateRunes(number, f.Length)
	}
	return number, nil
}

// EmailGenerator emits a syntactically valid address that never exceeds the
// field length. Unique fields get a counter-suffixed local part so no two
// rows collide.
type EmailGenerator struct{}

// emailDomains are the fallback hosts, longest first. The shortest bounds the
// minimum field length an address can fit into.
var emailDomains = []string{"@example.com", "@ex.com", "@a.io"}

func (g *EmailGenerator) Validate(f *domain.FieldDefinition) error {
	min := 1 + len(emailDomains[len(emailDomains)-1]) // "u" + shortest host
	if f.Unique {
		min++ // at least one counter digit
	}
	if f.Length > 0 && f.Length < min {
		return &domain.GenerationError{Field: f.Name, Reason: fmt.Sprintf("length %d cannot fit an email address", f.Length)}
	}
	return nil
}

func (g *EmailGenerator) Generate(rng *rand.Rand, f *domain.FieldDefinition, ctx *Context) (string, error) {
	if !f.Unique {
		addr := faker.Email()
		if f.Length > 0 && len(addr) > f.Length {
			return fitEmail(f, strconv.Itoa(rng.Intn(100000)), false, ctx.RowIndex)
		}
		return addr, nil
	}

	local := strings.ToLower(faker.Username())
	if local == "" {
		local = "user"
	}
	n := ctx.NextCounter(f.Name)
	addr := fmt.Sprintf("%s.%d@example.com", local, n)
	if f.Length > 0 && len(addr) > f.Length {
		return fitEmail(f, strconv.FormatInt(n, 10), true, ctx.RowIndex)
	}
	return addr, nil
}

// fitEmail builds "u<suffix>@<host>" within f.Length, trying hosts from
// longest to shortest. A required suffix is never trimmed: dropping counter
// digits would break uniqueness, so an address that cannot hold them fails.
func fitEmail(f *domain.FieldDefinition, suffix string, suffixRequired bool, row int) (string, error) {
	for _, host := range emailDomains {
		room := f.Length - len(host) - 1
		if room < 0 {
			continue
		}
		s := suffix
		if len(s) > room {
			if suffixRequired {
				continue
			}
			s = s[:room]
		}
		return "u" + s + host, nil
	}
	return "", &domain.GenerationError{Field: f.Name, Row: row, Reason: fmt.Sprintf("length %d cannot fit an email address", f.Length)}
}

type URLGenerator struct{}

// shortURLs are the last-resort values, longest first. Truncating a URL would
// break its syntax, so an over-tight length fails instead.
var shortURLs = []string{"https://a.io", "http://a.io"}

func (g *URLGenerator) Validate(f *domain.FieldDefinition) error {
	min := len(shortURLs[len(shortURLs)-1])
	if f.Length > 0 && f.Length < min {
		return &domain.GenerationError{Field: f.Name, Reason: fmt.Sprintf("length %d cannot fit an absolute URL", f.Length)}
	}
	return nil
}

func (g *URLGenerator) Generate(rng *rand.Rand, f *domain.FieldDefinition, ctx *Context) (string, error) {
	u := faker.URL()
	if f.Length == 0 || len(u) <= f.Length {
		return u, nil
	}
	u = fmt.Sprintf("https://ex%d.test", rng.Intn(10000))
	if len(u) <= f.Length {
		return u, nil
	}
	for _, s := range shortURLs {
		if len(s) <= f.Length {
			return s, nil
		}
	}
	return "", &domain.GenerationError{Field: f.Name, Row: ctx.RowIndex, Reason: fmt.Sprintf("length %d cannot fit an absolute URL", f.Length)}
}
