package generators

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/go-faker/faker/v4"
	"github.com/mmrzaf/sfseed/internal/domain"
)

var countryCodes = []string{"JP", "US", "GB", "DE", "FR", "AU", "CA", "SG"}

// AddressGenerator fills every declared sub-component of a compound address
// field; the enforcer later checks that they stay all-populated together.
// Components the schema does not declare are simply not emitted.
type AddressGenerator struct{}

func (g *AddressGenerator) Validate(f *domain.FieldDefinition) error {
	if len(f.Components) == 0 && !f.Nillable {
		return &domain.GenerationError{Field: f.Name, Reason: "address field without components"}
	}
	return nil
}

func (g *AddressGenerator) Generate(rng *rand.Rand, f *domain.FieldDefinition, ctx *Context) (string, error) {
	return "", errors.New("address fields are emitted as components")
}

// ComponentNames lists the declared components minus GeocodeAccuracy, which
// is never emitted.
func (g *AddressGenerator) ComponentNames(f *domain.FieldDefinition) []string {
	out := make([]string, 0, len(f.Components))
	for _, c := range f.Components {
		if strings.Contains(c.Name, "GeocodeAccuracy") {
			continue
		}
		out = append(out, c.Name)
	}
	return out
}

func (g *AddressGenerator) GenerateComponents(rng *rand.Rand, f *domain.FieldDefinition, ctx *Context) ([]Component, error) {
	addr := faker.GetRealAddress()

	out := make([]Component, 0, len(f.Components))
	for _, c := range f.Components {
		var v string
		switch {
		case strings.Contains(c.Name, "Street"):
			v = addr.Address
		case strings.Contains(c.Name, "City"):
			v = addr.City
		case strings.Contains(c.Name, "State"):
			v = addr.State
		case strings.Contains(c.Name, "PostalCode"):
			v = addr.PostalCode
		case strings.Contains(c.Name, "CountryCode"):
			v = "JP"
		case strings.Contains(c.Name, "Country"):
			v = countryCodes[rng.Intn(len(countryCodes))]
		case strings.Contains(c.Name, "Latitude"):
			v = fmt.Sprintf("%.6f", rng.Float64()*180-90)
		case strings.Contains(c.Name, "Longitude"):
			v = fmt.Sprintf("%.6f", rng.Float64()*360-180)
		case strings.Contains(c.Name, "GeocodeAccuracy"):
			// Left empty; the platform computes it.
			continue
		default:
			v = addr.City
		}
		if c.Length > 0 {
			v = truncateRunes(v, c.Length)
		}
		out = append(out, Component{Name: c.Name, Value: v})
	}
	return out, nil
}
