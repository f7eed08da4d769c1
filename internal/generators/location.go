package generators

import (
	"errors"
	"math/rand"
	"strconv"
	"strings"

	"github.com/mmrzaf/sfseed/internal/domain"
)

// LocationGenerator emits a latitude/longitude pair into the field's two
// sub-components. Latitude stays within [-90, 90], longitude within
// [-180, 180].
type LocationGenerator struct{}

func (g *LocationGenerator) Validate(f *domain.FieldDefinition) error { return nil }

func (g *LocationGenerator) Generate(rng *rand.Rand, f *domain.FieldDefinition, ctx *Context) (string, error) {
	return "", errors.New("location fields are emitted as components")
}

func (g *LocationGenerator) ComponentNames(f *domain.FieldDefinition) []string {
	lat, lon := componentNames(f)
	return []string{lat, lon}
}

func (g *LocationGenerator) GenerateComponents(rng *rand.Rand, f *domain.FieldDefinition, ctx *Context) ([]Component, error) {
	lat := rng.Float64()*180 - 90
	lon := rng.Float64()*360 - 180

	latName, lonName := componentNames(f)
	return []Component{
		{Name: latName, Value: strconv.FormatFloat(lat, 'f', 6, 64)},
		{Name: lonName, Value: strconv.FormatFloat(lon, 'f', 6, 64)},
	}, nil
}

func componentNames(f *domain.FieldDefinition) (lat, lon string) {
	for _, c := range f.Components {
		switch {
		case strings.Contains(c.Name, "Latitude"):
			lat = c.Name
		case strings.Contains(c.Name, "Longitude"):
			lon = c.Name
		}
	}
	if lat == "" || lon == "" {
		// Custom location fields follow the <Name>__Latitude__s convention.
		base := strings.TrimSuffix(f.Name, "__c")
		lat = base + "__Latitude__s"
		lon = base + "__Longitude__s"
	}
	return lat, lon
}
