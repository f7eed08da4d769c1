package registry

import (
	"fmt"
	"sync"

	"github.com/mmrzaf/sfseed/internal/domain"
	"github.com/mmrzaf/sfseed/internal/generators"
)

type GeneratorRegistry struct {
	mu         sync.RWMutex
	generators map[domain.FieldType]generators.Generator
}

func NewGeneratorRegistry() *GeneratorRegistry {
	return &GeneratorRegistry{
		generators: make(map[domain.FieldType]generators.Generator),
	}
}

func (r *GeneratorRegistry) Register(t domain.FieldType, gen generators.Generator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generators[t] = gen
}

func (r *GeneratorRegistry) Get(t domain.FieldType) (generators.Generator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	gen, ok := r.generators[t]
	if !ok {
		return nil, fmt.Errorf("no generator for field type: %s", t)
	}
	return gen, nil
}

func (r *GeneratorRegistry) Types() []domain.FieldType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]domain.FieldType, 0, len(r.generators))
	for t := range r.generators {
		types = append(types, t)
	}
	return types
}

// DefaultGeneratorRegistry binds every field type category to its generator.
func DefaultGeneratorRegistry() *GeneratorRegistry {
	r := NewGeneratorRegistry()

	text := &generators.TextGenerator{}
	r.Register(domain.FieldTypeString, text)
	r.Register(domain.FieldTypeTextArea, text)

	r.Register(domain.FieldTypePicklist, &generators.PicklistGenerator{})
	r.Register(domain.FieldTypeMultiPicklist, &generators.MultiPicklistGenerator{})

	numeric := &generators.NumericGenerator{}
	r.Register(domain.FieldTypeInt, numeric)
	r.Register(domain.FieldTypeDouble, numeric)
	r.Register(domain.FieldTypeCurrency, numeric)
	r.Register(domain.FieldTypePercent, numeric)

	r.Register(domain.FieldTypePhone, &generators.PhoneGenerator{})
	r.Register(domain.FieldTypeEmail, &generators.EmailGenerator{})
	r.Register(domain.FieldTypeURL, &generators.URLGenerator{})

	temporal := &generators.TemporalGenerator{}
	r.Register(domain.FieldTypeDate, temporal)
	r.Register(domain.FieldTypeDateTime, temporal)
	r.Register(domain.FieldTypeTime, temporal)

	r.Register(domain.FieldTypeBoolean, &generators.BooleanGenerator{})
	r.Register(domain.FieldTypeLocation, &generators.LocationGenerator{})
	r.Register(domain.FieldTypeAddress, &generators.AddressGenerator{})

	ref := &generators.ReferenceGenerator{}
	r.Register(domain.FieldTypeReference, ref)
	r.Register(domain.FieldTypeID, ref)
	r.Register(domain.FieldTypeRecordType, &generators.RecordTypeGenerator{})

	return r
}
