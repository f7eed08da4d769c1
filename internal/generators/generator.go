package generators

import (
	"math/rand"
	"sync"
	"time"

	"github.com/mmrzaf/sfseed/internal/domain"
)

// Generator produces one value for a field. Output must always satisfy the
// field's declared bounds; a violating value is a defect, not an edge case.
type Generator interface {
	Generate(rng *rand.Rand, f *domain.FieldDefinition, ctx *Context) (string, error)
	Validate(f *domain.FieldDefinition) error
}

// CompoundGenerator is implemented by generators whose field decomposes into
// sub-components (address, geolocation). The synthesizer checks for this
// interface before falling back to Generate. ComponentNames must list exactly
// the names GenerateComponents will emit, so the header can be established
// before any row exists.
type CompoundGenerator interface {
	GenerateComponents(rng *rand.Rand, f *domain.FieldDefinition, ctx *Context) ([]Component, error)
	ComponentNames(f *domain.FieldDefinition) []string
}

type Component struct {
	Name  string
	Value string
}

// Context carries per-run generation state. It is owned by a single run and
// discarded afterwards. RowIndex is set by the synthesizer before each row.
// Counters back uniqueness across rows; increments are serialized so rows
// could be generated concurrently without losing uniqueness.
type Context struct {
	RowIndex           int
	Locale             domain.LocaleParams
	PersonMode         bool
	RecordTypeIDs      []string
	PersonRecordTypeID string
	BoolTrueBias       float64
	DateStart          time.Time
	DateEnd            time.Time
	Overrides          map[string]string

	mu       sync.Mutex
	counters map[string]int64
}

func NewContext(locale domain.LocaleParams) *Context {
	now := time.Now()
	return &Context{
		Locale:       locale,
		BoolTrueBias: 0.5,
		DateStart:    now.AddDate(-1, 0, 0),
		DateEnd:      now,
		counters:     make(map[string]int64),
	}
}

// NextCounter returns a monotonic per-field counter, starting at 1.
func (c *Context) NextCounter(field string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[field]++
	return c.counters[field]
}

// Override returns an explicit caller-supplied value for the field, if any.
func (c *Context) Override(field string) (string, bool) {
	v, ok := c.Overrides[field]
	return v, ok
}

// truncateRunes cuts s to at most n runes. Describe lengths count characters,
// not bytes, so the cut must be rune-aware.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
