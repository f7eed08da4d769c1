package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/mmrzaf/sfseed/internal/domain"
)

type runConfigPayload struct {
	Object           string               `json:"object"`
	Rows             int                  `json:"rows"`
	SkipFields       []string             `json:"skip_fields,omitempty"`
	PersonRecordType string               `json:"person_record_type,omitempty"`
	PersonOnlyFields []string             `json:"person_only_fields,omitempty"`
	BusinessOnly     []string             `json:"business_only_fields,omitempty"`
	Locale           *domain.LocaleParams `json:"locale,omitempty"`
	BooleanTrueBias  *float64             `json:"boolean_true_bias,omitempty"`
	DateRangeStart   string               `json:"date_range_start,omitempty"`
	DateRangeEnd     string               `json:"date_range_end,omitempty"`
	Overrides        map[string]string    `json:"overrides,omitempty"`
	Seed             int64                `json:"seed"`
}

func sorted(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}

// HashRunConfig fingerprints everything that shapes a run's output so two
// runs with the same hash were generated from the same configuration.
func HashRunConfig(object string, prof *domain.Profile, seed int64) (string, error) {
	p := runConfigPayload{
		Object:           object,
		Rows:             prof.Rows,
		PersonRecordType: prof.PersonRecordType,
		Locale:           prof.Locale,
		BooleanTrueBias:  prof.BooleanTrueBias,
		DateRangeStart:   prof.DateRangeStart,
		DateRangeEnd:     prof.DateRangeEnd,
		Seed:             seed,
	}

	p.SkipFields = sorted(prof.SkipFields)
	p.PersonOnlyFields = sorted(prof.PersonOnlyFields)
	p.BusinessOnly = sorted(prof.BusinessOnly)
	if len(prof.Overrides) > 0 {
		// Maps marshal with sorted keys, so this is already canonical.
		p.Overrides = prof.Overrides
	}

	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
