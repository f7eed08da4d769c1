package synth

import (
	"strconv"
	"strings"

	"github.com/mmrzaf/sfseed/internal/domain"
)

// Enforcer re-validates a generated record against the schema before it is
// emitted: per-field bounds, compound all-or-none population, and the
// person/business field split. Generators are trusted but not blindly.
type Enforcer struct{}

func NewEnforcer() *Enforcer {
	return &Enforcer{}
}

func (e *Enforcer) Check(schema *domain.Schema, rec *domain.Record, row int, personMode bool) error {
	for i := range schema.Fields {
		f := &schema.Fields[i]

		switch f.Applicability {
		case domain.ApplicabilityPersonOnly:
			if !personMode && rec.Has(f.Name) {
				return &domain.ConsistencyError{Field: f.Name, Row: row,
					Rule: "person-only field present without person record type"}
			}
		case domain.ApplicabilityBusinessOnly:
			if personMode && rec.Has(f.Name) {
				return &domain.ConsistencyError{Field: f.Name, Row: row,
					Rule: "business-only field present in person mode"}
			}
		}

		if len(f.Components) > 0 {
			if err := e.checkCompound(f, rec, row); err != nil {
				return err
			}
			continue
		}

		val, ok := rec.Get(f.Name)
		if !ok {
			continue
		}
		if err := checkBounds(f, val, row); err != nil {
			return err
		}
	}
	return nil
}

// checkCompound verifies components were populated together or not at all.
// GeocodeAccuracy is platform-computed and exempt.
func (e *Enforcer) checkCompound(f *domain.FieldDefinition, rec *domain.Record, row int) error {
	populated, empty := 0, 0
	for _, c := range f.Components {
		if strings.Contains(c.Name, "GeocodeAccuracy") {
			continue
		}
		v, ok := rec.Get(c.Name)
		if !ok || v == "" {
			empty++
			continue
		}
		populated++
		if err := checkBounds(&c, v, row); err != nil {
			return err
		}
	}
	if populated > 0 && empty > 0 {
		return &domain.ConsistencyError{Field: f.Name, Row: row,
			Rule: "compound components partially populated"}
	}
	return nil
}

func checkBounds(f *domain.FieldDefinition, val string, row int) error {
	if val == "" {
		return nil
	}

	switch f.Type {
	case domain.FieldTypeString, domain.FieldTypeTextArea, domain.FieldTypePhone,
		domain.FieldTypeEmail, domain.FieldTypeURL:
		if f.Length > 0 && len([]rune(val)) > f.Length {
			return &domain.ConsistencyError{Field: f.Name, Row: row,
				Rule: "value exceeds declared length"}
		}

	case domain.FieldTypePicklist:
		if !contains(f.PicklistValues, val) {
			return &domain.ConsistencyError{Field: f.Name, Row: row,
				Rule: "value outside picklist set"}
		}

	case domain.FieldTypeMultiPicklist:
		for _, part := range strings.Split(val, domain.MultiPicklistSeparator) {
			if !contains(f.PicklistValues, part) {
				return &domain.ConsistencyError{Field: f.Name, Row: row,
					Rule: "value outside multipicklist set"}
			}
		}

	case domain.FieldTypeInt, domain.FieldTypeDouble, domain.FieldTypeCurrency,
		domain.FieldTypePercent:
		return checkNumericBounds(f, val, row)
	}

	return nil
}

func checkNumericBounds(f *domain.FieldDefinition, val string, row int) error {
	intPart, fracPart := val, ""
	if i := strings.IndexByte(val, '.'); i >= 0 {
		intPart, fracPart = val[:i], val[i+1:]
	}
	intPart = strings.TrimPrefix(intPart, "-")

	if _, err := strconv.ParseFloat(val, 64); err != nil {
		return &domain.ConsistencyError{Field: f.Name, Row: row, Rule: "non-numeric value"}
	}

	maxInt := 0
	switch {
	case f.Type == domain.FieldTypeInt && f.Digits > 0:
		maxInt = f.Digits
	case f.Precision > 0:
		maxInt = f.Precision - f.Scale
		if maxInt < 1 {
			maxInt = 1
		}
	}
	if maxInt > 0 && len(strings.TrimLeft(intPart, "0")) > maxInt {
		return &domain.ConsistencyError{Field: f.Name, Row: row,
			Rule: "integer digits exceed precision"}
	}
	if f.Precision > 0 && len(fracPart) > f.Scale {
		return &domain.ConsistencyError{Field: f.Name, Row: row,
			Rule: "fraction digits exceed scale"}
	}
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
