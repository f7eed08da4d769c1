package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/mmrzaf/sfseed/internal/domain"
)

// API names: leading letter, then letters, digits and underscores. Covers
// standard names and the __c/__pc custom suffixes.
var apiNameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

func IsValidAPIName(s string) bool {
	return apiNameRe.MatchString(s)
}

// ValidateProfile checks a run profile before any describe call is made.
func ValidateProfile(p *domain.Profile) error {
	if p == nil {
		return errors.New("profile is required")
	}
	if p.Rows < 0 {
		return fmt.Errorf("rows must be >= 0, got %d", p.Rows)
	}
	if p.Object != "" && !IsValidAPIName(p.Object) {
		return fmt.Errorf("invalid object API name: %s", p.Object)
	}
	for _, f := range p.SkipFields {
		if !IsValidAPIName(f) {
			return fmt.Errorf("invalid field name in skip_fields: %s", f)
		}
	}
	for f := range p.Overrides {
		if !IsValidAPIName(f) {
			return fmt.Errorf("invalid field name in overrides: %s", f)
		}
	}
	if p.PersonRecordType != "" && !IsValidAPIName(p.PersonRecordType) {
		return fmt.Errorf("invalid person record type developer name: %s", p.PersonRecordType)
	}
	if p.BooleanTrueBias != nil && (*p.BooleanTrueBias < 0 || *p.BooleanTrueBias > 1) {
		return fmt.Errorf("boolean_true_bias must be in [0,1], got %v", *p.BooleanTrueBias)
	}
	if p.Locale != nil {
		l := p.Locale
		if l.HiraganaWeight < 0 || l.KatakanaWeight < 0 || l.KanjiWeight < 0 {
			return errors.New("locale weights must be non-negative")
		}
		if l.HiraganaWeight+l.KatakanaWeight+l.KanjiWeight == 0 {
			return errors.New("at least one locale weight must be positive")
		}
		if l.MinLength < 0 {
			return fmt.Errorf("locale min_length must be >= 0, got %d", l.MinLength)
		}
	}
	return nil
}
