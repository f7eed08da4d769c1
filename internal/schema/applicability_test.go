package schema

import (
	"testing"

	"github.com/mmrzaf/sfseed/internal/domain"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()

	tests := []struct {
		field string
		want  domain.Applicability
	}{
		{"Name", domain.ApplicabilityAlways},
		{"Email__pc", domain.ApplicabilityPersonOnly},
		{"PersonEmail", domain.ApplicabilityPersonOnly},
		{"FirstName", domain.ApplicabilityPersonOnly},
		{"Salutation", domain.ApplicabilityPersonOnly},
		{"Industry", domain.ApplicabilityBusinessOnly},
		{"NumberOfEmployees", domain.ApplicabilityBusinessOnly},
		{"Custom__c", domain.ApplicabilityAlways},
	}

	for _, tt := range tests {
		if got := rules.Classify(tt.field); got != tt.want {
			t.Errorf("Classify(%s) = %s, want %s", tt.field, got, tt.want)
		}
	}
}

func TestExtend(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	rules.Extend([]string{"Hobby__c"}, []string{"TaxID__c"})

	if got := rules.Classify("Hobby__c"); got != domain.ApplicabilityPersonOnly {
		t.Errorf("Hobby__c = %s", got)
	}
	if got := rules.Classify("TaxID__c"); got != domain.ApplicabilityBusinessOnly {
		t.Errorf("TaxID__c = %s", got)
	}

	// Extending one instance must not leak into fresh rule sets.
	if got := DefaultRules().Classify("Hobby__c"); got != domain.ApplicabilityAlways {
		t.Errorf("default rules polluted: %s", got)
	}
}
