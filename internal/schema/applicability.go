package schema

import (
	"strings"

	"github.com/mmrzaf/sfseed/internal/domain"
)

// Rules decides whether a field is restricted to person or business account
// records. Classification is table-driven: the default table covers the
// platform's naming conventions (custom person-account fields end in __pc,
// a handful of standard fields exist only on one record-type side), and a
// profile may extend either set.
type Rules struct {
	personOnly   map[string]struct{}
	businessOnly map[string]struct{}
}

var defaultPersonOnly = []string{
	"Salutation",
	"FirstName",
	"LastName",
	"MiddleName",
	"Suffix",
	"PersonEmail",
	"PersonBirthdate",
	"PersonTitle",
	"PersonDepartment",
	"PersonMobilePhone",
	"PersonHomePhone",
	"PersonAssistantName",
	"PersonAssistantPhone",
	"PersonLeadSource",
	"PersonMailingAddress",
	"PersonOtherAddress",
}

var defaultBusinessOnly = []string{
	"Industry",
	"NumberOfEmployees",
	"AnnualRevenue",
	"Ownership",
	"TickerSymbol",
	"Site",
	"DunsNumber",
	"NaicsCode",
	"NaicsDesc",
	"Tradestyle",
	"YearStarted",
}

func DefaultRules() *Rules {
	return NewRules(defaultPersonOnly, defaultBusinessOnly)
}

func NewRules(personOnly, businessOnly []string) *Rules {
	r := &Rules{
		personOnly:   make(map[string]struct{}, len(personOnly)),
		businessOnly: make(map[string]struct{}, len(businessOnly)),
	}
	for _, n := range personOnly {
		r.personOnly[n] = struct{}{}
	}
	for _, n := range businessOnly {
		r.businessOnly[n] = struct{}{}
	}
	return r
}

// Extend adds profile-supplied field names to the two sets.
func (r *Rules) Extend(personOnly, businessOnly []string) {
	for _, n := range personOnly {
		r.personOnly[n] = struct{}{}
	}
	for _, n := range businessOnly {
		r.businessOnly[n] = struct{}{}
	}
}

func (r *Rules) Classify(name string) domain.Applicability {
	if strings.HasSuffix(name, "__pc") {
		return domain.ApplicabilityPersonOnly
	}
	if strings.HasPrefix(name, "Person") {
		return domain.ApplicabilityPersonOnly
	}
	if _, ok := r.personOnly[name]; ok {
		return domain.ApplicabilityPersonOnly
	}
	if _, ok := r.businessOnly[name]; ok {
		return domain.ApplicabilityBusinessOnly
	}
	return domain.ApplicabilityAlways
}
