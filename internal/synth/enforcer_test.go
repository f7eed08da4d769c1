package synth

import (
	"errors"
	"testing"

	"github.com/mmrzaf/sfseed/internal/domain"
)

func record(pairs ...string) *domain.Record {
	rec := domain.NewRecord()
	for i := 0; i+1 < len(pairs); i += 2 {
		rec.Set(pairs[i], pairs[i+1])
	}
	return rec
}

func TestEnforcerChecks(t *testing.T) {
	t.Parallel()

	addr := domain.FieldDefinition{
		Name: "BillingAddress",
		Type: domain.FieldTypeAddress,
		Components: []domain.FieldDefinition{
			{Name: "BillingStreet", Type: domain.FieldTypeTextArea, Length: 255},
			{Name: "BillingCity", Type: domain.FieldTypeString, Length: 40},
			{Name: "BillingGeocodeAccuracy", Type: domain.FieldTypeString, Length: 40},
		},
	}
	sc := &domain.Schema{
		ObjectName: "Account",
		Fields: []domain.FieldDefinition{
			{Name: "Name", Type: domain.FieldTypeString, Length: 5},
			{Name: "Status__c", Type: domain.FieldTypePicklist, PicklistValues: []string{"Open", "Closed"}},
			{Name: "Tags__c", Type: domain.FieldTypeMultiPicklist, PicklistValues: []string{"a", "b"}},
			{Name: "Amount__c", Type: domain.FieldTypeCurrency, Precision: 5, Scale: 2},
			{Name: "Salutation", Type: domain.FieldTypeString, Length: 40,
				Applicability: domain.ApplicabilityPersonOnly},
			addr,
		},
	}

	tests := []struct {
		name       string
		rec        *domain.Record
		personMode bool
		wantErr    bool
	}{
		{"clean", record("Name", "abcde", "Status__c", "Open", "Tags__c", "a;b",
			"Amount__c", "123.45", "BillingStreet", "x", "BillingCity", "y"), false, false},
		{"overlong string", record("Name", "abcdef"), false, true},
		{"picklist violation", record("Status__c", "Reopened"), false, true},
		{"multipicklist member violation", record("Tags__c", "a;z"), false, true},
		{"integer digits exceed precision", record("Amount__c", "1234.56"), false, true},
		{"fraction digits exceed scale", record("Amount__c", "12.345"), false, true},
		{"person field in business mode", record("Salutation", "Mr."), false, true},
		{"person field in person mode", record("Salutation", "Mr."), true, false},
		{"partial compound", record("BillingStreet", "somewhere"), false, true},
		{"compound missing geocode accuracy ok",
			record("BillingStreet", "somewhere", "BillingCity", "Kobe"), false, false},
		{"empty record", record(), false, false},
	}

	e := NewEnforcer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.Check(sc, tt.rec, 0, tt.personMode)
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr {
				var ce *domain.ConsistencyError
				if !errors.As(err, &ce) {
					t.Fatalf("expected ConsistencyError, got %T", err)
				}
			}
		})
	}
}

func TestEnforcerLeadingZerosDoNotCount(t *testing.T) {
	t.Parallel()

	sc := &domain.Schema{
		ObjectName: "Thing__c",
		Fields: []domain.FieldDefinition{
			{Name: "Amount__c", Type: domain.FieldTypeCurrency, Precision: 4, Scale: 2},
		},
	}
	if err := NewEnforcer().Check(sc, record("Amount__c", "007.10"), 0, false); err != nil {
		t.Fatalf("leading zeros should not count toward precision: %v", err)
	}
}
