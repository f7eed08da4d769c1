package schema

import (
	"fmt"

	"github.com/mmrzaf/sfseed/internal/domain"
)

// System and audit fields nobody sets directly.
var systemFields = map[string]struct{}{
	"IsDeleted":        {},
	"CreatedById":      {},
	"CreatedDate":      {},
	"LastModifiedById": {},
	"LastModifiedDate": {},
	"SystemModstamp":   {},
}

// Record-type display names that mean "master" in orgs localized to Japanese.
var masterRecordTypeNames = map[string]struct{}{
	"Master": {},
	"マスター":   {},
	"マスタ":    {},
}

var typeMap = map[string]domain.FieldType{
	"string":              domain.FieldTypeString,
	"encryptedstring":     domain.FieldTypeString,
	"combobox":            domain.FieldTypeString,
	"textarea":            domain.FieldTypeTextArea,
	"picklist":            domain.FieldTypePicklist,
	"multipicklist":       domain.FieldTypeMultiPicklist,
	"multiselectpicklist": domain.FieldTypeMultiPicklist,
	"int":                 domain.FieldTypeInt,
	"integer":             domain.FieldTypeInt,
	"long":                domain.FieldTypeInt,
	"double":              domain.FieldTypeDouble,
	"currency":            domain.FieldTypeCurrency,
	"percent":             domain.FieldTypePercent,
	"phone":               domain.FieldTypePhone,
	"email":               domain.FieldTypeEmail,
	"url":                 domain.FieldTypeURL,
	"date":                domain.FieldTypeDate,
	"datetime":            domain.FieldTypeDateTime,
	"time":                domain.FieldTypeTime,
	"boolean":             domain.FieldTypeBoolean,
	"location":            domain.FieldTypeLocation,
	"address":             domain.FieldTypeAddress,
	"reference":           domain.FieldTypeReference,
	"id":                  domain.FieldTypeID,
}

// Parse normalizes describe metadata into an ordered field list. Calculated
// and system fields are dropped, compound components are folded into their
// parent field, and every remaining field gets an applicability class from
// the rules table.
func Parse(meta *domain.DescribeMetadata, rules *Rules) (*domain.Schema, error) {
	if meta == nil {
		return nil, &domain.SchemaError{Reason: "nil describe metadata"}
	}
	if len(meta.Fields) == 0 {
		return nil, &domain.SchemaError{Reason: "describe has no fields"}
	}
	if rules == nil {
		rules = DefaultRules()
	}

	// Names of compound parents (address/location typed fields); their
	// declared components are attached to the parent, not listed top-level.
	compoundParents := make(map[string]bool)
	for _, f := range meta.Fields {
		if f.Type == "address" || f.Type == "location" {
			compoundParents[f.Name] = true
		}
	}

	components := make(map[string][]domain.FieldDefinition)
	fields := make([]domain.FieldDefinition, 0, len(meta.Fields))

	for _, f := range meta.Fields {
		if f.Calculated {
			continue
		}
		if _, ok := systemFields[f.Name]; ok {
			continue
		}

		def, err := parseField(&f, rules)
		if err != nil {
			return nil, err
		}

		if f.CompoundFieldName != "" && compoundParents[f.CompoundFieldName] {
			components[f.CompoundFieldName] = append(components[f.CompoundFieldName], def)
			continue
		}

		fields = append(fields, def)
	}

	// Attach components in schema order.
	for i := range fields {
		if comps, ok := components[fields[i].Name]; ok {
			fields[i].Components = comps
		}
	}

	schema := &domain.Schema{
		ObjectName: meta.Name,
		Fields:     fields,
	}

	for _, rt := range meta.RecordTypeInfos {
		if !rt.Active || rt.Master {
			continue
		}
		if _, ok := masterRecordTypeNames[rt.Name]; ok {
			continue
		}
		schema.RecordTypes = append(schema.RecordTypes, domain.RecordTypeInfo{
			RecordTypeID:  rt.RecordTypeID,
			Name:          rt.Name,
			DeveloperName: rt.DeveloperName,
			Active:        rt.Active,
			Master:        rt.Master,
		})
	}

	return schema, nil
}

func parseField(f *domain.DescribeField, rules *Rules) (domain.FieldDefinition, error) {
	ft, ok := typeMap[f.Type]
	if !ok {
		return domain.FieldDefinition{}, &domain.SchemaError{
			Field:  f.Name,
			Reason: fmt.Sprintf("unknown field type %q", f.Type),
		}
	}
	if f.Name == "RecordTypeId" {
		ft = domain.FieldTypeRecordType
	}

	switch ft {
	case domain.FieldTypeString, domain.FieldTypeTextArea:
		if f.Length <= 0 {
			return domain.FieldDefinition{}, &domain.SchemaError{
				Field:  f.Name,
				Reason: "string field without a length",
			}
		}
	case domain.FieldTypeDouble, domain.FieldTypeCurrency, domain.FieldTypePercent:
		if f.Scale > f.Precision {
			return domain.FieldDefinition{}, &domain.SchemaError{
				Field:  f.Name,
				Reason: fmt.Sprintf("scale %d exceeds precision %d", f.Scale, f.Precision),
			}
		}
	}

	def := domain.FieldDefinition{
		Name:          f.Name,
		Label:         f.Label,
		Type:          ft,
		Length:        f.Length,
		Precision:     f.Precision,
		Scale:         f.Scale,
		Digits:        f.Digits,
		Nillable:      f.Nillable,
		Unique:        f.Unique,
		Calculated:    f.Calculated,
		Applicability: rules.Classify(f.Name),
		ReferenceTo:   f.ReferenceTo,
	}

	for _, pv := range f.PicklistValues {
		if !pv.Active {
			continue
		}
		def.PicklistValues = append(def.PicklistValues, pv.Value)
	}

	return def, nil
}
