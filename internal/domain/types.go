package domain

import "time"

// FieldType is the closed set of field categories the generator understands.
// Describe metadata carries free-form type strings; internal/schema maps them
// onto this set once, at the parse boundary.
type FieldType string

const (
	FieldTypeString        FieldType = "string"
	FieldTypeTextArea      FieldType = "textarea"
	FieldTypePicklist      FieldType = "picklist"
	FieldTypeMultiPicklist FieldType = "multipicklist"
	FieldTypeInt           FieldType = "int"
	FieldTypeDouble        FieldType = "double"
	FieldTypeCurrency      FieldType = "currency"
	FieldTypePercent       FieldType = "percent"
	FieldTypePhone         FieldType = "phone"
	FieldTypeEmail         FieldType = "email"
	FieldTypeURL           FieldType = "url"
	FieldTypeDate          FieldType = "date"
	FieldTypeDateTime      FieldType = "datetime"
	FieldTypeTime          FieldType = "time"
	FieldTypeBoolean       FieldType = "boolean"
	FieldTypeLocation      FieldType = "location"
	FieldTypeAddress       FieldType = "address"
	FieldTypeReference     FieldType = "reference"
	FieldTypeID            FieldType = "id"
	FieldTypeRecordType    FieldType = "recordtype"
)

// Applicability says which record-type mode a field belongs to.
type Applicability string

const (
	ApplicabilityAlways       Applicability = "always"
	ApplicabilityBusinessOnly Applicability = "businessOnly"
	ApplicabilityPersonOnly   Applicability = "personOnly"
)

// FieldDefinition is one parsed field of an object schema. Compound fields
// (address, location) carry their component definitions in Components; the
// components themselves do not appear in the top-level field list.
type FieldDefinition struct {
	Name           string
	Label          string
	Type           FieldType
	Length         int
	Precision      int
	Scale          int
	Digits         int
	Nillable       bool
	Unique         bool
	Calculated     bool
	PicklistValues []string
	Components     []FieldDefinition
	Applicability  Applicability
	ReferenceTo    []string
}

// RecordTypeInfo is one entry of the describe recordTypeInfos array,
// reduced to what generation needs.
type RecordTypeInfo struct {
	RecordTypeID  string
	Name          string
	DeveloperName string
	Active        bool
	Master        bool
}

// Schema is the parsed form of one object's describe metadata.
type Schema struct {
	ObjectName  string
	Fields      []FieldDefinition
	RecordTypes []RecordTypeInfo
}

// LocaleParams controls variable-length text generation. Weights select the
// character pool per generated rune and do not need to sum to 1.
type LocaleParams struct {
	HiraganaWeight float64 `json:"hiragana_weight" yaml:"hiragana_weight"`
	KatakanaWeight float64 `json:"katakana_weight" yaml:"katakana_weight"`
	KanjiWeight    float64 `json:"kanji_weight" yaml:"kanji_weight"`
	MinLength      int     `json:"min_length" yaml:"min_length"`
}

// DefaultLocaleParams mirrors the hiragana-heavy mix used for JIS text pools.
func DefaultLocaleParams() LocaleParams {
	return LocaleParams{
		HiraganaWeight: 0.45,
		KatakanaWeight: 0.45,
		KanjiWeight:    0.10,
		MinLength:      1,
	}
}

// Profile is the per-run configuration. All knobs are optional except Rows.
type Profile struct {
	ID               string            `json:"id" yaml:"id"`
	Name             string            `json:"name" yaml:"name"`
	Object           string            `json:"object,omitempty" yaml:"object,omitempty"`
	Rows             int               `json:"rows" yaml:"rows"`
	SkipFields       []string          `json:"skip_fields,omitempty" yaml:"skip_fields,omitempty"`
	PersonRecordType string            `json:"person_record_type,omitempty" yaml:"person_record_type,omitempty"`
	Locale           *LocaleParams     `json:"locale,omitempty" yaml:"locale,omitempty"`
	BooleanTrueBias  *float64          `json:"boolean_true_bias,omitempty" yaml:"boolean_true_bias,omitempty"`
	DateRangeStart   string            `json:"date_range_start,omitempty" yaml:"date_range_start,omitempty"`
	DateRangeEnd     string            `json:"date_range_end,omitempty" yaml:"date_range_end,omitempty"`
	Overrides        map[string]string `json:"overrides,omitempty" yaml:"overrides,omitempty"`
	PersonOnlyFields []string          `json:"person_only_fields,omitempty" yaml:"person_only_fields,omitempty"`
	BusinessOnly     []string          `json:"business_only_fields,omitempty" yaml:"business_only_fields,omitempty"`
	Seed             *int64            `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// Run is one recorded generation run.
type Run struct {
	ID          string     `json:"id"`
	Object      string     `json:"object"`
	Org         string     `json:"org,omitempty"`
	ProfileID   string     `json:"profile_id,omitempty"`
	Rows        int        `json:"rows"`
	Seed        int64      `json:"seed"`
	ConfigHash  string     `json:"config_hash"`
	CSVPath     string     `json:"csv_path,omitempty"`
	JobID       string     `json:"job_id,omitempty"`
	Status      RunStatus  `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
}

type RunStatus string

const (
	RunStatusRunning RunStatus = "running"
	RunStatusSuccess RunStatus = "success"
	RunStatusFailed  RunStatus = "failed"
)

// MultiPicklistSeparator is the platform's separator for multi-select values.
const MultiPicklistSeparator = ";"
