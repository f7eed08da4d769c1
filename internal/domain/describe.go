package domain

// DescribeMetadata is the raw shape of an `sf sobject describe` payload,
// reduced to the attributes generation cares about.
type DescribeMetadata struct {
	Name            string                 `json:"name"`
	Label           string                 `json:"label"`
	Fields          []DescribeField        `json:"fields"`
	RecordTypeInfos []DescribeRecordType   `json:"recordTypeInfos"`
	URLs            map[string]string      `json:"urls,omitempty"`
	Extra           map[string]interface{} `json:"-"`
}

type DescribeField struct {
	Name              string          `json:"name"`
	Label             string          `json:"label"`
	Type              string          `json:"type"`
	Length            int             `json:"length"`
	Precision         int             `json:"precision"`
	Scale             int             `json:"scale"`
	Digits            int             `json:"digits"`
	Nillable          bool            `json:"nillable"`
	Unique            bool            `json:"unique"`
	Calculated        bool            `json:"calculated"`
	Createable        bool            `json:"createable"`
	CompoundFieldName string          `json:"compoundFieldName"`
	PicklistValues    []PicklistEntry `json:"picklistValues"`
	ReferenceTo       []string        `json:"referenceTo"`
}

type PicklistEntry struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

type DescribeRecordType struct {
	RecordTypeID             string `json:"recordTypeId"`
	Name                     string `json:"name"`
	DeveloperName            string `json:"developerName"`
	Active                   bool   `json:"active"`
	Master                   bool   `json:"master"`
	DefaultRecordTypeMapping bool   `json:"defaultRecordTypeMapping"`
}
