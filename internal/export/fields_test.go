package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
)

const sampleDescribe = `{
  "name": "Account",
  "fields": [
    {"aggregatable": true, "name": "Name", "label": "Account Name", "type": "string", "length": 255, "nillable": false},
    {"aggregatable": false, "name": "Industry", "label": "Industry", "type": "picklist", "nillable": true,
     "picklistValues": [{"value": "Banking", "active": true}]}
  ],
  "recordTypeInfos": [
    {"recordTypeId": "012B", "name": "Business", "developerName": "Business", "active": true, "master": false,
     "urls": {"layout": "/services/data/v60.0/sobjects/Account/describe/layouts/012B"}},
    {"recordTypeId": "012M", "name": "Master", "developerName": "Master", "active": true, "master": true,
     "urls": {"layout": "/services/data/v60.0/sobjects/Account/describe/layouts/012M"}}
  ]
}`

func parseCSV(t *testing.T, data string) [][]string {
	t.Helper()
	rows, err := csv.NewReader(strings.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	return rows
}

func TestWriteFieldsCSVColumnOrder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteFieldsCSV([]byte(sampleDescribe), &buf); err != nil {
		t.Fatalf("write: %v", err)
	}

	rows := parseCSV(t, buf.String())
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}

	header := rows[0]
	// Priority columns first, then remaining keys in encounter order.
	for i, want := range []string{"label", "name", "nillable", "length", "picklistValues"} {
		if header[i] != want {
			t.Fatalf("header[%d] = %q, want %q (full: %v)", i, header[i], want, header)
		}
	}
	if header[5] != "aggregatable" || header[6] != "type" {
		t.Errorf("trailing columns out of order: %v", header)
	}

	if rows[1][0] != "Account Name" || rows[1][1] != "Name" {
		t.Errorf("first field row = %v", rows[1])
	}
	if rows[2][3] != "" {
		t.Errorf("Industry has no length, got %q", rows[2][3])
	}
}

func TestWriteFieldsCSVErrors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteFieldsCSV([]byte(`{"name":"X"}`), &buf); err == nil {
		t.Error("expected error for describe without fields")
	}
	if err := WriteFieldsCSV([]byte(`not json`), &buf); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestWriteFieldPropertiesCSVTransposed(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteFieldPropertiesCSV([]byte(sampleDescribe), nil, &buf); err != nil {
		t.Fatalf("write: %v", err)
	}

	rows := parseCSV(t, buf.String())
	if rows[0][0] != "Property" || rows[0][1] != "Name" || rows[0][2] != "Industry" {
		t.Fatalf("header = %v", rows[0])
	}

	byProp := map[string][]string{}
	for _, r := range rows[1:] {
		byProp[r[0]] = r[1:]
	}
	if got := byProp["length"]; got[0] != "255" || got[1] != "" {
		t.Errorf("length row = %v", got)
	}
	if got := byProp["nillable"]; got[0] != "false" || got[1] != "true" {
		t.Errorf("nillable row = %v", got)
	}
}

func TestWriteFieldPropertiesCSVTranslatesHeaders(t *testing.T) {
	t.Parallel()

	labels := `{"fields": [
	  {"name": "Name", "label": "取引先名"},
	  {"name": "Industry", "label": "業種"}
	]}`

	var buf bytes.Buffer
	if err := WriteFieldPropertiesCSV([]byte(sampleDescribe), []byte(labels), &buf); err != nil {
		t.Fatalf("write: %v", err)
	}

	rows := parseCSV(t, buf.String())
	if rows[0][1] != "取引先名" || rows[0][2] != "業種" {
		t.Errorf("translated header = %v", rows[0])
	}
}

func TestWriteRecordTypesCSVFlattensURLs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteRecordTypesCSV([]byte(sampleDescribe), &buf); err != nil {
		t.Fatalf("write: %v", err)
	}

	rows := parseCSV(t, buf.String())
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}

	header := rows[0]
	hasLayout := false
	for _, h := range header {
		if h == "urls" {
			t.Error("urls map should be flattened, not emitted as a column")
		}
		if h == "layout" {
			hasLayout = true
		}
	}
	if !hasLayout {
		t.Errorf("missing flattened url column: %v", header)
	}

	if rows[1][0] != "012B" || rows[2][0] != "012M" {
		t.Errorf("record type rows = %v / %v", rows[1], rows[2])
	}
}
