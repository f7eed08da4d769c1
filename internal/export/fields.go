package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

type describeEnvelope struct {
	Fields json.RawMessage `json:"fields"`
}

func fieldsArray(describeJSON []byte) ([]orderedObject, error) {
	var env describeEnvelope
	if err := json.Unmarshal(describeJSON, &env); err != nil {
		return nil, fmt.Errorf("invalid describe JSON: %w", err)
	}
	if len(env.Fields) == 0 {
		return nil, errors.New("describe JSON has no 'fields' section")
	}
	return decodeOrderedArray(env.Fields)
}

// Priority columns for the fields table; remaining keys keep payload order.
var fieldColumnPriority = []string{
	"label", "name", "nillable", "length", "precision", "scale", "picklistValues",
}

// WriteFieldsCSV writes one row per field with columns ordered by the
// priority list, then by first appearance in the payload.
func WriteFieldsCSV(describeJSON []byte, w io.Writer) error {
	fields, err := fieldsArray(describeJSON)
	if err != nil {
		return err
	}

	var encountered []string
	seen := make(map[string]bool)
	for _, f := range fields {
		for _, k := range f.keys {
			if !seen[k] {
				seen[k] = true
				encountered = append(encountered, k)
			}
		}
	}

	var columns []string
	inPriority := make(map[string]bool)
	for _, k := range fieldColumnPriority {
		if seen[k] {
			columns = append(columns, k)
			inPriority[k] = true
		}
	}
	for _, k := range encountered {
		if !inPriority[k] {
			columns = append(columns, k)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, f := range fields {
		row := make([]string, len(columns))
		for i, k := range columns {
			if raw, ok := f.get(k); ok {
				row[i] = renderValue(raw)
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFieldPropertiesCSV writes the transposed view: one row per property,
// one column per field. labelsJSON, when given, is a second describe whose
// field labels translate the column headers.
func WriteFieldPropertiesCSV(describeJSON, labelsJSON []byte, w io.Writer) error {
	fields, err := fieldsArray(describeJSON)
	if err != nil {
		return err
	}

	labelMap := make(map[string]string)
	if len(labelsJSON) > 0 {
		labelFields, err := fieldsArray(labelsJSON)
		if err != nil {
			return err
		}
		for _, f := range labelFields {
			name := stringValue(f, "name")
			if name == "" {
				continue
			}
			if label := stringValue(f, "label"); label != "" {
				labelMap[name] = label
			}
		}
	}

	var props []string
	seen := make(map[string]bool)
	for _, f := range fields {
		for _, k := range f.keys {
			if !seen[k] {
				seen[k] = true
				props = append(props, k)
			}
		}
	}

	header := []string{"Property"}
	for _, f := range fields {
		name := stringValue(f, "name")
		if label, ok := labelMap[name]; ok {
			header = append(header, label)
		} else {
			header = append(header, name)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, prop := range props {
		row := make([]string, 0, len(fields)+1)
		row = append(row, prop)
		for _, f := range fields {
			if raw, ok := f.get(prop); ok {
				row = append(row, renderValue(raw))
			} else {
				row = append(row, "")
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func stringValue(obj orderedObject, key string) string {
	raw, ok := obj.get(key)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
