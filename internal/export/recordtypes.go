package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

type recordTypesEnvelope struct {
	RecordTypeInfos json.RawMessage `json:"recordTypeInfos"`
}

// WriteRecordTypesCSV writes one row per record type. The nested urls map is
// flattened so each url key becomes its own column.
func WriteRecordTypesCSV(describeJSON []byte, w io.Writer) error {
	var env recordTypesEnvelope
	if err := json.Unmarshal(describeJSON, &env); err != nil {
		return fmt.Errorf("invalid describe JSON: %w", err)
	}
	if len(env.RecordTypeInfos) == 0 {
		return errors.New("describe JSON has no recordTypeInfos")
	}

	infos, err := decodeOrderedArray(env.RecordTypeInfos)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		return errors.New("recordTypeInfos is empty")
	}

	var columns []string
	seen := make(map[string]bool)
	addColumn := func(k string) {
		if !seen[k] {
			seen[k] = true
			columns = append(columns, k)
		}
	}

	urlKeys := make(map[int]map[string]string) // info index -> url key -> value
	for i, info := range infos {
		for _, k := range info.keys {
			if k == "urls" {
				raw, _ := info.get(k)
				var urls map[string]string
				if err := json.Unmarshal(raw, &urls); err == nil {
					urlKeys[i] = urls
					for _, uo := range orderedKeysOf(raw) {
						addColumn(uo)
					}
					continue
				}
			}
			addColumn(k)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for i, info := range infos {
		row := make([]string, len(columns))
		for c, col := range columns {
			if raw, ok := info.get(col); ok {
				row[c] = renderValue(raw)
				continue
			}
			if urls, ok := urlKeys[i]; ok {
				row[c] = urls[col]
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func orderedKeysOf(raw json.RawMessage) []string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	obj, err := decodeOrderedObject(dec)
	if err != nil {
		return nil
	}
	return obj.keys
}
