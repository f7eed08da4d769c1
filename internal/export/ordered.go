package export

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// orderedObject is a JSON object with its key order preserved. encoding/json
// maps lose order, and these exports mirror the describe payload's layout,
// so objects are token-walked instead.
type orderedObject struct {
	keys   []string
	values map[string]json.RawMessage
}

func (o *orderedObject) get(key string) (json.RawMessage, bool) {
	v, ok := o.values[key]
	return v, ok
}

func decodeOrderedArray(data []byte) ([]orderedObject, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, fmt.Errorf("expected array, got %v", tok)
	}

	var out []orderedObject
	for dec.More() {
		obj, err := decodeOrderedObject(dec)
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	return out, nil
}

func decodeOrderedObject(dec *json.Decoder) (orderedObject, error) {
	obj := orderedObject{values: make(map[string]json.RawMessage)}

	tok, err := dec.Token()
	if err != nil {
		return obj, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return obj, fmt.Errorf("expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return obj, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return obj, fmt.Errorf("expected object key, got %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return obj, err
		}

		if _, seen := obj.values[key]; !seen {
			obj.keys = append(obj.keys, key)
		}
		obj.values[key] = raw
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return obj, err
	}
	return obj, nil
}

// renderValue flattens a raw JSON value into a CSV cell: strings unquoted,
// null empty, everything else compact JSON.
func renderValue(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
