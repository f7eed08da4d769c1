package export

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// WriteMarkdown renders a describe payload (or any JSON document) as
// markdown: nested objects become headings, lists of objects become tables,
// scalars become bullet points. Keys are sorted for stable output.
func WriteMarkdown(describeJSON []byte, w io.Writer) error {
	var doc interface{}
	if err := json.Unmarshal(describeJSON, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	_, err := io.WriteString(w, toMarkdown(doc, 0))
	return err
}

func toMarkdown(v interface{}, depth int) string {
	indent := strings.Repeat("  ", depth)
	var b strings.Builder

	switch val := v.(type) {
	case map[string]interface{}:
		keys := sortedKeys(val)
		for _, k := range keys {
			child := val[k]
			switch child.(type) {
			case map[string]interface{}, []interface{}:
				fmt.Fprintf(&b, "%s## %s\n\n", indent, k)
				b.WriteString(toMarkdown(child, depth+1))
			default:
				fmt.Fprintf(&b, "%s- **%s**: %s\n", indent, k, scalar(child))
			}
		}
		b.WriteString("\n")

	case []interface{}:
		if len(val) == 0 {
			return ""
		}
		if objs, ok := allObjects(val); ok {
			headers := collectKeys(objs)
			fmt.Fprintf(&b, "%s| %s |\n", indent, strings.Join(headers, " | "))
			seps := make([]string, len(headers))
			for i := range seps {
				seps[i] = "----"
			}
			fmt.Fprintf(&b, "%s| %s |\n", indent, strings.Join(seps, " | "))
			for _, obj := range objs {
				cells := make([]string, len(headers))
				for i, h := range headers {
					cells[i] = scalar(obj[h])
				}
				fmt.Fprintf(&b, "%s| %s |\n", indent, strings.Join(cells, " | "))
			}
			b.WriteString("\n")
			break
		}
		for _, item := range val {
			switch item.(type) {
			case map[string]interface{}, []interface{}:
				fmt.Fprintf(&b, "%s-\n", indent)
				b.WriteString(toMarkdown(item, depth+1))
			default:
				fmt.Fprintf(&b, "%s- %s\n", indent, scalar(item))
			}
		}
		b.WriteString("\n")

	default:
		b.WriteString(indent + scalar(v) + "\n")
	}

	return b.String()
}

func allObjects(items []interface{}) ([]map[string]interface{}, bool) {
	objs := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, false
		}
		objs = append(objs, obj)
	}
	return objs, true
}

func collectKeys(objs []map[string]interface{}) []string {
	set := make(map[string]bool)
	for _, obj := range objs {
		for k := range obj {
			set[k] = true
		}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func scalar(v interface{}) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	}
}
