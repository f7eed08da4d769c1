package domain

import "fmt"

// SchemaError reports malformed or incomplete field metadata. It is fatal:
// no rows are generated once parsing fails.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("schema: %s", e.Reason)
	}
	return fmt.Sprintf("schema: field %q: %s", e.Field, e.Reason)
}

// GenerationError reports a field whose constraints cannot be satisfied,
// e.g. an empty required picklist.
type GenerationError struct {
	Field  string
	Row    int
	Reason string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate: field %q, row %d: %s", e.Field, e.Row, e.Reason)
}

// ConsistencyError reports a cross-field invariant violated after generation.
type ConsistencyError struct {
	Field string
	Row   int
	Rule  string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("consistency: field %q, row %d: %s", e.Field, e.Row, e.Rule)
}

// SerializationError reports a row whose field set diverges from the header
// established at the first row.
type SerializationError struct {
	Row    int
	Reason string
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialize: row %d: %s", e.Row, e.Reason)
}
