package serialize

import (
	"fmt"

	"github.com/mmrzaf/sfseed/internal/domain"
)

// Serializer projects records into value slices ordered by the header the
// first record establishes. It works one record at a time so callers can
// stream rows to a sink without holding the row set in memory.
type Serializer struct {
	header []string
}

func NewSerializer() *Serializer {
	return &Serializer{}
}

// SetHeader fixes the column order up front. Every projected record is then
// validated against it, the first one included.
func (s *Serializer) SetHeader(cols []string) {
	s.header = make([]string, len(cols))
	copy(s.header, cols)
}

// Header returns the established column order, nil before the first record.
func (s *Serializer) Header() []string {
	if s.header == nil {
		return nil
	}
	out := make([]string, len(s.header))
	copy(out, s.header)
	return out
}

// Project returns the record's values in header order. The first record
// fixes the header; any later record with a diverging field set fails.
func (s *Serializer) Project(row int, rec *domain.Record) ([]string, error) {
	if s.header == nil {
		s.header = rec.Fields()
	}

	if rec.Len() != len(s.header) {
		return nil, &domain.SerializationError{
			Row:    row,
			Reason: fmt.Sprintf("record has %d fields, header has %d", rec.Len(), len(s.header)),
		}
	}

	values := make([]string, len(s.header))
	for i, name := range s.header {
		v, ok := rec.Get(name)
		if !ok {
			return nil, &domain.SerializationError{
				Row:    row,
				Reason: fmt.Sprintf("field %q missing from record", name),
			}
		}
		values[i] = v
	}
	return values, nil
}
