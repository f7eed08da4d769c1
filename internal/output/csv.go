package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Line-ending conventions accepted by the bulk import command.
const (
	LineEndingLF   = "LF"
	LineEndingCRLF = "CRLF"
)

// CSVSink streams a header and rows to an underlying writer with a
// configurable line ending.
type CSVSink struct {
	w       *csv.Writer
	closer  io.Closer
	wroteHd bool
}

func NewCSVSink(w io.Writer, lineEnding string) (*CSVSink, error) {
	cw := csv.NewWriter(w)
	switch lineEnding {
	case "", LineEndingLF:
	case LineEndingCRLF:
		cw.UseCRLF = true
	default:
		return nil, fmt.Errorf("unknown line ending: %s", lineEnding)
	}
	return &CSVSink{w: cw}, nil
}

// NewCSVFileSink creates the file and owns closing it.
func NewCSVFileSink(path, lineEnding string) (*CSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	sink, err := NewCSVSink(f, lineEnding)
	if err != nil {
		f.Close()
		return nil, err
	}
	sink.closer = f
	return sink, nil
}

func (s *CSVSink) WriteHeader(header []string) error {
	if s.wroteHd {
		return nil
	}
	s.wroteHd = true
	return s.w.Write(header)
}

func (s *CSVSink) WriteRow(values []string) error {
	return s.w.Write(values)
}

func (s *CSVSink) Close() error {
	s.w.Flush()
	err := s.w.Error()
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
