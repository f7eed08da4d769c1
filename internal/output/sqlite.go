package output

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteSink loads generated rows into a local SQLite table so a run can be
// inspected with SQL before importing it anywhere. All columns are TEXT:
// the rows are already platform-format literals.
type SQLiteSink struct {
	path   string
	table  string
	db     *sql.DB
	header []string
	batch  [][]string
}

const sqliteBatchSize = 500

func NewSQLiteSink(path, table string) *SQLiteSink {
	return &SQLiteSink{path: path, table: table}
}

func (s *SQLiteSink) Open() error {
	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return err
	}
	s.db = db
	return nil
}

func (s *SQLiteSink) WriteHeader(header []string) error {
	s.header = header

	cols := make([]string, len(header))
	for i, name := range header {
		cols[i] = fmt.Sprintf("%q TEXT", name)
	}
	_, err := s.db.Exec(fmt.Sprintf("CREATE TABLE IF NOT EXISTS %q (%s)",
		s.table, strings.Join(cols, ", ")))
	return err
}

func (s *SQLiteSink) WriteRow(values []string) error {
	s.batch = append(s.batch, values)
	if len(s.batch) >= sqliteBatchSize {
		return s.flush()
	}
	return nil
}

func (s *SQLiteSink) flush() error {
	if len(s.batch) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	quoted := make([]string, len(s.header))
	placeholders := make([]string, len(s.header))
	for i, name := range s.header {
		quoted[i] = fmt.Sprintf("%q", name)
		placeholders[i] = "?"
	}

	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %q (%s) VALUES (%s)",
		s.table, strings.Join(quoted, ", "), strings.Join(placeholders, ", ")))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range s.batch {
		args := make([]interface{}, len(row))
		for i, v := range row {
			args[i] = v
		}
		if _, err := stmt.Exec(args...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.batch = s.batch[:0]
	return nil
}

func (s *SQLiteSink) Close() error {
	err := s.flush()
	if s.db != nil {
		if cerr := s.db.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
