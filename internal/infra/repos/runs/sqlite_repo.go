package runs

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mmrzaf/sfseed/internal/domain"
)

type SQLiteRepository struct {
	dbPath string
	db     *sql.DB
}

func NewSQLiteRepository(dbPath string) *SQLiteRepository {
	return &SQLiteRepository{dbPath: dbPath}
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) Init() error {
	if dir := filepath.Dir(r.dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	db, err := sql.Open("sqlite3", r.dbPath)
	if err != nil {
		return err
	}
	r.db = db

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		object TEXT NOT NULL,
		org TEXT,
		profile_id TEXT,
		rows INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		config_hash TEXT NOT NULL,
		csv_path TEXT,
		job_id TEXT,
		status TEXT NOT NULL,
		started_at TIMESTAMP NOT NULL,
		completed_at TIMESTAMP,
		error TEXT
	)`

	_, err = r.db.Exec(createTableSQL)
	return err
}

func (r *SQLiteRepository) Create(run *domain.Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	var completedAt interface{}
	if run.CompletedAt != nil {
		completedAt = run.CompletedAt.Format(time.RFC3339)
	}

	query := `
		INSERT INTO runs (
			id, object, org, profile_id, rows, seed, config_hash,
			csv_path, job_id, status, started_at, completed_at, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		run.ID, run.Object, run.Org, run.ProfileID, run.Rows, run.Seed, run.ConfigHash,
		run.CSVPath, run.JobID, run.Status,
		run.StartedAt.Format(time.RFC3339), completedAt, run.Error,
	)
	return err
}

func (r *SQLiteRepository) Update(run *domain.Run) error {
	var completedAt interface{}
	if run.CompletedAt != nil {
		completedAt = run.CompletedAt.Format(time.RFC3339)
	}

	query := `
		UPDATE runs SET
			status = ?, csv_path = ?, job_id = ?, completed_at = ?, error = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query, run.Status, run.CSVPath, run.JobID, completedAt, run.Error, run.ID)
	return err
}

const sqliteRunColumns = `
	SELECT id, object, org, profile_id, rows, seed, config_hash,
	       csv_path, job_id, status, started_at, completed_at, error
	FROM runs
`

func (r *SQLiteRepository) Get(id string) (*domain.Run, error) {
	row := r.db.QueryRow(sqliteRunColumns+" WHERE id = ?", id)
	return scanSQLiteRun(row.Scan)
}

func (r *SQLiteRepository) List(limit int, status string) ([]*domain.Run, error) {
	query := sqliteRunColumns
	args := make([]interface{}, 0)
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY started_at DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*domain.Run, 0)
	for rows.Next() {
		run, err := scanSQLiteRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func scanSQLiteRun(scan func(...interface{}) error) (*domain.Run, error) {
	var run domain.Run
	var org, profileID, csvPath, jobID, errStr sql.NullString
	var startedAtStr string
	var completedAtStr sql.NullString

	err := scan(
		&run.ID, &run.Object, &org, &profileID, &run.Rows, &run.Seed, &run.ConfigHash,
		&csvPath, &jobID, &run.Status, &startedAtStr, &completedAtStr, &errStr,
	)
	if err != nil {
		return nil, err
	}

	run.Org = org.String
	run.ProfileID = profileID.String
	run.CSVPath = csvPath.String
	run.JobID = jobID.String
	run.Error = errStr.String
	run.StartedAt, _ = time.Parse(time.RFC3339, startedAtStr)
	if completedAtStr.Valid {
		t, _ := time.Parse(time.RFC3339, completedAtStr.String)
		run.CompletedAt = &t
	}
	return &run, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
