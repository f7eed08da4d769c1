package runs

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/mmrzaf/sfseed/internal/domain"
)

type PostgresRepository struct {
	dsn string
	db  *sql.DB
}

func NewPostgresRepository(dsn string) *PostgresRepository {
	return &PostgresRepository{dsn: strings.TrimSpace(dsn)}
}

func (r *PostgresRepository) Init() error {
	if r.dsn == "" {
		return fmt.Errorf("runs db dsn is required")
	}
	db, err := sql.Open("postgres", r.dsn)
	if err != nil {
		return err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return err
	}
	r.db = db
	return r.applyMigrations()
}

func (r *PostgresRepository) applyMigrations() error {
	if _, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY)`); err != nil {
		return err
	}
	var cur int
	if err := r.db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&cur); err != nil {
		return err
	}

	type mig struct {
		v  int
		up func(*sql.DB) error
	}
	migs := []mig{
		{1, migrateV1Runs},
	}

	for _, m := range migs {
		if cur >= m.v {
			continue
		}
		if err := m.up(r.db); err != nil {
			return fmt.Errorf("migration %d failed: %w", m.v, err)
		}
		if _, err := r.db.Exec(`INSERT INTO schema_migrations(version) VALUES ($1)`, m.v); err != nil {
			return err
		}
		cur = m.v
	}
	return nil
}

func migrateV1Runs(db *sql.DB) error {
	if _, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		object TEXT NOT NULL,
		org TEXT,
		profile_id TEXT,
		rows BIGINT NOT NULL,
		seed BIGINT NOT NULL,
		config_hash TEXT NOT NULL,
		csv_path TEXT,
		job_id TEXT,
		status TEXT NOT NULL,
		started_at TIMESTAMPTZ NOT NULL,
		completed_at TIMESTAMPTZ,
		error TEXT
	)`); err != nil {
		return err
	}
	_, _ = db.Exec(`CREATE INDEX IF NOT EXISTS idx_runs_object_time ON runs(object, started_at DESC)`)
	return nil
}

func (r *PostgresRepository) Create(run *domain.Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	_, err := r.db.Exec(`
	INSERT INTO runs (
		id, object, org, profile_id, rows, seed, config_hash,
		csv_path, job_id, status, started_at, completed_at, error
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		run.ID, run.Object, run.Org, run.ProfileID, run.Rows, run.Seed, run.ConfigHash,
		run.CSVPath, run.JobID, run.Status, run.StartedAt, run.CompletedAt, run.Error,
	)
	return err
}

func (r *PostgresRepository) Update(run *domain.Run) error {
	_, err := r.db.Exec(`
	UPDATE runs SET
		status = $1, csv_path = $2, job_id = $3, completed_at = $4, error = $5
	WHERE id = $6`,
		run.Status, run.CSVPath, run.JobID, run.CompletedAt, run.Error, run.ID,
	)
	return err
}

const pgRunColumns = `
	SELECT id, object, org, profile_id, rows, seed, config_hash,
	       csv_path, job_id, status, started_at, completed_at, error
	FROM runs
`

func (r *PostgresRepository) Get(id string) (*domain.Run, error) {
	row := r.db.QueryRow(pgRunColumns+" WHERE id = $1", id)
	return scanPGRun(row.Scan)
}

func (r *PostgresRepository) List(limit int, status string) ([]*domain.Run, error) {
	if limit <= 0 {
		limit = 50
	}

	var (
		rows *sql.Rows
		err  error
	)
	if status != "" {
		rows, err = r.db.Query(pgRunColumns+" WHERE status = $1 ORDER BY started_at DESC LIMIT $2", status, limit)
	} else {
		rows, err = r.db.Query(pgRunColumns+" ORDER BY started_at DESC LIMIT $1", limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*domain.Run, 0)
	for rows.Next() {
		run, err := scanPGRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func scanPGRun(scan func(...interface{}) error) (*domain.Run, error) {
	var run domain.Run
	var org, profileID, csvPath, jobID, errStr sql.NullString
	var completedAt sql.NullTime

	err := scan(
		&run.ID, &run.Object, &org, &profileID, &run.Rows, &run.Seed, &run.ConfigHash,
		&csvPath, &jobID, &run.Status, &run.StartedAt, &completedAt, &errStr,
	)
	if err != nil {
		return nil, err
	}

	run.Org = org.String
	run.ProfileID = profileID.String
	run.CSVPath = csvPath.String
	run.JobID = jobID.String
	run.Error = errStr.String
	if completedAt.Valid {
		run.CompletedAt = &completedAt.Time
	}
	return &run, nil
}

func (r *PostgresRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
