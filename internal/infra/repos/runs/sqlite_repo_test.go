package runs

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mmrzaf/sfseed/internal/domain"
)

func openRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo := NewSQLiteRepository(filepath.Join(t.TempDir(), "runs.db"))
	if err := repo.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestInitCreatesParentDirectory(t *testing.T) {
	t.Parallel()

	repo := NewSQLiteRepository(filepath.Join(t.TempDir(), "nested", "deeper", "runs.db"))
	if err := repo.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if repo.DB() == nil {
		t.Fatal("expected db handle to be initialized")
	}
	t.Cleanup(func() { _ = repo.Close() })
}

func TestCreateAssignsIDAndRoundTrips(t *testing.T) {
	t.Parallel()

	repo := openRepo(t)

	run := &domain.Run{
		Object:     "Account",
		Org:        "dev",
		ProfileID:  "accounts",
		Rows:       100,
		Seed:       42,
		ConfigHash: "abc123",
		Status:     domain.RunStatusRunning,
		StartedAt:  time.Now().UTC().Truncate(time.Second),
	}
	if err := repo.Create(run); err != nil {
		t.Fatalf("create: %v", err)
	}
	if run.ID == "" {
		t.Fatal("create did not assign an ID")
	}

	got, err := repo.Get(run.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Object != "Account" || got.Rows != 100 || got.Seed != 42 || got.Status != domain.RunStatusRunning {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !got.StartedAt.Equal(run.StartedAt) {
		t.Errorf("started_at %v != %v", got.StartedAt, run.StartedAt)
	}
	if got.CompletedAt != nil {
		t.Errorf("completed_at should be nil, got %v", got.CompletedAt)
	}
}

func TestUpdateCompletesRun(t *testing.T) {
	t.Parallel()

	repo := openRepo(t)

	run := &domain.Run{Object: "Contact", Rows: 5, Seed: 1, ConfigHash: "h",
		Status: domain.RunStatusRunning, StartedAt: time.Now().UTC()}
	if err := repo.Create(run); err != nil {
		t.Fatalf("create: %v", err)
	}

	done := time.Now().UTC().Truncate(time.Second)
	run.Status = domain.RunStatusSuccess
	run.JobID = "750xx1"
	run.CSVPath = "/results/data/Contact.csv"
	run.CompletedAt = &done
	if err := repo.Update(run); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.Get(run.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.RunStatusSuccess || got.JobID != "750xx1" {
		t.Errorf("update not persisted: %+v", got)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(done) {
		t.Errorf("completed_at = %v, want %v", got.CompletedAt, done)
	}
}

func TestListFiltersAndLimits(t *testing.T) {
	t.Parallel()

	repo := openRepo(t)

	statuses := []domain.RunStatus{
		domain.RunStatusSuccess, domain.RunStatusFailed, domain.RunStatusSuccess,
	}
	for i, st := range statuses {
		run := &domain.Run{Object: "Account", Rows: i, Seed: int64(i), ConfigHash: "h",
			Status: st, StartedAt: time.Now().UTC().Add(time.Duration(i) * time.Second)}
		if err := repo.Create(run); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	all, err := repo.List(10, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(all))
	}
	if !all[0].StartedAt.After(all[1].StartedAt) {
		t.Error("list should be newest first")
	}

	failed, err := repo.List(10, string(domain.RunStatusFailed))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(failed) != 1 || failed[0].Status != domain.RunStatusFailed {
		t.Errorf("status filter: %+v", failed)
	}

	limited, err := repo.List(2, "")
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limit ignored: got %d", len(limited))
	}
}

func TestGetUnknownID(t *testing.T) {
	t.Parallel()

	repo := openRepo(t)
	if _, err := repo.Get("missing"); err == nil {
		t.Fatal("expected error for unknown run")
	}
}
