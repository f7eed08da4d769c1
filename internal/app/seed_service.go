package app

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/mmrzaf/sfseed/internal/domain"
	"github.com/mmrzaf/sfseed/internal/hashing"
	"github.com/mmrzaf/sfseed/internal/infra/repos/runs"
	"github.com/mmrzaf/sfseed/internal/logging"
	"github.com/mmrzaf/sfseed/internal/output"
	"github.com/mmrzaf/sfseed/internal/registry"
	"github.com/mmrzaf/sfseed/internal/schema"
	"github.com/mmrzaf/sfseed/internal/serialize"
	"github.com/mmrzaf/sfseed/internal/sfcli"
	"github.com/mmrzaf/sfseed/internal/synth"
	"github.com/mmrzaf/sfseed/internal/validation"
)

// SeedRequest configures one end-to-end seeding run.
type SeedRequest struct {
	Object       string
	Profile      *domain.Profile
	DescribePath string // read describe from a local file instead of the org
	LineEnding   string
	WaitMinutes  int
	SkipImport   bool
	SQLiteDB     string // also load rows into this local database when set
}

// SeedService drives describe -> parse -> generate -> write -> import and
// records the run.
type SeedService struct {
	client      *sfcli.Client
	genRegistry *registry.GeneratorRegistry
	runRepo     runs.Repository
	layout      *output.Layout
	logger      *logging.Logger
}

func NewSeedService(client *sfcli.Client, genRegistry *registry.GeneratorRegistry, runRepo runs.Repository, layout *output.Layout, logger *logging.Logger) *SeedService {
	return &SeedService{
		client:      client,
		genRegistry: genRegistry,
		runRepo:     runRepo,
		layout:      layout,
		logger:      logger,
	}
}

// Generate runs the core pipeline against already-parsed schema metadata and
// streams rows into the sink. It returns the number of rows written.
func Generate(sc *domain.Schema, prof *domain.Profile, seed int64, reg *registry.GeneratorRegistry, sink interface {
	WriteHeader([]string) error
	WriteRow([]string) error
}) (int, error) {
	ctx, err := synth.BuildContext(sc, prof)
	if err != nil {
		return 0, err
	}

	rng := rand.New(rand.NewSource(seed))
	synthesizer := synth.NewSynthesizer(reg)
	serializer := serialize.NewSerializer()

	// The header comes from the schema, not the first record, so a zero-row
	// run still writes one.
	cols, err := synthesizer.Columns(sc, prof, ctx)
	if err != nil {
		return 0, err
	}
	serializer.SetHeader(cols)
	if err := sink.WriteHeader(cols); err != nil {
		return 0, err
	}

	written := 0
	err = synthesizer.Run(sc, prof, ctx, rng, func(row int, rec *domain.Record) error {
		values, err := serializer.Project(row, rec)
		if err != nil {
			return err
		}
		if err := sink.WriteRow(values); err != nil {
			return err
		}
		written++
		return nil
	})
	if err != nil {
		return written, err
	}
	return written, nil
}

// Seed performs the full orchestration. The returned run reflects the final
// status; a non-nil error always matches a failed run.
func (s *SeedService) Seed(ctx context.Context, req *SeedRequest) (*domain.Run, error) {
	prof := req.Profile
	if err := validation.ValidateProfile(prof); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	if req.Object == "" {
		req.Object = prof.Object
	}
	if req.Object == "" {
		return nil, errors.New("object is required")
	}
	if !validation.IsValidAPIName(req.Object) {
		return nil, fmt.Errorf("invalid object API name: %s", req.Object)
	}
	if req.LineEnding == "" {
		req.LineEnding = output.LineEndingLF
	}

	if err := s.layout.Init(); err != nil {
		return nil, fmt.Errorf("init results dirs: %w", err)
	}

	meta, raw, err := s.describe(ctx, req)
	if err != nil {
		return nil, err
	}
	if raw != nil {
		if err := os.WriteFile(s.layout.DescribePath(req.Object), raw, 0o644); err != nil {
			return nil, fmt.Errorf("save describe: %w", err)
		}
		s.logger.Info("Describe saved: %s", s.layout.DescribePath(req.Object))
	}

	rules := schema.DefaultRules()
	rules.Extend(prof.PersonOnlyFields, prof.BusinessOnly)
	sc, err := schema.Parse(meta, rules)
	if err != nil {
		return nil, err
	}

	seed := ResolveSeed(prof)
	configHash, err := hashing.HashRunConfig(req.Object, prof, seed)
	if err != nil {
		return nil, fmt.Errorf("hash run config: %w", err)
	}

	run := &domain.Run{
		Object:     req.Object,
		Org:        s.client.Org(),
		ProfileID:  prof.ID,
		Rows:       prof.Rows,
		Seed:       seed,
		ConfigHash: configHash,
		Status:     domain.RunStatusRunning,
		StartedAt:  time.Now(),
	}
	if s.runRepo != nil {
		if err := s.runRepo.Create(run); err != nil {
			return nil, fmt.Errorf("record run: %w", err)
		}
	}

	s.logger.Infow("run.started", map[string]any{
		"run_id": run.ID, "object": req.Object, "rows": prof.Rows, "seed": seed,
	})

	csvPath := s.layout.DataPath(req.Object)
	if err := s.generateCSV(sc, prof, seed, csvPath, req.LineEnding); err != nil {
		return run, s.fail(run, err)
	}
	run.CSVPath = csvPath
	s.logger.Info("Test data saved: %s", csvPath)

	if req.SQLiteDB != "" {
		if err := s.loadSQLite(sc, prof, seed, req.SQLiteDB); err != nil {
			return run, s.fail(run, err)
		}
	}

	if !req.SkipImport {
		jobID, err := s.client.BulkImport(ctx, req.Object, csvPath, req.LineEnding, req.WaitMinutes)
		if err != nil {
			var importErr *sfcli.ImportError
			if errors.As(err, &importErr) && len(importErr.Actions) > 0 {
				outputs := s.client.RunActions(ctx, importErr.Actions, s.layout.BulkResultDir())
				for cmd, out := range outputs {
					s.logger.Infow("run.fallback_action", map[string]any{"command": cmd, "output": out})
				}
			}
			return run, s.fail(run, err)
		}
		run.JobID = jobID
		s.logger.Info("Bulk import job: %s", jobID)

		if err := s.client.BulkResults(ctx, jobID, s.layout.BulkResultDir()); err != nil {
			return run, s.fail(run, err)
		}
	}

	now := time.Now()
	run.Status = domain.RunStatusSuccess
	run.CompletedAt = &now
	s.updateRun(run)
	s.logger.Infow("run.completed", map[string]any{
		"run_id": run.ID, "rows": prof.Rows, "duration_s": now.Sub(run.StartedAt).Seconds(),
	})
	return run, nil
}

func (s *SeedService) describe(ctx context.Context, req *SeedRequest) (*domain.DescribeMetadata, []byte, error) {
	if req.DescribePath != "" {
		raw, err := os.ReadFile(req.DescribePath)
		if err != nil {
			return nil, nil, fmt.Errorf("read describe: %w", err)
		}
		var meta domain.DescribeMetadata
		if err := json.Unmarshal(raw, &meta); err != nil {
			return nil, nil, fmt.Errorf("parse describe %s: %w", req.DescribePath, err)
		}
		return &meta, nil, nil
	}
	return s.client.Describe(ctx, req.Object)
}

// generateCSV writes all rows or no file at all: a partially written CSV
// must never be mistaken for usable data.
func (s *SeedService) generateCSV(sc *domain.Schema, prof *domain.Profile, seed int64, path, lineEnding string) error {
	sink, err := output.NewCSVFileSink(path, lineEnding)
	if err != nil {
		return err
	}

	_, genErr := Generate(sc, prof, seed, s.genRegistry, sink)
	closeErr := sink.Close()
	if genErr != nil {
		_ = os.Remove(path)
		return genErr
	}
	if closeErr != nil {
		_ = os.Remove(path)
		return closeErr
	}
	return nil
}

func (s *SeedService) loadSQLite(sc *domain.Schema, prof *domain.Profile, seed int64, dbPath string) error {
	sink := output.NewSQLiteSink(dbPath, sc.ObjectName)
	if err := sink.Open(); err != nil {
		return fmt.Errorf("open sqlite sink: %w", err)
	}
	_, genErr := Generate(sc, prof, seed, s.genRegistry, sink)
	closeErr := sink.Close()
	if genErr != nil {
		return genErr
	}
	return closeErr
}

func (s *SeedService) fail(run *domain.Run, err error) error {
	now := time.Now()
	run.Status = domain.RunStatusFailed
	run.Error = err.Error()
	run.CompletedAt = &now
	s.updateRun(run)
	s.logger.Errorw("run.failed", map[string]any{"run_id": run.ID, "error": err.Error()})
	return err
}

func (s *SeedService) updateRun(run *domain.Run) {
	if s.runRepo == nil {
		return
	}
	if err := s.runRepo.Update(run); err != nil {
		s.logger.Error("Failed to update run %s: %v", run.ID, err)
	}
}

// ResolveSeed returns the profile's seed when set, otherwise a fresh random
// one. Unseeded runs must differ from each other; callers record the result
// so any run stays replayable.
func ResolveSeed(prof *domain.Profile) int64 {
	if prof.Seed != nil {
		return *prof.Seed
	}
	var b [8]byte
	_, _ = crand.Read(b[:])
	return int64(binary.LittleEndian.Uint64(b[:]))
}
