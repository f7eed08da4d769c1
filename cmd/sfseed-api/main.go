package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/mmrzaf/sfseed/internal/api"
	"github.com/mmrzaf/sfseed/internal/config"
	"github.com/mmrzaf/sfseed/internal/infra/repos/runs"
	"github.com/mmrzaf/sfseed/internal/logging"
	"github.com/mmrzaf/sfseed/internal/profile"
	"github.com/mmrzaf/sfseed/internal/registry"
)

func main() {
	cfg := config.Load()

	profilesDir := flag.String("profiles-dir", cfg.ProfilesDir, "Profiles directory")
	runsDB := flag.String("db", cfg.RunsDBDSN, "Run history database DSN (PostgreSQL)")
	bindAddr := flag.String("bind", cfg.BindAddr, "Bind address")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level")
	flag.Parse()

	logger := logging.NewLogger(*logLevel).WithComponent("api_main")

	profileRepo := profile.NewFileRepository(*profilesDir)

	runRepo := runs.NewPostgresRepository(*runsDB)
	if err := runRepo.Init(); err != nil {
		logger.Errorw("startup.failed", map[string]any{"error": err.Error(), "stage": "init_run_repo"})
		os.Exit(1)
	}
	defer runRepo.Close()

	genRegistry := registry.DefaultGeneratorRegistry()
	handler := api.NewHandler(profileRepo, runRepo, genRegistry)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/profiles", handler.ListProfiles)
	mux.HandleFunc("GET /api/v1/profiles/{id}", handler.GetProfile)

	mux.HandleFunc("GET /api/v1/runs", handler.ListRuns)
	mux.HandleFunc("GET /api/v1/runs/{id}", handler.GetRun)

	mux.HandleFunc("POST /api/v1/generate", handler.Generate)

	logger.Infow("startup.listening", map[string]any{"bind": *bindAddr})
	if err := http.ListenAndServe(*bindAddr, loggingMiddleware(logger.WithComponent("http"), mux)); err != nil {
		logger.Errorw("startup.failed", map[string]any{"error": err.Error(), "stage": "listen"})
		os.Exit(1)
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		fields := map[string]any{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      sw.status,
			"duration_ms": time.Since(started).Milliseconds(),
			"remote":      r.RemoteAddr,
		}
		if sw.status >= 500 {
			logger.Errorw("request.completed", fields)
			return
		}
		if sw.status >= 400 {
			logger.Warnw("request.completed", fields)
			return
		}
		logger.Infow("request.completed", fields)
	})
}
