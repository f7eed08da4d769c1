package config

import (
	"bufio"
	"os"
	"strings"
)

type Config struct {
	ResultsDir  string
	ProfilesDir string
	RunsDBPath  string
	RunsDBDSN   string
	LogLevel    string
	BindAddr    string
	SFBin       string
	DefaultOrg  string
}

// Load reads configuration from the environment, falling back to a .env file
// in the working directory, then to defaults.
func Load() *Config {
	env := loadDotEnv(".env")

	get := func(key, def string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		if v, ok := env[key]; ok && v != "" {
			return v
		}
		return def
	}

	return &Config{
		ResultsDir:  get("SFSEED_RESULTS_DIR", "./results"),
		ProfilesDir: get("SFSEED_PROFILES_DIR", "./profiles"),
		RunsDBPath:  get("SFSEED_RUNS_DB", "./sfseed-runs.sqlite"),
		RunsDBDSN:   get("SFSEED_DB", ""),
		LogLevel:    get("SFSEED_LOG_LEVEL", "info"),
		BindAddr:    get("SFSEED_BIND_ADDR", ":8080"),
		SFBin:       get("SFSEED_SF_BIN", "sf"),
		DefaultOrg:  get("SFSEED_DEFAULT_ORG", ""),
	}
}

// loadDotEnv parses KEY=VALUE lines; comments and blank lines are skipped.
// A missing file is not an error.
func loadDotEnv(path string) map[string]string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	env := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		value = strings.Trim(value, `"'`)
		if key != "" {
			env[key] = value
		}
	}
	return env
}
