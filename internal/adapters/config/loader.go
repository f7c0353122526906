// Package config provides the configuration loader for reqs.
//
// Settings come from a .reqs.yaml or .reqs.jsonc file (JSONC comments are
// stripped before parsing), with environment variables taking precedence.
// A .env file in the working directory is honored the same way.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/tidwall/jsonc"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// candidates are the config filenames discovered in the working directory,
// in priority order.
var candidates = []string{".reqs.yaml", ".reqs.yml", ".reqs.jsonc"}

// Load reads settings from the given path. An empty path discovers a config
// file in the working directory; absence of any config file is not an error.
func Load(path string) (*Settings, error) {
	s := &Settings{}

	if path == "" {
		path = discover()
	}
	if path != "" {
		if err := readFile(path, s); err != nil {
			return nil, err
		}
	}

	applyEnv(s)
	applyDefaults(s)
	return s, nil
}

func discover() string {
	for _, name := range candidates {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

func readFile(path string, s *Settings) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return zerr.Wrap(err, "failed to read config file")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonc", ".json":
		if err := json.Unmarshal(jsonc.ToJSON(data), s); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to parse config file"), "file", path)
		}
	default:
		if err := yaml.Unmarshal(data, s); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to parse config file"), "file", path)
		}
	}
	return nil
}

// applyEnv overlays REQS_* environment variables, loading a .env file first
// so local overrides work without exporting anything.
func applyEnv(s *Settings) {
	_ = godotenv.Load() // missing .env is fine

	if v := os.Getenv("REQS_INDEX_URL"); v != "" {
		s.IndexURL = v
	}
	if v := os.Getenv("REQS_CACHE_DIR"); v != "" {
		s.CacheDir = v
	}
	if v := os.Getenv("REQS_PARALLELISM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.Parallelism = n
		}
	}
	if v := os.Getenv("REQS_NO_CACHE"); v != "" {
		s.NoCache = v == "1" || strings.EqualFold(v, "true")
	}
}

func applyDefaults(s *Settings) {
	if s.Parallelism <= 0 {
		s.Parallelism = runtime.NumCPU()
	}
	if s.TimeoutSeconds <= 0 {
		s.TimeoutSeconds = 30
	}
	if s.CacheDir == "" {
		if base, err := os.UserCacheDir(); err == nil {
			s.CacheDir = filepath.Join(base, "reqs")
		} else {
			s.CacheDir = ".reqs-cache"
		}
	}
}
