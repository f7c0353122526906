// Package lockio reads and writes lockfiles as YAML.
package lockio

import (
	"os"
	"path/filepath"

	"github.com/mrmachine/reqs/internal/core/domain"
	"github.com/mrmachine/reqs/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the lockfile written next to a manifest when no explicit
// output path is given.
const DefaultPath = "reqs.lock"

var _ ports.LockfileStore = (*Store)(nil)

// Store implements ports.LockfileStore with YAML files on disk.
type Store struct{}

// NewStore creates a Store.
func NewStore() *Store {
	return &Store{}
}

// Read loads the lockfile at the given path.
func (s *Store) Read(path string) (*domain.Lockfile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read lockfile")
	}

	var lock domain.Lockfile
	if err := yaml.Unmarshal(data, &lock); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse lockfile"), "file", path)
	}
	return &lock, nil
}

// Write persists the lockfile to the given path.
func (s *Store) Write(path string, lock *domain.Lockfile) error {
	data, err := yaml.Marshal(lock)
	if err != nil {
		return zerr.Wrap(err, "failed to marshal lockfile")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return zerr.Wrap(err, "failed to create lockfile directory")
		}
	}

	//nolint:gosec // path is provided by user
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write lockfile"), "file", path)
	}
	return nil
}
