package pypi

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/mrmachine/reqs/internal/core/domain"
	"github.com/mrmachine/reqs/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.RecordStore = (*DiskStore)(nil)
	_ ports.RecordStore = NopStore{}
)

// NopStore satisfies ports.RecordStore when persistent caching is disabled.
type NopStore struct{}

// Get always reports a cache miss.
func (NopStore) Get(domain.Name) (*domain.PackageRecord, error) { return nil, nil }

// Put discards the record.
func (NopStore) Put(domain.Name, domain.PackageRecord) error { return nil }

// DiskStore implements ports.RecordStore using a flat JSON file, so package
// records survive between runs.
type DiskStore struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.PackageRecord
}

// NewDiskStore creates a RecordStore backed by the file at the given path.
func NewDiskStore(path string) (*DiskStore, error) {
	s := &DiskStore{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.PackageRecord),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *DiskStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // path is derived from the configured cache dir
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read record store")
	}
	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.Wrap(err, "failed to unmarshal record store")
	}
	return nil
}

func (s *DiskStore) save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal record store")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create record store directory")
	}

	//nolint:gosec // path is derived from the configured cache dir
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write record store")
	}
	return nil
}

// Get retrieves the stored record for a package name.
func (s *DiskStore) Get(name domain.Name) (*domain.PackageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.cache[name.String()]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Put stores a record.
func (s *DiskStore) Put(name domain.Name, record domain.PackageRecord) error {
	s.mu.Lock()
	s.cache[name.String()] = record
	s.mu.Unlock()

	return s.save()
}
