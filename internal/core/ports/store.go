package ports

import "github.com/mrmachine/reqs/internal/core/domain"

// RecordStore persists package records between runs so repeated checks do not
// hit the registry.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RecordStore interface {
	// Get retrieves the stored record for a package name.
	// Returns nil, nil if not found.
	Get(name domain.Name) (*domain.PackageRecord, error)

	// Put stores a record.
	Put(name domain.Name, record domain.PackageRecord) error
}

// LockfileStore reads and writes lockfiles.
type LockfileStore interface {
	// Read loads the lockfile at the given path.
	Read(path string) (*domain.Lockfile, error)

	// Write persists the lockfile to the given path.
	Write(path string, lock *domain.Lockfile) error
}
