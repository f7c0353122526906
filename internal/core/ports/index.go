package ports

import (
	"context"

	"github.com/mrmachine/reqs/internal/core/domain"
)

// PackageIndex looks up project metadata on a package registry.
//
//go:generate go run go.uber.org/mock/mockgen -source=index.go -destination=mocks/mock_index.go -package=mocks
type PackageIndex interface {
	// Project returns the record for the named project.
	// Returns domain.ErrPackageNotFound when the registry has no such project.
	Project(ctx context.Context, name domain.Name) (*domain.PackageRecord, error)
}
