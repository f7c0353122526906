// Package ports defines the interfaces between the core domain and the adapters.
package ports

import "github.com/mrmachine/reqs/internal/core/domain"

// ManifestLoader parses a requirements manifest from disk.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest_loader.go -destination=mocks/mock_manifest_loader.go -package=mocks
type ManifestLoader interface {
	// Load reads and parses the manifest at the given path,
	// following include directives relative to it.
	Load(path string) (*domain.Manifest, error)
}
