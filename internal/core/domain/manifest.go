package domain

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Manifest is an ordered sequence of requirements plus the options collected
// from option lines. Order is preserved for readability and reproducible
// output; it does not affect resolution semantics.
type Manifest struct {
	// Path is the file the manifest was read from, empty for in-memory input.
	Path string

	// Requirements are the entries in declaration order, includes flattened.
	Requirements []Requirement

	// IndexURL is the registry base URL from an "--index-url" line, if any.
	IndexURL string
}

// Fingerprint hashes the canonical entry sequence. Two manifests that declare
// the same entries in the same order share a fingerprint regardless of
// comments, blank lines or file layout, which makes it the staleness anchor
// for lockfiles.
func (m *Manifest) Fingerprint() string {
	h := xxhash.New()
	for i := range m.Requirements {
		r := &m.Requirements[i]
		_, _ = h.WriteString(r.Name().String())
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(r.Specifiers.String())
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(r.Source.String())
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// Find returns the requirement declaring the given package, or nil.
func (m *Manifest) Find(name Name) *Requirement {
	for i := range m.Requirements {
		if m.Requirements[i].Name() == name {
			return &m.Requirements[i]
		}
	}
	return nil
}

// PackageRecord is the index metadata for one project: its known versions and
// the (already name-only) requirements of its latest release.
type PackageRecord struct {
	// Name is the project name as reported by the index.
	Name string `json:"name"`

	// Latest is the version the index considers current.
	Latest string `json:"latest"`

	// Versions are all released version strings, unordered.
	Versions []string `json:"versions"`

	// Requires are the package names the latest release depends on.
	Requires []string `json:"requires"`
}
