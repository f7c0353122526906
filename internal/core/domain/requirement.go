// Package domain contains the core domain model for requirement manifests:
// requirements, version specifiers, source references, lockfiles and the
// package dependency graph.
package domain

import "strings"

// Source is a direct source-control reference declared in place of a
// registry lookup, e.g.
// "git+https://github.com/philomat/django-form-designer.git".
type Source struct {
	// VCS is the version control system, e.g. "git", "hg", "svn", "bzr".
	VCS string

	// URL is the repository location, without the VCS prefix.
	URL string

	// Ref is the revision, branch or tag appended with "@", empty if unpinned.
	Ref string

	// Editable marks a development install: the installer checks the
	// repository out instead of fetching a released distribution.
	Editable bool
}

// IsZero reports whether the source is unset.
func (s Source) IsZero() bool {
	return s.VCS == "" && s.URL == ""
}

// String renders the source reference in manifest syntax, without the
// editable marker or egg fragment.
func (s Source) String() string {
	if s.IsZero() {
		return ""
	}
	out := s.VCS + "+" + s.URL
	if s.Ref != "" {
		out += "@" + s.Ref
	}
	return out
}

// Requirement is one dependency entry of a manifest: a package name with
// either an optional version constraint or a direct source reference.
// Requirements are immutable once parsed.
type Requirement struct {
	// RawName is the name exactly as written in the manifest (or bound by an
	// egg fragment for source entries).
	RawName string

	// Extras are the optional feature groups requested in brackets,
	// e.g. "secure" in "requests[secure]".
	Extras []string

	// Specifiers constrain acceptable versions. Empty means any version.
	Specifiers SpecifierSet

	// Source is set for entries installed straight from a repository.
	// A requirement carries either specifiers or a source, never both.
	Source Source

	// Comment is the free-text purpose annotation from a trailing "#" comment.
	Comment string

	// Line is the 1-based line number of the entry in its manifest file.
	Line int
}

// Name returns the canonical, interned package name.
func (r *Requirement) Name() Name {
	return NewName(r.RawName)
}

// String renders the requirement in manifest syntax, without its comment.
func (r *Requirement) String() string {
	if !r.Source.IsZero() {
		var b strings.Builder
		if r.Source.Editable {
			b.WriteString("-e ")
		}
		b.WriteString(r.Source.String())
		b.WriteString("#egg=")
		b.WriteString(r.RawName)
		return b.String()
	}

	var b strings.Builder
	b.WriteString(r.RawName)
	if len(r.Extras) > 0 {
		b.WriteString("[")
		b.WriteString(strings.Join(r.Extras, ","))
		b.WriteString("]")
	}
	b.WriteString(r.Specifiers.String())
	return b.String()
}

// Pinned is a requirement resolved to one exact version, or carried through
// verbatim for source entries (fetching a repository is the installer's job).
type Pinned struct {
	// Name is the package name as declared.
	Name string `yaml:"name"`

	// Version is the selected version, empty for source entries.
	Version string `yaml:"version,omitempty"`

	// Source is the direct source reference for editable/VCS entries.
	Source string `yaml:"source,omitempty"`

	// Editable marks a development install.
	Editable bool `yaml:"editable,omitempty"`
}
