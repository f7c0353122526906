package domain

import "errors"

// Sentinels are plain stdlib errors. zerr.With upgrades a non-zerr error by
// wrapping it before attaching metadata, which keeps the sentinel reachable
// through errors.Is; calling With on a zerr-built sentinel would copy it
// without a cause link and break the chain.
var (
	// ErrMalformedRequirement is returned when a manifest line cannot be parsed
	// as a requirement.
	ErrMalformedRequirement = errors.New("malformed requirement")

	// ErrMalformedSpecifier is returned when a version constraint clause is invalid.
	ErrMalformedSpecifier = errors.New("malformed version specifier")

	// ErrMalformedVersion is returned when a version string cannot be parsed.
	ErrMalformedVersion = errors.New("malformed version")

	// ErrMalformedSource is returned when a direct source reference is invalid,
	// e.g. an editable line without an egg-fragment name binding.
	ErrMalformedSource = errors.New("malformed source reference")

	// ErrPackageNotFound is returned when the package index has no project
	// with the requested name.
	ErrPackageNotFound = errors.New("package not found")

	// ErrNoMatchingVersion is returned when no known version of a package
	// satisfies the declared specifiers.
	ErrNoMatchingVersion = errors.New("no matching version")

	// ErrMissingDependency is returned when a graph node references a
	// dependency that is not part of the graph.
	ErrMissingDependency = errors.New("missing dependency")

	// ErrCycleDetected is returned when the dependency graph contains a cycle.
	ErrCycleDetected = errors.New("cycle detected")

	// ErrDuplicateNode is returned when a package is added to a graph twice.
	ErrDuplicateNode = errors.New("duplicate graph node")

	// ErrLockfileStale is returned when a lockfile no longer matches the
	// manifest it was generated from.
	ErrLockfileStale = errors.New("lockfile is stale")

	// ErrUnsupportedScheme is returned for source references using a VCS
	// scheme the toolkit does not recognize.
	ErrUnsupportedScheme = errors.New("unsupported source scheme")
)
