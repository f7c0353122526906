package domain

// LockfileVersion is the current lockfile format version.
const LockfileVersion = 1

// Lockfile is a reproducible snapshot of a resolved manifest. It records the
// manifest fingerprint it was generated from so staleness can be detected
// without touching the network.
type Lockfile struct {
	// Version is the lockfile format version, allowing future migrations.
	Version int `yaml:"version"`

	// ManifestHash is the fingerprint of the manifest at lock time.
	ManifestHash string `yaml:"manifestHash"`

	// Pinned are the resolved entries in manifest order.
	Pinned []Pinned `yaml:"packages"`
}

// Matches reports whether the lockfile was generated from a manifest with
// the given fingerprint.
func (l *Lockfile) Matches(fingerprint string) bool {
	return l.ManifestHash == fingerprint
}
