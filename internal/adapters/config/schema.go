package config

// Settings is the tool configuration read from .reqs.yaml or .reqs.jsonc.
type Settings struct {
	// IndexURL is the package index base URL. Empty selects the public index.
	// A manifest "--index-url" line takes precedence over this value.
	IndexURL string `yaml:"indexUrl" json:"indexUrl"`

	// CacheDir is where package records are persisted between runs.
	CacheDir string `yaml:"cacheDir" json:"cacheDir"`

	// Parallelism bounds concurrent index lookups. Zero means NumCPU.
	Parallelism int `yaml:"parallelism" json:"parallelism"`

	// TimeoutSeconds bounds a single index request. Zero means 30 seconds.
	TimeoutSeconds int `yaml:"timeoutSeconds" json:"timeoutSeconds"`

	// AllowPreReleases lets resolution pick pre-release versions even when a
	// final release matches.
	AllowPreReleases bool `yaml:"allowPreReleases" json:"allowPreReleases"`

	// NoCache disables the record store, forcing fresh index lookups.
	NoCache bool `yaml:"noCache" json:"noCache"`
}
