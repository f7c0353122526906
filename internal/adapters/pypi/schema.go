package pypi

// projectResponse is the JSON shape of the registry's per-project endpoint.
type projectResponse struct {
	Info     projectInfo                  `json:"info"`
	Releases map[string][]releaseArtifact `json:"releases"`
}

type projectInfo struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	RequiresDist []string `json:"requires_dist"`
}

// releaseArtifact is one uploaded file of a release. Only presence matters
// here; releases without artifacts are still considered known versions.
type releaseArtifact struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}
