package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mrmachine/reqs/internal/adapters/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_YAML(t *testing.T) {
	content := `
indexUrl: https://pypi.example.org
cacheDir: /tmp/reqs-cache
parallelism: 4
allowPreReleases: true
`
	path := filepath.Join(t.TempDir(), ".reqs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://pypi.example.org", s.IndexURL)
	assert.Equal(t, "/tmp/reqs-cache", s.CacheDir)
	assert.Equal(t, 4, s.Parallelism)
	assert.True(t, s.AllowPreReleases)
	assert.Equal(t, 30, s.TimeoutSeconds) // default applied
}

func TestLoad_JSONCWithComments(t *testing.T) {
	content := `{
	// internal mirror
	"indexUrl": "https://mirror.example.org",
	"parallelism": 2, // keep load low
}`
	path := filepath.Join(t.TempDir(), ".reqs.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://mirror.example.org", s.IndexURL)
	assert.Equal(t, 2, s.Parallelism)
}

func TestLoad_EnvOverrides(t *testing.T) {
	content := "indexUrl: https://from-file.example.org\n"
	path := filepath.Join(t.TempDir(), ".reqs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("REQS_INDEX_URL", "https://from-env.example.org")
	t.Setenv("REQS_PARALLELISM", "3")

	s, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://from-env.example.org", s.IndexURL)
	assert.Equal(t, 3, s.Parallelism)
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	s, err := config.Load("")
	require.NoError(t, err)

	assert.Positive(t, s.Parallelism)
	assert.NotEmpty(t, s.CacheDir)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".reqs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("indexUrl: [broken\n"), 0o600))

	_, err := config.Load(path)
	require.Error(t, err)
}
