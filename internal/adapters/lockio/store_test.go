package lockio_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mrmachine/reqs/internal/adapters/lockio"
	"github.com/mrmachine/reqs/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reqs.lock")
	store := lockio.NewStore()

	lock := &domain.Lockfile{
		Version:      domain.LockfileVersion,
		ManifestHash: "0123456789abcdef",
		Pinned: []domain.Pinned{
			{Name: "Django", Version: "1.3.1"},
			{Name: "Pygments", Version: "1.4"},
			{
				Name:     "django_form_designer-dev",
				Source:   "git+https://github.com/philomat/django-form-designer.git",
				Editable: true,
			},
		},
	}

	require.NoError(t, store.Write(path, lock))

	got, err := store.Read(path)
	require.NoError(t, err)
	assert.Equal(t, lock, got)
}

func TestStore_Read_Missing(t *testing.T) {
	store := lockio.NewStore()
	_, err := store.Read(filepath.Join(t.TempDir(), "missing.lock"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStore_Write_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "reqs.lock")
	store := lockio.NewStore()

	lock := &domain.Lockfile{Version: domain.LockfileVersion, ManifestHash: "aa"}
	require.NoError(t, store.Write(path, lock))

	_, err := os.Stat(path)
	require.NoError(t, err)
}
