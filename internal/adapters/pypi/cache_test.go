package pypi_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mrmachine/reqs/internal/adapters/pypi"
	"github.com/mrmachine/reqs/internal/core/domain"
	"github.com/mrmachine/reqs/internal/core/ports"
	"github.com/mrmachine/reqs/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCachedIndex_FetchesUpstreamOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	name := domain.NewName("Django")
	record := &domain.PackageRecord{Name: "Django", Latest: "1.3.1", Versions: []string{"1.3", "1.3.1"}}

	upstream := mocks.NewMockPackageIndex(ctrl)
	upstream.EXPECT().Project(gomock.Any(), name).Return(record, nil).Times(1)

	index, err := pypi.NewCachedIndex(upstream, nil)
	require.NoError(t, err)

	for range 3 {
		got, err := index.Project(context.Background(), name)
		require.NoError(t, err)
		assert.Equal(t, record, got)
	}
}

func TestCachedIndex_ConsultsStoreBeforeUpstream(t *testing.T) {
	ctrl := gomock.NewController(t)
	name := domain.NewName("Pygments")
	record := &domain.PackageRecord{Name: "Pygments", Latest: "1.4"}

	upstream := mocks.NewMockPackageIndex(ctrl)
	store := mocks.NewMockRecordStore(ctrl)
	store.EXPECT().Get(name).Return(record, nil)

	index, err := pypi.NewCachedIndex(upstream, store)
	require.NoError(t, err)

	got, err := index.Project(context.Background(), name)
	require.NoError(t, err)
	assert.Equal(t, record, got)

	// Second lookup hits the memory cache, not the store.
	got, err = index.Project(context.Background(), name)
	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestCachedIndex_PersistsUpstreamResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	name := domain.NewName("docutils")
	record := &domain.PackageRecord{Name: "docutils", Latest: "0.8"}

	upstream := mocks.NewMockPackageIndex(ctrl)
	store := mocks.NewMockRecordStore(ctrl)
	gomock.InOrder(
		store.EXPECT().Get(name).Return(nil, nil),
		upstream.EXPECT().Project(gomock.Any(), name).Return(record, nil),
		store.EXPECT().Put(name, *record).Return(nil),
	)

	index, err := pypi.NewCachedIndex(upstream, store)
	require.NoError(t, err)

	got, err := index.Project(context.Background(), name)
	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestCachedIndex_MarksVertexCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	name := domain.NewName("micawber")
	record := &domain.PackageRecord{Name: "micawber"}

	upstream := mocks.NewMockPackageIndex(ctrl)
	upstream.EXPECT().Project(gomock.Any(), name).Return(record, nil)

	index, err := pypi.NewCachedIndex(upstream, nil)
	require.NoError(t, err)

	_, err = index.Project(context.Background(), name)
	require.NoError(t, err)

	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Cached()

	ctx := ports.ContextWithVertex(context.Background(), vertex)
	_, err = index.Project(ctx, name)
	require.NoError(t, err)
}

func TestDiskStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "records.json")
	store, err := pypi.NewDiskStore(path)
	require.NoError(t, err)

	name := domain.NewName("django-mptt")
	record := domain.PackageRecord{Name: "django-mptt", Latest: "0.5.2", Versions: []string{"0.5.1", "0.5.2"}}
	require.NoError(t, store.Put(name, record))

	reopened, err := pypi.NewDiskStore(path)
	require.NoError(t, err)

	got, err := reopened.Get(name)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, record, *got)

	missing, err := reopened.Get(domain.NewName("absent"))
	require.NoError(t, err)
	assert.Nil(t, missing)
}
