package pypi

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mrmachine/reqs/internal/core/domain"
	"github.com/mrmachine/reqs/internal/core/ports"
	"go.trai.ch/zerr"
)

const memoryCacheSize = 256

var _ ports.PackageIndex = (*CachedIndex)(nil)

// CachedIndex layers an in-memory LRU and a persistent record store in front
// of another package index. Lookup order: memory, disk, upstream.
type CachedIndex struct {
	upstream ports.PackageIndex
	store    ports.RecordStore
	mem      *lru.Cache[domain.Name, *domain.PackageRecord]
}

// NewCachedIndex wraps the upstream index. The store may be nil to cache in
// memory only.
func NewCachedIndex(upstream ports.PackageIndex, store ports.RecordStore) (*CachedIndex, error) {
	mem, err := lru.New[domain.Name, *domain.PackageRecord](memoryCacheSize)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create memory cache")
	}
	return &CachedIndex{
		upstream: upstream,
		store:    store,
		mem:      mem,
	}, nil
}

// Project returns the record for the named project, consulting the caches
// before the upstream index.
func (c *CachedIndex) Project(ctx context.Context, name domain.Name) (*domain.PackageRecord, error) {
	if record, ok := c.mem.Get(name); ok {
		markCached(ctx)
		return record, nil
	}

	if c.store != nil {
		record, err := c.store.Get(name)
		if err != nil {
			return nil, err
		}
		if record != nil {
			c.mem.Add(name, record)
			markCached(ctx)
			return record, nil
		}
	}

	record, err := c.upstream.Project(ctx, name)
	if err != nil {
		return nil, err
	}

	c.mem.Add(name, record)
	if c.store != nil {
		if err := c.store.Put(name, *record); err != nil {
			return nil, err
		}
	}
	return record, nil
}

func markCached(ctx context.Context) {
	if v := ports.VertexFromContext(ctx); v != nil {
		v.Cached()
	}
}
