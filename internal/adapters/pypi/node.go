package pypi

import (
	"context"
	"path/filepath"
	"time"

	"github.com/grindlemire/graft"
	"github.com/mrmachine/reqs/internal/adapters/config"
	"github.com/mrmachine/reqs/internal/core/ports"
)

// NodeID is the unique identifier for the package index Graft node.
const NodeID graft.ID = "adapter.package_index"

// StoreNodeID is the unique identifier for the record store Graft node.
const StoreNodeID graft.ID = "adapter.record_store"

func init() {
	graft.Register(graft.Node[ports.RecordStore]{
		ID:        StoreNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.RecordStore, error) {
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			if settings.NoCache {
				return NopStore{}, nil
			}
			return NewDiskStore(filepath.Join(settings.CacheDir, "records.json"))
		},
	})

	graft.Register(graft.Node[ports.PackageIndex]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, StoreNodeID},
		Run: func(ctx context.Context) (ports.PackageIndex, error) {
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.RecordStore](ctx)
			if err != nil {
				return nil, err
			}

			client := NewClient(settings.IndexURL, time.Duration(settings.TimeoutSeconds)*time.Second)
			return NewCachedIndex(client, store)
		},
	})
}
