package app

import (
	"context"
	"path/filepath"
	"time"

	"github.com/grindlemire/graft"
	"github.com/mrmachine/reqs/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"github.com/mrmachine/reqs/internal/adapters/lockio"  //nolint:depguard // Wired in app layer
	"github.com/mrmachine/reqs/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"github.com/mrmachine/reqs/internal/adapters/pypi"    //nolint:depguard // Wired in app layer
	"github.com/mrmachine/reqs/internal/adapters/reqfile" //nolint:depguard // Wired in app layer
	"github.com/mrmachine/reqs/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"github.com/mrmachine/reqs/internal/core/ports"
	"github.com/mrmachine/reqs/internal/engine/planner"
	"github.com/mrmachine/reqs/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			reqfile.NodeID,
			lockio.NodeID,
			logger.NodeID,
			progrock.NodeID,
			resolver.NodeID,
			planner.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:    application,
				Logger: log,
			}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	settings, err := graft.Dep[*config.Settings](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.ManifestLoader](ctx)
	if err != nil {
		return nil, err
	}

	locks, err := graft.Dep[ports.LockfileStore](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	res, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	plan, err := graft.Dep[*planner.Planner](ctx)
	if err != nil {
		return nil, err
	}

	factory := newEngineFactory(log)

	return New(loader, locks, log, tel, settings, res, plan, factory), nil
}

// newEngineFactory builds resolvers and planners outside the Graft graph,
// for configuration reloads, per-manifest index overrides and progress
// recording.
func newEngineFactory(log ports.Logger) EngineFactory {
	return func(settings *config.Settings, indexURL string, tel ports.Telemetry) (*resolver.Resolver, *planner.Planner, error) {
		var store ports.RecordStore
		if !settings.NoCache {
			diskStore, err := pypi.NewDiskStore(filepath.Join(settings.CacheDir, "records.json"))
			if err != nil {
				return nil, nil, err
			}
			store = diskStore
		}

		client := pypi.NewClient(indexURL, time.Duration(settings.TimeoutSeconds)*time.Second)
		index, err := pypi.NewCachedIndex(client, store)
		if err != nil {
			return nil, nil, err
		}

		res := resolver.NewResolver(
			index,
			tel,
			log,
			resolver.WithParallelism(settings.Parallelism),
			resolver.WithPreReleases(settings.AllowPreReleases),
		)
		return res, planner.NewPlanner(index), nil
	}
}
