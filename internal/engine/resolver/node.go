package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/mrmachine/reqs/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"github.com/mrmachine/reqs/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"github.com/mrmachine/reqs/internal/adapters/pypi"      //nolint:depguard // Wired in engine wiring
	"github.com/mrmachine/reqs/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"github.com/mrmachine/reqs/internal/core/ports"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			pypi.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Resolver, error) {
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}

			index, err := graft.Dep[ports.PackageIndex](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewResolver(
				index,
				telemetry,
				log,
				WithParallelism(settings.Parallelism),
				WithPreReleases(settings.AllowPreReleases),
			), nil
		},
	})
}
