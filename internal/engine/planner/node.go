package planner

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/mrmachine/reqs/internal/adapters/pypi" //nolint:depguard // Wired in engine wiring
	"github.com/mrmachine/reqs/internal/core/ports"
)

// NodeID is the unique identifier for the planner Graft node.
const NodeID graft.ID = "engine.planner"

func init() {
	graft.Register(graft.Node[*Planner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			pypi.NodeID,
		},
		Run: func(ctx context.Context) (*Planner, error) {
			index, err := graft.Dep[ports.PackageIndex](ctx)
			if err != nil {
				return nil, err
			}
			return NewPlanner(index), nil
		},
	})
}
