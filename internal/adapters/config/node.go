package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the settings Graft node.
const NodeID graft.ID = "adapter.settings"

func init() {
	graft.Register(graft.Node[*Settings]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Settings, error) {
			// The --config flag is applied later through App.ReloadSettings;
			// here only the environment can point at an explicit file.
			return Load(os.Getenv("REQS_CONFIG"))
		},
	})
}
