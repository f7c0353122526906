package reqfile

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/mrmachine/reqs/internal/core/ports"
)

// NodeID is the unique identifier for the manifest loader Graft node.
const NodeID graft.ID = "adapter.manifest_loader"

func init() {
	graft.Register(graft.Node[ports.ManifestLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ManifestLoader, error) {
			return NewFileLoader(), nil
		},
	})
}
