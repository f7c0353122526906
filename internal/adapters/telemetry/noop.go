// Package telemetry provides Telemetry implementations that are not tied to
// a specific recording backend.
package telemetry

import (
	"context"

	"github.com/mrmachine/reqs/internal/core/ports"
)

var _ ports.Telemetry = (*Noop)(nil)

// Noop is a Telemetry implementation that records nothing. It keeps engine
// code free of nil checks in tests and quiet environments.
type Noop struct{}

// NewNoop creates a Noop telemetry.
func NewNoop() *Noop {
	return &Noop{}
}

// Record returns the context unchanged and a vertex that discards everything.
func (n *Noop) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, noopVertex{}
}

// Close is a no-op.
func (n *Noop) Close() error {
	return nil
}

type noopVertex struct{}

func (noopVertex) Log(string)     {}
func (noopVertex) Cached()        {}
func (noopVertex) Complete(error) {}
