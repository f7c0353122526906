// Package planner derives the install-order dependency graph for a manifest.
package planner

import (
	"context"

	"github.com/mrmachine/reqs/internal/core/domain"
	"github.com/mrmachine/reqs/internal/core/ports"
	"go.trai.ch/zerr"
)

// Planner builds the dependency graph between the packages a manifest
// declares. Dependencies on packages outside the manifest are not expanded,
// the manifest is treated as the complete set of top-level installs.
type Planner struct {
	index ports.PackageIndex
}

// NewPlanner creates a Planner backed by the given index.
func NewPlanner(index ports.PackageIndex) *Planner {
	return &Planner{index: index}
}

// BuildGraph constructs and validates the dependency graph for the manifest.
// Source entries become leaf nodes, their dependencies are only known at
// checkout time.
func (p *Planner) BuildGraph(ctx context.Context, manifest *domain.Manifest, pinned []domain.Pinned) (*domain.Graph, error) {
	declared := make(map[domain.Name]bool, len(manifest.Requirements))
	for i := range manifest.Requirements {
		declared[manifest.Requirements[i].Name()] = true
	}

	versions := make(map[domain.Name]string, len(pinned))
	for _, pin := range pinned {
		versions[domain.NewName(pin.Name)] = pin.Version
	}

	graph := domain.NewGraph()
	for i := range manifest.Requirements {
		req := &manifest.Requirements[i]

		node := domain.PackageNode{
			Name:        req.Name(),
			DisplayName: req.RawName,
			Version:     versions[req.Name()],
		}

		if req.Source.IsZero() {
			deps, err := p.dependencies(ctx, req.Name(), declared)
			if err != nil {
				return nil, err
			}
			node.Dependencies = deps
		}

		if err := graph.AddNode(node); err != nil {
			return nil, err
		}
	}

	if err := graph.Validate(); err != nil {
		return nil, err
	}
	return graph, nil
}

// dependencies returns the canonical names of the package's requirements
// that the manifest itself declares.
func (p *Planner) dependencies(ctx context.Context, name domain.Name, declared map[domain.Name]bool) ([]domain.Name, error) {
	record, err := p.index.Project(ctx, name)
	if err != nil {
		return nil, zerr.With(err, "package", name.String())
	}

	var deps []domain.Name
	for _, required := range record.Requires {
		dep := domain.NewName(required)
		if declared[dep] && dep != name {
			deps = append(deps, dep)
		}
	}
	return deps, nil
}

// InstallOrder returns the packages of a validated graph in install order.
func InstallOrder(graph *domain.Graph) []domain.PackageNode {
	out := make([]domain.PackageNode, 0, graph.NodeCount())
	for node := range graph.Walk() {
		out = append(out, node)
	}
	return out
}
