package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// PackageNode is one package in the dependency graph together with the
// packages it depends on.
type PackageNode struct {
	// Name is the canonical package name.
	Name Name

	// DisplayName is the name as declared in the manifest.
	DisplayName string

	// Version is the resolved version, empty for source entries.
	Version string

	// Dependencies are the canonical names of required packages.
	Dependencies []Name
}

// Graph is a dependency graph of packages. Install order is computed by
// Validate and exposed through Walk.
type Graph struct {
	nodes        map[Name]PackageNode
	installOrder []Name
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[Name]PackageNode),
	}
}

// AddNode adds a package to the graph.
// It returns ErrDuplicateNode if the package is already present.
func (g *Graph) AddNode(n PackageNode) error {
	if _, exists := g.nodes[n.Name]; exists {
		return zerr.With(ErrDuplicateNode, "package", n.Name.String())
	}
	g.nodes[n.Name] = n
	return nil
}

// NodeCount returns the number of packages in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// Validate checks for cycles and missing dependencies using a depth-first
// topological sort, and populates the install order. Roots are visited in
// sorted name order so the resulting order is deterministic.
func (g *Graph) Validate() error {
	g.installOrder = make([]Name, 0, len(g.nodes))
	state := make(map[Name]int, len(g.nodes)) // 0 unvisited, 1 visiting, 2 done
	var path []Name

	var visit func(u Name) error
	visit = func(u Name) error {
		state[u] = 1
		path = append(path, u)

		node, exists := g.nodes[u]
		if !exists {
			return zerr.With(ErrMissingDependency, "dependency", u.String())
		}

		for _, dep := range node.Dependencies {
			switch state[dep] {
			case 1:
				return cycleError(path, dep)
			case 0:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		state[u] = 2
		path = path[:len(path)-1]
		g.installOrder = append(g.installOrder, u)
		return nil
	}

	roots := make([]Name, 0, len(g.nodes))
	for name := range g.nodes {
		roots = append(roots, name)
	}
	slices.SortFunc(roots, func(a, b Name) int {
		return strings.Compare(a.String(), b.String())
	})

	for _, name := range roots {
		if state[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}
	return nil
}

func cycleError(path []Name, dep Name) error {
	start := slices.Index(path, dep)
	parts := make([]string, 0, len(path)-start+1)
	for _, n := range path[start:] {
		parts = append(parts, n.String())
	}
	parts = append(parts, dep.String())
	return zerr.With(ErrCycleDetected, "cycle", strings.Join(parts, " -> "))
}

// Walk returns an iterator yielding packages in install order: every package
// is yielded after all of its dependencies. Validate must have succeeded.
func (g *Graph) Walk() iter.Seq[PackageNode] {
	return func(yield func(PackageNode) bool) {
		for _, name := range g.installOrder {
			if !yield(g.nodes[name]) {
				return
			}
		}
	}
}

// Dependents returns the packages that directly depend on the given package.
func (g *Graph) Dependents(name Name) []Name {
	var out []Name
	for _, node := range g.nodes {
		if slices.Contains(node.Dependencies, name) {
			out = append(out, node.Name)
		}
	}
	slices.SortFunc(out, func(a, b Name) int {
		return strings.Compare(a.String(), b.String())
	})
	return out
}
