// Package modulegraph partitions the dependency closure of a package target
// into logical modules. Exactly one module is the root; every other module is
// seeded from the package target's application_module_configs argument.
//
// Assignment:
//  1. Everything reachable from the package target without entering a
//     non-root seed belongs to root.
//  2. Each non-root module, in name order, claims what its seeds reach that
//     root did not.
//  3. Nodes claimed by two or more non-root modules are shared and move to
//     root.
package modulegraph

import (
	"fmt"
	"sort"

	oerrors "github.com/bundlegraph/cli/internal/errors"
	"github.com/bundlegraph/cli/internal/identity"
	"github.com/bundlegraph/cli/internal/targetgraph"
)

// RootModuleName names the root module.
const RootModuleName = "root"

// ModuleID names a module.
type ModuleID string

// Graph is the module partition of one package target's closure.
type Graph struct {
	pkg        identity.Identity
	root       ModuleID
	modules    []ModuleID
	assignment map[string]ModuleID
	ids        map[string]identity.Identity
	seeds      map[ModuleID][]identity.Identity
}

// New builds the module graph for the package target pkg.
func New(acc targetgraph.Accessor, pkg identity.Identity) (*Graph, error) {
	n, ok := acc.Node(pkg)
	if !ok {
		return nil, &targetgraph.GraphConsistencyError{Node: pkg, Message: "package target is not declared"}
	}

	g := &Graph{
		pkg:        pkg,
		root:       RootModuleName,
		modules:    []ModuleID{RootModuleName},
		assignment: make(map[string]ModuleID),
		ids:        make(map[string]identity.Identity),
		seeds:      make(map[ModuleID][]identity.Identity),
	}

	seedOwner, err := g.parseSeeds(acc, n.Args.ApplicationModuleConfigs)
	if err != nil {
		return nil, err
	}

	// Root pass: the package target and everything it reaches outside seeds.
	rootNodes, err := targetgraph.PostOrder(acc, []identity.Identity{pkg}, func(id identity.Identity) bool {
		_, isSeed := seedOwner[id.Key()]
		return isSeed
	})
	if err != nil {
		return nil, err
	}
	for _, rn := range rootNodes {
		g.assignment[rn.ID.Key()] = g.root
		g.ids[rn.ID.Key()] = rn.ID
	}

	// Module passes: record which modules reach each remaining node.
	claims := make(map[string][]ModuleID)
	for _, m := range g.modules[1:] {
		reached, err := targetgraph.PostOrder(acc, g.seeds[m], func(id identity.Identity) bool {
			return g.assignment[id.Key()] == g.root
		})
		if err != nil {
			return nil, err
		}
		for _, rn := range reached {
			claims[rn.ID.Key()] = append(claims[rn.ID.Key()], m)
			g.ids[rn.ID.Key()] = rn.ID
		}
	}
	for key, owners := range claims {
		if len(owners) == 1 {
			g.assignment[key] = owners[0]
		} else {
			g.assignment[key] = g.root
		}
	}

	return g, nil
}

func (g *Graph) parseSeeds(acc targetgraph.Accessor, configs map[string][]string) (map[string]ModuleID, error) {
	names := make([]string, 0, len(configs))
	for name := range configs {
		names = append(names, name)
	}
	sort.Strings(names)

	owner := make(map[string]ModuleID)
	for _, name := range names {
		if name == RootModuleName {
			return nil, oerrors.NewConfigurationError(
				fmt.Sprintf("module name %q is reserved for the root module", name),
				g.pkg.String(), "application_module_configs", "rename the module")
		}
		m := ModuleID(name)
		g.modules = append(g.modules, m)

		for _, raw := range configs[name] {
			seed, err := identity.Parse(raw)
			if err != nil {
				return nil, oerrors.NewConfigurationError(
					fmt.Sprintf("module %s: %v", name, err),
					g.pkg.String(), "application_module_configs", "")
			}
			if _, ok := acc.Node(seed); !ok {
				return nil, oerrors.NewConfigurationError(
					fmt.Sprintf("module %s is seeded with undeclared target %s", name, seed),
					g.pkg.String(), "application_module_configs", "declare the target or remove it from the module")
			}
			if prev, dup := owner[seed.Key()]; dup {
				return nil, oerrors.NewConfigurationError(
					fmt.Sprintf("target %s seeds both module %s and module %s", seed, prev, name),
					g.pkg.String(), "application_module_configs", "")
			}
			owner[seed.Key()] = m
			g.seeds[m] = append(g.seeds[m], seed)
		}
	}
	return owner, nil
}

// RootModule returns the root module.
func (g *Graph) RootModule() ModuleID {
	return g.root
}

// IsRoot reports whether m is the root module.
func (g *Graph) IsRoot(m ModuleID) bool {
	return m == g.root
}

// ModuleOf returns the module id belongs to. A node outside the partitioned
// closure is a graph consistency error.
func (g *Graph) ModuleOf(id identity.Identity) (ModuleID, error) {
	m, ok := g.assignment[id.Key()]
	if !ok {
		return "", &targetgraph.GraphConsistencyError{
			Node:    id,
			Message: fmt.Sprintf("not assigned to any module of %s", g.pkg),
		}
	}
	return m, nil
}

// Modules returns root first, then the other modules by name.
func (g *Graph) Modules() []ModuleID {
	return append([]ModuleID(nil), g.modules...)
}

// Members returns the identities assigned to m, sorted.
func (g *Graph) Members(m ModuleID) []identity.Identity {
	var out []identity.Identity
	for key, owner := range g.assignment {
		if owner == m {
			out = append(out, g.ids[key])
		}
	}
	identity.Sort(out)
	return out
}
