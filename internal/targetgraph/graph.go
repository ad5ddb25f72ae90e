package targetgraph

import (
	"fmt"

	"github.com/bundlegraph/cli/internal/identity"
)

// Graph is an in-memory Accessor. Targets keep the order they were added.
type Graph struct {
	nodes map[string]*Node
	order []identity.Identity
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// Add declares a target. Declaring the same identity twice is an error.
func (g *Graph) Add(n *Node) error {
	key := n.ID.Key()
	if _, exists := g.nodes[key]; exists {
		return fmt.Errorf("target %s declared more than once", n.ID)
	}
	g.nodes[key] = n
	g.order = append(g.order, n.ID)
	return nil
}

// MustAdd is like Add but panics on error.
func (g *Graph) MustAdd(nodes ...*Node) *Graph {
	for _, n := range nodes {
		if err := g.Add(n); err != nil {
			panic(err)
		}
	}
	return g
}

// Node implements Accessor.
func (g *Graph) Node(id identity.Identity) (*Node, bool) {
	n, ok := g.nodes[id.Key()]
	return n, ok
}

// Targets returns every declared identity in declaration order.
func (g *Graph) Targets() []identity.Identity {
	return append([]identity.Identity(nil), g.order...)
}

// TargetsOfType returns the identities of every target with rule type t.
func (g *Graph) TargetsOfType(t RuleType) []identity.Identity {
	var out []identity.Identity
	for _, id := range g.order {
		if g.nodes[id.Key()].Type == t {
			out = append(out, id)
		}
	}
	return out
}

// Len returns the number of declared targets.
func (g *Graph) Len() int {
	return len(g.order)
}

// TopologicalOrder returns every target with dependencies before their
// dependents, using Kahn's algorithm. Targets at the same level keep
// declaration order. Dangling dependencies and cycles are reported.
func (g *Graph) TopologicalOrder() ([]identity.Identity, error) {
	inDegree := make(map[string]int, len(g.order))
	dependents := make(map[string][]string, len(g.order))
	for _, id := range g.order {
		for _, dep := range g.nodes[id.Key()].Deps() {
			if _, ok := g.nodes[dep.Key()]; !ok {
				return nil, &GraphConsistencyError{
					Node:    id,
					Message: fmt.Sprintf("depends on undeclared target %s", dep),
				}
			}
			inDegree[id.Key()]++
			dependents[dep.Key()] = append(dependents[dep.Key()], id.Key())
		}
	}

	queue := make([]string, 0)
	for _, id := range g.order {
		if inDegree[id.Key()] == 0 {
			queue = append(queue, id.Key())
		}
	}

	result := make([]identity.Identity, 0, len(g.order))
	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]
		result = append(result, g.nodes[key].ID)

		for _, dependent := range dependents[key] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(g.order) {
		var cycle []string
		for _, id := range g.order {
			if inDegree[id.Key()] > 0 {
				cycle = append(cycle, id.String())
			}
		}
		return nil, &CycleError{Cycle: cycle}
	}
	return result, nil
}
