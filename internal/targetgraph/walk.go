package targetgraph

import (
	"fmt"

	"github.com/bundlegraph/cli/internal/identity"
)

// PostOrder visits the transitive closure of roots exactly once per node and
// returns nodes with every dependency before its dependents. Children are
// visited in Deps order and roots in the order given, so the result is a
// pure function of the graph.
//
// skip, when non-nil, prunes a node and everything reachable only through it.
func PostOrder(acc Accessor, roots []identity.Identity, skip func(identity.Identity) bool) ([]*Node, error) {
	w := &walker{
		acc:   acc,
		skip:  skip,
		state: make(map[string]visitState),
	}
	for _, root := range roots {
		if err := w.visit(root, identity.Identity{}); err != nil {
			return nil, err
		}
	}
	return w.order, nil
}

type visitState int

const (
	unvisited visitState = iota
	visiting
	visited
)

type walker struct {
	acc   Accessor
	skip  func(identity.Identity) bool
	state map[string]visitState
	stack []identity.Identity
	order []*Node
}

func (w *walker) visit(id, parent identity.Identity) error {
	key := id.Key()
	switch w.state[key] {
	case visited:
		return nil
	case visiting:
		return &CycleError{Cycle: w.cycleTo(id)}
	}
	if w.skip != nil && w.skip(id) {
		return nil
	}

	n, ok := w.acc.Node(id)
	if !ok {
		if parent.IsZero() {
			return &GraphConsistencyError{Node: id, Message: "target is not declared"}
		}
		return &GraphConsistencyError{
			Node:    parent,
			Message: fmt.Sprintf("depends on undeclared target %s", id),
		}
	}

	w.state[key] = visiting
	w.stack = append(w.stack, id)
	for _, dep := range n.Deps() {
		if err := w.visit(dep, id); err != nil {
			return err
		}
	}
	w.stack = w.stack[:len(w.stack)-1]
	w.state[key] = visited
	w.order = append(w.order, n)
	return nil
}

func (w *walker) cycleTo(id identity.Identity) []string {
	start := 0
	for i, s := range w.stack {
		if s.Equal(id) {
			start = i
			break
		}
	}
	cycle := make([]string, 0, len(w.stack)-start+1)
	for _, s := range w.stack[start:] {
		cycle = append(cycle, s.String())
	}
	return append(cycle, id.String())
}
