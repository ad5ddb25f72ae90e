package targetgraph

import (
	"fmt"
	"strings"

	oerrors "github.com/bundlegraph/cli/internal/errors"
	"github.com/bundlegraph/cli/internal/identity"
)

// GraphConsistencyError reports a broken invariant of the resolved graph.
type GraphConsistencyError struct {
	Node    identity.Identity
	Message string
}

// Error implements the error interface.
func (e *GraphConsistencyError) Error() string {
	return fmt.Sprintf("inconsistent graph at %s: %s", e.Node, e.Message)
}

// Is matches errors.ErrGraphConsistency.
func (e *GraphConsistencyError) Is(target error) bool {
	return target == oerrors.ErrGraphConsistency
}

// CycleError indicates that the graph contains a dependency cycle.
type CycleError struct {
	// Cycle lists the targets forming the cycle.
	Cycle []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

// Is matches errors.ErrGraphConsistency.
func (e *CycleError) Is(target error) bool {
	return target == oerrors.ErrGraphConsistency
}
