// Package registry provides the shared identity to action index used by
// every enhancement in a build.
//
// The registry is append-only. The first action registered under an
// identity wins; later registrations return that instance and drop their
// own. Inserts go through sync.Map.LoadOrStore, so concurrent callers racing
// on one identity all observe the same action and no half-registered entry
// is ever visible.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/bundlegraph/cli/internal/core"
	"github.com/bundlegraph/cli/internal/identity"
)

// Registry maps identities to realized actions.
type Registry struct {
	actions sync.Map // Key: identity.Key(), Value: *core.Action
	group   singleflight.Group

	size   atomic.Int64
	hits   atomic.Int64
	builds atomic.Int64
}

// Stats reports registry activity counters.
type Stats struct {
	// Actions is the number of registered actions.
	Actions int64
	// Hits counts lookups and inserts that found an existing action.
	Hits int64
	// Builds counts constructions run by GetOrCompute.
	Builds int64
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{}
}

// AddToIndex registers a under its identity and returns the registered
// instance. If the identity is already present the existing action is
// returned and a is discarded.
func (r *Registry) AddToIndex(a *core.Action) *core.Action {
	existing, loaded := r.actions.LoadOrStore(a.ID().Key(), a)
	if loaded {
		r.hits.Add(1)
		return existing.(*core.Action)
	}
	r.size.Add(1)
	return a
}

// Get returns the action registered under id.
func (r *Registry) Get(id identity.Identity) (*core.Action, bool) {
	v, ok := r.actions.Load(id.Key())
	if !ok {
		return nil, false
	}
	return v.(*core.Action), true
}

// Require returns the action registered under id or an error naming it.
func (r *Registry) Require(id identity.Identity) (*core.Action, error) {
	a, ok := r.Get(id)
	if !ok {
		return nil, fmt.Errorf("action %s is not registered", id)
	}
	return a, nil
}

// GetOrCompute returns the action registered under id, running build at
// most once per identity to create it. Concurrent callers for the same
// identity share one build. A failed build registers nothing, so a later
// call may try again.
//
// build must return an action whose identity equals id.
func (r *Registry) GetOrCompute(id identity.Identity, build func() (*core.Action, error)) (*core.Action, error) {
	if a, ok := r.Get(id); ok {
		r.hits.Add(1)
		return a, nil
	}

	v, err, _ := r.group.Do(id.Key(), func() (interface{}, error) {
		// A build for this key may have finished between the load above and
		// entering the group.
		if a, ok := r.Get(id); ok {
			r.hits.Add(1)
			return a, nil
		}

		r.builds.Add(1)
		a, err := build()
		if err != nil {
			return nil, err
		}
		if !a.ID().Equal(id) {
			return nil, fmt.Errorf("built action %s under identity %s", a.ID(), id)
		}
		return r.AddToIndex(a), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*core.Action), nil
}

// Len returns the number of registered actions.
func (r *Registry) Len() int {
	return int(r.size.Load())
}

// Actions returns every registered action sorted by identity key.
func (r *Registry) Actions() []*core.Action {
	var out []*core.Action
	r.actions.Range(func(_, v any) bool {
		out = append(out, v.(*core.Action))
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID().Key() < out[j].ID().Key() })
	return out
}

// Stats returns a snapshot of the activity counters.
func (r *Registry) Stats() Stats {
	return Stats{
		Actions: r.size.Load(),
		Hits:    r.hits.Load(),
		Builds:  r.builds.Load(),
	}
}
