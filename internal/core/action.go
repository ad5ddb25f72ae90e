// Package core defines the action graph model produced by enhancement.
package core

import (
	"sort"

	"github.com/bundlegraph/cli/internal/identity"
)

// Output is one named output handle of an action. Most outputs carry a
// single path; set-valued outputs such as a classpath carry several.
type Output struct {
	Name  string
	Paths []SourcePath
}

// ActionSpec describes an action before construction.
type ActionSpec struct {
	ID           identity.Identity
	RuleType     string
	DeclaredDeps []identity.Identity
	ExtraDeps    []identity.Identity
	Outputs      map[string][]SourcePath
	Attrs        map[string]string
}

// Action is an immutable node in the executable build graph.
// Construct with NewAction; every accessor returns a copy.
type Action struct {
	id       identity.Identity
	ruleType string
	declared []identity.Identity
	extra    []identity.Identity
	outputs  []Output
	attrs    map[string]string
}

// NewAction builds an action from spec. Dependencies are deduplicated and
// sorted by canonical key, outputs are sorted by name, and the paths of
// each output keep the order given.
func NewAction(spec ActionSpec) *Action {
	a := &Action{
		id:       spec.ID,
		ruleType: spec.RuleType,
		declared: sortedDeps(spec.DeclaredDeps),
		extra:    sortedDeps(spec.ExtraDeps),
		attrs:    make(map[string]string, len(spec.Attrs)),
	}

	names := make([]string, 0, len(spec.Outputs))
	for name := range spec.Outputs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		paths := make([]SourcePath, len(spec.Outputs[name]))
		copy(paths, spec.Outputs[name])
		a.outputs = append(a.outputs, Output{Name: name, Paths: paths})
	}

	for k, v := range spec.Attrs {
		a.attrs[k] = v
	}
	return a
}

func sortedDeps(deps []identity.Identity) []identity.Identity {
	out := identity.Dedup(deps)
	identity.Sort(out)
	return out
}

// ID returns the action's identity.
func (a *Action) ID() identity.Identity {
	return a.id
}

// RuleType returns the kind of step the action performs.
func (a *Action) RuleType() string {
	return a.ruleType
}

// DeclaredDeps returns the dependencies declared by the rule itself.
func (a *Action) DeclaredDeps() []identity.Identity {
	return append([]identity.Identity(nil), a.declared...)
}

// ExtraDeps returns dependencies added by enhancement.
func (a *Action) ExtraDeps() []identity.Identity {
	return append([]identity.Identity(nil), a.extra...)
}

// Deps returns the union of declared and extra dependencies, sorted.
func (a *Action) Deps() []identity.Identity {
	all := make([]identity.Identity, 0, len(a.declared)+len(a.extra))
	all = append(all, a.declared...)
	all = append(all, a.extra...)
	return sortedDeps(all)
}

// Outputs returns every named output, sorted by name.
func (a *Action) Outputs() []Output {
	out := make([]Output, len(a.outputs))
	for i, o := range a.outputs {
		out[i] = Output{Name: o.Name, Paths: append([]SourcePath(nil), o.Paths...)}
	}
	return out
}

// Output returns the named output.
func (a *Action) Output(name string) (Output, bool) {
	for _, o := range a.outputs {
		if o.Name == name {
			return Output{Name: o.Name, Paths: append([]SourcePath(nil), o.Paths...)}, true
		}
	}
	return Output{}, false
}

// OutputPath returns the single path of a named output. It reports false
// when the output is missing or empty.
func (a *Action) OutputPath(name string) (SourcePath, bool) {
	o, ok := a.Output(name)
	if !ok || len(o.Paths) == 0 {
		return SourcePath{}, false
	}
	return o.Paths[0], true
}

// Attr returns a behavior attribute, or "" when unset.
func (a *Action) Attr(name string) string {
	return a.attrs[name]
}

// Attrs returns a copy of all behavior attributes.
func (a *Action) Attrs() map[string]string {
	out := make(map[string]string, len(a.attrs))
	for k, v := range a.attrs {
		out[k] = v
	}
	return out
}
