package core

import (
	"sort"

	"github.com/bundlegraph/cli/internal/identity"
)

// ActionRecord is the serializable form of an Action used for dumps,
// digests, and diffs.
type ActionRecord struct {
	ID           string              `json:"id" yaml:"id"`
	RuleType     string              `json:"type" yaml:"type"`
	DeclaredDeps []string            `json:"declaredDeps,omitempty" yaml:"declaredDeps,omitempty"`
	ExtraDeps    []string            `json:"extraDeps,omitempty" yaml:"extraDeps,omitempty"`
	Outputs      map[string][]string `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	Attributes   map[string]string   `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Record returns the serializable form of a.
func (a *Action) Record() ActionRecord {
	rec := ActionRecord{
		ID:           a.id.Key(),
		RuleType:     a.ruleType,
		DeclaredDeps: keys(a.declared),
		ExtraDeps:    keys(a.extra),
	}
	if len(a.outputs) > 0 {
		rec.Outputs = make(map[string][]string, len(a.outputs))
		for _, o := range a.outputs {
			paths := make([]string, len(o.Paths))
			for i, p := range o.Paths {
				paths[i] = p.String()
			}
			rec.Outputs[o.Name] = paths
		}
	}
	if len(a.attrs) > 0 {
		rec.Attributes = a.Attrs()
	}
	return rec
}

// Records converts actions to records sorted by id.
func Records(actions []*Action) []ActionRecord {
	out := make([]ActionRecord, len(actions))
	for i, a := range actions {
		out[i] = a.Record()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func keys(ids []identity.Identity) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Key()
	}
	return out
}

// SortRecords returns a copy of records sorted by id.
func SortRecords(records []ActionRecord) []ActionRecord {
	out := append([]ActionRecord(nil), records...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
