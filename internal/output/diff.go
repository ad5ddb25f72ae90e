package output

import (
	"fmt"
	"strings"

	sigsyaml "sigs.k8s.io/yaml"

	"github.com/bundlegraph/cli/internal/core"
)

// DiffResult describes the difference between two action graphs.
type DiffResult struct {
	// Added actions (in the new graph, not in the old one).
	Added []string

	// Removed actions (in the old graph, not in the new one).
	Removed []string

	// Modified actions present in both with different content.
	Modified []ModifiedAction
}

// ModifiedAction is an action whose record changed.
type ModifiedAction struct {
	// ID is the action identity.
	ID string

	// Diff is the rendered dyff report.
	Diff string
}

// IsEmpty returns true if there are no changes.
func (r *DiffResult) IsEmpty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Modified) == 0
}

// Summary returns a summary string of changes.
func (r *DiffResult) Summary() string {
	if r.IsEmpty() {
		return "No changes"
	}

	parts := make([]string, 0, 3)
	if len(r.Added) > 0 {
		parts = append(parts, fmt.Sprintf("%d added", len(r.Added)))
	}
	if len(r.Removed) > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", len(r.Removed)))
	}
	if len(r.Modified) > 0 {
		parts = append(parts, fmt.Sprintf("%d modified", len(r.Modified)))
	}
	return strings.Join(parts, ", ")
}

// DiffActions compares two sets of action records by identity. Records
// present in both are compared with dyff.
func DiffActions(from, to []core.ActionRecord, useColor bool) (*DiffResult, error) {
	result := &DiffResult{
		Added:    make([]string, 0),
		Removed:  make([]string, 0),
		Modified: make([]ModifiedAction, 0),
	}

	fromByID := indexRecords(from)
	toByID := indexRecords(to)

	for _, rec := range core.SortRecords(to) {
		old, ok := fromByID[rec.ID]
		if !ok {
			result.Added = append(result.Added, rec.ID)
			continue
		}
		diff, err := compareRecords(old, rec, useColor)
		if err != nil {
			return nil, fmt.Errorf("comparing %s: %w", rec.ID, err)
		}
		if diff != "" {
			result.Modified = append(result.Modified, ModifiedAction{ID: rec.ID, Diff: diff})
		}
	}
	for _, rec := range core.SortRecords(from) {
		if _, ok := toByID[rec.ID]; !ok {
			result.Removed = append(result.Removed, rec.ID)
		}
	}

	return result, nil
}

func indexRecords(records []core.ActionRecord) map[string]core.ActionRecord {
	out := make(map[string]core.ActionRecord, len(records))
	for _, r := range records {
		out[r.ID] = r
	}
	return out
}

// compareRecords serializes both records and diffs them with dyff.
func compareRecords(from, to core.ActionRecord, useColor bool) (string, error) {
	fromYAML, err := sigsyaml.Marshal(from)
	if err != nil {
		return "", fmt.Errorf("serializing old record: %w", err)
	}
	toYAML, err := sigsyaml.Marshal(to)
	if err != nil {
		return "", fmt.Errorf("serializing new record: %w", err)
	}
	return DiffYAML(fromYAML, toYAML, useColor)
}

// RenderDiff renders a diff result for the terminal.
func RenderDiff(result *DiffResult) string {
	if result.IsEmpty() {
		return "No changes detected."
	}

	var sb strings.Builder

	if len(result.Added) > 0 {
		sb.WriteString(styleAdded.Render("Added:"))
		sb.WriteString("\n")
		for _, id := range result.Added {
			sb.WriteString("  + ")
			sb.WriteString(styleAdded.Render(id))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(result.Removed) > 0 {
		sb.WriteString(styleRemoved.Render("Removed:"))
		sb.WriteString("\n")
		for _, id := range result.Removed {
			sb.WriteString("  - ")
			sb.WriteString(styleRemoved.Render(id))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(result.Modified) > 0 {
		sb.WriteString(styleModified.Render("Modified:"))
		sb.WriteString("\n")
		for _, mod := range result.Modified {
			sb.WriteString("  ~ ")
			sb.WriteString(styleModified.Render(mod.ID))
			sb.WriteString("\n")
			sb.WriteString(IndentDiff(mod.Diff, "    "))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("Summary: ")
	sb.WriteString(result.Summary())
	sb.WriteString("\n")

	return sb.String()
}
