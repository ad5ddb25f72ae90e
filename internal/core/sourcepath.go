package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bundlegraph/cli/internal/identity"
)

// SourcePath is an opaque reference to a file or directory consumed by an
// action. It is either a repository path or a path produced by the action
// named by Owner.
type SourcePath struct {
	// Owner is the action producing the path; zero for repository files.
	Owner identity.Identity

	// Path is relative to the project root.
	Path string
}

// NewPathSourcePath references a file checked into the repository.
func NewPathSourcePath(path string) SourcePath {
	return SourcePath{Path: path}
}

// NewBuildTargetSourcePath references an output of owner.
func NewBuildTargetSourcePath(owner identity.Identity, path string) SourcePath {
	return SourcePath{Owner: owner, Path: path}
}

// IsBuildTarget reports whether the path is produced by an action.
func (p SourcePath) IsBuildTarget() bool {
	return !p.Owner.IsZero()
}

// String renders "path" for repository files and "//pkg:name#flavor[path]"
// for action outputs.
func (p SourcePath) String() string {
	if !p.IsBuildTarget() {
		return p.Path
	}
	return p.Owner.Key() + "[" + p.Path + "]"
}

// MarshalText encodes the String form.
func (p SourcePath) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes the String form.
func (p *SourcePath) UnmarshalText(text []byte) error {
	parsed, err := ParseSourcePath(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParseSourcePath parses the String form of a SourcePath.
func ParseSourcePath(s string) (SourcePath, error) {
	open := strings.Index(s, "[")
	if open < 0 || !strings.HasSuffix(s, "]") || !strings.Contains(s[:open], "//") {
		return NewPathSourcePath(s), nil
	}

	owner, err := identity.ParseAny(s[:open])
	if err != nil {
		return SourcePath{}, fmt.Errorf("parsing source path %q: %w", s, err)
	}
	return NewBuildTargetSourcePath(owner, s[open+1:len(s)-1]), nil
}

// SortSourcePaths sorts paths by their String form and removes duplicates.
func SortSourcePaths(paths []SourcePath) []SourcePath {
	seen := make(map[string]struct{}, len(paths))
	out := make([]SourcePath, 0, len(paths))
	for _, p := range paths {
		key := p.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
