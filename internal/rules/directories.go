package rules

import (
	"github.com/bundlegraph/cli/internal/core"
	"github.com/bundlegraph/cli/internal/enhance"
	"github.com/bundlegraph/cli/internal/identity"
	"github.com/bundlegraph/cli/internal/registry"
)

// Directories copies a list of directories into one, later entries
// overwriting earlier ones.
type Directories struct{}

// MergeDirectories implements enhance.DirectoryMerger.
func (Directories) MergeDirectories(
	id identity.Identity,
	fs *core.ProjectFilesystem,
	_ *registry.Registry,
	kind enhance.DirectoryKind,
	dirs []core.SourcePath,
) (*core.Action, error) {
	return core.NewAction(core.ActionSpec{
		ID:        id,
		RuleType:  RuleTypeAssemble,
		ExtraDeps: owners(dirs...),
		Outputs: map[string][]core.SourcePath{
			"merged": {fs.Output(id, string(kind))},
		},
		Attrs: map[string]string{
			"kind":    string(kind),
			"sources": joinPaths(dirs),
		},
	}), nil
}
