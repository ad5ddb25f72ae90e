// Package rules provides the default collaborators of the enhancement
// pipeline. Each one plans a single kind of sub-action and lays its outputs
// out under the owning identity's generated directory.
package rules

import (
	"strings"

	"github.com/bundlegraph/cli/internal/core"
	"github.com/bundlegraph/cli/internal/identity"
	"github.com/bundlegraph/cli/internal/registry"
)

// Rule types of the actions planned here.
const (
	RuleTypeManifest       = "android_manifest"
	RuleTypeAssemble       = "assemble_directories"
	RuleTypeCopyNativeLibs = "copy_native_libraries"
	RuleTypeBuildConfig    = "android_build_config"
)

// Manifest merges the manifests of a package's dependencies into its
// skeleton.
type Manifest struct{}

// BuildManifest implements enhance.ManifestBuilder.
func (Manifest) BuildManifest(
	id identity.Identity,
	fs *core.ProjectFilesystem,
	_ *registry.Registry,
	deps []identity.Identity,
	skeleton core.SourcePath,
) (*core.Action, error) {
	return core.NewAction(core.ActionSpec{
		ID:           id,
		RuleType:     RuleTypeManifest,
		DeclaredDeps: deps,
		ExtraDeps:    owners(skeleton),
		Outputs: map[string][]core.SourcePath{
			"manifest": {fs.Output(id, "AndroidManifest.xml")},
		},
		Attrs: map[string]string{
			"skeleton": skeleton.String(),
		},
	}), nil
}

// owners returns the actions producing build-target paths.
func owners(paths ...core.SourcePath) []identity.Identity {
	var out []identity.Identity
	for _, p := range paths {
		if p.IsBuildTarget() {
			out = append(out, p.Owner)
		}
	}
	return out
}

func joinPaths(paths []core.SourcePath) string {
	parts := make([]string, len(paths))
	for i, p := range paths {
		parts[i] = p.String()
	}
	return strings.Join(parts, ",")
}
