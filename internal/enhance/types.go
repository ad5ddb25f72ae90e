// Package enhance expands an android_aar package target into the graph of
// actions that produce the archive: a synthesized manifest, merged resource
// and asset directories, a resource rule, generated BuildConfig libraries,
// per-module native library copies and one terminal android_aar action.
//
// This package defines the contract between the pipeline and the
// collaborators that construct individual sub-actions. Default
// collaborators live in the rules package.
package enhance

import (
	"regexp"

	"github.com/bundlegraph/cli/internal/core"
	"github.com/bundlegraph/cli/internal/identity"
	"github.com/bundlegraph/cli/internal/modulegraph"
	"github.com/bundlegraph/cli/internal/packageable"
	"github.com/bundlegraph/cli/internal/registry"
)

// ManifestBuilder synthesizes the manifest action of a package target.
type ManifestBuilder interface {
	// BuildManifest returns an action under id with one output named
	// "manifest". deps are the package target's declared dependencies.
	BuildManifest(
		id identity.Identity,
		fs *core.ProjectFilesystem,
		reg *registry.Registry,
		deps []identity.Identity,
		skeleton core.SourcePath,
	) (*core.Action, error)
}

// DirectoryKind names what a directory merge assembles.
type DirectoryKind string

// Directory kinds.
const (
	DirectoryAssets    DirectoryKind = "assets"
	DirectoryResources DirectoryKind = "res"
)

// DirectoryMerger assembles a list of directories into one.
type DirectoryMerger interface {
	// MergeDirectories returns an action under id with one output named
	// "merged". The result is a pure function of the ordered dirs.
	MergeDirectories(
		id identity.Identity,
		fs *core.ProjectFilesystem,
		reg *registry.Registry,
		kind DirectoryKind,
		dirs []core.SourcePath,
	) (*core.Action, error)
}

// NativeLibsEnhancer plans the native library copy actions of a package.
type NativeLibsEnhancer interface {
	EnhanceNativeLibs(req NativeLibsRequest) (NativeLibsResult, error)
}

// BuildConfigGenerator plans the generated BuildConfig libraries.
type BuildConfigGenerator interface {
	// GenerateBuildConfig returns one action per java package. Each action
	// has an output named "jar".
	GenerateBuildConfig(req BuildConfigRequest) ([]*core.Action, error)
}

// ModuleMatcher decides whether a native library directory is packaged
// for a module.
type ModuleMatcher interface {
	Match(module modulegraph.ModuleID, dir core.SourcePath) bool
}

// Toolchain carries the native toolchain settings.
type Toolchain struct {
	// CPUAbis are the target ABIs, e.g. arm64-v8a.
	CPUAbis []string
}

// RelinkerPolicy controls symbol relinking of native libraries.
type RelinkerPolicy struct {
	Enabled   bool
	Whitelist []*regexp.Regexp
}

// Patterns returns the whitelist patterns as written.
func (p RelinkerPolicy) Patterns() []string {
	out := make([]string, len(p.Whitelist))
	for i, re := range p.Whitelist {
		out[i] = re.String()
	}
	return out
}

// NativeLibsRequest is the input of NativeLibsEnhancer.
type NativeLibsRequest struct {
	Toolchain  Toolchain
	Registry   *registry.Registry
	Target     identity.Identity
	Filesystem *core.ProjectFilesystem
	Collection *packageable.Collection
	Modules    *modulegraph.Graph
	Relinker   RelinkerPolicy
	Matcher    ModuleMatcher
}

// NativeLibsResult is either NotApplicable or Applicable with one copy
// action per module that contributes native libraries.
type NativeLibsResult struct {
	applicable bool
	copies     map[modulegraph.ModuleID]*core.Action
}

// NotApplicable reports that the package has no native libraries.
func NotApplicable() NativeLibsResult {
	return NativeLibsResult{}
}

// Applicable wraps the copy actions keyed by module.
func Applicable(copies map[modulegraph.ModuleID]*core.Action) NativeLibsResult {
	out := make(map[modulegraph.ModuleID]*core.Action, len(copies))
	for m, a := range copies {
		out[m] = a
	}
	return NativeLibsResult{applicable: true, copies: out}
}

// IsApplicable reports whether native libraries are packaged.
func (r NativeLibsResult) IsApplicable() bool {
	return r.applicable
}

// CopyAction returns the copy action of module m.
func (r NativeLibsResult) CopyAction(m modulegraph.ModuleID) (*core.Action, bool) {
	a, ok := r.copies[m]
	return a, ok
}

// CopyActions returns every copy action keyed by module.
func (r NativeLibsResult) CopyActions() map[modulegraph.ModuleID]*core.Action {
	out := make(map[modulegraph.ModuleID]*core.Action, len(r.copies))
	for m, a := range r.copies {
		out[m] = a
	}
	return out
}

// PackageType selects debug or release BuildConfig constants.
type PackageType string

// PackageTypeRelease is the only package type an aar is built with.
const PackageTypeRelease PackageType = "release"

// JavacConfig carries the java compiler settings for generated libraries.
type JavacConfig struct {
	SourceLevel string
	TargetLevel string

	// Tool is an optional compiler target. When set it is an implicit
	// dependency of every package target.
	Tool identity.Identity
}

// BuildConfigRequest is the input of BuildConfigGenerator.
type BuildConfigRequest struct {
	Target      identity.Identity
	Filesystem  *core.ProjectFilesystem
	Registry    *registry.Registry
	PackageType PackageType

	// Values override the fields declared by android_build_config targets.
	Values     []string
	Javac      JavacConfig
	Collection *packageable.Collection
}
