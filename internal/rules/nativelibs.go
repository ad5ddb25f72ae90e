package rules

import (
	"strconv"
	"strings"

	"github.com/bundlegraph/cli/internal/core"
	"github.com/bundlegraph/cli/internal/enhance"
	"github.com/bundlegraph/cli/internal/identity"
	"github.com/bundlegraph/cli/internal/modulegraph"
)

// NoopModuleMatcher packages every native library directory in the module
// that contributed it.
type NoopModuleMatcher struct{}

// Match implements enhance.ModuleMatcher.
func (NoopModuleMatcher) Match(modulegraph.ModuleID, core.SourcePath) bool {
	return true
}

// NativeLibs plans one copy action per module that contributes native
// libraries and registers each of them.
type NativeLibs struct{}

// EnhanceNativeLibs implements enhance.NativeLibsEnhancer.
func (NativeLibs) EnhanceNativeLibs(req enhance.NativeLibsRequest) (enhance.NativeLibsResult, error) {
	if !req.Collection.HasNativeLibs() {
		return enhance.NotApplicable(), nil
	}

	matcher := req.Matcher
	if matcher == nil {
		matcher = NoopModuleMatcher{}
	}

	copies := make(map[modulegraph.ModuleID]*core.Action)
	for _, m := range req.Collection.ModulesWithNativeLibs() {
		libs := matching(matcher, m, req.Collection.NativeLibDirs(m))
		assetLibs := matching(matcher, m, req.Collection.NativeLibAssetDirs(m))
		if len(libs) == 0 && len(assetLibs) == 0 {
			continue
		}

		id := identity.DeriveFlavored(req.Target, identity.CopyNativeLibsFlavor(string(m), req.Modules.IsRoot(m)))
		outputs := make(map[string][]core.SourcePath)
		if len(libs) > 0 {
			outputs["native_libs"] = []core.SourcePath{req.Filesystem.Output(id, "libs")}
		}
		if len(assetLibs) > 0 {
			outputs["native_libs_assets"] = []core.SourcePath{req.Filesystem.Output(id, "assetLibs")}
		}

		a := core.NewAction(core.ActionSpec{
			ID:        id,
			RuleType:  RuleTypeCopyNativeLibs,
			ExtraDeps: owners(append(libs, assetLibs...)...),
			Outputs:   outputs,
			Attrs: map[string]string{
				"module":             string(m),
				"cpu_abis":           strings.Join(req.Toolchain.CPUAbis, ","),
				"sources":            joinPaths(libs),
				"asset_sources":      joinPaths(assetLibs),
				"relinker":           strconv.FormatBool(req.Relinker.Enabled),
				"relinker_whitelist": strings.Join(req.Relinker.Patterns(), ","),
			},
		})
		copies[m] = req.Registry.AddToIndex(a)
	}

	if len(copies) == 0 {
		return enhance.NotApplicable(), nil
	}
	return enhance.Applicable(copies), nil
}

func matching(matcher enhance.ModuleMatcher, m modulegraph.ModuleID, dirs []core.SourcePath) []core.SourcePath {
	var out []core.SourcePath
	for _, d := range dirs {
		if matcher.Match(m, d) {
			out = append(out, d)
		}
	}
	return out
}
