package rules

import (
	"fmt"
	"strings"

	"github.com/bundlegraph/cli/internal/core"
	"github.com/bundlegraph/cli/internal/enhance"
	"github.com/bundlegraph/cli/internal/identity"
	"github.com/bundlegraph/cli/internal/targetgraph"
)

// BuildConfig generates one BuildConfig library per java package declared
// by android_build_config targets in the closure. The package target's
// values override the declared ones. When the closure declares no package,
// the values go into a single library of the target's own java package.
type BuildConfig struct{}

// GenerateBuildConfig implements enhance.BuildConfigGenerator.
func (BuildConfig) GenerateBuildConfig(req enhance.BuildConfigRequest) ([]*core.Action, error) {
	overrides, err := targetgraph.ParseBuildConfigFields(req.Values)
	if err != nil {
		return nil, fmt.Errorf("build config values of %s: %w", req.Target, err)
	}

	declared := req.Collection.BuildConfigs()
	if len(declared) == 0 {
		if len(overrides) == 0 {
			return nil, nil
		}
		id := identity.DeriveFlavored(req.Target, identity.FlavorAARBuildConfig)
		return []*core.Action{buildConfigAction(req, id, ownJavaPackage(req.Target), overrides, nil)}, nil
	}

	out := make([]*core.Action, 0, len(declared))
	for _, bc := range declared {
		id := identity.DeriveFlavored(req.Target, identity.BuildConfigFlavor(bc.Package))
		out = append(out, buildConfigAction(req, id, bc.Package, bc.Fields.Merge(overrides), []identity.Identity{bc.Source}))
	}
	return out, nil
}

func buildConfigAction(req enhance.BuildConfigRequest, id identity.Identity, javaPackage string, fields targetgraph.BuildConfigFields, deps []identity.Identity) *core.Action {
	return core.NewAction(core.ActionSpec{
		ID:           id,
		RuleType:     RuleTypeBuildConfig,
		DeclaredDeps: deps,
		ExtraDeps:    enhance.ImplicitDeps(req.Javac),
		Outputs: map[string][]core.SourcePath{
			"jar":    {req.Filesystem.Output(id, "lib__BuildConfig__output", "BuildConfig.jar")},
			"source": {req.Filesystem.Output(id, "BuildConfig.java")},
		},
		Attrs: map[string]string{
			"package":      javaPackage,
			"package_type": string(req.PackageType),
			"values":       fields.String(),
			"source_level": req.Javac.SourceLevel,
			"target_level": req.Javac.TargetLevel,
		},
	})
}

// ownJavaPackage maps "//com/example/app:aar" to "com.example.app". A target
// at the repository root falls back to its name.
func ownJavaPackage(target identity.Identity) string {
	pkg := target.Package()
	if pkg == "" {
		pkg = target.Name()
	}
	return strings.NewReplacer("/", ".", "-", "_").Replace(pkg)
}
