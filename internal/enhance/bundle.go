package enhance

import (
	"fmt"
	"strings"

	"github.com/bundlegraph/cli/internal/core"
	"github.com/bundlegraph/cli/internal/identity"
)

// Named outputs of the terminal android_aar action. Consumers address the
// archive's parts by these names.
const (
	OutputAar              = "aar"
	OutputManifest         = "manifest"
	OutputResourceRule     = "resource_rule"
	OutputMergedResources  = "merged_resources"
	OutputMergedAssets     = "merged_assets"
	OutputNativeLibs       = "native_libs"
	OutputNativeLibsAssets = "native_libs_assets"
	OutputClasspath        = "classpath"
)

// AttrRemoveClasses lists classes stripped from the archive, comma separated.
const AttrRemoveClasses = "remove_classes"

// Bundle is the typed view of a terminal android_aar action.
type Bundle struct {
	Target identity.Identity
	Action *core.Action

	Aar              core.SourcePath
	Manifest         core.SourcePath
	ResourceRule     core.SourcePath
	MergedResources  core.SourcePath
	MergedAssets     core.SourcePath
	NativeLibs       []core.SourcePath
	NativeLibsAssets []core.SourcePath
	Classpath        []core.SourcePath
	RemoveClasses    []string

	// SubActions are the actions synthesized for Target, sorted.
	SubActions []identity.Identity
}

// BundleFrom reads a terminal action into a Bundle.
func BundleFrom(a *core.Action) (*Bundle, error) {
	if a.RuleType() != RuleTypeAar {
		return nil, fmt.Errorf("action %s has rule type %s, not %s", a.ID(), a.RuleType(), RuleTypeAar)
	}

	b := &Bundle{Target: a.ID(), Action: a}
	singles := []struct {
		name string
		dst  *core.SourcePath
	}{
		{OutputAar, &b.Aar},
		{OutputManifest, &b.Manifest},
		{OutputResourceRule, &b.ResourceRule},
		{OutputMergedResources, &b.MergedResources},
		{OutputMergedAssets, &b.MergedAssets},
	}
	for _, s := range singles {
		p, ok := a.OutputPath(s.name)
		if !ok {
			return nil, fmt.Errorf("action %s has no %q output", a.ID(), s.name)
		}
		*s.dst = p
	}

	b.NativeLibs = paths(a, OutputNativeLibs)
	b.NativeLibsAssets = paths(a, OutputNativeLibsAssets)
	b.Classpath = paths(a, OutputClasspath)
	if rc := a.Attr(AttrRemoveClasses); rc != "" {
		b.RemoveClasses = strings.Split(rc, ",")
	}

	for _, dep := range a.ExtraDeps() {
		if dep.HasFlavors() && dep.Unflavored().Equal(a.ID()) {
			b.SubActions = append(b.SubActions, dep)
		}
	}
	return b, nil
}

// OutputNames returns the named outputs every bundle carries.
func OutputNames() []string {
	return []string{
		OutputAar,
		OutputManifest,
		OutputResourceRule,
		OutputMergedResources,
		OutputMergedAssets,
		OutputNativeLibs,
		OutputNativeLibsAssets,
		OutputClasspath,
	}
}

func paths(a *core.Action, name string) []core.SourcePath {
	o, ok := a.Output(name)
	if !ok {
		return nil
	}
	return o.Paths
}
