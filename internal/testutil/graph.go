package testutil

import (
	"testing"

	"github.com/bundlegraph/cli/internal/identity"
	"github.com/bundlegraph/cli/internal/targetgraph"
)

// IDs parses each string with identity.MustParse.
func IDs(ss ...string) []identity.Identity {
	out := make([]identity.Identity, len(ss))
	for i, s := range ss {
		out[i] = identity.MustParse(s)
	}
	return out
}

// Keys returns the canonical keys of ids.
func Keys(ids []identity.Identity) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Key()
	}
	return out
}

// Graph builds a target graph from nodes and fails the test on duplicates.
func Graph(t *testing.T, nodes ...*targetgraph.Node) *targetgraph.Graph {
	t.Helper()
	g := targetgraph.New()
	for _, n := range nodes {
		if err := g.Add(n); err != nil {
			t.Fatalf("building test graph: %v", err)
		}
	}
	return g
}

// Aar declares an android_aar package target.
func Aar(name, skeleton string, deps ...string) *targetgraph.Node {
	return &targetgraph.Node{
		ID:           identity.MustParse(name),
		Type:         targetgraph.RuleAndroidAar,
		DeclaredDeps: IDs(deps...),
		Args:         targetgraph.Args{ManifestSkeleton: skeleton},
	}
}

// Resource declares an android_resource target. Empty dirs are omitted.
func Resource(name, res, assets string, deps ...string) *targetgraph.Node {
	return &targetgraph.Node{
		ID:           identity.MustParse(name),
		Type:         targetgraph.RuleAndroidResource,
		DeclaredDeps: IDs(deps...),
		Args:         targetgraph.Args{Res: res, Assets: assets},
	}
}

// JavaLibrary declares a java_library target.
func JavaLibrary(name string, deps ...string) *targetgraph.Node {
	return &targetgraph.Node{
		ID:           identity.MustParse(name),
		Type:         targetgraph.RuleJavaLibrary,
		DeclaredDeps: IDs(deps...),
	}
}

// PrebuiltJar declares a prebuilt_jar target.
func PrebuiltJar(name, jar string) *targetgraph.Node {
	return &targetgraph.Node{
		ID:   identity.MustParse(name),
		Type: targetgraph.RulePrebuiltJar,
		Args: targetgraph.Args{BinaryJar: jar},
	}
}

// NativeLibrary declares a prebuilt_native_library target.
func NativeLibrary(name, dir string, isAsset bool, deps ...string) *targetgraph.Node {
	return &targetgraph.Node{
		ID:           identity.MustParse(name),
		Type:         targetgraph.RulePrebuiltNativeLibrary,
		DeclaredDeps: IDs(deps...),
		Args:         targetgraph.Args{NativeLibs: dir, IsAsset: isAsset},
	}
}

// BuildConfig declares an android_build_config target.
func BuildConfig(name, javaPackage string, values ...string) *targetgraph.Node {
	return &targetgraph.Node{
		ID:   identity.MustParse(name),
		Type: targetgraph.RuleAndroidBuildConfig,
		Args: targetgraph.Args{Package: javaPackage, BuildConfigValues: values},
	}
}
