// Package targetgraph holds the resolved declarative target graph that
// enhancement reads from.
package targetgraph

import (
	"github.com/bundlegraph/cli/internal/identity"
)

// RuleType names the kind of a declared target.
type RuleType string

// Rule types understood by enhancement.
const (
	RuleAndroidAar            RuleType = "android_aar"
	RuleAndroidResource       RuleType = "android_resource"
	RuleAndroidLibrary        RuleType = "android_library"
	RuleJavaLibrary           RuleType = "java_library"
	RulePrebuiltJar           RuleType = "prebuilt_jar"
	RulePrebuiltNativeLibrary RuleType = "prebuilt_native_library"
	RuleAndroidBuildConfig    RuleType = "android_build_config"
)

// Args is the typed argument bundle of a target. Each rule type reads the
// subset of fields meaningful to it.
type Args struct {
	// android_resource
	Res      string
	Assets   string
	Manifest string

	// prebuilt_native_library
	NativeLibs string
	IsAsset    bool

	// prebuilt_jar
	BinaryJar string

	// android_build_config
	Package string

	// android_aar (BuildConfigValues is shared with android_build_config)
	ManifestSkeleton         string
	BuildConfigValues        []string
	IncludeBuildConfigClass  bool
	EnableRelinker           bool
	RelinkerWhitelist        []string
	RemoveClasses            []string
	ApplicationModuleConfigs map[string][]string
}

// Node is one declared target.
type Node struct {
	ID           identity.Identity
	Type         RuleType
	DeclaredDeps []identity.Identity
	ExtraDeps    []identity.Identity
	Args         Args
}

// Deps returns declared then extra dependencies without duplicates.
func (n *Node) Deps() []identity.Identity {
	all := make([]identity.Identity, 0, len(n.DeclaredDeps)+len(n.ExtraDeps))
	all = append(all, n.DeclaredDeps...)
	all = append(all, n.ExtraDeps...)
	return identity.Dedup(all)
}

// Accessor looks up declared targets.
type Accessor interface {
	// Node returns the target declared under id.
	Node(id identity.Identity) (*Node, bool)
}
