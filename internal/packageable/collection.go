// Package packageable gathers the contributions that the dependency closure
// of a package target makes to the final bundle: resource and asset
// directories, native libraries, classpath entries and build config
// declarations, each keyed by the module the contributing node belongs to.
package packageable

import (
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/bundlegraph/cli/internal/core"
	"github.com/bundlegraph/cli/internal/identity"
	"github.com/bundlegraph/cli/internal/modulegraph"
	"github.com/bundlegraph/cli/internal/targetgraph"
)

// Kind names a contribution bucket.
type Kind string

// Contribution kinds.
const (
	KindResourceDirs       Kind = "resource_dirs"
	KindAssetDirs          Kind = "asset_dirs"
	KindNativeLibDirs      Kind = "native_lib_dirs"
	KindNativeLibAssetDirs Kind = "native_lib_asset_dirs"
	KindClasspathEntries   Kind = "classpath_entries"
)

// Kinds lists every contribution kind in a fixed order.
func Kinds() []Kind {
	return []Kind{
		KindResourceDirs,
		KindAssetDirs,
		KindNativeLibDirs,
		KindNativeLibAssetDirs,
		KindClasspathEntries,
	}
}

// BuildConfig is a BuildConfig class requested by an android_build_config
// target in the closure.
type BuildConfig struct {
	Package string
	Fields  targetgraph.BuildConfigFields
	Source  identity.Identity
}

// Collection is the immutable result of Collect.
type Collection struct {
	modules            []modulegraph.ModuleID
	root               modulegraph.ModuleID
	buckets            map[Kind]map[modulegraph.ModuleID][]core.SourcePath
	javaLibrariesToDex []identity.Identity
	buildConfigs       []BuildConfig
}

// Get returns the contributions of kind made by nodes in module m, in
// traversal order.
func (c *Collection) Get(kind Kind, m modulegraph.ModuleID) []core.SourcePath {
	return append([]core.SourcePath(nil), c.buckets[kind][m]...)
}

// All returns the contributions of kind across every module, root first,
// then other modules by name.
func (c *Collection) All(kind Kind) []core.SourcePath {
	var out []core.SourcePath
	for _, m := range c.modules {
		out = append(out, c.buckets[kind][m]...)
	}
	return out
}

// ResourceDirs returns the resource directories of module m.
func (c *Collection) ResourceDirs(m modulegraph.ModuleID) []core.SourcePath {
	return c.Get(KindResourceDirs, m)
}

// AssetDirs returns the asset directories of module m.
func (c *Collection) AssetDirs(m modulegraph.ModuleID) []core.SourcePath {
	return c.Get(KindAssetDirs, m)
}

// NativeLibDirs returns the native library directories of module m.
func (c *Collection) NativeLibDirs(m modulegraph.ModuleID) []core.SourcePath {
	return c.Get(KindNativeLibDirs, m)
}

// NativeLibAssetDirs returns the native libraries module m packages as assets.
func (c *Collection) NativeLibAssetDirs(m modulegraph.ModuleID) []core.SourcePath {
	return c.Get(KindNativeLibAssetDirs, m)
}

// ClasspathEntries returns the classpath entries of module m.
func (c *Collection) ClasspathEntries(m modulegraph.ModuleID) []core.SourcePath {
	return c.Get(KindClasspathEntries, m)
}

// AllResourceDirs flattens the resource directories of every module.
func (c *Collection) AllResourceDirs() []core.SourcePath {
	return c.All(KindResourceDirs)
}

// AllAssetDirs flattens the asset directories of every module.
func (c *Collection) AllAssetDirs() []core.SourcePath {
	return c.All(KindAssetDirs)
}

// ClasspathEntriesToDex returns the classpath entries of every module, root
// first. An entry reached from two modules is listed once.
func (c *Collection) ClasspathEntriesToDex() []core.SourcePath {
	seen := sets.New[string]()
	var out []core.SourcePath
	for _, p := range c.All(KindClasspathEntries) {
		if seen.Has(p.String()) {
			continue
		}
		seen.Insert(p.String())
		out = append(out, p)
	}
	return out
}

// JavaLibrariesToDex returns the java libraries whose classes are packaged,
// in traversal order.
func (c *Collection) JavaLibrariesToDex() []identity.Identity {
	return append([]identity.Identity(nil), c.javaLibrariesToDex...)
}

// BuildConfigs returns the requested BuildConfig classes sorted by package.
func (c *Collection) BuildConfigs() []BuildConfig {
	return append([]BuildConfig(nil), c.buildConfigs...)
}

// HasNativeLibs reports whether any module contributes native libraries.
func (c *Collection) HasNativeLibs() bool {
	return len(c.ModulesWithNativeLibs()) > 0
}

// ModulesWithNativeLibs returns the modules contributing native libraries,
// in module order.
func (c *Collection) ModulesWithNativeLibs() []modulegraph.ModuleID {
	var out []modulegraph.ModuleID
	for _, m := range c.modules {
		if len(c.buckets[KindNativeLibDirs][m]) > 0 || len(c.buckets[KindNativeLibAssetDirs][m]) > 0 {
			out = append(out, m)
		}
	}
	return out
}

// Modules returns the modules of the collection, root first.
func (c *Collection) Modules() []modulegraph.ModuleID {
	return append([]modulegraph.ModuleID(nil), c.modules...)
}

// Counts returns the number of contributions per kind, for logging.
func (c *Collection) Counts() map[Kind]int {
	out := make(map[Kind]int, len(c.buckets))
	for _, kind := range Kinds() {
		out[kind] = len(c.All(kind))
	}
	return out
}
