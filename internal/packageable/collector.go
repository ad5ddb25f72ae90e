package packageable

import (
	"fmt"
	"sort"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/bundlegraph/cli/internal/core"
	oerrors "github.com/bundlegraph/cli/internal/errors"
	"github.com/bundlegraph/cli/internal/identity"
	"github.com/bundlegraph/cli/internal/modulegraph"
	"github.com/bundlegraph/cli/internal/targetgraph"
)

// ModuleResolver maps closure nodes to modules. *modulegraph.Graph
// implements it.
type ModuleResolver interface {
	RootModule() modulegraph.ModuleID
	Modules() []modulegraph.ModuleID
	ModuleOf(id identity.Identity) (modulegraph.ModuleID, error)
}

// Collect walks the transitive closure of roots once, in post-order, and
// returns every contribution keyed by module. Targets whose key is in
// excludedFromDex contribute no classpath entry. Collect only reads; the
// returned Collection is never modified afterwards.
func Collect(
	acc targetgraph.Accessor,
	fs *core.ProjectFilesystem,
	roots []identity.Identity,
	excludedFromDex sets.Set[string],
	modules ModuleResolver,
) (*Collection, error) {
	nodes, err := targetgraph.PostOrder(acc, roots, nil)
	if err != nil {
		return nil, err
	}

	b := &builder{
		c: &Collection{
			modules: modules.Modules(),
			root:    modules.RootModule(),
			buckets: make(map[Kind]map[modulegraph.ModuleID][]core.SourcePath),
		},
		seen:            make(map[Kind]map[modulegraph.ModuleID]sets.Set[string]),
		excludedFromDex: excludedFromDex,
		buildConfigs:    make(map[string]BuildConfig),
	}

	for _, n := range nodes {
		m, err := modules.ModuleOf(n.ID)
		if err != nil {
			return nil, err
		}
		if err := b.add(fs, n, m); err != nil {
			return nil, err
		}
	}

	b.c.buildConfigs = make([]BuildConfig, 0, len(b.buildConfigs))
	for _, bc := range b.buildConfigs {
		b.c.buildConfigs = append(b.c.buildConfigs, bc)
	}
	sort.Slice(b.c.buildConfigs, func(i, j int) bool {
		return b.c.buildConfigs[i].Package < b.c.buildConfigs[j].Package
	})

	return b.c, nil
}

type builder struct {
	c               *Collection
	seen            map[Kind]map[modulegraph.ModuleID]sets.Set[string]
	excludedFromDex sets.Set[string]
	buildConfigs    map[string]BuildConfig
}

func (b *builder) add(fs *core.ProjectFilesystem, n *targetgraph.Node, m modulegraph.ModuleID) error {
	switch n.Type {
	case targetgraph.RuleAndroidResource:
		if n.Args.Res != "" {
			b.append(KindResourceDirs, m, core.NewPathSourcePath(n.Args.Res))
		}
		if n.Args.Assets != "" {
			b.append(KindAssetDirs, m, core.NewPathSourcePath(n.Args.Assets))
		}

	case targetgraph.RuleAndroidLibrary, targetgraph.RuleJavaLibrary:
		if b.excluded(n.ID) {
			return nil
		}
		b.append(KindClasspathEntries, m, fs.Output(n.ID, n.ID.Name()+".jar"))
		b.c.javaLibrariesToDex = append(b.c.javaLibrariesToDex, n.ID)

	case targetgraph.RulePrebuiltJar:
		if n.Args.BinaryJar != "" && !b.excluded(n.ID) {
			b.append(KindClasspathEntries, m, core.NewPathSourcePath(n.Args.BinaryJar))
		}

	case targetgraph.RulePrebuiltNativeLibrary:
		if n.Args.NativeLibs == "" {
			return nil
		}
		kind := KindNativeLibDirs
		if n.Args.IsAsset {
			kind = KindNativeLibAssetDirs
		}
		b.append(kind, m, core.NewPathSourcePath(n.Args.NativeLibs))

	case targetgraph.RuleAndroidBuildConfig:
		return b.addBuildConfig(n)
	}
	return nil
}

func (b *builder) excluded(id identity.Identity) bool {
	return b.excludedFromDex != nil && b.excludedFromDex.Has(id.Key())
}

func (b *builder) append(kind Kind, m modulegraph.ModuleID, p core.SourcePath) {
	if b.seen[kind] == nil {
		b.seen[kind] = make(map[modulegraph.ModuleID]sets.Set[string])
		b.c.buckets[kind] = make(map[modulegraph.ModuleID][]core.SourcePath)
	}
	if b.seen[kind][m] == nil {
		b.seen[kind][m] = sets.New[string]()
	}
	if b.seen[kind][m].Has(p.String()) {
		return
	}
	b.seen[kind][m].Insert(p.String())
	b.c.buckets[kind][m] = append(b.c.buckets[kind][m], p)
}

func (b *builder) addBuildConfig(n *targetgraph.Node) error {
	if n.Args.Package == "" {
		return oerrors.NewConfigurationError(
			"android_build_config requires a java package",
			n.ID.String(), "package", "")
	}
	fields, err := targetgraph.ParseBuildConfigFields(n.Args.BuildConfigValues)
	if err != nil {
		return oerrors.NewConfigurationError(err.Error(), n.ID.String(), "values", "")
	}
	if prev, dup := b.buildConfigs[n.Args.Package]; dup {
		return oerrors.NewConfigurationError(
			fmt.Sprintf("java package %s is declared by both %s and %s", n.Args.Package, prev.Source, n.ID),
			n.ID.String(), "package", "each android_build_config needs its own java package")
	}
	b.buildConfigs[n.Args.Package] = BuildConfig{Package: n.Args.Package, Fields: fields, Source: n.ID}
	return nil
}
