package packageable

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/bundlegraph/cli/internal/core"
	oerrors "github.com/bundlegraph/cli/internal/errors"
	"github.com/bundlegraph/cli/internal/identity"
	"github.com/bundlegraph/cli/internal/modulegraph"
	"github.com/bundlegraph/cli/internal/targetgraph"
	"github.com/bundlegraph/cli/internal/testutil"
)

func paths(ps []core.SourcePath) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}
	return out
}

func collect(t *testing.T, tg *targetgraph.Graph, pkg string, excluded sets.Set[string]) (*Collection, error) {
	t.Helper()
	pkgID := identity.MustParse(pkg)
	mg, err := modulegraph.New(tg, pkgID)
	require.NoError(t, err)
	n, ok := tg.Node(pkgID)
	require.True(t, ok)
	return Collect(tg, core.NewProjectFilesystem("/repo", ""), n.DeclaredDeps, excluded, mg)
}

func TestCollectRootOnly(t *testing.T) {
	tg := testutil.Graph(t,
		testutil.Aar("//app:aar", "AndroidManifest.xml", "//app:res", "//app:native"),
		testutil.Resource("//app:res", "app/res", "app/assets", "//lib:res", "//lib:java"),
		testutil.Resource("//lib:res", "lib/res", "", "//lib:java"),
		testutil.JavaLibrary("//lib:java", "//third:jar"),
		testutil.PrebuiltJar("//third:jar", "third/guava.jar"),
		testutil.NativeLibrary("//app:native", "app/libs", false),
	)

	c, err := collect(t, tg, "//app:aar", nil)
	require.NoError(t, err)

	root := modulegraph.ModuleID(modulegraph.RootModuleName)
	// Post-order: dependencies before dependents.
	assert.Equal(t, []string{"lib/res", "app/res"}, paths(c.ResourceDirs(root)))
	assert.Equal(t, []string{"app/assets"}, paths(c.AssetDirs(root)))
	assert.Equal(t, []string{"app/libs"}, paths(c.NativeLibDirs(root)))
	assert.Empty(t, c.NativeLibAssetDirs(root))
	assert.Equal(t, []string{
		"third/guava.jar",
		"//lib:java[buck-out/gen/lib/__java__/java.jar]",
	}, paths(c.ClasspathEntriesToDex()))
	assert.Equal(t, []string{"//lib:java"}, testutil.Keys(c.JavaLibrariesToDex()))

	assert.True(t, c.HasNativeLibs())
	assert.Equal(t, []modulegraph.ModuleID{root}, c.ModulesWithNativeLibs())
	assert.Equal(t, 2, c.Counts()[KindResourceDirs])
}

func TestCollectExcludedFromDex(t *testing.T) {
	tg := testutil.Graph(t,
		testutil.Aar("//app:aar", "AndroidManifest.xml", "//lib:java", "//third:jar"),
		testutil.JavaLibrary("//lib:java"),
		testutil.PrebuiltJar("//third:jar", "third/guava.jar"),
	)

	c, err := collect(t, tg, "//app:aar", sets.New("//lib:java", "//third:jar"))
	require.NoError(t, err)
	assert.Empty(t, c.ClasspathEntriesToDex())
	assert.Empty(t, c.JavaLibrariesToDex())
}

func TestCollectModules(t *testing.T) {
	aar := testutil.Aar("//app:aar", "AndroidManifest.xml", "//base:res", "//feature:res")
	aar.Args.ApplicationModuleConfigs = map[string][]string{"A": {"//feature:res"}}
	tg := testutil.Graph(t,
		aar,
		testutil.Resource("//base:res", "base/res", "base/assets"),
		testutil.Resource("//feature:res", "feature/res", "feature/assets", "//feature:native"),
		testutil.NativeLibrary("//feature:native", "feature/libs", true),
	)

	c, err := collect(t, tg, "//app:aar", nil)
	require.NoError(t, err)

	root := modulegraph.ModuleID(modulegraph.RootModuleName)
	a := modulegraph.ModuleID("A")

	assert.Equal(t, []modulegraph.ModuleID{root, a}, c.Modules())
	assert.Equal(t, []string{"base/res"}, paths(c.ResourceDirs(root)))
	assert.Equal(t, []string{"feature/res"}, paths(c.ResourceDirs(a)))

	// Every contribution of the closure appears in exactly one module.
	assert.Equal(t, []string{"base/res", "feature/res"}, paths(c.AllResourceDirs()))
	assert.Equal(t, []string{"base/assets", "feature/assets"}, paths(c.AllAssetDirs()))

	assert.Empty(t, c.NativeLibAssetDirs(root))
	assert.Equal(t, []string{"feature/libs"}, paths(c.NativeLibAssetDirs(a)))
	assert.Equal(t, []modulegraph.ModuleID{a}, c.ModulesWithNativeLibs())
}

func TestCollectClasspathAcrossModules(t *testing.T) {
	aar := testutil.Aar("//app:aar", "AndroidManifest.xml", "//base:java", "//feature:java")
	aar.Args.ApplicationModuleConfigs = map[string][]string{"A": {"//feature:java"}}
	tg := testutil.Graph(t,
		aar,
		testutil.JavaLibrary("//base:java", "//third:jar"),
		testutil.JavaLibrary("//feature:java", "//third:jar"),
		testutil.PrebuiltJar("//third:jar", "third/guava.jar"),
	)

	c, err := collect(t, tg, "//app:aar", nil)
	require.NoError(t, err)

	root := modulegraph.ModuleID(modulegraph.RootModuleName)
	a := modulegraph.ModuleID("A")
	assert.Equal(t, []string{"//feature:java[buck-out/gen/feature/__java__/java.jar]"}, paths(c.ClasspathEntries(a)))
	assert.NotContains(t, paths(c.ClasspathEntries(root)), "//feature:java[buck-out/gen/feature/__java__/java.jar]")

	cp := paths(c.ClasspathEntriesToDex())
	assert.Contains(t, cp, "//base:java[buck-out/gen/base/__java__/java.jar]")
	assert.Contains(t, cp, "//feature:java[buck-out/gen/feature/__java__/java.jar]")
	assert.Contains(t, cp, "third/guava.jar")
	assert.Len(t, cp, 3)
	assert.Equal(t, []string{"//base:java", "//feature:java"}, testutil.Keys(c.JavaLibrariesToDex()))
}

func TestCollectDeduplicatesDirectories(t *testing.T) {
	tg := testutil.Graph(t,
		testutil.Aar("//app:aar", "AndroidManifest.xml", "//a:res", "//b:res"),
		testutil.Resource("//a:res", "shared/res", ""),
		testutil.Resource("//b:res", "shared/res", ""),
	)

	c, err := collect(t, tg, "//app:aar", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"shared/res"}, paths(c.AllResourceDirs()))
}

func TestCollectBuildConfigs(t *testing.T) {
	tg := testutil.Graph(t,
		testutil.Aar("//app:aar", "AndroidManifest.xml", "//b:config", "//a:config"),
		testutil.BuildConfig("//b:config", "com.example.b", "boolean DEBUG = false"),
		testutil.BuildConfig("//a:config", "com.example.a", "String NAME = \"a\"", "int VERSION = 3"),
	)

	c, err := collect(t, tg, "//app:aar", nil)
	require.NoError(t, err)

	configs := c.BuildConfigs()
	require.Len(t, configs, 2)
	assert.Equal(t, "com.example.a", configs[0].Package)
	assert.Equal(t, "//a:config", configs[0].Source.Key())
	assert.Len(t, configs[0].Fields, 2)
	assert.Equal(t, "com.example.b", configs[1].Package)
}

func TestCollectErrors(t *testing.T) {
	t.Run("duplicate build config package", func(t *testing.T) {
		tg := testutil.Graph(t,
			testutil.Aar("//app:aar", "AndroidManifest.xml", "//a:config", "//b:config"),
			testutil.BuildConfig("//a:config", "com.example"),
			testutil.BuildConfig("//b:config", "com.example"),
		)
		_, err := collect(t, tg, "//app:aar", nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrConfiguration))
	})

	t.Run("malformed build config value", func(t *testing.T) {
		tg := testutil.Graph(t,
			testutil.Aar("//app:aar", "AndroidManifest.xml", "//a:config"),
			testutil.BuildConfig("//a:config", "com.example", "not a field"),
		)
		_, err := collect(t, tg, "//app:aar", nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrConfiguration))
	})

	t.Run("undeclared dependency", func(t *testing.T) {
		tg := testutil.Graph(t,
			testutil.Aar("//app:aar", "AndroidManifest.xml", "//a:res"),
			testutil.Resource("//a:res", "a/res", "", "//missing:res"),
		)
		pkg := identity.MustParse("//app:aar")
		n, _ := tg.Node(pkg)
		_, err := Collect(tg, core.NewProjectFilesystem("/repo", ""), n.DeclaredDeps, nil, rootOnly{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrGraphConsistency))
	})

	t.Run("node outside module graph", func(t *testing.T) {
		tg := testutil.Graph(t,
			testutil.Aar("//app:aar", "AndroidManifest.xml"),
			testutil.Resource("//stray:res", "stray/res", ""),
		)
		mg, err := modulegraph.New(tg, identity.MustParse("//app:aar"))
		require.NoError(t, err)
		_, err = Collect(tg, core.NewProjectFilesystem("/repo", ""), testutil.IDs("//stray:res"), nil, mg)
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrGraphConsistency))
	})
}

type rootOnly struct{}

func (rootOnly) RootModule() modulegraph.ModuleID { return modulegraph.RootModuleName }
func (rootOnly) Modules() []modulegraph.ModuleID {
	return []modulegraph.ModuleID{modulegraph.RootModuleName}
}
func (rootOnly) ModuleOf(identity.Identity) (modulegraph.ModuleID, error) {
	return modulegraph.RootModuleName, nil
}
