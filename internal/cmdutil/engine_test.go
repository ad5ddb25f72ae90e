package cmdutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bundlegraph/cli/internal/config"
	oerrors "github.com/bundlegraph/cli/internal/errors"
	"github.com/bundlegraph/cli/internal/registry"
	"github.com/bundlegraph/cli/internal/testutil"
)

func TestResolveTargets(t *testing.T) {
	g := testutil.Graph(t,
		testutil.JavaLibrary("//lib:java"),
		testutil.Aar("//app:aar", "app/AndroidManifest.xml", "//lib:java"),
		testutil.Aar("//other:aar", "other/AndroidManifest.xml"),
	)

	t.Run("no args selects every aar", func(t *testing.T) {
		got, err := ResolveTargets(g, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"//app:aar", "//other:aar"}, testutil.Keys(got))
	})

	t.Run("args are parsed and deduplicated", func(t *testing.T) {
		got, err := ResolveTargets(g, []string{"//other:aar", "//app:aar", "//other:aar"})
		require.NoError(t, err)
		assert.Equal(t, []string{"//other:aar", "//app:aar"}, testutil.Keys(got))
	})

	t.Run("malformed arg", func(t *testing.T) {
		_, err := ResolveTargets(g, []string{"app"})
		require.Error(t, err)
		assert.ErrorIs(t, err, oerrors.ErrInvalidInput)
	})

	t.Run("graph without aar targets", func(t *testing.T) {
		empty := testutil.Graph(t, testutil.JavaLibrary("//lib:java"))
		_, err := ResolveTargets(empty, nil)
		assert.ErrorIs(t, err, oerrors.ErrNotFound)
	})
}

func TestJavac(t *testing.T) {
	cfg := config.DefaultConfig()
	javac, err := Javac(cfg)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSourceLevel, javac.SourceLevel)
	assert.True(t, javac.Tool.IsZero())

	cfg.Toolchain.Javac.Tool = "//tools:javac"
	javac, err = Javac(cfg)
	require.NoError(t, err)
	assert.Equal(t, "//tools:javac", javac.Tool.Key())

	cfg.Toolchain.Javac.Tool = "javac"
	_, err = Javac(cfg)
	assert.ErrorIs(t, err, oerrors.ErrValidation)
}

func TestNewEnhancer(t *testing.T) {
	g := testutil.Graph(t, testutil.Aar("//app:aar", "app/AndroidManifest.xml"))

	cfg := &config.GlobalConfig{
		Config:     config.DefaultConfig(),
		GraphPath:  "project/bgraph.cue",
		OutputRoot: config.DefaultOutputRoot,
	}
	enh, err := NewEnhancer(cfg, g, registry.New())
	require.NoError(t, err)
	require.NotNil(t, enh)

	cfg.LoadErr = errors.New("reading config file: bad yaml")
	_, err = NewEnhancer(cfg, g, registry.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrValidation)
}
