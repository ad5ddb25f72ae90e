package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
	assert.NotNil(t, loader.v)
}

func TestLoaderLoad(t *testing.T) {
	t.Run("loads config from file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")

		content := `
outputRoot: out/gen
workers: 8
log:
  timestamps: false
toolchain:
  ndk:
    cpuAbis: [arm64-v8a]
  javac:
    sourceLevel: "11"
    targetLevel: "11"
    tool: //tools:javac
build:
  externalActions: true
`
		require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

		cfg, err := NewLoader().Load(configFile)

		require.NoError(t, err)
		assert.Equal(t, "out/gen", cfg.OutputRoot)
		assert.Equal(t, 8, cfg.Workers)
		require.NotNil(t, cfg.Log.Timestamps)
		assert.False(t, *cfg.Log.Timestamps)
		assert.Equal(t, []string{"arm64-v8a"}, cfg.Toolchain.NDK.CPUAbis)
		assert.Equal(t, "11", cfg.Toolchain.Javac.SourceLevel)
		assert.Equal(t, "//tools:javac", cfg.Toolchain.Javac.Tool)
		assert.True(t, cfg.Build.ExternalActions)
	})

	t.Run("returns empty config for missing file", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "nonexistent.yaml")

		cfg, err := NewLoader().Load(configFile)

		require.NoError(t, err)
		assert.Empty(t, cfg.OutputRoot)
		assert.Zero(t, cfg.Workers)
	})

	t.Run("loads from environment variables", func(t *testing.T) {
		t.Setenv("BGRAPH_OUTPUT_ROOT", "env/out")
		t.Setenv("BGRAPH_WORKERS", "3")
		t.Setenv("BGRAPH_TOOLCHAIN_JAVAC_TOOL", "//env:javac")

		cfg, err := NewLoader().Load(filepath.Join(t.TempDir(), "none.yaml"))

		require.NoError(t, err)
		assert.Equal(t, "env/out", cfg.OutputRoot)
		assert.Equal(t, 3, cfg.Workers)
		assert.Equal(t, "//env:javac", cfg.Toolchain.Javac.Tool)
	})

	t.Run("env overrides file", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("outputRoot: file/out\n"), 0o644))
		t.Setenv("BGRAPH_OUTPUT_ROOT", "env/out")

		cfg, err := NewLoader().Load(configFile)

		require.NoError(t, err)
		assert.Equal(t, "env/out", cfg.OutputRoot)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("workers: [\n"), 0o644))

		_, err := NewLoader().Load(configFile)
		assert.Error(t, err)
	})
}

func TestLoadWithDefaults(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("workers: 2\n"), 0o644))

	cfg, err := NewLoader().LoadWithDefaults(configFile)

	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, DefaultOutputRoot, cfg.OutputRoot)
	assert.Equal(t, DefaultCPUAbis, cfg.Toolchain.NDK.CPUAbis)
}

func TestConfigFileExists(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(present, []byte("{}\n"), 0o644))

	ok, err := ConfigFileExists(present)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ConfigFileExists(filepath.Join(dir, "absent.yaml"))
	require.NoError(t, err)
	assert.False(t, ok)
}
