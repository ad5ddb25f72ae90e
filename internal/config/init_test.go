package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDefaultConfig(t *testing.T) {
	data, err := RenderDefaultConfig()
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "# bgraph configuration.")
	assert.Contains(t, content, "outputRoot: buck-out/gen")
	assert.Contains(t, content, "workers: 4")
	assert.Contains(t, content, "cpuAbis:")
	assert.Contains(t, content, "externalActions: false")
}

func TestWriteDefaultConfig(t *testing.T) {
	t.Run("writes a file that validates and loads", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "config.yaml")
		require.NoError(t, WriteDefaultConfig(path, false))

		v, err := NewValidator()
		require.NoError(t, err)
		assert.NoError(t, v.ValidateFile(path))

		cfg, err := NewLoader().Load(path)
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig().OutputRoot, cfg.OutputRoot)
		assert.Equal(t, DefaultConfig().Toolchain.NDK.CPUAbis, cfg.Toolchain.NDK.CPUAbis)
		assert.Equal(t, "8", cfg.Toolchain.Javac.SourceLevel)
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("workers: 1\n"), 0o644))

		err := WriteDefaultConfig(path, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "workers: 1\n", string(data))
	})

	t.Run("overwrites with force", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("workers: 1\n"), 0o644))

		require.NoError(t, WriteDefaultConfig(path, true))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "workers: 4")
	})
}
