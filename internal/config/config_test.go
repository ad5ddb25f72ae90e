package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "buck-out/gen", cfg.OutputRoot)
	assert.Equal(t, 4, cfg.Workers)
	require.NotNil(t, cfg.Log.Timestamps)
	assert.True(t, *cfg.Log.Timestamps)
	assert.Equal(t, []string{"arm64-v8a", "armeabi-v7a", "x86", "x86_64"}, cfg.Toolchain.NDK.CPUAbis)
	assert.Equal(t, "8", cfg.Toolchain.Javac.SourceLevel)
	assert.Equal(t, "8", cfg.Toolchain.Javac.TargetLevel)
	assert.Empty(t, cfg.Toolchain.Javac.Tool)
	assert.False(t, cfg.Build.ExternalActions)
}

func TestDefaultConfig_DoesNotShareAbis(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Toolchain.NDK.CPUAbis[0] = "mips"

	assert.Equal(t, "arm64-v8a", DefaultCPUAbis[0])
}

func TestWithDefaults(t *testing.T) {
	t.Run("fills unset fields", func(t *testing.T) {
		cfg := (&Config{}).WithDefaults()

		assert.Equal(t, DefaultOutputRoot, cfg.OutputRoot)
		assert.Equal(t, DefaultWorkers, cfg.Workers)
		assert.Equal(t, DefaultCPUAbis, cfg.Toolchain.NDK.CPUAbis)
		assert.Equal(t, DefaultSourceLevel, cfg.Toolchain.Javac.SourceLevel)
		assert.Nil(t, cfg.Log.Timestamps, "timestamps stay unset for the flag layer")
	})

	t.Run("keeps set fields", func(t *testing.T) {
		in := &Config{
			OutputRoot: "out",
			Workers:    2,
			Toolchain: ToolchainConfig{
				NDK:   NDKConfig{CPUAbis: []string{"x86"}},
				Javac: JavacConfig{SourceLevel: "11", TargetLevel: "11", Tool: "//tools:javac"},
			},
		}
		cfg := in.WithDefaults()

		assert.Equal(t, "out", cfg.OutputRoot)
		assert.Equal(t, 2, cfg.Workers)
		assert.Equal(t, []string{"x86"}, cfg.Toolchain.NDK.CPUAbis)
		assert.Equal(t, "11", cfg.Toolchain.Javac.SourceLevel)
		assert.Equal(t, "//tools:javac", cfg.Toolchain.Javac.Tool)
	})

	t.Run("does not modify the receiver", func(t *testing.T) {
		in := &Config{}
		_ = in.WithDefaults()
		assert.Empty(t, in.OutputRoot)
	})
}
