// Package config provides configuration loading and management.
package config

// Default values used by DefaultConfig and WithDefaults.
const (
	DefaultOutputRoot  = "buck-out/gen"
	DefaultWorkers     = 4
	DefaultSourceLevel = "8"
	DefaultTargetLevel = "8"
)

// DefaultCPUAbis are the ABIs native libraries are packaged for when the
// config does not narrow them.
var DefaultCPUAbis = []string{"arm64-v8a", "armeabi-v7a", "x86", "x86_64"}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" yaml:"timestamps,omitempty"`
}

// NDKConfig describes the native toolchain.
type NDKConfig struct {
	// CPUAbis lists the ABIs native libraries are copied for.
	// Env: BGRAPH_TOOLCHAIN_NDK_CPUABIS (comma separated)
	CPUAbis []string `json:"cpuAbis,omitempty" yaml:"cpuAbis,omitempty"`
}

// JavacConfig describes the compiler used for generated build config
// classes.
type JavacConfig struct {
	SourceLevel string `json:"sourceLevel,omitempty" yaml:"sourceLevel,omitempty"`
	TargetLevel string `json:"targetLevel,omitempty" yaml:"targetLevel,omitempty"`

	// Tool is an optional target providing the compiler. When set it
	// becomes an implicit dependency of every package target.
	Tool string `json:"tool,omitempty" yaml:"tool,omitempty"`
}

// ToolchainConfig groups toolchain settings.
type ToolchainConfig struct {
	NDK   NDKConfig   `json:"ndk" yaml:"ndk"`
	Javac JavacConfig `json:"javac" yaml:"javac"`
}

// BuildConfig contains settings recorded on generated actions.
type BuildConfig struct {
	// ExternalActions marks resource rules as runnable out of process.
	ExternalActions bool `json:"externalActions,omitempty" yaml:"externalActions"`
}

// Config represents the bgraph CLI configuration.
// Loaded from ~/.bgraph/config.yaml, validated against the embedded CUE schema.
type Config struct {
	// OutputRoot is where generated outputs are placed, relative to the
	// project root.
	// Env: BGRAPH_OUTPUT_ROOT
	OutputRoot string `json:"outputRoot,omitempty" yaml:"outputRoot,omitempty"`

	// Workers bounds how many package targets are enhanced at once.
	// Env: BGRAPH_WORKERS
	Workers int `json:"workers,omitempty" yaml:"workers,omitempty"`

	Log       LogConfig       `json:"log" yaml:"log"`
	Toolchain ToolchainConfig `json:"toolchain" yaml:"toolchain"`
	Build     BuildConfig     `json:"build" yaml:"build"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `bgraph config init` to generate the initial config file.
func DefaultConfig() *Config {
	timestamps := true
	return &Config{
		OutputRoot: DefaultOutputRoot,
		Workers:    DefaultWorkers,
		Log:        LogConfig{Timestamps: &timestamps},
		Toolchain: ToolchainConfig{
			NDK: NDKConfig{CPUAbis: append([]string(nil), DefaultCPUAbis...)},
			Javac: JavacConfig{
				SourceLevel: DefaultSourceLevel,
				TargetLevel: DefaultTargetLevel,
			},
		},
	}
}

// WithDefaults returns a copy of c with every unset field filled from
// DefaultConfig. Log.Timestamps stays nil so the flag layer can tell
// "unset" from "false".
func (c *Config) WithDefaults() *Config {
	out := *c
	if out.OutputRoot == "" {
		out.OutputRoot = DefaultOutputRoot
	}
	if out.Workers == 0 {
		out.Workers = DefaultWorkers
	}
	if len(out.Toolchain.NDK.CPUAbis) == 0 {
		out.Toolchain.NDK.CPUAbis = append([]string(nil), DefaultCPUAbis...)
	}
	if out.Toolchain.Javac.SourceLevel == "" {
		out.Toolchain.Javac.SourceLevel = DefaultSourceLevel
	}
	if out.Toolchain.Javac.TargetLevel == "" {
		out.Toolchain.Javac.TargetLevel = DefaultTargetLevel
	}
	return &out
}
