package config

import (
	"os"

	"github.com/bundlegraph/cli/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// Environment variables consulted by the resolvers.
const (
	EnvConfig     = "BGRAPH_CONFIG"
	EnvGraph      = "BGRAPH_GRAPH"
	EnvOutputRoot = "BGRAPH_OUTPUT_ROOT"
)

// DefaultGraphFile is the graph document read when --graph is not given.
const DefaultGraphFile = "bgraph.cue"

// ResolvedValue records a resolved configuration value and what it shadowed.
type ResolvedValue struct {
	Key      string
	Value    string
	Source   ConfigSource
	Shadowed map[ConfigSource]string
}

// ResolveOptions lists the candidate values for one key. Empty strings mean
// "not set" at that level.
type ResolveOptions struct {
	Key          string
	FlagValue    string
	EnvVar       string
	ConfigValue  string
	DefaultValue string
}

// Resolve picks a value using precedence:
// (1) flag, (2) environment, (3) config file, (4) default.
// Lower-precedence values that were set are recorded as shadowed.
func Resolve(opts ResolveOptions) ResolvedValue {
	result := ResolvedValue{
		Key:      opts.Key,
		Shadowed: make(map[ConfigSource]string),
	}

	var envValue string
	if opts.EnvVar != "" {
		envValue = os.Getenv(opts.EnvVar)
	}

	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, opts.FlagValue},
		{SourceEnv, envValue},
		{SourceConfig, opts.ConfigValue},
		{SourceDefault, opts.DefaultValue},
	}
	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = c.value
	}
	return result
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) BGRAPH_CONFIG env, (3) ~/.bgraph/config.yaml
func ResolveConfigPath(flagValue string) (ResolvedValue, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolvedValue{}, err
	}
	return Resolve(ResolveOptions{
		Key:          "config",
		FlagValue:    flagValue,
		EnvVar:       EnvConfig,
		DefaultValue: paths.ConfigFile,
	}), nil
}

// ResolveGraphPath resolves the graph document using precedence:
// (1) --graph flag, (2) BGRAPH_GRAPH env, (3) bgraph.cue
func ResolveGraphPath(flagValue string) ResolvedValue {
	return Resolve(ResolveOptions{
		Key:          "graph",
		FlagValue:    flagValue,
		EnvVar:       EnvGraph,
		DefaultValue: DefaultGraphFile,
	})
}

// ResolveOutputRoot resolves the generated output root using precedence:
// (1) --output-root flag, (2) BGRAPH_OUTPUT_ROOT env, (3) config.outputRoot,
// (4) buck-out/gen
func ResolveOutputRoot(flagValue, configValue string) ResolvedValue {
	return Resolve(ResolveOptions{
		Key:          "outputRoot",
		FlagValue:    flagValue,
		EnvVar:       EnvOutputRoot,
		ConfigValue:  configValue,
		DefaultValue: DefaultOutputRoot,
	})
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values ...ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
