package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for bgraph configuration.
const envPrefix = "BGRAPH"

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	// Nested keys map to BGRAPH_TOOLCHAIN_JAVAC_TOOL and friends.
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("outputRoot", "BGRAPH_OUTPUT_ROOT")
	_ = v.BindEnv("workers", "BGRAPH_WORKERS")
	_ = v.BindEnv("log.timestamps", "BGRAPH_LOG_TIMESTAMPS")
	_ = v.BindEnv("toolchain.ndk.cpuAbis", "BGRAPH_TOOLCHAIN_NDK_CPUABIS")
	_ = v.BindEnv("toolchain.javac.sourceLevel", "BGRAPH_TOOLCHAIN_JAVAC_SOURCELEVEL")
	_ = v.BindEnv("toolchain.javac.targetLevel", "BGRAPH_TOOLCHAIN_JAVAC_TARGETLEVEL")
	_ = v.BindEnv("toolchain.javac.tool", "BGRAPH_TOOLCHAIN_JAVAC_TOOL")
	_ = v.BindEnv("build.externalActions", "BGRAPH_BUILD_EXTERNALACTIONS")

	return &Loader{v: v}
}

// Load loads configuration from the given file path.
// If configFile is empty, it uses the default config file path.
// A missing file is not an error; environment variables take precedence
// over file values.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		paths, err := DefaultPaths()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
		configFile = paths.ConfigFile
	}

	l.v.SetConfigFile(ExpandTilde(configFile))
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LoadWithDefaults loads configuration and applies defaults.
func (l *Loader) LoadWithDefaults(configFile string) (*Config, error) {
	cfg, err := l.Load(configFile)
	if err != nil {
		return nil, err
	}
	return cfg.WithDefaults(), nil
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(configFile string) (bool, error) {
	_, err := os.Stat(ExpandTilde(configFile))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
