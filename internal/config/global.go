package config

// GlobalFlags holds the raw values of CLI-wide flags.
type GlobalFlags struct {
	Config     string
	Graph      string
	OutputRoot string
	Verbose    bool
	Timestamps bool
}

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed into every sub-command
// constructor.
type GlobalConfig struct {
	// Config is the loaded configuration with defaults applied.
	Config *Config

	// LoadErr is set when the config file could not be read. Commands that
	// need configuration fail with it; config init and vet do not.
	LoadErr error

	// ConfigPath is the resolved --config path.
	ConfigPath string

	// GraphPath is the resolved --graph document.
	GraphPath string

	// OutputRoot is the resolved generated output root.
	OutputRoot string

	Flags GlobalFlags
}

// Resolved returns the loaded configuration or the error that prevented
// loading it.
func (g *GlobalConfig) Resolved() (*Config, error) {
	if g.LoadErr != nil {
		return nil, g.LoadErr
	}
	if g.Config == nil {
		return DefaultConfig(), nil
	}
	return g.Config, nil
}
