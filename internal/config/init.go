package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configHeader = `# bgraph configuration.
# Precedence: flag > BGRAPH_* environment > this file > built-in default.
`

// RenderDefaultConfig renders DefaultConfig as commented YAML.
func RenderDefaultConfig() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(configHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(DefaultConfig()); err != nil {
		return nil, fmt.Errorf("encoding default config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding default config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteDefaultConfig writes the default config to path. An existing file is
// only replaced when force is set.
func WriteDefaultConfig(path string, force bool) error {
	path = ExpandTilde(path)

	exists, err := ConfigFileExists(path)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if exists && !force {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	}

	data, err := RenderDefaultConfig()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
