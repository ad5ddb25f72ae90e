package config

import (
	"os"
	"path/filepath"
)

// Paths contains standard filesystem paths for bgraph.
type Paths struct {
	// ConfigFile is the path to the config file (~/.bgraph/config.yaml).
	ConfigFile string

	// HomeDir is the bgraph home directory (~/.bgraph).
	HomeDir string
}

// DefaultPaths returns the default paths for bgraph.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	home := filepath.Join(homeDir, ".bgraph")

	return &Paths{
		ConfigFile: filepath.Join(home, "config.yaml"),
		HomeDir:    home,
	}, nil
}

// ExpandTilde expands a leading ~ to the user's home directory. Paths of the
// form ~username are returned unchanged.
func ExpandTilde(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
