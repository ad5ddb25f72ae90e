package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPaths(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	paths, err := DefaultPaths()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(homeDir, ".bgraph"), paths.HomeDir)
	assert.Equal(t, filepath.Join(homeDir, ".bgraph", "config.yaml"), paths.ConfigFile)
}

func TestExpandTilde(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	assert.NoError(t, err, "should get home directory")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty string", input: "", expected: ""},
		{name: "no tilde", input: "/absolute/path", expected: "/absolute/path"},
		{name: "relative path without tilde", input: "relative/path", expected: "relative/path"},
		{name: "tilde only", input: "~", expected: homeDir},
		{name: "tilde with slash", input: "~/.bgraph/config.yaml", expected: filepath.Join(homeDir, ".bgraph", "config.yaml")},
		{name: "tilde username pattern (not expanded)", input: "~username/file", expected: "~username/file"},
		{name: "tilde in middle (not expanded)", input: "/path/~/file", expected: "/path/~/file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandTilde(tt.input))
		})
	}
}
