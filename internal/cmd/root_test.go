package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bundlegraph/cli/internal/testutil"
)

// execute runs the root command with args against an isolated home
// directory and returns what it wrote to stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("BGRAPH_CONFIG", "")
	t.Setenv("BGRAPH_GRAPH", "")
	t.Setenv("BGRAPH_OUTPUT_ROOT", "")

	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func simpleGraph(t *testing.T) string {
	t.Helper()
	return testutil.FixturePath(t, "graphs", "simple.yaml")
}

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()

	assert.Equal(t, "bgraph", root.Use)
	for _, flag := range []string{"config", "graph", "output-root", "verbose", "timestamps"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"build", "graph", "vet", "diff", "config", "version"})
}

func TestInitializeGlobals_ConfigLoadErrorIsDeferred(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "config.yaml", "workers: [not, a, number]\n")

	// version does not need configuration, so a broken file must not stop it.
	stdout, _, err := execute(t, "--config", path, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "bgraph version")

	_, _, err = execute(t, "--config", path, "-g", simpleGraph(t), "build")
	require.Error(t, err)
	assert.Equal(t, ExitValidationError, ExitCodeFromError(err))
}

func TestInitializeGlobals_GraphFromEnv(t *testing.T) {
	graph := simpleGraph(t)

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("BGRAPH_CONFIG", filepath.Join(home, "missing.yaml"))
	t.Setenv("BGRAPH_GRAPH", graph)

	root := NewRootCmd()
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"vet"})

	require.NoError(t, root.Execute())
	assert.Contains(t, stdout.String(), "//app:aar")
}
