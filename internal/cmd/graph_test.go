package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_RendersBundleTree(t *testing.T) {
	stdout, _, err := execute(t, "-g", simpleGraph(t), "graph", "//app:aar")
	require.NoError(t, err)

	assert.Contains(t, stdout, "//app:aar")
	assert.Contains(t, stdout, "sub-actions")
	assert.Contains(t, stdout, "//app:aar#aar_android_manifest")
	assert.Contains(t, stdout, "outputs")
	assert.Contains(t, stdout, "AndroidManifest.xml")
}

func TestGraph_UnknownTarget(t *testing.T) {
	_, _, err := execute(t, "-g", simpleGraph(t), "graph", "//lib:res")
	require.Error(t, err)
	assert.Equal(t, ExitConfigurationError, ExitCodeFromError(err))
}
