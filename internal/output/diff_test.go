package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bundlegraph/cli/internal/core"
)

func TestRenderDiff(t *testing.T) {
	t.Run("renders no changes message", func(t *testing.T) {
		result := RenderDiff(&DiffResult{})
		assert.Equal(t, "No changes detected.", result)
	})

	t.Run("renders added actions", func(t *testing.T) {
		result := RenderDiff(&DiffResult{Added: []string{"//app:aar#aar_android_manifest"}})

		assert.Contains(t, result, "Added:")
		assert.Contains(t, result, "//app:aar#aar_android_manifest")
		assert.Contains(t, result, "1 added")
	})

	t.Run("renders removed actions", func(t *testing.T) {
		result := RenderDiff(&DiffResult{Removed: []string{"//app:aar#aar_copy_native_libraries"}})

		assert.Contains(t, result, "Removed:")
		assert.Contains(t, result, "//app:aar#aar_copy_native_libraries")
		assert.Contains(t, result, "1 removed")
	})

	t.Run("renders modified actions", func(t *testing.T) {
		result := RenderDiff(&DiffResult{Modified: []ModifiedAction{
			{ID: "//app:aar", Diff: "attributes.remove_classes\n  - a\n  + b"},
		}})

		assert.Contains(t, result, "Modified:")
		assert.Contains(t, result, "//app:aar")
		assert.Contains(t, result, "    attributes.remove_classes")
		assert.Contains(t, result, "1 modified")
	})

	t.Run("renders all change types", func(t *testing.T) {
		result := RenderDiff(&DiffResult{
			Added:    []string{"//a:new"},
			Removed:  []string{"//a:old"},
			Modified: []ModifiedAction{{ID: "//a:aar", Diff: "changed"}},
		})

		assert.Contains(t, result, "Added:")
		assert.Contains(t, result, "Removed:")
		assert.Contains(t, result, "Modified:")
		assert.Contains(t, result, "1 added, 1 removed, 1 modified")
	})
}

func TestDiffActions(t *testing.T) {
	from := []core.ActionRecord{
		{ID: "//app:aar", RuleType: "android_aar", Attributes: map[string]string{"remove_classes": "com.example.A"}},
		{ID: "//app:aar#aar_copy_native_libraries", RuleType: "copy_native_libraries"},
		{ID: "//app:aar#aar_android_manifest", RuleType: "android_manifest"},
	}
	to := []core.ActionRecord{
		{ID: "//app:aar#aar_android_manifest", RuleType: "android_manifest"},
		{ID: "//app:aar", RuleType: "android_aar", Attributes: map[string]string{"remove_classes": "com.example.B"}},
		{ID: "//app:aar#aar_build_config_com_example", RuleType: "android_build_config"},
	}

	result, err := DiffActions(from, to, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"//app:aar#aar_build_config_com_example"}, result.Added)
	assert.Equal(t, []string{"//app:aar#aar_copy_native_libraries"}, result.Removed)
	require.Len(t, result.Modified, 1)
	assert.Equal(t, "//app:aar", result.Modified[0].ID)
	assert.Contains(t, result.Modified[0].Diff, "remove_classes")
	assert.Equal(t, "1 added, 1 removed, 1 modified", result.Summary())
}

func TestDiffActionsIdentical(t *testing.T) {
	records := []core.ActionRecord{
		{ID: "//app:aar", RuleType: "android_aar", ExtraDeps: []string{"//app:aar#aar_android_manifest"}},
	}
	result, err := DiffActions(records, records, false)
	require.NoError(t, err)
	assert.True(t, result.IsEmpty())
	assert.Equal(t, "No changes", result.Summary())
}

func TestDiffYAML(t *testing.T) {
	t.Run("empty inputs", func(t *testing.T) {
		diff, err := DiffYAML(nil, []byte("  \n"), false)
		require.NoError(t, err)
		assert.Empty(t, diff)
	})

	t.Run("identical documents", func(t *testing.T) {
		doc := []byte("id: //app:aar\ntype: android_aar\n")
		diff, err := DiffYAML(doc, doc, false)
		require.NoError(t, err)
		assert.Empty(t, diff)
	})

	t.Run("changed value", func(t *testing.T) {
		diff, err := DiffYAML([]byte("type: android_aar\n"), []byte("type: android_resource\n"), false)
		require.NoError(t, err)
		assert.Contains(t, diff, "android_aar")
		assert.Contains(t, diff, "android_resource")
	})
}

func TestIndentDiff(t *testing.T) {
	assert.Empty(t, IndentDiff("", "  "))
	assert.Equal(t, "  a\n  b\n", IndentDiff("a\n\nb", "  "))
}
