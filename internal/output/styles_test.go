package output

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusStyle(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		wantBold bool
		wantFG   lipgloss.Color
	}{
		{
			name:   "registered returns green",
			status: StatusRegistered,
			wantFG: colorGreen,
		},
		{
			name:   "reused returns yellow",
			status: StatusReused,
			wantFG: ColorYellow,
		},
		{
			name:   "valid returns green",
			status: StatusValid,
			wantFG: colorGreen,
		},
		{
			name:     "failed returns bold red",
			status:   statusFailed,
			wantBold: true,
			wantFG:   colorBoldRed,
		},
		{
			name:   "unknown returns default unstyled",
			status: "unknown-value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := statusStyle(tt.status)
			if tt.wantBold {
				assert.True(t, style.GetBold(), "expected bold")
			}
			if tt.wantFG != "" {
				assert.Equal(t, tt.wantFG, style.GetForeground(), "foreground color mismatch")
			}
		})
	}
}

func TestFormatActionLine(t *testing.T) {
	tests := []struct {
		name     string
		ruleType string
		id       string
		status   string
	}{
		{"terminal action", "android_aar", "//app:aar", StatusRegistered},
		{"sub-action", "assemble_directories", "//app:aar#aar_assemble_assets", StatusReused},
		{"very long identity", "android_build_config", "//some/very/deep/package/path:target#aar_build_config_com_example_app", StatusValid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stripped := stripAnsi(FormatActionLine(tt.ruleType, tt.id, tt.status))
			assert.Contains(t, stripped, tt.ruleType)
			assert.Contains(t, stripped, tt.id)
			assert.True(t, strings.HasSuffix(stripped, tt.status), "status should be the suffix")
			assert.Contains(t, stripped, tt.id+"  ", "at least two spaces before the status")
		})
	}

	t.Run("statuses align", func(t *testing.T) {
		a := stripAnsi(FormatActionLine("android_aar", "//a:aar", StatusRegistered))
		b := stripAnsi(FormatActionLine("android_manifest", "//a:aar#aar_android_manifest", StatusRegistered))
		assert.Equal(t, strings.Index(a, StatusRegistered), strings.Index(b, StatusRegistered))
	})
}

func TestFormatFailedLine(t *testing.T) {
	stripped := stripAnsi(FormatFailedLine("//app:aar"))
	assert.Contains(t, stripped, "//app:aar")
	assert.True(t, strings.HasSuffix(stripped, "failed"))
}

func TestFormatCheckmark(t *testing.T) {
	stripped := stripAnsi(FormatCheckmark("Enhanced 2 targets"))
	assert.Equal(t, "✔ Enhanced 2 targets", stripped)
}

func TestFormatOutputLine(t *testing.T) {
	stripped := stripAnsi(FormatOutputLine("manifest", "buck-out/gen/app/AndroidManifest.xml"))
	assert.Contains(t, stripped, "▸")
	assert.Contains(t, stripped, "manifest")
	assert.Contains(t, stripped, "←")
	assert.Contains(t, stripped, "buck-out/gen/app/AndroidManifest.xml")

	empty := stripAnsi(FormatOutputLine("native_libs", ""))
	assert.Contains(t, empty, "(empty)")
	assert.NotContains(t, empty, "←")
}

// stripAnsi removes ANSI escape sequences for content assertions.
func stripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if s[i] == 'm' {
				inEscape = false
			}
			continue
		}
		result.WriteByte(s[i])
	}
	return result.String()
}
