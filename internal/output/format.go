package output

import "strings"

// OutputFormat specifies the output format.
type OutputFormat string

const (
	// FormatYAML outputs in YAML format.
	FormatYAML OutputFormat = "yaml"

	// FormatJSON outputs in JSON format.
	FormatJSON OutputFormat = "json"

	// FormatTable outputs a summary table.
	FormatTable OutputFormat = "table"

	// FormatDir writes one file per action to a directory.
	FormatDir OutputFormat = "dir"
)

// String returns the string representation of the output format.
func (f OutputFormat) String() string {
	return string(f)
}

// Valid checks if the output format is valid.
func (f OutputFormat) Valid() bool {
	switch f {
	case FormatYAML, FormatJSON, FormatTable, FormatDir:
		return true
	default:
		return false
	}
}

// ParseOutputFormat parses a string into an OutputFormat, case-insensitively.
// The second result reports whether the format is valid; invalid input is
// returned unchanged.
func ParseOutputFormat(s string) (OutputFormat, bool) {
	f := OutputFormat(strings.ToLower(s))
	if !f.Valid() {
		return OutputFormat(s), false
	}
	return f, true
}

// ValidFormats returns a slice of valid output format strings.
func ValidFormats() []string {
	return []string{"yaml", "json", "table", "dir"}
}

// ValidDocumentFormats returns the formats a single document can be written in.
func ValidDocumentFormats() []string {
	return []string{"yaml", "json"}
}
