package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/bundlegraph/cli/internal/core"
)

// SplitOptions controls split file output.
type SplitOptions struct {
	// OutDir is the directory for split output
	OutDir string
	// Format specifies output format: "yaml" or "json"
	Format OutputFormat
}

// WriteSplitActions writes each action to a separate file on fs.
// Files are named <package>-<name>[-<flavors>].<ext>
func WriteSplitActions(fs afero.Fs, records []core.ActionRecord, opts SplitOptions) ([]string, error) {
	if len(records) == 0 {
		return nil, nil
	}

	if err := fs.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	// Track filenames to handle collisions
	usedNames := make(map[string]int)

	var written []string
	for _, rec := range records {
		path := filepath.Join(opts.OutDir, buildFilename(rec.ID, opts.Format, usedNames))
		if err := writeActionFile(fs, rec, path, opts.Format); err != nil {
			return written, fmt.Errorf("writing %s: %w", path, err)
		}
		written = append(written, path)

		Debug("wrote action file", "action", rec.ID, "file", path)
	}

	return written, nil
}

// buildFilename creates a filename for an action identity.
func buildFilename(id string, format OutputFormat, usedNames map[string]int) string {
	ext := ".yaml"
	if format == FormatJSON {
		ext = ".json"
	}

	baseName := sanitizeName(strings.TrimPrefix(id, "//"))
	if baseName == "" {
		baseName = "action"
	}

	count, exists := usedNames[baseName]
	if exists {
		usedNames[baseName] = count + 1
		return fmt.Sprintf("%s-%d%s", baseName, count+1, ext)
	}

	usedNames[baseName] = 1
	return baseName + ext
}

// sanitizeName makes an identity safe for use in filenames.
func sanitizeName(name string) string {
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"#", "-",
		",", "-",
		"*", "-",
		"?", "-",
		"\"", "",
		"<", "",
		">", "",
		"|", "-",
	)
	return replacer.Replace(name)
}

// writeActionFile writes a single action record to a file.
func writeActionFile(fs afero.Fs, rec core.ActionRecord, destPath string, format OutputFormat) error {
	f, err := fs.Create(destPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if format == FormatJSON {
		return writeJSON(rec, f)
	}
	return writeYAML(rec, f)
}
