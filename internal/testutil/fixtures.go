// Package testutil provides test helpers shared across bgraph packages.
package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixturesDir = "tests/fixtures"

// FixturePath resolves parts below tests/fixtures, searching upwards from
// the package directory of the running test.
func FixturePath(t *testing.T, parts ...string) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)

	for dir := wd; ; dir = filepath.Dir(dir) {
		root := filepath.Join(dir, filepath.FromSlash(fixturesDir))
		if info, err := os.Stat(root); err == nil && info.IsDir() {
			return filepath.Join(append([]string{root}, parts...)...)
		}
		if filepath.Dir(dir) == dir {
			t.Fatalf("no %s above %s", fixturesDir, wd)
		}
	}
}

// WriteFile writes content to dir/name, creating parent directories, and
// returns the file path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// CopyFixture copies the named fixture tree into a fresh test directory so
// a test can write next to it.
func CopyFixture(t *testing.T, name string) string {
	t.Helper()
	src := FixturePath(t, name)
	dst := t.TempDir()

	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
	require.NoError(t, err, "copying fixture %s", name)
	return dst
}
