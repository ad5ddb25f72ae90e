package core

import (
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bundlegraph/cli/internal/identity"
)

// DefaultOutputRoot is where generated outputs live, relative to the
// project root.
const DefaultOutputRoot = "buck-out/gen"

// ProjectFilesystem resolves where actions place their outputs. It never
// touches the disk; layouts are pure functions of identities.
type ProjectFilesystem struct {
	root       string
	outputRoot string
}

// NewProjectFilesystem returns a filesystem rooted at root. An empty
// outputRoot falls back to DefaultOutputRoot.
func NewProjectFilesystem(root, outputRoot string) *ProjectFilesystem {
	if outputRoot == "" {
		outputRoot = DefaultOutputRoot
	}
	return &ProjectFilesystem{
		root:       root,
		outputRoot: path.Clean(filepath.ToSlash(outputRoot)),
	}
}

// Root returns the project root.
func (fs *ProjectFilesystem) Root() string {
	return fs.root
}

// OutputRoot returns the generated output root, slash separated.
func (fs *ProjectFilesystem) OutputRoot() string {
	return fs.outputRoot
}

// GenDir returns the scratch directory owned by id:
// <outputRoot>/<package>/__<name>[#flavors]__
func (fs *ProjectFilesystem) GenDir(id identity.Identity) string {
	name := id.Name()
	if id.HasFlavors() {
		flavors := id.Flavors()
		parts := make([]string, len(flavors))
		for i, f := range flavors {
			parts[i] = string(f)
		}
		sort.Strings(parts)
		name += "#" + strings.Join(parts, ",")
	}
	return path.Join(fs.outputRoot, id.Package(), "__"+name+"__")
}

// GenPath returns a file path inside id's scratch directory.
func (fs *ProjectFilesystem) GenPath(id identity.Identity, elem ...string) string {
	return path.Join(append([]string{fs.GenDir(id)}, elem...)...)
}

// Output returns a SourcePath for a file generated by id.
func (fs *ProjectFilesystem) Output(id identity.Identity, elem ...string) SourcePath {
	return NewBuildTargetSourcePath(id, fs.GenPath(id, elem...))
}

// Resolve returns the host path of p under the project root.
func (fs *ProjectFilesystem) Resolve(p SourcePath) string {
	return filepath.Join(fs.root, filepath.FromSlash(p.Path))
}
