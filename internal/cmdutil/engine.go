package cmdutil

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/bundlegraph/cli/internal/config"
	"github.com/bundlegraph/cli/internal/core"
	"github.com/bundlegraph/cli/internal/enhance"
	oerrors "github.com/bundlegraph/cli/internal/errors"
	"github.com/bundlegraph/cli/internal/identity"
	"github.com/bundlegraph/cli/internal/loader"
	"github.com/bundlegraph/cli/internal/registry"
	"github.com/bundlegraph/cli/internal/rules"
	"github.com/bundlegraph/cli/internal/targetgraph"
)

// LoadGraph reads the graph document resolved for this invocation.
func LoadGraph(cfg *config.GlobalConfig) (*targetgraph.Graph, error) {
	return loader.Load(afero.NewOsFs(), cfg.GraphPath)
}

// ResolveTargets parses the package targets named on the command line.
// With no arguments every android_aar target of the graph is selected, in
// declaration order.
func ResolveTargets(g *targetgraph.Graph, args []string) ([]identity.Identity, error) {
	if len(args) == 0 {
		targets := g.TargetsOfType(targetgraph.RuleAndroidAar)
		if len(targets) == 0 {
			return nil, oerrors.NewNotFoundError("the graph declares no android_aar targets", "", "name a target or add an android_aar target to the graph")
		}
		return targets, nil
	}

	targets := make([]identity.Identity, 0, len(args))
	for _, arg := range args {
		id, err := identity.Parse(arg)
		if err != nil {
			return nil, err
		}
		targets = append(targets, id)
	}
	return identity.Dedup(targets), nil
}

// Javac converts the javac settings of cfg.
func Javac(cfg *config.Config) (enhance.JavacConfig, error) {
	javac := enhance.JavacConfig{
		SourceLevel: cfg.Toolchain.Javac.SourceLevel,
		TargetLevel: cfg.Toolchain.Javac.TargetLevel,
	}
	if cfg.Toolchain.Javac.Tool != "" {
		tool, err := identity.Parse(cfg.Toolchain.Javac.Tool)
		if err != nil {
			return enhance.JavacConfig{}, oerrors.NewValidationError(err.Error(), "config", "toolchain.javac.tool", "")
		}
		javac.Tool = tool
	}
	return javac, nil
}

// NewEnhancer wires the enhancement pipeline with the default
// collaborators. Generated outputs are laid out under the resolved output
// root, relative to the directory holding the graph document.
func NewEnhancer(cfg *config.GlobalConfig, graph targetgraph.Accessor, reg *registry.Registry) (*enhance.Enhancer, error) {
	c, err := cfg.Resolved()
	if err != nil {
		return nil, &oerrors.DetailError{
			Type:     "invalid config",
			Message:  err.Error(),
			Location: cfg.ConfigPath,
			Hint:     "run 'bgraph config vet' for details",
			Cause:    oerrors.ErrValidation,
		}
	}
	javac, err := Javac(c)
	if err != nil {
		return nil, err
	}

	return enhance.New(enhance.Options{
		Graph:           graph,
		Registry:        reg,
		Filesystem:      core.NewProjectFilesystem(filepath.Dir(cfg.GraphPath), cfg.OutputRoot),
		Manifests:       rules.Manifest{},
		Directories:     rules.Directories{},
		NativeLibs:      rules.NativeLibs{},
		BuildConfigs:    rules.BuildConfig{},
		Matcher:         rules.NoopModuleMatcher{},
		Toolchain:       enhance.Toolchain{CPUAbis: c.Toolchain.NDK.CPUAbis},
		Javac:           javac,
		ExternalActions: c.Build.ExternalActions,
	})
}
