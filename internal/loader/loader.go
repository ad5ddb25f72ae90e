package loader

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	oerrors "github.com/bundlegraph/cli/internal/errors"
	"github.com/bundlegraph/cli/internal/identity"
	"github.com/bundlegraph/cli/internal/output"
	"github.com/bundlegraph/cli/internal/targetgraph"
)

var knownTypes = map[targetgraph.RuleType]struct{}{
	targetgraph.RuleAndroidAar:            {},
	targetgraph.RuleAndroidResource:       {},
	targetgraph.RuleAndroidLibrary:        {},
	targetgraph.RuleJavaLibrary:           {},
	targetgraph.RulePrebuiltJar:           {},
	targetgraph.RulePrebuiltNativeLibrary: {},
	targetgraph.RuleAndroidBuildConfig:    {},
}

// Load reads the graph document at path from fsys and builds the target
// graph it describes.
func Load(fsys afero.Fs, path string) (*targetgraph.Graph, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, oerrors.NewValidationError(err.Error(), path, "", "rename the document with a supported extension")
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.NewNotFoundError("graph document not found", path, "pass --graph or set BGRAPH_GRAPH")
		}
		return nil, fmt.Errorf("reading graph document: %w", err)
	}

	doc, err := Decode(data, format, path)
	if err != nil {
		return nil, &oerrors.DetailError{
			Type:     "validation failed",
			Message:  err.Error(),
			Location: path,
			Cause:    oerrors.ErrValidation,
		}
	}

	g, err := Build(doc)
	if err != nil {
		return nil, err
	}
	output.Debug("loaded graph document", "path", path, "format", format, "targets", g.Len())
	return g, nil
}

// Build converts a decoded document into a graph. Every name and dependency
// must parse as a user identity, rule types must be known, build config
// values must be well formed, and no name may be declared twice.
func Build(doc *Document) (*targetgraph.Graph, error) {
	g := targetgraph.New()
	for _, spec := range doc.Targets {
		n, err := buildNode(spec)
		if err != nil {
			return nil, err
		}
		if err := g.Add(n); err != nil {
			return nil, oerrors.NewConfigurationError(err.Error(), spec.Name, "name", "give each target a unique name")
		}
	}
	return g, nil
}

func buildNode(spec *TargetSpec) (*targetgraph.Node, error) {
	id, err := identity.Parse(spec.Name)
	if err != nil {
		return nil, oerrors.NewConfigurationError(err.Error(), spec.Name, "name", "")
	}

	ruleType := targetgraph.RuleType(spec.Type)
	if _, ok := knownTypes[ruleType]; !ok {
		return nil, oerrors.NewConfigurationError(
			fmt.Sprintf("unknown rule type %q", spec.Type), spec.Name, "type", "")
	}

	declared, err := parseDeps(spec.Name, "deps", spec.Deps)
	if err != nil {
		return nil, err
	}
	extra, err := parseDeps(spec.Name, "extra_deps", spec.ExtraDeps)
	if err != nil {
		return nil, err
	}

	if _, err := targetgraph.ParseBuildConfigFields(spec.BuildConfigValues); err != nil {
		return nil, oerrors.NewConfigurationError(err.Error(), spec.Name, "build_config_values", "")
	}

	return &targetgraph.Node{
		ID:           id,
		Type:         ruleType,
		DeclaredDeps: declared,
		ExtraDeps:    extra,
		Args: targetgraph.Args{
			Res:                      spec.Res,
			Assets:                   spec.Assets,
			Manifest:                 spec.Manifest,
			NativeLibs:               spec.NativeLibs,
			IsAsset:                  spec.IsAsset,
			BinaryJar:                spec.BinaryJar,
			Package:                  spec.Package,
			ManifestSkeleton:         spec.ManifestSkeleton,
			BuildConfigValues:        spec.BuildConfigValues,
			IncludeBuildConfigClass:  spec.IncludeBuildConfigClass,
			EnableRelinker:           spec.EnableRelinker,
			RelinkerWhitelist:        spec.RelinkerWhitelist,
			RemoveClasses:            spec.RemoveClasses,
			ApplicationModuleConfigs: spec.ApplicationModuleConfigs,
		},
	}, nil
}

func parseDeps(target, field string, raw []string) ([]identity.Identity, error) {
	deps := make([]identity.Identity, 0, len(raw))
	for _, r := range raw {
		dep, err := identity.Parse(r)
		if err != nil {
			return nil, oerrors.NewConfigurationError(err.Error(), target, field, "")
		}
		deps = append(deps, dep)
	}
	return deps, nil
}
