package enhance

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/bundlegraph/cli/internal/core"
	"github.com/bundlegraph/cli/internal/identity"
	"github.com/bundlegraph/cli/internal/modulegraph"
	"github.com/bundlegraph/cli/internal/output"
	"github.com/bundlegraph/cli/internal/packageable"
	"github.com/bundlegraph/cli/internal/registry"
	"github.com/bundlegraph/cli/internal/targetgraph"
)

// Rule types of the actions the pipeline synthesizes itself.
const (
	RuleTypeAar             = string(targetgraph.RuleAndroidAar)
	RuleTypeAndroidResource = string(targetgraph.RuleAndroidResource)
)

// Options configures an Enhancer.
type Options struct {
	// Graph resolves targets. Required.
	Graph targetgraph.Accessor

	// Registry receives every realized action. Required.
	Registry *registry.Registry

	// Filesystem lays out generated outputs. Required.
	Filesystem *core.ProjectFilesystem

	// Collaborators. All required.
	Manifests    ManifestBuilder
	Directories  DirectoryMerger
	NativeLibs   NativeLibsEnhancer
	BuildConfigs BuildConfigGenerator

	// Matcher is handed to the native libs enhancer.
	Matcher ModuleMatcher

	Toolchain Toolchain
	Javac     JavacConfig

	// ExternalActions is recorded on synthesized resource rules.
	ExternalActions bool
}

// Validate checks that required options are set.
func (o Options) Validate() error {
	switch {
	case o.Graph == nil:
		return errors.New("Graph is required")
	case o.Registry == nil:
		return errors.New("Registry is required")
	case o.Filesystem == nil:
		return errors.New("Filesystem is required")
	case o.Manifests == nil, o.Directories == nil, o.NativeLibs == nil, o.BuildConfigs == nil:
		return errors.New("all collaborators are required")
	}
	return nil
}

// Enhancer expands package targets into actions. It is safe for concurrent
// use; all enhancers sharing a registry share realized actions.
type Enhancer struct {
	opts Options
}

// New creates an Enhancer.
func New(opts Options) (*Enhancer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Enhancer{opts: opts}, nil
}

// Registry returns the registry the enhancer writes to.
func (e *Enhancer) Registry() *registry.Registry {
	return e.opts.Registry
}

// ImplicitDeps returns the targets every package target depends on without
// declaring them.
func ImplicitDeps(javac JavacConfig) []identity.Identity {
	if javac.Tool.IsZero() {
		return nil
	}
	return []identity.Identity{javac.Tool}
}

// Enhance expands target and returns its bundle. Enhancing a target twice
// returns the same terminal action.
//
// The expansion follows these stages:
//  0. Gates: unflavored identity, android_aar node, decodable arguments,
//     consistent build config. Nothing is registered before they pass.
//  1. Manifest synthesis
//  2. Module graph and packageable collection
//  3. Asset directory assembly
//  4. Resource directory assembly
//  5. Resource rule synthesis
//  6. Classpath accumulation, with generated BuildConfig libraries when
//     values are set and the class is included
//  7. Native library packaging
//  8. Terminal android_aar action
//
// Any stage error aborts. Sub-actions registered by earlier stages stay
// registered; the terminal action is not.
func (e *Enhancer) Enhance(target identity.Identity) (*Bundle, error) {
	n, args, err := gate(e.opts.Graph, target)
	if err != nil {
		return nil, err
	}

	terminal, err := e.opts.Registry.GetOrCompute(target, func() (*core.Action, error) {
		return e.run(n, args)
	})
	if err != nil {
		return nil, err
	}
	return BundleFrom(terminal)
}

// run executes stages 1 through 8 for a gated node.
func (e *Enhancer) run(n *targetgraph.Node, args AarArgs) (*core.Action, error) {
	base := n.ID
	fs := e.opts.Filesystem
	reg := e.opts.Registry
	logger := output.TargetLogger(base.String())

	st := &state{node: n, args: args}
	st.extra = append(st.extra, n.ExtraDeps...)

	// Stage 1: manifest
	manifestID := identity.DeriveFlavored(base, identity.FlavorAARManifest)
	manifest, err := e.compute(StageManifest, base, manifestID, func() (*core.Action, error) {
		return e.opts.Manifests.BuildManifest(manifestID, fs, reg, n.DeclaredDeps, args.ManifestSkeleton)
	})
	if err != nil {
		return nil, err
	}
	if st.manifest, err = requireOutput(StageManifest, base, manifest, "manifest"); err != nil {
		return nil, err
	}
	st.addSubAction(manifest)
	logger.Debug("manifest synthesized", "action", manifest.ID())

	// Stage 2: module graph and collection
	modules, err := modulegraph.New(e.opts.Graph, base)
	if err != nil {
		return nil, err
	}
	collection, err := packageable.Collect(e.opts.Graph, fs, n.DeclaredDeps, sets.New[string](), modules)
	if err != nil {
		return nil, err
	}
	logger.Debug("closure collected",
		"modules", len(modules.Modules()),
		"resources", len(collection.AllResourceDirs()),
		"assets", len(collection.AllAssetDirs()),
		"classpath", len(collection.ClasspathEntriesToDex()),
	)

	// Stage 3: assets
	assetsID := identity.DeriveFlavored(base, identity.FlavorAARAssembleAssets)
	assets, err := e.compute(StageAssets, base, assetsID, func() (*core.Action, error) {
		return e.opts.Directories.MergeDirectories(assetsID, fs, reg, DirectoryAssets, collection.AllAssetDirs())
	})
	if err != nil {
		return nil, err
	}
	if st.mergedAssets, err = requireOutput(StageAssets, base, assets, "merged"); err != nil {
		return nil, err
	}
	st.addSubAction(assets)

	// Stage 4: resources
	resourcesID := identity.DeriveFlavored(base, identity.FlavorAARAssembleResource)
	resources, err := e.compute(StageResources, base, resourcesID, func() (*core.Action, error) {
		return e.opts.Directories.MergeDirectories(resourcesID, fs, reg, DirectoryResources, collection.AllResourceDirs())
	})
	if err != nil {
		return nil, err
	}
	if st.mergedResources, err = requireOutput(StageResources, base, resources, "merged"); err != nil {
		return nil, err
	}
	st.addSubAction(resources)

	// Stage 5: resource rule
	resourceRuleID := identity.DeriveFlavored(base, identity.FlavorAARAndroidResource)
	resourceRule, err := reg.GetOrCompute(resourceRuleID, func() (*core.Action, error) {
		return e.resourceRule(resourceRuleID, st, manifest, assets, resources), nil
	})
	if err != nil {
		return nil, err
	}
	st.resourceRule = core.NewBuildTargetSourcePath(resourceRuleID, fs.GenDir(resourceRuleID))
	st.addSubAction(resourceRule)

	// Stage 6: classpath
	st.classpath = append(st.classpath, collection.ClasspathEntriesToDex()...)
	st.extra = append(st.extra, collection.JavaLibrariesToDex()...)
	if len(args.BuildConfigValues) > 0 && args.IncludeBuildConfigClass {
		if err := e.buildConfigs(st, collection); err != nil {
			return nil, err
		}
	}

	// Stage 7: native libraries
	if err := e.nativeLibs(st, collection, modules); err != nil {
		return nil, err
	}

	// Stage 8: terminal action
	terminal := e.assemble(st)
	logger.Debug("enhanced",
		"subActions", len(st.subActions),
		"classpath", len(st.classpath),
		"nativeLibs", len(st.nativeLibs)+len(st.nativeLibsAssets),
	)
	return terminal, nil
}

// state accumulates what the stages produce for the terminal action.
type state struct {
	node *targetgraph.Node
	args AarArgs

	extra      []identity.Identity
	subActions []identity.Identity

	manifest        core.SourcePath
	mergedAssets    core.SourcePath
	mergedResources core.SourcePath
	resourceRule    core.SourcePath

	classpath        []core.SourcePath
	nativeLibs       []core.SourcePath
	nativeLibsAssets []core.SourcePath
}

func (s *state) addSubAction(a *core.Action) {
	s.extra = append(s.extra, a.ID())
	s.subActions = append(s.subActions, a.ID())
}

// compute realizes one collaborator-built sub-action through the registry.
func (e *Enhancer) compute(stage Stage, target, id identity.Identity, build func() (*core.Action, error)) (*core.Action, error) {
	a, err := e.opts.Registry.GetOrCompute(id, build)
	if err != nil {
		return nil, &CollaboratorError{Stage: stage, Target: target, Err: err}
	}
	return a, nil
}

func requireOutput(stage Stage, target identity.Identity, a *core.Action, name string) (core.SourcePath, error) {
	p, ok := a.OutputPath(name)
	if !ok {
		return core.SourcePath{}, &CollaboratorError{
			Stage:  stage,
			Target: target,
			Err:    fmt.Errorf("action %s has no %q output", a.ID(), name),
		}
	}
	return p, nil
}

func (e *Enhancer) resourceRule(id identity.Identity, st *state, manifest, assets, resources *core.Action) *core.Action {
	fs := e.opts.Filesystem
	return core.NewAction(core.ActionSpec{
		ID:           id,
		RuleType:     RuleTypeAndroidResource,
		DeclaredDeps: st.node.DeclaredDeps,
		ExtraDeps:    []identity.Identity{assets.ID(), resources.ID(), manifest.ID()},
		Outputs: map[string][]core.SourcePath{
			"res":      {st.mergedResources},
			"assets":   {st.mergedAssets},
			"manifest": {st.manifest},
			"symbols":  {fs.Output(id, "R.txt")},
		},
		Attrs: map[string]string{
			"r_package":           "",
			"whitelisted_strings": "false",
			"external_actions":    strconv.FormatBool(e.opts.ExternalActions),
		},
	})
}

func (e *Enhancer) buildConfigs(st *state, collection *packageable.Collection) error {
	base := st.node.ID
	generated, err := e.opts.BuildConfigs.GenerateBuildConfig(BuildConfigRequest{
		Target:      base,
		Filesystem:  e.opts.Filesystem,
		Registry:    e.opts.Registry,
		PackageType: PackageTypeRelease,
		Values:      st.args.BuildConfigValues,
		Javac:       e.opts.Javac,
		Collection:  collection,
	})
	if err != nil {
		return &CollaboratorError{Stage: StageBuildConfig, Target: base, Err: err}
	}

	for _, a := range generated {
		registered := e.opts.Registry.AddToIndex(a)
		jar, err := requireOutput(StageBuildConfig, base, registered, "jar")
		if err != nil {
			return err
		}
		st.addSubAction(registered)
		st.classpath = append(st.classpath, jar)
	}
	return nil
}

func (e *Enhancer) nativeLibs(st *state, collection *packageable.Collection, modules *modulegraph.Graph) error {
	base := st.node.ID
	result, err := e.opts.NativeLibs.EnhanceNativeLibs(NativeLibsRequest{
		Toolchain:  e.opts.Toolchain,
		Registry:   e.opts.Registry,
		Target:     base,
		Filesystem: e.opts.Filesystem,
		Collection: collection,
		Modules:    modules,
		Relinker:   st.args.Relinker(),
		Matcher:    e.opts.Matcher,
	})
	if err != nil {
		return &CollaboratorError{Stage: StageNativeLibs, Target: base, Err: err}
	}
	if !result.IsApplicable() {
		return nil
	}

	copyAction, ok := result.CopyAction(modules.RootModule())
	if !ok {
		return &ConfigurationError{
			Target:  base,
			Message: "Native libraries are present but not in the root application module.",
		}
	}
	copyAction = e.opts.Registry.AddToIndex(copyAction)
	if o, ok := copyAction.Output("native_libs"); ok {
		st.nativeLibs = o.Paths
	}
	if o, ok := copyAction.Output("native_libs_assets"); ok {
		st.nativeLibsAssets = o.Paths
	}
	st.addSubAction(copyAction)
	return nil
}

// assemble builds the terminal action. It is registered by the caller.
func (e *Enhancer) assemble(st *state) *core.Action {
	base := st.node.ID

	removeClasses := append([]string(nil), st.args.RemoveClasses...)
	sort.Strings(removeClasses)

	return core.NewAction(core.ActionSpec{
		ID:           base,
		RuleType:     RuleTypeAar,
		DeclaredDeps: st.node.DeclaredDeps,
		ExtraDeps:    st.extra,
		Outputs: map[string][]core.SourcePath{
			OutputAar:              {e.opts.Filesystem.Output(base, base.Name()+".aar")},
			OutputManifest:         {st.manifest},
			OutputResourceRule:     {st.resourceRule},
			OutputMergedResources:  {st.mergedResources},
			OutputMergedAssets:     {st.mergedAssets},
			OutputNativeLibs:       st.nativeLibs,
			OutputNativeLibsAssets: st.nativeLibsAssets,
			OutputClasspath:        core.SortSourcePaths(st.classpath),
		},
		Attrs: map[string]string{
			AttrRemoveClasses: strings.Join(removeClasses, ","),
		},
	})
}
