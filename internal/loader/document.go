// Package loader reads resolved target graph documents into a
// targetgraph.Graph. Documents may be written in CUE, YAML, JSON, or HCL;
// all four describe the same list of targets.
package loader

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies the encoding of a graph document.
type Format string

// Supported document formats.
const (
	FormatCUE  Format = "cue"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatHCL  Format = "hcl"
)

// FormatFromPath picks the document format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return FormatCUE, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("unsupported graph document %q: expected .cue, .yaml, .yml, .json or .hcl", path)
	}
}

// Document is the decoded form of a graph document.
type Document struct {
	Targets []*TargetSpec `json:"targets" hcl:"target,block"`
}

// TargetSpec is one declared target as written in a document. The json tags
// serve the CUE and YAML decoders; in HCL the type and name are block labels.
type TargetSpec struct {
	Type      string   `json:"type" hcl:"type,label"`
	Name      string   `json:"name" hcl:"name,label"`
	Deps      []string `json:"deps,omitempty" hcl:"deps,optional"`
	ExtraDeps []string `json:"extra_deps,omitempty" hcl:"extra_deps,optional"`

	Res      string `json:"res,omitempty" hcl:"res,optional"`
	Assets   string `json:"assets,omitempty" hcl:"assets,optional"`
	Manifest string `json:"manifest,omitempty" hcl:"manifest,optional"`

	NativeLibs string `json:"native_libs,omitempty" hcl:"native_libs,optional"`
	IsAsset    bool   `json:"is_asset,omitempty" hcl:"is_asset,optional"`

	BinaryJar string `json:"binary_jar,omitempty" hcl:"binary_jar,optional"`
	Package   string `json:"package,omitempty" hcl:"package,optional"`

	ManifestSkeleton         string              `json:"manifest_skeleton,omitempty" hcl:"manifest_skeleton,optional"`
	BuildConfigValues        []string            `json:"build_config_values,omitempty" hcl:"build_config_values,optional"`
	IncludeBuildConfigClass  bool                `json:"include_build_config_class,omitempty" hcl:"include_build_config_class,optional"`
	EnableRelinker           bool                `json:"enable_relinker,omitempty" hcl:"enable_relinker,optional"`
	RelinkerWhitelist        []string            `json:"relinker_whitelist,omitempty" hcl:"relinker_whitelist,optional"`
	RemoveClasses            []string            `json:"remove_classes,omitempty" hcl:"remove_classes,optional"`
	ApplicationModuleConfigs map[string][]string `json:"application_module_configs,omitempty" hcl:"application_module_configs,optional"`
}
