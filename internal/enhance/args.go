package enhance

import (
	"fmt"
	"regexp"

	"github.com/bundlegraph/cli/internal/core"
	"github.com/bundlegraph/cli/internal/targetgraph"
)

// AarArgs are the decoded arguments of an android_aar target.
type AarArgs struct {
	ManifestSkeleton        core.SourcePath
	BuildConfigValues       []string
	IncludeBuildConfigClass bool
	EnableRelinker          bool
	RelinkerWhitelist       []*regexp.Regexp
	RemoveClasses           []string
}

// Relinker returns the relinker policy described by the arguments.
func (a AarArgs) Relinker() RelinkerPolicy {
	return RelinkerPolicy{Enabled: a.EnableRelinker, Whitelist: a.RelinkerWhitelist}
}

// DecodeArgs reads the android_aar arguments of n.
func DecodeArgs(n *targetgraph.Node) (AarArgs, error) {
	if n.Type != targetgraph.RuleAndroidAar {
		return AarArgs{}, &ConfigurationError{
			Target:  n.ID,
			Message: fmt.Sprintf("expected a %s target, got %s", targetgraph.RuleAndroidAar, n.Type),
		}
	}
	if n.Args.ManifestSkeleton == "" {
		return AarArgs{}, &ConfigurationError{Target: n.ID, Message: "manifest_skeleton is required"}
	}

	args := AarArgs{
		ManifestSkeleton:        core.NewPathSourcePath(n.Args.ManifestSkeleton),
		BuildConfigValues:       append([]string(nil), n.Args.BuildConfigValues...),
		IncludeBuildConfigClass: n.Args.IncludeBuildConfigClass,
		EnableRelinker:          n.Args.EnableRelinker,
		RemoveClasses:           append([]string(nil), n.Args.RemoveClasses...),
	}
	for _, pattern := range n.Args.RelinkerWhitelist {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return AarArgs{}, &ConfigurationError{
				Target:  n.ID,
				Message: fmt.Sprintf("invalid relinker_whitelist pattern %q: %v", pattern, err),
			}
		}
		args.RelinkerWhitelist = append(args.RelinkerWhitelist, re)
	}
	return args, nil
}
