package enhance

import (
	"fmt"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/bundlegraph/cli/internal/identity"
	"github.com/bundlegraph/cli/internal/modulegraph"
	"github.com/bundlegraph/cli/internal/targetgraph"
)

const buildConfigNotIncludedMessage = "Rule %s has build_config_values set but does not set " +
	"include_build_config_class to True. Either indicate you want to include the BuildConfig " +
	"class in the final .aar or do not specify build config values."

// ValidateBuildConfig rejects build config values that would be silently
// dropped and values that do not parse.
func ValidateBuildConfig(target identity.Identity, args AarArgs) error {
	if len(args.BuildConfigValues) > 0 && !args.IncludeBuildConfigClass {
		return &ConfigurationError{
			Target:  target,
			Message: fmt.Sprintf(buildConfigNotIncludedMessage, target),
		}
	}
	if _, err := targetgraph.ParseBuildConfigFields(args.BuildConfigValues); err != nil {
		return &ConfigurationError{Target: target, Message: err.Error()}
	}
	return nil
}

// gate runs every check that must pass before anything is registered for
// target, and returns its node and decoded arguments.
func gate(acc targetgraph.Accessor, target identity.Identity) (*targetgraph.Node, AarArgs, error) {
	if err := identity.AssertUnflavored(target); err != nil {
		return nil, AarArgs{}, err
	}
	n, ok := acc.Node(target)
	if !ok {
		return nil, AarArgs{}, &ConfigurationError{Target: target, Message: "target is not declared"}
	}
	args, err := DecodeArgs(n)
	if err != nil {
		return nil, AarArgs{}, err
	}
	if err := ValidateBuildConfig(target, args); err != nil {
		return nil, AarArgs{}, err
	}
	return n, args, nil
}

// Check validates target without registering anything. Beyond the gates
// Enhance applies, it verifies that the closure resolves without cycles,
// that the module graph builds, that user flavors stay out of reserved
// vocabularies and that implicit dependencies are declared. All problems
// found are returned together.
func Check(acc targetgraph.Accessor, target identity.Identity, implicit []identity.Identity) error {
	n, _, err := gate(acc, target)
	if err != nil {
		return err
	}

	var errs []error
	closure, err := targetgraph.PostOrder(acc, []identity.Identity{target}, nil)
	if err != nil {
		errs = append(errs, err)
	}
	for _, dep := range closure {
		for _, f := range dep.ID.Flavors() {
			if err := identity.ValidateUserFlavor(f); err != nil {
				errs = append(errs, &ConfigurationError{Target: dep.ID, Message: err.Error()})
			}
		}
	}
	if _, err := modulegraph.New(acc, n.ID); err != nil {
		errs = append(errs, err)
	}
	for _, dep := range implicit {
		if _, ok := acc.Node(dep); !ok {
			errs = append(errs, &ConfigurationError{
				Target:  target,
				Message: fmt.Sprintf("implicit dependency %s is not declared", dep),
			})
		}
	}
	return utilerrors.NewAggregate(errs)
}
