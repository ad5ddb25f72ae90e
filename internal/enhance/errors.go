package enhance

import (
	"fmt"

	oerrors "github.com/bundlegraph/cli/internal/errors"
	"github.com/bundlegraph/cli/internal/identity"
)

// Stage names a pipeline stage in errors and logs.
type Stage string

// Pipeline stages in execution order.
const (
	StageManifest     Stage = "manifest"
	StageCollect      Stage = "collect"
	StageAssets       Stage = "assemble-assets"
	StageResources    Stage = "assemble-resources"
	StageResourceRule Stage = "resource-rule"
	StageClasspath    Stage = "classpath"
	StageBuildConfig  Stage = "build-config"
	StageNativeLibs   Stage = "native-libs"
	StageAssemble     Stage = "assemble"
)

// ConfigurationError reports a package target whose arguments cannot be
// enhanced.
type ConfigurationError struct {
	Target  identity.Identity
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Target, e.Message)
}

// Is matches errors.ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == oerrors.ErrConfiguration
}

// CollaboratorError reports a failing collaborator. Unwrap returns the
// collaborator's own error so callers can still match it.
type CollaboratorError struct {
	Stage  Stage
	Target identity.Identity
	Err    error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %s stage: %v", e.Target, e.Stage, e.Err)
}

// Unwrap returns the collaborator's error.
func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// Is matches errors.ErrCollaborator.
func (e *CollaboratorError) Is(target error) bool {
	return target == oerrors.ErrCollaborator
}
