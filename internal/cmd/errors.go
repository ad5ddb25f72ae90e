package cmd

import (
	"errors"

	oerrors "github.com/bundlegraph/cli/internal/errors"
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed is set when the command already reported Err to the user.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
// Aggregates map to the first matching kind in the order below.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, oerrors.ErrGraphConsistency):
		return ExitGraphError
	case errors.Is(err, oerrors.ErrConfiguration):
		return ExitConfigurationError
	case errors.Is(err, oerrors.ErrValidation), errors.Is(err, oerrors.ErrInvalidInput):
		return ExitValidationError
	case errors.Is(err, oerrors.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, oerrors.ErrCollaborator):
		return ExitCollaboratorError
	default:
		return ExitGeneralError
	}
}

// exitWith wraps err with the exit code its kind maps to and marks it as
// already printed.
func exitWith(err error) *ExitError {
	return &ExitError{Err: err, Code: ExitCodeFromError(err), Printed: true}
}
