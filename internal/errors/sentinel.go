package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates a schema or document validation failure.
	ErrValidation = errors.New("validation error")

	// ErrInvalidInput indicates a malformed request, such as a flavored
	// package target handed to enhancement.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration indicates a user-correctable argument combination.
	ErrConfiguration = errors.New("configuration error")

	// ErrGraphConsistency indicates an internal invariant of the target or
	// module graph was violated. These are defects, not user mistakes.
	ErrGraphConsistency = errors.New("graph consistency error")

	// ErrCollaborator indicates an external stage collaborator failed.
	ErrCollaborator = errors.New("collaborator failure")

	// ErrNotFound indicates a target, file, or config was not found.
	ErrNotFound = errors.New("not found")
)
