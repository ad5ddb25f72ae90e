// Package cmd provides command implementations for the bgraph CLI.
package cmd

// Exit codes returned by the bgraph binary.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates a malformed document, config, or
	// request, such as a flavored package target.
	ExitValidationError = 2

	// ExitConfigurationError indicates target arguments that cannot be
	// enhanced.
	ExitConfigurationError = 3

	// ExitGraphError indicates an inconsistent target or module graph.
	ExitGraphError = 4

	// ExitNotFound indicates a target, graph document, or config file was
	// not found.
	ExitNotFound = 5

	// ExitCollaboratorError indicates a stage collaborator failed.
	ExitCollaboratorError = 6
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitConfigurationError:
		return "Configuration Error"
	case ExitGraphError:
		return "Graph Error"
	case ExitNotFound:
		return "Not Found"
	case ExitCollaboratorError:
		return "Collaborator Error"
	default:
		return "Unknown"
	}
}
