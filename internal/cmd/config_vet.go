package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bundlegraph/cli/internal/config"
	"github.com/bundlegraph/cli/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the bgraph CLI configuration file.

Checks performed:
  1. Config file exists at the resolved path
  2. Config file is valid YAML
  3. Config matches the schema (unknown keys are rejected)
  4. Values are in range: workers, NDK ABIs, javac levels and tool

The config path is resolved using precedence:
  --config flag > BGRAPH_CONFIG env > ~/.bgraph/config.yaml

Examples:
  # Validate default configuration
  bgraph config vet

  # Validate custom config path
  bgraph config vet --config /path/to/config.yaml`,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigVet(c, cfg)
		},
	}
}

func runConfigVet(c *cobra.Command, cfg *config.GlobalConfig) error {
	path := config.ExpandTilde(cfg.ConfigPath)

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return NewExitError(fmt.Errorf("checking config file: %w", err), ExitGeneralError)
	}
	if !exists {
		return NewExitError(fmt.Errorf("config file not found: %s", path), ExitNotFound)
	}

	validator, err := config.NewValidator()
	if err != nil {
		return NewExitError(fmt.Errorf("creating validator: %w", err), ExitGeneralError)
	}

	if err := validator.ValidateFile(path); err != nil {
		var verrs config.ValidationErrors
		if errors.As(err, &verrs) {
			stderr := c.ErrOrStderr()
			fmt.Fprintln(stderr, "Error: config validation failed")
			fmt.Fprintf(stderr, "  File: %s\n\n", path)
			for _, e := range verrs {
				fmt.Fprintf(stderr, "  %s: %s\n", e.Field, e.Message)
			}
			return &ExitError{Err: err, Code: ExitValidationError, Printed: true}
		}
		return NewExitError(fmt.Errorf("validating config: %w", err), ExitValidationError)
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Config file is valid: "+path))
	return nil
}
