package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bundlegraph/cli/internal/config"
	oerrors "github.com/bundlegraph/cli/internal/errors"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *config.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Initialize the bgraph CLI configuration.

Writes a YAML configuration file holding the default output root, worker
count, NDK ABIs, and javac settings. The file is created at
~/.bgraph/config.yaml unless --config or BGRAPH_CONFIG names another path.

Examples:
  # Initialize configuration
  bgraph config init

  # Overwrite existing configuration
  bgraph config init --force`,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigInit(c, cfg, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false,
		"Overwrite existing configuration")

	return c
}

func runConfigInit(c *cobra.Command, cfg *config.GlobalConfig, force bool) error {
	path := config.ExpandTilde(cfg.ConfigPath)

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return NewExitError(fmt.Errorf("checking config file: %w", err), ExitGeneralError)
	}
	if exists && !force {
		return NewExitError(&oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: path,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		}, ExitValidationError)
	}

	if err := config.WriteDefaultConfig(path, force); err != nil {
		return NewExitError(err, ExitGeneralError)
	}

	w := c.OutOrStdout()
	fmt.Fprintf(w, "Configuration initialized at %s\n", path)
	fmt.Fprintln(w, "Validate with: bgraph config vet")
	return nil
}
