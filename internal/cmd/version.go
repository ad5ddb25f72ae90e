package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bundlegraph/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show bgraph CLI version information.

Displays:
  - bgraph version, commit, and build date
  - CUE SDK version graph documents are evaluated with`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			fmt.Fprintln(c.OutOrStdout(), version.Get().String())
			return nil
		},
	}
}
