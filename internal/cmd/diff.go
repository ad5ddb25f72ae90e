package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/bundlegraph/cli/internal/cmdutil"
	"github.com/bundlegraph/cli/internal/config"
	oerrors "github.com/bundlegraph/cli/internal/errors"
	"github.com/bundlegraph/cli/internal/output"
)

// NewDiffCmd creates the diff command.
func NewDiffCmd(_ *config.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "diff <from> <to>",
		Short: "Compare two action graph documents",
		Long: `Compare two action graphs written by 'bgraph build' in YAML or JSON.

Actions are matched by identity. Added and removed actions are listed, and
actions present in both with different content are shown as a structural
diff. The command exits 1 when the graphs differ.

Examples:
  bgraph build //app:aar --all-actions > before.yaml
  bgraph build //app:aar --all-actions > after.yaml
  bgraph diff before.yaml after.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: runDiff,
	}
	return c
}

func runDiff(c *cobra.Command, args []string) error {
	from, err := readActionGraph(args[0])
	if err != nil {
		cmdutil.PrintError("reading action graph failed", err)
		return exitWith(err)
	}
	to, err := readActionGraph(args[1])
	if err != nil {
		cmdutil.PrintError("reading action graph failed", err)
		return exitWith(err)
	}

	result, err := output.DiffActions(from.Actions, to.Actions, output.IsTTY())
	if err != nil {
		return NewExitError(fmt.Errorf("comparing action graphs: %w", err), ExitGeneralError)
	}

	fmt.Fprintln(c.OutOrStdout(), output.RenderDiff(result))
	if !result.IsEmpty() {
		return &ExitError{
			Err:     fmt.Errorf("action graphs differ: %s", result.Summary()),
			Code:    ExitGeneralError,
			Printed: true,
		}
	}
	return nil
}

func readActionGraph(path string) (*output.ActionGraph, error) {
	graph, err := output.ReadActionsFile(path)
	if err == nil {
		return graph, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, oerrors.NewNotFoundError("action graph not found", path, "")
	}
	return nil, &oerrors.DetailError{
		Type:     "invalid action graph",
		Message:  err.Error(),
		Location: path,
		Cause:    oerrors.ErrValidation,
	}
}
