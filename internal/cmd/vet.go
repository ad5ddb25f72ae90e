package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/bundlegraph/cli/internal/cmdutil"
	"github.com/bundlegraph/cli/internal/config"
	"github.com/bundlegraph/cli/internal/enhance"
	"github.com/bundlegraph/cli/internal/output"
)

// NewVetCmd creates the vet command.
func NewVetCmd(cfg *config.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "vet [target]...",
		Short: "Check package targets without enhancing them",
		Long: `Check that package targets can be enhanced. No actions are created.

Each target is checked for an android_aar rule with decodable arguments, a
consistent BuildConfig, an acyclic dependency closure, a buildable module
graph, and declared implicit dependencies such as the javac tool.

Examples:
  bgraph vet
  bgraph vet //app:aar //lib:aar`,
		RunE: func(c *cobra.Command, args []string) error {
			return runVet(c, args, cfg)
		},
	}
	return c
}

func runVet(c *cobra.Command, args []string, cfg *config.GlobalConfig) error {
	graph, err := cmdutil.LoadGraph(cfg)
	if err != nil {
		cmdutil.PrintError("loading graph failed", err)
		return exitWith(err)
	}
	targets, err := cmdutil.ResolveTargets(graph, args)
	if err != nil {
		cmdutil.PrintError("resolving targets failed", err)
		return exitWith(err)
	}

	resolved, err := cfg.Resolved()
	if err != nil {
		cmdutil.PrintError("loading config failed", err)
		return NewExitError(err, ExitValidationError)
	}
	javac, err := cmdutil.Javac(resolved)
	if err != nil {
		cmdutil.PrintError("loading config failed", err)
		return exitWith(err)
	}
	implicit := enhance.ImplicitDeps(javac)

	w := c.OutOrStdout()
	var errs []error
	for _, target := range targets {
		if err := enhance.Check(graph, target, implicit); err != nil {
			fmt.Fprintln(w, output.FormatFailedLine(target.String()))
			errs = append(errs, err)
			continue
		}
		fmt.Fprintln(w, output.FormatActionLine(enhance.RuleTypeAar, target.String(), output.StatusValid))
	}

	if agg := utilerrors.NewAggregate(errs); agg != nil {
		cmdutil.PrintError("vet failed", agg)
		return exitWith(agg)
	}
	return nil
}
