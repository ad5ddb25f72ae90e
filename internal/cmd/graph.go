package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bundlegraph/cli/internal/cmdutil"
	"github.com/bundlegraph/cli/internal/config"
	"github.com/bundlegraph/cli/internal/core"
	"github.com/bundlegraph/cli/internal/enhance"
	"github.com/bundlegraph/cli/internal/output"
	"github.com/bundlegraph/cli/internal/registry"
)

// NewGraphCmd creates the graph command.
func NewGraphCmd(cfg *config.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "graph [target]...",
		Short: "Show the action tree of package targets",
		Long: `Enhance package targets and print each terminal action as a tree of
its sub-actions and named outputs.

Examples:
  bgraph graph //app:aar
  bgraph graph -g graphs/app.yaml`,
		RunE: func(c *cobra.Command, args []string) error {
			return runGraph(c, args, cfg)
		},
	}
	return c
}

func runGraph(c *cobra.Command, args []string, cfg *config.GlobalConfig) error {
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

	reg := registry.New()
	enh, err := cmdutil.NewEnhancer(cfg, graph, reg)
	if err != nil {
		cmdutil.PrintError("configuring enhancer failed", err)
		return exitWith(err)
	}

	w := c.OutOrStdout()
	for i, target := range targets {
		bundle, err := enh.Enhance(target)
		if err != nil {
			cmdutil.PrintError(fmt.Sprintf("enhancing %s failed", target), err)
			return exitWith(err)
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprint(w, output.RenderTree(output.BundleTree(bundle.Action.Record(), subActionRecords(reg, bundle))))
	}
	return nil
}

func subActionRecords(reg *registry.Registry, b *enhance.Bundle) []core.ActionRecord {
	records := make([]core.ActionRecord, 0, len(b.SubActions))
	for _, id := range b.SubActions {
		if a, ok := reg.Get(id); ok {
			records = append(records, a.Record())
		}
	}
	return records
}
