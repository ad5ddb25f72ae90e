package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/bundlegraph/cli/internal/cmdutil"
	"github.com/bundlegraph/cli/internal/config"
	"github.com/bundlegraph/cli/internal/core"
	"github.com/bundlegraph/cli/internal/enhance"
	"github.com/bundlegraph/cli/internal/identity"
	"github.com/bundlegraph/cli/internal/output"
	"github.com/bundlegraph/cli/internal/registry"
	"github.com/bundlegraph/cli/internal/targetgraph"
)

// NewBuildCmd creates the build command.
func NewBuildCmd(cfg *config.GlobalConfig) *cobra.Command {
	var of cmdutil.OutputFlags
	var ef cmdutil.EnhanceFlags

	c := &cobra.Command{
		Use:   "build [target]...",
		Short: "Enhance package targets into actions",
		Long: `Enhance android_aar package targets and print the resulting actions.

Each target is expanded into its manifest, assembled directories, resource
rule, generated BuildConfig libraries, native library copies, and the
terminal android_aar action. Without arguments every android_aar target of
the graph is enhanced.

Examples:
  # Enhance one target and print its terminal action
  bgraph build //app:aar

  # Print every registered action as JSON
  bgraph build //app:aar --all-actions -o json

  # Write one file per action
  bgraph build -o dir --out-dir ./actions

  # Fail if two runs disagree
  bgraph build --check-determinism`,
		RunE: func(c *cobra.Command, args []string) error {
			return runBuild(c, args, cfg, &of, &ef)
		},
	}

	of.AddTo(c)
	ef.AddTo(c)
	return c
}

func runBuild(c *cobra.Command, args []string, cfg *config.GlobalConfig, of *cmdutil.OutputFlags, ef *cmdutil.EnhanceFlags) error {
	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	format, err := of.Parse()
	if err != nil {
		return NewExitError(err, ExitGeneralError)
	}

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

	workers := ef.Workers
	if workers == 0 && cfg.Config != nil {
		workers = cfg.Config.Workers
	}

	reg := registry.New()
	bundles, err := enhanceTargets(ctx, cfg, graph, reg, targets, workers)
	if cfg.Flags.Verbose {
		report := buildReport(cfg.GraphPath, targets, bundles, reg, err)
		if werr := output.WriteVerboseReport(report, output.VerboseOptions{Writer: c.ErrOrStderr()}); werr != nil {
			output.Debug("writing verbose report", "error", werr)
		}
	}
	if err != nil {
		cmdutil.PrintError("enhancement failed", err)
		return exitWith(err)
	}

	if ef.CheckDeterminism {
		if err := checkDeterminism(ctx, cfg, graph, targets, workers, core.Records(reg.Actions()), c.ErrOrStderr()); err != nil {
			cmdutil.PrintError("determinism check failed", err)
			return exitWith(err)
		}
	}

	var records []core.ActionRecord
	if ef.AllActions {
		records = core.Records(reg.Actions())
	} else {
		terminals := make([]*core.Action, len(bundles))
		for i, b := range bundles {
			terminals[i] = b.Action
		}
		records = core.Records(terminals)
	}

	if format == output.FormatDir {
		written, err := output.WriteSplitActions(afero.NewOsFs(), records, output.SplitOptions{
			OutDir: of.OutDir,
			Format: output.FormatYAML,
		})
		if err != nil {
			return NewExitError(err, ExitGeneralError)
		}
		fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark(fmt.Sprintf("wrote %d action files to %s", len(written), of.OutDir)))
		return nil
	}

	if err := output.WriteActions(records, output.ActionsOptions{Format: format, Writer: c.OutOrStdout()}); err != nil {
		return NewExitError(fmt.Errorf("writing actions: %w", err), ExitGeneralError)
	}
	return nil
}

// enhanceTargets runs EnhanceAll, behind a spinner when stderr is a
// terminal and verbose logging is off.
func enhanceTargets(ctx context.Context, cfg *config.GlobalConfig, graph *targetgraph.Graph, reg *registry.Registry, targets []identity.Identity, workers int) ([]*enhance.Bundle, error) {
	enh, err := cmdutil.NewEnhancer(cfg, graph, reg)
	if err != nil {
		return nil, err
	}

	var bundles []*enhance.Bundle
	run := func() error {
		var runErr error
		bundles, runErr = enh.EnhanceAll(ctx, targets, workers)
		return runErr
	}

	if output.IsTTY() && !cfg.Flags.Verbose {
		title := fmt.Sprintf("Enhancing %d target(s)", len(targets))
		err = output.RunWithSpinner(ctx, run, output.WithTitle(title))
	} else {
		err = run()
	}
	return bundles, err
}

// checkDeterminism enhances targets again against a fresh registry and
// compares every action with the first run.
func checkDeterminism(ctx context.Context, cfg *config.GlobalConfig, graph *targetgraph.Graph, targets []identity.Identity, workers int, first []core.ActionRecord, w io.Writer) error {
	reg := registry.New()
	enh, err := cmdutil.NewEnhancer(cfg, graph, reg)
	if err != nil {
		return err
	}
	if _, err := enh.EnhanceAll(ctx, targets, workers); err != nil {
		return err
	}
	second := core.Records(reg.Actions())

	result, err := output.DiffActions(first, second, output.IsTTY())
	if err != nil {
		return err
	}
	if !result.IsEmpty() {
		fmt.Fprintln(w, output.RenderDiff(result))
		return fmt.Errorf("enhancement is not deterministic: %s", result.Summary())
	}

	output.Debug("determinism check passed", "digest", output.ComputeDigest(second))
	return nil
}

func buildReport(graphPath string, targets []identity.Identity, bundles []*enhance.Bundle, reg *registry.Registry, err error) *output.BuildReport {
	stats := reg.Stats()
	report := &output.BuildReport{
		Graph:   graphPath,
		Actions: stats.Actions,
		Hits:    stats.Hits,
		Builds:  stats.Builds,
		Digest:  output.ComputeDigest(core.Records(reg.Actions())),
	}

	for i, target := range targets {
		tr := output.TargetReport{Target: target.String()}
		if i >= len(bundles) || bundles[i] == nil {
			tr.Failed = true
			report.Targets = append(report.Targets, tr)
			continue
		}
		b := bundles[i]
		for _, sub := range b.SubActions {
			tr.SubActions = append(tr.SubActions, sub.String())
		}
		tr.Classpath = len(b.Classpath)
		tr.NativeLibs = len(b.NativeLibs)+len(b.NativeLibsAssets) > 0
		report.Targets = append(report.Targets, tr)
	}

	if err != nil {
		report.Errors = append(report.Errors, err.Error())
	}
	return report
}
