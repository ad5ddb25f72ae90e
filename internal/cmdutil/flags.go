// Package cmdutil provides shared command utilities. It centralizes flag
// group management, enhancement pipeline construction, and error printing
// for the bgraph commands.
package cmdutil

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bundlegraph/cli/internal/output"
)

// OutputFlags holds flags for commands that write action graphs
// (build, graph).
type OutputFlags struct {
	Format string
	OutDir string
}

// AddTo registers the output flags on the given cobra command.
func (f *OutputFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Format, "output", "o", "yaml",
		fmt.Sprintf("Output format: %s", strings.Join(output.ValidFormats(), ", ")))
	cmd.Flags().StringVar(&f.OutDir, "out-dir", "./actions",
		"Directory for -o dir output")
}

// Parse validates the format flag.
func (f *OutputFlags) Parse() (output.OutputFormat, error) {
	format, ok := output.ParseOutputFormat(f.Format)
	if !ok {
		return "", fmt.Errorf("invalid output format %q (valid: %s)", f.Format, strings.Join(output.ValidFormats(), ", "))
	}
	return format, nil
}

// EnhanceFlags holds flags for commands that run enhancement (build).
type EnhanceFlags struct {
	AllActions       bool
	CheckDeterminism bool
	Workers          int
}

// AddTo registers the enhancement flags on the given cobra command.
func (f *EnhanceFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.AllActions, "all-actions", false,
		"Print every registered action instead of the terminal actions only")
	cmd.Flags().BoolVar(&f.CheckDeterminism, "check-determinism", false,
		"Enhance twice against fresh registries and fail on any difference")
	cmd.Flags().IntVar(&f.Workers, "workers", 0,
		"Targets enhanced concurrently (default: from config)")
}
