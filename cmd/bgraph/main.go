// Package main is the entry point for the bgraph CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bundlegraph/cli/internal/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		// Commands that report their own errors mark them as printed
		var exitErr *cmd.ExitError
		if !errors.As(err, &exitErr) || !exitErr.Printed {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cmd.ExitCodeFromError(err))
	}
}
