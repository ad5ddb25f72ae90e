package output

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"golang.org/x/term"
)

// SpinnerOption configures a spinner.
type SpinnerOption func(*spinnerConfig)

type spinnerConfig struct {
	title string
}

// WithTitle sets the spinner title.
func WithTitle(title string) SpinnerOption {
	return func(c *spinnerConfig) {
		c.title = title
	}
}

// IsTTY reports whether stderr is attached to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// RunWithSpinner executes an action with a spinner.
// Returns the action's error if any. Without a terminal the action runs
// directly.
func RunWithSpinner(ctx context.Context, action func() error, opts ...SpinnerOption) error {
	cfg := &spinnerConfig{
		title: "Working...",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	// If not a TTY, just run the action directly
	if !IsTTY() {
		return action()
	}

	// Create error channel
	errCh := make(chan error, 1)

	// Run action in background
	go func() {
		errCh <- action()
	}()

	var actionErr error
	spinnerErr := spinner.New().
		Context(ctx).
		Title(cfg.title).
		Action(func() {
			actionErr = <-errCh
		}).
		Run()

	if spinnerErr != nil {
		return fmt.Errorf("spinner error: %w", spinnerErr)
	}
	return actionErr
}
