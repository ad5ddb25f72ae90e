// Package output provides terminal output utilities: logging, styles, and
// writers for action graphs in every supported format.
package output

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// logger is the global logger instance.
var logger *log.Logger

func init() {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
}

// LogConfig configures the global logger.
type LogConfig struct {
	// Verbose enables debug output, timestamps and caller information.
	Verbose bool

	// Timestamps overrides timestamp reporting when Verbose is false.
	// Nil means on.
	Timestamps *bool
}

// SetupLogging configures the global logger.
func SetupLogging(cfg LogConfig) {
	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}

	timestamps := true
	if !cfg.Verbose && cfg.Timestamps != nil {
		timestamps = *cfg.Timestamps
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: timestamps,
		ReportCaller:    cfg.Verbose,
		TimeFormat:      "15:04:05",
	})
}

// Logger returns the global logger.
func Logger() *log.Logger {
	return logger
}

// TargetLogger returns a child logger whose prefix names a target.
func TargetLogger(target string) *log.Logger {
	prefix := lipgloss.NewStyle().Foreground(ColorCyan).Render(target)
	return logger.WithPrefix(prefix)
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) {
	logger.Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg string, keyvals ...interface{}) {
	logger.Info(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...interface{}) {
	logger.Warn(msg, keyvals...)
}

// Error logs an error message.
func Error(msg string, keyvals ...interface{}) {
	logger.Error(msg, keyvals...)
}

// Details prints multi-line error details to stderr without log formatting.
func Details(msg string) {
	os.Stderr.WriteString(msg)
	if !strings.HasSuffix(msg, "\n") {
		os.Stderr.WriteString("\n")
	}
}
