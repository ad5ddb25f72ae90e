package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// VerboseOptions controls verbose output.
type VerboseOptions struct {
	// JSON outputs structured JSON instead of human-readable text
	JSON bool
	// Writer is the output destination
	Writer io.Writer
}

// BuildReport summarizes one build for verbose output.
type BuildReport struct {
	// Graph is the path of the graph document.
	Graph string `json:"graph"`

	// Targets are the enhanced targets in request order.
	Targets []TargetReport `json:"targets"`

	// Registry counters.
	Actions int64 `json:"actions"`
	Hits    int64 `json:"hits"`
	Builds  int64 `json:"builds"`

	// Digest of every registered action.
	Digest string `json:"digest"`

	Errors []string `json:"errors,omitempty"`
}

// TargetReport describes one enhanced target.
type TargetReport struct {
	Target     string   `json:"target"`
	SubActions []string `json:"subActions,omitempty"`
	Classpath  int      `json:"classpath"`
	NativeLibs bool     `json:"nativeLibs"`
	Failed     bool     `json:"failed,omitempty"`
}

// WriteVerboseReport writes a build report.
func WriteVerboseReport(report *BuildReport, opts VerboseOptions) error {
	if opts.JSON {
		encoder := json.NewEncoder(opts.Writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	}
	return writeVerboseHuman(report, opts.Writer)
}

// writeVerboseHuman writes the report in human-readable format.
func writeVerboseHuman(report *BuildReport, w io.Writer) error {
	var sb strings.Builder

	sb.WriteString("Graph:\n")
	sb.WriteString(fmt.Sprintf("  Path:     %s\n", report.Graph))
	sb.WriteString(fmt.Sprintf("  Actions:  %d\n", report.Actions))
	sb.WriteString(fmt.Sprintf("  Builds:   %d\n", report.Builds))
	sb.WriteString(fmt.Sprintf("  Reused:   %d\n", report.Hits))
	sb.WriteString(fmt.Sprintf("  Digest:   %s\n", report.Digest))
	sb.WriteString("\n")

	sb.WriteString("Targets:\n")
	for _, t := range report.Targets {
		if t.Failed {
			sb.WriteString("  " + FormatFailedLine(t.Target) + "\n")
			continue
		}
		sb.WriteString("  " + FormatActionLine("android_aar", t.Target, StatusRegistered) + "\n")
		for _, sub := range t.SubActions {
			sb.WriteString(fmt.Sprintf("    ▸ %s\n", sub))
		}
		sb.WriteString(fmt.Sprintf("    classpath entries: %d, native libraries: %t\n", t.Classpath, t.NativeLibs))
	}
	sb.WriteString("\n")

	if len(report.Errors) > 0 {
		sb.WriteString("Errors:\n")
		for _, e := range report.Errors {
			sb.WriteString(fmt.Sprintf("  ✗ %s\n", e))
		}
	}

	_, err := w.Write([]byte(sb.String()))
	return err
}
