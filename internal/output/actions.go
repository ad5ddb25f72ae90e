package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/bundlegraph/cli/internal/core"
)

// ActionGraph is the document form of a set of actions. It is what build
// writes and what diff reads.
type ActionGraph struct {
	Actions []core.ActionRecord `json:"actions" yaml:"actions"`
}

// ActionsOptions controls action graph output formatting.
type ActionsOptions struct {
	// Format specifies output format: "yaml", "json" or "table"
	Format OutputFormat
	// Writer is the output destination
	Writer io.Writer
}

// WriteActions writes records to the writer in the specified format.
// Records are written in the order given; callers pass core.Records output
// for deterministic documents.
func WriteActions(records []core.ActionRecord, opts ActionsOptions) error {
	graph := ActionGraph{Actions: records}
	if graph.Actions == nil {
		graph.Actions = []core.ActionRecord{}
	}

	switch opts.Format {
	case FormatJSON:
		return writeJSON(graph, opts.Writer)
	case FormatTable:
		_, err := io.WriteString(opts.Writer, RenderActionTable(records)+"\n")
		return err
	case FormatDir:
		return fmt.Errorf("format %s not supported for stream output", opts.Format)
	}
	return writeYAML(graph, opts.Writer) // Default to YAML
}

// writeYAML writes v as a single YAML document.
func writeYAML(v any, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return encoder.Close()
}

// writeJSON writes v as indented JSON.
func writeJSON(v any, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ReadActions parses an action graph document in YAML or JSON.
func ReadActions(data []byte) (*ActionGraph, error) {
	var graph ActionGraph
	if err := sigsyaml.UnmarshalStrict(data, &graph); err != nil {
		return nil, fmt.Errorf("parsing action graph: %w", err)
	}
	return &graph, nil
}

// ReadActionsFile reads an action graph document from path.
func ReadActionsFile(path string) (*ActionGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	graph, err := ReadActions(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return graph, nil
}
