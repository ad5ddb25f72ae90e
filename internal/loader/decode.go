package loader

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	sigsyaml "sigs.k8s.io/yaml"
)

// Decode parses data in the given format. filename only labels error
// positions.
func Decode(data []byte, format Format, filename string) (*Document, error) {
	switch format {
	case FormatCUE:
		return decodeCUE(data, filename)
	case FormatYAML, FormatJSON:
		return decodeYAML(data, filename)
	case FormatHCL:
		return decodeHCL(data, filename)
	default:
		return nil, fmt.Errorf("unsupported graph document format %q", format)
	}
}

func decodeCUE(data []byte, filename string) (*Document, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(filename))
	if value.Err() != nil {
		return nil, fmt.Errorf("compiling %s: %w", filename, value.Err())
	}
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("evaluating %s: %w", filename, err)
	}

	targets := value.LookupPath(cue.ParsePath("targets"))
	if !targets.Exists() {
		return nil, fmt.Errorf("%s: no targets field", filename)
	}

	var doc Document
	if err := targets.Decode(&doc.Targets); err != nil {
		return nil, fmt.Errorf("decoding targets in %s: %w", filename, err)
	}
	return &doc, nil
}

// decodeYAML handles JSON too, since JSON is a subset of YAML.
func decodeYAML(data []byte, filename string) (*Document, error) {
	var doc Document
	if err := sigsyaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filename, err)
	}
	return &doc, nil
}

func decodeHCL(data []byte, filename string) (*Document, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var doc Document
	diags = gohcl.DecodeBody(file.Body, nil, &doc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	return &doc, nil
}
