package config

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/bundlegraph/cli/internal/identity"
)

//go:embed schema.cue
var schemaFS embed.FS

// MaxWorkers bounds the workers setting.
const MaxWorkers = 64

// knownABIs are the ABIs the NDK can target.
var knownABIs = map[string]struct{}{
	"armeabi-v7a": {},
	"arm64-v8a":   {},
	"x86":         {},
	"x86_64":      {},
}

// javacLevelRegex accepts "8", "1.8", "11", "17".
var javacLevelRegex = regexp.MustCompile(`^(1\.)?[0-9]+$`)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validator validates configuration against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schemaData, err := schemaFS.ReadFile("schema.cue")
	if err != nil {
		return nil, fmt.Errorf("reading embedded schema: %w", err)
	}

	schema := ctx.CompileBytes(schemaData, cue.Filename("schema.cue"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	if !def.Exists() {
		return nil, fmt.Errorf("embedded schema has no #Config definition")
	}

	return &Validator{
		ctx:    ctx,
		schema: def,
	}, nil
}

// Validate checks cfg against the schema, then applies value checks the
// schema does not express.
func (v *Validator) Validate(cfg *Config) error {
	value := v.ctx.Encode(cfg)
	if value.Err() != nil {
		return ValidationErrors{{Field: "config", Message: value.Err().Error()}}
	}
	return finish(append(v.unify(value), checkValues(cfg)...))
}

// ValidateFile validates a configuration file at the given path. The raw
// document is checked against the schema so unknown keys are reported.
func (v *Validator) ValidateFile(path string) error {
	path = ExpandTilde(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	jsonData, err := sigsyaml.YAMLToJSON(data)
	if err != nil {
		return ValidationErrors{{Field: "config", Message: err.Error()}}
	}
	if string(bytes.TrimSpace(jsonData)) == "null" {
		jsonData = []byte("{}")
	}

	raw := v.ctx.CompileBytes(jsonData, cue.Filename(path))
	if raw.Err() != nil {
		return ValidationErrors{{Field: "config", Message: raw.Err().Error()}}
	}
	errs := v.unify(raw)

	cfg, err := NewLoader().Load(path)
	if err != nil {
		if len(errs) > 0 {
			return errs
		}
		return fmt.Errorf("loading config file: %w", err)
	}
	return finish(append(errs, checkValues(cfg)...))
}

func finish(errs ValidationErrors) error {
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func checkValues(cfg *Config) ValidationErrors {
	var errs ValidationErrors

	if cfg.Workers > MaxWorkers {
		errs = append(errs, ValidationError{
			Field:   "workers",
			Message: fmt.Sprintf("must be between 1 and %d", MaxWorkers),
		})
	}

	for _, abi := range cfg.Toolchain.NDK.CPUAbis {
		if _, ok := knownABIs[abi]; !ok {
			errs = append(errs, ValidationError{
				Field:   "toolchain.ndk.cpuAbis",
				Message: fmt.Sprintf("unknown ABI %q (expected one of armeabi-v7a, arm64-v8a, x86, x86_64)", abi),
			})
		}
	}

	javac := cfg.Toolchain.Javac
	if javac.SourceLevel != "" && !javacLevelRegex.MatchString(javac.SourceLevel) {
		errs = append(errs, ValidationError{
			Field:   "toolchain.javac.sourceLevel",
			Message: fmt.Sprintf("%q is not a java language level", javac.SourceLevel),
		})
	}
	if javac.TargetLevel != "" && !javacLevelRegex.MatchString(javac.TargetLevel) {
		errs = append(errs, ValidationError{
			Field:   "toolchain.javac.targetLevel",
			Message: fmt.Sprintf("%q is not a java language level", javac.TargetLevel),
		})
	}
	if javac.Tool != "" {
		if _, err := identity.Parse(javac.Tool); err != nil {
			errs = append(errs, ValidationError{
				Field:   "toolchain.javac.tool",
				Message: err.Error(),
			})
		}
	}

	return errs
}

func (v *Validator) unify(value cue.Value) ValidationErrors {
	unified := v.schema.Unify(value)
	err := unified.Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	var errs ValidationErrors
	for _, e := range cueerrors.Errors(err) {
		field := strings.Join(e.Path(), ".")
		if field == "" {
			field = "config"
		}
		format, args := e.Msg()
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}
	return errs
}
