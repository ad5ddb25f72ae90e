package targetgraph

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// fieldRegex matches "<type> <NAME> = <value>" with an optional trailing ';'.
var fieldRegex = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_.<>\[\]]*)\s+([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(.*?)\s*;?\s*$`)

// BuildConfigField is one constant of a generated BuildConfig class.
type BuildConfigField struct {
	Type  string
	Name  string
	Value string
}

// String renders the field in declaration syntax.
func (f BuildConfigField) String() string {
	return fmt.Sprintf("%s %s = %s", f.Type, f.Name, f.Value)
}

// ParseBuildConfigField parses "boolean DEBUG = false".
func ParseBuildConfigField(s string) (BuildConfigField, error) {
	m := fieldRegex.FindStringSubmatch(s)
	if m == nil || m[3] == "" {
		return BuildConfigField{}, fmt.Errorf("malformed build config field %q: expected \"<type> <NAME> = <value>\"", s)
	}
	return BuildConfigField{Type: m[1], Name: m[2], Value: m[3]}, nil
}

// BuildConfigFields is a set of fields sorted by name.
type BuildConfigFields []BuildConfigField

// ParseBuildConfigFields parses every entry and rejects duplicate names.
func ParseBuildConfigFields(values []string) (BuildConfigFields, error) {
	fields := make(BuildConfigFields, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		f, err := ParseBuildConfigField(v)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("build config field %s declared more than once", f.Name)
		}
		seen[f.Name] = struct{}{}
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	return fields, nil
}

// Merge returns the union of fs and overrides; overrides win on name clashes.
func (fs BuildConfigFields) Merge(overrides BuildConfigFields) BuildConfigFields {
	byName := make(map[string]BuildConfigField, len(fs)+len(overrides))
	for _, f := range fs {
		byName[f.Name] = f
	}
	for _, f := range overrides {
		byName[f.Name] = f
	}
	out := make(BuildConfigFields, 0, len(byName))
	for _, f := range byName {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Strings renders each field in declaration syntax.
func (fs BuildConfigFields) Strings() []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.String()
	}
	return out
}

// String joins the fields with "; ".
func (fs BuildConfigFields) String() string {
	return strings.Join(fs.Strings(), "; ")
}
