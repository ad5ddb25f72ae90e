// Package identity provides canonical target names for both user-declared
// and internally synthesized build graph nodes.
//
// An Identity is a base name ("cell//path/to/pkg:name") plus a set of
// flavors. Equality and map keys ignore flavor order; String keeps the order
// flavors were appended in.
package identity

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	oerrors "github.com/bundlegraph/cli/internal/errors"
)

// baseRegex matches "cell//pkg/path:name" where the cell is optional.
var baseRegex = regexp.MustCompile(`^([A-Za-z0-9_-]*)//([A-Za-z0-9_./-]*):([A-Za-z0-9_.+=@~-]+)$`)

// Identity names one node of the target or action graph.
// The zero value is not a valid identity; check with IsZero.
type Identity struct {
	base    string
	flavors []Flavor
}

// New returns the unflavored identity for a base name.
func New(base string) (Identity, error) {
	if !baseRegex.MatchString(base) {
		return Identity{}, &InvalidInputError{
			Input:   base,
			Message: "expected a target name of the form //path/to/pkg:name",
		}
	}
	return Identity{base: base}, nil
}

// Parse parses a user-written identity such as "//app:lib" or
// "//app:lib#debug,arm64". User flavors are validated and must not use
// any reserved flavor prefix.
func Parse(s string) (Identity, error) {
	return parse(s, true)
}

// ParseAny parses an identity without restricting flavors to the user
// vocabulary. It is used to read back action graphs that contain
// synthesized identities.
func ParseAny(s string) (Identity, error) {
	return parse(s, false)
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level constants.
func MustParse(s string) Identity {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

func parse(s string, user bool) (Identity, error) {
	s = strings.TrimSpace(s)
	base, rest, hasFlavors := strings.Cut(s, "#")

	id, err := New(base)
	if err != nil {
		return Identity{}, err
	}
	if !hasFlavors {
		return id, nil
	}
	if rest == "" {
		return Identity{}, &InvalidInputError{Input: s, Message: "empty flavor list after '#'"}
	}

	for _, part := range strings.Split(rest, ",") {
		f := Flavor(strings.TrimSpace(part))
		if user {
			if err := ValidateUserFlavor(f); err != nil {
				return Identity{}, &InvalidInputError{Input: s, Message: err.Error()}
			}
		} else if !flavorRegex.MatchString(string(f)) {
			return Identity{}, &InvalidInputError{Input: s, Message: fmt.Sprintf("malformed flavor %q", f)}
		}
		id = id.with(f)
	}
	return id, nil
}

// DeriveFlavored returns a new identity with flavors appended to base.
// Flavors already present are not repeated, so
// DeriveFlavored(DeriveFlavored(b, x), y) equals DeriveFlavored(b, x, y).
func DeriveFlavored(base Identity, flavors ...Flavor) Identity {
	id := base
	for _, f := range flavors {
		id = id.with(f)
	}
	return id
}

// AssertUnflavored returns an *InvalidInputError when id carries any flavor.
func AssertUnflavored(id Identity) error {
	if len(id.flavors) == 0 {
		return nil
	}
	return &InvalidInputError{
		Input:   id.String(),
		Message: fmt.Sprintf("expected an unflavored target, found flavors [%s]", joinFlavors(id.flavors)),
	}
}

func (id Identity) with(f Flavor) Identity {
	for _, existing := range id.flavors {
		if existing == f {
			return id
		}
	}
	flavors := make([]Flavor, len(id.flavors), len(id.flavors)+1)
	copy(flavors, id.flavors)
	return Identity{base: id.base, flavors: append(flavors, f)}
}

// Base returns the unflavored name, e.g. "//app:lib".
func (id Identity) Base() string {
	return id.base
}

// Package returns the package path portion of the base name ("app/lib" for
// "//app/lib:name").
func (id Identity) Package() string {
	m := baseRegex.FindStringSubmatch(id.base)
	if m == nil {
		return ""
	}
	return m[2]
}

// Name returns the short name portion of the base name.
func (id Identity) Name() string {
	m := baseRegex.FindStringSubmatch(id.base)
	if m == nil {
		return ""
	}
	return m[3]
}

// Flavors returns the flavors in the order they were appended.
func (id Identity) Flavors() []Flavor {
	out := make([]Flavor, len(id.flavors))
	copy(out, id.flavors)
	return out
}

// HasFlavors reports whether id carries at least one flavor.
func (id Identity) HasFlavors() bool {
	return len(id.flavors) > 0
}

// HasFlavor reports whether f is in the flavor set.
func (id Identity) HasFlavor(f Flavor) bool {
	for _, existing := range id.flavors {
		if existing == f {
			return true
		}
	}
	return false
}

// Unflavored returns the identity with every flavor removed.
func (id Identity) Unflavored() Identity {
	return Identity{base: id.base}
}

// IsZero reports whether id is the zero value.
func (id Identity) IsZero() bool {
	return id.base == ""
}

// Key returns the canonical form: base name plus sorted flavors. Two
// identities are equal exactly when their keys are equal.
func (id Identity) Key() string {
	if len(id.flavors) == 0 {
		return id.base
	}
	sorted := id.Flavors()
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return id.base + "#" + joinFlavors(sorted)
}

// String returns the display form with flavors in append order.
func (id Identity) String() string {
	if len(id.flavors) == 0 {
		return id.base
	}
	return id.base + "#" + joinFlavors(id.flavors)
}

// Equal reports whether two identities have the same base and flavor set.
func (id Identity) Equal(other Identity) bool {
	return id.Key() == other.Key()
}

// MarshalText encodes the identity in its canonical form.
func (id Identity) MarshalText() ([]byte, error) {
	return []byte(id.Key()), nil
}

// UnmarshalText decodes any well-formed identity, reserved flavors included.
func (id *Identity) UnmarshalText(text []byte) error {
	parsed, err := ParseAny(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Compare orders identities by canonical key.
func Compare(a, b Identity) int {
	return strings.Compare(a.Key(), b.Key())
}

// Sort sorts ids in place by canonical key.
func Sort(ids []Identity) {
	sort.SliceStable(ids, func(i, j int) bool { return Compare(ids[i], ids[j]) < 0 })
}

// Dedup returns ids with duplicates removed, keeping first occurrences.
func Dedup(ids []Identity) []Identity {
	seen := make(map[string]struct{}, len(ids))
	out := make([]Identity, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id.Key()]; ok {
			continue
		}
		seen[id.Key()] = struct{}{}
		out = append(out, id)
	}
	return out
}

func joinFlavors(flavors []Flavor) string {
	parts := make([]string, len(flavors))
	for i, f := range flavors {
		parts[i] = string(f)
	}
	return strings.Join(parts, ",")
}

// InvalidInputError reports a malformed or disallowed identity.
type InvalidInputError struct {
	Input   string
	Message string
}

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid target %q: %s", e.Input, e.Message)
}

// Is matches errors.ErrInvalidInput.
func (e *InvalidInputError) Is(target error) bool {
	return target == oerrors.ErrInvalidInput
}
