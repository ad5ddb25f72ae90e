package identity

import (
	"fmt"
	"regexp"
	"strings"
)

// Flavor is a tag appended to an identity to name a purpose-specific
// variant of a target.
type Flavor string

// PackageKind names a package rule whose enhancement owns a reserved
// flavor vocabulary.
type PackageKind string

// KindAAR is the Android library archive package kind.
const KindAAR PackageKind = "aar"

var flavorRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// Reserved flavors synthesized by aar enhancement.
const (
	FlavorAARManifest         Flavor = "aar_android_manifest"
	FlavorAARAssembleAssets   Flavor = "aar_assemble_assets"
	FlavorAARAssembleResource Flavor = "aar_assemble_resource"
	FlavorAARAndroidResource  Flavor = "aar_android_resource"
	FlavorAARCopyNativeLibs   Flavor = "aar_copy_native_libraries"
	FlavorAARBuildConfig      Flavor = "aar_build_config"

	// flavorAARBuildConfigFamily prefixes one flavor per java package.
	flavorAARBuildConfigFamily = "aar_build_config_"
)

// reservedPrefixes maps each package kind to the prefix that every one of
// its synthesized flavors carries. User flavors may never start with one.
var reservedPrefixes = map[PackageKind]string{
	KindAAR: "aar_",
}

// ReservedPrefix returns the flavor prefix owned by kind.
func ReservedPrefix(kind PackageKind) string {
	return reservedPrefixes[kind]
}

// ReservedFlavors returns the fixed flavors of a package kind. Parameterized
// families (per module, per java package) are not listed; they share the
// kind's reserved prefix.
func ReservedFlavors(kind PackageKind) []Flavor {
	switch kind {
	case KindAAR:
		return []Flavor{
			FlavorAARManifest,
			FlavorAARAssembleAssets,
			FlavorAARAssembleResource,
			FlavorAARAndroidResource,
			FlavorAARCopyNativeLibs,
			FlavorAARBuildConfig,
		}
	default:
		return nil
	}
}

// IsReserved reports whether f belongs to any package kind's vocabulary.
func IsReserved(f Flavor) bool {
	for _, prefix := range reservedPrefixes {
		if strings.HasPrefix(string(f), prefix) {
			return true
		}
	}
	return false
}

// ValidateUserFlavor checks that f is well formed and outside every
// reserved vocabulary.
func ValidateUserFlavor(f Flavor) error {
	if !flavorRegex.MatchString(string(f)) {
		return fmt.Errorf("malformed flavor %q", f)
	}
	if IsReserved(f) {
		return fmt.Errorf("flavor %q uses a reserved prefix", f)
	}
	return nil
}

// CopyNativeLibsFlavor returns the flavor for the native library copy action
// of a module. The root module uses the bare flavor.
func CopyNativeLibsFlavor(module string, root bool) Flavor {
	if root {
		return FlavorAARCopyNativeLibs
	}
	return Flavor(string(FlavorAARCopyNativeLibs) + "_" + sanitize(module))
}

// BuildConfigFlavor returns the flavor of the generated BuildConfig library
// for a java package, e.g. "aar_build_config_com_example".
func BuildConfigFlavor(javaPackage string) Flavor {
	return Flavor(flavorAARBuildConfigFamily + sanitize(javaPackage))
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
