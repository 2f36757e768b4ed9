// Package ident implements compact identifiers for packages and package
// versions on a ModHaven registry.
//
// A package is identified by its namespace and name, written as
// "namespace-name". A package version adds the version string, written as
// "namespace-name-version" (also known as a dependency string). Both
// identifier types store the canonical text in a single buffer together
// with byte offsets marking the field boundaries, so component accessors
// are O(1) substring views that never allocate.
//
// Identifiers are immutable values. The zero value of either type is not a
// valid identifier; construct them with NewPackage, NewVersion, the parse
// functions, or the conversion helpers AsPackage and AsVersion.
package ident

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// ErrInvalidIdent is returned when identifier text is missing the required
// "-" delimiter(s).
var ErrInvalidIdent = errors.New("invalid package or version identifier")

// VersionParts pairs package coordinates with an already-parsed semantic
// version. It is accepted by AsVersion for callers that hold a
// *semver.Version and want to avoid formatting it themselves.
type VersionParts struct {
	Namespace string
	Name      string
	Version   *semver.Version
}

// AsPackage converts v into a PackageIdent. It accepts:
//
//   - PackageIdent or *PackageIdent: returned as-is, no copy of the text
//   - VersionIdent or *VersionIdent: the package portion is derived
//   - string: parsed as "namespace-name"
//   - [2]string: treated as {namespace, name} and constructed directly
//
// Malformed string input fails with ErrInvalidIdent, as does any
// unsupported input type.
func AsPackage(v any) (PackageIdent, error) {
	switch v := v.(type) {
	case PackageIdent:
		return v, nil
	case *PackageIdent:
		return *v, nil
	case VersionIdent:
		return v.Package(), nil
	case *VersionIdent:
		return v.Package(), nil
	case string:
		return ParsePackage(v)
	case [2]string:
		return NewPackage(v[0], v[1]), nil
	default:
		return PackageIdent{}, fmt.Errorf("%w: cannot convert %T to a package identifier", ErrInvalidIdent, v)
	}
}

// AsVersion converts v into a VersionIdent. It accepts:
//
//   - VersionIdent or *VersionIdent: returned as-is, no copy of the text
//   - string: parsed as "namespace-name-version"
//   - [3]string: treated as {namespace, name, version} and constructed directly
//   - VersionParts: the semantic version is stringified on construction
//
// Malformed string input fails with ErrInvalidIdent, as does any
// unsupported input type.
func AsVersion(v any) (VersionIdent, error) {
	switch v := v.(type) {
	case VersionIdent:
		return v, nil
	case *VersionIdent:
		return *v, nil
	case string:
		return ParseVersion(v)
	case [3]string:
		return NewVersion(v[0], v[1], v[2]), nil
	case VersionParts:
		return NewVersion(v.Namespace, v.Name, v.Version.String()), nil
	default:
		return VersionIdent{}, fmt.Errorf("%w: cannot convert %T to a version identifier", ErrInvalidIdent, v)
	}
}
