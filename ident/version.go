package ident

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// VersionIdent uniquely identifies a package version, formatted as
// "namespace-name-version" and also known as a dependency string.
//
// The identifier can be created in several ways:
//
//	a := ident.NewVersion("BepInEx", "BepInExPack", "5.4.2100")
//	b, err := ident.ParseVersion("BepInEx-BepInExPack-5.4.2100")
//	c, err := ident.AsVersion([3]string{"BepInEx", "BepInExPack", "5.4.2100"})
//
// Client operations that take a version accept any of the shapes supported
// by AsVersion, so the forms above are interchangeable at call sites.
//
// The representation mirrors PackageIdent with a second offset for the
// version field. Only the first two dashes are structural: the version
// itself may contain dashes, as in "NS-Name-1.0.0-beta".
type VersionIdent struct {
	repr         string
	nameStart    int
	versionStart int
}

// NewVersion builds an identifier from trusted namespace, name and version
// parts. The parts are not validated.
func NewVersion(namespace, name, version string) VersionIdent {
	nameStart := len(namespace) + 1
	return VersionIdent{
		repr:         namespace + "-" + name + "-" + version,
		nameStart:    nameStart,
		versionStart: nameStart + len(name) + 1,
	}
}

// ParseVersion parses "namespace-name-version" text. The first two dashes
// are structural; everything after the second, including further dashes,
// belongs to the version. Text with fewer than two dashes fails with
// ErrInvalidIdent. Empty components are accepted.
func ParseVersion(s string) (VersionIdent, error) {
	first := strings.IndexByte(s, '-')
	if first < 0 {
		return VersionIdent{}, ErrInvalidIdent
	}
	second := strings.IndexByte(s[first+1:], '-')
	if second < 0 {
		return VersionIdent{}, ErrInvalidIdent
	}
	return VersionIdent{
		repr:         s,
		nameStart:    first + 1,
		versionStart: first + 1 + second + 1,
	}, nil
}

// Namespace returns the owning namespace portion of the identifier.
func (v VersionIdent) Namespace() string {
	return v.repr[:v.nameStart-1]
}

// Name returns the package name portion of the identifier.
func (v VersionIdent) Name() string {
	return v.repr[v.nameStart : v.versionStart-1]
}

// Version returns the version portion of the identifier as raw text.
func (v VersionIdent) Version() string {
	return v.repr[v.versionStart:]
}

// ParsedVersion parses the version portion as a semantic version.
//
// Parsing only checks for delimiter presence, so the version text of a
// successfully constructed identifier is not guaranteed to be valid
// semver; foreign input can reach this method. The failure is therefore
// surfaced as an error rather than a panic.
func (v VersionIdent) ParsedVersion() (*semver.Version, error) {
	parsed, err := semver.NewVersion(v.Version())
	if err != nil {
		return nil, fmt.Errorf("parsing version %q: %w", v.Version(), err)
	}
	return parsed, nil
}

// String returns the canonical "namespace-name-version" form.
func (v VersionIdent) String() string {
	return v.repr
}

// Path returns the "namespace/name/version" rendering used to build API
// URL paths. The projection is one-directional; there is no parser for it.
func (v VersionIdent) Path() string {
	var b strings.Builder
	b.Grow(len(v.repr))
	b.WriteString(v.Namespace())
	b.WriteByte('/')
	b.WriteString(v.Name())
	b.WriteByte('/')
	b.WriteString(v.Version())
	return b.String()
}

// Package derives the PackageIdent for this version by slicing the buffer
// before the version delimiter and reusing the name offset. The derived
// identifier shares the underlying text; nothing is copied.
func (v VersionIdent) Package() PackageIdent {
	return PackageIdent{
		repr:      v.repr[:v.versionStart-1],
		nameStart: v.nameStart,
	}
}

// EqPackage reports whether this version belongs to the given package,
// comparing namespace and name components without materializing a derived
// PackageIdent.
func (v VersionIdent) EqPackage(p PackageIdent) bool {
	return v.Namespace() == p.Namespace() && v.Name() == p.Name()
}

// Equal reports whether two identifiers have the same canonical text.
// See PackageIdent.Equal for why this is preferred over == on the struct.
func (v VersionIdent) Equal(o VersionIdent) bool {
	return v.repr == o.repr
}

// Compare orders identifiers by byte-wise comparison of their canonical
// text, like strings.Compare.
func (v VersionIdent) Compare(o VersionIdent) int {
	return strings.Compare(v.repr, o.repr)
}

// MarshalText encodes the identifier in its canonical string form.
func (v VersionIdent) MarshalText() ([]byte, error) {
	return []byte(v.repr), nil
}

// UnmarshalText parses the canonical string form. It goes through
// ParseVersion, so serialization and direct construction share one
// validation path.
func (v *VersionIdent) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
