package ident

import "strings"

// PackageIdent uniquely identifies a package, formatted as "namespace-name".
//
// The identifier can be created in several ways:
//
//	a := ident.NewPackage("BepInEx", "BepInExPack")
//	b, err := ident.ParsePackage("BepInEx-BepInExPack")
//	c, err := ident.AsPackage([2]string{"BepInEx", "BepInExPack"})
//
// Client operations that take a package accept any of the shapes supported
// by AsPackage, so the forms above are interchangeable at call sites.
//
// The canonical text is held in one buffer; Namespace and Name slice it on
// a stored offset, so they are O(1) and never allocate. Because Go strings
// are immutable shared references, a substring view costs nothing beyond
// the string header.
type PackageIdent struct {
	repr      string
	nameStart int
}

// NewPackage builds an identifier from trusted namespace and name parts.
// The parts are not validated; a namespace containing "-" produces an
// identifier that parses back with a different split (see ParsePackage).
func NewPackage(namespace, name string) PackageIdent {
	return PackageIdent{
		repr:      namespace + "-" + name,
		nameStart: len(namespace) + 1,
	}
}

// ParsePackage parses "namespace-name" text. The first "-" is structural;
// everything after it belongs to the name. Text without a "-" fails with
// ErrInvalidIdent. No other validation is performed: empty components are
// accepted, matching the upstream service's own leniency.
func ParsePackage(s string) (PackageIdent, error) {
	i := strings.IndexByte(s, '-')
	if i < 0 {
		return PackageIdent{}, ErrInvalidIdent
	}
	return PackageIdent{repr: s, nameStart: i + 1}, nil
}

// Namespace returns the owning namespace portion of the identifier.
func (p PackageIdent) Namespace() string {
	return p.repr[:p.nameStart-1]
}

// Name returns the package name portion of the identifier.
func (p PackageIdent) Name() string {
	return p.repr[p.nameStart:]
}

// String returns the canonical "namespace-name" form.
func (p PackageIdent) String() string {
	return p.repr
}

// Path returns the "namespace/name" rendering used to build API URL paths.
// The projection is one-directional; there is no parser for it.
func (p PackageIdent) Path() string {
	var b strings.Builder
	b.Grow(len(p.repr))
	b.WriteString(p.Namespace())
	b.WriteByte('/')
	b.WriteString(p.Name())
	return b.String()
}

// WithVersion derives a VersionIdent by appending "-version", reusing the
// existing name offset.
func (p PackageIdent) WithVersion(version string) VersionIdent {
	return VersionIdent{
		repr:         p.repr + "-" + version,
		nameStart:    p.nameStart,
		versionStart: len(p.repr) + 1,
	}
}

// Equal reports whether two identifiers have the same canonical text.
// The stored offsets are derived data and do not participate: identifiers
// built through different construction paths compare equal whenever their
// string forms match. Prefer Equal over == on the struct, since inputs
// containing extra dashes can yield equal text with different offsets.
func (p PackageIdent) Equal(o PackageIdent) bool {
	return p.repr == o.repr
}

// Compare orders identifiers by byte-wise comparison of their canonical
// text, like strings.Compare.
func (p PackageIdent) Compare(o PackageIdent) int {
	return strings.Compare(p.repr, o.repr)
}

// MarshalText encodes the identifier in its canonical string form.
func (p PackageIdent) MarshalText() ([]byte, error) {
	return []byte(p.repr), nil
}

// UnmarshalText parses the canonical string form. It goes through
// ParsePackage, so serialization and direct construction share one
// validation path.
func (p *PackageIdent) UnmarshalText(text []byte) error {
	parsed, err := ParsePackage(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
