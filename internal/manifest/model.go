package manifest

import (
	"fmt"

	"github.com/fbkclanna/cargows/internal/apperr"
)

// FileName is the manifest file name inside a package or workspace directory.
const FileName = "Cargo.toml"

// Author identifies the person and organization written into package.authors.
type Author struct {
	Name         string `toml:"name" json:"name" yaml:"name"`
	Organization string `toml:"organization" json:"organization" yaml:"organization"`
	Email        string `toml:"email" json:"email" yaml:"email"`
}

// Entries renders the author as the two-element authors array:
// the organization followed by "name <email>".
func (a Author) Entries() []string {
	return []string{a.Organization, fmt.Sprintf("%s <%s>", a.Name, a.Email)}
}

// Complete reports whether every author field is set.
func (a Author) Complete() bool {
	return a.Name != "" && a.Email != "" && a.Organization != ""
}

// Kind tags a package as an application or a reusable module.
type Kind string

const (
	KindApp    Kind = "app"
	KindModule Kind = "module"
)

// ParseKind validates a kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindApp, KindModule:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("%w: unknown kind %q (must be app or module)", apperr.ErrInvalidArgument, s)
	}
}

// Fields holds the package metadata written by UpdateFields.
type Fields struct {
	Author      Author
	Description string
	Repository  string
	License     string
	Kind        Kind
}

// Dependency is one entry of the [dependencies] table.
type Dependency struct {
	Name string `json:"name" yaml:"name"`
	// Version is the declared requirement; empty when not declared.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	// Path is the filesystem path attribute; empty when not declared.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	// Table is true when the entry is a table rather than a bare version string.
	Table bool `json:"table" yaml:"table"`
}

// IsLocal reports whether the dependency declares both a path and a
// published version. Path-only and version-only entries are not local.
func (d Dependency) IsLocal() bool {
	return d.Table && d.Path != "" && d.Version != ""
}

// IsRegistry reports whether the dependency resolves from the registry only.
func (d Dependency) IsRegistry() bool {
	return d.Version != "" && d.Path == ""
}
