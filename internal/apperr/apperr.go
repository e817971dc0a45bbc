// Package apperr defines the error kinds shared by the manifest, workspace
// and registry packages. Callers match them with errors.Is.
package apperr

import "errors"

var (
	// ErrIO reports that a file could not be opened, read or written.
	ErrIO = errors.New("io error")
	// ErrParse reports a document that is not well-formed.
	ErrParse = errors.New("parse error")
	// ErrSchema reports a structurally absent or mistyped section or key.
	ErrSchema = errors.New("schema error")
	// ErrNotFound reports that a specific field is absent.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument reports a caller-supplied value outside the accepted set.
	ErrInvalidArgument = errors.New("invalid argument")
)
