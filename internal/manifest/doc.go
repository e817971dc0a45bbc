// Package manifest reads and edits Cargo.toml package manifests.
//
// Queries parse the whole document with go-toml. Mutations go through a
// format-preserving editor that rewrites only the byte span of the value
// being changed, so comments, ordering and whitespace elsewhere in the
// file survive untouched. Every mutation is re-parsed before it is written
// and files are replaced atomically.
package manifest
