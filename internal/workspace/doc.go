// Package workspace resolves Cargo workspace membership and the local
// path dependencies between members. It provides the Context type that
// holds the resolved workspace root and manifest path, and the Resolver
// that expands member globs against the filesystem.
package workspace
