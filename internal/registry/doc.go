// Package registry queries a crates.io-compatible registry for published
// crate versions.
package registry
