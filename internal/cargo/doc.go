// Package cargo invokes the cargo and rustc binaries on behalf of cargows.
//
// Every invocation takes its working directory as an explicit argument;
// nothing in this package changes the process working directory.
package cargo
