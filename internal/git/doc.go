// Package git wraps the few Git CLI commands cargows needs to record a
// version bump: staging the manifest, committing and tagging. Every call
// takes the repository directory explicitly.
package git
