// Package testutil builds Cargo workspaces and git repositories for tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to dir/rel, creating parent directories.
func WriteFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil { //nolint:gosec // test dir
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
	return path
}

// PackageManifest renders a minimal package manifest. deps is appended
// verbatim under a [dependencies] header when non-empty.
func PackageManifest(name, version, deps string) string {
	s := fmt.Sprintf("[package]\nname = %q\nversion = %q\nedition = \"2021\"\n", name, version)
	if deps != "" {
		s += "\n[dependencies]\n" + deps
	}
	return s
}

// Member describes one package of a test workspace.
type Member struct {
	Dir     string
	Name    string
	Version string
	// Deps is the body of the [dependencies] table; empty omits the table.
	Deps string
}

// CreateWorkspace writes a workspace root manifest with the given member
// patterns and one package manifest per member. Returns the root directory.
func CreateWorkspace(t *testing.T, patterns []string, members ...Member) string {
	t.Helper()
	root := t.TempDir()

	quoted := ""
	for i, p := range patterns {
		if i > 0 {
			quoted += ", "
		}
		quoted += fmt.Sprintf("%q", p)
	}
	WriteFile(t, root, "Cargo.toml", fmt.Sprintf("[workspace]\nmembers = [%s]\nresolver = \"2\"\n", quoted))

	for _, m := range members {
		WriteFile(t, root, m.Dir+"/Cargo.toml", PackageManifest(m.Name, m.Version, m.Deps))
	}
	return root
}
