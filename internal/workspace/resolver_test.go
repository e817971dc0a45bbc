package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fbkclanna/cargows/internal/apperr"
	"github.com/fbkclanna/cargows/internal/manifest"
	"github.com/fbkclanna/cargows/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

func TestListMembers_noWorkspaceSection(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "Cargo.toml", testutil.PackageManifest("single", "0.1.0", ""))

	members, err := Resolver{Dir: dir}.ListMembers(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(members) != 0 {
		t.Errorf("members = %v, want empty", members)
	}
}

func TestListMembers_workspaceWithoutMembers(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "Cargo.toml", "[workspace]\nresolver = \"2\"\n")

	members, err := Resolver{Dir: dir}.ListMembers(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 0 {
		t.Errorf("members = %v, want empty", members)
	}
}

func TestListMembers_globKeepsDirectoriesOnly(t *testing.T) {
	root := testutil.CreateWorkspace(t, []string{"packages/*"},
		testutil.Member{Dir: "packages/b", Name: "b", Version: "0.1.0"},
		testutil.Member{Dir: "packages/a", Name: "a", Version: "0.1.0"},
	)
	testutil.WriteFile(t, root, "packages/c", "not a directory")

	members, err := Resolver{Dir: root}.ListMembers(filepath.Join(root, "Cargo.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"packages/a", "packages/b"}, members); diff != "" {
		t.Errorf("members (-want +got):\n%s", diff)
	}
}

func TestListMembers_orderAndLiterals(t *testing.T) {
	root := testutil.CreateWorkspace(t, []string{"cli", "crates/*", "missing-literal", "tools/x*"},
		testutil.Member{Dir: "cli", Name: "cli", Version: "0.1.0"},
		testutil.Member{Dir: "crates/zeta", Name: "zeta", Version: "0.1.0"},
		testutil.Member{Dir: "crates/alpha", Name: "alpha", Version: "0.1.0"},
		testutil.Member{Dir: "tools/xtask", Name: "xtask", Version: "0.1.0"},
		testutil.Member{Dir: "tools/other", Name: "other", Version: "0.1.0"},
	)

	members, err := Resolver{Dir: root}.ListMembers(filepath.Join(root, "Cargo.toml"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"cli", "crates/alpha", "crates/zeta", "missing-literal", "tools/xtask"}
	if diff := cmp.Diff(want, members); diff != "" {
		t.Errorf("members (-want +got):\n%s", diff)
	}
}

func TestListMembers_globWithNoMatches(t *testing.T) {
	root := testutil.CreateWorkspace(t, []string{"nothing/*"})
	members, err := Resolver{Dir: root}.ListMembers(filepath.Join(root, "Cargo.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 0 {
		t.Errorf("members = %v, want empty", members)
	}
}

func TestListMembers_doubleStar(t *testing.T) {
	root := testutil.CreateWorkspace(t, []string{"crates/**/core"},
		testutil.Member{Dir: "crates/net/core", Name: "net-core", Version: "0.1.0"},
		testutil.Member{Dir: "crates/db/core", Name: "db-core", Version: "0.1.0"},
	)
	members, err := Resolver{Dir: root}.ListMembers(filepath.Join(root, "Cargo.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"crates/db/core", "crates/net/core"}, members); diff != "" {
		t.Errorf("members (-want +got):\n%s", diff)
	}
}

func TestListMembers_exclude(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "Cargo.toml", "[workspace]\nmembers = [\"crates/*\"]\nexclude = [\"crates/legacy\"]\n")
	testutil.WriteFile(t, root, "crates/new/Cargo.toml", testutil.PackageManifest("new", "0.1.0", ""))
	testutil.WriteFile(t, root, "crates/legacy/Cargo.toml", testutil.PackageManifest("legacy", "0.1.0", ""))

	members, err := Resolver{Dir: root}.ListMembers(filepath.Join(root, "Cargo.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"crates/new"}, members); diff != "" {
		t.Errorf("members (-want +got):\n%s", diff)
	}
}

func TestListMembers_relativeToResolverDir(t *testing.T) {
	root := testutil.CreateWorkspace(t, []string{"packages/*"},
		testutil.Member{Dir: "packages/a", Name: "a", Version: "0.1.0"},
	)
	// Resolving against a different directory finds nothing.
	members, err := Resolver{Dir: t.TempDir()}.ListMembers(filepath.Join(root, "Cargo.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 0 {
		t.Errorf("members = %v, want empty", members)
	}
}

func TestListMembers_rootWithGlobCharacters(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ws[1]")
	path := testutil.WriteFile(t, root, "Cargo.toml", "[workspace]\nmembers = [\"packages/*\"]\n")
	testutil.WriteFile(t, root, "packages/a/Cargo.toml", testutil.PackageManifest("a", "0.1.0", ""))

	members, err := Resolver{Dir: root}.ListMembers(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"packages/a"}, members); diff != "" {
		t.Errorf("members (-want +got):\n%s", diff)
	}
}

func TestListMembers_parentDirectoryPattern(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "ws")
	path := testutil.WriteFile(t, root, "Cargo.toml", "[workspace]\nmembers = [\"../shared/*\"]\n")
	testutil.WriteFile(t, dir, "shared/util/Cargo.toml", testutil.PackageManifest("util", "0.1.0", ""))

	members, err := Resolver{Dir: root}.ListMembers(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"../shared/util"}, members); diff != "" {
		t.Errorf("members (-want +got):\n%s", diff)
	}
}

func TestListMembers_errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Resolver{Dir: dir}.ListMembers(filepath.Join(dir, "Cargo.toml"))
	if !errors.Is(err, apperr.ErrIO) {
		t.Errorf("missing manifest: error = %v, want ErrIO", err)
	}

	bad := testutil.WriteFile(t, dir, "bad/Cargo.toml", "[workspace\n")
	_, err = Resolver{Dir: dir}.ListMembers(bad)
	if !errors.Is(err, apperr.ErrParse) {
		t.Errorf("malformed manifest: error = %v, want ErrParse", err)
	}

	typed := testutil.WriteFile(t, dir, "typed/Cargo.toml", "[workspace]\nmembers = \"crates/*\"\n")
	_, err = Resolver{Dir: dir}.ListMembers(typed)
	if !errors.Is(err, apperr.ErrSchema) {
		t.Errorf("mistyped members: error = %v, want ErrSchema", err)
	}
}

func TestListLocalDependencies(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "Cargo.toml", testutil.PackageManifest("app", "0.1.0",
		"foo = { path = \"../foo\", version = \"1.0\" }\nbar = { path = \"../bar\" }\nbaz = \"2.0\"\n"))

	deps, err := ListLocalDependencies(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []LocalDependency{{Name: "foo", Path: "../foo", Version: "1.0"}}
	if diff := cmp.Diff(want, deps); diff != "" {
		t.Errorf("deps (-want +got):\n%s", diff)
	}
}

func TestListLocalDependencies_tableHeaderForm(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "Cargo.toml", `[package]
name = "app"
version = "0.1.0"

[dependencies]

[dependencies.core]
path = "../core"
version = "0.3"
`)
	deps, err := ListLocalDependencies(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []LocalDependency{{Name: "core", Path: "../core", Version: "0.3"}}
	if diff := cmp.Diff(want, deps); diff != "" {
		t.Errorf("deps (-want +got):\n%s", diff)
	}
}

func TestListLocalDependencies_noDependenciesSection(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "Cargo.toml", testutil.PackageManifest("app", "0.1.0", ""))

	_, err := ListLocalDependencies(path)
	if !errors.Is(err, apperr.ErrSchema) {
		t.Fatalf("error = %v, want ErrSchema", err)
	}
	if !errors.Is(err, manifest.ErrNoDependencies) {
		t.Errorf("error = %v, want ErrNoDependencies", err)
	}
}

func TestListLocalDependencies_mistypedSection(t *testing.T) {
	dir := t.TempDir()
	for _, content := range []string{
		"dependencies = \"x\"\n\n[package]\nname = \"app\"\n",
		testutil.PackageManifest("app", "0.1.0", "foo = 1\n"),
	} {
		path := testutil.WriteFile(t, dir, "Cargo.toml", content)
		_, err := ListLocalDependencies(path)
		if !errors.Is(err, apperr.ErrSchema) {
			t.Errorf("%q: error = %v, want ErrSchema", content, err)
		}
		if errors.Is(err, manifest.ErrNoDependencies) {
			t.Errorf("%q: mistyped section reported as missing", content)
		}
	}
}

func TestListLocalDependencies_emptySection(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "Cargo.toml", testutil.PackageManifest("app", "0.1.0", "# nothing yet\n"))

	deps, err := ListLocalDependencies(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(deps) != 0 {
		t.Errorf("deps = %v, want none", deps)
	}
}

func TestListLocalDependencies_missingFile(t *testing.T) {
	_, err := ListLocalDependencies(filepath.Join(t.TempDir(), "Cargo.toml"))
	if !errors.Is(err, apperr.ErrIO) {
		t.Fatalf("error = %v, want ErrIO", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist: %v", err)
	}
}
