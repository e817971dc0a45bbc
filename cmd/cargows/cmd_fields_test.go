package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fbkclanna/cargows/internal/apperr"
	"github.com/fbkclanna/cargows/internal/config"
	"github.com/fbkclanna/cargows/internal/manifest"
	"github.com/fbkclanna/cargows/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

var authorFlags = []string{
	"--author-name", "Ada", "--author-email", "ada@example.com", "--author-org", "Acme", "--no-input",
}

func TestRunFields(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "Cargo.toml", testutil.PackageManifest("demo", "0.1.0", "rand = \"0.8\"\n"))

	args := append([]string{"--root", dir, "fields", "--kind", "module", "--description", "A demo", "--license", "MIT"}, authorFlags...)
	if _, err := execute(t, args...); err != nil {
		t.Fatalf("fields: %v", err)
	}

	authors, err := manifest.ReadStrings(path, "package", "authors")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Acme", "Ada <ada@example.com>"}, authors); diff != "" {
		t.Errorf("authors (-want +got):\n%s", diff)
	}
	keywords, _ := manifest.ReadStrings(path, "package", "keywords")
	if diff := cmp.Diff([]string{"module"}, keywords); diff != "" {
		t.Errorf("keywords (-want +got):\n%s", diff)
	}
	if d, _ := manifest.ReadString(path, "package", "description"); d != "A demo" {
		t.Errorf("description = %q", d)
	}
	if !strings.Contains(readFile(t, path), "rand = \"0.8\"") {
		t.Error("dependencies lost")
	}
}

func TestRunFields_defaultsFromConfigAndManifest(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "Cargo.toml",
		"[package]\nname = \"core\"\nversion = \"0.1.0\"\ndescription = \"kept\"\nkeywords = [\"app\"]\n")

	isolateEnv(t)
	t.Setenv(config.EnvAuthorName, "Grace")
	t.Setenv(config.EnvAuthorEmail, "grace@example.com")
	t.Setenv(config.EnvAuthorOrg, "Navy")
	cfgPath := testutil.WriteFile(t, t.TempDir(), "config.toml", "repository_base = \"https://git.example.com/navy\"\n")

	root := newRootCmd()
	root.SetOut(&strings.Builder{})
	root.SetArgs([]string{"--root", dir, "--config", cfgPath, "fields", "--no-input"})
	if err := root.Execute(); err != nil {
		t.Fatalf("fields: %v", err)
	}

	want := map[string]string{
		"description": "kept",
		"repository":  "https://git.example.com/navy/core",
		"license":     "MIT",
	}
	for key, v := range want {
		if got, _ := manifest.ReadString(path, "package", key); got != v {
			t.Errorf("%s = %q, want %q", key, got, v)
		}
	}
	if kw, _ := manifest.ReadStrings(path, "package", "keywords"); len(kw) != 1 || kw[0] != "app" {
		t.Errorf("keywords = %v, want [app]", kw)
	}
}

func TestRunFields_errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"missing author", []string{"fields", "--kind", "app", "--no-input"}, nil},
		{"bad kind", append([]string{"fields", "--kind", "library"}, authorFlags...), apperr.ErrInvalidArgument},
		{"no kind", append([]string{"fields"}, authorFlags...), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			content := testutil.PackageManifest("demo", "0.1.0", "")
			path := testutil.WriteFile(t, dir, "Cargo.toml", content)

			_, err := execute(t, append([]string{"--root", dir}, tt.args...)...)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if readFile(t, path) != content {
				t.Error("manifest modified on error")
			}
		})
	}
}

func TestRunFields_noPackageTable(t *testing.T) {
	dir := testutil.CreateWorkspace(t, []string{"crates/*"})
	args := append([]string{"--root", dir, "fields", "--kind", "app"}, authorFlags...)
	if _, err := execute(t, args...); !errors.Is(err, apperr.ErrSchema) {
		t.Errorf("error = %v, want ErrSchema", err)
	}
}

func TestRunNew(t *testing.T) {
	f := &fakeRunner{onRun: func(dir, _ string, args []string) {
		body := "[package]\nname = \"" + filepath.Base(dir) + "\"\nversion = \"0.1.0\"\nedition = \"2021\"\n\n[dependencies]\n"
		_ = os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte(body), 0644)
	}}
	useRunner(t, f)

	root := t.TempDir()
	args := append([]string{"--root", root, "new", "crates/parser", "--kind", "module"}, authorFlags...)
	out, err := execute(t, args...)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !strings.Contains(out, "Created module crate") {
		t.Errorf("output = %q", out)
	}
	if diff := cmp.Diff([]string{"parser: cargo init --lib"}, f.calls); diff != "" {
		t.Errorf("calls (-want +got):\n%s", diff)
	}

	path := filepath.Join(root, "crates", "parser", "Cargo.toml")
	if kw, _ := manifest.ReadStrings(path, "package", "keywords"); len(kw) != 1 || kw[0] != "module" {
		t.Errorf("keywords = %v, want [module]", kw)
	}
	if lic, _ := manifest.ReadString(path, "package", "license"); lic != "MIT" {
		t.Errorf("license = %q, want MIT", lic)
	}
}

func TestRunNew_existingManifest(t *testing.T) {
	f := &fakeRunner{}
	useRunner(t, f)
	root := t.TempDir()
	testutil.WriteFile(t, root, "app/Cargo.toml", testutil.PackageManifest("app", "0.1.0", ""))

	args := append([]string{"--root", root, "new", "app"}, authorFlags...)
	if _, err := execute(t, args...); err == nil {
		t.Fatal("expected error for existing manifest")
	}
	if len(f.calls) != 0 {
		t.Errorf("cargo invoked: %v", f.calls)
	}
}
