package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fbkclanna/cargows/internal/cargo"
	"github.com/fbkclanna/cargows/internal/config"
)

// isolateEnv keeps the user's config, .env and CARGOWS_* variables out of tests.
func isolateEnv(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	for _, k := range []string{
		config.EnvAuthorName, config.EnvAuthorEmail, config.EnvAuthorOrg,
		config.EnvRegistryURL, config.EnvLicense, config.EnvJobs, "CARGOWS_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

// execute runs the CLI with args in an isolated environment and returns
// what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	isolateEnv(t)
	return executeInEnv(t, args...)
}

// executeInEnv is execute without resetting the environment, for tests
// that set CARGOWS_* variables themselves after isolateEnv.
func executeInEnv(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// fakeRunner records invocations instead of spawning processes.
type fakeRunner struct {
	mu      sync.Mutex
	calls   []string
	results map[string]cargo.Result
	// onRun, when set, runs before the result is returned.
	onRun func(dir, name string, args []string)
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) (cargo.Result, error) {
	key := strings.TrimSpace(name + " " + strings.Join(args, " "))
	f.mu.Lock()
	f.calls = append(f.calls, filepath.Base(dir)+": "+key)
	f.mu.Unlock()
	if f.onRun != nil {
		f.onRun(dir, name, args)
	}
	return f.results[key], nil
}

// useRunner routes every cargo invocation of the test to f.
func useRunner(t *testing.T, f *fakeRunner) {
	t.Helper()
	prev := newRunner
	newRunner = func() cargo.Runner { return f }
	t.Cleanup(func() { newRunner = prev })
}
