package git

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// IsGitInstalled returns true if git is available on the system PATH.
func IsGitInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// IsRepo returns true if dir is inside a git work tree.
func IsRepo(dir string) bool {
	if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
		return true
	}
	out, err := outputQuiet(dir, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(out) == "true"
}

// HeadCommit returns the short SHA of HEAD.
func HeadCommit(dir string) (string, error) {
	out, err := outputQuiet(dir, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// IsDirty returns true if any of the given paths (or the whole tree when
// none are given) have uncommitted changes.
func IsDirty(dir string, paths ...string) (bool, error) {
	args := []string{"status", "--porcelain"}
	if len(paths) > 0 {
		args = append(append(args, "--"), paths...)
	}
	out, err := outputQuiet(dir, args...)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// TagExists checks if a tag exists.
func TagExists(dir, tag string) (bool, error) {
	err := runQuiet(dir, "show-ref", "--verify", "--quiet", "refs/tags/"+tag)
	if err != nil {
		if isExitError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Add stages the given paths in the repository.
func Add(dir string, paths ...string) error {
	args := append([]string{"add", "--"}, paths...)
	return runQuiet(dir, args...)
}

// Restore resets the given paths in both the index and the worktree to
// their content at HEAD.
func Restore(dir string, paths ...string) error {
	args := append([]string{"checkout", "HEAD", "--"}, paths...)
	return runQuiet(dir, args...)
}

// Commit creates a commit with the given message.
// If user.name or user.email is not configured globally, it sets repo-local fallback values.
func Commit(dir, message string) error {
	if err := ensureCommitIdentity(dir); err != nil {
		return fmt.Errorf("setting commit identity: %w", err)
	}
	return runQuiet(dir, "commit", "-m", message)
}

// Tag creates an annotated tag on HEAD.
func Tag(dir, tag, message string) error {
	return runQuiet(dir, "tag", "-a", tag, "-m", message)
}

// ConfigValue returns the effective git config value for key, or "" when
// it is unset.
func ConfigValue(dir, key string) string {
	out, err := outputQuiet(dir, "config", "--get", key)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ensureCommitIdentity sets repo-local user.name/user.email if they are not configured.
func ensureCommitIdentity(dir string) error {
	fallback := [][2]string{{"user.name", "cargows"}, {"user.email", "cargows@localhost"}}
	for _, kv := range fallback {
		if ConfigValue(dir, kv[0]) != "" {
			continue
		}
		if err := runQuiet(dir, "config", kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

// runQuiet executes a git command, discarding stdout. Stderr is included
// in the error on failure.
func runQuiet(dir string, args ...string) error {
	_, err := outputQuiet(dir, args...)
	return err
}

// outputQuiet executes a git command in dir and returns its stdout.
func outputQuiet(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

func isExitError(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}
