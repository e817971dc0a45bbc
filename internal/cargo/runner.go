package cargo

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Result is the outcome of a finished command.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner abstracts process execution so tests can substitute a fake.
// A command that ran and exited non-zero returns its Result with a nil
// error; the error is reserved for commands that could not be run.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (Result, error)
}

// ExecRunner executes commands on the local host.
type ExecRunner struct{}

// Run executes name with args in dir and captures stdout and stderr.
// A missing binary is reported as exit code 127.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		res.ExitCode = 127
		return res, nil
	}
	return res, err
}
