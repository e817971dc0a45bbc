package cargo

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fbkclanna/cargows/internal/logging"
)

// Cargo runs cargo subcommands through a Runner.
type Cargo struct {
	Runner Runner
	Logger *log.Logger
}

// New returns a Cargo backed by the local host.
func New(logger *log.Logger) *Cargo {
	return &Cargo{Runner: ExecRunner{}, Logger: logger}
}

// Init runs `cargo init` in dir.
func (c *Cargo) Init(ctx context.Context, dir string) error {
	_, err := c.run(ctx, dir, "init")
	return err
}

// InitLib runs `cargo init --lib` in dir.
func (c *Cargo) InitLib(ctx context.Context, dir string) error {
	_, err := c.run(ctx, dir, "init", "--lib")
	return err
}

// Install runs `cargo install --path .` in dir.
func (c *Cargo) Install(ctx context.Context, dir string) error {
	_, err := c.run(ctx, dir, "install", "--path", ".")
	return err
}

// Publish runs `cargo publish` in dir.
func (c *Cargo) Publish(ctx context.Context, dir string, dryRun bool) error {
	args := []string{"publish"}
	if dryRun {
		args = append(args, "--dry-run")
	}
	_, err := c.run(ctx, dir, args...)
	return err
}

// Add runs `cargo add` for one crate with optional features in dir.
func (c *Cargo) Add(ctx context.Context, dir, crate string, features []string) error {
	args := []string{"add", crate}
	if len(features) > 0 {
		args = append(args, "--features", strings.Join(features, ","))
	}
	_, err := c.run(ctx, dir, args...)
	return err
}

// AddPreset adds a crate, applying the preset features when the name is known.
func (c *Cargo) AddPreset(ctx context.Context, dir, name string) error {
	if p, ok := LookupPreset(name); ok {
		return c.Add(ctx, dir, p.Crate, p.Features)
	}
	return c.Add(ctx, dir, name, nil)
}

// Exec runs an arbitrary command in dir and fails on a non-zero exit.
func (c *Cargo) Exec(ctx context.Context, dir, name string, args ...string) (Result, error) {
	return c.invoke(ctx, dir, name, args...)
}

func (c *Cargo) run(ctx context.Context, dir string, args ...string) (Result, error) {
	return c.invoke(ctx, dir, "cargo", args...)
}

func (c *Cargo) invoke(ctx context.Context, dir, name string, args ...string) (Result, error) {
	command := strings.TrimSpace(name + " " + strings.Join(args, " "))
	c.logger().Debug("running", "cmd", command, "dir", dir)

	res, err := c.Runner.Run(ctx, dir, name, args...)
	if err != nil {
		return res, fmt.Errorf("running %s: %w", command, err)
	}
	if res.ExitCode != 0 {
		return res, &ToolInvocationError{
			Command:  command,
			Dir:      dir,
			ExitCode: res.ExitCode,
			Stderr:   string(res.Stderr),
		}
	}
	return res, nil
}

var discard = logging.Discard()

func (c *Cargo) logger() *log.Logger {
	if c.Logger == nil {
		return discard
	}
	return c.Logger
}
