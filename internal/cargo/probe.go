package cargo

import (
	"context"
	"strings"
)

// Toolchain is the probed state of one toolchain binary.
type Toolchain struct {
	Name      string `json:"name" yaml:"name"`
	Installed bool   `json:"installed" yaml:"installed"`
	Version   string `json:"version,omitempty" yaml:"version,omitempty"`
}

// Probe checks rustc and cargo with `--version`. A non-zero exit or a
// missing binary is reported as not installed, never as an error; only
// context cancellation is returned.
func (c *Cargo) Probe(ctx context.Context) ([]Toolchain, error) {
	tools := []string{"rustc", "cargo"}
	out := make([]Toolchain, 0, len(tools))
	for _, name := range tools {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t := Toolchain{Name: name}
		res, err := c.Runner.Run(ctx, ".", name, "--version")
		if err == nil && res.ExitCode == 0 {
			t.Installed = true
			t.Version = strings.TrimSpace(string(res.Stdout))
		} else {
			c.logger().Debug("toolchain probe failed", "tool", name, "exit", res.ExitCode, "err", err)
		}
		out = append(out, t)
	}
	return out, nil
}
