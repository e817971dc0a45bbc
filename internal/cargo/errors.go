package cargo

import (
	"fmt"
	"strings"
)

// ToolInvocationError reports a build-tool command that exited non-zero.
type ToolInvocationError struct {
	Command  string
	Dir      string
	ExitCode int
	Stderr   string
}

func (e *ToolInvocationError) Error() string {
	msg := fmt.Sprintf("%s (in %s) exited with status %d", e.Command, e.Dir, e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}
