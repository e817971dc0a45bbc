package main

import (
	"errors"
	"fmt"

	"github.com/fbkclanna/cargows/internal/cargo"
	"github.com/fbkclanna/cargows/internal/workspace"
	"github.com/spf13/cobra"
)

func newEachCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "each [flags] -- <command...>",
		Short:              "Run a command in every workspace member directory",
		DisableFlagParsing: true,
		RunE:               runEach,
	}
	return cmd
}

func runEach(cmd *cobra.Command, args []string) error {
	command, err := parseEachArgs(cmd, args)
	if err != nil {
		return err
	}
	if command == nil {
		return cmd.Help()
	}

	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	ws, err := workspace.Load(e.root)
	if err != nil {
		return err
	}
	members, err := packageDirs(ws)
	if err != nil {
		return err
	}

	c := e.cargo()
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	for _, m := range members {
		_, _ = fmt.Fprintf(out, "==> %s\n", m)
		res, err := c.Exec(cmd.Context(), ws.MemberDir(m), command[0], command[1:]...)
		_, _ = out.Write(res.Stdout)
		_, _ = errOut.Write(res.Stderr)
		if err != nil {
			var tie *cargo.ToolInvocationError
			if errors.As(err, &tie) {
				return fmt.Errorf("member %s: %s exited with code %d", m, tie.Command, tie.ExitCode)
			}
			return fmt.Errorf("member %s: %w", m, err)
		}
	}
	return nil
}

// parseEachArgs applies the global flags that precede the command and
// returns the command itself. Parsing stops at "--" or at the first
// non-flag argument. A nil command with a nil error means help was asked
// for.
func parseEachArgs(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 && (args[0] == "-h" || args[0] == "--help") {
		return nil, nil
	}
	flags := cmd.InheritedFlags()
	flags.SetInterspersed(false)
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("each: %w", err)
	}
	command := flags.Args()
	if len(command) == 0 {
		return nil, fmt.Errorf("usage: cargows each [flags] -- <command...>")
	}
	return command, nil
}
