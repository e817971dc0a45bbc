package main

import (
	"errors"
	"fmt"

	"github.com/fbkclanna/cargows/internal/manifest"
	"github.com/fbkclanna/cargows/internal/ui"
	"github.com/fbkclanna/cargows/internal/workspace"
	"github.com/spf13/cobra"
)

func newDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps [member]",
		Short: "List local path dependencies of workspace members",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDeps,
	}
	addFormatFlag(cmd)
	return cmd
}

type memberDependency struct {
	Member  string `json:"member" yaml:"member"`
	Name    string `json:"name" yaml:"name"`
	Path    string `json:"path" yaml:"path"`
	Version string `json:"version" yaml:"version"`
}

func runDeps(cmd *cobra.Command, args []string) error {
	format, err := formatFlag(cmd)
	if err != nil {
		return err
	}
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	ws, err := workspace.Load(e.root)
	if err != nil {
		return err
	}

	var members []string
	explicit := len(args) == 1
	if explicit {
		members = args
	} else {
		members, err = packageDirs(ws)
		if err != nil {
			return err
		}
	}

	rows := []memberDependency{}
	for _, m := range members {
		deps, err := workspace.ListLocalDependencies(ws.MemberManifest(m))
		if errors.Is(err, manifest.ErrNoDependencies) && !explicit {
			e.logger.Debug("skipping member without [dependencies]", "member", m)
			continue
		}
		if err != nil {
			return fmt.Errorf("member %s: %w", m, err)
		}
		for _, d := range deps {
			rows = append(rows, memberDependency{Member: m, Name: d.Name, Path: d.Path, Version: d.Version})
		}
	}

	return render(cmd, format, rows, []string{"MEMBER", "DEPENDENCY", "PATH", "VERSION"}, func(t *ui.Table) {
		for _, r := range rows {
			t.Row(r.Member, r.Name, r.Path, r.Version)
		}
	})
}

// packageDirs returns the workspace members, or the root itself when the
// manifest declares none (a single-package repository).
func packageDirs(ws *workspace.Context) ([]string, error) {
	members, err := ws.Members()
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return []string{"."}, nil
	}
	return members, nil
}
