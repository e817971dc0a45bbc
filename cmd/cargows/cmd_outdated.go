package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/fbkclanna/cargows/internal/apperr"
	"github.com/fbkclanna/cargows/internal/manifest"
	"github.com/fbkclanna/cargows/internal/registry"
	"github.com/fbkclanna/cargows/internal/ui"
	"github.com/fbkclanna/cargows/internal/workspace"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newOutdatedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outdated",
		Short: "Compare registry dependencies against their latest releases",
		Args:  cobra.NoArgs,
		RunE:  runOutdated,
	}
	cmd.Flags().Int("jobs", 0, "Concurrent registry lookups (default from config)")
	cmd.Flags().Bool("all", false, "Include dependencies that are up to date")
	addFormatFlag(cmd)
	return cmd
}

type outdatedRow struct {
	Member      string          `json:"member" yaml:"member"`
	Crate       string          `json:"crate" yaml:"crate"`
	Requirement string          `json:"requirement" yaml:"requirement"`
	Latest      string          `json:"latest,omitempty" yaml:"latest,omitempty"`
	Status      registry.Status `json:"status" yaml:"status"`
}

func runOutdated(cmd *cobra.Command, _ []string) error {
	jobs, _ := cmd.Flags().GetInt("jobs")
	all, _ := cmd.Flags().GetBool("all")
	format, err := formatFlag(cmd)
	if err != nil {
		return err
	}
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	if jobs <= 0 {
		jobs = e.cfg.Jobs
	}

	ws, err := workspace.Load(e.root)
	if err != nil {
		return err
	}
	rows, err := registryDependencies(ws)
	if err != nil {
		return err
	}

	client, err := e.registry()
	if err != nil {
		return err
	}
	latest, err := lookupLatest(cmd, e, client, crateNames(rows), jobs)
	if err != nil {
		return err
	}

	shown := []outdatedRow{}
	for _, r := range rows {
		r.Latest = latest[r.Crate]
		r.Status = registry.Compare(r.Requirement, r.Latest)
		if all || r.Status != registry.StatusCurrent {
			shown = append(shown, r)
		}
	}

	return render(cmd, format, shown, []string{"MEMBER", "CRATE", "REQUIREMENT", "LATEST", "STATUS"}, func(t *ui.Table) {
		for _, r := range shown {
			t.Row(r.Member, r.Crate, r.Requirement, r.Latest, r.Status)
		}
	})
}

// registryDependencies collects every version-only dependency of every
// package in the workspace.
func registryDependencies(ws *workspace.Context) ([]outdatedRow, error) {
	members, err := packageDirs(ws)
	if err != nil {
		return nil, err
	}

	var rows []outdatedRow
	for _, m := range members {
		deps, err := manifest.ReadDependencies(ws.MemberManifest(m))
		if errors.Is(err, manifest.ErrNoDependencies) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("member %s: %w", m, err)
		}
		for _, d := range deps {
			if d.IsRegistry() {
				rows = append(rows, outdatedRow{Member: m, Crate: d.Name, Requirement: d.Version})
			}
		}
	}
	return rows, nil
}

func crateNames(rows []outdatedRow) []string {
	seen := make(map[string]bool, len(rows))
	var names []string
	for _, r := range rows {
		if !seen[r.Crate] {
			seen[r.Crate] = true
			names = append(names, r.Crate)
		}
	}
	sort.Strings(names)
	return names
}

// lookupLatest queries the registry with at most jobs requests in flight.
// Crates the registry does not know are left out of the result.
func lookupLatest(cmd *cobra.Command, e *env, client *registry.Client, names []string, jobs int) (map[string]string, error) {
	versions := make([]string, len(names))
	progress := ui.NewProgress(cmd.ErrOrStderr(), len(names))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(jobs)
	for i, name := range names {
		g.Go(func() error {
			v, err := client.LatestVersion(ctx, name)
			switch {
			case errors.Is(err, apperr.ErrNotFound):
				progress.Skip(name, "not in registry")
				return nil
			case err != nil:
				return err
			}
			versions[i] = v
			progress.Done(name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	e.logger.Debug("registry lookups finished", "checked", progress.Completed(), "crates", len(names))

	out := make(map[string]string, len(names))
	for i, name := range names {
		if versions[i] != "" {
			out[name] = versions[i]
		}
	}
	return out, nil
}
