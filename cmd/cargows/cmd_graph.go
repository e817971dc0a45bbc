package main

import (
	"github.com/fbkclanna/cargows/internal/ui"
	"github.com/fbkclanna/cargows/internal/workspace"
	"github.com/spf13/cobra"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Show direct local dependencies between workspace members",
		Args:  cobra.NoArgs,
		RunE:  runGraph,
	}
	addFormatFlag(cmd)
	return cmd
}

func runGraph(cmd *cobra.Command, _ []string) error {
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

	rels, err := ws.Relations()
	if err != nil {
		return err
	}
	if rels == nil {
		rels = []workspace.Relation{}
	}

	return render(cmd, format, rels, []string{"FROM", "TO", "DEPENDENCY", "VERSION"}, func(t *ui.Table) {
		for _, r := range rels {
			t.Row(r.From, r.To, r.Dependency, r.Version)
		}
	})
}
