package main

import (
	"github.com/fbkclanna/cargows/internal/ui"
	"github.com/spf13/cobra"
)

func newLatestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "latest <crate...>",
		Short: "Show the latest published version of crates",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runLatest,
	}
	addFormatFlag(cmd)
	return cmd
}

type crateVersion struct {
	Crate   string `json:"crate" yaml:"crate"`
	Version string `json:"version" yaml:"version"`
}

func runLatest(cmd *cobra.Command, args []string) error {
	format, err := formatFlag(cmd)
	if err != nil {
		return err
	}
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	client, err := e.registry()
	if err != nil {
		return err
	}

	out := make([]crateVersion, 0, len(args))
	for _, name := range args {
		v, err := client.LatestVersion(cmd.Context(), name)
		if err != nil {
			return err
		}
		out = append(out, crateVersion{Crate: name, Version: v})
	}

	return render(cmd, format, out, []string{"CRATE", "LATEST"}, func(t *ui.Table) {
		for _, cv := range out {
			t.Row(cv.Crate, cv.Version)
		}
	})
}
