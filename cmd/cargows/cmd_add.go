package main

import (
	"fmt"
	"strings"

	"github.com/fbkclanna/cargows/internal/cargo"
	"github.com/fbkclanna/cargows/internal/ui"
	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <crate...>",
		Short: "Add dependencies with cargo add, applying known feature presets",
		RunE:  runAdd,
	}
	cmd.Flags().StringSlice("features", nil, "Features to enable (single crate only; overrides the preset)")
	cmd.Flags().Bool("list", false, "List the built-in crate presets")
	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	features, _ := cmd.Flags().GetStringSlice("features")
	list, _ := cmd.Flags().GetBool("list")

	if list {
		return listPresets(cmd)
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: cargows add <crate...>")
	}
	if len(features) > 0 && len(args) > 1 {
		return fmt.Errorf("--features applies to a single crate, got %d", len(args))
	}

	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	c := e.cargo()

	for _, name := range args {
		if len(features) > 0 {
			err = c.Add(cmd.Context(), e.root, name, features)
		} else {
			err = c.AddPreset(cmd.Context(), e.root, name)
		}
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", name)
	}
	return nil
}

func listPresets(cmd *cobra.Command) error {
	tbl := ui.NewTable(cmd.OutOrStdout(), "PRESET", "CRATE", "FEATURES")
	for _, name := range cargo.PresetNames() {
		p, _ := cargo.LookupPreset(name)
		tbl.Row(name, p.Crate, strings.Join(p.Features, ","))
	}
	return tbl.Flush()
}
