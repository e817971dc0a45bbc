package main

import (
	"fmt"

	"github.com/fbkclanna/cargows/internal/config"
	"github.com/fbkclanna/cargows/internal/git"
	"github.com/fbkclanna/cargows/internal/manifest"
	"github.com/fbkclanna/cargows/internal/ui"
	"github.com/fbkclanna/cargows/internal/workspace"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the toolchain and configuration",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	ok := true

	_, _ = fmt.Fprintln(out, ui.Title.Render("Toolchain"))
	tools, err := e.cargo().Probe(cmd.Context())
	if err != nil {
		return err
	}
	for _, t := range tools {
		if t.Installed {
			_, _ = fmt.Fprintf(out, "  %s %s %s\n", ui.OK.Render("✓"), t.Name, ui.Faint.Render(t.Version))
			continue
		}
		ok = false
		_, _ = fmt.Fprintf(out, "  %s %s not found (install from https://rustup.rs)\n", ui.Fail.Render("✗"), t.Name)
	}
	if git.IsGitInstalled() {
		_, _ = fmt.Fprintf(out, "  %s git\n", ui.OK.Render("✓"))
	} else {
		_, _ = fmt.Fprintf(out, "  %s git not found (needed for bump --commit)\n", ui.Warn.Render("!"))
	}

	_, _ = fmt.Fprintln(out, ui.Title.Render("Configuration"))
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		cfgPath = config.Path()
	}
	_, _ = fmt.Fprintf(out, "  file      %s\n", cfgPath)
	_, _ = fmt.Fprintf(out, "  registry  %s\n", e.cfg.RegistryURL)
	if e.cfg.HasAuthor() {
		_, _ = fmt.Fprintf(out, "  %s author %s\n", ui.OK.Render("✓"), e.cfg.Author.Entries()[1])
	} else {
		_, _ = fmt.Fprintf(out, "  %s author incomplete (fields and new will prompt)\n", ui.Warn.Render("!"))
	}

	_, _ = fmt.Fprintln(out, ui.Title.Render("Workspace"))
	ws, err := workspace.Load(e.root)
	if err != nil {
		_, _ = fmt.Fprintf(out, "  %s no readable %s in %s\n", ui.Warn.Render("!"), manifest.FileName, e.root)
	} else if members, err := ws.Members(); err != nil {
		ok = false
		_, _ = fmt.Fprintf(out, "  %s %v\n", ui.Fail.Render("✗"), err)
	} else {
		_, _ = fmt.Fprintf(out, "  %s %s (%d members)\n", ui.OK.Render("✓"), ws.ManifestPath, len(members))
	}

	if !ok {
		return fmt.Errorf("doctor checks failed")
	}
	return nil
}
