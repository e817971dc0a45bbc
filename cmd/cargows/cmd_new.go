package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fbkclanna/cargows/internal/manifest"
	"github.com/spf13/cobra"
)

func newNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <path>",
		Short: "Create a crate with cargo init and fill in its package fields",
		Args:  cobra.ExactArgs(1),
		RunE:  runNew,
	}
	addFieldFlags(cmd, string(manifest.KindApp))
	return cmd
}

func runNew(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	dir := args[0]
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(e.root, dir)
	}
	path := filepath.Join(dir, manifest.FileName)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	kindFlag, _ := cmd.Flags().GetString("kind")
	kind, err := manifest.ParseKind(kindFlag)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil { //nolint:gosec // crate dir needs to be world-readable
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	c := e.cargo()
	if kind == manifest.KindModule {
		err = c.InitLib(cmd.Context(), dir)
	} else {
		err = c.Init(cmd.Context(), dir)
	}
	if err != nil {
		return err
	}

	f, err := resolveFields(cmd, e, path)
	if err != nil {
		return err
	}
	if err := manifest.UpdateFields(path, f); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s crate at %s\n", kind, dir)
	return nil
}
