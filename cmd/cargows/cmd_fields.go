package main

import (
	"fmt"

	"github.com/fbkclanna/cargows/internal/manifest"
	"github.com/spf13/cobra"
)

func newFieldsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "Write authors, description, repository, license and keywords",
		Args:  cobra.NoArgs,
		RunE:  runFields,
	}
	addFieldFlags(cmd, "")
	return cmd
}

func runFields(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	path := e.manifestPath()
	f, err := resolveFields(cmd, e, path)
	if err != nil {
		return err
	}
	if err := manifest.UpdateFields(path, f); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s)\n", path, f.Kind)
	return nil
}
