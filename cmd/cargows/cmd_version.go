package main

import (
	"fmt"

	"github.com/fbkclanna/cargows/internal/manifest"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the package version from Cargo.toml",
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}
	cmd.Flags().String("section", "package", "Table holding the version key (e.g. workspace.package)")
	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	section, _ := cmd.Flags().GetString("section")
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	v, err := manifest.ReadString(e.manifestPath(), section, "version")
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), v)
	return nil
}
