package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install the package binary with cargo install --path .",
		Args:  cobra.NoArgs,
		RunE:  runInstall,
	}
}

func runInstall(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	if err := e.cargo().Install(cmd.Context(), e.root); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Installed %s\n", e.root)
	return nil
}
