package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cargows",
		Short:         "Cargo.toml maintenance for crates and workspaces",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("root", ".", "Package or workspace directory")
	cmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	cmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/cargows/config.toml)")

	cmd.AddCommand(
		newVersionCmd(),
		newGetCmd(),
		newBumpCmd(),
		newFieldsCmd(),
		newNewCmd(),
		newMembersCmd(),
		newDepsCmd(),
		newGraphCmd(),
		newInstallCmd(),
		newPublishCmd(),
		newAddCmd(),
		newLatestCmd(),
		newOutdatedCmd(),
		newEachCmd(),
		newDoctorCmd(),
	)

	return cmd
}
