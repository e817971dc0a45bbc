package main

import (
	"fmt"

	"github.com/fbkclanna/cargows/internal/manifest"
	"github.com/spf13/cobra"
)

func newPublishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the package with cargo publish",
		Args:  cobra.NoArgs,
		RunE:  runPublish,
	}
	cmd.Flags().Bool("dry-run", false, "Package and verify without uploading")
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func runPublish(cmd *cobra.Command, _ []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	yes, _ := cmd.Flags().GetBool("yes")

	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	name, err := manifest.ReadString(e.manifestPath(), "package", "name")
	if err != nil {
		return err
	}
	ver, err := manifest.AppVersion(e.root)
	if err != nil {
		return err
	}

	if !dryRun && !yes && isTerminal() {
		ok, err := promptConfirm(fmt.Sprintf("Publish %s %s?", name, ver))
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	if err := e.cargo().Publish(cmd.Context(), e.root, dryRun); err != nil {
		return err
	}
	verb := "Published"
	if dryRun {
		verb = "Verified"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", verb, name, ver)
	return nil
}
