package main

import (
	"errors"
	"fmt"

	"github.com/fbkclanna/cargows/internal/apperr"
	"github.com/fbkclanna/cargows/internal/manifest"
	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <section> <key>",
		Short: "Print a string or string-array field of Cargo.toml",
		Args:  cobra.ExactArgs(2),
		RunE:  runGet,
	}
}

func runGet(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	doc, err := manifest.Load(e.manifestPath())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	s, err := doc.String(args[0], args[1])
	if err == nil {
		_, _ = fmt.Fprintln(out, s)
		return nil
	}
	if !errors.Is(err, apperr.ErrSchema) {
		return err
	}

	list, listErr := doc.Strings(args[0], args[1])
	if listErr != nil {
		return err
	}
	for _, s := range list {
		_, _ = fmt.Fprintln(out, s)
	}
	return nil
}
