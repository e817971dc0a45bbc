package main

import (
	"github.com/fbkclanna/cargows/internal/ui"
	"github.com/spf13/cobra"
)

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().String("format", string(ui.FormatTable), "Output format: table, json or yaml")
}

func formatFlag(cmd *cobra.Command) (ui.Format, error) {
	s, _ := cmd.Flags().GetString("format")
	return ui.ParseFormat(s)
}

// render writes v as JSON or YAML, or as a table whose rows are added by rows.
func render(cmd *cobra.Command, f ui.Format, v any, headers []string, rows func(t *ui.Table)) error {
	out := cmd.OutOrStdout()
	if f != ui.FormatTable {
		return ui.Encode(out, f, v)
	}
	tbl := ui.NewTable(out, headers...)
	rows(tbl)
	return tbl.Flush()
}
