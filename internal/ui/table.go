package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Placeholder is printed for empty cells.
const Placeholder = "-"

// Table renders rows in aligned, tab-separated columns.
type Table struct {
	w    *tabwriter.Writer
	cols int
}

// NewTable writes the header line and returns a table for its columns.
func NewTable(out io.Writer, headers ...string) *Table {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return &Table{w: tw, cols: len(headers)}
}

// Row appends one row. Missing trailing cells and empty strings are
// printed as Placeholder; extra values are kept.
func (t *Table) Row(values ...any) {
	n := max(len(values), t.cols)
	parts := make([]string, n)
	for i := range parts {
		s := ""
		if i < len(values) {
			s = fmt.Sprint(values[i])
		}
		if s == "" {
			s = Placeholder
		}
		parts[i] = s
	}
	_, _ = fmt.Fprintln(t.w, strings.Join(parts, "\t"))
}

// Flush writes the buffered output.
func (t *Table) Flush() error {
	return t.w.Flush()
}
