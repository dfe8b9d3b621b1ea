package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	brand  = color.New(color.FgHiCyan, color.Bold)
	subtle = color.New(color.FgHiBlack)
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
)

// table prints rows aligned under headers.
func table(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var head, sep strings.Builder
	for i, h := range headers {
		fmt.Fprintf(&head, "  %-*s", widths[i], h)
		sep.WriteString("  " + strings.Repeat("─", widths[i]))
	}
	subtle.Fprintln(w, head.String())
	subtle.Fprintln(w, sep.String())
	for _, row := range rows {
		var line strings.Builder
		for i, cell := range row {
			if i < len(widths) {
				fmt.Fprintf(&line, "  %-*s", widths[i], cell)
			}
		}
		fmt.Fprintln(w, line.String())
	}
}

// field prints one "label  value" line.
func field(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s  %s\n", brand.Sprintf("%-12s", label), value)
}
