package cmd

import (
	"fmt"
	"io"
	"strconv"

	"codedump/pkg/combine"

	"github.com/fatih/color"
)

// printSummary writes the run statistics as a two-column table.
func printSummary(out io.Writer, s combine.Summary) {
	label := color.New(color.Bold)
	value := color.New(color.FgCyan)

	rows := [][2]string{
		{"Total time taken", s.Elapsed.String()},
		{"Number of files processed", strconv.Itoa(s.Processed)},
	}
	if s.Skipped > 0 {
		rows = append(rows, [2]string{"Files skipped (unreadable or binary)", strconv.Itoa(s.Skipped)})
	}

	width := 0
	for _, r := range rows {
		if len(r[0]) > width {
			width = len(r[0])
		}
	}

	for _, r := range rows {
		label.Fprintf(out, "%-*s", width, r[0])
		fmt.Fprint(out, "  ")
		value.Fprintln(out, r[1])
	}

	fmt.Fprint(out, "\nOutput written to: ")
	color.New(color.FgGreen).Fprintln(out, s.Output)
}
