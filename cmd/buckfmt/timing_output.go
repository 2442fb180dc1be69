package main

import (
	"fmt"
	"io"

	"buckfmt/internal/driver"
	"buckfmt/internal/observ"
)

// printTimings prints phase totals summed over all files.
func printTimings(out io.Writer, results []driver.FormatResult) {
	if out == nil {
		return
	}
	reports := make([]observ.Report, 0, len(results))
	for _, res := range results {
		if res.Timing != nil {
			reports = append(reports, *res.Timing)
		}
	}
	if len(reports) == 0 {
		return
	}
	fmt.Fprintf(out, "%d files\n", len(results))
	fmt.Fprint(out, observ.Merge(reports...).Summary())
}
