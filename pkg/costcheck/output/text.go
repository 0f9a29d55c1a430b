package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ukaji3/costcheck-go/pkg/costcheck/models"
)

// statusMark is the short status shown in text output.
var statusMark = map[models.Status]string{
	models.StatusPass:     "ok",
	models.StatusFail:     "FAIL",
	models.StatusWarn:     "warn",
	models.StatusEmpty:    "EMPTY",
	models.StatusNotFound: "MISSING",
}

// WriteText prints results as aligned plain text for terminals.
func WriteText(w io.Writer, results []models.FileResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		if r.Error != "" {
			fmt.Fprintf(tw, "%s\terror: %s\n", r.FileName, r.Error)
			continue
		}
		fmt.Fprintf(tw, "%s [%s]\t%d out of %d checks passed\n", r.FileName, r.Sheet, r.Passed(), r.Total())
		for _, v := range r.Verdicts {
			cell := v.Cell
			if cell == "" {
				cell = "-"
			}
			line := fmt.Sprintf("  %s\t%s\t%s\t%q", statusMark[v.Status], v.Label, cell, v.Actual)
			if !v.IsValid {
				line += "\texpected " + v.Expected
			}
			fmt.Fprintln(tw, line)
		}
	}
	return tw.Flush()
}
