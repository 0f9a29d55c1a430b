// Package report renders file results as an HTML fragment and as a PDF.
// Both renderers consume the same Row values, whose Tone is taken from the
// verdict status and never re-derived from formatted text.
package report

import (
	"fmt"
	"time"

	"github.com/ukaji3/costcheck-go/pkg/costcheck/models"
)

// Tone is the display color class of a value cell.
type Tone string

const (
	ToneValid   Tone = "valid"   // green
	ToneInvalid Tone = "invalid" // red
	ToneWarning Tone = "warning" // amber
)

// ToneOf maps a verdict status to its tone.
func ToneOf(s models.Status) Tone {
	switch s {
	case models.StatusPass:
		return ToneValid
	case models.StatusWarn:
		return ToneWarning
	default:
		return ToneInvalid
	}
}

// Row is one rendered check.
type Row struct {
	Label string
	Cell  string
	Text  string
	// Expected is set on every non-green row.
	Expected string
	Tone     Tone
}

// File is the presentation of one FileResult.
type File struct {
	FileName string
	Sheet    string
	Error    string
	Passed   int
	Total    int
	Rows     []Row
}

// Summary is the "N out of M checks passed" line.
func (f File) Summary() string {
	return fmt.Sprintf("%d out of %d checks passed", f.Passed, f.Total)
}

// Document is everything a renderer needs for one run.
type Document struct {
	Brand     string
	Generated time.Time
	Files     []File
}

// NewDocument converts results into presentation rows.
func NewDocument(brand string, results []models.FileResult, generated time.Time) Document {
	doc := Document{Brand: brand, Generated: generated}
	for _, r := range results {
		doc.Files = append(doc.Files, NewFile(r))
	}
	return doc
}

// NewFile converts one result.
func NewFile(r models.FileResult) File {
	f := File{
		FileName: r.FileName,
		Sheet:    r.Sheet,
		Error:    r.Error,
		Passed:   r.Passed(),
		Total:    r.Total(),
	}
	for _, v := range r.Verdicts {
		f.Rows = append(f.Rows, NewRow(v))
	}
	return f
}

// NewRow formats a verdict.
func NewRow(v models.Verdict) Row {
	row := Row{Label: v.Label, Cell: v.Cell, Text: v.Actual, Tone: ToneOf(v.Status)}
	switch v.Status {
	case models.StatusNotFound:
		row.Text = "Not Found"
		row.Cell = "-"
	case models.StatusEmpty:
		row.Text = "Empty"
	}
	if row.Tone != ToneValid {
		row.Expected = v.Expected
	}
	return row
}

// FileName is the export name, e.g. "Tidewater_Validation_2024-03-01.pdf".
func FileName(brand string, t time.Time) string {
	return fmt.Sprintf("%s_Validation_%s.pdf", brand, t.Format("2006-01-02"))
}
