package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

type rgb struct{ r, g, b int }

// toneColors holds the fill and text colors of each tone.
var toneColors = map[Tone][2]rgb{
	ToneValid:   {{232, 245, 233}, {46, 125, 50}},
	ToneInvalid: {{255, 235, 238}, {198, 40, 40}},
	ToneWarning: {{255, 243, 224}, {239, 143, 0}},
}

func colorsFor(t Tone) (fill, text rgb) {
	c, ok := toneColors[t]
	if !ok {
		c = toneColors[ToneInvalid]
	}
	return c[0], c[1]
}

type pdfReport struct {
	*gofpdf.Fpdf
	encode        func(string) string
	fontSize, ht  float64
	bottom, width float64
}

func newPDF(title, footer string) *pdfReport {
	pdf := &pdfReport{Fpdf: gofpdf.New("P", "mm", "A4", ""), fontSize: 10}
	pdf.ht = pdf.PointConvert(pdf.fontSize)
	pdf.encode = pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AliasNbPages("")

	pdf.SetMargins(15, 25, 15)
	pdf.SetAutoPageBreak(false, 20)
	pdf.SetTitle(title, true)
	pdf.SetCreator("costcheck", true)
	mLeft, mTop, mRight, mBottom := pdf.GetMargins()
	pWidth, pHeight := pdf.GetPageSize()
	pdf.width = pWidth - mLeft - mRight
	pdf.bottom = pHeight - mBottom

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetXY(mLeft, mTop-15)
		pdf.CellFormat(pdf.width, 10, pdf.encode(title), "", 0, "C", false, 0, "")
		pdf.SetXY(mLeft, mTop)
		pdf.SetFont("Helvetica", "", pdf.fontSize)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetXY(mLeft, -15)
		pdf.CellFormat(pdf.width/2, 10, pdf.encode(footer), "", 0, "L", false, 0, "")
		pdf.CellFormat(pdf.width/2, 10, pdf.encode(fmt.Sprintf("Page %d/{nb}", pdf.PageNo())), "", 0, "R", false, 0, "")
	})
	pdf.SetFont("Helvetica", "", pdf.fontSize)
	return pdf
}

func (pdf *pdfReport) heading(title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.MultiCell(0, 2*pdf.ht, pdf.encode(strings.TrimSpace(title)), "", "L", false)
	pdf.SetFont("Helvetica", "", pdf.fontSize)
}

func (pdf *pdfReport) println(text string) {
	pdf.MultiCell(0, 1.5*pdf.ht, pdf.encode(text), "", "L", false)
	pdf.Ln(pdf.ht / 2)
}

func (pdf *pdfReport) errorBox(msg string) {
	_, text := colorsFor(ToneInvalid)
	pdf.SetDrawColor(text.r, text.g, text.b)
	pdf.SetTextColor(text.r, text.g, text.b)
	pdf.SetLineWidth(0.6)
	pdf.MultiCell(0, 2*pdf.ht, pdf.encode(msg), "1", "L", false)
	pdf.SetLineWidth(0.2)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetTextColor(0, 0, 0)
}

// pdfTable lays out rows of fixed-width columns; sizes are percentages of
// the printable width.
type pdfTable struct {
	report *pdfReport
	names  []string
	widths []float64
}

func (pdf *pdfReport) newTable(names []string, sizes []int) pdfTable {
	t := pdfTable{report: pdf, names: names, widths: make([]float64, len(names))}
	for i, s := range sizes {
		t.widths[i] = float64(s) * pdf.width / 100
	}
	t.header()
	return t
}

func (t pdfTable) header() {
	pdf := t.report
	pdf.SetFillColor(230, 230, 230)
	pdf.SetFont("Helvetica", "B", pdf.fontSize)
	for i, nm := range t.names {
		pdf.CellFormat(t.widths[i], 2*pdf.ht, pdf.encode(nm), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", pdf.fontSize)
}

// row draws one table row; the last cell is colored by tone.
func (t pdfTable) row(values []string, tone Tone) {
	pdf := t.report
	lh := 1.5 * pdf.ht
	lines := 1
	for i, v := range values {
		if n := len(pdf.SplitLines([]byte(pdf.encode(v)), t.widths[i]-2)); n > lines {
			lines = n
		}
	}
	h := float64(lines)*lh + 1
	if pdf.GetY()+h > pdf.bottom {
		pdf.AddPage()
		t.header()
	}

	x0, y := pdf.GetX(), pdf.GetY()
	x := x0
	for i, v := range values {
		style := "D"
		if i == len(values)-1 {
			fill, text := colorsFor(tone)
			pdf.SetFillColor(fill.r, fill.g, fill.b)
			pdf.SetTextColor(text.r, text.g, text.b)
			style = "FD"
		}
		pdf.Rect(x, y, t.widths[i], h, style)
		pdf.SetXY(x+1, y+0.5)
		pdf.MultiCell(t.widths[i]-2, lh, pdf.encode(v), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		x += t.widths[i]
	}
	pdf.SetXY(x0, y+h)
}

func valueText(r Row) string {
	if r.Expected == "" {
		return r.Text
	}
	return r.Text + " (Expected: " + r.Expected + ")"
}

// WritePDF renders the document with one section per file.
func WritePDF(w io.Writer, doc Document) error {
	pdf := newPDF(doc.Brand+" Validation Report",
		"Generated "+doc.Generated.Format("2006-01-02 15:04:05"))

	if len(doc.Files) == 0 {
		pdf.AddPage()
		pdf.println("No files were validated.")
	}
	for _, f := range doc.Files {
		pdf.AddPage()
		title := f.FileName
		if f.Sheet != "" {
			title += " (" + f.Sheet + ")"
		}
		pdf.heading(title)
		if f.Error != "" {
			pdf.errorBox(f.Error)
			continue
		}
		pdf.println(f.Summary())
		t := pdf.newTable([]string{"Check", "Cell", "Value"}, []int{45, 12, 43})
		for _, r := range f.Rows {
			t.row([]string{r.Label, r.Cell, valueText(r)}, r.Tone)
		}
	}
	if pdf.Err() {
		return pdf.Error()
	}
	return pdf.Output(w)
}
