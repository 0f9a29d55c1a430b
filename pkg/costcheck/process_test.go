package costcheck

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/ukaji3/costcheck-go/pkg/costcheck/brands"
	"github.com/ukaji3/costcheck-go/pkg/costcheck/models"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap/zaptest"
)

func tidewaterWorkbook(t *testing.T, sheetName string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		t.Fatalf("SetSheetName: %v", err)
	}
	cells := map[string]interface{}{
		"A1": "Currency", "B1": "USD",
		"A2": "Incoterm", "B2": "FOB",
		"A3": "Country of Origin", "B3": "Vietnam",
		"A5": "FABRIC",
		"A6": "Shell", "J6": 0.05,
		"A7": "Lining", "J7": 7,
		"A8": "Pocketing", "J8": "5%",
		"B9": "Total Fabric Yardage",
		"A10": "OVERHEAD", "L10": 0.4,
		"A12": "TRIMS",
		"A13": "Buttons", "J13": 0.03,
		"A14": "Coats Thread", "J14": 0,
		"A15": "Total Trims",
		"A16": "Duty", "L16": 0.12,
		"A17": "Agent Commission", "L17": 0.04,
	}
	for cell, v := range cells {
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			t.Fatalf("SetCellValue %s: %v", cell, err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return buf.Bytes()
}

func tidewater(t *testing.T) *models.Ruleset {
	t.Helper()
	rs, err := brands.Load("tidewater", brands.Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return rs
}

func TestProcessTidewater(t *testing.T) {
	p := NewProcessor(tidewater(t), Options{Logger: zaptest.NewLogger(t)})
	res := p.Process(Input{Name: "style-100.xlsx", Data: tidewaterWorkbook(t, "BCBD")})

	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if res.Sheet != "BCBD" {
		t.Errorf("Sheet = %q", res.Sheet)
	}
	if res.Total() != 10 || res.Passed() != 8 {
		t.Fatalf("passed %d of %d, expected 8 of 10: %+v", res.Passed(), res.Total(), res.Verdicts)
	}

	byLabel := make(map[string]models.Verdict)
	for _, v := range res.Verdicts {
		byLabel[v.Label] = v
	}
	if v := byLabel["Fabric wastage: Lining"]; v.Status != models.StatusFail || v.Cell != "J7" {
		t.Errorf("lining verdict = %+v", v)
	}
	if v := byLabel["Profit"]; v.Found || v.Status != models.StatusNotFound {
		t.Errorf("profit verdict = %+v", v)
	}
	if _, ok := byLabel["Trim wastage: Coats Thread"]; ok {
		t.Error("Coats Thread should be excluded from trim wastage")
	}
	if v := byLabel["Duty"]; !v.IsValid || v.Expected != "12% (Vietnam)" {
		t.Errorf("duty verdict = %+v", v)
	}
}

// summitWorkbook has no "Cost Breakdown" sheet, so the last sheet is read.
// The first sheet carries a wrong currency to show it is skipped.
func summitWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", "Notes"); err != nil {
		t.Fatalf("SetSheetName: %v", err)
	}
	if _, err := f.NewSheet("Summary 2024"); err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	sheets := map[string]map[string]interface{}{
		"Notes": {"B1": "Currency", "D1": "EUR"},
		"Summary 2024": {
			"B1": "Currency", "D1": "USD",
			"B2": "Payment terms", "D2": "TT 30",
			"B4": "Material/Description",
			"B5": "Shell twill", "H5": 0.04,
			"B6": "Lining", "H6": 4,
			"B7": "Interlining", "H7": 1,
			"B8": "Subtotal",
			"B10": "Material/Description",
			"B11": "Buttons", "H11": 0.02,
			"B12": "Coats Thread", "H12": 0.05,
			"B13": "Zipper", "H13": "2%",
			"B14": "Subtotal trims",
			"B16": "CM", "K16": 2.35,
			"B17": "Washing", "K17": 0.45,
			"B18": "Packing", "K18": "0.155",
			"B20": "Overhead", "K20": 0.06,
			"B21": "Factory margin", "K21": 0.12,
		},
	}
	for sheet, cells := range sheets {
		for cell, v := range cells {
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("SetCellValue %s!%s: %v", sheet, cell, err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return buf.Bytes()
}

func TestProcessSummit(t *testing.T) {
	rs, err := brands.Load("summit", brands.Options{ReferenceDir: filepath.Join("..", "..", "reference")})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	p := NewProcessor(rs, Options{Logger: zaptest.NewLogger(t)})
	res := p.Process(Input{Name: "summit-7.xlsx", Data: summitWorkbook(t)})

	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if res.Sheet != "Summary 2024" {
		t.Errorf("Sheet = %q, expected the last sheet", res.Sheet)
	}
	if res.Total() != 13 || res.Passed() != 10 {
		t.Fatalf("passed %d of %d, expected 10 of 13: %+v", res.Passed(), res.Total(), res.Verdicts)
	}

	byLabel := make(map[string]models.Verdict)
	for _, v := range res.Verdicts {
		byLabel[v.Label] = v
	}

	tests := []struct {
		label  string
		status models.Status
		cell   string
	}{
		{"Currency", models.StatusPass, "D1"},
		{"Fabric wastage: Shell twill", models.StatusPass, "H5"},
		{"Fabric wastage: Lining", models.StatusPass, "H6"},
		{"Fabric wastage: Interlining", models.StatusFail, "H7"},
		{"Trim wastage: Buttons", models.StatusPass, "H11"},
		{"Trim wastage: Zipper", models.StatusPass, "H13"},
		{"Factory margin", models.StatusPass, "K21"},
		{"Cut & Make", models.StatusPass, "K16"},
		{"Washing", models.StatusPass, "K17"},
		{"Packing", models.StatusFail, "K18"},
		{"Testing", models.StatusNotFound, ""},
		{"Overhead", models.StatusPass, "K20"},
		{"Payment terms", models.StatusPass, "D2"},
	}
	for _, tt := range tests {
		v, ok := byLabel[tt.label]
		if !ok {
			t.Errorf("%s: no verdict", tt.label)
			continue
		}
		if v.Status != tt.status || v.Cell != tt.cell {
			t.Errorf("%s: status %s cell %q, expected %s %q", tt.label, v.Status, v.Cell, tt.status, tt.cell)
		}
	}

	// a bare 1 is 1%, not 100%
	if v := byLabel["Fabric wastage: Interlining"]; v.Numeric == nil || *v.Numeric != 1 {
		t.Errorf("interlining numeric = %v, expected 1", v.Numeric)
	}
	if _, ok := byLabel["Trim wastage: Coats Thread"]; ok {
		t.Error("Coats Thread should be excluded from trim wastage")
	}
	// the second Material/Description block feeds only the trim section
	for label := range byLabel {
		if strings.HasPrefix(label, "Fabric wastage: ") && (strings.Contains(label, "Buttons") || strings.Contains(label, "Zipper")) {
			t.Errorf("trim row %q evaluated as fabric", label)
		}
	}
	if v := byLabel["Packing"]; v.Expected != "0.15" {
		t.Errorf("packing expected = %q", v.Expected)
	}
}

func TestProcessFilesKeepsGoingAfterFailures(t *testing.T) {
	p := NewProcessor(tidewater(t), DefaultOptions())
	inputs := []Input{
		ReadInput(filepath.Join(t.TempDir(), "missing.xlsx")),
		{Name: "notes.txt", Data: []byte("not a workbook")},
		{Name: "good.xlsx", Data: tidewaterWorkbook(t, "Sheet1")},
	}

	results := p.ProcessFiles(inputs)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !strings.Contains(results[0].Error, ErrUnreadable.Error()) || results[0].FileName != "missing.xlsx" {
		t.Errorf("result 0 = %+v", results[0])
	}
	if !strings.Contains(results[1].Error, ErrUnparseable.Error()) || len(results[1].Verdicts) != 0 {
		t.Errorf("result 1 = %+v", results[1])
	}
	if results[2].Error != "" || results[2].Passed() != 8 {
		t.Errorf("result 2 = %+v", results[2])
	}
}

func TestProcessMissingSheetReportsNotFound(t *testing.T) {
	p := NewProcessor(tidewater(t), Options{Sheet: "Costing"})
	res := p.Process(Input{Name: "style-100.xlsx", Data: tidewaterWorkbook(t, "BCBD")})

	if res.Error != "" {
		t.Fatalf("a missing sheet is not an error: %s", res.Error)
	}
	if res.Total() == 0 || res.Passed() != 0 {
		t.Fatalf("expected only failed checks, got %d of %d", res.Passed(), res.Total())
	}
	for _, v := range res.Verdicts {
		if v.Found || v.Status != models.StatusNotFound {
			t.Errorf("verdict %+v should be not found", v)
		}
	}
}

func TestFileErrorUnwrap(t *testing.T) {
	err := NewFileError("a.xlsx", "parse", ErrUnparseable)
	if got := err.Error(); got != "a.xlsx (parse): workbook unparseable" {
		t.Errorf("Error() = %q", got)
	}
	if err.Unwrap() != ErrUnparseable {
		t.Error("Unwrap should return the cause")
	}
}
