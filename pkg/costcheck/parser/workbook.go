package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/extrame/xls"
	"github.com/ukaji3/costcheck-go/pkg/costcheck/models"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat indicates the data is neither xlsx nor xls.
var ErrUnsupportedFormat = errors.New("unsupported workbook format")

// Sheet is one named grid of a workbook.
type Sheet struct {
	Name string
	Grid models.Grid
}

// Workbook holds every sheet of a loaded file in workbook order.
type Workbook struct {
	Name   string
	Sheets []Sheet
}

// LoadWorkbook parses xlsx or xls bytes into grids. Cell values are raw
// (unformatted), so a cell shown as "40%" reads as "0.4".
func LoadWorkbook(name string, data []byte) (*Workbook, error) {
	switch DetectType(data, name) {
	case XlsX:
		return loadXLSX(name, data)
	case Xls:
		return loadXLS(name, data, "utf-8")
	default:
		return nil, fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}
}

func loadXLSX(name string, data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wb := &Workbook{Name: name}
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheetName, err)
		}
		wb.Sheets = append(wb.Sheets, Sheet{Name: sheetName, Grid: models.Grid(rows)})
	}
	return wb, nil
}

func loadXLS(name string, data []byte, charset string) (*Workbook, error) {
	xl, err := xls.OpenReader(bytes.NewReader(data), charset)
	if err != nil {
		return nil, err
	}
	wb := &Workbook{Name: name}
	for i := 0; i < xl.NumSheets(); i++ {
		sheet := xl.GetSheet(i)
		if sheet == nil {
			continue
		}
		grid := make(models.Grid, int(sheet.MaxRow)+1)
		for n := 0; n <= int(sheet.MaxRow); n++ {
			row := sheet.Row(n)
			if row == nil {
				continue
			}
			vals := make([]string, row.LastCol())
			for j := row.FirstCol(); j < row.LastCol(); j++ {
				vals[j] = row.Col(j)
			}
			grid[n] = vals
		}
		wb.Sheets = append(wb.Sheets, Sheet{Name: sheet.Name, Grid: trimTrailing(grid)})
	}
	return wb, nil
}

// trimTrailing drops empty trailing rows, as excelize does.
func trimTrailing(g models.Grid) models.Grid {
	last := len(g) - 1
	for last >= 0 && isBlank(g[last]) {
		last--
	}
	return g[:last+1]
}

func isBlank(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}

// Select returns the sheet chosen by sel. ok is false when the workbook has
// no sheets or a named sheet is missing and no fallback is configured.
func (wb *Workbook) Select(sel models.SheetSelector) (Sheet, bool) {
	if len(wb.Sheets) == 0 {
		return Sheet{}, false
	}
	switch sel.By {
	case models.SheetLast:
		return wb.Sheets[len(wb.Sheets)-1], true
	case models.SheetNamed:
		want := strings.ToUpper(strings.TrimSpace(sel.Name))
		for _, s := range wb.Sheets {
			if strings.Contains(strings.ToUpper(s.Name), want) {
				return s, true
			}
		}
		if sel.Fallback == "" || sel.Fallback == models.SheetNamed {
			return Sheet{}, false
		}
		return wb.Select(models.SheetSelector{By: sel.Fallback})
	default:
		return wb.Sheets[0], true
	}
}
