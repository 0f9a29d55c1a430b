package parser

import (
	"strconv"

	"github.com/ukaji3/costcheck-go/pkg/costcheck/models"
	"github.com/xuri/excelize/v2"
)

// DumpCells converts a grid into sparse rows keyed by column letter.
// Empty rows are omitted.
func DumpCells(grid models.Grid) []models.CellRow {
	var result []models.CellRow
	for rowIdx, row := range grid {
		cellMap := make(map[string]interface{})
		for colIdx, cellValue := range row {
			if cellValue == "" {
				continue
			}
			col, err := excelize.ColumnNumberToName(colIdx + 1)
			if err != nil {
				col = strconv.Itoa(colIdx + 1)
			}
			cellMap[col] = parseValue(cellValue)
		}
		if len(cellMap) > 0 {
			result = append(result, models.CellRow{R: rowIdx + 1, C: cellMap})
		}
	}
	return result
}

// DumpWorkbook builds the sparse view of every sheet.
func DumpWorkbook(wb *Workbook) *models.WorkbookDump {
	out := &models.WorkbookDump{BookName: wb.Name}
	for _, s := range wb.Sheets {
		out.Sheets = append(out.Sheets, models.SheetDump{
			Name:      s.Name,
			UsedRange: UsedRange(s.Grid),
			Rows:      DumpCells(s.Grid),
		})
	}
	return out
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
