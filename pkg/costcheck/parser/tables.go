package parser

import (
	"fmt"

	"github.com/ukaji3/costcheck-go/pkg/costcheck/models"
	"github.com/xuri/excelize/v2"
)

// UsedRange returns the A1-style range ("A1:L40") covering all non-empty
// cells of grid, or "" for an empty grid.
func UsedRange(grid models.Grid) string {
	b, ok := grid.UsedRange()
	if !ok {
		return ""
	}
	startCell, err := excelize.CoordinatesToCellName(b.MinCol+1, b.MinRow+1)
	if err != nil {
		return ""
	}
	endCell, err := excelize.CoordinatesToCellName(b.MaxCol+1, b.MaxRow+1)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s:%s", startCell, endCell)
}
