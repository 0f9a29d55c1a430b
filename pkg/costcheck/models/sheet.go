package models

// SheetDump represents the non-empty rows of a single sheet.
type SheetDump struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// UsedRange is the A1-style range covering all non-empty cells, if any.
	UsedRange string `json:"used_range,omitempty"`
	// Rows contains rows with at least one non-empty cell.
	Rows []CellRow `json:"rows,omitempty"`
}
