package models

// WorkbookDump is the sparse JSON view of a workbook used for authoring rulesets.
type WorkbookDump struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets lists sheets in workbook order.
	Sheets []SheetDump `json:"sheets"`
}
