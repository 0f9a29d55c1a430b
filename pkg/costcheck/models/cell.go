// Package models defines the data structures shared by the loader, the rule
// engine and the renderers.
package models

// CellRow represents a single non-empty row of a sheet dump.
type CellRow struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// C maps column letter to cell value (int64, float64 or string).
	C map[string]interface{} `json:"c"`
}
