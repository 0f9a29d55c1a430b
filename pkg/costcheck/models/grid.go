package models

// Grid is a sheet's cell values in row-major order. Indices are 0-based and
// rows may have different lengths; missing cells read as empty strings.
type Grid [][]string

// Cell returns the value at (row, col), or "" when outside the grid.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return ""
	}
	return g[row][col]
}

// LastRow returns the index of the last row, or -1 for an empty grid.
func (g Grid) LastRow() int {
	return len(g) - 1
}

// Bounds is an inclusive rectangle of cells (0-based).
type Bounds struct {
	MinRow int `json:"min_row"`
	MinCol int `json:"min_col"`
	MaxRow int `json:"max_row"`
	MaxCol int `json:"max_col"`
}

// UsedRange finds the bounding box of non-empty cells.
// ok is false when every cell is empty.
func (g Grid) UsedRange() (b Bounds, ok bool) {
	b = Bounds{MinRow: -1, MinCol: -1, MaxRow: -1, MaxCol: -1}
	for r, row := range g {
		for c, v := range row {
			if v == "" {
				continue
			}
			if b.MinRow < 0 || r < b.MinRow {
				b.MinRow = r
			}
			if r > b.MaxRow {
				b.MaxRow = r
			}
			if b.MinCol < 0 || c < b.MinCol {
				b.MinCol = c
			}
			if c > b.MaxCol {
				b.MaxCol = c
			}
		}
	}
	return b, b.MinRow >= 0
}
