package engine

import (
	"testing"

	"github.com/ukaji3/costcheck-go/pkg/costcheck/models"
	"github.com/xuri/excelize/v2"
)

// sheet builds a grid from A1-style cell assignments.
func sheet(t *testing.T, cells map[string]string) models.Grid {
	t.Helper()
	var g models.Grid
	for ref, v := range cells {
		col, row, err := excelize.CellNameToCoordinates(ref)
		if err != nil {
			t.Fatalf("bad cell %q: %v", ref, err)
		}
		for len(g) < row {
			g = append(g, nil)
		}
		for len(g[row-1]) < col {
			g[row-1] = append(g[row-1], "")
		}
		g[row-1][col-1] = v
	}
	return g
}

func TestFindAnchor(t *testing.T) {
	g := sheet(t, map[string]string{
		"A2": "  overhead ",
		"A4": "Overhead Cost",
		"C5": "Profit",
		"A7": "OVERHEAD",
	})

	tests := []struct {
		name    string
		col     models.Column
		keyword string
		mode    models.MatchMode
		from    int
		row     int
		found   bool
	}{
		{"equals trims and folds case", 0, "OVERHEAD", models.MatchEquals, 0, 1, true},
		{"resume after first", 0, "overhead", models.MatchEquals, 2, 6, true},
		{"contains", 0, "COST", models.MatchContains, 0, 3, true},
		{"wrong column", 0, "PROFIT", models.MatchEquals, 0, 0, false},
		{"any column", models.AnyColumn, "profit", models.MatchEquals, 0, 4, true},
		{"empty keyword", 0, "", models.MatchContains, 0, 0, false},
		{"from past end", 0, "OVERHEAD", models.MatchEquals, 50, 0, false},
	}

	for _, tt := range tests {
		m, ok := FindAnchor(g, tt.col, tt.keyword, tt.mode, tt.from)
		if ok != tt.found || (ok && m.Row != tt.row) {
			t.Errorf("%s: FindAnchor = (%+v, %v), expected row %d found %v", tt.name, m, ok, tt.row, tt.found)
		}
	}
}

func TestFindAnchorNotFoundNeverPanics(t *testing.T) {
	grids := []models.Grid{
		nil,
		{},
		{nil, {}, {""}},
		{{"a", "b"}, {"c"}},
	}
	for _, g := range grids {
		if _, ok := FindAnchor(g, 3, "Profit", models.MatchContains, 0); ok {
			t.Errorf("unexpected match in %v", g)
		}
		if _, ok := FindAnchor(g, models.AnyColumn, "Profit", models.MatchEquals, 0); ok {
			t.Errorf("unexpected match in %v", g)
		}
	}
}

func TestLocateOccurrence(t *testing.T) {
	g := sheet(t, map[string]string{
		"A3":  "Material/Description",
		"A12": "MATERIAL/DESCRIPTION",
	})

	m, ok := Locate(g, models.Locator{Column: 0, Keyword: "material/description", Occurrence: 2})
	if !ok || m.Row != 11 {
		t.Fatalf("second occurrence = (%+v, %v), expected row 11", m, ok)
	}
	if _, ok := Locate(g, models.Locator{Column: 0, Keyword: "material/description", Occurrence: 3}); ok {
		t.Error("third occurrence should not be found")
	}
	m, ok = Locate(g, models.Locator{Column: 0, Keyword: "material/description"})
	if !ok || m.Row != 2 {
		t.Errorf("default occurrence = (%+v, %v), expected row 2", m, ok)
	}
}
