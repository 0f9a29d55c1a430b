// Package engine evaluates declarative rules against a sheet grid: it finds
// anchor rows by keyword, resolves section bounds, compares located values
// and produces verdicts.
package engine

import (
	"strings"

	"github.com/ukaji3/costcheck-go/pkg/costcheck/models"
)

// Match is the location of an anchor cell.
type Match struct {
	Row int
	Col int
}

// Normalize trims and upper-cases a cell or keyword for matching.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func matches(cell, keyword string, mode models.MatchMode) bool {
	c := Normalize(cell)
	if c == "" {
		return false
	}
	if mode == models.MatchContains {
		return strings.Contains(c, keyword)
	}
	return c == keyword
}

// FindAnchor returns the first row at or after fromRow whose cell in col
// matches keyword. With models.AnyColumn every column is tried left to right.
// A missing keyword is a normal outcome, reported through ok.
func FindAnchor(g models.Grid, col models.Column, keyword string, mode models.MatchMode, fromRow int) (m Match, ok bool) {
	kw := Normalize(keyword)
	if kw == "" {
		return Match{}, false
	}
	if fromRow < 0 {
		fromRow = 0
	}
	for r := fromRow; r < len(g); r++ {
		if col == models.AnyColumn {
			for c, v := range g[r] {
				if matches(v, kw, mode) {
					return Match{Row: r, Col: c}, true
				}
			}
			continue
		}
		if matches(g.Cell(r, int(col)), kw, mode) {
			return Match{Row: r, Col: int(col)}, true
		}
	}
	return Match{}, false
}

// Locate finds the loc.Occurrence-th match of a locator, counting from the
// top of the grid.
func Locate(g models.Grid, loc models.Locator) (Match, bool) {
	occurrence := loc.Occurrence
	if occurrence < 1 {
		occurrence = 1
	}
	mode := loc.Match
	if mode == "" {
		mode = models.MatchEquals
	}
	from := 0
	for n := 1; ; n++ {
		m, ok := FindAnchor(g, loc.Column, loc.Keyword, mode, from)
		if !ok || n == occurrence {
			return m, ok
		}
		from = m.Row + 1
	}
}
