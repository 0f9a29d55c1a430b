package engine

import "github.com/ukaji3/costcheck-go/pkg/costcheck/models"

// Bounds delimits a section. Start is the anchor row. End is the stop row
// when StopFound, otherwise the last row scanned (the grid's last row unless
// a row cap applied).
type Bounds struct {
	Start     int
	End       int
	StopFound bool
}

// Rows returns the inclusive range of rows inside the section. The anchor
// and stop rows are excluded.
func (b Bounds) Rows() (first, last int) {
	first, last = b.Start+1, b.End
	if b.StopFound {
		last--
	}
	return first, last
}

// ResolveSection scans forward from start (exclusive) for the stop keyword,
// always using a contains match. maxRows caps the scan when positive.
// When the stop keyword never appears the section runs to the end.
func ResolveSection(g models.Grid, start int, stop models.Locator, maxRows int) Bounds {
	limit := g.LastRow()
	if maxRows > 0 && start+maxRows < limit {
		limit = start + maxRows
	}
	kw := Normalize(stop.Keyword)
	if kw != "" {
		for r := start + 1; r <= limit; r++ {
			if rowMatches(g, r, stop.Column, kw) {
				return Bounds{Start: start, End: r, StopFound: true}
			}
		}
	}
	return Bounds{Start: start, End: limit}
}

func rowMatches(g models.Grid, r int, col models.Column, kw string) bool {
	if col == models.AnyColumn {
		for _, v := range g[r] {
			if matches(v, kw, models.MatchContains) {
				return true
			}
		}
		return false
	}
	return matches(g.Cell(r, int(col)), kw, models.MatchContains)
}
