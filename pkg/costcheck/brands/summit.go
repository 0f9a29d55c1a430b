package brands

import "github.com/ukaji3/costcheck-go/pkg/costcheck/models"

// Summit reads the "Cost Breakdown" sheet, or the last sheet of older
// templates. Item labels are in column B. The file carries two
// Material/Description blocks: fabrics first, then trims. Fixed cost lines
// come from summit_cost_breakdown.csv.
//
// Unlike Tidewater, a bare 1 means 1% here.
func Summit() models.Ruleset {
	return models.Ruleset{
		Brand:   "summit",
		Title:   "Summit",
		Sheet:   models.SheetSelector{By: models.SheetNamed, Name: "Cost Breakdown", Fallback: models.SheetLast},
		Percent: models.FractionBelowOne,
		Reference: &models.ReferenceTable{
			File:         "summit_cost_breakdown.csv",
			AnchorColumn: 1,
		},
		Rules: []models.Rule{
			{
				ID:      "currency",
				Label:   "Currency",
				Anchor:  models.Locator{Column: 1, Keyword: "CURRENCY"},
				Value:   models.Offset(2),
				Compare: models.CompareText,
				Expect:  models.Expectation{Text: "USD"},
			},
			{
				ID:      "fabric-wastage",
				Label:   "Fabric wastage",
				Anchor:  models.Locator{Column: 1, Keyword: "MATERIAL/DESCRIPTION", Occurrence: 1},
				Value:   models.At("H"),
				Compare: models.ComparePercent,
				Expect:  models.Expectation{Number: 4},
				Epsilon: 0.01,
				Section: &models.Section{
					Stop: models.Locator{Column: 1, Keyword: "SUBTOTAL"},
				},
			},
			{
				ID:      "trim-wastage",
				Label:   "Trim wastage",
				Anchor:  models.Locator{Column: 1, Keyword: "MATERIAL/DESCRIPTION", Occurrence: 2},
				Value:   models.At("H"),
				Compare: models.ComparePercent,
				Expect:  models.Expectation{Number: 2},
				Epsilon: 0.01,
				Section: &models.Section{
					Stop:    models.Locator{Column: 1, Keyword: "SUBTOTAL"},
					Exclude: []string{"COATS THREAD"},
				},
			},
			{
				ID:           "margin",
				Label:        "Factory margin",
				Anchor:       models.Locator{Column: 1, Keyword: "MARGIN", Match: models.MatchContains},
				Value:        models.At("K"),
				Compare:      models.CompareRange,
				Expect:       models.Expectation{Min: 8, Max: 15},
				PercentRange: true,
			},
		},
	}
}
