package brands

import "github.com/ukaji3/costcheck-go/pkg/costcheck/models"

// Tidewater reads the first sheet. Labels sit in column A and costs in
// column L; wastage percentages of the material sections are in column J.
// Unmarked numbers up to 1 are fractions.
func Tidewater() models.Ruleset {
	return models.Ruleset{
		Brand:   "tidewater",
		Title:   "Tidewater",
		Sheet:   models.SheetSelector{By: models.SheetFirst},
		Percent: models.FractionAtMostOne,
		Derivations: []models.Derivation{{
			Key:    "duty",
			Anchor: models.Locator{Column: 0, Keyword: "COUNTRY OF ORIGIN", Match: models.MatchContains},
			Value:  models.Offset(1),
			Table: map[string]models.Expectation{
				"VIETNAM":    {Number: 12},
				"CAMBODIA":   {Number: 0},
				"BANGLADESH": {Number: 0},
				"INDONESIA":  {Number: 12},
				"CHINA":      {Number: 27.5},
			},
		}},
		Rules: []models.Rule{
			{
				ID:      "currency",
				Label:   "Currency",
				Anchor:  models.Locator{Column: 0, Keyword: "CURRENCY"},
				Value:   models.Offset(1),
				Compare: models.CompareText,
				Expect:  models.Expectation{Text: "USD"},
			},
			{
				ID:      "incoterm",
				Label:   "Incoterm",
				Anchor:  models.Locator{Column: 0, Keyword: "INCOTERM", Match: models.MatchContains},
				Value:   models.Offset(1),
				Compare: models.CompareOneOf,
				Expect:  models.Expectation{OneOf: []string{"FOB", "FCA"}},
			},
			{
				ID:      "fabric-wastage",
				Label:   "Fabric wastage",
				Anchor:  models.Locator{Column: 0, Keyword: "FABRIC"},
				Value:   models.At("J"),
				Compare: models.ComparePercent,
				Expect:  models.Expectation{Number: 5},
				Epsilon: 0.01,
				Section: &models.Section{
					Stop: models.Locator{Column: 1, Keyword: "TOTAL FABRIC YARDAGE"},
				},
			},
			{
				ID:      "trim-wastage",
				Label:   "Trim wastage",
				Anchor:  models.Locator{Column: 0, Keyword: "TRIMS"},
				Value:   models.At("J"),
				Compare: models.ComparePercent,
				Expect:  models.Expectation{Number: 3},
				Epsilon: 0.01,
				Section: &models.Section{
					Stop:    models.Locator{Column: 0, Keyword: "TOTAL TRIM"},
					MaxRows: 60,
					Exclude: []string{"COATS THREAD"},
				},
			},
			{
				ID:       "overhead",
				Label:    "Overhead",
				Anchor:   models.Locator{Column: 0, Keyword: "OVERHEAD"},
				Value:    models.At("L"),
				Compare:  models.CompareNumeric,
				Expect:   models.Expectation{Number: 0.40},
				Epsilon:  0.0001,
				Decimals: 2,
			},
			{
				ID:         "duty",
				Label:      "Duty",
				Anchor:     models.Locator{Column: 0, Keyword: "DUTY", Match: models.MatchContains},
				Value:      models.At("L"),
				Compare:    models.ComparePercent,
				ExpectFrom: "duty",
				Epsilon:    0.01,
			},
			{
				ID:      "commission",
				Label:   "Agent commission",
				Anchor:  models.Locator{Column: 0, Keyword: "COMMISSION", Match: models.MatchContains},
				Value:   models.At("L"),
				Compare: models.CompareRange,
				Expect:  models.Expectation{Min: 0, Max: 5},
				// commission is entered as a rate
				PercentRange: true,
			},
			{
				ID:      "profit",
				Label:   "Profit",
				Anchor:  models.Locator{Column: 0, Keyword: "PROFIT", Match: models.MatchContains},
				Value:   models.At("L"),
				Compare: models.ComparePercent,
				Expect:  models.Expectation{Number: 10},
				Epsilon: 0.01,
				Warn:    0.5,
			},
		},
	}
}
