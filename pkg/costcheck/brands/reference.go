package brands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ukaji3/costcheck-go/pkg/costcheck/models"
	"github.com/ukaji3/costcheck-go/pkg/costcheck/parser"
	"github.com/xuri/excelize/v2"
)

const defaultEpsilon = 0.0001

// ReferenceRules expands a reference table into point rules, one per row,
// anchored on anchorCol.
func ReferenceRules(r io.Reader, anchorCol models.Column, charset string) ([]models.Rule, error) {
	rows, err := parser.ReadReference(r, charset)
	if err != nil {
		return nil, err
	}
	rules := make([]models.Rule, 0, len(rows))
	for i, row := range rows {
		rule, err := referenceRule(row, anchorCol)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d (%s): %v", parser.ErrReferenceFormat, i+1, row.Label, err)
		}
		rule.ID = fmt.Sprintf("ref-%02d", i+1)
		rules = append(rules, rule)
	}
	return rules, nil
}

func referenceRule(row parser.ReferenceRow, anchorCol models.Column) (models.Rule, error) {
	col, err := excelize.ColumnNameToNumber(row.Column)
	if err != nil {
		return models.Rule{}, err
	}
	value := models.Column(col - 1)

	match := models.MatchMode(row.Match)
	switch match {
	case "":
		match = models.MatchEquals
	case models.MatchEquals, models.MatchContains:
	default:
		return models.Rule{}, fmt.Errorf("unknown match %q", row.Match)
	}

	rule := models.Rule{
		Label:   row.Label,
		Anchor:  models.Locator{Column: anchorCol, Keyword: row.Keyword, Match: match},
		Value:   models.Target{Column: &value},
		Compare: models.Comparison(row.Kind),
		Epsilon: row.Tolerance,
	}
	switch rule.Compare {
	case models.CompareNumeric, models.ComparePercent:
		n, err := strconv.ParseFloat(strings.TrimSpace(row.Expected), 64)
		if err != nil {
			return models.Rule{}, fmt.Errorf("expected %q is not a number", row.Expected)
		}
		rule.Expect.Number = n
		rule.Decimals = decimals(row.Expected)
		if rule.Epsilon <= 0 {
			rule.Epsilon = defaultEpsilon
		}
	case models.CompareText:
		rule.Expect.Text = row.Expected
	case models.CompareOneOf:
		for _, s := range strings.Split(row.Expected, "|") {
			if s = strings.TrimSpace(s); s != "" {
				rule.Expect.OneOf = append(rule.Expect.OneOf, s)
			}
		}
	default:
		return models.Rule{}, fmt.Errorf("unknown kind %q", row.Kind)
	}
	return rule, nil
}

// decimals counts the digits after the decimal point, so "2.30" keeps its
// trailing zero when displayed.
func decimals(s string) int {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}
