package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ukaji3/costcheck-go/pkg/costcheck/models"
	"github.com/xuri/excelize/v2"
)

// Evaluator applies one ruleset to grids. It holds no per-grid state, so a
// single Evaluator may be reused for every file of a run.
type Evaluator struct {
	rs *models.Ruleset
	// tables holds each derivation's lookup table keyed by normalized text.
	tables map[string]map[string]models.Expectation
}

// NewEvaluator creates an evaluator for rs.
func NewEvaluator(rs *models.Ruleset) *Evaluator {
	e := &Evaluator{rs: rs, tables: make(map[string]map[string]models.Expectation, len(rs.Derivations))}
	for _, d := range rs.Derivations {
		e.tables[d.Key] = NormalizeTable(d.Table)
	}
	return e
}

// NormalizeTable rekeys a derivation table by normalized text. Keys that
// collide after normalization resolve to the lexically smallest original key.
func NormalizeTable(table map[string]models.Expectation) map[string]models.Expectation {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(map[string]models.Expectation, len(table))
	for _, k := range keys {
		nk := Normalize(k)
		if _, dup := out[nk]; !dup {
			out[nk] = table[k]
		}
	}
	return out
}

// derived is an expectation computed from the grid before evaluation.
type derived struct {
	expect models.Expectation
	source string
	ok     bool
}

// Evaluate runs every rule against g and returns verdicts in rule order,
// section verdicts in row order.
func (e *Evaluator) Evaluate(g models.Grid) []models.Verdict {
	values := e.derive(g)
	var verdicts []models.Verdict
	for _, rule := range e.rs.Rules {
		if rule.IsSection() {
			verdicts = append(verdicts, e.evalSection(g, rule, values)...)
			continue
		}
		verdicts = append(verdicts, e.evalPoint(g, rule, values))
	}
	return verdicts
}

func (e *Evaluator) derive(g models.Grid) map[string]derived {
	values := make(map[string]derived, len(e.rs.Derivations))
	for _, d := range e.rs.Derivations {
		m, ok := Locate(g, d.Anchor)
		if !ok {
			values[d.Key] = derived{}
			continue
		}
		src := strings.TrimSpace(g.Cell(m.Row, d.Value.Resolve(m.Col)))
		key := Normalize(src)
		res := derived{source: src}
		if key != "" {
			res.expect, res.ok = e.tables[d.Key][key]
		}
		if !res.ok && d.Default != nil && key != "" {
			res.expect, res.ok = *d.Default, true
		}
		values[d.Key] = res
	}
	return values
}

// expectation resolves the rule's expected value and its display text.
// ok is false when a derived expectation could not be determined.
func (e *Evaluator) expectation(rule models.Rule, values map[string]derived) (models.Expectation, string, bool) {
	if rule.ExpectFrom == "" {
		return rule.Expect, e.display(rule, rule.Expect), true
	}
	d := values[rule.ExpectFrom]
	if !d.ok {
		if d.source == "" {
			return models.Expectation{}, rule.ExpectFrom + " not found", false
		}
		return models.Expectation{}, fmt.Sprintf("no %s rate for %q", rule.ExpectFrom, d.source), false
	}
	return d.expect, fmt.Sprintf("%s (%s)", e.display(rule, d.expect), d.source), true
}

func (e *Evaluator) heuristic(rule models.Rule) models.PercentHeuristic {
	if rule.Percent != "" {
		return rule.Percent
	}
	if e.rs.Percent != "" {
		return e.rs.Percent
	}
	return models.FractionAtMostOne
}

func (e *Evaluator) compare(rule models.Rule, exp models.Expectation, raw string) Outcome {
	switch rule.Compare {
	case models.CompareNumeric:
		return CompareNumeric(raw, exp.Number, rule.Epsilon, rule.Warn)
	case models.ComparePercent:
		return ComparePercent(raw, exp.Number, rule.Epsilon, rule.Warn, e.heuristic(rule))
	case models.CompareRange:
		return CompareRange(raw, exp.Min, exp.Max, rule.PercentRange, e.heuristic(rule))
	case models.CompareOneOf:
		return Outcome{Status: CompareOneOf(raw, exp.OneOf)}
	default:
		return Outcome{Status: CompareText(raw, exp.Text)}
	}
}

func (e *Evaluator) evalPoint(g models.Grid, rule models.Rule, values map[string]derived) models.Verdict {
	exp, shown, expOK := e.expectation(rule, values)
	v := models.Verdict{RuleID: rule.ID, Label: rule.Label, Expected: shown, Row: -1, Col: -1}

	m, ok := Locate(g, rule.Anchor)
	if !ok {
		return models.NewVerdict(v, models.StatusNotFound)
	}
	return e.check(g, rule, v, m.Row, rule.Value.Resolve(m.Col), exp, expOK)
}

func (e *Evaluator) check(g models.Grid, rule models.Rule, v models.Verdict, row, col int, exp models.Expectation, expOK bool) models.Verdict {
	v.Found = true
	v.Row, v.Col = row, col
	v.Cell = CellRef(row, col)
	v.Actual = strings.TrimSpace(g.Cell(row, col))
	if !expOK {
		if v.Actual == "" {
			return models.NewVerdict(v, models.StatusEmpty)
		}
		return models.NewVerdict(v, models.StatusFail)
	}
	out := e.compare(rule, exp, v.Actual)
	v.Numeric = out.Numeric
	return models.NewVerdict(v, out.Status)
}

func (e *Evaluator) evalSection(g models.Grid, rule models.Rule, values map[string]derived) []models.Verdict {
	exp, shown, expOK := e.expectation(rule, values)
	start, ok := Locate(g, rule.Anchor)
	if !ok {
		v := models.Verdict{RuleID: rule.ID, Label: rule.Label, Expected: shown, Row: -1, Col: -1}
		return []models.Verdict{models.NewVerdict(v, models.StatusNotFound)}
	}

	sec := rule.Section
	labelCol := start.Col
	if sec.LabelColumn != nil {
		labelCol = int(*sec.LabelColumn)
	}
	valueCol := rule.Value.Resolve(start.Col)

	var verdicts []models.Verdict
	first, last := ResolveSection(g, start.Row, sec.Stop, sec.MaxRows).Rows()
	for r := first; r <= last; r++ {
		if isEmpty(g.Cell(r, valueCol)) {
			continue
		}
		item := strings.TrimSpace(g.Cell(r, labelCol))
		if excluded(item, sec.Exclude) {
			continue
		}
		label := rule.Label
		if item != "" {
			label = rule.Label + ": " + item
		}
		v := models.Verdict{RuleID: rule.ID, Label: label, Expected: shown}
		verdicts = append(verdicts, e.check(g, rule, v, r, valueCol, exp, expOK))
	}
	return verdicts
}

func excluded(label string, keywords []string) bool {
	l := Normalize(label)
	for _, kw := range keywords {
		if k := Normalize(kw); k != "" && strings.Contains(l, k) {
			return true
		}
	}
	return false
}

// display formats an expectation the way it is shown next to a failed cell.
func (e *Evaluator) display(rule models.Rule, exp models.Expectation) string {
	switch rule.Compare {
	case models.CompareNumeric:
		return FormatNumber(exp.Number, rule.Decimals)
	case models.ComparePercent:
		return FormatNumber(exp.Number, rule.Decimals) + "%"
	case models.CompareRange:
		suffix := ""
		if rule.PercentRange {
			suffix = "%"
		}
		return fmt.Sprintf("%s%s to %s%s",
			FormatNumber(exp.Min, rule.Decimals), suffix, FormatNumber(exp.Max, rule.Decimals), suffix)
	case models.CompareOneOf:
		return strings.Join(exp.OneOf, " / ")
	default:
		return exp.Text
	}
}

// FormatNumber prints v with a fixed number of decimals, or the shortest
// exact form when decimals is 0.
func FormatNumber(v float64, decimals int) string {
	if decimals <= 0 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// CellRef converts 0-based coordinates to an A1 reference ("L10").
func CellRef(row, col int) string {
	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return ""
	}
	return name
}
