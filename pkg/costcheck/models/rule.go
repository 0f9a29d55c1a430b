package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// MatchMode selects how an anchor keyword is compared with a cell.
type MatchMode string

const (
	// MatchEquals requires the normalized cell to equal the keyword.
	MatchEquals MatchMode = "equals"
	// MatchContains requires the normalized cell to contain the keyword.
	MatchContains MatchMode = "contains"
)

// Comparison is the kind of check applied to a located value.
type Comparison string

const (
	CompareText    Comparison = "text"
	CompareNumeric Comparison = "numeric"
	ComparePercent Comparison = "percent"
	CompareRange   Comparison = "range"
	CompareOneOf   Comparison = "oneof"
)

// PercentHeuristic decides how an unmarked number is brought to percent scale.
// Brands disagree on the boundary value 1, so each ruleset names its own.
type PercentHeuristic string

const (
	// FractionAtMostOne treats values <= 1 as fractions (1 means 100%).
	FractionAtMostOne PercentHeuristic = "fraction_at_most_one"
	// FractionBelowOne treats values < 1 as fractions (1 means 1%).
	FractionBelowOne PercentHeuristic = "fraction_below_one"
	// PercentOnly never rescales unmarked numbers.
	PercentOnly PercentHeuristic = "percent_only"
)

// Column is a 0-based column index. In YAML it may be written as a
// letter ("L") or as a 0-based number.
type Column int

// AnyColumn makes a locator scan every column of a row, left to right.
const AnyColumn Column = -1

// Letter returns the spreadsheet letter of the column ("A", "AA").
func (c Column) Letter() string {
	if c < 0 {
		return "*"
	}
	name, err := excelize.ColumnNumberToName(int(c) + 1)
	if err != nil {
		return strconv.Itoa(int(c))
	}
	return name
}

// UnmarshalYAML accepts "L", "*", or an integer.
func (c *Column) UnmarshalYAML(value *yaml.Node) error {
	s := strings.TrimSpace(value.Value)
	if s == "*" {
		*c = AnyColumn
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		*c = Column(n)
		return nil
	}
	n, err := excelize.ColumnNameToNumber(s)
	if err != nil {
		return fmt.Errorf("line %d: invalid column %q: %w", value.Line, s, err)
	}
	*c = Column(n - 1)
	return nil
}

// MarshalYAML writes the column as its letter.
func (c Column) MarshalYAML() (interface{}, error) {
	return c.Letter(), nil
}

// Col is shorthand for building a *Column in ruleset tables.
func Col(letter string) *Column {
	n, err := excelize.ColumnNameToNumber(letter)
	if err != nil {
		panic(fmt.Sprintf("models: bad column %q", letter))
	}
	c := Column(n - 1)
	return &c
}

// Locator finds an anchor cell by keyword.
type Locator struct {
	// Column is the column scanned for the keyword.
	Column Column `json:"column" yaml:"column"`
	// Keyword is matched case-insensitively after trimming.
	Keyword string `json:"keyword" yaml:"keyword"`
	// Match is equals or contains (default equals).
	Match MatchMode `json:"match,omitempty" yaml:"match,omitempty"`
	// Occurrence selects the Nth match from the top (1-based, default 1).
	Occurrence int `json:"occurrence,omitempty" yaml:"occurrence,omitempty"`
}

// Target locates the value cell on the anchor row.
type Target struct {
	// Column is an absolute column; when nil, Offset is used.
	Column *Column `json:"column,omitempty" yaml:"column,omitempty"`
	// Offset is added to the anchor column.
	Offset int `json:"offset,omitempty" yaml:"offset,omitempty"`
}

// Resolve returns the value column for an anchor found in anchorCol.
func (t Target) Resolve(anchorCol int) int {
	if t.Column != nil {
		return int(*t.Column)
	}
	return anchorCol + t.Offset
}

// At targets an absolute column by letter.
func At(letter string) Target { return Target{Column: Col(letter)} }

// Offset targets a column relative to the anchor.
func Offset(n int) Target { return Target{Offset: n} }

// Expectation is the expected value of a check.
type Expectation struct {
	Text   string   `json:"text,omitempty" yaml:"text,omitempty"`
	Number float64  `json:"number,omitempty" yaml:"number,omitempty"`
	Min    float64  `json:"min,omitempty" yaml:"min,omitempty"`
	Max    float64  `json:"max,omitempty" yaml:"max,omitempty"`
	OneOf  []string `json:"one_of,omitempty" yaml:"one_of,omitempty"`
}

// Section turns a rule into a scan over the rows between its anchor and a
// stop keyword.
type Section struct {
	// Stop ends the section; it is always matched with contains.
	Stop Locator `json:"stop" yaml:"stop"`
	// MaxRows caps the scan when positive.
	MaxRows int `json:"max_rows,omitempty" yaml:"max_rows,omitempty"`
	// LabelColumn holds the item label of each row (default: anchor column).
	LabelColumn *Column `json:"label_column,omitempty" yaml:"label_column,omitempty"`
	// Exclude skips rows whose label contains any of these keywords.
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

// Rule is one declarative check.
type Rule struct {
	ID      string      `json:"id" yaml:"id"`
	Label   string      `json:"label" yaml:"label"`
	Anchor  Locator     `json:"anchor" yaml:"anchor"`
	Value   Target      `json:"value" yaml:"value"`
	Compare Comparison  `json:"compare" yaml:"compare"`
	Expect  Expectation `json:"expect" yaml:"expect"`
	// ExpectFrom names a derivation whose result replaces Expect.
	ExpectFrom string `json:"expect_from,omitempty" yaml:"expect_from,omitempty"`
	// Epsilon is the exclusive tolerance for numeric and percent checks.
	Epsilon float64 `json:"epsilon,omitempty" yaml:"epsilon,omitempty"`
	// Warn is the outer tolerance inside which a miss is a warning.
	Warn float64 `json:"warn,omitempty" yaml:"warn,omitempty"`
	// Percent overrides the ruleset heuristic for this rule.
	Percent PercentHeuristic `json:"percent,omitempty" yaml:"percent,omitempty"`
	// PercentRange normalizes range checks to percent scale.
	PercentRange bool `json:"percent_range,omitempty" yaml:"percent_range,omitempty"`
	// Decimals fixes the display precision of expected numbers (0: shortest).
	Decimals int      `json:"decimals,omitempty" yaml:"decimals,omitempty"`
	Section  *Section `json:"section,omitempty" yaml:"section,omitempty"`
}

// IsSection reports whether the rule scans a section.
func (r Rule) IsSection() bool { return r.Section != nil }

// Derivation computes an expectation from another cell of the same grid,
// e.g. a duty rate that depends on the country of origin.
type Derivation struct {
	Key    string  `json:"key" yaml:"key"`
	Anchor Locator `json:"anchor" yaml:"anchor"`
	Value  Target  `json:"value" yaml:"value"`
	// Table maps the normalized (upper-case) source value to an expectation.
	Table map[string]Expectation `json:"table" yaml:"table"`
	// Default applies when the source value is not in Table.
	Default *Expectation `json:"default,omitempty" yaml:"default,omitempty"`
}
