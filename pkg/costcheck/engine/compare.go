package engine

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/costcheck-go/pkg/costcheck/models"
)

// ErrNotNumber indicates a cell that does not parse as a number.
var ErrNotNumber = errors.New("not a number")

var numberCleaner = strings.NewReplacer("$", "", ",", "", " ", "", "\u00a0", "")

// Outcome is the result of comparing one raw cell value.
type Outcome struct {
	Status models.Status
	// Numeric is the normalized value when the cell parsed as a number.
	Numeric *float64
}

func isEmpty(raw string) bool {
	return strings.TrimSpace(raw) == ""
}

// ParseNumber parses a float, ignoring currency signs, thousands separators
// and surrounding whitespace.
func ParseNumber(raw string) (float64, error) {
	s := numberCleaner.Replace(strings.TrimSpace(raw))
	if s == "" {
		return 0, ErrNotNumber
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotNumber
	}
	return v, nil
}

// NormalizePercent brings a cell to percent scale: "5%", "5" and "0.05"
// all yield 5 under FractionAtMostOne. Values carrying "%" are already
// percent; otherwise h decides whether a small number is a fraction.
func NormalizePercent(raw string, h models.PercentHeuristic) (float64, error) {
	s := strings.TrimSpace(raw)
	if strings.Contains(s, "%") {
		return ParseNumber(strings.ReplaceAll(s, "%", ""))
	}
	v, err := ParseNumber(s)
	if err != nil {
		return 0, err
	}
	switch h {
	case models.PercentOnly:
		return v, nil
	case models.FractionBelowOne:
		if math.Abs(v) < 1 {
			return v * 100, nil
		}
	default:
		if math.Abs(v) <= 1 {
			return v * 100, nil
		}
	}
	return v, nil
}

// CompareText is a case-insensitive comparison of trimmed values.
func CompareText(actual, expected string) models.Status {
	if isEmpty(actual) {
		return models.StatusEmpty
	}
	if strings.EqualFold(strings.TrimSpace(actual), strings.TrimSpace(expected)) {
		return models.StatusPass
	}
	return models.StatusFail
}

// CompareOneOf passes when actual equals any member of set.
func CompareOneOf(actual string, set []string) models.Status {
	if isEmpty(actual) {
		return models.StatusEmpty
	}
	for _, s := range set {
		if strings.EqualFold(strings.TrimSpace(actual), strings.TrimSpace(s)) {
			return models.StatusPass
		}
	}
	return models.StatusFail
}

// within reports diff < limit. Decimal inputs rarely subtract exactly in
// binary (0.4001-0.40 is a hair under 0.0001), so a diff within a relative
// 1e-9 of limit counts as equal to it and is outside.
func within(diff, limit float64) bool {
	if diff >= limit {
		return false
	}
	return limit-diff > 1e-9*math.Max(math.Abs(diff), math.Abs(limit))
}

// tolerance classifies a distance: below eps passes, below warn is a warning.
func tolerance(diff, eps, warn float64) models.Status {
	switch {
	case within(diff, eps):
		return models.StatusPass
	case warn > eps && within(diff, warn):
		return models.StatusWarn
	default:
		return models.StatusFail
	}
}

// CompareNumeric passes iff |actual-expected| < eps.
func CompareNumeric(actual string, expected, eps, warn float64) Outcome {
	if isEmpty(actual) {
		return Outcome{Status: models.StatusEmpty}
	}
	v, err := ParseNumber(actual)
	if err != nil {
		return Outcome{Status: models.StatusFail}
	}
	return Outcome{Status: tolerance(math.Abs(v-expected), eps, warn), Numeric: &v}
}

// ComparePercent is CompareNumeric on percent-normalized values. expected is
// on percent scale (5 means 5%).
func ComparePercent(actual string, expected, eps, warn float64, h models.PercentHeuristic) Outcome {
	if isEmpty(actual) {
		return Outcome{Status: models.StatusEmpty}
	}
	v, err := NormalizePercent(actual, h)
	if err != nil {
		return Outcome{Status: models.StatusFail}
	}
	return Outcome{Status: tolerance(math.Abs(v-expected), eps, warn), Numeric: &v}
}

// CompareRange passes iff min <= actual <= max. With percent set the value
// is percent-normalized first.
func CompareRange(actual string, min, max float64, percent bool, h models.PercentHeuristic) Outcome {
	if isEmpty(actual) {
		return Outcome{Status: models.StatusEmpty}
	}
	var (
		v   float64
		err error
	)
	if percent {
		v, err = NormalizePercent(actual, h)
	} else {
		v, err = ParseNumber(actual)
	}
	if err != nil {
		return Outcome{Status: models.StatusFail}
	}
	if v >= min && v <= max {
		return Outcome{Status: models.StatusPass, Numeric: &v}
	}
	return Outcome{Status: models.StatusFail, Numeric: &v}
}
