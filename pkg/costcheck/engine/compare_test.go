package engine

import (
	"testing"

	"github.com/ukaji3/costcheck-go/pkg/costcheck/models"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"0.40", 0.4, true},
		{" $1,234.50 ", 1234.5, true},
		{"-2", -2, true},
		{"abc", 0, false},
		{"", 0, false},
		{"$", 0, false},
		{"NaN", 0, false},
	}

	for _, tt := range tests {
		v, err := ParseNumber(tt.input)
		if (err == nil) != tt.ok || v != tt.expected {
			t.Errorf("ParseNumber(%q) = (%v, %v), expected %v ok=%v", tt.input, v, err, tt.expected, tt.ok)
		}
	}
}

func TestCompareNumericBoundaryIsExclusive(t *testing.T) {
	tests := []struct {
		expected, eps float64
	}{
		{1, 0.5},
		{10, 0.25},
		{0.5, 0.125},
	}

	for _, tt := range tests {
		at := FormatNumber(tt.expected+tt.eps, 0)
		if got := CompareNumeric(at, tt.expected, tt.eps, 0).Status; got != models.StatusFail {
			t.Errorf("distance eps: CompareNumeric(%s, %v, %v) = %s, expected fail", at, tt.expected, tt.eps, got)
		}
		half := FormatNumber(tt.expected+tt.eps/2, 0)
		if got := CompareNumeric(half, tt.expected, tt.eps, 0).Status; got != models.StatusPass {
			t.Errorf("distance eps/2: CompareNumeric(%s, %v, %v) = %s, expected pass", half, tt.expected, tt.eps, got)
		}
	}
}

func TestCompareNumericDecimalBoundary(t *testing.T) {
	tests := []struct {
		raw           string
		expected, eps float64
		status        models.Status
	}{
		{"0.4001", 0.40, 0.0001, models.StatusFail},
		{"0.3999", 0.40, 0.0001, models.StatusFail},
		{"0.40009", 0.40, 0.0001, models.StatusPass},
		{"2.355", 2.35, 0.005, models.StatusFail},
		{"2.345", 2.35, 0.005, models.StatusFail},
		{"2.354", 2.35, 0.005, models.StatusPass},
		{"0.41", 0.40, 0.01, models.StatusFail},
		{"0.39", 0.40, 0.01, models.StatusFail},
		{"0.409", 0.40, 0.01, models.StatusPass},
	}

	for _, tt := range tests {
		if got := CompareNumeric(tt.raw, tt.expected, tt.eps, 0).Status; got != tt.status {
			t.Errorf("CompareNumeric(%s, %v, %v) = %s, expected %s", tt.raw, tt.expected, tt.eps, got, tt.status)
		}
	}
}

func TestComparePercentDecimalBoundary(t *testing.T) {
	tests := []struct {
		raw    string
		status models.Status
	}{
		{"6.01%", models.StatusFail},
		{"5.99", models.StatusFail},
		{"0.0601", models.StatusFail},
		{"6.005%", models.StatusPass},
	}

	for _, tt := range tests {
		if got := ComparePercent(tt.raw, 6, 0.01, 0, models.FractionBelowOne).Status; got != tt.status {
			t.Errorf("ComparePercent(%s, 6, 0.01) = %s, expected %s", tt.raw, got, tt.status)
		}
	}
}

func TestWarnBandBoundaryIsExclusive(t *testing.T) {
	// profit 10% with eps 0.01 and a 0.5 warning band
	tests := []struct {
		raw    string
		status models.Status
	}{
		{"10.3%", models.StatusWarn},
		{"10.5%", models.StatusFail},
		{"9.5%", models.StatusFail},
		{"10.49%", models.StatusWarn},
	}

	for _, tt := range tests {
		if got := ComparePercent(tt.raw, 10, 0.01, 0.5, models.FractionAtMostOne).Status; got != tt.status {
			t.Errorf("ComparePercent(%s, 10, 0.01, 0.5) = %s, expected %s", tt.raw, got, tt.status)
		}
	}
}

func TestCompareNumericOutcomes(t *testing.T) {
	tests := []struct {
		raw      string
		expected models.Status
	}{
		{"0.40", models.StatusPass},
		{"0.41", models.StatusWarn},
		{"0.5", models.StatusFail},
		{"", models.StatusEmpty},
		{"   ", models.StatusEmpty},
		{"n/a", models.StatusFail},
	}

	for _, tt := range tests {
		out := CompareNumeric(tt.raw, 0.40, 0.0001, 0.05)
		if out.Status != tt.expected {
			t.Errorf("CompareNumeric(%q) = %s, expected %s", tt.raw, out.Status, tt.expected)
		}
		if (out.Numeric == nil) != (tt.expected == models.StatusEmpty || tt.raw == "n/a") {
			t.Errorf("CompareNumeric(%q) numeric = %v", tt.raw, out.Numeric)
		}
	}
}

func TestComparePercentNormalizationIsIdempotent(t *testing.T) {
	for _, expected := range []float64{5, 6} {
		var statuses []models.Status
		for _, raw := range []string{"5%", "5", "0.05"} {
			statuses = append(statuses, ComparePercent(raw, expected, 0.01, 0, models.FractionAtMostOne).Status)
		}
		for i := 1; i < len(statuses); i++ {
			if statuses[i] != statuses[0] {
				t.Errorf("expected %v: outcomes differ: %v", expected, statuses)
			}
		}
	}
}

func TestNormalizePercentHeuristics(t *testing.T) {
	tests := []struct {
		raw      string
		h        models.PercentHeuristic
		expected float64
	}{
		{"5%", models.FractionAtMostOne, 5},
		{" 12.5 % ", models.FractionBelowOne, 12.5},
		{"0.05", models.FractionAtMostOne, 5},
		{"1", models.FractionAtMostOne, 100},
		{"1", models.FractionBelowOne, 1},
		{"0.5", models.FractionBelowOne, 50},
		{"0.5", models.PercentOnly, 0.5},
		{"8", models.FractionAtMostOne, 8},
	}

	for _, tt := range tests {
		v, err := NormalizePercent(tt.raw, tt.h)
		if err != nil {
			t.Errorf("NormalizePercent(%q, %s) error: %v", tt.raw, tt.h, err)
			continue
		}
		if diff := v - tt.expected; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("NormalizePercent(%q, %s) = %v, expected %v", tt.raw, tt.h, v, tt.expected)
		}
	}

	if _, err := NormalizePercent("five", models.FractionAtMostOne); err == nil {
		t.Error("expected an error for a non-number")
	}
}

func TestCompareRange(t *testing.T) {
	tests := []struct {
		raw      string
		percent  bool
		expected models.Status
	}{
		{"0", false, models.StatusPass},
		{"5", false, models.StatusPass},
		{"5.01", false, models.StatusFail},
		{"0.03", true, models.StatusPass},
		{"3%", true, models.StatusPass},
		{"0.08", true, models.StatusFail},
		{"", true, models.StatusEmpty},
		{"x", false, models.StatusFail},
	}

	for _, tt := range tests {
		if got := CompareRange(tt.raw, 0, 5, tt.percent, models.FractionAtMostOne).Status; got != tt.expected {
			t.Errorf("CompareRange(%q, percent=%v) = %s, expected %s", tt.raw, tt.percent, got, tt.expected)
		}
	}
}

func TestCompareTextAndOneOf(t *testing.T) {
	if got := CompareText(" usd ", "USD"); got != models.StatusPass {
		t.Errorf("CompareText = %s, expected pass", got)
	}
	if got := CompareText("US Dollar", "USD"); got != models.StatusFail {
		t.Errorf("CompareText partial = %s, expected fail", got)
	}
	if got := CompareText("", "USD"); got != models.StatusEmpty {
		t.Errorf("CompareText empty = %s, expected empty", got)
	}
	if got := CompareOneOf("fca", []string{"FOB", "FCA"}); got != models.StatusPass {
		t.Errorf("CompareOneOf = %s, expected pass", got)
	}
	if got := CompareOneOf("CIF", []string{"FOB", "FCA"}); got != models.StatusFail {
		t.Errorf("CompareOneOf = %s, expected fail", got)
	}
}
