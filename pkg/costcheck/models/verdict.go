package models

// Status classifies a verdict for display. It is carried as data so that
// renderers never re-derive validity from formatted text.
type Status string

const (
	StatusPass     Status = "pass"
	StatusFail     Status = "fail"
	StatusWarn     Status = "warn"
	StatusEmpty    Status = "empty"
	StatusNotFound Status = "not_found"
)

// Verdict is the outcome of applying a rule to one located value.
// Verdicts are values and are never modified after creation.
type Verdict struct {
	// RuleID identifies the producing rule.
	RuleID string `json:"rule_id"`
	// Label is the display label (section rules use the row's item label).
	Label string `json:"label"`
	// Found is false when the anchor was not located.
	Found bool `json:"found"`
	// Row and Col are the 0-based coordinates of the value cell.
	Row int `json:"row"`
	Col int `json:"col"`
	// Cell is the A1 reference of the value cell ("" when not found).
	Cell string `json:"cell,omitempty"`
	// Actual is the raw cell text.
	Actual string `json:"actual"`
	// Numeric is the normalized number, when the value parsed as one.
	Numeric *float64 `json:"numeric,omitempty"`
	// Expected is the expectation formatted for display.
	Expected string `json:"expected"`
	Status   Status `json:"status"`
	IsValid  bool   `json:"is_valid"`
}

// NewVerdict fills IsValid from status.
func NewVerdict(v Verdict, status Status) Verdict {
	v.Status = status
	v.IsValid = status == StatusPass
	return v
}
