// Package output serializes validation results and workbook dumps.
package output

import (
	"encoding/json"
	"time"

	"github.com/ukaji3/costcheck-go/pkg/costcheck/models"
)

// Run is the JSON document for one validation run.
type Run struct {
	// ID identifies the run; empty for CLI runs.
	ID        string              `json:"id,omitempty"`
	Brand     string              `json:"brand"`
	Generated time.Time           `json:"generated"`
	Files     []models.FileResult `json:"files"`
	Passed    int                 `json:"passed"`
	Total     int                 `json:"total"`
}

// NewRun totals results into a run document.
func NewRun(id, brand string, results []models.FileResult, generated time.Time) Run {
	run := Run{ID: id, Brand: brand, Generated: generated, Files: results}
	if run.Files == nil {
		run.Files = []models.FileResult{}
	}
	for _, r := range results {
		run.Passed += r.Passed()
		run.Total += r.Total()
	}
	return run
}

// ToJSON serializes v, indented when pretty is set.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
