package models

// FileResult is the validation outcome of one uploaded file.
// Error is set instead of Verdicts when the file could not be processed.
type FileResult struct {
	FileName string    `json:"file_name"`
	Sheet    string    `json:"sheet,omitempty"`
	Verdicts []Verdict `json:"verdicts,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// Total is the number of checks performed.
func (r FileResult) Total() int { return len(r.Verdicts) }

// Passed counts valid verdicts.
func (r FileResult) Passed() int {
	n := 0
	for _, v := range r.Verdicts {
		if v.IsValid {
			n++
		}
	}
	return n
}
