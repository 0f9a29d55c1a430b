package models

// SheetBy selects which sheet of a workbook a ruleset reads.
type SheetBy string

const (
	SheetFirst SheetBy = "first"
	SheetLast  SheetBy = "last"
	SheetNamed SheetBy = "name"
)

// SheetSelector picks a sheet. For SheetNamed, Fallback is used when no
// sheet name contains Name.
type SheetSelector struct {
	By       SheetBy `json:"by" yaml:"by"`
	Name     string  `json:"name,omitempty" yaml:"name,omitempty"`
	Fallback SheetBy `json:"fallback,omitempty" yaml:"fallback,omitempty"`
}

// ReferenceTable names a comma-delimited file whose rows expand into
// point rules. Its absence is fatal for the brand.
type ReferenceTable struct {
	File string `json:"file" yaml:"file"`
	// AnchorColumn is where each row's keyword is searched.
	AnchorColumn Column `json:"anchor_column" yaml:"anchor_column"`
	Charset      string `json:"charset,omitempty" yaml:"charset,omitempty"`
}

// Ruleset is a brand's static table of rules.
type Ruleset struct {
	// Brand is the short identifier used on the command line and in file names.
	Brand string `json:"brand" yaml:"brand"`
	// Title is the display name.
	Title string        `json:"title" yaml:"title"`
	Sheet SheetSelector `json:"sheet" yaml:"sheet"`
	// Percent is the default heuristic for percent and range checks.
	Percent     PercentHeuristic `json:"percent" yaml:"percent"`
	Derivations []Derivation     `json:"derivations,omitempty" yaml:"derivations,omitempty"`
	Rules       []Rule           `json:"rules" yaml:"rules"`
	Reference   *ReferenceTable  `json:"reference,omitempty" yaml:"reference,omitempty"`
}
