// Package brands holds the brand rulesets. A ruleset is data consumed by the
// engine; adding a brand means adding a table here or a YAML file, never a
// new scan loop.
package brands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ukaji3/costcheck-go/pkg/costcheck/engine"
	"github.com/ukaji3/costcheck-go/pkg/costcheck/models"
)

var (
	// ErrUnknownBrand indicates a brand with no built-in ruleset.
	ErrUnknownBrand = errors.New("unknown brand")
	// ErrReferenceMissing indicates a brand's reference table is absent.
	// No file of that brand can be validated without it.
	ErrReferenceMissing = errors.New("reference table missing")
	// ErrInvalidRuleset indicates a ruleset that cannot be evaluated.
	ErrInvalidRuleset = errors.New("invalid ruleset")
)

var builtins = map[string]func() models.Ruleset{
	"tidewater": Tidewater,
	"summit":    Summit,
}

// Names lists the built-in brands in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup returns a fresh copy of a built-in ruleset.
func Lookup(brand string) (models.Ruleset, bool) {
	build, ok := builtins[strings.ToLower(strings.TrimSpace(brand))]
	if !ok {
		return models.Ruleset{}, false
	}
	return build(), true
}

// Options controls how reference tables are found.
type Options struct {
	// ReferenceDir is the directory holding reference tables.
	ReferenceDir string
	// Charset overrides the ruleset's reference charset when set.
	Charset string
}

// Load returns the built-in ruleset for brand with its reference table
// expanded into rules.
func Load(brand string, opts Options) (*models.Ruleset, error) {
	rs, ok := Lookup(brand)
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownBrand, brand, strings.Join(Names(), ", "))
	}
	return Prepare(rs, opts)
}

// Resolve picks the ruleset for a run. A rules file is used when brand is
// empty or names the brand the file declares; otherwise brand is a built-in.
func Resolve(brand, rulesFile string, opts Options) (*models.Ruleset, error) {
	if rulesFile != "" {
		rs, err := LoadFile(rulesFile, opts)
		if err != nil {
			return nil, err
		}
		if brand == "" || strings.EqualFold(rs.Brand, brand) {
			return rs, nil
		}
	}
	return Load(brand, opts)
}

// Prepare validates rs and appends the rules of its reference table.
func Prepare(rs models.Ruleset, opts Options) (*models.Ruleset, error) {
	if rs.Reference != nil {
		path := filepath.Join(opts.ReferenceDir, rs.Reference.File)
		f, err := os.Open(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%s: %w: %s", rs.Title, ErrReferenceMissing, path)
			}
			return nil, fmt.Errorf("%s: %w", rs.Title, err)
		}
		defer f.Close()

		charset := rs.Reference.Charset
		if opts.Charset != "" {
			charset = opts.Charset
		}
		extra, err := ReferenceRules(f, rs.Reference.AnchorColumn, charset)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", rs.Title, path, err)
		}
		rs.Rules = append(append([]models.Rule(nil), rs.Rules...), extra...)
	}
	if err := Validate(&rs); err != nil {
		return nil, err
	}
	return &rs, nil
}

// Validate checks that every rule can be evaluated.
func Validate(rs *models.Ruleset) error {
	if rs.Brand == "" {
		return fmt.Errorf("%w: brand is empty", ErrInvalidRuleset)
	}
	keys := make(map[string]bool, len(rs.Derivations))
	for _, d := range rs.Derivations {
		if d.Key == "" || strings.TrimSpace(d.Anchor.Keyword) == "" {
			return fmt.Errorf("%w: derivation %q needs a key and an anchor keyword", ErrInvalidRuleset, d.Key)
		}
		if len(engine.NormalizeTable(d.Table)) != len(d.Table) {
			return fmt.Errorf("%w: derivation %q has table keys that differ only in case or spacing", ErrInvalidRuleset, d.Key)
		}
		keys[d.Key] = true
	}
	if !knownHeuristic(rs.Percent) {
		return fmt.Errorf("%w: unknown percent heuristic %q", ErrInvalidRuleset, rs.Percent)
	}
	seen := make(map[string]bool, len(rs.Rules))
	for i, r := range rs.Rules {
		switch {
		case r.ID == "":
			return fmt.Errorf("%w: rule %d has no id", ErrInvalidRuleset, i+1)
		case seen[r.ID]:
			return fmt.Errorf("%w: duplicate rule id %q", ErrInvalidRuleset, r.ID)
		case strings.TrimSpace(r.Anchor.Keyword) == "":
			return fmt.Errorf("%w: rule %q has no anchor keyword", ErrInvalidRuleset, r.ID)
		case r.ExpectFrom != "" && !keys[r.ExpectFrom]:
			return fmt.Errorf("%w: rule %q expects from unknown derivation %q", ErrInvalidRuleset, r.ID, r.ExpectFrom)
		case r.Section != nil && strings.TrimSpace(r.Section.Stop.Keyword) == "":
			return fmt.Errorf("%w: section rule %q has no stop keyword", ErrInvalidRuleset, r.ID)
		}
		switch r.Compare {
		case models.CompareText, models.CompareNumeric, models.ComparePercent, models.CompareRange, models.CompareOneOf:
		default:
			return fmt.Errorf("%w: rule %q has unknown comparison %q", ErrInvalidRuleset, r.ID, r.Compare)
		}
		if (r.Compare == models.CompareNumeric || r.Compare == models.ComparePercent) && r.Epsilon <= 0 {
			return fmt.Errorf("%w: rule %q needs a positive epsilon", ErrInvalidRuleset, r.ID)
		}
		if !knownHeuristic(r.Percent) {
			return fmt.Errorf("%w: rule %q has unknown percent heuristic %q", ErrInvalidRuleset, r.ID, r.Percent)
		}
		if r.Compare == models.CompareRange && r.ExpectFrom == "" && r.Expect.Min > r.Expect.Max {
			return fmt.Errorf("%w: rule %q has min %v above max %v", ErrInvalidRuleset, r.ID, r.Expect.Min, r.Expect.Max)
		}
		seen[r.ID] = true
	}
	return nil
}

// knownHeuristic accepts the named heuristics and "" (inherit).
func knownHeuristic(h models.PercentHeuristic) bool {
	switch h {
	case "", models.FractionAtMostOne, models.FractionBelowOne, models.PercentOnly:
		return true
	}
	return false
}
