package brands

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ukaji3/costcheck-go/pkg/costcheck/models"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a custom ruleset from a YAML file. Unknown keys are
// rejected so a misspelt field does not silently disable a check.
func LoadFile(path string, opts Options) (*models.Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rs models.Ruleset
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rs); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrInvalidRuleset, err)
	}
	if rs.Title == "" {
		rs.Title = rs.Brand
	}
	return Prepare(rs, opts)
}

// Marshal writes a ruleset as YAML, the starting point for a custom file.
func Marshal(rs models.Ruleset) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(rs); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
