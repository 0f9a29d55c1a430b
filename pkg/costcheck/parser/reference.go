package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// ReferenceColumns is the fixed column order of a reference table.
var ReferenceColumns = []string{"label", "keyword", "match", "column", "kind", "expected", "tolerance"}

// ErrReferenceFormat indicates a malformed reference table.
var ErrReferenceFormat = errors.New("malformed reference table")

// ReferenceRow is one line of a brand's canonical cost-breakdown table.
type ReferenceRow struct {
	Label     string
	Keyword   string
	Match     string
	Column    string
	Kind      string
	Expected  string
	Tolerance float64
}

// ReadReference reads a comma-delimited reference table with a header row.
// charset names the text encoding ("" or "utf-8" reads the bytes as is).
func ReadReference(r io.Reader, charset string) ([]ReferenceRow, error) {
	if cs := strings.ToLower(strings.TrimSpace(charset)); cs != "" && cs != "utf-8" && cs != "utf8" {
		enc, err := htmlindex.Get(cs)
		if err != nil {
			return nil, fmt.Errorf("charset %q: %w", charset, err)
		}
		r = transform.NewReader(r, enc.NewDecoder())
	}

	cr := csv.NewReader(r)
	cr.Comma = ','
	cr.FieldsPerRecord = len(ReferenceColumns)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	for i, want := range ReferenceColumns {
		if !strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff")), want) {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrReferenceFormat, i+1, header[i], want)
		}
	}

	var rows []ReferenceRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row := ReferenceRow{
			Label:    rec[0],
			Keyword:  rec[1],
			Match:    strings.ToLower(rec[2]),
			Column:   strings.ToUpper(rec[3]),
			Kind:     strings.ToLower(rec[4]),
			Expected: rec[5],
		}
		if s := strings.TrimSpace(rec[6]); s != "" {
			if row.Tolerance, err = strconv.ParseFloat(s, 64); err != nil {
				return nil, fmt.Errorf("%w: line %d: tolerance %q", ErrReferenceFormat, line, s)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
