package geom

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Table is a parsed CSV file with a header row.
type Table struct {
	Header []string
	Rows   [][]string
	index  map[string]int
}

// ReadTable reads a CSV with a header row. Short rows are padded so every
// row has len(Header) cells.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}
	t := &Table{Header: recs[0], index: map[string]int{}}
	for i, h := range t.Header {
		lh := strings.ToLower(strings.TrimSpace(h))
		if _, dup := t.index[lh]; !dup {
			t.index[lh] = i
		}
	}
	for _, row := range recs[1:] {
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		vals := make([]string, len(t.Header))
		copy(vals, row)
		t.Rows = append(t.Rows, vals)
	}
	return t, nil
}

// Column returns the index of the first header matching any of names
// (case-insensitive), or -1.
func (t *Table) Column(names ...string) int {
	for _, n := range names {
		if i, ok := t.index[strings.ToLower(n)]; ok {
			return i
		}
	}
	return -1
}

// Require is Column but fails when no header matches.
func (t *Table) Require(names ...string) (int, error) {
	if i := t.Column(names...); i >= 0 {
		return i, nil
	}
	return -1, fmt.Errorf("csv: column %s not found", strings.Join(names, "|"))
}

// Float parses cell (row, col) as a number. Thousands separators are accepted.
func (t *Table) Float(row, col int) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(t.Rows[row][col]), ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("csv: row %d, column %q: %w", row+2, t.Header[col], err)
	}
	return v, nil
}

// String returns the trimmed cell, or "" for col < 0.
func (t *Table) String(row, col int) string {
	if col < 0 {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][col])
}
