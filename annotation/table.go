// Package annotation reads the probe-level annotation tables that accompany
// each RNAcompete experiment. Rows are probes; columns are the measured
// intensity of each RNA-binding protein target plus free-form metadata.
package annotation

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"io/ioutil"
	"math"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/carbocation/rnacompete"
)

// Table is a parsed annotation table. Values are kept as text until a column
// is requested so that metadata columns never need to be numeric.
type Table struct {
	Columns []string

	header map[string]int
	rows   [][]string
}

// Read parses a delimited annotation table whose first line is a header. If
// delimiter is 0, it is detected from the content.
func Read(r io.Reader, delimiter rune) (*Table, error) {
	body, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(err)
	}

	if delimiter == 0 {
		delimiter = rnacompete.DetermineDelimiter(bytes.NewReader(body))
	}

	cr := csv.NewReader(bytes.NewReader(body))
	cr.Comma = delimiter
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, pfx.Err(err)
	}

	if len(records) < 1 {
		return nil, pfx.Err(fmt.Errorf("No entries in the annotation table"))
	}

	t := &Table{
		Columns: records[0],
		header:  make(map[string]int, len(records[0])),
		rows:    records[1:],
	}

	for i, col := range t.Columns {
		if _, exists := t.header[col]; exists {
			return nil, pfx.Err(fmt.Errorf("Column %q appears more than once in the header", col))
		}
		t.header[col] = i
	}

	return t, nil
}

// Len returns the number of probes (data rows).
func (t *Table) Len() int {
	return len(t.rows)
}

// HasColumn reports whether the table has a column named col.
func (t *Table) HasColumn(col string) bool {
	_, exists := t.header[col]
	return exists
}

// SelectColumns returns, in header order, the names of every column that
// contains pattern as a substring.
func (t *Table) SelectColumns(pattern string) []string {
	out := make([]string, 0)
	for _, col := range t.Columns {
		if strings.Contains(col, pattern) {
			out = append(out, col)
		}
	}

	return out
}

// Float64s parses a column as numbers. Empty and NA-like cells become NaN.
func (t *Table) Float64s(col string) ([]float64, error) {
	idx, exists := t.header[col]
	if !exists {
		return nil, pfx.Err(fmt.Errorf("Column %q not found in the annotation table", col))
	}

	out := make([]float64, len(t.rows))
	for i, row := range t.rows {
		if idx >= len(row) {
			return nil, pfx.Err(fmt.Errorf("Row %d has %d fields but column %q is field %d", i+1, len(row), col, idx+1))
		}

		v, err := ParseValue(row[idx])
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("Row %d, column %q: %v", i+1, col, err))
		}
		out[i] = v
	}

	return out, nil
}

// Observed returns the parsed values of every named column.
func (t *Table) Observed(cols []string) (map[string][]float64, error) {
	out := make(map[string][]float64, len(cols))
	for _, col := range cols {
		v, err := t.Float64s(col)
		if err != nil {
			return nil, err
		}
		out[col] = v
	}

	return out, nil
}

// ParseValue converts a single cell to a float64. Missing values are NaN.
func ParseValue(cell string) (float64, error) {
	switch strings.TrimSpace(cell) {
	case "", "NA", "N/A", "NaN", "nan", "NAN", "null", "None":
		return math.NaN(), nil
	}

	return strconv.ParseFloat(strings.TrimSpace(cell), 64)
}
