// Package report writes and reads the long-format concordance tables and
// prints a terminal summary of them.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/carbocation/pfx"
	"github.com/carbocation/rnacompete/concordance"
)

// Header returns the column names of a result table for kind.
func Header(kind concordance.CorrelationKind) []string {
	return []string{"RBP", "Metric", string(kind), "Model"}
}

// FormatValue renders v so that strconv.ParseFloat recovers it exactly.
func FormatValue(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteTSV writes rows as a tab-delimited table with a header line.
func WriteTSV(w io.Writer, kind concordance.CorrelationKind, rows []concordance.Row) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(Header(kind)); err != nil {
		return pfx.Err(err)
	}

	for _, row := range rows {
		if err := cw.Write([]string{row.RBP, string(row.Metric), FormatValue(row.Value), row.Model}); err != nil {
			return pfx.Err(err)
		}
	}

	cw.Flush()

	return pfx.Err(cw.Error())
}

// ReadTSV parses a table written by WriteTSV, returning its correlation kind
// (taken from the header) and rows.
func ReadTSV(r io.Reader) (concordance.CorrelationKind, []concordance.Row, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = 4

	header, err := cr.Read()
	if err == io.EOF {
		return "", nil, pfx.Err(fmt.Errorf("No header in the result table"))
	} else if err != nil {
		return "", nil, pfx.Err(err)
	}

	kind := concordance.CorrelationKind(header[2])
	if kind != concordance.PearsonKind && kind != concordance.SpearmanKind {
		return "", nil, pfx.Err(fmt.Errorf("Unrecognized value column %q", header[2]))
	}

	var rows []concordance.Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return "", nil, pfx.Err(err)
		}

		metric, err := concordance.ParseMetricKind(rec[1])
		if err != nil {
			return "", nil, pfx.Err(err)
		}

		v, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return "", nil, pfx.Err(err)
		}

		rows = append(rows, concordance.Row{RBP: rec[0], Metric: metric, Value: v, Model: rec[3]})
	}

	return kind, rows, nil
}
