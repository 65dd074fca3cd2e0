package report

import (
	"encoding/csv"
	"io"

	"github.com/carbocation/pfx"
	"github.com/carbocation/rnacompete/concordance"
	"github.com/gocarina/gocsv"
)

// WriteSkipped writes the targets that produced no rows, one per line, as a
// tab-delimited table.
func WriteSkipped(w io.Writer, skipped []concordance.Skipped) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	// Keep the header even when nothing was skipped.
	if len(skipped) == 0 {
		if err := cw.Write([]string{"RBP", "Reason"}); err != nil {
			return pfx.Err(err)
		}
		cw.Flush()
		return pfx.Err(cw.Error())
	}

	return pfx.Err(gocsv.MarshalCSV(&skipped, gocsv.NewSafeCSVWriter(cw)))
}

// ReadSkipped parses a table written by WriteSkipped.
func ReadSkipped(r io.Reader) ([]concordance.Skipped, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true

	out := []concordance.Skipped{}
	if err := gocsv.UnmarshalCSV(cr, &out); err != nil && err != gocsv.ErrEmptyCSVFile {
		return nil, pfx.Err(err)
	}

	return out, nil
}
