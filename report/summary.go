package report

import (
	"fmt"
	"io"
	"math"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/pfx"
	"github.com/carbocation/rnacompete/concordance"
	"github.com/montanaflynn/stats"
)

// MetricSummary describes the correlations of one metric kind.
type MetricSummary struct {
	Metric concordance.MetricKind
	N      int
	NaN    int
	Mean   float64
	Median float64
}

// GroupByMetric splits the finite row values by metric kind, counting the
// undefined (NaN) values separately. Kinds with no rows are present with
// an empty slice.
func GroupByMetric(rows []concordance.Row) (map[concordance.MetricKind][]float64, map[concordance.MetricKind]int) {
	values := make(map[concordance.MetricKind][]float64, len(concordance.MetricKinds))
	nans := make(map[concordance.MetricKind]int, len(concordance.MetricKinds))
	for _, kind := range concordance.MetricKinds {
		values[kind] = []float64{}
	}

	for _, row := range rows {
		if math.IsNaN(row.Value) || math.IsInf(row.Value, 0) {
			nans[row.Metric]++
			continue
		}
		values[row.Metric] = append(values[row.Metric], row.Value)
	}

	return values, nans
}

// Summarize computes per-metric summaries in MetricKinds order. Summaries
// of kinds without finite values carry NaN mean and median.
func Summarize(rows []concordance.Row) ([]MetricSummary, error) {
	values, nans := GroupByMetric(rows)

	out := make([]MetricSummary, 0, len(concordance.MetricKinds))
	for _, kind := range concordance.MetricKinds {
		s := MetricSummary{Metric: kind, N: len(values[kind]), NaN: nans[kind], Mean: math.NaN(), Median: math.NaN()}

		if s.N > 0 {
			data := stats.Float64Data(values[kind])

			var err error
			if s.Mean, err = data.Mean(); err != nil {
				return nil, pfx.Err(err)
			}
			if s.Median, err = data.Median(); err != nil {
				return nil, pfx.Err(err)
			}
		}

		out = append(out, s)
	}

	return out, nil
}

// Fprint writes the summary of each metric kind followed by a histogram of
// its correlations.
func Fprint(w io.Writer, kind concordance.CorrelationKind, rows []concordance.Row) error {
	summaries, err := Summarize(rows)
	if err != nil {
		return err
	}

	values, _ := GroupByMetric(rows)

	for _, s := range summaries {
		fmt.Fprintf(w, "%s %s: N=%d NaN=%d mean=%.3f median=%.3f\n", kind, s.Metric, s.N, s.NaN, s.Mean, s.Median)

		if !spread(values[s.Metric]) {
			continue
		}

		hist := histogram.Hist(10, values[s.Metric])
		if err := histogram.Fprint(w, hist, histogram.Linear(40)); err != nil {
			return pfx.Err(err)
		}
	}

	return nil
}

// spread reports whether x holds at least two distinct values, which a
// histogram needs for a non-empty range.
func spread(x []float64) bool {
	for _, v := range x {
		if v != x[0] {
			return true
		}
	}

	return false
}
