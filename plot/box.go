// Package plot renders the concordance tables as grouped boxplots.
package plot

import (
	"fmt"
	"math"
	"sort"

	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"
)

// BoxStats are the Tukey boxplot summaries of one group of values.
type BoxStats struct {
	N                    int
	Q1, Median, Q3       float64
	WhiskerLo, WhiskerHi float64
	Outliers             []float64
}

// Box computes Tukey boxplot summaries: the box spans the quartiles, the
// whiskers reach the most extreme values within 1.5 IQR of the box, and
// anything beyond is an outlier. NaN values are ignored.
func Box(values []float64) (BoxStats, error) {
	data := make(stats.Float64Data, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			data = append(data, v)
		}
	}

	if len(data) == 0 {
		return BoxStats{}, pfx.Err(fmt.Errorf("no values to summarize"))
	}

	sort.Float64s(data)
	out := BoxStats{N: len(data)}

	if len(data) == 1 {
		out.Q1, out.Median, out.Q3 = data[0], data[0], data[0]
		out.WhiskerLo, out.WhiskerHi = data[0], data[0]
		return out, nil
	}

	q, err := stats.Quartile(data)
	if err != nil {
		return BoxStats{}, pfx.Err(err)
	}
	out.Q1, out.Median, out.Q3 = q.Q1, q.Q2, q.Q3

	iqr := out.Q3 - out.Q1
	loFence, hiFence := out.Q1-1.5*iqr, out.Q3+1.5*iqr

	out.WhiskerLo, out.WhiskerHi = out.Q1, out.Q3
	for _, v := range data {
		if v < loFence || v > hiFence {
			out.Outliers = append(out.Outliers, v)
			continue
		}
		if v < out.WhiskerLo {
			out.WhiskerLo = v
		}
		if v > out.WhiskerHi {
			out.WhiskerHi = v
		}
	}

	return out, nil
}
