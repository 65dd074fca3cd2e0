package concordance

import (
	"fmt"

	"github.com/carbocation/rnacompete/metrics"
)

// MetricKind names one of the per-k-mer summaries being compared.
type MetricKind string

const (
	ZScore MetricKind = "Z-score"
	AUC    MetricKind = "AUC"
	EScore MetricKind = "E-score"
)

// MetricKinds lists the summaries in the order they are reported.
var MetricKinds = []MetricKind{ZScore, AUC, EScore}

// CorrelationKind names the correlation statistic of a result table. Its
// value doubles as the table's value column header.
type CorrelationKind string

const (
	PearsonKind  CorrelationKind = "Pearson"
	SpearmanKind CorrelationKind = "Spearman"
)

// ParseMetricKind maps a reported metric name back to its kind.
func ParseMetricKind(s string) (MetricKind, error) {
	for _, k := range MetricKinds {
		if string(k) == s {
			return k, nil
		}
	}

	return "", fmt.Errorf("unknown metric %q", s)
}

// values picks the per-k-mer vector for kind out of a metric triple.
func values(t metrics.Triple, kind MetricKind) []float64 {
	switch kind {
	case ZScore:
		return t.ZScores
	case AUC:
		return t.AUCs
	case EScore:
		return t.EScores
	}

	return nil
}
