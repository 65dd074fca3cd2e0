package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/carbocation/rnacompete/concordance"
)

func TestSummarize(t *testing.T) {
	rows := []concordance.Row{
		{RBP: "a", Metric: concordance.ZScore, Value: 0.2},
		{RBP: "b", Metric: concordance.ZScore, Value: 0.4},
		{RBP: "c", Metric: concordance.ZScore, Value: 0.9},
		{RBP: "d", Metric: concordance.ZScore, Value: math.NaN()},
		{RBP: "a", Metric: concordance.AUC, Value: -0.5},
	}

	summaries, err := Summarize(rows)
	if err != nil {
		t.Fatal(err)
	}

	if len(summaries) != len(concordance.MetricKinds) {
		t.Fatalf("Expected %d summaries, got %d", len(concordance.MetricKinds), len(summaries))
	}

	z := summaries[0]
	if z.Metric != concordance.ZScore || z.N != 3 || z.NaN != 1 || math.Abs(z.Mean-0.5) > 1e-12 || z.Median != 0.4 {
		t.Errorf("Unexpected Z-score summary %+v", z)
	}

	if e := summaries[2]; e.N != 0 || !math.IsNaN(e.Mean) {
		t.Errorf("Expected an empty E-score summary, got %+v", e)
	}

	var buf bytes.Buffer
	if err := Fprint(&buf, concordance.PearsonKind, rows); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Pearson Z-score: N=3 NaN=1") {
		t.Errorf("Summary output missing the Z-score line:\n%s", buf.String())
	}
}
