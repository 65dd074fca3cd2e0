package plot

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/carbocation/rnacompete/concordance"
)

func results() concordance.Results {
	var res concordance.Results
	for i, rbp := range []string{"RNCMPT00001", "RNCMPT00002", "RNCMPT00003", "RNCMPT00004"} {
		for j, kind := range concordance.MetricKinds {
			v := 0.9 - 0.1*float64(i) - 0.2*float64(j)
			res.Pearson = append(res.Pearson, concordance.Row{RBP: rbp, Metric: kind, Value: v, Model: "SetA"})
			res.Spearman = append(res.Spearman, concordance.Row{RBP: rbp, Metric: kind, Value: v - 0.05, Model: "SetA"})
		}
	}

	return res
}

func TestBoxplots(t *testing.T) {
	res := results()
	if !HasData(res) {
		t.Fatal("Expected plottable data")
	}

	var buf bytes.Buffer
	if err := Boxplots(&buf, res); err != nil {
		t.Fatal(err)
	}

	svg := buf.String()
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Errorf("Output is not a single SVG document:\n%.200s", svg)
	}

	if n := strings.Count(svg, `<g transform="translate(`); n != 2 {
		t.Errorf("Expected 2 panels, found %d", n)
	}

	if n := strings.Count(svg, "fill:"+Green.String()); n < 2*len(concordance.MetricKinds) {
		t.Errorf("Expected a filled box per metric in each panel, found %d green fills", n)
	}

	for _, label := range []string{"Pearson", "Spearman", "Z-score", "AUC", "E-score"} {
		if !strings.Contains(svg, label) {
			t.Errorf("Expected %q in the figure", label)
		}
	}
}

func TestPanelWithoutData(t *testing.T) {
	rows := []concordance.Row{{RBP: "x", Metric: concordance.ZScore, Value: math.NaN()}}

	if _, err := Panel(concordance.PearsonKind, rows); err == nil {
		t.Error("Expected an error when nothing can be drawn")
	}

	if HasData(concordance.Results{Pearson: rows, Spearman: rows}) {
		t.Error("NaN-only tables should not count as plottable")
	}
}
