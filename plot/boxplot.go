package plot

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"regexp"

	"github.com/carbocation/pfx"
	"github.com/carbocation/rnacompete/concordance"
	"github.com/carbocation/rnacompete/report"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	panelWidth  = 400
	panelHeight = 400
	boxHalf     = 0.3
	capHalf     = 0.15
	xMin        = 0.5
	yMin, yMax  = -1.0, 1.0
)

// Green is the fill of every box, to match the published figures.
var Green = drawing.ColorFromHex("008000")

// Panel draws one boxplot per metric kind for rows, returning the SVG.
func Panel(kind concordance.CorrelationKind, rows []concordance.Row) ([]byte, error) {
	values, _ := report.GroupByMetric(rows)

	ticks := make([]chart.Tick, 0, len(concordance.MetricKinds))
	var series []chart.Series
	var boxes []chart.Renderable

	for i, metric := range concordance.MetricKinds {
		x := float64(i + 1)
		ticks = append(ticks, chart.Tick{Value: x, Label: string(metric)})

		if len(values[metric]) == 0 {
			continue
		}

		box, err := Box(values[metric])
		if err != nil {
			return nil, err
		}

		series = append(series, boxSeries(x, box)...)
		boxes = append(boxes, filledBox(x, box))
	}

	if len(series) == 0 {
		return nil, pfx.Err(fmt.Errorf("no finite %s correlations to plot", kind))
	}

	graph := chart.Chart{
		Title:  string(kind),
		Width:  panelWidth,
		Height: panelHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "Metric",
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax()},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  string(kind),
			Range: &chart.ContinuousRange{Min: yMin, Max: yMax},
		},
		Series:   series,
		Elements: boxes,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.SVG, buffer); err != nil {
		return nil, pfx.Err(err)
	}

	return buffer.Bytes(), nil
}

func xMax() float64 { return float64(len(concordance.MetricKinds)) + xMin }

// boxSeries expresses the whiskers with caps as line series and the outliers
// as dots. The box itself is drawn by filledBox.
func boxSeries(x float64, b BoxStats) []chart.Series {
	line := chart.Style{StrokeColor: Green, StrokeWidth: 2}
	dots := chart.Style{StrokeWidth: chart.Disabled, DotWidth: 3, DotColor: Green}

	out := []chart.Series{
		chart.ContinuousSeries{
			Style:   line,
			XValues: []float64{x, x},
			YValues: []float64{b.Q3, b.WhiskerHi},
		},
		chart.ContinuousSeries{
			Style:   line,
			XValues: []float64{x, x},
			YValues: []float64{b.WhiskerLo, b.Q1},
		},
		chart.ContinuousSeries{
			Style:   line,
			XValues: []float64{x - capHalf, x + capHalf},
			YValues: []float64{b.WhiskerHi, b.WhiskerHi},
		},
		chart.ContinuousSeries{
			Style:   line,
			XValues: []float64{x - capHalf, x + capHalf},
			YValues: []float64{b.WhiskerLo, b.WhiskerLo},
		},
	}

	if len(b.Outliers) > 0 {
		xs := make([]float64, len(b.Outliers))
		for i := range xs {
			xs[i] = x
		}
		out = append(out, chart.ContinuousSeries{Style: dots, XValues: xs, YValues: b.Outliers})
	}

	return out
}

// filledBox draws the Q1..Q3 box filled green with a dark outline and the
// median line, mapping values to pixels the way the chart maps its series.
func filledBox(x float64, b BoxStats) chart.Renderable {
	return func(r chart.Renderer, canvas chart.Box, _ chart.Style) {
		xr := chart.ContinuousRange{Min: xMin, Max: xMax(), Domain: canvas.Width()}
		yr := chart.ContinuousRange{Min: yMin, Max: yMax, Domain: canvas.Height()}

		left := canvas.Left + xr.Translate(x-boxHalf)
		right := canvas.Left + xr.Translate(x+boxHalf)
		top := canvas.Bottom - yr.Translate(b.Q3)
		bottom := canvas.Bottom - yr.Translate(b.Q1)
		median := canvas.Bottom - yr.Translate(b.Median)

		r.ResetStyle()
		r.SetFillColor(Green)
		r.SetStrokeColor(drawing.ColorBlack)
		r.SetStrokeWidth(1)
		r.MoveTo(left, top)
		r.LineTo(right, top)
		r.LineTo(right, bottom)
		r.LineTo(left, bottom)
		r.LineTo(left, top)
		r.Close()
		r.FillStroke()

		r.SetFillColor(drawing.ColorTransparent)
		r.SetStrokeWidth(2)
		r.MoveTo(left, median)
		r.LineTo(right, median)
		r.Stroke()
	}
}

var svgOpen = regexp.MustCompile(`(?s)^\s*(<\?xml[^>]*\?>\s*)?`)

// Boxplots writes the Pearson and Spearman panels side by side as a single
// SVG document.
func Boxplots(w io.Writer, res concordance.Results) error {
	kinds := []concordance.CorrelationKind{concordance.PearsonKind, concordance.SpearmanKind}

	panels := make([][]byte, 0, len(kinds))
	for _, kind := range kinds {
		svg, err := Panel(kind, res.Table(kind))
		if err != nil {
			return err
		}
		panels = append(panels, svgOpen.ReplaceAll(svg, nil))
	}

	return pfx.Err(compose(w, panels))
}

// compose places each panel SVG in its own horizontally offset group.
func compose(w io.Writer, panels [][]byte) error {
	if _, err := fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		panelWidth*len(panels), panelHeight, panelWidth*len(panels), panelHeight); err != nil {
		return err
	}

	for i, panel := range panels {
		if _, err := fmt.Fprintf(w, `<g transform="translate(%d,0)">`+"\n", i*panelWidth); err != nil {
			return err
		}
		if _, err := w.Write(panel); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n</g>\n"); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</svg>\n")

	return err
}

// HasData reports whether res has at least one finite correlation in each
// table, which Boxplots requires.
func HasData(res concordance.Results) bool {
	for _, kind := range []concordance.CorrelationKind{concordance.PearsonKind, concordance.SpearmanKind} {
		values, _ := report.GroupByMetric(res.Table(kind))
		n := 0
		for _, v := range values {
			n += len(v)
		}
		if n == 0 {
			log.Printf("No finite %s correlations\n", kind)
			return false
		}
	}

	return true
}
