package concordance

import (
	"errors"
	"fmt"
	"log"

	"github.com/carbocation/pfx"
	"github.com/carbocation/rnacompete/metrics"
	"gonum.org/v1/gonum/mat"
)

// Row is one line of a long-format result table.
type Row struct {
	RBP    string
	Metric MetricKind
	Value  float64
	Model  string
}

// Skipped records a target that contributed no rows, and why.
type Skipped struct {
	RBP    string `csv:"RBP"`
	Reason string `csv:"Reason"`
}

// Results accumulates the two long-format tables of a run.
type Results struct {
	Pearson  []Row
	Spearman []Row
	Skipped  []Skipped
}

// Table returns the rows for one correlation kind.
func (r Results) Table(kind CorrelationKind) []Row {
	if kind == SpearmanKind {
		return r.Spearman
	}

	return r.Pearson
}

// Evaluator turns a presence/absence matrix and one target's intensities
// into per-k-mer summaries. metrics.Compute is the production evaluator.
type Evaluator func(pa mat.Matrix, intensities []float64) (metrics.Triple, error)

// TargetResult holds the correlations of one target. Metrics lists the metric
// kinds that had values on both sides, in MetricKinds order; Pearson and
// Spearman are parallel to it. Omitted lists the kinds that had no paired
// values at all.
type TargetResult struct {
	RBP      string
	Metrics  []MetricKind
	Pearson  []float64
	Spearman []float64
	Omitted  []MetricKind
}

// Evaluate compares set A and set B summaries for a single target. A metric
// with no paired finite values is omitted and the others are still reported.
// A metric with exactly one pair has an undefined correlation, which fails the
// whole target with ErrTooFewPairs, as does a target with no metric left.
func Evaluate(target string, a, b metrics.Triple) (TargetResult, error) {
	out := TargetResult{RBP: target}

	for _, kind := range MetricKinds {
		va, vb, err := PairedFinite(values(a, kind), values(b, kind))
		if err != nil {
			return TargetResult{}, fmt.Errorf("%s: %v", kind, err)
		}

		if len(va) == 0 {
			out.Omitted = append(out.Omitted, kind)
			continue
		}
		if len(va) < 2 {
			return TargetResult{}, fmt.Errorf("%s: %w", kind, ErrTooFewPairs)
		}

		p, err := Pearson(va, vb)
		if err != nil {
			return TargetResult{}, fmt.Errorf("%s: %w", kind, err)
		}

		s, err := Spearman(va, vb)
		if err != nil {
			return TargetResult{}, fmt.Errorf("%s: %w", kind, err)
		}

		out.Metrics = append(out.Metrics, kind)
		out.Pearson = append(out.Pearson, p)
		out.Spearman = append(out.Spearman, s)
	}

	if len(out.Metrics) == 0 {
		return TargetResult{}, fmt.Errorf("no metric has paired values: %w", ErrTooFewPairs)
	}

	return out, nil
}

// Input is everything a concordance run needs. A and B are presence/absence
// matrices with identical k-mer rows; ObservedA and ObservedB map each target
// to the probe intensities of the corresponding set.
type Input struct {
	A, B      mat.Matrix
	ObservedA map[string][]float64
	ObservedB map[string][]float64
	Targets   []string
	Label     string

	// Evaluator defaults to metrics.Compute.
	Evaluator Evaluator

	// Progress, if set, is called after each target.
	Progress func(done, total int)
}

// Run evaluates every target and collects the long-format tables. A target
// that cannot be evaluated is logged, recorded in Results.Skipped, and left
// out of both tables.
func Run(in Input) (Results, error) {
	if in.A == nil || in.B == nil {
		return Results{}, pfx.Err(fmt.Errorf("both presence/absence matrices are required"))
	}

	ra, _ := in.A.Dims()
	rb, _ := in.B.Dims()
	if ra != rb {
		return Results{}, pfx.Err(fmt.Errorf("set A has %d k-mers but set B has %d", ra, rb))
	}

	evaluate := in.Evaluator
	if evaluate == nil {
		evaluate = metrics.Compute
	}

	out := Results{
		Pearson:  make([]Row, 0, len(in.Targets)*len(MetricKinds)),
		Spearman: make([]Row, 0, len(in.Targets)*len(MetricKinds)),
	}

	for i, target := range in.Targets {
		res, err := evaluateTarget(target, in, evaluate)
		if err != nil {
			log.Printf("Could not evaluate %s, skipping: %v\n", target, err)
			out.Skipped = append(out.Skipped, Skipped{RBP: target, Reason: err.Error()})
		} else {
			for _, kind := range res.Omitted {
				log.Printf("%s: no paired %s values, omitting that metric\n", target, kind)
			}
			out.add(res, in.Label)
		}

		if in.Progress != nil {
			in.Progress(i+1, len(in.Targets))
		}
	}

	return out, nil
}

func evaluateTarget(target string, in Input, evaluate Evaluator) (TargetResult, error) {
	obsA, exists := in.ObservedA[target]
	if !exists {
		return TargetResult{}, errors.New("no set A intensities")
	}

	obsB, exists := in.ObservedB[target]
	if !exists {
		return TargetResult{}, errors.New("no set B intensities")
	}

	a, err := evaluate(in.A, obsA)
	if err != nil {
		return TargetResult{}, fmt.Errorf("set A metrics: %w", err)
	}

	b, err := evaluate(in.B, obsB)
	if err != nil {
		return TargetResult{}, fmt.Errorf("set B metrics: %w", err)
	}

	return Evaluate(target, a, b)
}

func (r *Results) add(res TargetResult, label string) {
	for i, kind := range res.Metrics {
		r.Pearson = append(r.Pearson, Row{RBP: res.RBP, Metric: kind, Value: res.Pearson[i], Model: label})
		r.Spearman = append(r.Spearman, Row{RBP: res.RBP, Metric: kind, Value: res.Spearman[i], Model: label})
	}
}
