package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/carbocation/rnacompete"
	"github.com/carbocation/rnacompete/annotation"
	"github.com/carbocation/rnacompete/concordance"
	"github.com/carbocation/rnacompete/kmers"
	"github.com/carbocation/rnacompete/plot"
	"github.com/carbocation/rnacompete/report"
	"gonum.org/v1/gonum/mat"
)

// Outputs lists the files written by a run.
type Outputs struct {
	Pearson  string
	Spearman string
	Skipped  string
	Figure   string
}

func run(ctx context.Context, cfg Config) error {
	var client *storage.Client
	if rnacompete.NeedsStorageClient(cfg.SetANPY, cfg.SetBNPY, cfg.SetAAnnotation, cfg.SetBAnnotation) {
		var err error
		client, err = storage.NewClient(ctx)
		if err != nil {
			return pfx.Err(err)
		}
		defer client.Close()
	}

	res, err := analyze(ctx, cfg, client)
	if err != nil {
		return err
	}

	out, err := writeOutputs(cfg, res)
	if err != nil {
		return err
	}

	log.Printf("Wrote %d Pearson rows to %s\n", len(res.Pearson), out.Pearson)
	log.Printf("Wrote %d Spearman rows to %s\n", len(res.Spearman), out.Spearman)
	log.Printf("Skipped %d targets (see %s)\n", len(res.Skipped), out.Skipped)
	if out.Figure != "" {
		log.Printf("Wrote boxplots to %s\n", out.Figure)
	}

	return nil
}

// analyze loads the inputs, filters the k-mers and computes the concordance
// of every target.
func analyze(ctx context.Context, cfg Config, client *storage.Client) (concordance.Results, error) {
	setA, err := loadMatrix(ctx, cfg.SetANPY, client)
	if err != nil {
		return concordance.Results{}, err
	}

	setB, err := loadMatrix(ctx, cfg.SetBNPY, client)
	if err != nil {
		return concordance.Results{}, err
	}

	tableA, err := loadTable(ctx, cfg.SetAAnnotation, cfg.DelimiterRune(), client)
	if err != nil {
		return concordance.Results{}, err
	}

	tableB, err := loadTable(ctx, cfg.SetBAnnotation, cfg.DelimiterRune(), client)
	if err != nil {
		return concordance.Results{}, err
	}

	if err := checkShape("A", setA, tableA); err != nil {
		return concordance.Results{}, err
	}
	if err := checkShape("B", setB, tableB); err != nil {
		return concordance.Results{}, err
	}

	// Targets are defined by the set B table and looked up in set A.
	targets := tableB.SelectColumns(cfg.Pattern)
	if len(targets) == 0 {
		return concordance.Results{}, pfx.Err(fmt.Errorf("No column of %s contains %q", cfg.SetBAnnotation, cfg.Pattern))
	}
	log.Printf("Found %d target columns matching %q\n", len(targets), cfg.Pattern)

	observedB, err := tableB.Observed(targets)
	if err != nil {
		return concordance.Results{}, err
	}

	present := make([]string, 0, len(targets))
	for _, target := range targets {
		if tableA.HasColumn(target) {
			present = append(present, target)
			continue
		}
		log.Printf("Target %s is missing from %s\n", target, cfg.SetAAnnotation)
	}

	observedA, err := tableA.Observed(present)
	if err != nil {
		return concordance.Results{}, err
	}

	setA, setB, err = kmers.SubsamplePair(setA, setB, cfg.NKmers, cfg.Seed)
	if err != nil {
		return concordance.Results{}, err
	}

	rows, _ := setA.Dims()
	setA, setB, kept, err := kmers.FilterShared(setA, setB)
	if err != nil {
		return concordance.Results{}, err
	}
	log.Printf("Kept %d of %d k-mers with signal in both sets\n", len(kept), rows)

	return concordance.Run(concordance.Input{
		A:         setA,
		B:         setB,
		ObservedA: observedA,
		ObservedB: observedB,
		Targets:   targets,
		Label:     cfg.Label,
		Progress:  progressLogger(),
	})
}

func writeOutputs(cfg Config, res concordance.Results) (Outputs, error) {
	out := Outputs{
		Pearson:  filepath.Join(cfg.OutputDir, report.FileName("pearson_performance", cfg.NKmers, cfg.Label, "tsv")),
		Spearman: filepath.Join(cfg.OutputDir, report.FileName("spearman_performance", cfg.NKmers, cfg.Label, "tsv")),
		Skipped:  filepath.Join(cfg.OutputDir, report.FileName("skipped_targets", cfg.NKmers, cfg.Label, "tsv")),
	}

	for _, dir := range []string{cfg.OutputDir, cfg.FigureDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return out, pfx.Err(err)
		}
	}

	if err := writeFile(out.Pearson, func(w io.Writer) error {
		return report.WriteTSV(w, concordance.PearsonKind, res.Pearson)
	}); err != nil {
		return out, err
	}

	if err := writeFile(out.Spearman, func(w io.Writer) error {
		return report.WriteTSV(w, concordance.SpearmanKind, res.Spearman)
	}); err != nil {
		return out, err
	}

	if err := writeFile(out.Skipped, func(w io.Writer) error {
		return report.WriteSkipped(w, res.Skipped)
	}); err != nil {
		return out, err
	}

	for _, kind := range []concordance.CorrelationKind{concordance.PearsonKind, concordance.SpearmanKind} {
		if err := report.Fprint(os.Stderr, kind, res.Table(kind)); err != nil {
			return out, err
		}
	}

	if !plot.HasData(res) {
		log.Println("Not enough data to draw boxplots, skipping the figure")
		return out, nil
	}

	figure := filepath.Join(cfg.FigureDir, report.FileName("correlation_boxplots", cfg.NKmers, cfg.Label, "svg"))
	if err := writeFile(figure, func(w io.Writer) error {
		return plot.Boxplots(w, res)
	}); err != nil {
		return out, err
	}
	out.Figure = figure

	return out, nil
}

func loadMatrix(ctx context.Context, path string, client *storage.Client) (*mat.Dense, error) {
	rc, err := rnacompete.Open(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	m, err := kmers.Read(rc)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %v", path, err))
	}

	rows, cols := m.Dims()
	log.Printf("Loaded %d k-mers x %d probes from %s\n", rows, cols, path)
	if !kmers.IsBinary(m) {
		log.Printf("%s holds values other than 0 and 1; positive entries are treated as present\n", path)
	}

	return m, nil
}

func loadTable(ctx context.Context, path string, delimiter rune, client *storage.Client) (*annotation.Table, error) {
	rc, err := rnacompete.Open(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	t, err := annotation.Read(rc, delimiter)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %v", path, err))
	}
	log.Printf("Loaded %d probes x %d columns from %s\n", t.Len(), len(t.Columns), path)

	return t, nil
}

// checkShape ensures that every probe of the matrix has an annotation row.
func checkShape(set string, m *mat.Dense, t *annotation.Table) error {
	if _, cols := m.Dims(); cols != t.Len() {
		return pfx.Err(fmt.Errorf("set %s: the matrix has %d probes but the annotation table has %d rows", set, cols, t.Len()))
	}

	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}

	if err := write(f); err != nil {
		f.Close()
		return err
	}

	return pfx.Err(f.Close())
}

// progressLogger logs roughly every tenth of the targets.
func progressLogger() func(done, total int) {
	return func(done, total int) {
		step := total / 10
		if step < 1 {
			step = 1
		}
		if done%step == 0 || done == total {
			log.Printf("Calculated metrics on %d/%d targets\n", done, total)
		}
	}
}
