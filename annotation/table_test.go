package annotation

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const tsv = "Probe_ID\tRNCMPT00001\tseq\tRNCMPT00002\n" +
	"p1\t1.5\tACGU\tNA\n" +
	"p2\t-0.25\tGGGU\t3\n" +
	"p3\t\tUUUU\t4e2\n"

func TestReadTSV(t *testing.T) {
	table, err := Read(strings.NewReader(tsv), '\t')
	if err != nil {
		t.Fatal(err)
	}

	if table.Len() != 3 {
		t.Fatalf("Expected 3 probes, got %d", table.Len())
	}

	if diff := cmp.Diff([]string{"RNCMPT00001", "RNCMPT00002"}, table.SelectColumns("RNCMPT")); diff != "" {
		t.Errorf("SelectColumns mismatch (-want +got):\n%s", diff)
	}

	v, err := table.Float64s("RNCMPT00001")
	if err != nil {
		t.Fatal(err)
	}
	if v[0] != 1.5 || v[1] != -0.25 || !math.IsNaN(v[2]) {
		t.Errorf("Unexpected values %v", v)
	}

	obs, err := table.Observed([]string{"RNCMPT00002"})
	if err != nil {
		t.Fatal(err)
	}
	if got := obs["RNCMPT00002"]; !math.IsNaN(got[0]) || got[2] != 400 {
		t.Errorf("Unexpected values %v", got)
	}
}

func TestReadDetectsDelimiter(t *testing.T) {
	csv := "Probe_ID,RNCMPT00007,RNCMPT00008\n" +
		"p1,1,2\n" +
		"p2,3,4\n" +
		"p3,5,6\n"

	table, err := Read(strings.NewReader(csv), 0)
	if err != nil {
		t.Fatal(err)
	}

	if !table.HasColumn("RNCMPT00008") {
		t.Fatalf("Expected comma-delimited columns, got %v", table.Columns)
	}
}

func TestReadErrors(t *testing.T) {
	if _, err := Read(strings.NewReader(""), '\t'); err == nil {
		t.Error("Expected an error for an empty table")
	}

	if _, err := Read(strings.NewReader("a\ta\n1\t2\n"), '\t'); err == nil {
		t.Error("Expected an error for a duplicated column")
	}

	table, err := Read(strings.NewReader("a\tb\nx\t1\n"), '\t')
	if err != nil {
		t.Fatal(err)
	}

	if _, err := table.Float64s("a"); err == nil {
		t.Error("Expected an error for a non-numeric column")
	}

	if _, err := table.Float64s("missing"); err == nil {
		t.Error("Expected an error for a missing column")
	}
}

func TestParseValue(t *testing.T) {
	for _, cell := range []string{"", "NA", "NaN", "nan", " NA "} {
		if v, err := ParseValue(cell); err != nil || !math.IsNaN(v) {
			t.Errorf("%q: expected NaN, got %v (%v)", cell, v, err)
		}
	}

	if v, err := ParseValue(" 2.5 "); err != nil || v != 2.5 {
		t.Errorf("Expected 2.5, got %v (%v)", v, err)
	}
}
