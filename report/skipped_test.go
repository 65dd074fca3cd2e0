package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/carbocation/rnacompete/concordance"
	"github.com/google/go-cmp/cmp"
)

func TestSkippedRoundTrip(t *testing.T) {
	skipped := []concordance.Skipped{
		{RBP: "RNCMPT00003", Reason: "Z-score: fewer than 2 paired finite values"},
		{RBP: "RNCMPT00004", Reason: "no set A intensities"},
	}

	var buf bytes.Buffer
	if err := WriteSkipped(&buf, skipped); err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(buf.String(), "RBP\tReason\n") {
		t.Errorf("Unexpected header in %q", buf.String())
	}

	parsed, err := ReadSkipped(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(skipped, parsed); diff != "" {
		t.Errorf("Round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSkippedEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSkipped(&buf, nil); err != nil {
		t.Fatal(err)
	}

	if buf.String() != "RBP\tReason\n" {
		t.Errorf("Expected a header-only table, got %q", buf.String())
	}

	parsed, err := ReadSkipped(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(parsed) != 0 {
		t.Errorf("Expected no rows, got %+v", parsed)
	}
}
